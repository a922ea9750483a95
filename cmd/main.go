package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"restaurant-storefront/internal/config"
	"restaurant-storefront/internal/database"
	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/messaging"
	"restaurant-storefront/internal/server"
	"restaurant-storefront/internal/services/auth"
	"restaurant-storefront/internal/services/catalog"
	"restaurant-storefront/internal/services/notification"
	"restaurant-storefront/internal/services/order"
)

func main() {
	var (
		mode       = flag.String("mode", "storefront", "Service mode (storefront, notification-subscriber)")
		port       = flag.Int("port", 0, "HTTP port (overrides config)")
		configPath = flag.String("config", "config.yaml", "Path to config file")
		prefetch   = flag.Int("prefetch", 1, "RabbitMQ prefetch count")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Server.Port = *port
	}

	log := logger.New(*mode)
	requestID := logger.GenerateRequestID()

	log.Info("service_started", fmt.Sprintf("Starting %s", *mode), requestID, map[string]interface{}{
		"mode": *mode,
		"port": cfg.Server.Port,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Info("graceful_shutdown", "Received shutdown signal", requestID, nil)
		cancel()
	}()

	switch *mode {
	case "storefront":
		if err := runStorefront(ctx, cfg, log); err != nil {
			log.Error("service_failed", "Storefront failed", requestID, err, nil)
			os.Exit(1)
		}
	case "notification-subscriber":
		if err := runNotificationSubscriber(ctx, cfg, log, *prefetch); err != nil {
			log.Error("service_failed", "Notification subscriber failed", requestID, err, nil)
			os.Exit(1)
		}
	default:
		log.Error("validation_failed", fmt.Sprintf("Unknown mode: %s", *mode), requestID, nil, nil)
		os.Exit(1)
	}

	log.Info("service_stopped", "Service stopped gracefully", requestID, nil)
}

// runStorefront runs the public site, the admin API and the pricing engine
func runStorefront(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	requestID := logger.GenerateRequestID()

	db, err := database.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	log.Info("db_connected", "Connected to PostgreSQL database", requestID, nil)

	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	publisher := messaging.NewPublisher(conn, log)

	// Redis is optional: without it the catalog is read from Postgres on
	// every request instead of from the cached snapshot
	var redisClient *redis.Client
	if cfg.RedisEnabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis_unavailable", "Redis unreachable, catalog caching disabled", requestID, map[string]interface{}{
				"addr": cfg.Redis.Addr,
			})
			redisClient = nil
		} else {
			log.Info("redis_connected", "Connected to Redis", requestID, nil)
		}
	}

	catalogStore := catalog.NewStore(db)
	catalogCache := catalog.NewCache(catalogStore, redisClient, log)
	catalogCache.StartAutoReload(ctx)
	catalogService := catalog.NewService(catalogStore, catalogCache, log)
	catalogHandler := catalog.NewHandler(catalogService, log)

	orderRepo := order.NewRepository(db)
	orderService := order.NewService(orderRepo, catalogCache, publisher, log)
	orderHandler := order.NewHandler(orderService, log)

	authStore := auth.NewStore(db)
	authService := auth.NewService(authStore, log)
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	authHandler := auth.NewHandler(authService, log)

	srv := server.New(cfg.Server.Port, cfg.Server.StaticDir, catalogHandler, orderHandler, authHandler, log)

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("server_failed", "HTTP server failed", requestID, err, nil)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}

// runNotificationSubscriber consumes status update broadcasts
func runNotificationSubscriber(ctx context.Context, cfg *config.Config, log *logger.Logger, prefetch int) error {
	requestID := logger.GenerateRequestID()

	conn, err := messaging.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize messaging: %w", err)
	}
	defer conn.Close()

	log.Info("rabbitmq_connected", "Connected to RabbitMQ", requestID, nil)

	consumer := messaging.NewConsumer(conn, log, messaging.NotificationsQueue, "notification-subscriber", prefetch)
	subscriber := notification.NewSubscriber(consumer, log)
	defer subscriber.Close()

	return subscriber.Start(ctx)
}

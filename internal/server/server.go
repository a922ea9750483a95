package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/services/auth"
	"restaurant-storefront/internal/services/catalog"
	"restaurant-storefront/internal/services/order"
)

// Server assembles the storefront HTTP surface: the JSON API, the health
// endpoint and the static site files.
type Server struct {
	httpServer *http.Server
	logger     *logger.Logger
}

// New builds the server from the mounted handlers
func New(port int, staticDir string, catalogHandler *catalog.Handler, orderHandler *order.Handler, authHandler *auth.Handler, log *logger.Logger) *Server {
	s := &Server{logger: log}

	mux := http.NewServeMux()
	catalogHandler.RegisterRoutes(mux)
	orderHandler.RegisterRoutes(mux)
	authHandler.RegisterRoutes(mux)
	mux.HandleFunc("GET /health", s.healthCheck)

	// Everything outside /api and /health falls through to the static site
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withLogging(mux),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start begins serving. It blocks until the listener fails or Shutdown
// is called.
func (s *Server) Start() error {
	s.logger.Info("service_started", "HTTP server listening", "", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","timestamp":%q}`, time.Now().UTC().Format(time.RFC3339))
}

// withLogging tags every request with an id and logs its lifecycle
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := logger.GenerateRequestID()

		ctx := context.WithValue(r.Context(), "request_id", requestID)
		r = r.WithContext(ctx)

		s.logger.Debug("request_started",
			fmt.Sprintf("%s %s", r.Method, r.URL.Path),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"remote_addr": r.RemoteAddr,
				"user_agent":  r.Header.Get("User-Agent"),
			})

		rw := &responseWriter{ResponseWriter: w, statusCode: 200}
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		s.logger.Debug("request_completed",
			fmt.Sprintf("%s %s - %d", r.Method, r.URL.Path, rw.statusCode),
			requestID,
			map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status_code": rw.statusCode,
				"duration_ms": duration.Milliseconds(),
			})
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

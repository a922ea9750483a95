package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/models"
)

// UpdateChannel is the Redis Pub/Sub channel announcing catalog changes
const UpdateChannel = "catalog:update"

// reloadInterval is the fallback reload period when a Pub/Sub message is
// lost or Redis drops
const reloadInterval = 5 * time.Minute

// SnapshotLoader loads the full catalog from storage
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (*models.CatalogSnapshot, error)
}

// Cache serves catalog snapshots to the checkout path. With Redis
// configured it keeps an in-memory snapshot invalidated via Pub/Sub on
// admin changes, with a ticker reload as fallback. Without Redis every
// Snapshot call reads from storage, so admin changes are visible on the
// next request either way.
type Cache struct {
	loader SnapshotLoader
	redis  *redis.Client
	logger *logger.Logger

	mu       sync.RWMutex
	snapshot *models.CatalogSnapshot
}

// NewCache creates a catalog cache. redisClient may be nil to disable
// caching entirely.
func NewCache(loader SnapshotLoader, redisClient *redis.Client, log *logger.Logger) *Cache {
	return &Cache{
		loader: loader,
		redis:  redisClient,
		logger: log,
	}
}

// Snapshot returns the catalog snapshot to price against
func (c *Cache) Snapshot(ctx context.Context) (*models.CatalogSnapshot, error) {
	if c.redis == nil {
		return c.loader.LoadSnapshot(ctx)
	}

	c.mu.RLock()
	snap := c.snapshot
	c.mu.RUnlock()

	if snap != nil {
		return snap, nil
	}

	return c.reload(ctx)
}

// reload loads a fresh snapshot and atomically replaces the cached one
func (c *Cache) reload(ctx context.Context) (*models.CatalogSnapshot, error) {
	snap, err := c.loader.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()

	c.logger.Debug("catalog_reloaded", "Catalog snapshot reloaded", "", map[string]interface{}{
		"menu_items":  len(snap.MenuItems),
		"ingredients": len(snap.Ingredients),
	})

	return snap, nil
}

// Invalidate refreshes the local snapshot and announces the change so
// other processes reload theirs. Called after every admin mutation.
func (c *Cache) Invalidate(ctx context.Context) {
	if c.redis == nil {
		return
	}

	if _, err := c.reload(ctx); err != nil {
		c.logger.Error("catalog_reload_failed", "Failed to reload catalog after change", "", err, nil)
	}

	if err := c.redis.Publish(ctx, UpdateChannel, "now").Err(); err != nil {
		c.logger.Error("catalog_publish_failed", "Failed to publish catalog update", "", err, nil)
	}
}

// StartAutoReload keeps the cached snapshot current: a Pub/Sub listener
// for instant invalidation plus a ticker in case messages are missed.
// No-op without Redis.
func (c *Cache) StartAutoReload(ctx context.Context) {
	if c.redis == nil {
		return
	}

	go c.listenForUpdates(ctx)

	go func() {
		ticker := time.NewTicker(reloadInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := c.reload(ctx); err != nil {
					c.logger.Error("catalog_reload_failed", "Periodic catalog reload failed", "", err, nil)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// listenForUpdates subscribes to the update channel and reloads on every
// message
func (c *Cache) listenForUpdates(ctx context.Context) {
	pubsub := c.redis.Subscribe(ctx, UpdateChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			c.logger.Debug("catalog_update_received", "Catalog update received via Pub/Sub", "", map[string]interface{}{
				"payload": msg.Payload,
			})
			if _, err := c.reload(ctx); err != nil {
				c.logger.Error("catalog_reload_failed", "Catalog reload after Pub/Sub update failed", "", err, nil)
			}
		case <-ctx.Done():
			return
		}
	}
}

package snapshotcache

import (
	"context"

	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"golang.org/x/sync/singleflight"
)

// Loader produces a fresh snapshot.
type Loader interface {
	Load(ctx context.Context) models.Snapshot
}

// Cache serves snapshots from a Store and reloads on a miss. Concurrent
// misses share a single load, which runs detached from the cancellation of
// the caller that started it; the feed client timeout bounds it instead.
// Degraded snapshots are cached like any other, so an upstream outage is
// retried once per TTL rather than once per request.
type Cache struct {
	loader Loader
	store  Store
	group  singleflight.Group
	logger logging.Logger
}

// New creates a Cache. A nil store disables caching: every call loads.
func New(loader Loader, store Store, logger logging.Logger) *Cache {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Cache{loader: loader, store: store, logger: logger}
}

// Snapshot returns the cached snapshot, loading one if needed.
func (c *Cache) Snapshot(ctx context.Context) models.Snapshot {
	if c.store != nil {
		if snap, ok := c.store.Get(ctx); ok {
			return snap
		}
	}
	return c.load(ctx)
}

// Refresh discards any cached snapshot and loads a new one.
func (c *Cache) Refresh(ctx context.Context) models.Snapshot {
	if c.store != nil {
		c.store.Invalidate(ctx)
	}
	return c.load(ctx)
}

func (c *Cache) load(ctx context.Context) models.Snapshot {
	// other callers may join this load after the first one has gone away
	loadCtx := context.WithoutCancel(ctx)
	v, _, shared := c.group.Do(snapshotKey, func() (interface{}, error) {
		snap := c.loader.Load(loadCtx)
		if c.store != nil {
			c.store.Set(loadCtx, snap)
		}
		return snap, nil
	})
	if shared {
		c.logger.Debug("Joined in-flight snapshot load")
	}
	return v.(models.Snapshot)
}

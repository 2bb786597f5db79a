// Package container provides dependency injection for the relief-ledger
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ieee-sl/relief-ledger/internal/columns"
	"github.com/ieee-sl/relief-ledger/internal/config"
	"github.com/ieee-sl/relief-ledger/internal/feed"
	"github.com/ieee-sl/relief-ledger/internal/ingest"
	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/media"
	"github.com/ieee-sl/relief-ledger/internal/snapshotcache"
	"github.com/ieee-sl/relief-ledger/internal/store"
	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation - all fields are private and can only
// be accessed through getter methods.
type Container struct {
	logger  logging.Logger
	config  *config.Config
	table   columns.Table
	source  feed.Source
	service *ingest.Service
	cache   *snapshotcache.Cache
	redis   *redis.Client
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, config.NewLogger(cfg))
}

// NewContainerWithLogger is NewContainer with an externally built logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	table, err := store.NewAliasStore(cfg.Columns.AliasesFile, logger).Table()
	if err != nil {
		return nil, fmt.Errorf("error loading column aliases: %w", err)
	}

	var source feed.Source
	if cfg.Feeds.UseMockData {
		source = feed.NewMockSource(table, logger)
		logger.Info("Serving built-in demo data")
	} else {
		source = feed.NewHTTPSource(&http.Client{}, table, logger, cfg.FeedTimeout(), cfg.Feeds.MaxBytes)
	}

	var prober *media.ThumbnailProber
	if cfg.Media.ProbeThumbnails {
		prober = media.NewThumbnailProber(nil, logger)
	}

	service := ingest.NewService(source, ingest.Options{
		TransactionsURL: cfg.Feeds.TransactionsURL,
		StoriesURL:      cfg.Feeds.StoriesURL,
		Table:           table,
		Prober:          prober,
	}, logger)

	c := &Container{
		logger:  logger,
		config:  cfg,
		table:   table,
		source:  source,
		service: service,
	}

	snapshotStore := c.newSnapshotStore()
	c.cache = snapshotcache.New(service, snapshotStore, logger)

	logger.Info("Container initialized successfully",
		logging.F("mock_data", cfg.Feeds.UseMockData),
		logging.F("cache_ttl_seconds", cfg.Cache.TTLSeconds),
		logging.F("redis", c.redis != nil))

	return c, nil
}

// newSnapshotStore picks the snapshot store: none when caching is disabled,
// Redis when configured and reachable, otherwise in-process.
func (c *Container) newSnapshotStore() snapshotcache.Store {
	ttl := c.config.CacheTTL()
	if ttl <= 0 {
		return nil
	}

	if c.config.Cache.RedisURL != "" {
		client := redis.NewClient(snapshotcache.ParseRedisURL(c.config.Cache.RedisURL))
		ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			c.logger.WithError(err).Warn("Redis unavailable, caching snapshots in process")
			_ = client.Close()
		} else {
			c.redis = client
			return snapshotcache.NewRedisStore(client, ttl, c.logger)
		}
	}

	return snapshotcache.NewMemoryStore(ttl)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetTable returns the effective column alias table.
func (c *Container) GetTable() columns.Table {
	return c.table
}

// GetSource returns the feed source.
func (c *Container) GetSource() feed.Source {
	return c.source
}

// GetService returns the uncached ingest service.
func (c *Container) GetService() *ingest.Service {
	return c.service
}

// GetCache returns the snapshot cache used by the HTTP server.
func (c *Container) GetCache() *snapshotcache.Cache {
	return c.cache
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			return fmt.Errorf("error closing redis client: %w", err)
		}
	}
	c.logger.Debug("Container closed")
	return nil
}

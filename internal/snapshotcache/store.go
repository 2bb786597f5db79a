// Package snapshotcache keeps the last loaded snapshot for a configurable
// time so that page views do not each trigger a fetch of both feeds.
package snapshotcache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ieee-sl/relief-ledger/internal/logging"
	"github.com/ieee-sl/relief-ledger/internal/models"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const snapshotKey = "relief-ledger:snapshot"

// Store holds at most one snapshot. Implementations log their own failures
// and report a miss instead of returning errors.
type Store interface {
	Get(ctx context.Context) (models.Snapshot, bool)
	Set(ctx context.Context, snap models.Snapshot)
	Invalidate(ctx context.Context)
}

// MemoryStore is an in-process Store backed by go-cache.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewMemoryStore creates an in-process store whose entry expires after ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 2*ttl), ttl: ttl}
}

func (s *MemoryStore) Get(_ context.Context) (models.Snapshot, bool) {
	if v, found := s.cache.Get(snapshotKey); found {
		return v.(models.Snapshot), true
	}
	return models.Snapshot{}, false
}

func (s *MemoryStore) Set(_ context.Context, snap models.Snapshot) {
	s.cache.Set(snapshotKey, snap, s.ttl)
}

func (s *MemoryStore) Invalidate(_ context.Context) {
	s.cache.Delete(snapshotKey)
}

// RedisStore shares the snapshot between replicas through Redis, encoded as
// JSON.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger logging.Logger
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger logging.Logger) *RedisStore {
	if logger == nil {
		logger = logging.Discard()
	}
	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

// ParseRedisURL accepts either a redis:// URL or a bare host:port address.
func ParseRedisURL(raw string) *redis.Options {
	opt, err := redis.ParseURL(raw)
	if err != nil {
		opt = &redis.Options{Addr: raw}
	}
	return opt
}

func (s *RedisStore) Get(ctx context.Context) (models.Snapshot, bool) {
	data, err := s.client.Get(ctx, snapshotKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Snapshot{}, false
	}
	if err != nil {
		s.logger.WithError(err).Warn("Failed to read cached snapshot from redis")
		return models.Snapshot{}, false
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		s.logger.WithError(err).Warn("Discarding undecodable cached snapshot")
		return models.Snapshot{}, false
	}
	return snap, true
}

func (s *RedisStore) Set(ctx context.Context, snap models.Snapshot) {
	data, err := encodeSnapshot(snap)
	if err != nil {
		s.logger.WithError(err).Error("Failed to encode snapshot for redis")
		return
	}
	if err := s.client.Set(ctx, snapshotKey, data, s.ttl).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to write snapshot to redis")
	}
}

func (s *RedisStore) Invalidate(ctx context.Context) {
	if err := s.client.Del(ctx, snapshotKey).Err(); err != nil {
		s.logger.WithError(err).Warn("Failed to delete cached snapshot from redis")
	}
}

func encodeSnapshot(snap models.Snapshot) ([]byte, error) {
	return json.Marshal(snap)
}

func decodeSnapshot(data []byte) (models.Snapshot, error) {
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("error decoding snapshot: %w", err)
	}
	return snap, nil
}

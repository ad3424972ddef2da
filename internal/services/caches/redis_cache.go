package caches

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"catalog-service/internal/services/cache"
)

// ByteStore is the subset of storage.RedisClient the Redis tier uses.
type ByteStore interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePattern(ctx context.Context, pattern string) (int, error)
}

const redisKeyPrefix = "qr:"

// RedisCache is the shared tier, visible to every replica.
type RedisCache struct {
	client ByteStore
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func NewRedisCache(client ByteStore, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

func (rc *RedisCache) Name() string {
	return "REDIS"
}

func (rc *RedisCache) Store(ctx context.Context, key string, data []byte) error {
	if err := rc.client.SetBytes(ctx, redisKeyPrefix+key, data, rc.ttl); err != nil {
		return fmt.Errorf("failed to store in Redis: %w", err)
	}
	return nil
}

func (rc *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := rc.client.GetBytes(ctx, redisKeyPrefix+key)
	if err != nil {
		rc.misses.Add(1)
		return nil, fmt.Errorf("redis error: %w", err)
	}
	if data == nil {
		rc.misses.Add(1)
		return nil, cache.ErrMiss
	}
	rc.hits.Add(1)
	return data, nil
}

func (rc *RedisCache) Delete(ctx context.Context, key string) error {
	return rc.client.Delete(ctx, redisKeyPrefix+key)
}

func (rc *RedisCache) Clear(ctx context.Context) error {
	if _, err := rc.client.DeletePattern(ctx, redisKeyPrefix+"*"); err != nil {
		return err
	}
	rc.hits.Store(0)
	rc.misses.Store(0)
	return nil
}

func (rc *RedisCache) GetStats() cache.LayerStats {
	hits, misses := rc.hits.Load(), rc.misses.Load()
	return cache.LayerStats{
		Name:    "Redis",
		Hits:    hits,
		Misses:  misses,
		HitRate: cache.HitRate(hits, misses),
	}
}

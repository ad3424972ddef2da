package caches

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"catalog-service/internal/services/cache"
)

// MemoryCache is a size-bounded in-process tier with LRU eviction and a TTL.
type MemoryCache struct {
	mu          sync.Mutex
	entries     map[string]*memoryEntry
	maxSize     int64
	currentSize int64
	ttl         time.Duration
	now         func() time.Time

	hits   atomic.Int64
	misses atomic.Int64
}

type memoryEntry struct {
	data       []byte
	createdAt  time.Time
	lastAccess time.Time
}

func NewMemoryCache(maxSizeBytes int64, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]*memoryEntry),
		maxSize: maxSizeBytes,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (mc *MemoryCache) Name() string {
	return "MEMORY"
}

func (mc *MemoryCache) Store(_ context.Context, key string, data []byte) error {
	size := int64(len(data))
	if size > mc.maxSize {
		return fmt.Errorf("entry of %d bytes exceeds memory cache size %d", size, mc.maxSize)
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.removeLocked(key)
	for mc.currentSize+size > mc.maxSize {
		if !mc.evictLRULocked() {
			return fmt.Errorf("unable to free space for entry of size %d", size)
		}
	}
	now := mc.now()
	mc.entries[key] = &memoryEntry{data: data, createdAt: now, lastAccess: now}
	mc.currentSize += size
	return nil
}

func (mc *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	e, ok := mc.entries[key]
	if ok && mc.ttl > 0 && mc.now().Sub(e.createdAt) > mc.ttl {
		mc.removeLocked(key)
		ok = false
	}
	if !ok {
		mc.misses.Add(1)
		return nil, cache.ErrMiss
	}
	e.lastAccess = mc.now()
	mc.hits.Add(1)
	return e.data, nil
}

func (mc *MemoryCache) Delete(_ context.Context, key string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.removeLocked(key)
	return nil
}

func (mc *MemoryCache) Clear(_ context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	n := len(mc.entries)
	mc.entries = make(map[string]*memoryEntry)
	mc.currentSize = 0
	mc.hits.Store(0)
	mc.misses.Store(0)
	log.Debug().Int("entries", n).Msg("memory cache cleared")
	return nil
}

func (mc *MemoryCache) GetStats() cache.LayerStats {
	mc.mu.Lock()
	objects, size := len(mc.entries), mc.currentSize
	mc.mu.Unlock()

	hits, misses := mc.hits.Load(), mc.misses.Load()
	return cache.LayerStats{
		Name:      "Memory",
		Objects:   objects,
		SizeBytes: size,
		Hits:      hits,
		Misses:    misses,
		HitRate:   cache.HitRate(hits, misses),
	}
}

func (mc *MemoryCache) removeLocked(key string) {
	if e, ok := mc.entries[key]; ok {
		mc.currentSize -= int64(len(e.data))
		delete(mc.entries, key)
	}
}

func (mc *MemoryCache) evictLRULocked() bool {
	var (
		oldestKey  string
		oldestTime time.Time
		found      bool
	)
	for k, e := range mc.entries {
		if !found || e.lastAccess.Before(oldestTime) {
			oldestKey, oldestTime, found = k, e.lastAccess, true
		}
	}
	if found {
		mc.removeLocked(oldestKey)
	}
	return found
}

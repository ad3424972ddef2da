package caches

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"catalog-service/internal/services/cache"
)

// TieredCache checks its layers fastest first and copies a hit into every
// faster layer that missed.
type TieredCache struct {
	layers []cache.CacheLayer
}

// NewTieredCache orders layers fastest first. Nil layers are skipped.
func NewTieredCache(layers ...cache.CacheLayer) *TieredCache {
	t := &TieredCache{}
	for _, l := range layers {
		if l != nil {
			t.layers = append(t.layers, l)
		}
	}
	return t
}

func (t *TieredCache) Name() string {
	return "TIERED"
}

// Get returns the first hit. A failing layer is logged and treated as a miss.
func (t *TieredCache) Get(ctx context.Context, key string) ([]byte, error) {
	for i, l := range t.layers {
		data, err := l.Get(ctx, key)
		if err != nil {
			if !errors.Is(err, cache.ErrMiss) {
				log.Ctx(ctx).Warn().Err(err).Str("layer", l.Name()).Msg("cache layer read failed")
			}
			continue
		}
		for _, faster := range t.layers[:i] {
			if err := faster.Store(ctx, key, data); err != nil {
				log.Ctx(ctx).Debug().Err(err).Str("layer", faster.Name()).Msg("cache promotion failed")
			}
		}
		return data, nil
	}
	return nil, cache.ErrMiss
}

// Store writes to every layer and returns the first error.
func (t *TieredCache) Store(ctx context.Context, key string, data []byte) error {
	var first error
	for _, l := range t.layers {
		if err := l.Store(ctx, key, data); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t *TieredCache) Delete(ctx context.Context, key string) error {
	var first error
	for _, l := range t.layers {
		if err := l.Delete(ctx, key); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t *TieredCache) Clear(ctx context.Context) error {
	var first error
	for _, l := range t.layers {
		if err := l.Clear(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t *TieredCache) GetStats() cache.LayerStats {
	s := cache.LayerStats{Name: "Tiered"}
	for _, l := range t.layers {
		ls := l.GetStats()
		s.Objects += ls.Objects
		s.SizeBytes += ls.SizeBytes
		s.Hits += ls.Hits
		s.Misses += ls.Misses
	}
	s.HitRate = cache.HitRate(s.Hits, s.Misses)
	return s
}

// Layers returns per-layer stats.
func (t *TieredCache) Layers() []cache.LayerStats {
	out := make([]cache.LayerStats, 0, len(t.layers))
	for _, l := range t.layers {
		out = append(out, l.GetStats())
	}
	return out
}

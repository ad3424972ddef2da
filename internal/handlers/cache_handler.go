package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"catalog-service/internal/services/cache"
)

// QRCache is the tiered cache behind rendered QR images.
type QRCache interface {
	GetStats() cache.LayerStats
	Layers() []cache.LayerStats
	Clear(ctx context.Context) error
}

// CacheHandler exposes QR cache statistics and invalidation.
type CacheHandler struct {
	cache QRCache
}

func NewCacheHandler(c QRCache) *CacheHandler {
	return &CacheHandler{cache: c}
}

// GetCacheStats handles GET /cache/stats
// @Summary QR cache statistics
// @Description Returns combined and per-layer hit rates of the QR image cache
// @Tags cache
// @Produce json
// @Success 200 {object} map[string]interface{} "Cache statistics"
// @Router /cache/stats [get]
func (h *CacheHandler) GetCacheStats(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"total":  h.cache.GetStats(),
		"layers": h.cache.Layers(),
	})
}

// ClearCache handles DELETE /cache
// @Summary Clear the QR cache
// @Tags cache
// @Success 204
// @Failure 500 {object} map[string]interface{} "Internal server error"
// @Router /cache [delete]
func (h *CacheHandler) ClearCache(c *fiber.Ctx) error {
	ctx := c.UserContext()
	if err := h.cache.Clear(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to clear qr cache")
		return errorResponse(c, fiber.StatusInternalServerError, "failed to clear cache")
	}
	log.Ctx(ctx).Info().Msg("qr cache cleared")
	return c.SendStatus(fiber.StatusNoContent)
}

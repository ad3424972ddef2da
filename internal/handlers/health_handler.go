package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	db    Pinger
	redis Pinger
}

// NewHealthHandler checks db on every call. redis may be nil; a redis
// outage is reported but does not fail the check since the QR cache
// degrades to memory.
func NewHealthHandler(db, redis Pinger) *HealthHandler {
	return &HealthHandler{db: db, redis: redis}
}

// Health handles GET /health
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{} "Healthy"
// @Failure 503 {object} map[string]interface{} "Database unreachable"
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := fiber.Map{"database": "ok"}
	code := fiber.StatusOK
	if err := h.db.Ping(ctx); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("health: database ping failed")
		status["database"] = "unavailable"
		code = fiber.StatusServiceUnavailable
	}
	if h.redis != nil {
		status["redis"] = "ok"
		if err := h.redis.Ping(ctx); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("health: redis ping failed")
			status["redis"] = "unavailable"
		}
	}
	status["healthy"] = code == fiber.StatusOK
	return c.Status(code).JSON(status)
}

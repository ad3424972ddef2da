package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"catalog-service/internal/logging"
)

// Handlers groups everything Register mounts. Nil handlers are skipped.
type Handlers struct {
	SEO      *SEOHandler
	QR       *QRHandler
	Models   *ModelHandler
	Variants *VariantHandler
	Customer *CustomerHandler
	Cache    *CacheHandler
	Health   *HealthHandler

	// ViewRateLimit caps view events per client IP per minute. Zero
	// disables the limit.
	ViewRateLimit int
}

// NewApp returns a fiber app with the service's error handling.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "catalog-service",
		ErrorHandler: jsonErrorHandler,
	})
}

func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return errorResponse(c, code, err.Error())
}

// Register mounts middleware and every route on app.
func Register(app *fiber.App, h Handlers) {
	app.Use(recover.New())
	app.Use(cors.New())
	app.Use(logging.RequestLogger())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if h.SEO != nil {
		app.Get("/f/*", h.SEO.Redirect)
	}
	if h.QR != nil {
		app.Get("/qr/*", h.QR.Serve)
	}

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)
	if h.Health != nil {
		api.Get("/health", h.Health.Health)
	}

	if m := h.Models; m != nil {
		api.Get("/models", m.ListModels)
		api.Post("/models", m.CreateModel)
		api.Get("/models/:id", m.GetModel)
		api.Patch("/models/:id", m.UpdateModel)
		api.Delete("/models/:id", m.DeleteModel)
		api.Get("/models/:id/file", m.DownloadModel)
		api.Get("/models/:id/share", m.ShareLinks)
		api.Get("/models/:id/stats", m.ViewStats)
		if h.ViewRateLimit > 0 {
			api.Post("/models/:id/views", viewLimiter(h.ViewRateLimit), m.RecordView)
		} else {
			api.Post("/models/:id/views", m.RecordView)
		}
	}

	if v := h.Variants; v != nil {
		api.Get("/models/:id/variants", v.ListVariants)
		api.Post("/models/:id/variants", v.CreateVariant)
		api.Put("/variants/:id/primary", v.SetPrimary)
		api.Delete("/variants/:id", v.DeleteVariant)
	}

	if cu := h.Customer; cu != nil {
		api.Post("/customers", cu.CreateCustomer)
		api.Get("/customers/:id", cu.GetCustomer)
		api.Put("/customers/:id/branding", cu.UpdateBranding)
	}

	if ch := h.Cache; ch != nil {
		api.Get("/cache/stats", ch.GetCacheStats)
		api.Delete("/cache", ch.ClearCache)
	}
}

func viewLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return errorResponse(c, fiber.StatusTooManyRequests, "too many view events, slow down")
		},
	})
}

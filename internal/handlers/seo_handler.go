package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"catalog-service/internal/links"
	"catalog-service/internal/metrics"
	"catalog-service/internal/resolver"
)

// PathResolver resolves public paths to models.
type PathResolver interface {
	Resolve(ctx context.Context, customerSlug, productSlugWithID, variantSlug string) (resolver.Result, error)
	ResolveStem(ctx context.Context, customerSlug, stem string) (resolver.Result, error)
}

const seoPathHint = "expected /f/{customer}/{product-slug-id}[/{variant}]"

// SEOHandler redirects human-readable links to the AR viewer.
type SEOHandler struct {
	resolver      PathResolver
	viewerBaseURL string
}

func NewSEOHandler(r PathResolver, viewerBaseURL string) *SEOHandler {
	return &SEOHandler{resolver: r, viewerBaseURL: viewerBaseURL}
}

// Redirect handles GET /f/{customer}/{productSlugWithId}[/{variant}].
// @Summary Resolve an SEO link
// @Description Redirects to the AR viewer for the model (and variant) the path names. An unknown variant falls back to the model.
// @Tags links
// @Param customer path string true "Customer slug"
// @Param product path string true "Product slug ending in the model id"
// @Success 301 "Redirect to the viewer"
// @Failure 400 {object} map[string]interface{} "Malformed path"
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Failure 503 {object} map[string]interface{} "Data store unavailable"
// @Router /f/{customer}/{product} [get]
func (h *SEOHandler) Redirect(c *fiber.Ctx) error {
	start := time.Now()
	segs, ok := splitPath(c.Params("*"))
	if !ok || len(segs) < 2 || len(segs) > 3 {
		metrics.RecordResolution("seo", "malformed", time.Since(start))
		return errorResponse(c, fiber.StatusBadRequest, "malformed link: "+seoPathHint)
	}
	var variant string
	if len(segs) == 3 {
		variant = segs[2]
	}

	ctx := c.UserContext()
	res, err := h.resolver.Resolve(ctx, segs[0], segs[1], variant)
	if err != nil {
		metrics.RecordResolution("seo", "store_unavailable", time.Since(start))
		log.Ctx(ctx).Error().Err(err).Str("path", c.Path()).Msg("link resolution failed")
		return errorResponse(c, fiber.StatusServiceUnavailable, "service temporarily unavailable")
	}
	metrics.RecordResolution("seo", res.Outcome.String(), time.Since(start))
	if !res.Found() {
		return errorResponse(c, fiber.StatusNotFound, "model not found")
	}
	if res.Outcome == resolver.VariantNotFound {
		log.Ctx(ctx).Info().Str("model_id", res.Model.ID).Str("variant", variant).Msg("unknown variant, redirecting to model")
	}

	var variantID string
	if res.Variant != nil {
		variantID = res.Variant.ID
	}
	return c.Redirect(links.ViewerURL(h.viewerBaseURL, res.Model.ID, variantID), fiber.StatusMovedPermanently)
}

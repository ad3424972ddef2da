package handlers

import (
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"catalog-service/internal/metrics"
	"catalog-service/internal/qrcode"
	"catalog-service/internal/services"
)

const qrPathHint = "expected /qr/{customer}/{product-slug-id}[-{variant}].{svg|png}"

// QRHandler serves QR images for SEO links.
type QRHandler struct {
	resolver PathResolver
	qr       *services.QRService
}

func NewQRHandler(r PathResolver, qr *services.QRService) *QRHandler {
	return &QRHandler{resolver: r, qr: qr}
}

// Serve handles GET /qr/{customer}/{productSlugWithId}[-{variant}].{svg|png}.
// @Summary QR code for an SEO link
// @Description Renders a QR code encoding the canonical SEO URL of the model or variant.
// @Tags links
// @Produce image/svg+xml
// @Produce image/png
// @Param customer path string true "Customer slug"
// @Param file path string true "Product slug with id, optional variant, and .svg or .png"
// @Param size query int false "Image size in pixels (64-2048, default 256)"
// @Param format query string false "svg or png when the path has no extension"
// @Success 200 {file} binary "QR image"
// @Failure 400 {object} map[string]interface{} "Malformed path or options"
// @Failure 404 {object} map[string]interface{} "Model not found"
// @Failure 503 {object} map[string]interface{} "Data store unavailable"
// @Router /qr/{customer}/{file} [get]
func (h *QRHandler) Serve(c *fiber.Ctx) error {
	start := time.Now()
	segs, ok := splitPath(c.Params("*"))
	if !ok || len(segs) != 2 {
		metrics.RecordResolution("qr", "malformed", time.Since(start))
		return errorResponse(c, fiber.StatusBadRequest, "malformed link: "+qrPathHint)
	}
	stem, format, err := splitFormat(segs[1], c.Query("format"))
	if err != nil {
		metrics.RecordResolution("qr", "malformed", time.Since(start))
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}
	size, err := parseSize(c.Query("size"))
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	ctx := c.UserContext()
	res, err := h.resolver.ResolveStem(ctx, segs[0], stem)
	if err != nil {
		metrics.RecordResolution("qr", "store_unavailable", time.Since(start))
		log.Ctx(ctx).Error().Err(err).Str("path", c.Path()).Msg("qr resolution failed")
		return errorResponse(c, fiber.StatusServiceUnavailable, "service temporarily unavailable")
	}
	metrics.RecordResolution("qr", res.Outcome.String(), time.Since(start))
	if !res.Found() {
		return errorResponse(c, fiber.StatusNotFound, "model not found")
	}

	data, _, err := h.qr.Render(ctx, res.Model, res.Variant, qrcode.Options{Format: format, Size: size})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("model_id", res.Model.ID).Msg("qr render failed")
		return errorResponse(c, fiber.StatusInternalServerError, "failed to render qr code")
	}
	c.Set(fiber.HeaderContentType, format.ContentType())
	c.Set(fiber.HeaderCacheControl, "public, max-age=31536000, immutable")
	return c.Send(data)
}

// splitFormat separates the stem from an .svg or .png extension. Without
// an extension the format query decides, defaulting to svg.
func splitFormat(file, formatQuery string) (string, qrcode.Format, error) {
	ext := path.Ext(file)
	if ext == "" {
		if formatQuery == "" {
			return file, qrcode.FormatSVG, nil
		}
		f, err := qrcode.ParseFormat(formatQuery)
		return file, f, err
	}
	f, err := qrcode.ParseFormat(strings.TrimPrefix(ext, "."))
	if err != nil {
		return "", "", err
	}
	return strings.TrimSuffix(file, ext), f, nil
}

func parseSize(q string) (int, error) {
	if q == "" {
		return qrcode.DefaultSize, nil
	}
	n, err := strconv.Atoi(q)
	if err != nil || n < qrcode.MinSize || n > qrcode.MaxSize {
		return 0, fiber.NewError(fiber.StatusBadRequest,
			"size must be an integer between "+strconv.Itoa(qrcode.MinSize)+" and "+strconv.Itoa(qrcode.MaxSize))
	}
	return n, nil
}

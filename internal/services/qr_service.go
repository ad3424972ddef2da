package services

import (
	"context"
	"errors"
	"strconv"

	"github.com/rs/zerolog/log"

	"catalog-service/internal/links"
	"catalog-service/internal/metrics"
	"catalog-service/internal/models"
	"catalog-service/internal/qrcode"
	"catalog-service/internal/services/cache"
)

// QRService renders QR codes that point at a model's canonical SEO URL.
type QRService struct {
	renderer      qrcode.Renderer
	cache         cache.CacheLayer
	publicBaseURL string
}

// NewQRService creates a QRService. cache may be nil.
func NewQRService(renderer qrcode.Renderer, c cache.CacheLayer, publicBaseURL string) *QRService {
	return &QRService{renderer: renderer, cache: c, publicBaseURL: publicBaseURL}
}

// TargetURL is the payload encoded for m and optional v.
func (s *QRService) TargetURL(m *models.Model, v *models.Variant) string {
	return links.SEOURL(s.publicBaseURL, m, v)
}

// Render returns the image bytes and whether they came from the cache.
func (s *QRService) Render(ctx context.Context, m *models.Model, v *models.Variant, opts qrcode.Options) ([]byte, bool, error) {
	if opts.Size == 0 {
		opts.Size = qrcode.DefaultSize
	}
	target := s.TargetURL(m, v)
	key := string(opts.Format) + ":" + strconv.Itoa(opts.Size) + ":" + target

	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		if err == nil {
			metrics.RecordQRRender(string(opts.Format), true)
			return data, true, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Ctx(ctx).Warn().Err(err).Msg("qr cache read failed")
		}
	}

	data, err := s.renderer.Render(target, opts)
	if err != nil {
		return nil, false, err
	}
	metrics.RecordQRRender(string(opts.Format), false)
	if s.cache != nil {
		if err := s.cache.Store(ctx, key, data); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("qr cache write failed")
		}
	}
	return data, false, nil
}

package services

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"catalog-service/internal/metrics"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
)

// AnalyticsService tracks model views.
type AnalyticsService struct {
	models    repository.ModelRepository
	variants  repository.VariantRepository
	analytics repository.AnalyticsRepository
}

func NewAnalyticsService(models repository.ModelRepository, variants repository.VariantRepository, analytics repository.AnalyticsRepository) *AnalyticsService {
	return &AnalyticsService{models: models, variants: variants, analytics: analytics}
}

// RecordView counts one view of modelID, and of variantID when non-empty.
func (s *AnalyticsService) RecordView(ctx context.Context, modelID, variantID string) error {
	exists, err := s.models.ModelExists(ctx, modelID)
	if err != nil {
		return errors.Wrap(err, "check model")
	}
	if !exists {
		return ErrNotFound
	}
	var vid *string
	if variantID != "" {
		v, err := s.variants.FindVariantByID(ctx, variantID)
		if err != nil {
			return errors.Wrap(err, "find variant")
		}
		if v == nil || v.ParentModelID != modelID {
			return invalidInput("variant does not belong to model")
		}
		vid = &variantID
	}
	if err := s.analytics.RecordView(ctx, modelID, vid); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return errors.Wrap(err, "record view")
	}
	metrics.RecordView()
	log.Ctx(ctx).Debug().Str("model_id", modelID).Str("variant_id", variantID).Msg("view recorded")
	return nil
}

func (s *AnalyticsService) Stats(ctx context.Context, modelID string) (*models.ViewStats, error) {
	stats, err := s.analytics.ViewStats(ctx, modelID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "view stats")
	}
	return stats, nil
}

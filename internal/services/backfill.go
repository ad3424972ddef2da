package services

import (
	"context"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"catalog-service/internal/metrics"
	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/slug"
)

// RowError is a row the backfill could not update.
type RowError struct {
	Table string `json:"table"`
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BackfillReport summarises one backfill run.
type BackfillReport struct {
	Updated int        `json:"updated"`
	Errors  []RowError `json:"errors"`
}

// SlugBackfill assigns slugs to rows created before slug support. Only
// missing fields are written, so repeated runs are no-ops.
type SlugBackfill struct {
	models   repository.ModelRepository
	variants repository.VariantRepository
}

func NewSlugBackfill(models repository.ModelRepository, variants repository.VariantRepository) *SlugBackfill {
	return &SlugBackfill{models: models, variants: variants}
}

// Run backfills models then variants. A failing row is recorded and
// skipped. The returned error is set only when the candidate rows cannot be
// listed or ctx ends; the report then covers the rows done so far.
func (b *SlugBackfill) Run(ctx context.Context) (*BackfillReport, error) {
	report := &BackfillReport{Errors: []RowError{}}
	logger := log.Ctx(ctx)

	pending, err := b.models.ListModelsMissingSlugs(ctx)
	if err != nil {
		return report, errors.Wrap(err, "list models missing slugs")
	}
	for i := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		m := &pending[i]
		fields := missingModelSlugs(m)
		if len(fields) == 0 {
			continue
		}
		if err := b.models.UpdateModelSlugs(ctx, m.ID, fields); err != nil {
			report.Errors = append(report.Errors, RowError{Table: "models", ID: m.ID, Error: err.Error()})
			metrics.RecordBackfill("models", "error")
			logger.Warn().Err(err).Str("model_id", m.ID).Msg("backfill failed for model")
			continue
		}
		report.Updated++
		metrics.RecordBackfill("models", "updated")
	}

	variants, err := b.variants.ListVariantsMissingColorSlug(ctx)
	if err != nil {
		return report, errors.Wrap(err, "list variants missing color slug")
	}
	for i := range variants {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		v := &variants[i]
		colorSlug, err := b.freeColorSlug(ctx, v)
		if err == nil {
			err = b.variants.UpdateColorSlug(ctx, v.ID, colorSlug)
		}
		if err != nil {
			report.Errors = append(report.Errors, RowError{Table: "model_variants", ID: v.ID, Error: err.Error()})
			metrics.RecordBackfill("model_variants", "error")
			logger.Warn().Err(err).Str("variant_id", v.ID).Msg("backfill failed for variant")
			continue
		}
		report.Updated++
		metrics.RecordBackfill("model_variants", "updated")
	}

	logger.Info().Int("updated", report.Updated).Int("errors", len(report.Errors)).Msg("slug backfill finished")
	return report, nil
}

// freeColorSlug returns the computed slug, suffixed when a sibling already
// holds it.
func (b *SlugBackfill) freeColorSlug(ctx context.Context, v *models.Variant) (string, error) {
	base := slug.VariantSlug(v.VariantName, v.HexColor)
	candidate := base
	for n := 2; n < 100; n++ {
		taken, err := b.variants.ColorSlugTaken(ctx, v.ParentModelID, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = base + "-" + strconv.Itoa(n)
	}
	return "", errors.Errorf("no free color slug for %q", base)
}

func missingModelSlugs(m *models.Model) map[string]interface{} {
	fields := map[string]interface{}{}
	if isBlank(m.URLSlug) {
		fields["url_slug"] = slug.ModelSlug(m.Title, m.ID)
	}
	if isBlank(m.CustomerSlug) {
		fields["customer_slug"] = slug.Normalize(m.CustomerID)
	}
	if !isBlank(m.Category) && isBlank(m.CategorySlug) {
		fields["category_slug"] = slug.Normalize(*m.Category)
	}
	return fields
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}


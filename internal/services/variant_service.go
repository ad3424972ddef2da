package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"catalog-service/internal/models"
	"catalog-service/internal/repository"
	"catalog-service/internal/slug"
)

// CreateVariantInput describes a new variant. HexColor is "#rrggbb".
type CreateVariantInput struct {
	VariantName *string
	HexColor    string
	IsPrimary   bool
}

// VariantService manages the color and material variants of models.
type VariantService struct {
	models   repository.ModelRepository
	variants repository.VariantRepository
	newID    func() (string, error)
}

func NewVariantService(models repository.ModelRepository, variants repository.VariantRepository) *VariantService {
	return &VariantService{models: models, variants: variants, newID: NewID}
}

// CreateVariant adds a variant to modelID. Its color_slug is unique within
// the model; a clash gets a numeric suffix.
func (s *VariantService) CreateVariant(ctx context.Context, modelID string, in CreateVariantInput) (*models.Variant, error) {
	exists, err := s.models.ModelExists(ctx, modelID)
	if err != nil {
		return nil, errors.Wrap(err, "check model")
	}
	if !exists {
		return nil, ErrNotFound
	}
	if in.VariantName != nil {
		name := strings.TrimSpace(*in.VariantName)
		if name == "" {
			in.VariantName = nil
		} else {
			in.VariantName = &name
		}
	}
	if in.VariantName == nil && strings.TrimSpace(in.HexColor) == "" {
		return nil, invalidInput("variant_name or hex_color is required")
	}

	colorSlug, err := s.freeColorSlug(ctx, modelID, slug.VariantSlug(in.VariantName, in.HexColor))
	if err != nil {
		return nil, err
	}
	id, err := uniqueID(ctx, s.newID, func(ctx context.Context, id string) (bool, error) {
		v, err := s.variants.FindVariantByID(ctx, id)
		return v != nil, err
	})
	if err != nil {
		return nil, err
	}

	v := &models.Variant{
		ID:            id,
		ParentModelID: modelID,
		VariantName:   in.VariantName,
		HexColor:      strings.ToUpper(strings.TrimSpace(in.HexColor)),
		ColorSlug:     &colorSlug,
		IsPrimary:     in.IsPrimary,
	}
	if err := s.variants.CreateVariant(ctx, v); err != nil {
		return nil, errors.Wrap(err, "create variant")
	}
	return v, nil
}

func (s *VariantService) freeColorSlug(ctx context.Context, modelID, base string) (string, error) {
	candidate := base
	for n := 2; ; n++ {
		taken, err := s.variants.ColorSlugTaken(ctx, modelID, candidate)
		if err != nil {
			return "", errors.Wrap(err, "check color slug")
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

// ListVariants returns the variants of modelID, primary first.
func (s *VariantService) ListVariants(ctx context.Context, modelID string) ([]models.Variant, error) {
	exists, err := s.models.ModelExists(ctx, modelID)
	if err != nil {
		return nil, errors.Wrap(err, "check model")
	}
	if !exists {
		return nil, ErrNotFound
	}
	out, err := s.variants.FindVariantsByModel(ctx, modelID)
	if err != nil {
		return nil, errors.Wrap(err, "find variants")
	}
	return out, nil
}

// SetPrimary makes variantID the only primary variant of its model.
func (s *VariantService) SetPrimary(ctx context.Context, variantID string) (*models.Variant, error) {
	v, err := s.variants.FindVariantByID(ctx, variantID)
	if err != nil {
		return nil, errors.Wrap(err, "find variant")
	}
	if v == nil {
		return nil, ErrNotFound
	}
	if err := s.variants.SetPrimaryVariant(ctx, v.ParentModelID, v.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrap(err, "set primary variant")
	}
	v.IsPrimary = true
	return v, nil
}

func (s *VariantService) DeleteVariant(ctx context.Context, variantID string) error {
	v, err := s.variants.FindVariantByID(ctx, variantID)
	if err != nil {
		return errors.Wrap(err, "find variant")
	}
	if v == nil {
		return ErrNotFound
	}
	return errors.Wrap(s.variants.DeleteVariant(ctx, variantID), "delete variant")
}

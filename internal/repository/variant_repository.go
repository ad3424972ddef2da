package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"catalog-service/internal/models"
)

// VariantRepository defines methods for model variants.
type VariantRepository interface {
	CreateVariant(ctx context.Context, variant *models.Variant) error
	FindVariantByID(ctx context.Context, id string) (*models.Variant, error)
	FindVariantsByModel(ctx context.Context, modelID string) ([]models.Variant, error)
	ColorSlugTaken(ctx context.Context, modelID, colorSlug string) (bool, error)
	SetPrimaryVariant(ctx context.Context, modelID, variantID string) error
	DeleteVariant(ctx context.Context, id string) error

	ListVariantsMissingColorSlug(ctx context.Context) ([]models.Variant, error)
	UpdateColorSlug(ctx context.Context, id, colorSlug string) error
}

// VariantRepositoryImpl implements VariantRepository with GORM.
type VariantRepositoryImpl struct {
	db *gorm.DB
}

func NewVariantRepository(db *gorm.DB) *VariantRepositoryImpl {
	return &VariantRepositoryImpl{db: db}
}

// CreateVariant inserts variant. A primary variant demotes its siblings in
// the same transaction.
func (r *VariantRepositoryImpl) CreateVariant(ctx context.Context, variant *models.Variant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if variant.IsPrimary {
			if err := clearPrimary(tx, variant.ParentModelID); err != nil {
				return err
			}
		}
		return tx.Create(variant).Error
	})
}

func (r *VariantRepositoryImpl) FindVariantByID(ctx context.Context, id string) (*models.Variant, error) {
	var v models.Variant
	err := r.db.WithContext(ctx).First(&v, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindVariantsByModel returns the variants of modelID, primary first.
func (r *VariantRepositoryImpl) FindVariantsByModel(ctx context.Context, modelID string) ([]models.Variant, error) {
	var out []models.Variant
	err := r.db.WithContext(ctx).
		Where("parent_model_id = ?", modelID).
		Order("is_primary DESC, created_at, id").
		Find(&out).Error
	return out, err
}

func (r *VariantRepositoryImpl) ColorSlugTaken(ctx context.Context, modelID, colorSlug string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Variant{}).
		Where("parent_model_id = ? AND LOWER(color_slug) = LOWER(?)", modelID, colorSlug).
		Count(&n).Error
	return n > 0, err
}

// SetPrimaryVariant clears is_primary on every sibling and sets it on
// variantID. Returns gorm.ErrRecordNotFound when variantID does not belong
// to modelID.
func (r *VariantRepositoryImpl) SetPrimaryVariant(ctx context.Context, modelID, variantID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := clearPrimary(tx, modelID); err != nil {
			return err
		}
		res := tx.Model(&models.Variant{}).
			Where("id = ? AND parent_model_id = ?", variantID, modelID).
			Update("is_primary", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *VariantRepositoryImpl) DeleteVariant(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Variant{}, "id = ?", id).Error
}

func (r *VariantRepositoryImpl) ListVariantsMissingColorSlug(ctx context.Context) ([]models.Variant, error) {
	var out []models.Variant
	err := r.db.WithContext(ctx).
		Where("color_slug IS NULL OR color_slug = ''").
		Order("parent_model_id, created_at, id").
		Find(&out).Error
	return out, err
}

func (r *VariantRepositoryImpl) UpdateColorSlug(ctx context.Context, id, colorSlug string) error {
	res := r.db.WithContext(ctx).Model(&models.Variant{}).Where("id = ?", id).UpdateColumn("color_slug", colorSlug)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func clearPrimary(tx *gorm.DB, modelID string) error {
	return tx.Model(&models.Variant{}).
		Where("parent_model_id = ? AND is_primary", modelID).
		Update("is_primary", false).Error
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"catalog-service/internal/models"
)

// ModelFilter narrows ListModels. Empty fields match everything.
type ModelFilter struct {
	CustomerID   string
	CategorySlug string
	Limit        int
	Offset       int
}

// ModelRepository defines methods for model metadata.
type ModelRepository interface {
	CreateModel(ctx context.Context, model *models.Model) error
	FindModelByID(ctx context.Context, id string) (*models.Model, error)
	FindModelsBySlug(ctx context.Context, customerSlug, urlSlug string) ([]models.Model, error)
	ModelExists(ctx context.Context, id string) (bool, error)
	ListModels(ctx context.Context, filter ModelFilter) ([]models.Model, error)
	UpdateModel(ctx context.Context, model *models.Model) error
	DeleteModel(ctx context.Context, id string) error

	ListModelsMissingSlugs(ctx context.Context) ([]models.Model, error)
	UpdateModelSlugs(ctx context.Context, id string, fields map[string]interface{}) error
}

// ModelRepositoryImpl implements ModelRepository with GORM.
type ModelRepositoryImpl struct {
	db *gorm.DB
}

// NewModelRepository creates a new ModelRepositoryImpl with the provided GORM database connection.
func NewModelRepository(db *gorm.DB) *ModelRepositoryImpl {
	return &ModelRepositoryImpl{db: db}
}

func (r *ModelRepositoryImpl) CreateModel(ctx context.Context, model *models.Model) error {
	return r.db.WithContext(ctx).Create(model).Error
}

// FindModelByID returns nil without error when no row has id.
func (r *ModelRepositoryImpl) FindModelByID(ctx context.Context, id string) (*models.Model, error) {
	var model models.Model
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &model, nil
}

// FindModelsBySlug returns every model stored under (customerSlug, urlSlug),
// newest first. The customer comparison ignores case.
func (r *ModelRepositoryImpl) FindModelsBySlug(ctx context.Context, customerSlug, urlSlug string) ([]models.Model, error) {
	var out []models.Model
	err := r.db.WithContext(ctx).
		Where("LOWER(customer_slug) = LOWER(?) AND url_slug = ?", customerSlug, urlSlug).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ModelRepositoryImpl) ModelExists(ctx context.Context, id string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Model{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// ListModels returns models newest first.
func (r *ModelRepositoryImpl) ListModels(ctx context.Context, filter ModelFilter) ([]models.Model, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.CategorySlug != "" {
		q = q.Where("category_slug = ?", filter.CategorySlug)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}
	var out []models.Model
	err := q.Find(&out).Error
	return out, err
}

// UpdateModel writes the editable metadata columns. Slug columns other
// than category_slug are never written here.
func (r *ModelRepositoryImpl) UpdateModel(ctx context.Context, model *models.Model) error {
	return r.db.WithContext(ctx).Model(model).
		Select("title", "category", "category_slug", "updated_at").
		Updates(model).Error
}

func (r *ModelRepositoryImpl) DeleteModel(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&models.Model{}, "id = ?", id).Error
}

// ListModelsMissingSlugs returns rows with at least one slug column unset.
func (r *ModelRepositoryImpl) ListModelsMissingSlugs(ctx context.Context) ([]models.Model, error) {
	var out []models.Model
	err := r.db.WithContext(ctx).
		Where("url_slug IS NULL OR url_slug = '' OR customer_slug IS NULL OR customer_slug = '' OR " +
			"(category IS NOT NULL AND category <> '' AND (category_slug IS NULL OR category_slug = ''))").
		Order("created_at, id").
		Find(&out).Error
	return out, err
}

func (r *ModelRepositoryImpl) UpdateModelSlugs(ctx context.Context, id string, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&models.Model{}).Where("id = ?", id).UpdateColumns(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repository

import (
	"context"

	"gorm.io/gorm"

	"catalog-service/internal/models"
)

// AnalyticsRepository records and aggregates model views.
type AnalyticsRepository interface {
	RecordView(ctx context.Context, modelID string, variantID *string) error
	ViewStats(ctx context.Context, modelID string) (*models.ViewStats, error)
}

// AnalyticsRepositoryImpl implements AnalyticsRepository with GORM.
type AnalyticsRepositoryImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepositoryImpl {
	return &AnalyticsRepositoryImpl{db: db}
}

// RecordView inserts a view event and bumps the counters in one
// transaction. Counters are incremented in SQL so concurrent views are
// never lost.
func (r *AnalyticsRepositoryImpl) RecordView(ctx context.Context, modelID string, variantID *string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Model{}).Where("id = ?", modelID).
			UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if variantID != nil {
			res = tx.Model(&models.Variant{}).Where("id = ? AND parent_model_id = ?", *variantID, modelID).
				UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return tx.Create(&models.ViewEvent{ModelID: modelID, VariantID: variantID}).Error
	})
}

type variantCount struct {
	VariantID string
	Count     int64
}

// ViewStats returns the model's total and per-variant view counts.
func (r *AnalyticsRepositoryImpl) ViewStats(ctx context.Context, modelID string) (*models.ViewStats, error) {
	var model models.Model
	if err := r.db.WithContext(ctx).Select("id", "view_count").First(&model, "id = ?", modelID).Error; err != nil {
		return nil, err
	}
	var rows []variantCount
	err := r.db.WithContext(ctx).Model(&models.ViewEvent{}).
		Select("variant_id, COUNT(*) AS count").
		Where("model_id = ? AND variant_id IS NOT NULL", modelID).
		Group("variant_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	stats := &models.ViewStats{ModelID: modelID, Total: model.ViewCount, Variants: make(map[string]int64, len(rows))}
	for _, row := range rows {
		stats.Variants[row.VariantID] = row.Count
	}
	return stats, nil
}

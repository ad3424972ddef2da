// Package database creates and upgrades the catalog schema.
package database

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"catalog-service/internal/models"
)

// indexes are applied after AutoMigrate. Each statement is idempotent.
var indexes = []string{
	// legacy slug lookups compare the customer case-insensitively
	`CREATE INDEX IF NOT EXISTS idx_models_customer_slug_url_slug ON models (LOWER(customer_slug), url_slug)`,
	`CREATE INDEX IF NOT EXISTS idx_models_created_at ON models (created_at DESC, id DESC)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_model_variants_color_slug ON model_variants (parent_model_id, color_slug) WHERE color_slug IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_model_variants_primary ON model_variants (parent_model_id) WHERE is_primary`,
	`CREATE INDEX IF NOT EXISTS idx_view_events_model_variant ON view_events (model_id, variant_id)`,
}

// Tables lists every persisted type in creation order.
func Tables() []interface{} {
	return []interface{}{
		&models.Customer{},
		&models.Model{},
		&models.Variant{},
		&models.ViewEvent{},
	}
}

// Migrate brings the schema up to date.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Tables()...); err != nil {
		return errors.Wrap(err, "auto migrate")
	}
	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return errors.Wrapf(err, "apply %q", stmt)
		}
	}
	log.Info().Int("tables", len(Tables())).Int("indexes", len(indexes)).Msg("schema migrated")
	return nil
}

package models

import (
	"time"

	"catalog-service/internal/slug"
)

// Variant is an alternate color or material of a Model.
type Variant struct {
	ID            string    `gorm:"primaryKey;size:8" json:"id"`
	ParentModelID string    `gorm:"index;not null;size:8" json:"parent_model_id"`
	VariantName   *string   `json:"variant_name,omitempty"`
	HexColor      string    `json:"hex_color"`
	ColorSlug     *string   `json:"color_slug,omitempty"`
	IsPrimary     bool      `gorm:"not null;default:false" json:"is_primary"`
	FileURL       *string   `json:"file_url,omitempty"`
	PublicID      *string   `json:"public_id,omitempty"`
	ViewCount     int64     `gorm:"not null;default:0" json:"view_count"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Variant) TableName() string {
	return "model_variants"
}

// PathSlug is the third path segment for this variant.
func (v *Variant) PathSlug() string {
	if v.ColorSlug != nil && *v.ColorSlug != "" {
		return *v.ColorSlug
	}
	return slug.VariantSlug(v.VariantName, v.HexColor)
}

package models

import (
	"time"

	"catalog-service/internal/slug"
)

// Model is the metadata of one uploaded 3D asset. The file itself lives in
// object storage; FileURL and PublicID point at it.
type Model struct {
	ID           string    `gorm:"primaryKey;size:8" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	CustomerID   string    `gorm:"index;not null" json:"customer_id"`
	Category     *string   `json:"category,omitempty"`
	URLSlug      *string   `gorm:"column:url_slug" json:"url_slug,omitempty"`
	CustomerSlug *string   `json:"customer_slug,omitempty"`
	CategorySlug *string   `json:"category_slug,omitempty"`
	FileURL      string    `json:"file_url"`
	PublicID     string    `json:"public_id"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	ViewCount    int64     `gorm:"not null;default:0" json:"view_count"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Variants []Variant `gorm:"foreignKey:ParentModelID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
}

func (Model) TableName() string {
	return "models"
}

// OwnerSlug is the customer namespace the model is reachable under. Rows
// that predate slug support fall back to their normalized customer id.
func (m *Model) OwnerSlug() string {
	if m.CustomerSlug != nil && *m.CustomerSlug != "" {
		return *m.CustomerSlug
	}
	return slug.Normalize(m.CustomerID)
}

// ProductSlug returns the stored url_slug, or the slug the backfill would
// assign when it has not run for this row yet.
func (m *Model) ProductSlug() string {
	if m.URLSlug != nil && *m.URLSlug != "" {
		return *m.URLSlug
	}
	return slug.ModelSlug(m.Title, m.ID)
}

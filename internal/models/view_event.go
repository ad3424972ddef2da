package models

import "time"

// ViewEvent records one view of a model, optionally of a specific variant.
type ViewEvent struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ModelID   string    `gorm:"index;not null;size:8" json:"model_id"`
	VariantID *string   `gorm:"size:8" json:"variant_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ViewEvent) TableName() string {
	return "view_events"
}

// ViewStats summarises views of a model.
type ViewStats struct {
	ModelID  string           `json:"model_id"`
	Total    int64            `json:"total"`
	Variants map[string]int64 `json:"variants"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

// Customer is the tenant that owns a set of models. ID is always lowercase.
type Customer struct {
	ID        string                       `gorm:"primaryKey" json:"id"`
	Name      string                       `gorm:"not null" json:"name"`
	Branding  datatypes.JSONType[Branding] `json:"branding"`
	CreatedAt time.Time                    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time                    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Customer) TableName() string {
	return "customers"
}

// Branding controls how the AR viewer is themed for a customer.
type Branding struct {
	LogoURL          string `json:"logo_url,omitempty"`
	PrimaryColor     string `json:"primary_color,omitempty"`
	AccentColor      string `json:"accent_color,omitempty"`
	FontFamily       string `json:"font_family,omitempty"`
	ViewerBackground string `json:"viewer_background,omitempty"`
}

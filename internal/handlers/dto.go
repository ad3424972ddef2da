package handlers

// UpdateModelRequest is the body of PATCH /api/models/{id}.
type UpdateModelRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=200"`
	Category *string `json:"category" validate:"omitempty,max=100"`
}

// CreateVariantRequest is the body of POST /api/models/{id}/variants.
type CreateVariantRequest struct {
	VariantName *string `json:"variant_name" validate:"omitempty,max=100"`
	HexColor    string  `json:"hex_color" validate:"omitempty,hexcolor"`
	IsPrimary   bool    `json:"is_primary"`
}

// CreateCustomerRequest is the body of POST /api/customers.
type CreateCustomerRequest struct {
	ID   string `json:"id" validate:"required,max=64"`
	Name string `json:"name" validate:"required,max=200"`
}

// BrandingRequest is the body of PUT /api/customers/{id}/branding.
type BrandingRequest struct {
	LogoURL          string `json:"logo_url" validate:"omitempty,url"`
	PrimaryColor     string `json:"primary_color" validate:"omitempty,hexcolor"`
	AccentColor      string `json:"accent_color" validate:"omitempty,hexcolor"`
	FontFamily       string `json:"font_family" validate:"omitempty,max=100"`
	ViewerBackground string `json:"viewer_background" validate:"omitempty,max=200"`
}

// RecordViewRequest is the optional body of POST /api/models/{id}/views.
type RecordViewRequest struct {
	VariantID string `json:"variant_id" validate:"omitempty,len=8,alphanum"`
}

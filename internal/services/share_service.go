package services

import (
	"context"

	"catalog-service/internal/links"
	"catalog-service/internal/models"
)

// ShareLinks are the public addresses of a model or one of its variants.
type ShareLinks struct {
	VariantID string `json:"variant_id,omitempty"`
	Label     string `json:"label,omitempty"`
	SEOURL    string `json:"seo_url"`
	ViewerURL string `json:"viewer_url"`
	QRSVGURL  string `json:"qr_svg_url"`
	QRPNGURL  string `json:"qr_png_url"`
}

// ModelShare holds the links of a model and of each variant.
type ModelShare struct {
	ModelID  string       `json:"model_id"`
	Links    ShareLinks   `json:"links"`
	Variants []ShareLinks `json:"variants"`
}

// ShareService builds share links.
type ShareService struct {
	models        *ModelService
	publicBaseURL string
	viewerBaseURL string
}

func NewShareService(models *ModelService, publicBaseURL, viewerBaseURL string) *ShareService {
	return &ShareService{models: models, publicBaseURL: publicBaseURL, viewerBaseURL: viewerBaseURL}
}

func (s *ShareService) Share(ctx context.Context, modelID string) (*ModelShare, error) {
	m, err := s.models.GetModel(ctx, modelID)
	if err != nil {
		return nil, err
	}
	out := &ModelShare{
		ModelID:  m.ID,
		Links:    s.linksFor(m, nil),
		Variants: make([]ShareLinks, 0, len(m.Variants)),
	}
	for i := range m.Variants {
		out.Variants = append(out.Variants, s.linksFor(m, &m.Variants[i]))
	}
	return out, nil
}

func (s *ShareService) linksFor(m *models.Model, v *models.Variant) ShareLinks {
	l := ShareLinks{
		SEOURL:    links.SEOURL(s.publicBaseURL, m, v),
		QRSVGURL:  s.publicBaseURL + links.QRPath(m, v, "svg"),
		QRPNGURL:  s.publicBaseURL + links.QRPath(m, v, "png"),
		ViewerURL: links.ViewerURL(s.viewerBaseURL, m.ID, ""),
	}
	if v != nil {
		l.VariantID = v.ID
		l.Label = v.PathSlug()
		if v.VariantName != nil {
			l.Label = *v.VariantName
		}
		l.ViewerURL = links.ViewerURL(s.viewerBaseURL, m.ID, v.ID)
	}
	return l
}

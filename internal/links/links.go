// Package links formats the public URLs that point at a model: the SEO path,
// the canonical viewer URL and the QR image path.
package links

import (
	"net/url"
	"strings"

	"catalog-service/internal/models"
)

// SEOPath returns "/f/{customer}/{product-slug-id}[/{variant}]".
func SEOPath(m *models.Model, v *models.Variant) string {
	var b strings.Builder
	b.WriteString("/f/")
	b.WriteString(url.PathEscape(strings.ToLower(m.OwnerSlug())))
	b.WriteString("/")
	b.WriteString(url.PathEscape(m.ProductSlug()))
	if v != nil {
		b.WriteString("/")
		b.WriteString(url.PathEscape(v.PathSlug()))
	}
	return b.String()
}

// SEOURL is SEOPath made absolute against base.
func SEOURL(base string, m *models.Model, v *models.Variant) string {
	return join(base, SEOPath(m, v))
}

// ViewerURL returns "{base}/view?id={modelID}[&variant={variantID}]". It
// depends only on ids so it survives later slug changes.
func ViewerURL(base, modelID, variantID string) string {
	q := url.Values{}
	q.Set("id", modelID)
	if variantID != "" {
		q.Set("variant", variantID)
	}
	return join(base, "/view") + "?" + q.Encode()
}

// QRPath returns "/qr/{customer}/{product-slug-id}[-{variant}].{ext}".
func QRPath(m *models.Model, v *models.Variant, ext string) string {
	stem := m.ProductSlug()
	if v != nil {
		stem += "-" + v.PathSlug()
	}
	return "/qr/" + url.PathEscape(strings.ToLower(m.OwnerSlug())) + "/" + url.PathEscape(stem) + "." + ext
}

func join(base, path string) string {
	return strings.TrimRight(base, "/") + path
}

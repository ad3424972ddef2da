// Package slug turns display text into URL path segments and parses the
// id-anchored product segments used by the /f and /qr routes.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	// MaxLength bounds the human-readable part of a slug. The id suffix is not counted.
	MaxLength = 60
	// Fallback replaces input that normalizes to nothing.
	Fallback = "item"
	// IDLength is the length of a model id.
	IDLength = 8
	// IDAlphabet is the base62 alphabet model ids are drawn from.
	IDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

var (
	reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)
	reID       = regexp.MustCompile(`^[0-9A-Za-z]{8}$`)
	reHexColor = regexp.MustCompile(`[^0-9a-f]`)
)

// Normalize lowercases text, folds diacritics, collapses every run of
// non-alphanumerics into one hyphen and truncates to MaxLength. It never
// returns an empty string.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))

	var b strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	s = reNonAlnum.ReplaceAllString(b.String(), "-")
	s = strings.Trim(s, "-")

	if len(s) > MaxLength {
		cut := s[:MaxLength]
		// back off to a word boundary unless the cut already lands on one
		if s[MaxLength] != '-' {
			if i := strings.LastIndexByte(cut, '-'); i > 0 {
				cut = cut[:i]
			}
		}
		s = strings.Trim(cut, "-")
	}
	if s == "" {
		return Fallback
	}
	return s
}

// ModelSlug returns the canonical "{title-slug}-{id}" product segment.
func ModelSlug(title, modelID string) string {
	return Normalize(title) + "-" + modelID
}

// VariantSlug returns the path segment for a variant. The name wins when it
// is present; otherwise the hex color is used, e.g. "color-ff0000".
func VariantSlug(variantName *string, hexColor string) string {
	if variantName != nil && strings.TrimSpace(*variantName) != "" {
		return Normalize(*variantName)
	}
	hex := reHexColor.ReplaceAllString(strings.ToLower(hexColor), "")
	return Normalize("color-" + hex)
}

// IsID reports whether s has the shape of a model id.
func IsID(s string) bool {
	return reID.MatchString(s)
}

// ExtractID returns the id carried as the last hyphen-delimited token of a
// product segment. A bare id (no hyphen) is accepted for legacy links.
func ExtractID(productSlugWithID string) (string, bool) {
	token := productSlugWithID
	if i := strings.LastIndexByte(productSlugWithID, '-'); i >= 0 {
		token = productSlugWithID[i+1:]
	}
	if !IsID(token) {
		return "", false
	}
	return token, true
}

// Split is one way of reading a QR file stem as product segment plus variant.
type Split struct {
	Product string
	Variant string
}

// StemCandidates splits "{product-slug}-{id}[-{variant-slug}]" at every
// id-shaped token, rightmost first. A variant word of eight letters is
// itself id-shaped, so callers try each split until one resolves. When no
// token looks like an id the whole stem is returned as a legacy product slug.
func StemCandidates(stem string) []Split {
	tokens := strings.Split(stem, "-")
	var out []Split
	for i := len(tokens) - 1; i >= 0; i-- {
		if !IsID(tokens[i]) {
			continue
		}
		out = append(out, Split{
			Product: strings.Join(tokens[:i+1], "-"),
			Variant: strings.Join(tokens[i+1:], "-"),
		})
	}
	if len(out) == 0 {
		out = append(out, Split{Product: stem})
	}
	return out
}

// LegacySplits reads a stem whose product slug carries no id: the whole
// stem first, then every hyphen from the right as the product/variant
// boundary.
func LegacySplits(stem string) []Split {
	tokens := strings.Split(stem, "-")
	out := []Split{{Product: stem}}
	for i := len(tokens) - 1; i > 0; i-- {
		out = append(out, Split{
			Product: strings.Join(tokens[:i], "-"),
			Variant: strings.Join(tokens[i:], "-"),
		})
	}
	return out
}

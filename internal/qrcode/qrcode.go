// Package qrcode renders QR codes as SVG or PNG.
package qrcode

import (
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

// Format is an output image format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

const (
	DefaultSize = 256
	MinSize     = 64
	MaxSize     = 2048
)

// ParseFormat accepts "svg" or "png" in any case.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unsupported qr format %q", s)
}

// ContentType is the HTTP content type of an image in format f.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

// Options controls rendering.
type Options struct {
	Format Format
	Size   int
}

// Renderer encodes content into a QR image. Implementations are pure: the
// same content and options always produce the same bytes.
type Renderer interface {
	Render(content string, opts Options) ([]byte, error)
}

// SkipRenderer renders with github.com/skip2/go-qrcode.
type SkipRenderer struct {
	Level goqrcode.RecoveryLevel
}

// NewRenderer returns a renderer using medium error correction.
func NewRenderer() *SkipRenderer {
	return &SkipRenderer{Level: goqrcode.Medium}
}

func (r *SkipRenderer) Render(content string, opts Options) ([]byte, error) {
	if opts.Size == 0 {
		opts.Size = DefaultSize
	}
	if opts.Size < MinSize || opts.Size > MaxSize {
		return nil, fmt.Errorf("qr size %d out of range [%d, %d]", opts.Size, MinSize, MaxSize)
	}
	q, err := goqrcode.New(content, r.Level)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	switch opts.Format {
	case FormatPNG:
		return q.PNG(opts.Size)
	case FormatSVG, "":
		return []byte(svg(q.Bitmap(), opts.Size)), nil
	}
	return nil, fmt.Errorf("unsupported qr format %q", opts.Format)
}

// svg draws one unit square per dark module in a viewBox of the bitmap's
// dimensions, scaled to size pixels.
func svg(bitmap [][]bool, size int) string {
	n := len(bitmap)
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, size, size, n, n)
	b.WriteString(`<rect width="100%" height="100%" fill="#ffffff"/>`)
	b.WriteString(`<path fill="#000000" d="`)
	for y, row := range bitmap {
		for x, dark := range row {
			if dark {
				fmt.Fprintf(&b, "M%d %dh1v1h-1z", x, y)
			}
		}
	}
	b.WriteString(`"/></svg>`)
	return b.String()
}

package qrcode

import (
	"bytes"
	"strings"
	"testing"

	goqrcode "github.com/skip2/go-qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const target = "https://ar.example.com/f/acme/oak-table-abc12345"

func TestRenderSVGEncodesContent(t *testing.T) {
	out, err := NewRenderer().Render(target, Options{Format: FormatSVG, Size: 300})
	require.NoError(t, err)

	doc := string(out)
	assert.True(t, strings.HasPrefix(doc, "<svg"))
	assert.Contains(t, doc, `width="300"`)

	q, err := goqrcode.New(target, goqrcode.Medium)
	require.NoError(t, err)
	bitmap := q.Bitmap()
	dark := 0
	for _, row := range bitmap {
		for _, d := range row {
			if d {
				dark++
			}
		}
	}
	assert.Equal(t, dark, strings.Count(doc, "h1v1h-1z"))
	assert.Contains(t, doc, `viewBox="0 0 `+itoa(len(bitmap))+" "+itoa(len(bitmap))+`"`)
}

func TestRenderDeterministic(t *testing.T) {
	r := NewRenderer()
	a, err := r.Render(target, Options{Format: FormatSVG})
	require.NoError(t, err)
	b, err := r.Render(target, Options{Format: FormatSVG})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRenderPNG(t *testing.T) {
	out, err := NewRenderer().Render(target, Options{Format: FormatPNG, Size: 128})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("\x89PNG")))
}

func TestRenderRejectsBadOptions(t *testing.T) {
	_, err := NewRenderer().Render(target, Options{Format: FormatSVG, Size: 10})
	assert.Error(t, err)

	_, err = NewRenderer().Render(target, Options{Format: "gif", Size: 256})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("SVG")
	require.NoError(t, err)
	assert.Equal(t, FormatSVG, f)
	assert.Equal(t, "image/svg+xml", f.ContentType())

	f, err = ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", f.ContentType())

	_, err = ParseFormat("jpeg")
	assert.Error(t, err)
}

func itoa(n int) string {
	var buf [20]byte
	i := len(buf)
	for {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return string(buf[i:])
}

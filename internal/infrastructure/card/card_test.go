package card

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igi-pe/report-api/internal/domain/report"
	"github.com/igi-pe/report-api/internal/infrastructure/imageproc"
)

func newRenderer(t *testing.T) *Renderer {
	t.Helper()
	fonts, err := LoadFonts()
	require.NoError(t, err)
	return NewRenderer(fonts, "https://igi.org.pe/")
}

func sample() *report.Report {
	return &report.Report{
		ReportNo:     "12J345678901",
		Description:  "One 18K Yellow Gold Ring",
		ShapeAndCut:  "(3) Round Brilliant",
		TotEstWeight: "0.35",
		Color:        "G-H",
		Clarity:      "VS",
		StyleNumber:  report.StringPtr("STY-1"),
	}
}

func hasDarkPixel(img image.Image, r image.Rectangle) bool {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			if cr < 0x4000 && cg < 0x4000 && cb < 0x4000 {
				return true
			}
		}
	}
	return false
}

func TestRenderLayout(t *testing.T) {
	thumb := image.NewNRGBA(image.Rect(0, 0, 480, 240))
	for y := 0; y < 240; y++ {
		for x := 0; x < 480; x++ {
			thumb.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	thumbPNG, err := imageproc.EncodePNG(thumb)
	require.NoError(t, err)

	data, err := newRenderer(t).Render(sample(), thumbPNG)
	require.NoError(t, err)

	img, err := imageproc.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1000, 600), img.Bounds())

	// Title text, label column and value column carry ink.
	assert.True(t, hasDarkPixel(img, image.Rect(30, 20, 400, 50)))
	assert.True(t, hasDarkPixel(img, image.Rect(30, 120, 200, 150)))
	assert.True(t, hasDarkPixel(img, image.Rect(250, 120, 500, 150)))

	// Thumbnail is scaled to fit 240x240: 240x120 at (700,120).
	r, g, b, _ := img.At(710, 130).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
	r, g, _, _ = img.At(710, 250).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0xffff), g)

	// QR occupies 160x160 at (700,380).
	assert.True(t, hasDarkPixel(img, image.Rect(700, 380, 860, 540)))
	assert.False(t, hasDarkPixel(img, image.Rect(870, 380, 1000, 540)))
}

func TestRenderIgnoresBadThumbnail(t *testing.T) {
	data, err := newRenderer(t).Render(sample(), []byte("not an image"))
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestQRContent(t *testing.T) {
	assert.Equal(t, "https://igi.org.pe/?r=12J345678901", newRenderer(t).QRContent("12J345678901"))
}

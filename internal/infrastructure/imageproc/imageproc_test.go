package imageproc

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestStripWhite(t *testing.T) {
	tests := []struct {
		name  string
		in    color.NRGBA
		alpha uint8
	}{
		{"pure white", color.NRGBA{255, 255, 255, 255}, 0},
		{"just above threshold", color.NRGBA{246, 246, 246, 255}, 0},
		{"at threshold stays", color.NRGBA{245, 250, 250, 255}, 255},
		{"dark keeps alpha", color.NRGBA{10, 10, 10, 128}, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := StripWhite(fill(tt.in))
			assert.Equal(t, tt.alpha, out.NRGBAAt(1, 1).A)
		})
	}
}

func TestBinaryAlpha(t *testing.T) {
	assert.Equal(t, uint8(0), BinaryAlpha(fill(color.NRGBA{241, 241, 241, 255})).NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), BinaryAlpha(fill(color.NRGBA{240, 255, 255, 255})).NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(255), BinaryAlpha(fill(color.NRGBA{0, 0, 0, 10})).NRGBAAt(0, 0).A)
}

func TestThresholdsStayDistinct(t *testing.T) {
	assert.NotEqual(t, StripThreshold, QRThreshold)
	// A 243 grey is transparent for QR output but kept in stripped diagrams.
	grey := fill(color.NRGBA{243, 243, 243, 255})
	assert.Equal(t, uint8(255), StripWhite(grey).NRGBAAt(0, 0).A)
	assert.Equal(t, uint8(0), BinaryAlpha(grey).NRGBAAt(0, 0).A)
}

func TestPNGRoundTrip(t *testing.T) {
	data, err := EncodePNG(fill(color.NRGBA{1, 2, 3, 255}))
	require.NoError(t, err)

	img, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())

	again, err := ToPNG(data)
	require.NoError(t, err)
	assert.NotEmpty(t, again)

	_, err = Decode([]byte("not an image"))
	assert.Error(t, err)
}

func TestMillimetresToPixels(t *testing.T) {
	assert.Equal(t, 300, MillimetresToPixels(25.4, 300))
	assert.Equal(t, 177, MillimetresToPixels(15, 300))
	assert.Equal(t, 35, MillimetresToPixels(3.0, 300))
}

func TestOpaque(t *testing.T) {
	out := Opaque(fill(color.NRGBA{10, 20, 30, 0}))
	assert.Equal(t, color.NRGBA{10, 20, 30, 255}, out.NRGBAAt(0, 0))
}

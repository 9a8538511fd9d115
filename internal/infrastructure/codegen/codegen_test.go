package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/igi-pe/report-api/internal/infrastructure/imageproc"
)

func TestGenerateBarcodeNumbers(t *testing.T) {
	for _, digits := range []int{10, 12} {
		for i := 0; i < 20; i++ {
			number := RandomNumber(digits)
			assert.Len(t, number, digits)
			assert.Equal(t, byte('1'), number[0])
			assert.Regexp(t, `^\d+$`, number)
		}
	}
}

func TestGenerateBarcode(t *testing.T) {
	for _, digits := range []int{10, 12} {
		bc, err := GenerateBarcode(digits)
		require.NoError(t, err)
		assert.Len(t, bc.Number, digits)
		assert.Equal(t, byte('1'), bc.Number[0])

		img, err := imageproc.Decode(bc.PNG)
		require.NoError(t, err)

		spec, _ := SpecFor(digits)
		quiet := imageproc.MillimetresToPixels(spec.QuietZone, BarcodeDPI)
		// Quiet zone is white, so it is transparent after stripping.
		_, _, _, a := img.At(quiet/2, img.Bounds().Dy()/2).RGBA()
		assert.Zero(t, a)
	}
}

func TestGenerateBarcodeRejectsOtherLengths(t *testing.T) {
	_, err := GenerateBarcode(8)
	assert.Error(t, err)
}

func TestTwelveDigitBarcodeIsTaller(t *testing.T) {
	ten, err := RenderBarcode("1234567890", barcodeSpecs[10])
	require.NoError(t, err)
	twelve, err := RenderBarcode("123456789012", barcodeSpecs[12])
	require.NoError(t, err)
	assert.Greater(t, twelve.Bounds().Dy(), ten.Bounds().Dy())
	wantH := imageproc.MillimetresToPixels(50, BarcodeDPI) + 2*imageproc.MillimetresToPixels(1, BarcodeDPI)
	assert.Equal(t, wantH, ten.Bounds().Dy())
}

func TestRenderQRGeometry(t *testing.T) {
	img, err := RenderQR("https://www.gia.edu/report-check?reportno=2141438171", VerificationQRBox, VerificationQRBorder)
	require.NoError(t, err)

	b := img.Bounds()
	assert.Equal(t, b.Dx(), b.Dy())
	assert.Zero(t, b.Dx()%VerificationQRBox)
	// Top-left corner lies in the quiet zone; the finder pattern starts after it.
	assert.Equal(t, uint8(255), img.NRGBAAt(0, 0).R)
	edge := VerificationQRBorder * VerificationQRBox
	assert.Equal(t, uint8(0), img.NRGBAAt(edge, edge).R)
}

func TestVerificationQRIsTransparentOutside(t *testing.T) {
	data, err := VerificationQR("https://www.gia.edu/report-check?reportno=1")
	require.NoError(t, err)
	img, err := imageproc.Decode(data)
	require.NoError(t, err)

	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
	edge := VerificationQRBorder * VerificationQRBox
	_, _, _, a = img.At(edge, edge).RGBA()
	assert.Equal(t, uint32(0xffff), a)
}

func TestGeneratorBarcode(t *testing.T) {
	number, png, err := NewGenerator().Barcode(12)
	require.NoError(t, err)
	assert.Len(t, number, 12)
	assert.NotEmpty(t, png)
}

package codegen

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand/v2"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/oned"

	"github.com/igi-pe/report-api/internal/infrastructure/imageproc"
)

// BarcodeDPI is the render resolution for physical barcode dimensions.
const BarcodeDPI = 300

// BarcodeSpec holds the physical dimensions of a barcode variant, in millimetres.
type BarcodeSpec struct {
	ModuleWidth  float64
	ModuleHeight float64
	QuietZone    float64
	VerticalPad  float64
}

var barcodeSpecs = map[int]BarcodeSpec{
	10: {ModuleWidth: 3.0, ModuleHeight: 50.0, QuietZone: 15.0, VerticalPad: 1.0},
	12: {ModuleWidth: 3.8, ModuleHeight: 75.0, QuietZone: 15.0, VerticalPad: 1.0},
}

// Barcode is a generated barcode value and its PNG rendering.
type Barcode struct {
	Number string
	PNG    []byte
}

// SpecFor returns the dimensions for a 10 or 12 digit barcode.
func SpecFor(digits int) (BarcodeSpec, error) {
	spec, ok := barcodeSpecs[digits]
	if !ok {
		return BarcodeSpec{}, fmt.Errorf("unsupported barcode length %d", digits)
	}
	return spec, nil
}

// RandomNumber returns "1" followed by digits-1 random digits. Values are not
// checked against previously issued barcodes.
func RandomNumber(digits int) string {
	var b strings.Builder
	b.Grow(digits)
	b.WriteByte('1')
	for i := 1; i < digits; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

// RenderBarcode draws number as Code-128, padded with four spaces on each
// side, without human-readable text.
func RenderBarcode(number string, spec BarcodeSpec) (*image.NRGBA, error) {
	padded := "    " + number + "    "
	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_MARGIN: 0,
	}
	row, err := oned.NewCode128Writer().Encode(padded, gozxing.BarcodeFormat_CODE_128, 0, 1, hints)
	if err != nil {
		return nil, fmt.Errorf("encode code128: %w", err)
	}

	moduleW := imageproc.MillimetresToPixels(spec.ModuleWidth, BarcodeDPI)
	barH := imageproc.MillimetresToPixels(spec.ModuleHeight, BarcodeDPI)
	quiet := imageproc.MillimetresToPixels(spec.QuietZone, BarcodeDPI)
	pad := imageproc.MillimetresToPixels(spec.VerticalPad, BarcodeDPI)

	modules := row.GetWidth()
	width := modules*moduleW + 2*quiet
	height := barH + 2*pad

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	black := image.NewUniform(color.Black)
	for x := 0; x < modules; x++ {
		if !row.Get(x, 0) {
			continue
		}
		left := quiet + x*moduleW
		draw.Draw(img, image.Rect(left, pad, left+moduleW, pad+barH), black, image.Point{}, draw.Src)
	}
	return img, nil
}

// GenerateBarcode produces a random 10 or 12 digit barcode with the white
// background stripped.
func GenerateBarcode(digits int) (*Barcode, error) {
	spec, err := SpecFor(digits)
	if err != nil {
		return nil, err
	}
	number := RandomNumber(digits)
	img, err := RenderBarcode(number, spec)
	if err != nil {
		return nil, err
	}
	png, err := imageproc.EncodePNG(imageproc.StripWhite(img))
	if err != nil {
		return nil, err
	}
	return &Barcode{Number: number, PNG: png}, nil
}

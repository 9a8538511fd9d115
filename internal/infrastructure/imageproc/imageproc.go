// Package imageproc holds the raster helpers shared by the code generator,
// the page locator, the spreadsheet reader and the card renderer.
package imageproc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/sunshineplan/imgconv"
)

const (
	// StripThreshold applies to cropped diagrams and barcodes. Near-white
	// pixels lose their alpha; everything else keeps its own.
	StripThreshold = 245
	// QRThreshold applies to synthesized QR codes. Alpha becomes binary.
	QRThreshold = 240
)

// Decode reads any raster format imgconv understands (png, jpeg, gif, bmp, tiff, webp).
func Decode(data []byte) (image.Image, error) {
	img, err := imgconv.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// ToPNG decodes data and re-encodes it as RGBA PNG.
func ToPNG(data []byte) ([]byte, error) {
	img, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return EncodePNG(ToNRGBA(img))
}

// ToNRGBA copies img into a fresh non-premultiplied RGBA image.
func ToNRGBA(img image.Image) *image.NRGBA {
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Opaque drops the alpha channel, leaving every pixel fully opaque.
func Opaque(img image.Image) *image.NRGBA {
	dst := ToNRGBA(img)
	forEachPixel(dst, func(c color.NRGBA) color.NRGBA {
		c.A = 255
		return c
	})
	return dst
}

// StripWhite makes pixels with every channel above StripThreshold fully
// transparent and leaves the rest untouched.
func StripWhite(img image.Image) *image.NRGBA {
	dst := ToNRGBA(img)
	forEachPixel(dst, func(c color.NRGBA) color.NRGBA {
		if nearWhite(c, StripThreshold) {
			c.A = 0
		}
		return c
	})
	return dst
}

// BinaryAlpha makes pixels with every channel above QRThreshold transparent
// and every other pixel fully opaque.
func BinaryAlpha(img image.Image) *image.NRGBA {
	dst := ToNRGBA(img)
	forEachPixel(dst, func(c color.NRGBA) color.NRGBA {
		if nearWhite(c, QRThreshold) {
			c.A = 0
		} else {
			c.A = 255
		}
		return c
	})
	return dst
}

func nearWhite(c color.NRGBA, threshold uint8) bool {
	return c.R > threshold && c.G > threshold && c.B > threshold
}

func forEachPixel(img *image.NRGBA, fn func(color.NRGBA) color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := img.PixOffset(x, y)
			px := img.Pix[i : i+4 : i+4]
			out := fn(color.NRGBA{R: px[0], G: px[1], B: px[2], A: px[3]})
			px[0], px[1], px[2], px[3] = out.R, out.G, out.B, out.A
		}
	}
}

// MillimetresToPixels converts a physical length to pixels at dpi.
func MillimetresToPixels(mm float64, dpi int) int {
	return int(mm*float64(dpi)/25.4 + 0.5)
}

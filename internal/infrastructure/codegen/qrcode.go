// Package codegen renders QR codes and Code-128 barcodes as transparent PNGs.
package codegen

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"
	"github.com/makiuchi-d/gozxing/qrcode/decoder"

	"github.com/igi-pe/report-api/internal/infrastructure/imageproc"
)

const (
	// VerificationQRBox is the pixel size of one QR module.
	VerificationQRBox = 10
	// VerificationQRBorder is the quiet zone in modules.
	VerificationQRBorder = 4
)

// RenderQR draws content as an opaque black-on-white QR code at error
// correction level H, box pixels per module and border modules of quiet zone.
func RenderQR(content string, box, border int) (*image.NRGBA, error) {
	if box < 1 {
		return nil, fmt.Errorf("qr box size must be positive")
	}
	hints := map[gozxing.EncodeHintType]interface{}{
		gozxing.EncodeHintType_ERROR_CORRECTION: decoder.ErrorCorrectionLevel_H,
		gozxing.EncodeHintType_MARGIN:           border,
	}
	// Width and height 0 yield one pixel per module.
	matrix, err := qrcode.NewQRCodeWriter().Encode(content, gozxing.BarcodeFormat_QR_CODE, 0, 0, hints)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}

	w, h := matrix.GetWidth(), matrix.GetHeight()
	modules := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if matrix.Get(x, y) {
				c = color.NRGBA{A: 255}
			}
			modules.SetNRGBA(x, y, c)
		}
	}
	return imaging.Resize(modules, w*box, h*box, imaging.NearestNeighbor), nil
}

// VerificationQR renders the report verification QR with a binary alpha mask.
func VerificationQR(content string) ([]byte, error) {
	img, err := RenderQR(content, VerificationQRBox, VerificationQRBorder)
	if err != nil {
		return nil, err
	}
	return imageproc.EncodePNG(imageproc.BinaryAlpha(img))
}

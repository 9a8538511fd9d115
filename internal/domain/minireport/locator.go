package minireport

import (
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/infrastructure/imageproc"
)

const (
	proportionsLabel = "PROPORTIONS"
	renderDPI        = 300

	qrMaxAspectDelta = 10
	qrMinWidth       = 150
)

// proportionsClip is the diagram region relative to the label's bounding box.
func proportionsClip(label Rect) Rect {
	return Rect{
		X0: label.X0 - 8,
		Y0: label.Y1 + 2,
		X1: label.X0 + 108,
		Y1: label.Y1 + 80,
	}
}

// LocateProportions crops the proportions diagram below the first
// "PROPORTIONS" label and strips its white background. It returns nil when the
// label is absent or any step fails; later pages are not searched.
func LocateProportions(doc Document, log zerolog.Logger) []byte {
	page, box, ok := doc.FindText(proportionsLabel)
	if !ok {
		return nil
	}
	img, err := doc.RenderClip(page, proportionsClip(box), renderDPI)
	if err != nil {
		log.Warn().Err(err).Int("page", page).Msg("render proportions clip")
		return nil
	}
	data, err := imageproc.EncodePNG(imageproc.StripWhite(img))
	if err != nil {
		log.Warn().Err(err).Msg("encode proportions diagram")
		return nil
	}
	return data
}

// LocateQRCode returns the first embedded image that looks like a QR code
// (near square, at least 150 px wide) as an opaque PNG, or nil.
func LocateQRCode(doc Document, log zerolog.Logger) []byte {
	images, err := doc.EmbeddedImages()
	if err != nil {
		log.Debug().Err(err).Msg("read embedded images")
		return nil
	}
	for _, img := range images {
		b := img.Bounds()
		if !looksLikeQR(b.Dx(), b.Dy()) {
			continue
		}
		data, err := imageproc.EncodePNG(imageproc.Opaque(img))
		if err != nil {
			log.Warn().Err(err).Msg("encode embedded qr code")
			return nil
		}
		return data
	}
	return nil
}

func looksLikeQR(w, h int) bool {
	delta := w - h
	if delta < 0 {
		delta = -delta
	}
	return delta < qrMaxAspectDelta && w >= qrMinWidth
}

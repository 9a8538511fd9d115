// Package card draws the printable report card composite.
package card

import (
	"fmt"
	"image"
	"image/color"
	"net/url"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/igi-pe/report-api/internal/domain/report"
	"github.com/igi-pe/report-api/internal/infrastructure/codegen"
	"github.com/igi-pe/report-api/internal/infrastructure/imageproc"
)

const (
	canvasWidth  = 1000
	canvasHeight = 600

	boldSize    = 24
	regularSize = 18

	labelX     = 30
	valueX     = 250
	fieldTop   = 120
	fieldStep  = 30
	thumbSize  = 240
	qrSize     = 160
	qrBox      = 4
	qrBorder   = 2
	sideColumn = 700
	qrTop      = 380
)

// Fonts holds the parsed typefaces. It is immutable and safe to share;
// faces are created per render because a font.Face is not.
type Fonts struct {
	bold    *opentype.Font
	regular *opentype.Font
}

// LoadFonts parses the embedded Go fonts once at startup.
func LoadFonts() (*Fonts, error) {
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	return &Fonts{bold: bold, regular: regular}, nil
}

// Renderer implements report.CardRenderer.
type Renderer struct {
	fonts     *Fonts
	qrBaseURL string
}

func NewRenderer(fonts *Fonts, qrBaseURL string) *Renderer {
	return &Renderer{fonts: fonts, qrBaseURL: qrBaseURL}
}

// QRContent is the URL encoded in the card QR code.
func (r *Renderer) QRContent(reportNo string) string {
	return r.qrBaseURL + "?r=" + url.QueryEscape(reportNo)
}

// Render draws the card for rep. An undecodable thumbnail is left out.
func (r *Renderer) Render(rep *report.Report, thumbnail []byte) ([]byte, error) {
	bold, err := opentype.NewFace(r.fonts.bold, &opentype.FaceOptions{Size: boldSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("bold face: %w", err)
	}
	defer bold.Close()
	regular, err := opentype.NewFace(r.fonts.regular, &opentype.FaceOptions{Size: regularSize, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("regular face: %w", err)
	}
	defer regular.Close()

	canvas := imaging.New(canvasWidth, canvasHeight, color.White)

	drawText(canvas, bold, labelX, 20, "INTERNATIONAL GEMOLOGICAL INSTITUTE")
	drawText(canvas, bold, labelX, 58, "JEWELRY REPORT")

	fields := []struct{ label, value string }{
		{"Report No", rep.ReportNo},
		{"Description", rep.Description},
		{"Shape and Cut", rep.ShapeAndCut},
		{"Tot. Est. Weight", rep.TotEstWeight},
		{"Color", rep.Color},
		{"Clarity", rep.Clarity},
		{"Style Number", report.Deref(rep.StyleNumber)},
	}
	y := fieldTop
	for _, f := range fields {
		drawText(canvas, bold, labelX, y, f.label+" :")
		drawText(canvas, regular, valueX, y, f.value)
		y += fieldStep
	}

	if len(thumbnail) > 0 {
		if img, err := imageproc.Decode(thumbnail); err == nil {
			thumb := imaging.Fit(img, thumbSize, thumbSize, imaging.Lanczos)
			canvas = imaging.Overlay(canvas, thumb, image.Pt(sideColumn, fieldTop), 1.0)
		}
	}

	qr, err := codegen.RenderQR(r.QRContent(rep.ReportNo), qrBox, qrBorder)
	if err != nil {
		return nil, fmt.Errorf("card qr: %w", err)
	}
	qrImg := imaging.Resize(qr, qrSize, qrSize, imaging.NearestNeighbor)
	canvas = imaging.Paste(canvas, qrImg, image.Pt(sideColumn, qrTop))

	return imageproc.EncodePNG(canvas)
}

// drawText draws s with its top edge at y.
func drawText(dst *image.NRGBA, face font.Face, x, y int, s string) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.Black,
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

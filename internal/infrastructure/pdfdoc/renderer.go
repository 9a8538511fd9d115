package pdfdoc

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	sunpdf "github.com/sunshineplan/pdf"

	"github.com/igi-pe/report-api/internal/domain/minireport"
)

const pointsPerInch = 72.0

// RenderClip rasterizes page at dpi and crops it to clip.
func (d *Document) RenderClip(page int, clip minireport.Rect, dpi int) (image.Image, error) {
	if page < 0 || page >= d.PageCount() {
		return nil, fmt.Errorf("page %d out of range", page)
	}
	full, err := d.fitz.ImageDPI(page, float64(dpi))
	if err != nil {
		return nil, fmt.Errorf("render page %d: %w", page, err)
	}

	rect := clipToPixels(clip, float64(dpi)).Intersect(full.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("clip outside page %d", page)
	}
	return imaging.Crop(full, rect), nil
}

func clipToPixels(clip minireport.Rect, dpi float64) image.Rectangle {
	scale := dpi / pointsPerInch
	return image.Rect(
		int(math.Floor(clip.X0*scale)),
		int(math.Floor(clip.Y0*scale)),
		int(math.Ceil(clip.X1*scale)),
		int(math.Ceil(clip.Y1*scale)),
	)
}

// EmbeddedImages decodes every raster image embedded in the document.
func (d *Document) EmbeddedImages() (images []image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while extracting pdf images: %v", r)
			images = nil
		}
	}()

	images, err = sunpdf.DecodeAll(bytes.NewReader(d.data))
	if err != nil {
		return nil, fmt.Errorf("decode pdf images: %w", err)
	}
	return images, nil
}

// Package pdfdoc opens grading PDFs: structural validation, text, label
// positions, embedded images and page rasterization.
package pdfdoc

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/domain/minireport"
)

// Opener validates PDF bytes and opens them as a minireport.Document.
type Opener struct {
	log zerolog.Logger
}

func NewOpener(log zerolog.Logger) *Opener {
	return &Opener{log: log.With().Str("component", "pdfdoc").Logger()}
}

// Document is an opened PDF backed by MuPDF for text and rendering and by
// a pure Go reader for glyph positions.
type Document struct {
	data   []byte
	dims   []types.Dim
	fitz   *fitz.Document
	log    zerolog.Logger
	glyphs glyphIndex
}

// Open validates data structurally and opens it.
func (o *Opener) Open(data []byte) (minireport.Document, error) {
	doc, err := o.open(data)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (o *Opener) open(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while opening pdf: %v", r)
			doc = nil
		}
	}()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, fmt.Errorf("read and validate pdf: %w", err)
	}
	if ctx.PageCount < 1 {
		return nil, fmt.Errorf("pdf has no pages")
	}
	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("read page dimensions: %w", err)
	}

	fz, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	return &Document{
		data: data,
		dims: dims,
		fitz: fz,
		log:  o.log,
	}, nil
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return d.fitz.NumPage()
}

// Text returns the text of every page in order. Pages MuPDF cannot extract
// fall back to lines rebuilt from glyph positions.
func (d *Document) Text() string {
	var b strings.Builder
	for i := 0; i < d.PageCount(); i++ {
		text, err := d.fitz.Text(i)
		if err != nil {
			d.log.Debug().Err(err).Int("page", i).Msg("mupdf text failed, using glyph lines")
			text = d.glyphs.pageLines(d.data, i)
		}
		b.WriteString(text)
		if !strings.HasSuffix(text, "\n") {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// FindText returns the first page containing needle and its bounding box in
// points with a top-left origin.
func (d *Document) FindText(needle string) (int, minireport.Rect, bool) {
	for i := 0; i < d.PageCount(); i++ {
		box, ok := d.glyphs.find(d.data, i, needle)
		if !ok {
			continue
		}
		return i, d.toTopLeft(i, box), true
	}
	return 0, minireport.Rect{}, false
}

// toTopLeft converts a glyph box (bottom-left origin) to page coordinates
// with a top-left origin.
func (d *Document) toTopLeft(page int, box glyphBox) minireport.Rect {
	height := 0.0
	if page < len(d.dims) {
		height = d.dims[page].Height
	}
	return minireport.Rect{
		X0: box.x0,
		Y0: height - box.top,
		X1: box.x1,
		Y1: height - box.bottom,
	}
}

func (d *Document) Close() error {
	return d.fitz.Close()
}

// glyphIndex lazily loads per-page glyphs once per document.
type glyphIndex struct {
	once  sync.Once
	pages [][]glyph
	err   error
}

func (g *glyphIndex) load(data []byte) [][]glyph {
	g.once.Do(func() {
		g.pages, g.err = readGlyphs(data)
	})
	return g.pages
}

func (g *glyphIndex) find(data []byte, page int, needle string) (glyphBox, bool) {
	pages := g.load(data)
	if page >= len(pages) {
		return glyphBox{}, false
	}
	return findInGlyphs(pages[page], needle)
}

func (g *glyphIndex) pageLines(data []byte, page int) string {
	pages := g.load(data)
	if page >= len(pages) {
		return ""
	}
	return joinLines(groupLines(pages[page]))
}

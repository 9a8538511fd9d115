package pdfdoc

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// lineTolerance is the baseline distance in points under which glyphs share a line.
const lineTolerance = 2.0

// descentRatio approximates how far glyphs extend below the baseline, per point of font size.
const descentRatio = 0.2

type glyph struct {
	x, y, w, size float64
	s             string
}

// glyphBox is a text box in points with a bottom-left origin.
type glyphBox struct {
	x0, x1      float64
	top, bottom float64
}

// readGlyphs returns the positioned text of every page. The reader panics on
// some malformed content streams; that is reported as an error.
func readGlyphs(data []byte) (pages [][]glyph, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while reading pdf glyphs: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf reader: %w", err)
	}
	pages = make([][]glyph, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, t := range p.Content().Text {
			pages[i-1] = append(pages[i-1], glyph{x: t.X, y: t.Y, w: t.W, size: t.FontSize, s: t.S})
		}
	}
	return pages, nil
}

// groupLines sorts glyphs top to bottom and left to right and splits them into lines.
func groupLines(glyphs []glyph) [][]glyph {
	sorted := make([]glyph, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].y-sorted[j].y) > lineTolerance {
			return sorted[i].y > sorted[j].y
		}
		return sorted[i].x < sorted[j].x
	})

	var lines [][]glyph
	for _, g := range sorted {
		n := len(lines)
		if n > 0 && math.Abs(lines[n-1][0].y-g.y) <= lineTolerance {
			lines[n-1] = append(lines[n-1], g)
			continue
		}
		lines = append(lines, []glyph{g})
	}
	return lines
}

func joinLines(lines [][]glyph) string {
	var b strings.Builder
	for _, line := range lines {
		for _, g := range line {
			b.WriteString(g.s)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// findInGlyphs locates needle, case-insensitively, within a single line.
func findInGlyphs(glyphs []glyph, needle string) (glyphBox, bool) {
	needle = strings.ToUpper(needle)
	for _, line := range groupLines(glyphs) {
		var text strings.Builder
		starts := make([]int, len(line))
		for i, g := range line {
			starts[i] = text.Len()
			text.WriteString(strings.ToUpper(g.s))
		}
		idx := strings.Index(text.String(), needle)
		if idx < 0 {
			continue
		}
		end := idx + len(needle) - 1
		first, last := glyphAt(starts, idx), glyphAt(starts, end)

		f, l := line[first], line[last]
		return glyphBox{
			x0:     f.x,
			x1:     l.x + l.w,
			top:    f.y + f.size*(1-descentRatio),
			bottom: f.y - f.size*descentRatio,
		}, true
	}
	return glyphBox{}, false
}

// glyphAt returns the glyph whose text covers byte offset off.
func glyphAt(starts []int, off int) int {
	i := sort.Search(len(starts), func(i int) bool { return starts[i] > off })
	return i - 1
}

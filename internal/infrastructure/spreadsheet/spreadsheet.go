// Package spreadsheet reads and writes xlsx workbooks: header-keyed rows that
// keep their sheet row numbers, pictures anchored to rows, and single-sheet tables.
package spreadsheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook is an opened xlsx file.
type Workbook struct {
	f *excelize.File
}

// Table is a sheet whose first row holds the headers.
type Table struct {
	Sheet   string
	Headers []string
	Rows    []Row
	folded  map[string]string
}

// Row is one data row. Number is the 1-based row number in the sheet.
type Row struct {
	Number int
	cells  map[string]string
	raw    []string
}

// Picture is an image anchored in a sheet.
type Picture struct {
	Cell      string
	Extension string
	Data      []byte
}

// Open parses xlsx bytes. Malformed archives that make the parser panic are
// reported as errors.
func Open(data []byte) (wb *Workbook, err error) {
	defer func() {
		if r := recover(); r != nil {
			wb, err = nil, fmt.Errorf("panic while reading workbook: %v", r)
		}
	}()

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return &Workbook{f: f}, nil
}

func (w *Workbook) Close() error {
	return w.f.Close()
}

// PickSheet returns preferred when the workbook has it, else the first sheet.
func (w *Workbook) PickSheet(preferred string) string {
	names := w.f.GetSheetList()
	for _, name := range names {
		if name == preferred {
			return name
		}
	}
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// HasSheet reports whether the workbook contains sheet.
func (w *Workbook) HasSheet(sheet string) bool {
	idx, err := w.f.GetSheetIndex(sheet)
	return err == nil && idx >= 0
}

// ReadTable reads sheet with trimmed headers from row 1. Rows shorter than the
// header row read as empty cells.
func (w *Workbook) ReadTable(sheet string) (*Table, error) {
	rows, err := w.f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	table := &Table{Sheet: sheet, folded: map[string]string{}}
	if len(rows) == 0 {
		return table, nil
	}

	for _, h := range rows[0] {
		h = strings.TrimSpace(h)
		table.Headers = append(table.Headers, h)
		key := strings.ToLower(h)
		if _, ok := table.folded[key]; !ok && h != "" {
			table.folded[key] = h
		}
	}

	for i, values := range rows[1:] {
		row := Row{Number: i + 2, cells: make(map[string]string, len(table.Headers)), raw: values}
		for col, header := range table.Headers {
			if header == "" {
				continue
			}
			if _, seen := row.cells[header]; seen {
				continue
			}
			if col < len(values) {
				row.cells[header] = values[col]
			} else {
				row.cells[header] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// HasColumn reports whether header exists, compared exactly.
func (t *Table) HasColumn(header string) bool {
	for _, h := range t.Headers {
		if h == header {
			return true
		}
	}
	return false
}

// FoldColumn returns the actual header matching name case-insensitively.
func (t *Table) FoldColumn(name string) (string, bool) {
	h, ok := t.folded[strings.ToLower(strings.TrimSpace(name))]
	return h, ok
}

// Get returns the raw cell under header, or "".
func (r Row) Get(header string) string {
	return r.cells[header]
}

// Values returns the cells of the row keyed by header.
func (r Row) Values() map[string]string {
	return r.cells
}

// Cells returns every cell of the sheet row in column order, including
// columns without a header.
func (r Row) Cells() []string {
	return r.raw
}

// PicturesByRow returns the first picture anchored on each sheet row.
func (w *Workbook) PicturesByRow(sheet string) (map[int]Picture, error) {
	cells, err := w.f.GetPictureCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("list pictures of %q: %w", sheet, err)
	}

	out := make(map[int]Picture, len(cells))
	for _, cell := range cells {
		_, row, err := excelize.CellNameToCoordinates(cell)
		if err != nil {
			continue
		}
		if _, ok := out[row]; ok {
			continue
		}
		pics, err := w.f.GetPictures(sheet, cell)
		if err != nil || len(pics) == 0 {
			continue
		}
		out[row] = Picture{Cell: cell, Extension: pics[0].Extension, Data: pics[0].File}
	}
	return out, nil
}

// WriteTable renders a single-sheet workbook with a header row followed by rows.
func WriteTable(sheet string, headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := row
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}

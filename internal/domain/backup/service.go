package backup

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/domain/report"
	"github.com/igi-pe/report-api/internal/infrastructure/spreadsheet"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

const (
	workbookName  = "reports.xlsx"
	sheetName     = "reports"
	imagesPrefix  = "images/"
	logosPrefix   = "logo/"
	missingNoTag  = "missing_report_no"
	archiveLayout = "20060102_150405"
)

// Columns is the exported column order.
var Columns = []string{
	"report_no", "description", "shape_and_cut", "tot_est_weight", "color", "clarity",
	"style_number", "image_filename", "comment", "isecopy", "notice_image", "igi_logo",
	"company_logo", "created_at",
}

// requiredColumns must all be present on import; company_logo is optional.
var requiredColumns = []string{
	"report_no", "description", "shape_and_cut", "tot_est_weight", "color", "clarity",
	"style_number", "image_filename", "comment", "isecopy", "created_at", "notice_image", "igi_logo",
}

// Archive is an exported backup.
type Archive struct {
	Filename string
	Data     []byte
}

// ImportRequest is an uploaded backup archive.
type ImportRequest struct {
	Filename  string
	Data      []byte
	Overwrite bool
}

// ImportResult summarizes a restore.
type ImportResult struct {
	Imported int                  `json:"imported"`
	Updated  int                  `json:"updated"`
	Skipped  []string             `json:"skipped"`
	Failed   []report.ItemFailure `json:"failed"`
}

// Service exports and restores the report table together with its files.
type Service struct {
	repo  report.Repository
	files report.FileStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewService(repo report.Repository, files report.FileStore, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		files: files,
		log:   log.With().Str("component", "backup-service").Logger(),
		now:   time.Now,
	}
}

// Export writes every report, oldest first, into reports.xlsx and bundles the
// referenced images and logos that still exist in the store.
func (s *Service) Export(ctx context.Context) (*Archive, error) {
	reports, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(reports))
	for _, rep := range reports {
		rows = append(rows, exportRow(rep))
	}
	workbook, err := spreadsheet.WriteTable(sheetName, Columns, rows)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to build backup workbook", err, "d0bc5e7f-9bad-4fce-a86c-bd3e5f7b9cac")
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if err := writeEntry(zw, workbookName, workbook); err != nil {
		return nil, s.archiveError(ctx, err)
	}

	written := map[string]bool{}
	for _, rep := range reports {
		if name := report.Deref(rep.ImageFilename); name != "" {
			if err := s.bundle(ctx, zw, written, imagesPrefix+name, report.ImageKey(name)); err != nil {
				return nil, s.archiveError(ctx, err)
			}
		}
		if name := report.Deref(rep.CompanyLogo); name != "" {
			if err := s.bundle(ctx, zw, written, logosPrefix+name, report.LogoKey(name)); err != nil {
				return nil, s.archiveError(ctx, err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		return nil, s.archiveError(ctx, err)
	}

	s.log.Info().Int("reports", len(reports)).Int("files", len(written)).Msg("backup exported")
	return &Archive{
		Filename: fmt.Sprintf("reports_backup_%s.zip", s.now().UTC().Format(archiveLayout)),
		Data:     buf.Bytes(),
	}, nil
}

func exportRow(rep *report.Report) []any {
	created := ""
	if !rep.CreatedAt.IsZero() {
		created = rep.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return []any{
		rep.ReportNo, rep.Description, rep.ShapeAndCut, rep.TotEstWeight, rep.Color, rep.Clarity,
		report.Deref(rep.StyleNumber), report.Deref(rep.ImageFilename), report.Deref(rep.Comment),
		rep.Isecopy, rep.NoticeImage, rep.IgiLogo, report.Deref(rep.CompanyLogo), created,
	}
}

// bundle copies key into the archive at arcName once; missing files are skipped.
func (s *Service) bundle(ctx context.Context, zw *zip.Writer, written map[string]bool, arcName, key string) error {
	if written[arcName] {
		return nil
	}
	rc, _, err := s.files.Get(ctx, key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.log.Debug().Str("key", key).Msg("referenced file missing, not bundled")
			return nil
		}
		return err
	}
	defer rc.Close()

	w, err := zw.Create(arcName)
	if err != nil {
		return err
	}
	if _, err := io.Copy(w, rc); err != nil {
		return err
	}
	written[arcName] = true
	return nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (s *Service) archiveError(ctx context.Context, err error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
		"failed to build backup archive", err, "e1cd6f8a-acbe-4adf-b97d-ce4f6a8cadbd")
}

// Import restores an archive produced by Export. Structural problems abort
// before any mutation; per-row failures are collected and the import continues.
func (s *Service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if !strings.HasSuffix(strings.ToLower(req.Filename), ".zip") {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
			"Upload a .zip created by /reports/export-backup", "f2de7a9b-bdcf-4bea-8c8e-df5a7b9dbece")
	}
	zr, err := zip.NewReader(bytes.NewReader(req.Data), int64(len(req.Data)))
	if err != nil {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "Invalid zip file", "03ef8bac-cedf-4cfb-9d9f-ea6b8caecfdf")
	}

	images, logos := map[string]*zip.File{}, map[string]*zip.File{}
	var workbookEntry *zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch {
		case f.Name == workbookName:
			workbookEntry = f
		case strings.HasPrefix(f.Name, imagesPrefix) && len(f.Name) > len(imagesPrefix):
			images[strings.TrimPrefix(f.Name, imagesPrefix)] = f
		case strings.HasPrefix(f.Name, logosPrefix) && len(f.Name) > len(logosPrefix):
			logos[strings.TrimPrefix(f.Name, logosPrefix)] = f
		}
	}
	if workbookEntry == nil {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "reports.xlsx missing in zip", "14f09cbd-df0a-4d0c-8eaf-fb7c9dbfd0e0")
	}

	table, err := readWorkbook(workbookEntry)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"reports.xlsx is not a valid backup workbook", err, "250a1dce-e01b-4e1d-9fb0-0c8daec0e1f1")
	}
	if missing := missingColumns(table); len(missing) > 0 {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
			"Missing columns: "+strings.Join(missing, ", "), "361b2edf-f12c-4f2e-a0c1-1d9ebfd1f202")
	}

	result := &ImportResult{Skipped: []string{}, Failed: []report.ItemFailure{}}
	for _, row := range table.Rows {
		reportNo := strings.TrimSpace(row.Get("report_no"))
		if reportNo == "" {
			result.Skipped = append(result.Skipped, missingNoTag)
			continue
		}
		if err := s.importRow(ctx, row, reportNo, req.Overwrite, images, logos, result); err != nil {
			s.log.Warn().Err(err).Str("report_no", reportNo).Msg("backup row failed")
			result.Failed = append(result.Failed, report.ItemFailure{ReportNo: reportNo, Error: failureMessage(err)})
		}
	}

	s.log.Info().Int("imported", result.Imported).Int("updated", result.Updated).
		Int("skipped", len(result.Skipped)).Int("failed", len(result.Failed)).Msg("backup imported")
	return result, nil
}

func (s *Service) importRow(ctx context.Context, row spreadsheet.Row, reportNo string, overwrite bool,
	images, logos map[string]*zip.File, result *ImportResult) error {
	fields := rowFields(row)

	if name := report.Deref(fields.ImageFilename); name != "" {
		if f, ok := images[name]; ok {
			if err := s.restore(ctx, f, report.ImageKey(name)); err != nil {
				return err
			}
		}
	}
	if name := report.Deref(fields.CompanyLogo); name != "" {
		if f, ok := logos[name]; ok {
			if err := s.restore(ctx, f, report.LogoKey(name)); err != nil {
				return err
			}
		}
	}

	existing, err := s.repo.FindByReportNo(ctx, reportNo)
	if err != nil {
		return err
	}
	if existing != nil {
		if !overwrite {
			result.Skipped = append(result.Skipped, reportNo)
			return nil
		}
		fields.ReportNo = existing.ReportNo
		fields.CreatedAt = existing.CreatedAt
		if err := s.repo.Update(ctx, fields); err != nil {
			return err
		}
		result.Updated++
		return nil
	}

	fields.ReportNo = reportNo
	if err := s.repo.Create(ctx, fields); err != nil {
		return err
	}
	result.Imported++
	return nil
}

// rowFields maps a backup row to a record. created_at is informational and
// not restored.
func rowFields(row spreadsheet.Row) *report.Report {
	return &report.Report{
		Description:   strings.TrimSpace(row.Get("description")),
		ShapeAndCut:   strings.TrimSpace(row.Get("shape_and_cut")),
		TotEstWeight:  strings.TrimSpace(row.Get("tot_est_weight")),
		Color:         strings.TrimSpace(row.Get("color")),
		Clarity:       strings.TrimSpace(row.Get("clarity")),
		StyleNumber:   report.StringPtr(row.Get("style_number")),
		ImageFilename: report.StringPtr(row.Get("image_filename")),
		Comment:       report.StringPtr(row.Get("comment")),
		CompanyLogo:   report.StringPtr(row.Get("company_logo")),
		Isecopy:       report.ParseTruthy(row.Get("isecopy")),
		NoticeImage:   report.ParseTruthy(row.Get("notice_image")),
		IgiLogo:       report.ParseTruthy(row.Get("igi_logo")),
	}
}

func (s *Service) restore(ctx context.Context, f *zip.File, key string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", f.Name, err)
	}
	if err := s.files.Put(ctx, key, bytes.NewReader(data), int64(len(data)), ""); err != nil {
		return fmt.Errorf("restore %s: %w", f.Name, err)
	}
	return nil
}

func readWorkbook(f *zip.File) (*spreadsheet.Table, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return nil, err
	}

	wb, err := spreadsheet.Open(data)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	if !wb.HasSheet(sheetName) {
		return nil, fmt.Errorf("sheet %q not found", sheetName)
	}
	return wb.ReadTable(sheetName)
}

func missingColumns(table *spreadsheet.Table) []string {
	var missing []string
	for _, col := range requiredColumns {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

func failureMessage(err error) string {
	if pe := platformerrors.GetPlatformError(err); pe != nil {
		return pe.Message
	}
	return err.Error()
}

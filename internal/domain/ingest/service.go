package ingest

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/domain/report"
	"github.com/igi-pe/report-api/internal/infrastructure/imageproc"
	"github.com/igi-pe/report-api/internal/infrastructure/spreadsheet"
	"github.com/igi-pe/report-api/internal/utils/fileid"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// Column headers of the jewelry template.
const (
	colJewelryDescription = "Jewelry Description"
	colStyleNumber        = "Style Number"
	colMetalColor         = "Metal Color"
	colGrossWeight        = "Gross Weight"
	colNoOfDiamonds       = "No Of Diamonds"
	colShape              = "Shape"
	colDiamondWeight      = "Diamond Weight"
	colColorCriteria      = "Color Criteria"
	colClarityCriteria    = "Clarity Criteria"
	colDiamondType        = "Diamond Type"

	preferredSheet  = "sheet1"
	mandatoryMarker = "(mandatory)"
	pngContentType  = "image/png"
	commentColumn   = "comment"
)

var igiLogoColumns = []string{"igi_logo", "igi logo", "igi-logo"}

// Request is one spreadsheet upload with its request-level overrides.
type Request struct {
	Workbook    []byte
	CompanyLogo *report.Upload
	DiamondType string
	Comment     string
	Isecopy     bool
	NoticeImage bool
	IgiLogo     bool
}

// Result summarizes an upload.
type Result struct {
	Uploaded      []*report.Report `json:"uploaded"`
	Skipped       []string         `json:"skipped"`
	MissingImages []string         `json:"missing_images"`
	Msg           string           `json:"msg"`
}

// Service turns template spreadsheets into report records.
type Service struct {
	repo  report.Repository
	files report.FileStore
	log   zerolog.Logger
}

func NewService(repo report.Repository, files report.FileStore, log zerolog.Logger) *Service {
	return &Service{
		repo:  repo,
		files: files,
		log:   log.With().Str("component", "ingest-service").Logger(),
	}
}

// Upload creates one report per eligible row. Rows are committed one at a
// time, so a failure leaves earlier rows persisted.
func (s *Service) Upload(ctx context.Context, req Request) (*Result, error) {
	if req.CompanyLogo != nil && !report.AllowedImageExt(req.CompanyLogo.Ext()) {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
			"company_logo must be png/jpg/jpeg/webp", "8b6d0f2a-4c5e-4a7f-931d-6e8f0a2c4d57")
	}

	wb, err := spreadsheet.Open(req.Workbook)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"Invalid xlsx file", err, "9c7e1a3b-5d6f-4b8a-a42e-7f9a1b3d5e68")
	}
	defer wb.Close()

	table, err := wb.ReadTable(wb.PickSheet(preferredSheet))
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"Invalid xlsx file", err, "ad8f2b4c-6e7a-4c9b-b53f-8a0b2c4e6f79")
	}
	if missing := missingColumns(table, colJewelryDescription, colStyleNumber); len(missing) > 0 {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
			"Missing columns: "+strings.Join(missing, ", "), "be9a3c5d-7f8b-4dac-864a-9b1c3d5f7a8a")
	}

	pictures, err := wb.PicturesByRow(table.Sheet)
	if err != nil {
		s.log.Warn().Err(err).Str("sheet", table.Sheet).Msg("read anchored pictures")
		pictures = map[int]spreadsheet.Picture{}
	}

	var companyLogo *string
	if req.CompanyLogo != nil {
		name := fileid.CompanyLogoName(req.CompanyLogo.Ext())
		if err := s.put(ctx, report.LogoKey(name), req.CompanyLogo.Data, ""); err != nil {
			return nil, err
		}
		companyLogo = &name
	}

	result := &Result{Uploaded: []*report.Report{}, Skipped: []string{}, MissingImages: []string{}}
	for _, row := range eligibleRows(table) {
		style := strings.TrimSpace(row.Get(colStyleNumber))
		if style == "" {
			continue
		}

		exists, err := s.repo.ExistsStyleNumber(ctx, style)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped = append(result.Skipped, style)
			continue
		}

		rep, err := s.buildReport(ctx, table, row, req, style)
		if err != nil {
			return nil, err
		}
		rep.CompanyLogo = companyLogo

		if pic, ok := pictures[row.Number]; ok {
			name, err := s.storeRowImage(ctx, style, pic)
			if err != nil {
				s.log.Warn().Err(err).Str("style_number", style).Int("row", row.Number).Msg("skip unreadable row image")
			} else {
				rep.ImageFilename = &name
			}
		}
		if rep.ImageFilename == nil {
			result.MissingImages = append(result.MissingImages, style)
		}

		if err := s.repo.Create(ctx, rep); err != nil {
			if platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict) {
				result.Skipped = append(result.Skipped, style)
				continue
			}
			return nil, err
		}
		result.Uploaded = append(result.Uploaded, rep)
	}

	result.Msg = fmt.Sprintf("%d reports uploaded, %d skipped", len(result.Uploaded), len(result.Skipped))
	s.log.Info().Int("uploaded", len(result.Uploaded)).Int("skipped", len(result.Skipped)).
		Int("missing_images", len(result.MissingImages)).Msg("spreadsheet ingested")
	return result, nil
}

func (s *Service) buildReport(ctx context.Context, table *spreadsheet.Table, row spreadsheet.Row, req Request, style string) (*report.Report, error) {
	reportNo, err := report.NextReportNo(ctx, s.repo)
	if err != nil {
		return nil, err
	}

	count := diamondCount(row.Get(colNoOfDiamonds))
	phrase := firstNonBlank(req.DiamondType, row.Get(colDiamondType), defaultDiamondPhrase)
	jewel := normalizeJewel(strings.TrimSpace(row.Get(colJewelryDescription)))

	var comment string
	if col, ok := table.FoldColumn(commentColumn); ok {
		comment = firstNonBlank(req.Comment, row.Get(col))
	} else {
		comment = firstNonBlank(req.Comment)
	}

	return &report.Report{
		ReportNo:     reportNo,
		Description:  describe(strings.TrimSpace(row.Get(colMetalColor)), jewel, strings.TrimSpace(row.Get(colGrossWeight)), count, phrase),
		ShapeAndCut:  shapeAndCut(count, strings.TrimSpace(row.Get(colShape))),
		TotEstWeight: strings.TrimSpace(row.Get(colDiamondWeight)),
		Color:        strings.TrimSpace(row.Get(colColorCriteria)),
		Clarity:      strings.TrimSpace(row.Get(colClarityCriteria)),
		StyleNumber:  &style,
		Comment:      report.StringPtr(comment),
		Isecopy:      req.Isecopy,
		NoticeImage:  req.NoticeImage,
		IgiLogo:      req.IgiLogo || rowIgiLogo(table, row),
	}, nil
}

// rowIgiLogo reads the first igi logo column present in the sheet.
func rowIgiLogo(table *spreadsheet.Table, row spreadsheet.Row) bool {
	for _, name := range igiLogoColumns {
		if col, ok := table.FoldColumn(name); ok {
			return report.ParseTruthy(row.Get(col))
		}
	}
	return false
}

func (s *Service) storeRowImage(ctx context.Context, style string, pic spreadsheet.Picture) (string, error) {
	data, err := imageproc.ToPNG(pic.Data)
	if err != nil {
		return "", err
	}
	name := strings.ReplaceAll(style, " ", "_") + ".png"
	if err := s.put(ctx, report.ImageKey(name), data, pngContentType); err != nil {
		return "", err
	}
	return name, nil
}

func (s *Service) put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := s.files.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to store file", err, "cfab4d6e-8a9c-4ebd-975b-ac2d4e6a8b9b")
	}
	return nil
}

// eligibleRows drops rows with a blank jewelry description and rows where any
// cell carries the "(mandatory)" template hint.
func eligibleRows(table *spreadsheet.Table) []spreadsheet.Row {
	out := make([]spreadsheet.Row, 0, len(table.Rows))
	for _, row := range table.Rows {
		if strings.TrimSpace(row.Get(colJewelryDescription)) == "" {
			continue
		}
		if hasMandatoryMarker(row) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func hasMandatoryMarker(row spreadsheet.Row) bool {
	for _, v := range row.Cells() {
		if strings.Contains(strings.ToLower(v), mandatoryMarker) {
			return true
		}
	}
	return false
}

func missingColumns(table *spreadsheet.Table, required ...string) []string {
	var missing []string
	for _, col := range required {
		if !table.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	sort.Strings(missing)
	return missing
}

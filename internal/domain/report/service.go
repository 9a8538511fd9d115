package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/config"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// Service implements report CRUD, public lookup, card rendering and PDF seeding.
type Service struct {
	cfg   *config.Config
	repo  Repository
	files FileStore
	card  CardRenderer
	log   zerolog.Logger
	now   func() time.Time
}

// NewService wires the report service.
func NewService(cfg *config.Config, repo Repository, files FileStore, card CardRenderer, log zerolog.Logger) *Service {
	return &Service{
		cfg:   cfg,
		repo:  repo,
		files: files,
		card:  card,
		log:   log.With().Str("component", "report-service").Logger(),
		now:   time.Now,
	}
}

// List returns one page of reports, newest first, optionally filtered by a
// case-insensitive report number substring.
func (s *Service) List(ctx context.Context, filter ListFilter) (*ListResult, error) {
	if filter.Page < 1 {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "page must be >= 1", "0f6a7c1e-8b5d-4d3a-9e2f-1a4b6c8d0e21")
	}
	if filter.Size == 0 {
		filter.Size = defaultPageSize
	}
	if filter.Size < 1 || filter.Size > maxPageSize {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "size must be between 1 and 100", "6d2b8e4f-0c1a-4e7b-a3d5-9f8e7c6b5a42")
	}
	filter.Query = strings.TrimSpace(filter.Query)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &ListResult{Page: filter.Page, Size: filter.Size, Total: total, Items: make([]ListItem, 0, len(items))}
	for _, item := range items {
		result.Items = append(result.Items, ListItem{ReportNo: item.ReportNo, StyleNumber: item.StyleNumber})
	}
	return result, nil
}

// Get returns a single report or a NOT_FOUND error.
func (s *Service) Get(ctx context.Context, reportNo string) (*Report, error) {
	rep, err := s.repo.FindByReportNo(ctx, reportNo)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, notFound(ctx)
	}
	return rep, nil
}

// Update applies a partial update, replacing the image and logo files when new
// ones are supplied.
func (s *Service) Update(ctx context.Context, reportNo string, params UpdateParams) (*UpdateResult, error) {
	rep, err := s.Get(ctx, reportNo)
	if err != nil {
		return nil, err
	}

	if params.Image != nil && !AllowedImageExt(params.Image.Ext()) {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "image must be PNG/JPG/JPEG/WEBP", "a1c3e5f7-2b4d-4f6a-8c0e-1d3f5a7b9c11")
	}
	if params.CompanyLogo != nil && !AllowedImageExt(params.CompanyLogo.Ext()) {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "company_logo must be PNG/JPG/JPEG/WEBP", "b2d4f6a8-3c5e-4a7b-9d1f-2e4a6c8e0d22")
	}
	if params.StyleNumber != nil {
		next := strings.TrimSpace(*params.StyleNumber)
		if next != "" && next != Deref(rep.StyleNumber) {
			exists, err := s.repo.ExistsStyleNumber(ctx, next)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeConflict,
					fmt.Sprintf("style number %s already exists", next), nil, "c3e5a7b9-4d6f-4b8c-8e2a-3f5b7d9f1e33")
			}
		}
	}

	if params.Image != nil {
		if rep.ImageFilename != nil {
			s.deleteBestEffort(ctx, ImageKey(*rep.ImageFilename))
		}
		name := fmt.Sprintf("%s_image.%s", rep.ReportNo, params.Image.Ext())
		if err := s.putBytes(ctx, ImageKey(name), params.Image.Data); err != nil {
			return nil, err
		}
		rep.ImageFilename = &name
	}
	if params.CompanyLogo != nil {
		s.releaseLogo(ctx, rep)
		name := fmt.Sprintf("company_logo_%s_%d.%s", rep.ReportNo, s.now().UTC().Unix(), params.CompanyLogo.Ext())
		if err := s.putBytes(ctx, LogoKey(name), params.CompanyLogo.Data); err != nil {
			return nil, err
		}
		rep.CompanyLogo = &name
	}

	applyUpdate(rep, params)

	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return &UpdateResult{
		Msg:           "Report updated successfully",
		ReportNo:      rep.ReportNo,
		ImageFilename: rep.ImageFilename,
		CompanyLogo:   rep.CompanyLogo,
		IgiLogo:       rep.IgiLogo,
	}, nil
}

func applyUpdate(rep *Report, params UpdateParams) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&rep.Description, params.Description)
	setString(&rep.ShapeAndCut, params.ShapeAndCut)
	setString(&rep.TotEstWeight, params.TotEstWeight)
	setString(&rep.Color, params.Color)
	setString(&rep.Clarity, params.Clarity)
	if params.StyleNumber != nil {
		rep.StyleNumber = StringPtr(*params.StyleNumber)
	}
	if params.ImageFilename != nil && params.Image == nil {
		rep.ImageFilename = StringPtr(*params.ImageFilename)
	}
	if params.Comment != nil {
		rep.Comment = StringPtr(*params.Comment)
	}
	if params.NoticeImage != nil {
		rep.NoticeImage = *params.NoticeImage
	}
	if params.Isecopy != nil {
		rep.Isecopy = *params.Isecopy
	}
	if params.IgiLogo != nil {
		rep.IgiLogo = *params.IgiLogo
	}
}

// Delete removes a report and, best-effort, its image and logo files.
func (s *Service) Delete(ctx context.Context, reportNo string) error {
	rep, err := s.Get(ctx, reportNo)
	if err != nil {
		return err
	}
	s.deleteFiles(ctx, rep)
	return s.repo.Delete(ctx, rep.ReportNo)
}

// BatchDelete deletes each report independently and collects per-item failures.
func (s *Service) BatchDelete(ctx context.Context, reportNos []string) *BatchDeleteResult {
	result := &BatchDeleteResult{Msg: "Batch delete completed", Failed: []ItemFailure{}, Total: len(reportNos)}
	for _, reportNo := range reportNos {
		if err := s.Delete(ctx, reportNo); err != nil {
			msg := "Not found"
			if !platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound) {
				msg = err.Error()
			}
			result.Failed = append(result.Failed, ItemFailure{ReportNo: reportNo, Error: msg})
			continue
		}
		result.Deleted++
	}
	return result
}

// PublicLookup prefers a seeded PDF and falls back to the stored record.
func (s *Service) PublicLookup(ctx context.Context, reportNo string) (*PublicReport, error) {
	exists, err := s.files.Exists(ctx, PDFKey(reportNo))
	if err != nil {
		s.log.Warn().Err(err).Str("report_no", reportNo).Msg("check seeded pdf")
	}
	if exists {
		return &PublicReport{PDFPath: strings.TrimPrefix(s.cfg.UploadsURLPrefix, "/") + "/" + PDFKey(reportNo)}, nil
	}
	rep, err := s.Get(ctx, reportNo)
	if err != nil {
		return nil, err
	}
	return &PublicReport{Report: rep}, nil
}

// RenderCard composes the PNG card for a report. A missing or unreadable
// image simply leaves the thumbnail out.
func (s *Service) RenderCard(ctx context.Context, reportNo string) ([]byte, error) {
	rep, err := s.Get(ctx, reportNo)
	if err != nil {
		return nil, err
	}

	var thumbnail []byte
	if rep.ImageFilename != nil {
		thumbnail, err = s.readFile(ctx, ImageKey(*rep.ImageFilename))
		if err != nil {
			s.log.Debug().Err(err).Str("report_no", rep.ReportNo).Msg("card thumbnail unavailable")
			thumbnail = nil
		}
	}

	png, err := s.card.Render(rep, thumbnail)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to render card", err, "d4f6b8c0-5e7a-4c9d-9f3b-4a6c8e0a2f44")
	}
	return png, nil
}

func (s *Service) deleteFiles(ctx context.Context, rep *Report) {
	if rep.ImageFilename != nil {
		s.deleteBestEffort(ctx, ImageKey(*rep.ImageFilename))
	}
	s.releaseLogo(ctx, rep)
}

// releaseLogo deletes the logo of rep unless another report still shares it.
// Bulk uploads give every row the same logo file.
func (s *Service) releaseLogo(ctx context.Context, rep *Report) {
	if rep.CompanyLogo == nil {
		return
	}
	shared, err := s.repo.LogoInUse(ctx, *rep.CompanyLogo, rep.ReportNo)
	if err != nil {
		s.log.Warn().Err(err).Str("logo", *rep.CompanyLogo).Msg("keep logo, reference check failed")
		return
	}
	if shared {
		return
	}
	s.deleteBestEffort(ctx, LogoKey(*rep.CompanyLogo))
}

func (s *Service) deleteBestEffort(ctx context.Context, key string) {
	if err := s.files.Delete(ctx, key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.log.Debug().Err(err).Str("key", key).Msg("ignore file delete failure")
	}
}

func (s *Service) putBytes(ctx context.Context, key string, data []byte) error {
	if err := s.files.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mimetype.Detect(data).String()); err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to store file", err, "e5a7c9d1-6f8b-4dae-a04c-5b7d9f1b3a55")
	}
	return nil
}

func (s *Service) readFile(ctx context.Context, key string) ([]byte, error) {
	rc, _, err := s.files.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func notFound(ctx context.Context) error {
	return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
		"Report not found", nil, "f6b8d0e2-7a9c-4ebf-b15d-6c8e0a2c4b66")
}

package report

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// ImportPDFArchive stores every PDF in a zip as pdfs/<stem>.pdf and logs it.
// Entries fail independently.
func (s *Service) ImportPDFArchive(ctx context.Context, archive []byte) (*PDFArchiveResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "Invalid zip file", "07c9e1f3-8b0d-4fc0-b26e-7d9f1b3d5c77")
	}

	var entries []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(f.Name), ".pdf") {
			continue
		}
		entries = append(entries, f)
	}
	if len(entries) == 0 {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain, "No PDF files found in zip", "18d0f2a4-9c1e-40d1-837f-8e0a2c4e6d88")
	}

	result := &PDFArchiveResult{Reports: []string{}, Failed: []ItemFailure{}}
	for _, f := range entries {
		base := path.Base(f.Name)
		reportNo := strings.TrimSuffix(base, path.Ext(base))
		if reportNo == "" {
			continue
		}
		if err := s.storeArchivedPDF(ctx, f, reportNo); err != nil {
			s.log.Warn().Err(err).Str("entry", f.Name).Msg("skip archived pdf")
			result.Failed = append(result.Failed, ItemFailure{ReportNo: reportNo, Error: err.Error()})
			continue
		}
		result.Reports = append(result.Reports, reportNo)
	}
	result.Msg = fmt.Sprintf("%d PDFs uploaded successfully", len(result.Reports))
	return result, nil
}

func (s *Service) storeArchivedPDF(ctx context.Context, f *zip.File, reportNo string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry: %w", err)
	}
	data, err := io.ReadAll(rc)
	rc.Close()
	if err != nil {
		return fmt.Errorf("read entry: %w", err)
	}
	if !mimetype.Detect(data).Is("application/pdf") {
		return fmt.Errorf("%s is not a PDF", f.Name)
	}

	key := PDFKey(reportNo)
	if err := s.files.Put(ctx, key, bytes.NewReader(data), int64(len(data)), "application/pdf"); err != nil {
		return fmt.Errorf("store pdf: %w", err)
	}
	return s.repo.RecordUploadedPDF(ctx, reportNo, path.Base(key))
}

package minireport

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/igi-pe/report-api/internal/config"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

const (
	minFiles = 1
	maxFiles = 2

	pdfContentType = "application/pdf"
	pngContentType = "image/png"

	proportionsFile = "proportions.png"
	qrCodeFile      = "qrcode.png"
	barcode10File   = "barcode10.png"
	barcode12File   = "barcode12.png"
)

// Service turns grading PDFs into parsed records plus generated artifacts.
type Service struct {
	cfg    *config.Config
	opener DocumentOpener
	codes  CodeGenerator
	store  ArtifactStore
	log    zerolog.Logger
}

func NewService(cfg *config.Config, opener DocumentOpener, codes CodeGenerator, store ArtifactStore, log zerolog.Logger) *Service {
	return &Service{
		cfg:    cfg,
		opener: opener,
		codes:  codes,
		store:  store,
		log:    log.With().Str("component", "minireport-service").Logger(),
	}
}

// Process validates every upload first, then handles them in order.
func (s *Service) Process(ctx context.Context, uploads []Upload) (*Result, error) {
	if len(uploads) < minFiles || len(uploads) > maxFiles {
		return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
			"You can upload minimum 1 and maximum 2 PDF files", "3c1e5a7b-9d0f-4b2a-8c6e-1f3a5b7d9e02")
	}
	for _, u := range uploads {
		if !isPDF(u) {
			return nil, platformerrors.Validation(ctx, platformerrors.LayerDomain,
				fmt.Sprintf("%s is not a valid PDF", u.Filename), "4d2f6b8c-0e1a-4c3b-9d7f-2a4b6c8e0f13")
		}
	}

	result := &Result{Reports: make([]*GradingReport, 0, len(uploads))}
	for _, u := range uploads {
		rep, err := s.processOne(ctx, u)
		if err != nil {
			return nil, err
		}
		result.Reports = append(result.Reports, rep)
	}
	result.Count = len(result.Reports)
	return result, nil
}

func isPDF(u Upload) bool {
	ct := strings.TrimSpace(strings.Split(u.ContentType, ";")[0])
	if !strings.EqualFold(ct, pdfContentType) {
		return false
	}
	return mimetype.Detect(u.Data).Is(pdfContentType)
}

func (s *Service) processOne(ctx context.Context, u Upload) (*GradingReport, error) {
	doc, err := s.opener.Open(u.Data)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			fmt.Sprintf("%s is not a valid PDF", u.Filename), err, "5e3a7c9d-1f2b-4d4c-a08a-3b5c7d9f1a24")
	}
	defer doc.Close()

	rep := ParseText(doc.Text())
	folder := rep.ReportNumber
	if folder == "" {
		folder = fileStem(u.Filename)
	}
	log := s.log.With().Str("report_no", folder).Logger()

	artifacts := map[string][]byte{}
	if diagram := LocateProportions(doc, log); diagram != nil {
		artifacts[proportionsFile] = diagram
	}
	qr := LocateQRCode(doc, log)

	var (
		b10, b12       []byte
		num10, num12   string
		verificationQR []byte
	)
	g, _ := errgroup.WithContext(ctx)
	if qr == nil {
		g.Go(func() error {
			var err error
			verificationQR, err = s.codes.VerificationQR(s.verificationURL(folder))
			return err
		})
	}
	g.Go(func() error {
		var err error
		num10, b10, err = s.codes.Barcode(10)
		return err
	})
	g.Go(func() error {
		var err error
		num12, b12, err = s.codes.Barcode(12)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"failed to generate codes", err, "6f4b8d0e-2a3c-4e5d-b19b-4c6d8e0a2b35")
	}
	if qr == nil {
		qr = verificationQR
	}
	artifacts[qrCodeFile] = qr
	artifacts[barcode10File] = b10
	artifacts[barcode12File] = b12

	for name, data := range artifacts {
		key := folder + "/" + name
		if err := s.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), pngContentType); err != nil {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
				"failed to store mini-report image", err, "7a5c9e1f-3b4d-4f6e-820c-5d7e9f1b3c46")
		}
	}

	if _, ok := artifacts[proportionsFile]; ok {
		rep.Images.Proportions = s.artifactURL(folder, proportionsFile)
	}
	rep.Images.QRCode = s.artifactURL(folder, qrCodeFile)
	rep.Images.Barcode10 = BarcodeRef{Number: num10, Image: s.artifactURL(folder, barcode10File)}
	rep.Images.Barcode12 = BarcodeRef{Number: num12, Image: s.artifactURL(folder, barcode12File)}

	log.Info().Bool("proportions", rep.Images.Proportions != "").Msg("mini report generated")
	return rep, nil
}

// PurgeOlderThan removes generated folders last written before now-retention.
func (s *Service) PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error) {
	return s.store.PurgeOlderThan(ctx, time.Now().Add(-retention))
}

func (s *Service) verificationURL(reportNo string) string {
	return s.cfg.ReportCheckBaseURL + "?reportno=" + url.QueryEscape(reportNo)
}

func (s *Service) artifactURL(folder, name string) string {
	return strings.TrimRight(s.cfg.MiniReportsURLPrefix, "/") + "/" + url.PathEscape(folder) + "/" + name
}

// fileStem returns the base filename without its extension.
func fileStem(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "" || stem == "." || stem == "/" {
		return "report"
	}
	return stem
}

package handlers_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/igi-pe/report-api/internal/domain/account"
	"github.com/igi-pe/report-api/internal/domain/backup"
	"github.com/igi-pe/report-api/internal/domain/ingest"
	"github.com/igi-pe/report-api/internal/domain/minireport"
	"github.com/igi-pe/report-api/internal/domain/report"
)

type MockAccountService struct {
	RegisterFunc    func(ctx context.Context, email, password string) error
	LoginFunc       func(ctx context.Context, email, password string) (*account.Token, error)
	VerifyTokenFunc func(ctx context.Context, token string) (string, error)
}

func (m *MockAccountService) Register(ctx context.Context, email, password string) error {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, password)
	}
	return nil
}

func (m *MockAccountService) Login(ctx context.Context, email, password string) (*account.Token, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, nil
}

func (m *MockAccountService) VerifyToken(ctx context.Context, token string) (string, error) {
	if m.VerifyTokenFunc != nil {
		return m.VerifyTokenFunc(ctx, token)
	}
	return "", nil
}

type MockReportService struct {
	ListFunc             func(ctx context.Context, filter report.ListFilter) (*report.ListResult, error)
	GetFunc              func(ctx context.Context, reportNo string) (*report.Report, error)
	UpdateFunc           func(ctx context.Context, reportNo string, params report.UpdateParams) (*report.UpdateResult, error)
	DeleteFunc           func(ctx context.Context, reportNo string) error
	BatchDeleteFunc      func(ctx context.Context, reportNos []string) *report.BatchDeleteResult
	PublicLookupFunc     func(ctx context.Context, reportNo string) (*report.PublicReport, error)
	RenderCardFunc       func(ctx context.Context, reportNo string) ([]byte, error)
	ImportPDFArchiveFunc func(ctx context.Context, archive []byte) (*report.PDFArchiveResult, error)
}

func (m *MockReportService) List(ctx context.Context, filter report.ListFilter) (*report.ListResult, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return &report.ListResult{}, nil
}

func (m *MockReportService) Get(ctx context.Context, reportNo string) (*report.Report, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, reportNo)
	}
	return nil, nil
}

func (m *MockReportService) Update(ctx context.Context, reportNo string, params report.UpdateParams) (*report.UpdateResult, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, reportNo, params)
	}
	return &report.UpdateResult{}, nil
}

func (m *MockReportService) Delete(ctx context.Context, reportNo string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, reportNo)
	}
	return nil
}

func (m *MockReportService) BatchDelete(ctx context.Context, reportNos []string) *report.BatchDeleteResult {
	if m.BatchDeleteFunc != nil {
		return m.BatchDeleteFunc(ctx, reportNos)
	}
	return &report.BatchDeleteResult{}
}

func (m *MockReportService) PublicLookup(ctx context.Context, reportNo string) (*report.PublicReport, error) {
	if m.PublicLookupFunc != nil {
		return m.PublicLookupFunc(ctx, reportNo)
	}
	return &report.PublicReport{}, nil
}

func (m *MockReportService) RenderCard(ctx context.Context, reportNo string) ([]byte, error) {
	if m.RenderCardFunc != nil {
		return m.RenderCardFunc(ctx, reportNo)
	}
	return nil, nil
}

func (m *MockReportService) ImportPDFArchive(ctx context.Context, archive []byte) (*report.PDFArchiveResult, error) {
	if m.ImportPDFArchiveFunc != nil {
		return m.ImportPDFArchiveFunc(ctx, archive)
	}
	return &report.PDFArchiveResult{}, nil
}

type MockIngestService struct {
	UploadFunc func(ctx context.Context, req ingest.Request) (*ingest.Result, error)
}

func (m *MockIngestService) Upload(ctx context.Context, req ingest.Request) (*ingest.Result, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, req)
	}
	return &ingest.Result{}, nil
}

type MockBackupService struct {
	ExportFunc func(ctx context.Context) (*backup.Archive, error)
	ImportFunc func(ctx context.Context, req backup.ImportRequest) (*backup.ImportResult, error)
}

func (m *MockBackupService) Export(ctx context.Context) (*backup.Archive, error) {
	if m.ExportFunc != nil {
		return m.ExportFunc(ctx)
	}
	return &backup.Archive{}, nil
}

func (m *MockBackupService) Import(ctx context.Context, req backup.ImportRequest) (*backup.ImportResult, error) {
	if m.ImportFunc != nil {
		return m.ImportFunc(ctx, req)
	}
	return &backup.ImportResult{}, nil
}

type MockMiniReportService struct {
	ProcessFunc func(ctx context.Context, uploads []minireport.Upload) (*minireport.Result, error)
}

func (m *MockMiniReportService) Process(ctx context.Context, uploads []minireport.Upload) (*minireport.Result, error) {
	if m.ProcessFunc != nil {
		return m.ProcessFunc(ctx, uploads)
	}
	return &minireport.Result{}, nil
}

type formPart struct {
	field       string
	filename    string
	contentType string
	content     string
}

// multipartRequest builds a multipart request from text fields and file parts.
func multipartRequest(t *testing.T, method, target string, fields map[string]string, files ...formPart) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		contentType := f.contentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)
		part, err := mw.CreatePart(header)
		require.NoError(t, err)
		_, err = io.WriteString(part, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(method, target, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

package report

import (
	"context"
	"io"
)

// Repository persists reports and the uploaded PDF log.
type Repository interface {
	// FindByReportNo returns nil, nil when no record matches.
	FindByReportNo(ctx context.Context, reportNo string) (*Report, error)
	ExistsReportNo(ctx context.Context, reportNo string) (bool, error)
	ExistsStyleNumber(ctx context.Context, styleNumber string) (bool, error)
	// LogoInUse reports whether a record other than exceptReportNo references logo.
	LogoInUse(ctx context.Context, logo, exceptReportNo string) (bool, error)
	// Create assigns CreatedAt.
	Create(ctx context.Context, rep *Report) error
	// Update rewrites every mutable column of the record identified by ReportNo.
	Update(ctx context.Context, rep *Report) error
	Delete(ctx context.Context, reportNo string) error
	List(ctx context.Context, filter ListFilter) ([]*Report, int64, error)
	// ListAll returns every record ordered by creation time, oldest first.
	ListAll(ctx context.Context) ([]*Report, error)
	RecordUploadedPDF(ctx context.Context, reportNo, filename string) error
}

// FileStore holds report images, logos and seeded PDFs. Missing keys yield
// errors matching fs.ErrNotExist.
type FileStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
}

// CardRenderer draws the printable card composite for a report. thumbnail
// holds the encoded report image, or nil.
type CardRenderer interface {
	Render(rep *Report, thumbnail []byte) ([]byte, error)
}

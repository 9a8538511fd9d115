package storage

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/config"
)

// Store is the file store surface shared by both backends.
type Store interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, key string) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error)
	Health(ctx context.Context) error
}

// Stores groups the uploads store and the generated mini-report store.
type Stores struct {
	Uploads     Store
	MiniReports Store
}

// New builds both stores for the configured backend.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	if cfg.IsS3Storage() {
		uploads, err := NewS3Storage(ctx, cfg, cfg.S3UploadsPrefix, log)
		if err != nil {
			return nil, err
		}
		miniReports, err := NewS3Storage(ctx, cfg, cfg.S3MiniReportPrefix, log)
		if err != nil {
			return nil, err
		}
		return &Stores{Uploads: uploads, MiniReports: miniReports}, nil
	}

	uploads, err := NewLocalStorage(cfg.UploadDir, log)
	if err != nil {
		return nil, err
	}
	miniReports, err := NewLocalStorage(cfg.MiniReportsDir, log)
	if err != nil {
		return nil, err
	}
	return &Stores{Uploads: uploads, MiniReports: miniReports}, nil
}

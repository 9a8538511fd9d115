package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://u:p@localhost:5432/reports?sslmode=disable")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "report-api", cfg.ServiceName)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.True(t, cfg.IsLocalStorage())
	assert.False(t, cfg.IsS3Storage())
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, "/mini-reports", cfg.MiniReportsURLPrefix)
	assert.Equal(t, "https://www.gia.edu/report-check", cfg.ReportCheckBaseURL)
	assert.Equal(t, time.Duration(0), cfg.MiniReportRetention)
}

func TestLoadNormalizesURLPrefixes(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://localhost/reports")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("UPLOADS_URL_PREFIX", "static/uploads/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/static/uploads", cfg.UploadsURLPrefix)
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://localhost/reports")
	t.Setenv("JWT_SECRET", "  ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestLoadS3RequiresBucket(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://localhost/reports")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_BACKEND", "s3")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_BUCKET")
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("DB_POSTGRESQL_WRITE_DSN", "postgres://localhost/reports")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORAGE_BACKEND", "gcs")

	_, err := Load()
	require.Error(t, err)
}

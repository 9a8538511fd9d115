package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds the environment driven configuration for the report service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"report-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"HTTP_PORT" envDefault:"8000"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"LOG_FORMAT" envDefault:"console"` // console or json
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTLPInsecure    bool          `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	TraceSampleRate float64       `env:"TRACE_SAMPLE_RATE" envDefault:"1"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database
	DBPostgresqlWriteDSN string        `env:"DB_POSTGRESQL_WRITE_DSN,notEmpty"`
	DBMaxIdleConns       int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns       int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime       time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`

	// Authentication
	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`
	AuthJWKSURL    string        `env:"AUTH_JWKS_URL"`
	AuthIssuer     string        `env:"AUTH_ISSUER"`

	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://localhost:5173"`

	// Storage Backend Selection
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"local"` // Options: "s3" or "local"

	// Local storage roots. Report images, logos and seeded PDFs live under
	// UploadDir; generated mini-report artifacts under MiniReportsDir.
	UploadDir      string `env:"UPLOAD_DIR" envDefault:"uploads"`
	MiniReportsDir string `env:"MINI_REPORTS_DIR" envDefault:"mini-reports-output"`

	UploadsURLPrefix     string `env:"UPLOADS_URL_PREFIX" envDefault:"/uploads"`
	MiniReportsURLPrefix string `env:"MINI_REPORTS_URL_PREFIX" envDefault:"/mini-reports"`

	// S3 Storage Configuration
	S3Endpoint         string `env:"S3_ENDPOINT"`
	S3Region           string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Bucket           string `env:"S3_BUCKET"`
	S3AccessKeyID      string `env:"S3_ACCESS_KEY_ID"`
	S3SecretKey        string `env:"S3_SECRET_ACCESS_KEY"`
	S3UsePathStyle     bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`
	S3UploadsPrefix    string `env:"S3_UPLOADS_PREFIX" envDefault:"uploads"`
	S3MiniReportPrefix string `env:"S3_MINI_REPORTS_PREFIX" envDefault:"mini-reports"`

	// Report artifacts
	ReportCheckBaseURL string `env:"REPORT_CHECK_BASE_URL" envDefault:"https://www.gia.edu/report-check"`
	CardQRBaseURL      string `env:"CARD_QR_BASE_URL" envDefault:"https://igi.org.pe/"`
	MaxUploadBytes     int64  `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"`

	// Mini-report retention; 0 disables the cleanup job.
	MiniReportRetention       time.Duration `env:"MINI_REPORT_RETENTION" envDefault:"0s"`
	MiniReportCleanupSchedule string        `env:"MINI_REPORT_CLEANUP_SCHEDULE" envDefault:"0 3 * * *"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}

	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)
	cfg.AuthJWKSURL = strings.TrimSpace(cfg.AuthJWKSURL)
	cfg.S3Bucket = strings.TrimSpace(cfg.S3Bucket)
	cfg.S3AccessKeyID = strings.TrimSpace(cfg.S3AccessKeyID)
	cfg.S3SecretKey = strings.TrimSpace(cfg.S3SecretKey)
	cfg.S3Endpoint = strings.TrimSpace(cfg.S3Endpoint)
	cfg.UploadsURLPrefix = "/" + strings.Trim(cfg.UploadsURLPrefix, "/")
	cfg.MiniReportsURLPrefix = "/" + strings.Trim(cfg.MiniReportsURLPrefix, "/")
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 100 * 1024 * 1024
	}
	if cfg.TraceSampleRate < 0 || cfg.TraceSampleRate > 1 {
		cfg.TraceSampleRate = 1
	}
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = 24 * time.Hour
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	backend := strings.ToLower(strings.TrimSpace(c.StorageBackend))
	switch backend {
	case "local":
		if strings.TrimSpace(c.UploadDir) == "" || strings.TrimSpace(c.MiniReportsDir) == "" {
			return fmt.Errorf("UPLOAD_DIR and MINI_REPORTS_DIR are required for local storage")
		}
	case "s3":
		if c.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_BACKEND is s3")
		}
	default:
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", c.StorageBackend)
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsLocalStorage returns true if local storage backend is configured.
func (c *Config) IsLocalStorage() bool {
	return strings.ToLower(strings.TrimSpace(c.StorageBackend)) == "local"
}

// IsS3Storage returns true if S3 storage backend is configured.
func (c *Config) IsS3Storage() bool {
	return strings.ToLower(strings.TrimSpace(c.StorageBackend)) == "s3"
}

package handlers

import (
	"github.com/rs/zerolog"
)

// Services groups the domain services the HTTP layer depends on.
type Services struct {
	Accounts    AccountService
	Reports     ReportService
	Ingest      IngestService
	Backup      BackupService
	MiniReports MiniReportService
	Uploads     FileSource
	Artifacts   FileSource
}

// Provider wires HTTP handlers.
type Provider struct {
	Auth        *AuthHandler
	Reports     *ReportHandler
	Ingest      *IngestHandler
	Backup      *BackupHandler
	MiniReports *MiniReportHandler
	Uploads     *FileHandler
	Artifacts   *FileHandler
}

func NewProvider(services Services, log zerolog.Logger) *Provider {
	return &Provider{
		Auth:        NewAuthHandler(services.Accounts, log),
		Reports:     NewReportHandler(services.Reports, log),
		Ingest:      NewIngestHandler(services.Ingest, log),
		Backup:      NewBackupHandler(services.Backup, log),
		MiniReports: NewMiniReportHandler(services.MiniReports, log),
		Uploads:     NewFileHandler(services.Uploads, "uploads", log),
		Artifacts:   NewFileHandler(services.Artifacts, "mini-reports", log),
	}
}

//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/igi-pe/report-api/internal/config"
	"github.com/igi-pe/report-api/internal/domain/account"
	"github.com/igi-pe/report-api/internal/domain/backup"
	"github.com/igi-pe/report-api/internal/domain/ingest"
	"github.com/igi-pe/report-api/internal/domain/minireport"
	"github.com/igi-pe/report-api/internal/domain/report"
	"github.com/igi-pe/report-api/internal/infrastructure/auth"
	"github.com/igi-pe/report-api/internal/infrastructure/card"
	"github.com/igi-pe/report-api/internal/infrastructure/codegen"
	"github.com/igi-pe/report-api/internal/infrastructure/crontab"
	"github.com/igi-pe/report-api/internal/infrastructure/logger"
	"github.com/igi-pe/report-api/internal/infrastructure/pdfdoc"
	accountrepo "github.com/igi-pe/report-api/internal/infrastructure/repository/account"
	reportrepo "github.com/igi-pe/report-api/internal/infrastructure/repository/report"
	"github.com/igi-pe/report-api/internal/infrastructure/storage"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/handlers"
)

var reportSet = wire.NewSet(
	reportrepo.NewPostgresRepository,
	wire.Bind(new(report.Repository), new(*reportrepo.PostgresRepository)),
	provideUploads,
	card.LoadFonts,
	provideCardRenderer,
	report.NewService,
	ingest.NewService,
	backup.NewService,
)

var accountSet = wire.NewSet(
	accountrepo.NewPostgresRepository,
	wire.Bind(new(account.Repository), new(*accountrepo.PostgresRepository)),
	provideTokens,
	wire.Bind(new(account.TokenIssuer), new(*auth.Tokens)),
	account.NewService,
	auth.NewValidator,
)

var miniReportSet = wire.NewSet(
	pdfdoc.NewOpener,
	wire.Bind(new(minireport.DocumentOpener), new(*pdfdoc.Opener)),
	codegen.NewGenerator,
	wire.Bind(new(minireport.CodeGenerator), new(*codegen.Generator)),
	provideArtifacts,
	minireport.NewService,
	wire.Bind(new(crontab.Purger), new(*minireport.Service)),
	crontab.NewCrontab,
)

// BuildApplication assembles the report API with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		newDatabaseConfig,
		newGormDB,
		storage.New,
		reportSet,
		accountSet,
		miniReportSet,
		provideHandlerServices,
		handlers.NewProvider,
		healthChecks,
		httpserver.New,
		NewApplication,
	)
	return nil, nil
}

func provideUploads(stores *storage.Stores) report.FileStore {
	return stores.Uploads
}

func provideArtifacts(stores *storage.Stores) minireport.ArtifactStore {
	return stores.MiniReports
}

func provideCardRenderer(fonts *card.Fonts, cfg *config.Config) report.CardRenderer {
	return card.NewRenderer(fonts, cfg.CardQRBaseURL)
}

func provideTokens(cfg *config.Config) *auth.Tokens {
	return auth.NewTokens(cfg.JWTSecret, cfg.AccessTokenTTL)
}

func provideHandlerServices(
	accounts *account.Service,
	reports *report.Service,
	ingestService *ingest.Service,
	backupService *backup.Service,
	miniReports *minireport.Service,
	stores *storage.Stores,
) handlers.Services {
	return handlers.Services{
		Accounts:    accounts,
		Reports:     reports,
		Ingest:      ingestService,
		Backup:      backupService,
		MiniReports: miniReports,
		Uploads:     stores.Uploads,
		Artifacts:   stores.MiniReports,
	}
}

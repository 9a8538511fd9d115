package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

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
	"github.com/igi-pe/report-api/internal/infrastructure/database"
	"github.com/igi-pe/report-api/internal/infrastructure/logger"
	"github.com/igi-pe/report-api/internal/infrastructure/observability"
	"github.com/igi-pe/report-api/internal/infrastructure/pdfdoc"
	accountrepo "github.com/igi-pe/report-api/internal/infrastructure/repository/account"
	reportrepo "github.com/igi-pe/report-api/internal/infrastructure/repository/report"
	"github.com/igi-pe/report-api/internal/infrastructure/storage"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver"
	"github.com/igi-pe/report-api/internal/interfaces/httpserver/handlers"
)

// @title IGI Report API
// @version 1.0
// @description Gemological report management, spreadsheet ingestion and grading PDF extraction
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
	validator  *auth.Validator
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, ctab *crontab.Crontab, validator *auth.Validator, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		crontab:    ctab,
		validator:  validator,
		log:        log,
	}
}

// Start runs the HTTP server and the cleanup schedule until ctx is cancelled
// or either of them fails.
func (a *Application) Start(ctx context.Context) error {
	defer a.validator.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.httpServer.Run(gctx)
	})
	g.Go(func() error {
		return a.crontab.Run(gctx)
	})
	return g.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	db, err := newGormDB(ctx, newDatabaseConfig(cfg), log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize database")
	}

	stores, err := storage.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize storage")
	}

	fonts, err := card.LoadFonts()
	if err != nil {
		log.Fatal().Err(err).Msg("load card fonts")
	}

	reportRepository := reportrepo.NewPostgresRepository(db)
	reportService := report.NewService(cfg, reportRepository, stores.Uploads, card.NewRenderer(fonts, cfg.CardQRBaseURL), log)

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.AccessTokenTTL)
	accountService := account.NewService(accountrepo.NewPostgresRepository(db), tokens, log)

	ingestService := ingest.NewService(reportRepository, stores.Uploads, log)
	backupService := backup.NewService(reportRepository, stores.Uploads, log)
	miniReportService := minireport.NewService(cfg, pdfdoc.NewOpener(log), codegen.NewGenerator(), stores.MiniReports, log)

	validator, err := auth.NewValidator(ctx, cfg, tokens, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	provider := handlers.NewProvider(handlers.Services{
		Accounts:    accountService,
		Reports:     reportService,
		Ingest:      ingestService,
		Backup:      backupService,
		MiniReports: miniReportService,
		Uploads:     stores.Uploads,
		Artifacts:   stores.MiniReports,
	}, log)

	httpServer, err := httpserver.New(cfg, log, provider, validator, healthChecks(db, stores))
	if err != nil {
		log.Fatal().Err(err).Msg("initialize http server")
	}

	app := NewApplication(httpServer, crontab.NewCrontab(cfg, miniReportService, log), validator, log)
	if err := app.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func newDatabaseConfig(cfg *config.Config) database.Config {
	return database.Config{
		DSN:             cfg.DBPostgresqlWriteDSN,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
		LogLevel:        gormlogger.Warn,
	}
}

func newGormDB(ctx context.Context, cfg database.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db, log); err != nil {
		return nil, err
	}
	return db, nil
}

func healthChecks(db *gorm.DB, stores *storage.Stores) map[string]httpserver.HealthCheck {
	return map[string]httpserver.HealthCheck{
		"database": func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
		"uploads":      stores.Uploads.Health,
		"mini_reports": stores.MiniReports.Health,
	}
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}

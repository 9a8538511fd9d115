package crontab

import (
	"context"
	"time"

	"github.com/mileusna/crontab"
	"github.com/rs/zerolog"

	"github.com/igi-pe/report-api/internal/config"
	"github.com/igi-pe/report-api/internal/infrastructure/metrics"
	"github.com/igi-pe/report-api/internal/utils/platformerrors"
)

// CronJobTimeout bounds a single cleanup run.
const CronJobTimeout = 10 * time.Minute

// Purger removes generated mini-report folders older than a retention window.
type Purger interface {
	PurgeOlderThan(ctx context.Context, retention time.Duration) (int, error)
}

type Crontab struct {
	ctab     *crontab.Crontab
	cfg      *config.Config
	purger   Purger
	log      zerolog.Logger
	onPurged func(removed int)
}

func NewCrontab(cfg *config.Config, purger Purger, log zerolog.Logger) *Crontab {
	return &Crontab{
		ctab:   crontab.New(),
		cfg:    cfg,
		purger: purger,
		log:    log.With().Str("component", "crontab").Logger(),
	}
}

// Run schedules the mini-report cleanup and blocks until ctx is cancelled.
// It returns immediately when retention is disabled.
func (c *Crontab) Run(ctx context.Context) error {
	if c.cfg.MiniReportRetention <= 0 {
		c.log.Info().Msg("mini-report cleanup disabled")
		return nil
	}

	if err := c.ctab.AddJob(c.cfg.MiniReportCleanupSchedule, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), CronJobTimeout)
		defer cancel()
		c.purge(jobCtx)
	}); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerInfrastructure, err, "failed to add mini-report cleanup job")
	}
	c.log.Info().
		Str("schedule", c.cfg.MiniReportCleanupSchedule).
		Dur("retention", c.cfg.MiniReportRetention).
		Msg("mini-report cleanup scheduled")

	// execute once on server start
	c.purge(ctx)

	<-ctx.Done()
	c.ctab.Shutdown()
	return nil
}

func (c *Crontab) purge(ctx context.Context) {
	removed, err := c.purger.PurgeOlderThan(ctx, c.cfg.MiniReportRetention)
	metrics.RecordCleanup(metrics.Status(err), removed)
	if err != nil {
		c.log.Error().Err(err).Msg("mini-report cleanup failed")
		return
	}
	if removed > 0 {
		c.log.Info().Int("removed", removed).Msg("purged expired mini-reports")
	}
	if c.onPurged != nil {
		c.onPurged(removed)
	}
}

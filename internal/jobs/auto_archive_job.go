package jobs

import (
	"context"
	"log/slog"
	"time"

	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
)

type AutoArchiveHandler interface {
	Handle(ctx context.Context, cmd commands.AutoArchiveOrdersCommand) (int, error)
}

// AutoArchiveJob archives orders that stayed completed longer than the configured age.
type AutoArchiveJob struct {
	handler   AutoArchiveHandler
	interval  time.Duration
	olderThan time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewAutoArchiveJob(handler AutoArchiveHandler, interval, olderThan time.Duration, logger *slog.Logger) *AutoArchiveJob {
	logger = logger.With("component", "auto_archive_job")
	return &AutoArchiveJob{
		handler:   handler,
		interval:  interval,
		olderThan: olderThan,
		cron:      newCron(logger),
		logger:    logger,
	}
}

// RunOnce performs a single sweep and returns the number of archived orders.
func (j *AutoArchiveJob) RunOnce(ctx context.Context) (int, error) {
	timer := prometheus.NewTimer(metrics.SweepDuration.WithLabelValues("archive"))
	defer timer.ObserveDuration()

	cmd, err := commands.NewAutoArchiveOrdersCommand(j.olderThan)
	if err != nil {
		return 0, err
	}
	return j.handler.Handle(ctx, cmd)
}

func (j *AutoArchiveJob) Start() error {
	spec, err := everySpec(j.interval)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc(spec, func() {
		ctx := context.Background()
		archived, err := j.RunOnce(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Auto-archive sweep failed", "archived", archived, "error", err)
			return
		}
		if archived > 0 {
			j.logger.InfoContext(ctx, "Auto-archive sweep finished", "archived", archived)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Auto-archive job started", "every", j.interval, "older_than", j.olderThan)
	return nil
}

// Stop waits for a running sweep to finish.
func (j *AutoArchiveJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Auto-archive job stopped")
}

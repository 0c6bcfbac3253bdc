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

type PurgeHandler interface {
	Handle(ctx context.Context, cmd commands.PurgeOrdersCommand) (commands.PurgeResult, error)
}

// PurgeJob deletes long-archived orders together with their ledger rows, and stale
// ledger rows of any order.
type PurgeJob struct {
	handler                PurgeHandler
	interval               time.Duration
	archivedOlderThan      time.Duration
	notificationsOlderThan time.Duration
	cron                   *cron.Cron
	logger                 *slog.Logger
}

func NewPurgeJob(
	handler PurgeHandler,
	interval, archivedOlderThan, notificationsOlderThan time.Duration,
	logger *slog.Logger,
) *PurgeJob {
	logger = logger.With("component", "purge_job")
	return &PurgeJob{
		handler:                handler,
		interval:               interval,
		archivedOlderThan:      archivedOlderThan,
		notificationsOlderThan: notificationsOlderThan,
		cron:                   newCron(logger),
		logger:                 logger,
	}
}

func (j *PurgeJob) RunOnce(ctx context.Context) (commands.PurgeResult, error) {
	timer := prometheus.NewTimer(metrics.SweepDuration.WithLabelValues("purge"))
	defer timer.ObserveDuration()

	cmd, err := commands.NewPurgeOrdersCommand(j.archivedOlderThan, j.notificationsOlderThan)
	if err != nil {
		return commands.PurgeResult{}, err
	}
	return j.handler.Handle(ctx, cmd)
}

func (j *PurgeJob) Start() error {
	spec, err := everySpec(j.interval)
	if err != nil {
		return err
	}

	_, err = j.cron.AddFunc(spec, func() {
		ctx := context.Background()
		result, err := j.RunOnce(ctx)
		if err != nil {
			j.logger.ErrorContext(ctx, "Purge sweep failed",
				"orders", result.Orders, "notifications", result.Notifications, "error", err)
			return
		}
		j.logger.InfoContext(ctx, "Purge sweep finished",
			"orders", result.Orders, "notifications", result.Notifications)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Purge job started", "every", j.interval)
	return nil
}

func (j *PurgeJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Purge job stopped")
}

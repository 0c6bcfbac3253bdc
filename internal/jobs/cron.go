package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// cronLogger routes the scheduler's own messages, including recovered panics, to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}

func newCron(logger *slog.Logger) *cron.Cron {
	l := cronLogger{logger: logger}
	return cron.New(cron.WithLogger(l), cron.WithChain(cron.Recover(l)))
}

func everySpec(interval time.Duration) (string, error) {
	if interval <= 0 {
		return "", fmt.Errorf("job interval must be positive, got %s", interval)
	}
	return "@every " + interval.String(), nil
}

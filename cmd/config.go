package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"workorders/internal/adapters/out/postgres"
	"workorders/internal/core/domain/services"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string

	DBDriver string
	DBDsn    string

	TelegramToken string
	PublicURL     string

	ArchivePolicy services.ArchivePolicy

	NotifyTimeout     time.Duration
	NotifyParallelism int

	AutoArchiveEvery        time.Duration
	AutoArchiveAfter        time.Duration
	PurgeEvery              time.Duration
	PurgeArchivedAfter      time.Duration
	PurgeNotificationsAfter time.Duration
}

// LoadConfig reads the optional .env file and then the environment. Variables already
// set in the environment win over the file.
func LoadConfig(envFile string) (Config, bool, error) {
	fileLoaded := godotenv.Load(envFile) == nil

	var problems []error
	duration := func(key string, def time.Duration) time.Duration {
		raw := os.Getenv(key)
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			problems = append(problems, fmt.Errorf("%s: %q is not a positive duration", key, raw))
			return def
		}
		return d
	}

	policy, err := services.ParseArchivePolicy(os.Getenv("ARCHIVE_POLICY"))
	if err != nil {
		problems = append(problems, fmt.Errorf("ARCHIVE_POLICY: %w", err))
	}

	parallelism := 8
	if raw := os.Getenv("NOTIFY_PARALLELISM"); raw != "" {
		parallelism, err = strconv.Atoi(raw)
		if err != nil || parallelism <= 0 {
			problems = append(problems, fmt.Errorf("NOTIFY_PARALLELISM: %q is not a positive integer", raw))
			parallelism = 8
		}
	}

	config := Config{
		HTTPPort:                stringOr("HTTP_PORT", "8080"),
		DBDriver:                stringOr("DB_DRIVER", postgres.DriverPostgres),
		DBDsn:                   os.Getenv("DB_DSN"),
		TelegramToken:           os.Getenv("TELEGRAM_TOKEN"),
		PublicURL:               os.Getenv("PUBLIC_URL"),
		ArchivePolicy:           policy,
		NotifyTimeout:           duration("NOTIFY_TIMEOUT", 10*time.Second),
		NotifyParallelism:       parallelism,
		AutoArchiveEvery:        duration("AUTO_ARCHIVE_EVERY", 10*time.Minute),
		AutoArchiveAfter:        duration("AUTO_ARCHIVE_AFTER", 12*time.Hour),
		PurgeEvery:              duration("PURGE_EVERY", 24*time.Hour),
		PurgeArchivedAfter:      duration("PURGE_ARCHIVED_AFTER", 30*24*time.Hour),
		PurgeNotificationsAfter: duration("PURGE_NOTIFICATIONS_AFTER", 7*24*time.Hour),
	}

	if config.DBDsn == "" {
		problems = append(problems, errors.New("DB_DSN is required"))
	}
	if config.DBDriver != postgres.DriverPostgres && config.DBDriver != postgres.DriverSQLite {
		problems = append(problems, fmt.Errorf("DB_DRIVER: unknown driver %q", config.DBDriver))
	}

	return config, fileLoaded, errors.Join(problems...)
}

func stringOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

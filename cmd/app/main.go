package main

import (
	"log/slog"
	"os"

	"workorders/cmd"
	"workorders/internal/adapters/out/postgres"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

type rootOptions struct {
	envFile string
	verbose bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "app",
		Short:         "Work order coordination service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "optional dotenv file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newServeCommand(opts))
	root.AddCommand(newMigrateCommand(opts))
	root.AddCommand(newSweepCommand(opts))

	return root
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// bootstrap loads the configuration and opens the database.
func bootstrap(opts *rootOptions) (cmd.Config, *gorm.DB, *slog.Logger, error) {
	logger := newLogger(opts.verbose)

	config, fileLoaded, err := cmd.LoadConfig(opts.envFile)
	if !fileLoaded {
		logger.Warn("No env file loaded, using the environment only", "file", opts.envFile)
	}
	if err != nil {
		return cmd.Config{}, nil, nil, err
	}

	db, err := postgres.Open(config.DBDriver, config.DBDsn)
	if err != nil {
		return cmd.Config{}, nil, nil, err
	}

	return config, db, logger, nil
}

func closeDB(db *gorm.DB, logger *slog.Logger) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err = sqlDB.Close(); err != nil {
		logger.Warn("Closing database failed", "error", err)
	}
}

package main

import (
	"workorders/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			_, db, logger, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			if err = postgres.Migrate(db); err != nil {
				return err
			}
			logger.Info("Schema is up to date")
			return nil
		},
	}
}

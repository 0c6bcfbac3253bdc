package main

import (
	"fmt"

	"workorders/cmd"
	"workorders/internal/pkg/clock"

	"github.com/spf13/cobra"
)

func newSweepCommand(opts *rootOptions) *cobra.Command {
	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Run one housekeeping iteration and exit",
	}

	sweep.AddCommand(&cobra.Command{
		Use:   "archive",
		Short: "Archive orders completed longer ago than AUTO_ARCHIVE_AFTER",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, db, logger, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			root := cmd.NewCompositionRoot(config, db, nil, clock.System{}, logger)
			archived, err := root.CreateAutoArchiveJob().RunOnce(c.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.OutOrStdout(), "archived %d orders\n", archived)
			return err
		},
	})

	sweep.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete long-archived orders and stale notification records",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			config, db, logger, err := bootstrap(opts)
			if err != nil {
				return err
			}
			defer closeDB(db, logger)

			root := cmd.NewCompositionRoot(config, db, nil, clock.System{}, logger)
			result, err := root.CreatePurgeJob().RunOnce(c.Context())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(c.OutOrStdout(), "purged %d orders and %d notification records\n",
				result.Orders, result.Notifications)
			return err
		},
	})

	return sweep
}

package main

import (
	"exoprotrack/internal/adapters/out/postgres"

	"github.com/spf13/cobra"
)

func newMigrateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(c *cobra.Command, _ []string) error {
			db, err := ctx.openDB()
			if err != nil {
				return err
			}
			if err := postgres.Migrate(c.Context(), db); err != nil {
				return err
			}
			ctx.logger.InfoContext(c.Context(), "Schema is up to date")
			return nil
		},
	}
}

package main

import (
	"log/slog"
	"os"

	"exoprotrack/cmd"

	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// commandContext carries what every subcommand resolves before running.
type commandContext struct {
	envFile string
	cfg     cmd.Config
	logger  *slog.Logger
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "exoprotrack",
		Short:         "Lot workflow engine for exosome manufacturing",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			cfg, err := cmd.LoadConfig(ctx.envFile)
			if err != nil {
				return err
			}
			logger, err := cmd.NewLogger(cfg.LogLevel, os.Stdout)
			if err != nil {
				return err
			}
			ctx.cfg = cfg
			ctx.logger = logger
			return nil
		},
		RunE: func(c *cobra.Command, _ []string) error {
			return c.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&ctx.envFile, "env-file", ".env", "Optional dotenv file with settings")

	rootCmd.AddCommand(newServeCommand(ctx))
	rootCmd.AddCommand(newMigrateCommand(ctx))

	return rootCmd
}

func (ctx *commandContext) openDB() (*gorm.DB, error) {
	return gorm.Open(postgres.Open(ctx.cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
}

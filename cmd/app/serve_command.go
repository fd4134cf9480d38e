package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"exoprotrack/cmd"
	httpin "exoprotrack/internal/adapters/in/http"
	"exoprotrack/internal/adapters/out/postgres"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var migrate bool
	c := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the reservation expiry sweep",
		RunE: func(c *cobra.Command, _ []string) error {
			db, err := ctx.openDB()
			if err != nil {
				return err
			}
			if migrate {
				if err := postgres.Migrate(c.Context(), db); err != nil {
					return err
				}
			}

			app := cmd.NewCompositionRoot(ctx.cfg, db)
			handlers, err := app.HTTPHandlers()
			if err != nil {
				return err
			}

			jobManager := app.JobManager(ctx.logger)
			if err := jobManager.StartAll(); err != nil {
				return err
			}
			defer jobManager.StopAll()

			return startWebServer(c.Context(), handlers, ctx.logger, ctx.cfg.HTTPPort)
		},
	}
	c.Flags().BoolVar(&migrate, "migrate", false, "Apply schema migrations before serving")
	return c
}

func startWebServer(ctx context.Context, handlers httpin.Handlers, logger *slog.Logger, port string) error {
	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.WARN)

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("component", "http"),
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	if err := httpin.NewServer(handlers, logger).Register(e); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", port))
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.InfoContext(shutdownCtx, "Shutting down HTTP server")
		return e.Shutdown(shutdownCtx)
	}
}

package jobs

import (
	"context"
	"log/slog"

	"exoprotrack/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReleaseExpiredHandler is implemented by
// commands.ReleaseExpiredReservationsCommandHandler.
type ReleaseExpiredHandler interface {
	Handle(ctx context.Context, cmd commands.ReleaseExpiredReservationsCommand) (int, error)
}

// ReservationExpiryJob cancels active reservations whose raw lot has expired.
type ReservationExpiryJob struct {
	handler  ReleaseExpiredHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewReservationExpiryJob creates the sweep job. schedule is a six-field cron
// expression with a leading seconds field.
func NewReservationExpiryJob(handler ReleaseExpiredHandler, schedule string, logger *slog.Logger) *ReservationExpiryJob {
	return &ReservationExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "reservation_expiry_job"),
	}
}

// Start registers the sweep and starts the scheduler.
func (j *ReservationExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Reservation expiry job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single sweep and returns how many reservations were released.
func (j *ReservationExpiryJob) RunOnce(ctx context.Context) int {
	released, err := j.handler.Handle(ctx, commands.NewReleaseExpiredReservationsCommand())
	if err != nil {
		j.logger.ErrorContext(ctx, "Reservation expiry sweep failed", "error", err, "released", released)
		return released
	}
	if released > 0 {
		j.logger.InfoContext(ctx, "Released expired reservations", "released", released)
	}
	return released
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *ReservationExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reservation expiry job stopped")
}

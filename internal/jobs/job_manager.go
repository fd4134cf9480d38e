package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	reservationExpiryJob *ReservationExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(releaseExpired ReleaseExpiredHandler, sweepSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		reservationExpiryJob: NewReservationExpiryJob(releaseExpired, sweepSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reservationExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start reservation expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reservationExpiryJob.Stop()
}

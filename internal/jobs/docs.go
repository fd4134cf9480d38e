// Package jobs provides scheduled background tasks for the lot workflow.
//
// Jobs are built on github.com/robfig/cron/v3 and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(releaseExpiredHandler, cfg.SweepSchedule, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// ReservationExpiryJob cancels Active reservations held against raw lots
// whose expiry date has passed. The schedule uses six fields with a leading
// seconds field, for example "0 */5 * * * *".
//
// Overlapping runs are skipped. Sweep errors are logged and the job keeps
// its schedule.
package jobs

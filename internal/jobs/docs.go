// Package jobs provides scheduled background tasks for the water delivery
// service, built on github.com/robfig/cron/v3 with second-level schedules.
//
// # Available Jobs
//
// NotificationDispatchJob runs every five seconds and hands pending outbox
// events to DispatchNotificationsCommandHandler, which turns them into rider
// and admin notifications.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(dispatchHandler, cfg.DispatchBatchSize, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Job failures are logged and never stop the schedule. Overlapping runs are
// skipped, so a slow notifier delays dispatch instead of piling up work.
package jobs

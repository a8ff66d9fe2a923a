package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	notificationDispatchJob *NotificationDispatchJob
}

func NewJobManager(
	dispatchHandler DispatchHandler,
	dispatchBatchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		notificationDispatchJob: NewNotificationDispatchJob(dispatchHandler, dispatchBatchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.notificationDispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start notification dispatch job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running ones.
func (jm *JobManager) StopAll() {
	jm.notificationDispatchJob.Stop()
}

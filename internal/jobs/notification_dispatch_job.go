package jobs

import (
	"context"
	"log/slog"
	"time"

	"waterdelivery/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DispatchSchedule runs the dispatcher every five seconds.
const DispatchSchedule = "*/5 * * * * *"

// DispatchHandler runs one outbox dispatch batch.
type DispatchHandler interface {
	Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) error
}

// NotificationDispatchJob drains the outbox on a schedule. A run that is
// still going when the next tick fires causes that tick to be skipped.
type NotificationDispatchJob struct {
	handler   DispatchHandler
	batchSize int
	timeout   time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewNotificationDispatchJob(handler DispatchHandler, batchSize int, logger *slog.Logger) *NotificationDispatchJob {
	return &NotificationDispatchJob{
		handler:   handler,
		batchSize: batchSize,
		timeout:   time.Minute,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "notification_dispatch_job"),
	}
}

func (j *NotificationDispatchJob) Start() error {
	if _, err := j.cron.AddFunc(DispatchSchedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Notification dispatch job started", "schedule", DispatchSchedule, "batch_size", j.batchSize)
	return nil
}

// Stop waits for a running dispatch to finish.
func (j *NotificationDispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Notification dispatch job stopped")
}

func (j *NotificationDispatchJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	cmd, err := commands.NewDispatchNotificationsCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Invalid dispatch batch size", "error", err)
		return
	}

	if err = j.handler.Handle(ctx, cmd); err != nil {
		j.logger.ErrorContext(ctx, "Notification dispatch job failed", "error", err)
	}
}

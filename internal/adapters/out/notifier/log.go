package notifier

import (
	"context"
	"log/slog"

	"waterdelivery/internal/core/domain/model/notification"
	"waterdelivery/internal/core/ports"
)

var _ ports.Notifier = &LogNotifier{}

// LogNotifier writes notifications to the log. Used when no broker or push
// gateway is configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log-notifier")}
}

func (n *LogNotifier) NotifyMany(ctx context.Context, notifications []*notification.Notification) error {
	for _, m := range newMessages(notifications) {
		n.logger.InfoContext(ctx, "notification",
			"id", m.ID, "to", m.To, "type", m.Type, "title", m.Title, "body", m.Body)
	}
	return nil
}

package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/notification"
)

type NotificationRepository interface {
	AddBatch(ctx context.Context, notifications []*notification.Notification) error
}

package ports

import (
	"context"

	"waterdelivery/internal/core/domain/model/notification"
)

// Notifier hands notifications to a delivery channel such as a message
// broker or a push service.
type Notifier interface {
	NotifyMany(ctx context.Context, notifications []*notification.Notification) error
}

// Deduplicator lets exactly one dispatcher replica claim a key.
type Deduplicator interface {
	// Claim returns true for the first caller of key and false afterwards.
	Claim(ctx context.Context, key string) (bool, error)

	// Release drops a claim so key can be claimed again.
	Release(ctx context.Context, key string) error
}

package ports

import (
	"context"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
)

// OutboxRepository stores events in the same transaction as the state change
// that raised them, for the dispatcher to deliver later.
type OutboxRepository interface {
	Add(ctx context.Context, events ...event.Event) error

	// ListPending returns up to limit undelivered events, oldest first.
	ListPending(ctx context.Context, limit int) ([]event.Event, error)

	MarkSent(ctx context.Context, id kernel.UUID, at time.Time) error

	MarkFailed(ctx context.Context, id kernel.UUID, at time.Time, reason string) error
}

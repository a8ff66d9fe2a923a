package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/notification"
	"waterdelivery/internal/core/domain/model/user"
	"waterdelivery/internal/core/domain/services"
	"waterdelivery/internal/core/ports"
)

// DedupeKeyPrefix namespaces outbox event claims in the deduplicator.
const DedupeKeyPrefix = "waterdelivery:outbox:"

// DispatchNotificationsCommandHandler turns pending outbox events into
// notifications and hands them to the notifier.
//
// Delivery is at most once: an event is claimed in the deduplicator before
// anything is sent, and an event whose send fails is marked FAILED rather
// than retried. A claim is released when the event could not be recorded
// and nothing reached the notifier, so the event is tried again later. Failures are logged and never reach the order operations
// that raised the events.
type DispatchNotificationsCommandHandler struct {
	uowFactory DispatchUoWFactory
	notifier   ports.Notifier
	dedup      ports.Deduplicator
	composer   services.NotificationComposer
	clock      func() time.Time
	logger     *slog.Logger
}

func NewDispatchNotificationsCommandHandler(
	uowFactory DispatchUoWFactory,
	notifier ports.Notifier,
	dedup ports.Deduplicator,
	logger *slog.Logger,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		dedup:      dedup,
		composer:   services.NewNotificationComposer(),
		clock:      time.Now,
		logger:     logger.With("component", "notification-dispatcher"),
	}
}

// Handle processes one batch. Only failing to read the outbox is returned;
// per-event failures are logged.
func (h DispatchNotificationsCommandHandler) Handle(ctx context.Context, cmd DispatchNotificationsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	pending, err := h.listPending(ctx, cmd.BatchSize())
	if err != nil {
		return err
	}

	for _, e := range pending {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := h.dispatch(ctx, e); err != nil {
			h.logger.ErrorContext(ctx, "failed to dispatch event",
				"event_id", e.ID.String(), "type", e.Type.String(), "error", err)
		}
	}

	return nil
}

func (h DispatchNotificationsCommandHandler) listPending(ctx context.Context, limit int) ([]event.Event, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	pending, err := uow.OutboxRepository().ListPending(ctx, limit)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return pending, nil
}

func (h DispatchNotificationsCommandHandler) dispatch(ctx context.Context, e event.Event) error {
	key := DedupeKeyPrefix + e.ID.String()
	claimed, err := h.dedup.Claim(ctx, key)
	if err != nil {
		return err
	}
	if !claimed {
		h.logger.DebugContext(ctx, "event already claimed", "event_id", e.ID.String())
		return nil
	}

	now := h.clock().UTC()

	notifications, deliveryErr, err := h.compose(ctx, e, now)
	if err != nil {
		return h.release(ctx, key, err)
	}

	handedOff := false
	if deliveryErr == nil && len(notifications) > 0 {
		if deliveryErr = h.notifier.NotifyMany(ctx, notifications); deliveryErr == nil {
			handedOff = true
		}
	}
	if deliveryErr != nil {
		h.logger.WarnContext(ctx, "notification delivery failed",
			"event_id", e.ID.String(), "type", e.Type.String(), "error", deliveryErr)
		notifications = nil
	}

	err = h.record(ctx, e, notifications, deliveryErr, now)
	if err == nil {
		if handedOff {
			h.logger.InfoContext(ctx, "notifications sent",
				"event_id", e.ID.String(), "type", e.Type.String(), "recipients", len(notifications))
		}
		return nil
	}

	// Once the notifier has accepted the batch the claim must stay, so the
	// outcome is recorded again rather than released.
	if !handedOff {
		return h.release(ctx, key, err)
	}
	if retryErr := h.record(ctx, e, notifications, nil, now); retryErr != nil {
		return errors.Join(err, retryErr)
	}
	return nil
}

// compose returns a delivery error for events that cannot be rendered, which
// mark the event FAILED, and a plain error for store failures.
func (h DispatchNotificationsCommandHandler) compose(
	ctx context.Context,
	e event.Event,
	now time.Time,
) (notifications []*notification.Notification, deliveryErr error, err error) {
	var admins []*user.User
	if h.composer.AudienceOf(e) == services.AudienceAdmins {
		uow := h.uowFactory.Create()
		if err = uow.Begin(ctx); err != nil {
			return nil, nil, err
		}
		admins, err = uow.UserRepository().ListActiveAdmins(ctx)
		_ = uow.Rollback(ctx)
		if err != nil {
			return nil, nil, err
		}
	}

	notifications, deliveryErr = h.composer.Compose(e, admins, now)
	return notifications, deliveryErr, nil
}

// record stores the notifications and the event outcome in one unit of work.
func (h DispatchNotificationsCommandHandler) record(
	ctx context.Context,
	e event.Event,
	notifications []*notification.Notification,
	deliveryErr error,
	now time.Time,
) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if len(notifications) > 0 {
		if err := uow.NotificationRepository().AddBatch(ctx, notifications); err != nil {
			return err
		}
	}

	var err error
	if deliveryErr != nil {
		err = uow.OutboxRepository().MarkFailed(ctx, e.ID, now, deliveryErr.Error())
	} else {
		err = uow.OutboxRepository().MarkSent(ctx, e.ID, now)
	}
	if err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// release drops the claim on key so a later run picks the event up again,
// and returns cause.
func (h DispatchNotificationsCommandHandler) release(ctx context.Context, key string, cause error) error {
	if err := h.dedup.Release(ctx, key); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

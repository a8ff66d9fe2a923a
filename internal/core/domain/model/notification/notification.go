package notification

import (
	"errors"
	"maps"
	"strings"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/pkg/errs"
	"waterdelivery/internal/pkg/guard"
)

var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification constructor")

// Notification is a message addressed to one user about one event.
type Notification struct {
	id        kernel.UUID
	eventID   kernel.UUID
	userID    kernel.UUID
	eventType event.Type
	title     string
	message   string
	data      map[string]string
	createdAt time.Time

	guard guard.ConstructorGuard
}

func NewNotification(
	eventID, userID kernel.UUID,
	eventType event.Type,
	title, message string,
	data map[string]string,
	createdAt time.Time,
) (*Notification, error) {
	return RestoreNotification(kernel.NewUUID(), eventID, userID, eventType, title, message, data, createdAt)
}

// RestoreNotification rebuilds a notification from persistence.
func RestoreNotification(
	id, eventID, userID kernel.UUID,
	eventType event.Type,
	title, message string,
	data map[string]string,
	createdAt time.Time,
) (*Notification, error) {
	if err := errors.Join(
		id.Validate(),
		eventID.Validate(),
		userID.Validate(),
		eventType.Validate(),
	); err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}

	return &Notification{
		id:        id,
		eventID:   eventID,
		userID:    userID,
		eventType: eventType,
		title:     title,
		message:   message,
		data:      maps.Clone(data),
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

func (n *Notification) ID() kernel.UUID      { return n.id }
func (n *Notification) EventID() kernel.UUID { return n.eventID }
func (n *Notification) UserID() kernel.UUID  { return n.userID }
func (n *Notification) Type() event.Type     { return n.eventType }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// Data returns a copy of the structured payload sent along with the message.
func (n *Notification) Data() map[string]string {
	return maps.Clone(n.data)
}

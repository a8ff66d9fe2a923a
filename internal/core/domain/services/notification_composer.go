package services

import (
	"errors"
	"fmt"
	"time"

	"waterdelivery/internal/core/domain/model/event"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/notification"
	"waterdelivery/internal/core/domain/model/user"
	"waterdelivery/internal/pkg/errs"
)

// Audience is the group of users an event is addressed to.
type Audience int

const (
	AudienceNone Audience = iota
	AudienceRider
	AudienceAdmins
)

// NotificationComposer turns order events into notifications: it decides who
// hears about an event and renders the fixed message templates.
//
// Routing rules:
//   - OrderAssigned goes to the new rider
//   - OrderReassigned goes to the previous rider
//   - OrderDelivered goes to every active admin
//   - OrderCancelled by an admin goes to the assigned rider, if any;
//     by a rider it goes to every active admin
//
// Example usage:
//
//	composer := NewNotificationComposer()
//	var admins []*user.User
//	if composer.AudienceOf(e) == AudienceAdmins {
//	    admins, _ = users.ListActiveAdmins(ctx)
//	}
//	notifications, err := composer.Compose(e, admins, time.Now())
type NotificationComposer struct{}

func NewNotificationComposer() NotificationComposer {
	return NotificationComposer{}
}

// AudienceOf reports which group e must reach.
func (c NotificationComposer) AudienceOf(e event.Event) Audience {
	switch e.Type {
	case event.OrderAssigned, event.OrderReassigned:
		return AudienceRider
	case event.OrderDelivered:
		return AudienceAdmins
	case event.OrderCancelled:
		if e.ActorRole == user.Rider {
			return AudienceAdmins
		}
		if e.RiderID != nil {
			return AudienceRider
		}
		return AudienceNone
	default:
		return AudienceNone
	}
}

// Compose builds one notification per recipient. admins is only consulted for
// events addressed to AudienceAdmins; inactive users in it are skipped.
func (c NotificationComposer) Compose(e event.Event, admins []*user.User, at time.Time) ([]*notification.Notification, error) {
	if err := e.Type.Validate(); err != nil {
		return nil, err
	}

	recipients, err := c.recipients(e, admins)
	if err != nil {
		return nil, err
	}
	if len(recipients) == 0 {
		return nil, nil
	}

	title, message := c.render(e)
	data := map[string]string{
		"eventId":    e.ID.String(),
		"orderId":    e.OrderID.String(),
		"customerId": e.CustomerID.String(),
		"type":       e.Type.String(),
	}

	result := make([]*notification.Notification, 0, len(recipients))
	var joined error
	for _, userID := range recipients {
		n, err := notification.NewNotification(e.ID, userID, e.Type, title, message, data, at)
		if err != nil {
			joined = errors.Join(joined, err)
			continue
		}
		result = append(result, n)
	}
	if joined != nil {
		return nil, joined
	}
	return result, nil
}

func (c NotificationComposer) recipients(e event.Event, admins []*user.User) ([]kernel.UUID, error) {
	switch c.AudienceOf(e) {
	case AudienceRider:
		if e.RiderID == nil {
			return nil, errs.NewValueIsRequiredError("riderId")
		}
		return []kernel.UUID{*e.RiderID}, nil
	case AudienceAdmins:
		ids := make([]kernel.UUID, 0, len(admins))
		for _, a := range admins {
			if a == nil || !a.IsActive() || a.Role() != user.Admin {
				continue
			}
			ids = append(ids, a.ID())
		}
		return ids, nil
	default:
		return nil, nil
	}
}

func (c NotificationComposer) render(e event.Event) (string, string) {
	switch e.Type {
	case event.OrderAssigned:
		return "New delivery assigned", fmt.Sprintf(
			"Deliver %s to %s at %s. Amount due: %s.",
			bottles(e.Bottles), e.CustomerName, orDash(e.CustomerAddress), e.TotalAmount,
		)
	case event.OrderReassigned:
		return "Delivery reassigned", fmt.Sprintf(
			"The order of %s for %s has been given to another rider.",
			bottles(e.Bottles), e.CustomerName,
		)
	case event.OrderDelivered:
		return "Order delivered", fmt.Sprintf(
			"%s delivered to %s. Paid %s of %s. Receivable %s, payable %s.",
			bottles(e.Bottles), e.CustomerName, e.PaidAmount, e.TotalAmount, e.Receivable, e.Payable,
		)
	case event.OrderCancelled:
		title := "Delivery cancelled"
		if e.ActorRole == user.Rider {
			title = "Order cancelled by rider"
		}
		return title, fmt.Sprintf(
			"The order of %s for %s at %s was cancelled. Reason: %s.",
			bottles(e.Bottles), e.CustomerName, orDash(e.CustomerAddress), orDash(e.Reason),
		)
	default:
		return e.Type.String(), ""
	}
}

func bottles(n int) string {
	if n == 1 {
		return "1 bottle"
	}
	return fmt.Sprintf("%d bottles", n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

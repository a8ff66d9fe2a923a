// Package notifier delivers composed notifications to riders and admins over
// RabbitMQ, an HTTP push gateway, or the application log.
package notifier

import (
	"time"

	"waterdelivery/internal/core/domain/model/notification"
)

// Message is the wire form of a notification, shared by every transport.
type Message struct {
	ID        string            `json:"id"`
	EventID   string            `json:"eventId"`
	To        string            `json:"to"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Body      string            `json:"body"`
	Data      map[string]string `json:"data,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

func NewMessage(n *notification.Notification) Message {
	return Message{
		ID:        n.ID().String(),
		EventID:   n.EventID().String(),
		To:        n.UserID().String(),
		Type:      n.Type().String(),
		Title:     n.Title(),
		Body:      n.Message(),
		Data:      n.Data(),
		CreatedAt: n.CreatedAt(),
	}
}

func newMessages(notifications []*notification.Notification) []Message {
	messages := make([]Message, 0, len(notifications))
	for _, n := range notifications {
		messages = append(messages, NewMessage(n))
	}
	return messages
}

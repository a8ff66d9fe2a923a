package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"waterdelivery/internal/core/domain/model/notification"
	"waterdelivery/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultQueue is the queue notifications are published to.
const DefaultQueue = "notifications"

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var _ ports.Notifier = &AMQPNotifier{}

// AMQPNotifier publishes one persistent JSON message per notification to a
// durable queue on the default exchange.
type AMQPNotifier struct {
	ch    Channel
	queue string
}

// NewAMQPNotifier declares the queue and returns a publisher bound to it.
func NewAMQPNotifier(ch Channel, queue string) (*AMQPNotifier, error) {
	if ch == nil {
		return nil, fmt.Errorf("amqp channel is nil")
	}
	if queue == "" {
		queue = DefaultQueue
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}

	return &AMQPNotifier{ch: ch, queue: queue}, nil
}

func (n *AMQPNotifier) NotifyMany(ctx context.Context, notifications []*notification.Notification) error {
	for _, m := range newMessages(notifications) {
		body, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("encode notification %s: %w", m.ID, err)
		}

		err = n.ch.PublishWithContext(ctx, "", n.queue, false, false, amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    m.ID,
			Type:         m.Type,
			Timestamp:    m.CreatedAt,
			Body:         body,
		})
		if err != nil {
			return fmt.Errorf("publish notification %s: %w", m.ID, err)
		}
	}
	return nil
}

// DialAMQP opens a connection and a channel. Close the connection to release both.
func DialAMQP(url string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("open amqp channel: %w", err)
	}
	return conn, ch, nil
}

package notifier

import (
	"context"
	"fmt"
	"time"

	"waterdelivery/internal/core/domain/model/notification"
	"waterdelivery/internal/core/ports"

	"github.com/go-resty/resty/v2"
)

const pushSendPath = "/push/send"

var _ ports.Notifier = &PushNotifier{}

// PushNotifier posts notifications in batches to an Expo-style push gateway.
type PushNotifier struct {
	client *resty.Client
}

// NewPushNotifier builds a client for baseURL. An empty token sends no
// Authorization header.
func NewPushNotifier(baseURL, token string, timeout time.Duration) *PushNotifier {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	if token != "" {
		client.SetAuthToken(token)
	}
	return &PushNotifier{client: client}
}

func (n *PushNotifier) NotifyMany(ctx context.Context, notifications []*notification.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(newMessages(notifications)).
		Post(pushSendPath)
	if err != nil {
		return fmt.Errorf("push request: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("push request status: %d", resp.StatusCode())
	}
	return nil
}

package notification

import (
	"context"
	"fmt"

	"barberqueue/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// FCMSender is satisfied by *messaging.Client.
type FCMSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type PushNotifier struct {
	client FCMSender
	logger *zap.Logger
}

func NewPushNotifier(client FCMSender, logger *zap.Logger) *PushNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PushNotifier{client: client, logger: logger}
}

func (p *PushNotifier) Send(ctx context.Context, n models.Notification) error {
	if n.DeviceToken == "" || p.client == nil {
		return nil
	}

	msg := &messaging.Message{
		Token: n.DeviceToken,
		Notification: &messaging.Notification{
			Title: n.Subject,
			Body:  n.Text,
		},
		Data: n.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "high_priority",
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Headers: map[string]string{
				"apns-priority":  "10",
				"apns-push-type": "alert",
			},
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{Sound: "default"},
			},
		},
	}

	id, err := p.client.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	p.logger.Debug("Push sent", zap.String("messageId", id))
	return nil
}

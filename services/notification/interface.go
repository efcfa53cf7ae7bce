package notification

import (
	"context"
	"errors"
	"fmt"

	"barberqueue/models"
	"barberqueue/monitoring"

	"go.uber.org/zap"
)

// Notifier delivers a notification over one channel. Implementations return
// nil when the notification has no target for their channel.
type Notifier interface {
	Send(ctx context.Context, n models.Notification) error
}

// NotificationService sends "you're next" messages over every configured channel.
type NotificationService interface {
	NotifyNext(ctx context.Context, head models.HeadOfQueue) error
	Deliver(ctx context.Context, n models.Notification) error
}

// DefaultNotificationService fans a notification out to mail and push.
type DefaultNotificationService struct {
	channels map[string]Notifier
	order    []string
	logger   *zap.Logger
}

func NewDefaultNotificationService(logger *zap.Logger) *DefaultNotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultNotificationService{
		channels: make(map[string]Notifier),
		logger:   logger,
	}
}

// With registers a channel; a nil notifier is ignored.
func (s *DefaultNotificationService) With(name string, n Notifier) *DefaultNotificationService {
	if n == nil {
		return s
	}
	if _, ok := s.channels[name]; !ok {
		s.order = append(s.order, name)
	}
	s.channels[name] = n
	return s
}

func (s *DefaultNotificationService) NotifyNext(ctx context.Context, head models.HeadOfQueue) error {
	return s.Deliver(ctx, ComposeNext(head))
}

// Deliver tries every channel and reports all failures together.
func (s *DefaultNotificationService) Deliver(ctx context.Context, n models.Notification) error {
	if n.To == "" && n.DeviceToken == "" {
		s.logger.Warn("No contact channel for notification", zap.String("subject", n.Subject))
		return nil
	}

	var errs []error
	for _, name := range s.order {
		if err := s.channels[name].Send(ctx, n); err != nil {
			monitoring.TrackNotification(name, "error")
			s.logger.Error("Notification failed", zap.String("channel", name), zap.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		monitoring.TrackNotification(name, "ok")
	}
	return errors.Join(errs...)
}

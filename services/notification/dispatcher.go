package notification

import (
	"context"
	"time"

	"barberqueue/models"
	"barberqueue/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const dispatchTimeout = 30 * time.Second

// Dispatcher hands a head-of-queue notification off without blocking the
// caller. Delivery outcome is only logged.
type Dispatcher interface {
	Dispatch(head models.HeadOfQueue)
}

// InlineDispatcher sends from a background goroutine in this process.
type InlineDispatcher struct {
	svc    NotificationService
	logger *zap.Logger
}

func NewInlineDispatcher(svc NotificationService, logger *zap.Logger) *InlineDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InlineDispatcher{svc: svc, logger: logger}
}

func (d *InlineDispatcher) Dispatch(head models.HeadOfQueue) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
		defer cancel()
		if err := d.svc.NotifyNext(ctx, head); err != nil {
			d.logger.Error("Failed to notify next customer",
				zap.String("providerId", head.Provider.ID),
				zap.String("customerId", head.Entry.CustomerID),
				zap.Error(err))
		}
	}()
}

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// TaskDispatcher composes the message and enqueues it for the notification
// worker, so delivery survives an API restart.
type TaskDispatcher struct {
	client Enqueuer
	logger *zap.Logger
	now    func() time.Time
}

func NewTaskDispatcher(client Enqueuer, logger *zap.Logger) *TaskDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskDispatcher{client: client, logger: logger, now: time.Now}
}

func (d *TaskDispatcher) Dispatch(head models.HeadOfQueue) {
	go func() {
		if err := d.Enqueue(head); err != nil {
			d.logger.Error("Failed to enqueue notification",
				zap.String("providerId", head.Provider.ID),
				zap.String("customerId", head.Entry.CustomerID),
				zap.Error(err))
		}
	}()
}

// Enqueue composes the message and enqueues it, blocking until Redis answers.
func (d *TaskDispatcher) Enqueue(head models.HeadOfQueue) error {
	payload := models.NotifyPayload{
		ProviderID:   head.Provider.ID,
		CustomerID:   head.Entry.CustomerID,
		Notification: ComposeNext(head),
		QueuedAt:     d.now(),
	}
	task, opts, err := tasks.NewNotifyNextTask(payload)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	info, err := d.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		return err
	}
	d.logger.Debug("Notification enqueued", zap.String("taskId", info.ID), zap.String("queue", info.Queue))
	return nil
}

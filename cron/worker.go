package cron

import (
	"context"
	"fmt"
	"time"

	"barberqueue/services/notification"
	"barberqueue/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NotificationWorker drains the notification queue filled by TaskDispatcher.
type NotificationWorker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	redis  *redis.Client
	logger *zap.Logger
	cancel context.CancelFunc
}

func NewNotificationWorker(redisOpts asynq.RedisClientOpt, notifSvc notification.NotificationService, logger *zap.Logger) *NotificationWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				tasks.NotifyQueue: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeNotifyNext, handleNotifyTask(notifSvc, logger))

	return &NotificationWorker{
		srv: srv,
		mux: mux,
		redis: redis.NewClient(&redis.Options{
			Addr:     redisOpts.Addr,
			Password: redisOpts.Password,
			DB:       redisOpts.DB,
		}),
		logger: logger,
	}
}

// Start runs the worker in the background, retrying startup with backoff.
func (w *NotificationWorker) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel

	go w.monitorRedisConnection(ctx)

	go func() {
		w.logger.Info("Starting notification worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := w.srv.Start(w.mux)
			if err == nil {
				return
			}
			w.logger.Error("Failed to start notification worker",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				w.logger.Error("Notification worker gave up starting")
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Duration(attempts*2) * time.Second):
			}
		}
	}()
}

func (w *NotificationWorker) Shutdown() {
	if w.cancel != nil {
		w.cancel()
	}
	w.srv.Shutdown()
	_ = w.redis.Close()
}

func handleNotifyTask(notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		p, err := tasks.ParseNotifyNextPayload(task)
		if err != nil {
			logger.Error("Invalid notification task", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		logger.Info("Delivering queue notification",
			zap.String("providerId", p.ProviderID),
			zap.String("customerId", p.CustomerID),
			zap.Duration("queuedFor", time.Since(p.QueuedAt)))

		if err := notifSvc.Deliver(ctx, p.Notification); err != nil {
			logger.Error("Failed to deliver queue notification",
				zap.String("customerId", p.CustomerID), zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func (w *NotificationWorker) monitorRedisConnection(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.redis.Ping(ctx).Err(); err != nil && ctx.Err() == nil {
				w.logger.Warn("Notification worker lost Redis connection", zap.Error(err))
			}
		}
	}
}

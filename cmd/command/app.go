package command

import (
	"context"
	"fmt"
	"strings"

	"barberqueue/config"
	"barberqueue/database"
	providerRepo "barberqueue/database/repository/provider"
	"barberqueue/services/notification"
	"barberqueue/services/queue"
	"barberqueue/services/realtime"
	"barberqueue/utils"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// app holds the process-wide collaborators shared by every command.
type app struct {
	logger     *zap.Logger
	repo       providerRepo.ProviderRepository
	queue      *queue.DefaultQueueService
	hub        *realtime.Hub
	notifier   *notification.DefaultNotificationService
	dispatcher notification.Dispatcher
	taskClient *asynq.Client
	redis      []*redis.Client
	closers    []func(context.Context) error
}

func (a *app) usesAsynq() bool {
	return strings.EqualFold(config.AppConfig.NotifyDispatch, "asynq")
}

func (a *app) taskRedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskDB,
	}
}

// newApp wires storage, realtime publishers, notification channels and the
// queue coordinator, then loads persisted queues into memory.
func newApp(ctx context.Context, logger *zap.Logger) (*app, error) {
	cfg := config.AppConfig
	a := &app{logger: logger}

	repo, err := a.openStore()
	if err != nil {
		return nil, err
	}
	a.repo = repo

	publisher, err := a.buildPublishers(cfg)
	if err != nil {
		a.close(ctx)
		return nil, err
	}

	a.queue = queue.NewDefaultQueueService(repo, publisher, logger,
		queue.WithDefaultServiceMinutes(cfg.DefaultServiceMinutes))
	if err := a.queue.Load(ctx); err != nil {
		a.close(ctx)
		return nil, fmt.Errorf("failed to load queues: %w", err)
	}

	a.notifier = a.buildNotifier(ctx, cfg)
	if a.usesAsynq() {
		a.taskClient = asynq.NewClient(a.taskRedisOpt())
		a.closers = append(a.closers, func(context.Context) error { return a.taskClient.Close() })
		a.dispatcher = notification.NewTaskDispatcher(a.taskClient, logger)
	} else {
		a.dispatcher = notification.NewInlineDispatcher(a.notifier, logger)
	}
	return a, nil
}

func (a *app) openStore() (providerRepo.ProviderRepository, error) {
	switch strings.ToLower(config.AppConfig.StoreDriver) {
	case "memory":
		a.logger.Warn("Using in-memory provider store; queues are lost on restart")
		return providerRepo.NewMemoryProviderRepo(), nil
	case "mongo", "":
		if err := database.InitDB(); err != nil {
			return nil, err
		}
		a.closers = append(a.closers, database.CloseDB)
		return providerRepo.NewMongoProviderRepo(database.Database())
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", config.AppConfig.StoreDriver)
	}
}

func (a *app) buildPublishers(cfg config.Config) (realtime.Publisher, error) {
	fanout := realtime.NewFanout()
	for _, name := range cfg.PublisherNames() {
		switch name {
		case "ws":
			a.hub = realtime.NewHub(a.logger)
			fanout.Add(name, a.hub)
		case "redis":
			client, err := utils.NewRedisClient(cfg.RedisPubSubDB)
			if err != nil {
				return nil, err
			}
			a.redis = append(a.redis, client)
			a.closers = append(a.closers, func(context.Context) error { return client.Close() })
			fanout.Add(name, realtime.NewRedisPublisher(client))
		case "pubnub":
			if cfg.PubNubPublishKey == "" {
				return nil, fmt.Errorf("PUBLISHERS includes pubnub but PUBNUB_PUBLISH_KEY is empty")
			}
			fanout.Add(name, realtime.NewPubNubPublisher(cfg.PubNubPublishKey, cfg.PubNubSubscribeKey, cfg.PubNubUserID))
		default:
			return nil, fmt.Errorf("unknown publisher %q", name)
		}
		a.logger.Info("Realtime publisher enabled", zap.String("publisher", name))
	}
	return fanout, nil
}

func (a *app) buildNotifier(ctx context.Context, cfg config.Config) *notification.DefaultNotificationService {
	svc := notification.NewDefaultNotificationService(a.logger).
		With("email", notification.NewMailNotifier(notification.MailConfig{
			Host:     cfg.MailHost,
			Port:     cfg.MailPort,
			User:     cfg.MailUser,
			Pass:     cfg.MailPass,
			FromName: cfg.MailFromName,
		}, a.logger))

	if cfg.FirebaseCredentialsFile == "" {
		return svc
	}
	client, err := utils.NewFCMClient(ctx, cfg.FirebaseCredentialsFile)
	if err != nil {
		a.logger.Error("Push notifications disabled", zap.Error(err))
		return svc
	}
	return svc.With("push", notification.NewPushNotifier(client, a.logger))
}

func (a *app) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.logger.Warn("Failed to release resource", zap.Error(err))
		}
	}
	a.closers = nil
}

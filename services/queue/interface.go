package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	providerRepo "barberqueue/database/repository/provider"
	"barberqueue/models"
	"barberqueue/monitoring"
	"barberqueue/services/realtime"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// QueueService is the only writer of provider queues.
type QueueService interface {
	JoinQueue(ctx context.Context, req models.JoinRequest) (*models.JoinResult, error)
	LeaveQueue(ctx context.Context, providerID, customerID string) (*models.LeaveResult, error)
	ServeNext(ctx context.Context, providerID string) (*models.ServeResult, error)
	ReplaceQueue(ctx context.Context, providerID string, entries []models.QueueEntry) (*models.ReplaceResult, error)
	ClearQueue(ctx context.Context, providerID string) (*models.ReplaceResult, error)
	GetCustomerStatus(ctx context.Context, customerID string) (*models.CustomerStatus, error)
	GetQueue(ctx context.Context, providerID string) (*models.QueueView, error)
}

// Directory covers provider records that live next to the queue and must be
// written under the same per-provider lock.
type Directory interface {
	RegisterProvider(ctx context.Context, provider *models.Provider) error
	UpdateServices(ctx context.Context, providerID string, services []models.Service) (*models.Provider, error)
	GetProvider(ctx context.Context, providerID string) (*models.Provider, error)
}

// HeadNotifier is what the sweeper needs from the coordinator.
type HeadNotifier interface {
	ProviderIDs() []string
	NotifyHead(ctx context.Context, providerID string, dispatch func(models.HeadOfQueue)) (HeadOutcome, error)
}

// DefaultQueueService implements QueueService, Directory and HeadNotifier on
// top of an in-memory store written through to a ProviderRepository.
type DefaultQueueService struct {
	Repo           providerRepo.ProviderRepository
	Publisher      realtime.Publisher
	Logger         *zap.Logger
	DefaultMinutes float64

	store   *queueStore
	locks   *providerLocks
	members *membershipIndex
	now     func() time.Time
	newID   func() string
}

type Option func(*DefaultQueueService)

// WithDefaultServiceMinutes overrides the duration used for providers that list no services.
func WithDefaultServiceMinutes(minutes int) Option {
	return func(s *DefaultQueueService) {
		if minutes > 0 {
			s.DefaultMinutes = float64(minutes)
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *DefaultQueueService) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *DefaultQueueService) { s.newID = newID }
}

func NewDefaultQueueService(repo providerRepo.ProviderRepository, publisher realtime.Publisher, logger *zap.Logger, opts ...Option) *DefaultQueueService {
	if publisher == nil {
		publisher = realtime.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DefaultQueueService{
		Repo:           repo,
		Publisher:      publisher,
		Logger:         logger,
		DefaultMinutes: DefaultServiceMinutes,
		store:          newQueueStore(repo),
		locks:          newProviderLocks(),
		members:        newMembershipIndex(),
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.store.onLoad = s.adopt
	return s
}

// adopt registers the customers of a provider loaded after startup, e.g. one
// written to the repository by another tool.
func (s *DefaultQueueService) adopt(p *models.Provider) {
	monitoring.SetQueueLength(p.ID, len(p.Queue))
	for _, e := range p.Queue {
		if holder, ok := s.members.claim(e.CustomerID, p.ID); !ok {
			s.Logger.Warn("Loaded customer is already queued elsewhere",
				zap.String("providerId", p.ID),
				zap.String("customerId", e.CustomerID),
				zap.String("heldBy", holder))
		}
	}
}

// Load hydrates the store and the membership index from the repository.
// Call it once before serving traffic.
func (s *DefaultQueueService) Load(ctx context.Context) error {
	providers, err := s.Repo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load providers: %w", err)
	}
	for i := range providers {
		s.store.put(providers[i].Clone())
		monitoring.SetQueueLength(providers[i].ID, len(providers[i].Queue))
	}
	if dups := s.members.rebuild(providers); len(dups) > 0 {
		s.Logger.Warn("Customers found in more than one persisted queue",
			zap.Strings("customerIds", dups))
	}
	s.Logger.Info("Queue store loaded", zap.Int("providers", len(providers)))
	return nil
}

// ProviderIDs lists every provider currently held by the store.
func (s *DefaultQueueService) ProviderIDs() []string {
	return s.store.ids()
}

// publish sends the post-mutation snapshot; the caller holds the provider lock.
func (s *DefaultQueueService) publish(ctx context.Context, p *models.Provider, event models.QueueEvent) {
	event.ProviderID = p.ID
	event.Queue = p.Clone().Queue
	event.QueueLength = len(p.Queue)
	event.At = s.now()

	monitoring.SetQueueLength(p.ID, len(p.Queue))
	if err := s.Publisher.Publish(ctx, p.ID, models.EventQueueUpdated, event); err != nil {
		s.Logger.Warn("Failed to publish queue update",
			zap.String("providerId", p.ID), zap.Error(err))
	}
}

func track(operation string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		var qe *Error
		if errors.As(err, &qe) {
			status = string(qe.Kind)
		}
	}
	monitoring.TrackQueueOperation(operation, status)
}

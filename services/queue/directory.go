package queue

import (
	"context"
	"errors"
	"strings"

	providerRepo "barberqueue/database/repository/provider"
	"barberqueue/models"

	"go.uber.org/zap"
)

// RegisterProvider stores a new provider and makes it visible to the queue.
func (s *DefaultQueueService) RegisterProvider(ctx context.Context, provider *models.Provider) (err error) {
	defer func() { track("register", err) }()

	if provider == nil || strings.TrimSpace(provider.ID) == "" {
		return validation("provider id is required")
	}

	unlock := s.locks.lock(provider.ID)
	defer unlock()

	owned := provider.Clone()
	if err := s.Repo.Create(ctx, owned); err != nil {
		if errors.Is(err, providerRepo.ErrDuplicateContact) {
			return &Error{Kind: KindConflict, Message: "a provider with this contact already exists", Err: err}
		}
		return transient("failed to create provider", err)
	}
	s.store.put(owned)
	s.Logger.Info("Provider registered", zap.String("providerId", owned.ID), zap.String("name", owned.Name))
	return nil
}

// UpdateServices replaces the provider's service list. Queued entries keep
// their service names even if they are no longer listed.
func (s *DefaultQueueService) UpdateServices(ctx context.Context, providerID string, services []models.Service) (updated *models.Provider, err error) {
	defer func() { track("update_services", err) }()

	unlock := s.locks.lock(providerID)
	defer unlock()

	p, err := s.store.get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	prev, prevUpdated := p.Services, p.UpdatedAt
	p.Services = append([]models.Service(nil), services...)
	p.UpdatedAt = s.now()
	if err := s.store.persist(ctx, p); err != nil {
		p.Services, p.UpdatedAt = prev, prevUpdated
		return nil, transient("failed to save services", err)
	}
	return p.Clone(), nil
}

func (s *DefaultQueueService) GetProvider(ctx context.Context, providerID string) (*models.Provider, error) {
	unlock := s.locks.lock(providerID)
	defer unlock()

	p, err := s.store.get(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

package queue

import (
	"context"
	"strings"

	"barberqueue/models"
)

// GetCustomerStatus reports where, if anywhere, the customer is queued.
func (s *DefaultQueueService) GetCustomerStatus(ctx context.Context, customerID string) (*models.CustomerStatus, error) {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, validation("customerId is required")
	}

	providerID, ok := s.members.holder(customerID)
	if !ok {
		return &models.CustomerStatus{InQueue: false}, nil
	}

	unlock := s.locks.lock(providerID)
	defer unlock()

	p, err := s.store.get(ctx, providerID)
	if err != nil {
		return nil, err
	}
	for i, e := range p.Queue {
		if e.CustomerID != customerID {
			continue
		}
		position := i
		joinedAt := e.JoinedAt
		summary := p.Summary()
		return &models.CustomerStatus{
			InQueue:  true,
			Provider: &summary,
			Position: &position,
			Service:  e.Service,
			JoinedAt: &joinedAt,
		}, nil
	}
	// Served or removed between the index read and taking the lock.
	return &models.CustomerStatus{InQueue: false}, nil
}

// GetQueue returns a snapshot of the provider and its ordered queue.
func (s *DefaultQueueService) GetQueue(ctx context.Context, providerID string) (*models.QueueView, error) {
	unlock := s.locks.lock(providerID)
	defer unlock()

	p, err := s.store.get(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return &models.QueueView{
		Provider: p.Summary(),
		Queue:    p.Clone().Queue,
	}, nil
}

package queue

import (
	"context"
	"strings"

	"barberqueue/models"

	"go.uber.org/zap"
)

// JoinQueue appends the customer to the tail of the provider's queue.
func (s *DefaultQueueService) JoinQueue(ctx context.Context, req models.JoinRequest) (result *models.JoinResult, err error) {
	defer func() { track("join", err) }()

	req.ProviderID = strings.TrimSpace(req.ProviderID)
	req.CustomerID = strings.TrimSpace(req.CustomerID)
	req.CustomerContact = strings.TrimSpace(req.CustomerContact)
	req.Service = strings.TrimSpace(req.Service)
	if req.ProviderID == "" {
		return nil, validation("providerId is required")
	}
	if req.CustomerID == "" {
		return nil, validation("customerId is required")
	}
	if req.Service == "" {
		return nil, validation("service is required")
	}

	unlock := s.locks.lock(req.ProviderID)
	defer unlock()

	p, err := s.store.get(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	for i, e := range p.Queue {
		if e.CustomerID == req.CustomerID ||
			(req.CustomerContact != "" && strings.EqualFold(e.CustomerContact, req.CustomerContact)) {
			return nil, alreadyQueuedHere(i)
		}
	}

	if holder, ok := s.members.claim(req.CustomerID, p.ID); !ok {
		return nil, queuedElsewhere(holder, s.store.name(holder))
	}

	now := s.now()
	entry := models.QueueEntry{
		ID:              s.newID(),
		CustomerID:      req.CustomerID,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerContact: req.CustomerContact,
		DeviceToken:     strings.TrimSpace(req.DeviceToken),
		Service:         req.Service,
		JoinedAt:        now,
		Notified:        false,
	}

	position := len(p.Queue)
	prevUpdated := p.UpdatedAt
	p.Queue = append(p.Queue, entry)
	p.UpdatedAt = now

	if err := s.store.persist(ctx, p); err != nil {
		p.Queue = p.Queue[:position]
		p.UpdatedAt = prevUpdated
		s.members.release(req.CustomerID, p.ID)
		s.Logger.Error("Failed to persist join",
			zap.String("providerId", p.ID), zap.String("customerId", req.CustomerID), zap.Error(err))
		return nil, transient("failed to save queue", err)
	}

	eta := EstimateWait(position, ResolveDuration(p.Services, entry.Service, s.DefaultMinutes))
	joined := entry.Summary(position, eta)
	s.publish(ctx, p, models.QueueEvent{Joined: &joined})

	s.Logger.Info("Customer joined queue",
		zap.String("providerId", p.ID),
		zap.String("customerId", entry.CustomerID),
		zap.Int("position", position))

	return &models.JoinResult{
		Position:    position,
		EtaMinutes:  eta,
		QueueLength: len(p.Queue),
		Entry:       entry,
	}, nil
}

package queue

import (
	"context"
	"strings"

	"barberqueue/models"

	"go.uber.org/zap"
)

// LeaveQueue removes the customer from the provider's queue.
func (s *DefaultQueueService) LeaveQueue(ctx context.Context, providerID, customerID string) (result *models.LeaveResult, err error) {
	defer func() { track("leave", err) }()

	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return nil, validation("customerId is required")
	}

	unlock := s.locks.lock(providerID)
	defer unlock()

	p, err := s.store.get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	kept := make([]models.QueueEntry, 0, len(p.Queue))
	for _, e := range p.Queue {
		if e.CustomerID != customerID {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(p.Queue) {
		return nil, notFound("customer %s is not in this queue", customerID)
	}

	prev, prevUpdated := p.Queue, p.UpdatedAt
	p.Queue = kept
	p.UpdatedAt = s.now()
	if err := s.store.persist(ctx, p); err != nil {
		p.Queue, p.UpdatedAt = prev, prevUpdated
		s.Logger.Error("Failed to persist leave",
			zap.String("providerId", providerID), zap.String("customerId", customerID), zap.Error(err))
		return nil, transient("failed to save queue", err)
	}
	s.members.release(customerID, p.ID)

	s.publish(ctx, p, models.QueueEvent{CustomerLeft: customerID})
	return &models.LeaveResult{QueueLength: len(p.Queue)}, nil
}

// ServeNext pops the head of the queue. An empty queue is not an error: the
// result carries a nil Served and nothing is saved or published.
func (s *DefaultQueueService) ServeNext(ctx context.Context, providerID string) (result *models.ServeResult, err error) {
	defer func() { track("serve", err) }()

	unlock := s.locks.lock(providerID)
	defer unlock()

	p, err := s.store.get(ctx, providerID)
	if err != nil {
		return nil, err
	}
	if len(p.Queue) == 0 {
		return &models.ServeResult{Served: nil, QueueLength: 0}, nil
	}

	served := p.Queue[0]
	prev, prevUpdated := p.Queue, p.UpdatedAt
	p.Queue = append(make([]models.QueueEntry, 0, len(prev)-1), prev[1:]...)
	p.UpdatedAt = s.now()
	if err := s.store.persist(ctx, p); err != nil {
		p.Queue, p.UpdatedAt = prev, prevUpdated
		s.Logger.Error("Failed to persist serve", zap.String("providerId", providerID), zap.Error(err))
		return nil, transient("failed to save queue", err)
	}
	s.members.release(served.CustomerID, p.ID)

	s.publish(ctx, p, models.QueueEvent{CustomerServed: &served})
	s.Logger.Info("Customer served",
		zap.String("providerId", p.ID), zap.String("customerId", served.CustomerID))
	return &models.ServeResult{Served: &served, QueueLength: len(p.Queue)}, nil
}

// ReplaceQueue overwrites the queue with entries in the given order. Entries
// for customers already in the queue keep their id, join time and notified
// flag; new entries get fresh ones. A customer queued at another provider is a
// conflict and leaves the queue untouched.
func (s *DefaultQueueService) ReplaceQueue(ctx context.Context, providerID string, entries []models.QueueEntry) (result *models.ReplaceResult, err error) {
	defer func() { track("replace", err) }()

	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		id := strings.TrimSpace(e.CustomerID)
		if id == "" {
			return nil, validation("entry %d has no customerId", i)
		}
		if _, dup := seen[id]; dup {
			return nil, validation("customer %s appears more than once", id)
		}
		seen[id] = struct{}{}
	}

	unlock := s.locks.lock(providerID)
	defer unlock()

	p, err := s.store.get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	existing := make(map[string]models.QueueEntry, len(p.Queue))
	for _, e := range p.Queue {
		existing[e.CustomerID] = e
	}

	now := s.now()
	var fresh []string
	releaseFresh := func() {
		for _, id := range fresh {
			s.members.release(id, p.ID)
		}
	}

	next := make([]models.QueueEntry, 0, len(entries))
	for _, e := range entries {
		e.CustomerID = strings.TrimSpace(e.CustomerID)
		holder, ok := s.members.claim(e.CustomerID, p.ID)
		if !ok {
			releaseFresh()
			return nil, queuedElsewhere(holder, s.store.name(holder))
		}
		if holder == "" {
			fresh = append(fresh, e.CustomerID)
		}

		if old, ok := existing[e.CustomerID]; ok {
			e.ID = old.ID
			e.JoinedAt = old.JoinedAt
			e.Notified = old.Notified
			if e.DeviceToken == "" {
				e.DeviceToken = old.DeviceToken
			}
		} else {
			if e.ID == "" {
				e.ID = s.newID()
			}
			if e.JoinedAt.IsZero() {
				e.JoinedAt = now
			}
			e.Notified = false
		}
		next = append(next, e)
	}

	prev, prevUpdated := p.Queue, p.UpdatedAt
	p.Queue = next
	p.UpdatedAt = now
	if err := s.store.persist(ctx, p); err != nil {
		p.Queue, p.UpdatedAt = prev, prevUpdated
		releaseFresh()
		s.Logger.Error("Failed to persist queue replacement", zap.String("providerId", providerID), zap.Error(err))
		return nil, transient("failed to save queue", err)
	}

	for _, e := range prev {
		if _, kept := seen[e.CustomerID]; !kept {
			s.members.release(e.CustomerID, p.ID)
		}
	}

	s.publish(ctx, p, models.QueueEvent{Cleared: len(p.Queue) == 0})
	return &models.ReplaceResult{QueueLength: len(p.Queue)}, nil
}

// ClearQueue empties the queue.
func (s *DefaultQueueService) ClearQueue(ctx context.Context, providerID string) (*models.ReplaceResult, error) {
	return s.ReplaceQueue(ctx, providerID, nil)
}

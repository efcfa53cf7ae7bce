package queue

import (
	"context"

	"barberqueue/models"

	"go.uber.org/zap"
)

// HeadOutcome says what NotifyHead did for one provider.
type HeadOutcome string

const (
	HeadIdle     HeadOutcome = "idle"     // empty queue or head already notified
	HeadSkipped  HeadOutcome = "skipped"  // provider has no usable location
	HeadNotified HeadOutcome = "notified" // dispatch was called and the flag set
)

// NotifyHead hands the head entry to dispatch if it has not been notified yet
// and marks it notified. dispatch runs under the provider lock and must not
// block. A failed save is returned as a Transient error but the flag stays set
// in memory, so the customer is not messaged twice.
func (s *DefaultQueueService) NotifyHead(ctx context.Context, providerID string, dispatch func(models.HeadOfQueue)) (HeadOutcome, error) {
	unlock := s.locks.lock(providerID)
	defer unlock()

	p, err := s.store.get(ctx, providerID)
	if err != nil {
		return HeadIdle, err
	}
	if len(p.Queue) == 0 {
		return HeadIdle, nil
	}
	if !p.Location.Valid() {
		return HeadSkipped, nil
	}

	head := &p.Queue[0]
	if head.Notified {
		return HeadIdle, nil
	}

	dispatch(models.HeadOfQueue{Provider: p.Summary(), Entry: *head})
	head.Notified = true
	p.UpdatedAt = s.now()

	var saveErr error
	if err := s.store.persist(ctx, p); err != nil {
		s.Logger.Error("Failed to persist notified flag",
			zap.String("providerId", p.ID), zap.String("customerId", head.CustomerID), zap.Error(err))
		saveErr = transient("failed to save notified flag", err)
	}

	s.publish(ctx, p, models.QueueEvent{CustomerNotified: head.CustomerID})
	return HeadNotified, saveErr
}

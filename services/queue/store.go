package queue

import (
	"context"
	"errors"
	"sort"
	"sync"

	providerRepo "barberqueue/database/repository/provider"
	"barberqueue/models"
)

// providerLocks hands out one mutex per provider id. Every read or write of a
// provider's queue happens while holding that provider's mutex. An entry lives
// only while someone holds or waits for it, so ids that never resolve to a
// provider leave nothing behind.
type providerLocks struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newProviderLocks() *providerLocks {
	return &providerLocks{locks: make(map[string]*lockEntry)}
}

func (l *providerLocks) lock(providerID string) func() {
	l.mu.Lock()
	e, ok := l.locks[providerID]
	if !ok {
		e = &lockEntry{}
		l.locks[providerID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, providerID)
		}
		l.mu.Unlock()
	}
}

func (l *providerLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// queueStore owns the authoritative in-memory copy of each provider and writes
// it through to the repository.
type queueStore struct {
	repo providerRepo.ProviderRepository
	// onLoad sees every provider fetched lazily from the repository.
	onLoad func(*models.Provider)

	mu        sync.RWMutex
	providers map[string]*models.Provider
}

func newQueueStore(repo providerRepo.ProviderRepository) *queueStore {
	return &queueStore{
		repo:      repo,
		providers: make(map[string]*models.Provider),
	}
}

// get returns the owned record; the caller must hold the provider lock.
// Providers missing from memory are fetched from the repository once.
func (s *queueStore) get(ctx context.Context, providerID string) (*models.Provider, error) {
	s.mu.RLock()
	p, ok := s.providers[providerID]
	s.mu.RUnlock()
	if ok {
		return p, nil
	}

	loaded, err := s.repo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, notFound("provider %s not found", providerID)
		}
		return nil, transient("failed to load provider", err)
	}
	s.put(loaded)
	if s.onLoad != nil {
		s.onLoad(loaded)
	}
	return loaded, nil
}

func (s *queueStore) put(p *models.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.providers[p.ID] = p
}

// name reads a provider's display name without taking its queue lock; names
// are set once at registration.
func (s *queueStore) name(providerID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.providers[providerID]; ok {
		return p.Name
	}
	return providerID
}

func (s *queueStore) ids() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.providers))
	for id := range s.providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *queueStore) persist(ctx context.Context, p *models.Provider) error {
	return s.repo.Save(ctx, p.Clone())
}

package queue

import (
	"sync"

	"barberqueue/models"
)

// membershipIndex maps customerId -> providerId for every queued customer.
// claim is the single point where cross-provider exclusivity is decided.
type membershipIndex struct {
	mu      sync.Mutex
	holders map[string]string
}

func newMembershipIndex() *membershipIndex {
	return &membershipIndex{holders: make(map[string]string)}
}

// claim records providerID as the holder of customerID. It returns the
// previous holder ("" if none) and false when another provider holds it.
func (m *membershipIndex) claim(customerID, providerID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	prev, held := m.holders[customerID]
	if held && prev != providerID {
		return prev, false
	}
	m.holders[customerID] = providerID
	return prev, true
}

// release drops the claim only if providerID still holds it.
func (m *membershipIndex) release(customerID, providerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.holders[customerID] == providerID {
		delete(m.holders, customerID)
	}
}

func (m *membershipIndex) holder(customerID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id, ok := m.holders[customerID]
	return id, ok
}

// rebuild replaces the index from persisted queues. Customers found in more
// than one queue keep the first provider and are returned as duplicates.
func (m *membershipIndex) rebuild(providers []models.Provider) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.holders = make(map[string]string)
	var duplicates []string
	for _, p := range providers {
		for _, e := range p.Queue {
			if prev, ok := m.holders[e.CustomerID]; ok && prev != p.ID {
				duplicates = append(duplicates, e.CustomerID)
				continue
			}
			m.holders[e.CustomerID] = p.ID
		}
	}
	return duplicates
}

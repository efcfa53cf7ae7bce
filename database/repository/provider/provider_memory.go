package providerRepo

import (
	"context"
	"math"
	"sort"
	"sync"

	"barberqueue/models"
)

// MemoryProviderRepo keeps providers in process memory. It backs local
// development (STORE_DRIVER=memory) and the package tests.
type MemoryProviderRepo struct {
	mu        sync.RWMutex
	providers map[string]*models.Provider
}

func NewMemoryProviderRepo() *MemoryProviderRepo {
	return &MemoryProviderRepo{providers: make(map[string]*models.Provider)}
}

func (r *MemoryProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[id]
	if !ok {
		return nil, ErrProviderNotFound
	}
	return p.Clone(), nil
}

func (r *MemoryProviderRepo) GetByContact(_ context.Context, contact string) (*models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.providers {
		if p.Contact == contact {
			return p.Clone(), nil
		}
	}
	return nil, ErrProviderNotFound
}

// GetAll returns copies ordered by creation time, then id.
func (r *MemoryProviderRepo) GetAll(_ context.Context) ([]models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Provider, 0, len(r.providers))
	for _, p := range r.providers {
		out = append(out, *p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryProviderRepo) Create(_ context.Context, provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.providers {
		if p.ID == provider.ID || p.Contact == provider.Contact {
			return ErrDuplicateContact
		}
	}
	r.providers[provider.ID] = provider.Clone()
	return nil
}

func (r *MemoryProviderRepo) Save(_ context.Context, provider *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.providers[provider.ID]; !ok {
		return ErrProviderNotFound
	}
	r.providers[provider.ID] = provider.Clone()
	return nil
}

func (r *MemoryProviderRepo) Nearby(_ context.Context, criteria NearbyCriteria) ([]models.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Provider
	for _, p := range r.providers {
		if !p.Location.Valid() {
			continue
		}
		lng, lat := p.Location.Coordinates[0], p.Location.Coordinates[1]
		if haversineMeters(criteria.Lat, criteria.Lng, lat, lng) <= criteria.RadiusMeters {
			out = append(out, *p.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	toRad := func(d float64) float64 { return d * math.Pi / 180 }
	dLat := toRad(lat2 - lat1)
	dLng := toRad(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}

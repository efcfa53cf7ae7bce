package providerRepo

import (
	"context"
	"errors"

	"barberqueue/models"
)

var (
	// ErrProviderNotFound is returned when no provider matches the lookup.
	ErrProviderNotFound = errors.New("provider not found")
	// ErrDuplicateContact is returned by Create when the contact is already registered.
	ErrDuplicateContact = errors.New("provider contact already registered")
)

// NearbyCriteria selects providers within RadiusMeters of a point.
type NearbyCriteria struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
}

// ProviderRepository defines methods for provider data access.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetAll retrieves all providers.
	GetAll(ctx context.Context) ([]models.Provider, error)
	// GetByContact retrieves a provider by its contact string.
	GetByContact(ctx context.Context, contact string) (*models.Provider, error)
	// Create inserts a new provider record.
	Create(ctx context.Context, provider *models.Provider) error
	// Save replaces the stored provider document, queue included.
	Save(ctx context.Context, provider *models.Provider) error
	// Nearby returns providers located inside the criteria radius.
	Nearby(ctx context.Context, criteria NearbyCriteria) ([]models.Provider, error)
}

package provider

import (
	"context"
	"fmt"

	providerRepo "barberqueue/database/repository/provider"
	"barberqueue/models"
	"barberqueue/services/queue"

	"go.uber.org/zap"
)

// DefaultNearbyRadius is used when a nearby search gives no radius, in metres.
const DefaultNearbyRadius = 5000.0

type ProviderService interface {
	RegisterProvider(ctx context.Context, reg models.ProviderRegistration) (*models.Provider, error)
	UpdateServices(ctx context.Context, providerID string, services []models.Service) (*models.Provider, error)
	GetProviderByID(ctx context.Context, id string) (*models.Provider, error)
	GetNearbyProviders(ctx context.Context, lat, lng, radius float64) ([]models.Provider, error)
}

// DefaultProviderService is the production implementation. Writes go through
// the queue directory so the coordinator's copy stays authoritative; nearby
// search reads the repository directly.
type DefaultProviderService struct {
	Repo      providerRepo.ProviderRepository
	Directory queue.Directory
	Logger    *zap.Logger
}

func NewDefaultProviderService(repo providerRepo.ProviderRepository, directory queue.Directory, logger *zap.Logger) (*DefaultProviderService, error) {
	if repo == nil || directory == nil {
		return nil, fmt.Errorf("provider service initialization error: repository or directory is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultProviderService{Repo: repo, Directory: directory, Logger: logger}, nil
}

package provider

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	providerRepo "barberqueue/database/repository/provider"
	"barberqueue/models"
	"barberqueue/services/queue"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func invalid(format string, args ...any) error {
	return &queue.Error{Kind: queue.KindValidation, Message: fmt.Sprintf(format, args...)}
}

func validateServices(services []models.Service) error {
	seen := make(map[string]bool, len(services))
	for i, svc := range services {
		name := strings.TrimSpace(svc.Name)
		if name == "" {
			return invalid("service %d has no name", i)
		}
		if seen[name] {
			return invalid("service %q is listed twice", name)
		}
		seen[name] = true
		if svc.Duration < 0 || svc.Price < 0 {
			return invalid("service %q has a negative price or duration", name)
		}
	}
	return nil
}

func validCoordinates(lat, lng float64) bool {
	return !math.IsNaN(lat) && !math.IsNaN(lng) && lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// RegisterProvider creates a salon with an empty queue. A contact that is
// already registered is a conflict.
func (s *DefaultProviderService) RegisterProvider(ctx context.Context, reg models.ProviderRegistration) (*models.Provider, error) {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Address = strings.TrimSpace(reg.Address)
	reg.Contact = strings.TrimSpace(reg.Contact)

	if reg.Name == "" || reg.Address == "" || reg.Contact == "" {
		return nil, invalid("name, address and contact are required")
	}
	if !validCoordinates(reg.Lat, reg.Lng) {
		return nil, invalid("lat and lng must be valid coordinates")
	}
	if err := validateServices(reg.Services); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &models.Provider{
		ID:        uuid.NewString(),
		OwnerID:   reg.OwnerID,
		Name:      reg.Name,
		Address:   reg.Address,
		Contact:   reg.Contact,
		Location:  models.NewGeoPoint(reg.Lat, reg.Lng),
		Services:  append([]models.Service(nil), reg.Services...),
		Queue:     []models.QueueEntry{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Directory.RegisterProvider(ctx, p); err != nil {
		s.Logger.Warn("Provider registration failed", zap.String("contact", reg.Contact), zap.Error(err))
		return nil, err
	}
	return p.Clone(), nil
}

func (s *DefaultProviderService) UpdateServices(ctx context.Context, providerID string, services []models.Service) (*models.Provider, error) {
	if err := validateServices(services); err != nil {
		return nil, err
	}
	return s.Directory.UpdateServices(ctx, providerID, services)
}

func (s *DefaultProviderService) GetProviderByID(ctx context.Context, id string) (*models.Provider, error) {
	return s.Directory.GetProvider(ctx, id)
}

// GetNearbyProviders returns providers within radius metres of lat/lng.
func (s *DefaultProviderService) GetNearbyProviders(ctx context.Context, lat, lng, radius float64) ([]models.Provider, error) {
	if !validCoordinates(lat, lng) {
		return nil, invalid("lat and lng must be valid coordinates")
	}
	if radius <= 0 {
		radius = DefaultNearbyRadius
	}
	providers, err := s.Repo.Nearby(ctx, providerRepo.NearbyCriteria{Lat: lat, Lng: lng, RadiusMeters: radius})
	if err != nil {
		return nil, &queue.Error{Kind: queue.KindTransient, Message: "nearby search failed", Err: err}
	}
	if providers == nil {
		providers = []models.Provider{}
	}
	return providers, nil
}

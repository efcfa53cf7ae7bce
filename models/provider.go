package models

import (
	"time"
)

// GeoPoint represents a GeoJSON Point.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`               // "Point" when built here
	Coordinates []float64 `bson:"coordinates" json:"coordinates"` // [longitude, latitude]
}

// Valid reports whether the location carries a type and a coordinate pair.
// The type name itself is not checked. A nil point is invalid.
func (g *GeoPoint) Valid() bool {
	return g != nil && g.Type != "" && len(g.Coordinates) == 2
}

// NewGeoPoint builds a GeoJSON point from latitude and longitude.
func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: "Point", Coordinates: []float64{lng, lat}}
}

// Service is one entry of a provider's price list.
type Service struct {
	Name     string  `bson:"name" json:"name"`
	Price    float64 `bson:"price" json:"price"`
	Duration int     `bson:"duration" json:"duration"` // minutes
}

// Provider is a salon together with its walk-in queue.
type Provider struct {
	ID        string       `bson:"id" json:"id"`
	OwnerID   string       `bson:"ownerId" json:"ownerId,omitempty"`
	Name      string       `bson:"name" json:"name"`
	Address   string       `bson:"address" json:"address"`
	Contact   string       `bson:"contact" json:"contact"`
	Location  *GeoPoint    `bson:"location,omitempty" json:"location,omitempty"`
	Services  []Service    `bson:"services" json:"services"`
	Queue     []QueueEntry `bson:"queue" json:"queue"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// Clone returns a deep copy so callers never share slices with the queue store.
func (p *Provider) Clone() *Provider {
	if p == nil {
		return nil
	}
	cp := *p
	if p.Location != nil {
		loc := *p.Location
		loc.Coordinates = append([]float64(nil), p.Location.Coordinates...)
		cp.Location = &loc
	}
	cp.Services = make([]Service, len(p.Services))
	copy(cp.Services, p.Services)
	cp.Queue = make([]QueueEntry, len(p.Queue))
	copy(cp.Queue, p.Queue)
	return &cp
}

// Summary returns the public fields shown alongside queue information.
func (p *Provider) Summary() ProviderSummary {
	return ProviderSummary{
		ID:          p.ID,
		Name:        p.Name,
		Address:     p.Address,
		Contact:     p.Contact,
		QueueLength: len(p.Queue),
	}
}

// ProviderSummary is the trimmed provider view returned with status lookups.
type ProviderSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Contact     string `json:"contact"`
	QueueLength int    `json:"queueLength"`
}

// ProviderRegistration is the payload accepted when a salon signs up.
type ProviderRegistration struct {
	OwnerID  string    `json:"ownerId"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Contact  string    `json:"contact"`
	Lat      float64   `json:"lat"`
	Lng      float64   `json:"lng"`
	Services []Service `json:"services"`
}

package queue

import (
	"math"

	"barberqueue/models"
)

// DefaultServiceMinutes is used when a provider lists no services.
const DefaultServiceMinutes = 15

// AverageDuration is the mean of the listed service durations, or fallback
// when the provider lists none.
func AverageDuration(services []models.Service, fallback float64) float64 {
	if len(services) == 0 {
		return fallback
	}
	total := 0
	for _, svc := range services {
		total += svc.Duration
	}
	return float64(total) / float64(len(services))
}

// ResolveDuration returns the duration of the named service, falling back to
// the provider average when the name is not listed or has no duration.
func ResolveDuration(services []models.Service, name string, fallback float64) float64 {
	for _, svc := range services {
		if svc.Name == name && svc.Duration > 0 {
			return float64(svc.Duration)
		}
	}
	return AverageDuration(services, fallback)
}

// EstimateWait is position * perCustomer, rounded to whole minutes.
//
// Known inaccuracy: perCustomer is the joining customer's own service
// duration, so the services of the people ahead in line are ignored.
// Clients depend on this exact figure; keep it.
func EstimateWait(position int, perCustomer float64) int {
	if position <= 0 || perCustomer <= 0 {
		return 0
	}
	return int(math.Round(float64(position) * perCustomer))
}

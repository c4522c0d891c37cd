package ports

import (
	"context"

	"loop-route-service/internal/domain"
)

// Per-leg road distances for an ordered stop sequence.
type RouteLegs struct {
	LegMeters []float64
}

// TotalMeters is the route's travel distance: the sum of its legs.
func (r RouteLegs) TotalMeters() float64 {
	total := 0.0
	for _, leg := range r.LegMeters {
		total += leg
	}
	return total
}

// Contract for the authoritative road-network distance oracle.
type RouteDistanceProvider interface {
	// Return the travel distance along roads for the ordered stop
	// sequence (start, interior stops, end). Fails with a transport,
	// quota, or no-route error.
	GetRouteDistance(ctx context.Context, orderedStops []domain.Coordinates) (RouteLegs, error)
}

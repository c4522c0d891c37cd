package distance

import (
	"context"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/geo"
	"loop-route-service/internal/ports"
)

// MockRouteProvider returns haversine leg distances scaled by Factor,
// or a fixed error. Used by tests and local runs without an ORS key.
type MockRouteProvider struct {
	// Factor scales each straight-line leg; 0 means 1.0.
	Factor float64

	// Err, when set, is returned by every call.
	Err error

	// Calls counts invocations, including failing ones.
	Calls int
}

func (p *MockRouteProvider) GetRouteDistance(
	_ context.Context,
	orderedStops []domain.Coordinates,
) (ports.RouteLegs, error) {
	p.Calls++
	if p.Err != nil {
		return ports.RouteLegs{}, p.Err
	}

	factor := p.Factor
	if factor == 0 {
		factor = 1.0
	}

	legs := geo.LegMeters(orderedStops)
	for i := range legs {
		legs[i] *= factor
	}
	return ports.RouteLegs{LegMeters: legs}, nil
}

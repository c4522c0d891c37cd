package places

import (
	"context"
	"fmt"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/geo"
	"loop-route-service/internal/ports"
)

// MockPlacesProvider serves a fixed place list, filtered by radius.
type MockPlacesProvider struct {
	Places []ports.PlaceResult

	// Err, when set, is returned by FindNearby.
	Err error
}

func (p *MockPlacesProvider) FindNearby(
	_ context.Context,
	center domain.Coordinates,
	radiusMeters float64,
	_ string,
) ([]ports.PlaceResult, error) {
	if p.Err != nil {
		return nil, p.Err
	}

	out := make([]ports.PlaceResult, 0, len(p.Places))
	for _, place := range p.Places {
		if geo.Haversine(center, place.Location) <= radiusMeters {
			out = append(out, place)
		}
	}
	return out, nil
}

func (p *MockPlacesProvider) GetDetails(_ context.Context, id string) (ports.PlaceResult, error) {
	for _, place := range p.Places {
		if place.ID == id {
			return place, nil
		}
	}
	return ports.PlaceResult{}, fmt.Errorf("missing place %q", id)
}

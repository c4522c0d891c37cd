package ports

import (
	"context"

	"loop-route-service/internal/domain"
)

// A single nearby-search hit before domain filtering.
type PlaceResult struct {
	ID         string
	Name       string
	Address    string
	Location   domain.Coordinates
	Categories []string
}

// Contract for the external point-of-interest lookup.
type PlacesProvider interface {
	// Return candidate places around a center coordinate. Transport or
	// quota errors are returned as-is; retry policy belongs to the
	// implementation, not the caller.
	FindNearby(ctx context.Context, center domain.Coordinates, radiusMeters float64, keyword string) ([]PlaceResult, error)

	// Return full details for one place, used to enrich nearby-search
	// results that lack a structured address.
	GetDetails(ctx context.Context, id string) (PlaceResult, error)
}

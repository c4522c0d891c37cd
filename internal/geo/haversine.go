// Package geo provides great-circle distance helpers used by the route
// search to estimate travel distances without touching the road oracle.
package geo

import (
	"math"

	"loop-route-service/internal/domain"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine
// formula.
const EarthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance between two coordinates
// in meters. Symmetric, zero for identical points.
func Haversine(a, b domain.Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	s := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return EarthRadiusMeters * 2 * math.Atan2(math.Sqrt(s), math.Sqrt(1-s))
}

// PathMeters sums the haversine distances of consecutive legs along an
// ordered coordinate path.
func PathMeters(coords []domain.Coordinates) float64 {
	total := 0.0
	for i := 0; i+1 < len(coords); i++ {
		total += Haversine(coords[i], coords[i+1])
	}
	return total
}

// LegMeters returns each consecutive-leg distance along a path.
func LegMeters(coords []domain.Coordinates) []float64 {
	if len(coords) < 2 {
		return nil
	}
	legs := make([]float64, 0, len(coords)-1)
	for i := 0; i+1 < len(coords); i++ {
		legs = append(legs, Haversine(coords[i], coords[i+1]))
	}
	return legs
}

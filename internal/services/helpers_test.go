package services

import (
	"fmt"
	"math"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/ports"
)

// metersPerDegree at the equator; longitude offsets are corrected by
// cos(lat) below.
const metersPerDegree = 111194.9

// circleStops places n stops evenly on a circle of the given radius
// around center. The synthetic geometry makes expected loop lengths
// easy to reason about: adjacent chords and center legs have known
// straight-line distances.
func circleStops(center domain.Coordinates, radiusMeters float64, n int) []domain.Stop {
	stops := make([]domain.Stop, 0, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		dLat := radiusMeters * math.Cos(theta) / metersPerDegree
		dLon := radiusMeters * math.Sin(theta) / (metersPerDegree * math.Cos(center.Lat*math.Pi/180))
		stops = append(stops, domain.Stop{
			ID:   fmt.Sprintf("stop-%02d", i),
			Name: fmt.Sprintf("Burger Barn #%d", i),
			Location: domain.Coordinates{
				Lat: center.Lat + dLat,
				Lon: center.Lon + dLon,
			},
		})
	}
	return stops
}

// circlePlaces wraps circleStops as place results carrying an eatery
// category, for feeding the mock places provider.
func circlePlaces(center domain.Coordinates, radiusMeters float64, n int) []ports.PlaceResult {
	stops := circleStops(center, radiusMeters, n)
	places := make([]ports.PlaceResult, 0, n)
	for _, s := range stops {
		places = append(places, ports.PlaceResult{
			ID:         s.ID,
			Name:       s.Name,
			Address:    s.ID + " Main St",
			Location:   s.Location,
			Categories: []string{"fast_food"},
		})
	}
	return places
}

// mustLoop builds a closed loop from an open stop sequence, panicking
// on invariant violations (test fixtures are hand-checked).
func mustLoop(open ...domain.Stop) domain.Loop {
	closed := append(append([]domain.Stop{}, open...), open[0])
	loop, err := domain.NewLoop(closed)
	if err != nil {
		panic(err)
	}
	return loop
}

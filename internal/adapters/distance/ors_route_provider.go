package distance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/platform/metrics"
	"loop-route-service/internal/platform/obs"
	"loop-route-service/internal/ports"
)

// ORSRouteProvider implements RouteDistanceProvider using the
// OpenRouteService directions endpoint.
//
// It coordinates:
//   - A client-side rate limiter (the free ORS tier is heavily quota'd)
//   - Persistent route-distance caching keyed by the stop sequence
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	limiter *rate.Limiter
	cache   ports.RouteCache
}

// NewORSRouteProvider builds the provider. cache may be nil to disable
// caching.
func NewORSRouteProvider(apiKey string, cache ports.RouteCache) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSRouteProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "foot-walking",
		limiter: rate.NewLimiter(rate.Every(1500*time.Millisecond), 2),
		cache:   cache,
	}, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
	Units       string      `json:"units"`
}

type directionsResponse struct {
	Routes []struct {
		Segments []struct {
			Distance float64 `json:"distance"`
		} `json:"segments"`
	} `json:"routes"`
}

// GetRouteDistance returns per-leg road distances for the ordered stop
// sequence. Cache reads and writes are best effort; a cache failure
// never fails the lookup.
func (o *ORSRouteProvider) GetRouteDistance(
	ctx context.Context,
	orderedStops []domain.Coordinates,
) (_ ports.RouteLegs, err error) {
	defer obs.Time(ctx, "ors.GetRouteDistance")(&err)

	if len(orderedStops) < 2 {
		return ports.RouteLegs{}, errors.New("get route distance: need at least two stops")
	}

	key := RouteKey(orderedStops)
	if o.cache != nil {
		legs, hit, cerr := o.cache.Get(ctx, key)
		if cerr != nil {
			log.Printf("route cache read failed: %v", cerr)
		} else if hit {
			return legs, nil
		}
	}

	if err := o.limiter.Wait(ctx); err != nil {
		return ports.RouteLegs{}, fmt.Errorf("get route distance: rate limiter: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	locations := make([][]float64, 0, len(orderedStops))
	for _, c := range orderedStops {
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: locations, Units: "m"})
	if err != nil {
		return ports.RouteLegs{}, fmt.Errorf("marshal directions request: %w", err)
	}

	metrics.OracleCalls.Inc()

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.RouteLegs{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteLegs{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return ports.RouteLegs{}, errors.New("directions returned no route")
	}

	segments := dr.Routes[0].Segments
	if len(segments) != len(orderedStops)-1 {
		return ports.RouteLegs{}, fmt.Errorf(
			"directions returned %d segments for %d stops",
			len(segments), len(orderedStops),
		)
	}

	legs := ports.RouteLegs{LegMeters: make([]float64, 0, len(segments))}
	for _, s := range segments {
		legs.LegMeters = append(legs.LegMeters, s.Distance)
	}

	if o.cache != nil {
		if cerr := o.cache.Put(ctx, key, legs); cerr != nil {
			log.Printf("route cache write failed: %v", cerr)
		}
	}

	return legs, nil
}

// RouteKey builds a stable cache key for an ordered coordinate
// sequence. Coordinates are rounded to ~0.1 m so float noise does not
// fragment the cache.
func RouteKey(coords []domain.Coordinates) string {
	var b strings.Builder
	for i, c := range coords {
		if i > 0 {
			b.WriteByte(';')
		}
		fmt.Fprintf(&b, "%.6f,%.6f", c.Lon, c.Lat)
	}
	return b.String()
}

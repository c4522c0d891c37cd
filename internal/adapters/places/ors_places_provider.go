package places

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"loop-route-service/internal/domain"
	"loop-route-service/internal/platform/obs"
	"loop-route-service/internal/ports"
)

// ORSPlacesProvider implements PlacesProvider using the OpenRouteService
// POIs endpoint.
//
// The POIs endpoint has no per-id lookup, so GetDetails is served from
// the results of earlier FindNearby calls; the pool builder only uses
// it to enrich results it has just seen.
type ORSPlacesProvider struct {
	session *http.Client
	apiKey  string
	baseURL string

	mu   sync.Mutex
	byID map[string]ports.PlaceResult
}

func NewORSPlacesProvider(apiKey string) (*ORSPlacesProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSPlacesProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		byID:    make(map[string]ports.PlaceResult),
	}, nil
}

type poisRequest struct {
	Request  string       `json:"request"`
	Geometry poisGeometry `json:"geometry"`
	Filters  poisFilters  `json:"filters,omitempty"`
	Limit    int          `json:"limit"`
}

type poisGeometry struct {
	GeoJSON poisPoint `json:"geojson"`
	Buffer  float64   `json:"buffer"`
}

type poisPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type poisFilters struct {
	Name []string `json:"name,omitempty"`
}

type poisResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			OsmID   int64 `json:"osm_id"`
			OsmTags struct {
				Name        string `json:"name"`
				Street      string `json:"addr:street"`
				Housenumber string `json:"addr:housenumber"`
				City        string `json:"addr:city"`
			} `json:"osm_tags"`
			CategoryIDs map[string]struct {
				CategoryName  string `json:"category_name"`
				CategoryGroup string `json:"category_group"`
			} `json:"category_ids"`
		} `json:"properties"`
	} `json:"features"`
}

// FindNearby queries POIs around the center within radiusMeters,
// filtered by name on the ORS side. Quota and transport errors are
// returned unchanged for the caller to propagate.
func (o *ORSPlacesProvider) FindNearby(
	ctx context.Context,
	center domain.Coordinates,
	radiusMeters float64,
	keyword string,
) (_ []ports.PlaceResult, err error) {
	defer obs.Time(ctx, "ors.FindNearby")(&err)

	body := poisRequest{
		Request: "pois",
		Geometry: poisGeometry{
			GeoJSON: poisPoint{Type: "Point", Coordinates: center.CoordsToList()},
			Buffer:  radiusMeters,
		},
		Limit: 200,
	}
	if kw := strings.TrimSpace(keyword); kw != "" {
		body.Filters.Name = []string{kw}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal pois request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/pois", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create pois request: %w", err)
	}
	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.session.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pois request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pois status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var pr poisResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return nil, fmt.Errorf("decode pois response: %w", err)
	}

	out := make([]ports.PlaceResult, 0, len(pr.Features))
	for _, f := range pr.Features {
		if len(f.Geometry.Coordinates) != 2 {
			continue
		}

		tags := f.Properties.OsmTags
		categories := make([]string, 0, len(f.Properties.CategoryIDs))
		for _, c := range f.Properties.CategoryIDs {
			if c.CategoryName != "" {
				categories = append(categories, c.CategoryName)
			}
			if c.CategoryGroup != "" {
				categories = append(categories, c.CategoryGroup)
			}
		}

		address := strings.TrimSpace(strings.Join(nonEmpty(
			strings.TrimSpace(tags.Housenumber+" "+tags.Street),
			tags.City,
		), ", "))

		place := ports.PlaceResult{
			ID:   "osm:" + strconv.FormatInt(f.Properties.OsmID, 10),
			Name: tags.Name,
			Location: domain.Coordinates{
				Lon: f.Geometry.Coordinates[0],
				Lat: f.Geometry.Coordinates[1],
			},
			Address:    address,
			Categories: categories,
		}
		out = append(out, place)

		o.mu.Lock()
		o.byID[place.ID] = place
		o.mu.Unlock()
	}

	return out, nil
}

// GetDetails returns a previously seen place by id.
func (o *ORSPlacesProvider) GetDetails(_ context.Context, id string) (ports.PlaceResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	place, ok := o.byID[id]
	if !ok {
		return ports.PlaceResult{}, fmt.Errorf("get details: unknown place %q", id)
	}
	return place, nil
}

func nonEmpty(parts ...string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

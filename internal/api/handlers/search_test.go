package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"loop-route-service/internal/adapters/distance"
	"loop-route-service/internal/adapters/places"
	"loop-route-service/internal/api/dto"
	"loop-route-service/internal/domain"
	"loop-route-service/internal/geo"
	"loop-route-service/internal/ports"
	"loop-route-service/internal/services"
)

var handlerCenter = domain.Coordinates{Lon: -118.0, Lat: 34.0}

func handlerPlaces() []ports.PlaceResult {
	offsets := []struct{ dLon, dLat float64 }{
		{0.01, 0}, {0.01, 0.01}, {0, 0.01},
	}
	out := make([]ports.PlaceResult, 0, len(offsets))
	for i, o := range offsets {
		out = append(out, ports.PlaceResult{
			ID:   "p" + string(rune('1'+i)),
			Name: "Burger Barn",
			Location: domain.Coordinates{
				Lon: handlerCenter.Lon + o.dLon,
				Lat: handlerCenter.Lat + o.dLat,
			},
			Categories: []string{"fast_food"},
		})
	}
	return out
}

// fixedGenerator returns a canned candidate list for one stop count,
// sidestepping randomized construction in handler tests.
type fixedGenerator struct {
	stopCount  int
	candidates []domain.RouteCandidate
}

func (g *fixedGenerator) Generate(
	_ domain.Stop,
	_ []domain.Stop,
	_ float64,
	stopCount int,
) []domain.RouteCandidate {
	if stopCount != g.stopCount {
		return nil
	}
	return g.candidates
}

func testHandler(t *testing.T) *SearchHandler {
	t.Helper()

	results := handlerPlaces()
	start := domain.Stop{ID: "start", Name: "Trailhead", Location: handlerCenter}

	loop, err := domain.NewLoop([]domain.Stop{
		start,
		{ID: results[0].ID, Name: results[0].Name, Location: results[0].Location},
		{ID: results[1].ID, Name: results[1].Name, Location: results[1].Location},
		start,
	})
	if err != nil {
		t.Fatal(err)
	}

	orch := &services.Orchestrator{
		Places: &places.MockPlacesProvider{Places: results},
		Oracle: &distance.MockRouteProvider{Factor: 1.0},
		Generator: &fixedGenerator{
			stopCount: 2,
			candidates: []domain.RouteCandidate{{
				Loop:            loop,
				EstimatedMeters: geo.PathMeters(loop.Coords()),
				Score:           0.1,
			}},
		},
	}

	return &SearchHandler{Orchestrator: orch, Tuning: domain.DefaultTuning()}
}

func searchBody() string {
	return `{
		"start": {"id": "start", "name": "Trailhead", "lat": 34.0, "lon": -118.0},
		"keyword": "Burger Barn",
		"radius_meters": 6000,
		"min_distance_meters": 100,
		"max_distance_meters": 100000,
		"min_stops": 2,
		"max_stops": 2
	}`
}

func TestSearchHappyPath(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/routes/search", strings.NewReader(searchBody()))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var resp dto.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK {
		t.Fatalf("search failed: %+v", resp.Error)
	}
	if !resp.Verified {
		t.Error("expected verified result from the exact-distance oracle")
	}
	if len(resp.Stops) != 3 {
		t.Fatalf("response has %d stops, want start plus 2", len(resp.Stops))
	}
	if resp.Stops[0].ID != "start" {
		t.Errorf("first stop = %q, want start", resp.Stops[0].ID)
	}
	if resp.DistanceMeters <= 0 {
		t.Errorf("distance = %f, want positive", resp.DistanceMeters)
	}
}

func TestSearchFailureCarriesErrorKind(t *testing.T) {
	h := testHandler(t)
	h.Orchestrator.Places = &places.MockPlacesProvider{Places: handlerPlaces()[:1]}

	req := httptest.NewRequest(http.MethodPost, "/routes/search", strings.NewReader(searchBody()))
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 with failed payload", rec.Code)
	}

	var resp dto.SearchResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.OK {
		t.Fatal("expected failed search")
	}
	if resp.Error == nil || resp.Error.Kind != string(domain.ErrInsufficientCandidates) {
		t.Errorf("error = %+v, want kind %s", resp.Error, domain.ErrInsufficientCandidates)
	}
}

func TestSearchRejectsWrongMethod(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/routes/search", nil)
	rec := httptest.NewRecorder()
	h.Search(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != http.MethodPost {
		t.Errorf("Allow = %q, want POST", allow)
	}
}

func TestSearchRejectsBadPayloads(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{"start": `},
		{"unknown field", `{"bogus": true}`},
		{"two objects", searchBody() + `{}`},
		{"missing start id", `{"start": {"lat": 34.0, "lon": -118.0}, "keyword": "x"}`},
		{"out of range start", `{"start": {"id": "s", "lat": 120.0, "lon": -118.0}, "keyword": "x"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := testHandler(t)
			req := httptest.NewRequest(http.MethodPost, "/routes/search", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			h.Search(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSearchStreamEmitsProgressAndResult(t *testing.T) {
	h := testHandler(t)

	url := "/routes/search/stream?start_id=start&start_name=Trailhead&start_lat=34.0&start_lon=-118.0" +
		"&keyword=Burger+Barn&radius_meters=6000&min_distance_meters=100&max_distance_meters=100000" +
		"&min_stops=2&max_stops=2"
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.SearchStream(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "event: progress") {
		t.Error("stream carries no progress events")
	}
	if !strings.Contains(body, "event: result") {
		t.Error("stream carries no result event")
	}
	if strings.Index(body, "event: result") < strings.Index(body, "event: progress") {
		t.Error("result event arrived before progress events")
	}
}

func TestSearchStreamRequiresStartID(t *testing.T) {
	h := testHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/routes/search/stream?keyword=x", nil)
	rec := httptest.NewRecorder()
	h.SearchStream(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"

	"loop-route-service/internal/api/dto"
	"loop-route-service/internal/domain"
	"loop-route-service/internal/platform/metrics"
	"loop-route-service/internal/services"
)

type SearchHandler struct {
	Orchestrator *services.Orchestrator

	// Tuning applies to every search this handler runs.
	Tuning domain.Tuning
}

// Search runs a full route search and returns the result as JSON.
// Progress is logged server-side; callers that want live progress use
// the SSE stream endpoint instead.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SearchRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	start, cfg, err := h.buildSearch(req)
	if err != "" {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	began := time.Now()
	res := h.Orchestrator.FindOptimalRoute(r.Context(), start, cfg, func(p domain.SearchProgress) {
		log.Printf("search progress stage=%s msg=%q", p.Stage, p.Message)
	})
	metrics.SearchDuration.Observe(time.Since(began).Seconds())
	metrics.Searches.WithLabelValues(searchOutcome(res)).Inc()

	writeJSON(w, r, http.StatusOK, toSearchResponse(res))
}

// buildSearch validates the payload shape; domain validation happens in
// the orchestrator. The returned string is a client-facing message.
func (h *SearchHandler) buildSearch(req dto.SearchRequest) (domain.Stop, domain.SearchConfig, string) {
	if req.Start.ID == "" {
		return domain.Stop{}, domain.SearchConfig{}, "start.id is required"
	}

	start := domain.Stop{
		ID:      req.Start.ID,
		Name:    req.Start.Name,
		Address: req.Start.Address,
		Location: domain.Coordinates{
			Lat: req.Start.Lat,
			Lon: req.Start.Lon,
		},
	}
	if !start.Location.Valid() {
		return domain.Stop{}, domain.SearchConfig{}, "start coordinates out of range"
	}

	cfg := domain.SearchConfig{
		Keyword:           req.Keyword,
		BrandNames:        req.BrandNames,
		RadiusMeters:      req.RadiusMeters,
		MinDistanceMeters: req.MinDistanceMeters,
		MaxDistanceMeters: req.MaxDistanceMeters,
		MinStops:          req.MinStops,
		MaxStops:          req.MaxStops,
		MaxOracleCalls:    req.MaxOracleCalls,
		Tuning:            h.Tuning,
	}

	return start, cfg, ""
}

func searchOutcome(res domain.SearchResult) string {
	switch {
	case res.OK && res.Verified:
		return "complete"
	case res.OK:
		return "fallback"
	default:
		return "failed"
	}
}

func toSearchResponse(res domain.SearchResult) dto.SearchResponse {
	out := dto.SearchResponse{
		OK:             res.OK,
		DistanceMeters: res.DistanceMeters,
		Verified:       res.Verified,
	}

	for _, s := range res.Stops {
		out.Stops = append(out.Stops, dto.StopPayload{
			ID:      s.ID,
			Name:    s.Name,
			Address: s.Address,
			Lat:     s.Location.Lat,
			Lon:     s.Location.Lon,
		})
	}

	if res.Err != nil {
		out.Error = &dto.SearchErrorResponse{
			Kind:    string(res.Err.Kind),
			Message: res.Err.Message,
		}
	}

	return out
}

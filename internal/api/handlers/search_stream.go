package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"loop-route-service/internal/api/dto"
	"loop-route-service/internal/domain"
)

// SearchStream runs a route search and streams progress notifications
// as server-sent events, ending with a "result" event. Parameters are
// passed as query values since EventSource only issues GETs.
func (h *SearchHandler) SearchStream(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, r, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	req, errMsg := streamRequest(r)
	if errMsg != "" {
		writeError(w, r, http.StatusBadRequest, errMsg)
		return
	}

	start, cfg, errMsg := h.buildSearch(req)
	if errMsg != "" {
		writeError(w, r, http.StatusBadRequest, errMsg)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	// Progress callbacks run on this goroutine, so writing to the
	// response directly is safe; write failures just mean the client
	// went away and the search result is discarded with the request.
	res := h.Orchestrator.FindOptimalRoute(r.Context(), start, cfg, func(p domain.SearchProgress) {
		writeEvent(w, "progress", dto.ProgressEvent{
			Stage:               string(p.Stage),
			Message:             p.Message,
			CandidatesFound:     p.CandidatesFound,
			CandidatesEvaluated: p.CandidatesEvaluated,
			OracleCallsUsed:     p.OracleCallsUsed,
		})
		flusher.Flush()
	})

	writeEvent(w, "result", toSearchResponse(res))
	flusher.Flush()
}

func writeEvent(w http.ResponseWriter, event string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data)
}

func streamRequest(r *http.Request) (dto.SearchRequest, string) {
	q := r.URL.Query()

	floatParam := func(key string) float64 {
		v, _ := strconv.ParseFloat(q.Get(key), 64)
		return v
	}
	intParam := func(key string) int {
		v, _ := strconv.Atoi(q.Get(key))
		return v
	}

	req := dto.SearchRequest{
		Start: dto.StopPayload{
			ID:      q.Get("start_id"),
			Name:    q.Get("start_name"),
			Address: q.Get("start_address"),
			Lat:     floatParam("start_lat"),
			Lon:     floatParam("start_lon"),
		},
		Keyword:           q.Get("keyword"),
		RadiusMeters:      floatParam("radius_meters"),
		MinDistanceMeters: floatParam("min_distance_meters"),
		MaxDistanceMeters: floatParam("max_distance_meters"),
		MinStops:          intParam("min_stops"),
		MaxStops:          intParam("max_stops"),
		MaxOracleCalls:    intParam("max_oracle_calls"),
	}

	if req.Start.ID == "" {
		return req, "start_id is required"
	}

	return req, ""
}

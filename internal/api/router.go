package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"loop-route-service/internal/api/handlers"
	"loop-route-service/internal/domain"
	"loop-route-service/internal/platform/metrics"
	"loop-route-service/internal/services"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay
// unaware of concrete adapters).
func NewRouter(orch *services.Orchestrator, tuning domain.Tuning) http.Handler {
	mux := http.NewServeMux()

	searchHandler := &handlers.SearchHandler{
		Orchestrator: orch,
		Tuning:       tuning,
	}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/routes/search", searchHandler.Search)
	mux.HandleFunc("/routes/search/stream", searchHandler.SearchStream)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return loggingMiddleware(mux)
}

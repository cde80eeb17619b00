package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler serves the metrics registry. A successful scrape doubles as
// the liveness check.
type HealthHandler struct {
	metrics http.Handler
}

// NewHealthHandler creates a health handler for the given registry.
func NewHealthHandler(g prometheus.Gatherer) *HealthHandler {
	return &HealthHandler{metrics: promhttp.HandlerFor(g, promhttp.HandlerOpts{})}
}

// HandleHealth handles GET /healthz requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}

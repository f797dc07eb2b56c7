package handlers

import (
	"net/http"

	"github.com/runesight/runesight/internal/server/response"
)

// HandleHealth handles GET /health (liveness probe).
func (h *Handlers) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, map[string]any{
		"status":  "healthy",
		"service": "runesight-api",
		"version": "v1",
	})
}

// HandleReady handles GET /api/v1/ready. Readiness covers the cache and
// whether analysis is available.
func (h *Handlers) HandleReady(w http.ResponseWriter, _ *http.Request) {
	stats := h.cache.Stats()
	response.OK(w, map[string]any{
		"status": "ready",
		"cache": map[string]any{
			"entries":  stats.TotalEntries,
			"max_size": stats.MaxSize,
		},
		"analysis_enabled": h.analyzer != nil && h.analyzer.Enabled(),
		"region":           h.riot.Region(),
		"platform":         h.riot.Platform(),
	})
}

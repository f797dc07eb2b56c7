package handlers

import (
	"net/http"

	"github.com/runesight/runesight/internal/server/response"
	"github.com/runesight/runesight/pkg/logging"
)

// HandleCacheStats handles GET /api/v1/cache/stats. The statistics snapshot
// is served verbatim.
func (h *Handlers) HandleCacheStats(w http.ResponseWriter, _ *http.Request) {
	response.OK(w, h.cache.Stats())
}

// HandleCacheClear handles POST /api/v1/cache/clear. Clearing removes every
// entry but keeps the lifetime hit/miss counters.
func (h *Handlers) HandleCacheClear(w http.ResponseWriter, r *http.Request) {
	removed := h.cache.Len()
	h.cache.Clear()

	logging.Ctx(r.Context()).Info().Int("removed", removed).Msg("Cache cleared")
	response.OK(w, map[string]any{
		"cleared": true,
		"removed": removed,
	})
}

// HandleCacheInvalidate handles POST /api/v1/cache/invalidate?prefix=...
func (h *Handlers) HandleCacheInvalidate(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		response.BadRequest(w, "Prefix required", "Pass ?prefix={category}: to invalidate a key range")
		return
	}

	removed := h.cache.InvalidatePrefix(prefix)

	logging.Ctx(r.Context()).Info().Str("prefix", prefix).Int("removed", removed).Msg("Cache entries invalidated")
	response.OK(w, map[string]any{
		"prefix":  prefix,
		"removed": removed,
	})
}

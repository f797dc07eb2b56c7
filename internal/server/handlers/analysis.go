package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/runesight/runesight/internal/riot"
	"github.com/runesight/runesight/internal/server/response"
	"github.com/runesight/runesight/pkg/logging"
)

// analyzeRequest is the body of POST /analysis/match/{matchID}.
type analyzeRequest struct {
	RiotID string `json:"riot_id"`
}

// HandleAnalyzeMatch handles POST /api/v1/analysis/match/{matchID}.
func (h *Handlers) HandleAnalyzeMatch(w http.ResponseWriter, r *http.Request, matchID string) {
	if h.analyzer == nil || !h.analyzer.Enabled() {
		response.ServiceUnavailable(w, "Match analysis is not configured")
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	id, err := riot.ParseRiotID(req.RiotID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	result, err := h.analyzer.AnalyzeMatch(r.Context(), matchID, id)
	if err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("match_id", matchID).Msg("Match analysis failed")
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, result)
}

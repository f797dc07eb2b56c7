package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/runesight/runesight/internal/matches"
	"github.com/runesight/runesight/internal/riot"
	"github.com/runesight/runesight/internal/server/response"
	"github.com/runesight/runesight/pkg/errors"
)

// maxHistoryCount caps how many matches one history request may fan out to.
const maxHistoryCount = 100

// validateRequest is the body of POST /riot/validate.
type validateRequest struct {
	RiotID   string `json:"riot_id"`
	Region   string `json:"region"`
	Platform string `json:"platform"`
}

// validateResult reports whether a RiotID resolves to a real account. Lookup
// failures that mean "no such player" are reported as invalid with a reason,
// not as request errors.
type validateResult struct {
	Valid    bool   `json:"valid"`
	RiotID   string `json:"riot_id,omitempty"`
	PUUID    string `json:"puuid,omitempty"`
	GameName string `json:"game_name,omitempty"`
	TagLine  string `json:"tag_line,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// HandleValidateRiotID handles POST /api/v1/riot/validate.
func (h *Handlers) HandleValidateRiotID(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", err.Error())
		return
	}

	id, err := riot.ParseRiotID(req.RiotID)
	if err != nil {
		response.OK(w, validateResult{Valid: false, Reason: err.Error()})
		return
	}

	client, err := h.routedClient(req.Region, req.Platform)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	account, err := client.AccountByRiotID(r.Context(), id)
	if err != nil {
		if errors.IsNotFound(err) {
			response.OK(w, validateResult{Valid: false, RiotID: id.String(), Reason: "account not found"})
			return
		}
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, validateResult{
		Valid:    true,
		RiotID:   id.String(),
		PUUID:    account.PUUID,
		GameName: account.GameName,
		TagLine:  account.TagLine,
	})
}

// HandleMatchHistory handles GET /api/v1/riot/matches/{riotID}.
func (h *Handlers) HandleMatchHistory(w http.ResponseWriter, r *http.Request, rawRiotID string) {
	id, err := riot.ParseRiotID(rawRiotID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	query := r.URL.Query()
	client, err := h.routedClient(query.Get("region"), query.Get("platform"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	count, err := parseCount(query.Get("count"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	queue := 0
	if raw := query.Get("queue"); raw != "" {
		queue, err = strconv.Atoi(raw)
		if err != nil || queue < 0 {
			response.BadRequest(w, "Invalid queue", "queue must be a non-negative queue ID")
			return
		}
	}

	account, err := client.AccountByRiotID(r.Context(), id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	ids, err := client.MatchIDsByPUUID(r.Context(), account.PUUID, riot.MatchIDOptions{Count: count, Queue: queue})
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	details, err := client.Matches(r.Context(), ids)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	history := matches.FormatHistory(details, account.PUUID)
	response.OK(w, map[string]any{
		"riot_id": id.String(),
		"puuid":   account.PUUID,
		"count":   len(history),
		"matches": history,
	})
}

// HandleMatchDetails handles GET /api/v1/riot/match/{matchID}.
func (h *Handlers) HandleMatchDetails(w http.ResponseWriter, r *http.Request, matchID string) {
	match, err := h.riot.MatchByID(r.Context(), matchID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	puuid := r.URL.Query().Get("puuid")
	response.OK(w, matches.Normalize(match, puuid))
}

// HandleRankedEntries handles GET /api/v1/riot/ranked/{riotID}.
func (h *Handlers) HandleRankedEntries(w http.ResponseWriter, r *http.Request, rawRiotID string) {
	id, err := riot.ParseRiotID(rawRiotID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	query := r.URL.Query()
	client, err := h.routedClient(query.Get("region"), query.Get("platform"))
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	account, err := client.AccountByRiotID(r.Context(), id)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	summoner, err := client.SummonerByPUUID(r.Context(), account.PUUID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	entries, err := client.LeagueEntriesByPUUID(r.Context(), account.PUUID)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}

	response.OK(w, map[string]any{
		"riot_id":        id.String(),
		"puuid":          account.PUUID,
		"summoner_level": summoner.SummonerLevel,
		"entries":        entries,
	})
}

// parseCount parses the history count query parameter, defaulting to 10.
func parseCount(raw string) (int, error) {
	if raw == "" {
		return 10, nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 1 || count > maxHistoryCount {
		return 0, errors.NewValidationError("count", raw, "count must be between 1 and 100")
	}
	return count, nil
}

// Package analysis turns shaped match data into coaching feedback through a
// text-completion model.
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/runesight/runesight/internal/cache"
	"github.com/runesight/runesight/internal/llm"
	"github.com/runesight/runesight/internal/matches"
	"github.com/runesight/runesight/internal/riot"
	"github.com/runesight/runesight/pkg/errors"
	"github.com/runesight/runesight/pkg/logging"
)

// Config holds analyzer dependencies.
type Config struct {
	Riot  *riot.Client
	Cache *cache.Service

	// Completer may be nil, which disables analysis.
	Completer llm.Completer

	Logger *zerolog.Logger
}

// Analyzer fetches a match, shapes it around the requesting player, and asks
// the completion model for feedback. Responses are cached so repeat requests
// for the same match and player never re-prompt the model.
type Analyzer struct {
	riot      *riot.Client
	cache     *cache.Service
	completer llm.Completer
	logger    *zerolog.Logger
}

// New validates dependencies and builds an Analyzer.
func New(cfg Config) (*Analyzer, error) {
	if cfg.Riot == nil {
		return nil, errors.NewConfigError("analysis", "riot client is required", nil)
	}
	if cfg.Cache == nil {
		return nil, errors.NewConfigError("analysis", "cache service is required", nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Analyzer{
		riot:      cfg.Riot,
		cache:     cfg.Cache,
		completer: cfg.Completer,
		logger:    logger,
	}, nil
}

// Enabled reports whether a completion model is configured.
func (a *Analyzer) Enabled() bool {
	return a.completer != nil
}

// Result is a completed match analysis.
type Result struct {
	MatchID  string `json:"match_id"`
	RiotID   string `json:"riot_id"`
	Champion string `json:"champion"`
	Win      bool   `json:"win"`
	Model    string `json:"model"`
	Analysis string `json:"analysis"`
	Cached   bool   `json:"cached"`
}

// AnalyzeMatch produces feedback for one player's performance in one match.
func (a *Analyzer) AnalyzeMatch(ctx context.Context, matchID string, id riot.RiotID) (*Result, error) {
	if !a.Enabled() {
		return nil, errors.NewConfigError("analysis", "no completion model configured", errors.ErrAPIKeyRequired)
	}

	account, err := a.riot.AccountByRiotID(ctx, id)
	if err != nil {
		return nil, err
	}

	match, err := a.riot.MatchByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	normalized := matches.Normalize(match, account.PUUID)
	if normalized.TargetPlayer == nil {
		return nil, errors.NewNotFoundError("participant", id.String())
	}

	key := fmt.Sprintf("%s:%s:%s", cache.CategoryAnalysis, matchID, account.PUUID)
	if cached, ok := a.cache.Get(key); ok {
		if result, ok := cached.(*Result); ok {
			out := *result
			out.Cached = true
			return &out, nil
		}
	}

	prompt := buildPrompt(normalized, id.String())

	start := time.Now()
	text, err := a.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	a.logger.Debug().
		Str("match_id", matchID).
		Str("model", a.completer.Model()).
		Dur("elapsed", time.Since(start)).
		Msg("match analysis generated")

	result := &Result{
		MatchID:  matchID,
		RiotID:   id.String(),
		Champion: normalized.TargetPlayer.ChampionName,
		Win:      normalized.TargetPlayer.Win,
		Model:    a.completer.Model(),
		Analysis: text,
	}
	a.cache.Set(key, result, cache.CategoryAnalysis)
	return result, nil
}

// buildPrompt renders a compact scoreboard the model can reason about without
// the raw match document.
func buildPrompt(m *matches.NormalizedMatch, riotID string) string {
	target := m.TargetPlayer

	var b strings.Builder
	b.WriteString("You are a League of Legends coach. Analyze this player's match performance.\n")
	b.WriteString("Give concrete, actionable feedback in 3-5 short paragraphs: what went well, what to improve, and one drill to practice.\n\n")

	fmt.Fprintf(&b, "Player: %s (%s, %s)\n", riotID, target.ChampionName, positionOrUnknown(target.TeamPosition))
	fmt.Fprintf(&b, "Queue: %s, duration %s\n", m.Summary.QueueName, m.Summary.GameDurationFormatted)
	fmt.Fprintf(&b, "Result: %s\n\n", winLoss(target.Win))

	b.WriteString("Player stats:\n")
	fmt.Fprintf(&b, "- KDA: %d/%d/%d (ratio %.2f)\n", target.Kills, target.Deaths, target.Assists, target.KDARatio)
	fmt.Fprintf(&b, "- CS: %d (%.2f/min)\n", target.CSTotal, target.CSPerMinute)
	fmt.Fprintf(&b, "- Damage to champions: %d (%.1f/min, %.1f%% of team)\n", target.DamageToChampions, target.DamagePerMinute, target.DamageShare)
	fmt.Fprintf(&b, "- Gold: %d (%.1f%% of team)\n", target.GoldEarned, target.GoldShare)
	fmt.Fprintf(&b, "- Vision score: %d\n", target.VisionScore)
	fmt.Fprintf(&b, "- Kill participation: %.1f%%\n\n", target.KillParticipation)

	b.WriteString("Scoreboard:\n")
	for _, p := range m.Participants {
		marker := " "
		if p.IsTargetPlayer {
			marker = "*"
		}
		fmt.Fprintf(&b, "%s %s (%s, team %d): %d/%d/%d, %d dmg, %d gold, %s\n",
			marker, p.SummonerName, p.ChampionName, p.TeamID,
			p.Kills, p.Deaths, p.Assists, p.DamageToChampions, p.GoldEarned, winLoss(p.Win))
	}

	return b.String()
}

func winLoss(win bool) string {
	if win {
		return "WIN"
	}
	return "LOSS"
}

func positionOrUnknown(position string) string {
	if position == "" {
		return "UNKNOWN"
	}
	return position
}

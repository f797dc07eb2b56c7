// Package matches shapes raw match-v5 documents into the views the REST
// responses and the analysis prompt builder consume.
package matches

import (
	"fmt"
	"math"

	"github.com/runesight/runesight/internal/riot"
)

// Team IDs as the match API reports them.
const (
	BlueTeamID = 100
	RedTeamID  = 200
)

// PlayerStats is one participant's shaped line for a single match.
type PlayerStats struct {
	PUUID        string `json:"puuid"`
	SummonerName string `json:"summoner_name"`
	ChampionName string `json:"champion_name"`
	ChampionID   int    `json:"champion_id"`
	TeamID       int    `json:"team_id"`
	TeamPosition string `json:"team_position"`

	Kills    int     `json:"kills"`
	Deaths   int     `json:"deaths"`
	Assists  int     `json:"assists"`
	KDARatio float64 `json:"kda_ratio"`

	DamageToChampions int     `json:"total_damage_dealt_to_champions"`
	DamagePerMinute   float64 `json:"damage_per_minute"`
	GoldEarned        int     `json:"gold_earned"`
	CSTotal           int     `json:"cs_total"`
	CSPerMinute       float64 `json:"cs_per_minute"`
	VisionScore       int     `json:"vision_score"`

	KillParticipation float64 `json:"kill_participation"`
	DamageShare       float64 `json:"damage_share"`
	GoldShare         float64 `json:"gold_share"`

	Items []int `json:"items"`
	Win   bool  `json:"win"`

	IsTargetPlayer bool `json:"is_target_player"`
}

// TeamStats is one side's shaped line for a single match.
type TeamStats struct {
	TeamID       int            `json:"team_id"`
	Win          bool           `json:"win"`
	IsPlayerTeam bool           `json:"is_player_team"`
	Objectives   TeamObjectives `json:"objectives"`
}

// TeamObjectives carries per-objective kill counts.
type TeamObjectives struct {
	Baron      int `json:"baron"`
	Dragon     int `json:"dragon"`
	Tower      int `json:"tower"`
	Inhibitor  int `json:"inhibitor"`
	RiftHerald int `json:"rift_herald"`
}

// HistoryEntry is one match from the target player's perspective, shaped for
// the match-history response.
type HistoryEntry struct {
	MatchID               string  `json:"match_id"`
	GameCreation          int64   `json:"game_creation"`
	GameDuration          int64   `json:"game_duration"`
	GameDurationFormatted string  `json:"game_duration_formatted"`
	QueueID               int     `json:"queue_id"`
	QueueName             string  `json:"queue_name"`
	MapID                 int     `json:"map_id"`

	Win          bool   `json:"win"`
	ChampionName string `json:"champion_name"`
	ChampionID   int    `json:"champion_id"`
	TeamPosition string `json:"team_position"`

	Kills     int     `json:"kills"`
	Deaths    int     `json:"deaths"`
	Assists   int     `json:"assists"`
	KDARatio  float64 `json:"kda_ratio"`
	KDAString string  `json:"kda_string"`

	DamageToChampions int     `json:"total_damage_dealt_to_champions"`
	DamagePerMinute   float64 `json:"damage_per_minute"`
	GoldEarned        int     `json:"gold_earned"`
	CSTotal           int     `json:"cs_total"`
	CSPerMinute       float64 `json:"cs_per_minute"`
	VisionScore       int     `json:"vision_score"`

	Items []int `json:"items"`

	AllParticipants []PlayerStats `json:"all_participants"`
	Teams           []TeamStats   `json:"teams"`
}

// Summary is the match-level header shared by both teams.
type Summary struct {
	MatchID               string   `json:"match_id"`
	QueueID               int      `json:"queue_id"`
	QueueName             string   `json:"queue_name"`
	GameMode              string   `json:"game_mode"`
	GameDuration          int64    `json:"game_duration_seconds"`
	GameDurationFormatted string   `json:"game_duration_formatted"`
	GameCreation          int64    `json:"game_creation"`
	GameVersion           string   `json:"game_version"`
	BlueTeam              TeamSide `json:"blue_team"`
	RedTeam               TeamSide `json:"red_team"`
}

// TeamSide summarizes first-objective takes and the result for one side.
type TeamSide struct {
	TeamID      int  `json:"team_id"`
	Win         bool `json:"win"`
	FirstBlood  bool `json:"first_blood"`
	FirstTower  bool `json:"first_tower"`
	FirstDragon bool `json:"first_dragon"`
	FirstBaron  bool `json:"first_baron"`
}

// NormalizedMatch is a complete shaped match: summary, every participant's
// line, and the target player's line when a PUUID matched.
type NormalizedMatch struct {
	Summary      Summary       `json:"summary"`
	Participants []PlayerStats `json:"participants"`
	TargetPlayer *PlayerStats  `json:"target_player,omitempty"`
	Teams        []TeamStats   `json:"teams"`
}

// Normalize shapes a raw match document. targetPUUID may be empty; when set,
// the matching participant is flagged and surfaced as TargetPlayer.
func Normalize(match *riot.Match, targetPUUID string) *NormalizedMatch {
	minutes := durationMinutes(match.Info.GameDuration)
	totals := teamTotals(match.Info.Participants)

	normalized := &NormalizedMatch{
		Summary:      summarize(match),
		Participants: make([]PlayerStats, 0, len(match.Info.Participants)),
	}

	playerTeamID := 0
	for i := range match.Info.Participants {
		p := &match.Info.Participants[i]
		stats := playerStats(p, minutes, totals, targetPUUID)
		normalized.Participants = append(normalized.Participants, stats)
		if stats.IsTargetPlayer {
			target := stats
			normalized.TargetPlayer = &target
			playerTeamID = p.TeamID
		}
	}

	normalized.Teams = teamStats(match.Info.Teams, playerTeamID)
	return normalized
}

// FormatHistory shapes a batch of matches from the target player's
// perspective. Matches where the player is absent are skipped, so a partial
// fetch still produces a usable history.
func FormatHistory(matches []*riot.Match, targetPUUID string) []HistoryEntry {
	history := make([]HistoryEntry, 0, len(matches))
	for _, match := range matches {
		if match == nil {
			continue
		}
		player := findParticipant(match, targetPUUID)
		if player == nil {
			continue
		}

		minutes := durationMinutes(match.Info.GameDuration)
		totals := teamTotals(match.Info.Participants)

		participants := make([]PlayerStats, 0, len(match.Info.Participants))
		for i := range match.Info.Participants {
			participants = append(participants, playerStats(&match.Info.Participants[i], minutes, totals, targetPUUID))
		}

		history = append(history, HistoryEntry{
			MatchID:               match.Metadata.MatchID,
			GameCreation:          match.Info.GameCreation,
			GameDuration:          match.Info.GameDuration,
			GameDurationFormatted: formatDuration(match.Info.GameDuration),
			QueueID:               match.Info.QueueID,
			QueueName:             QueueName(match.Info.QueueID),
			MapID:                 match.Info.MapID,
			Win:                   player.Win,
			ChampionName:          player.ChampionName,
			ChampionID:            player.ChampionID,
			TeamPosition:          player.TeamPosition,
			Kills:                 player.Kills,
			Deaths:                player.Deaths,
			Assists:               player.Assists,
			KDARatio:              kdaRatio(player.Kills, player.Deaths, player.Assists),
			KDAString:             fmt.Sprintf("%d/%d/%d", player.Kills, player.Deaths, player.Assists),
			DamageToChampions:     player.TotalDamageDealtToChampions,
			DamagePerMinute:       round1(float64(player.TotalDamageDealtToChampions) / minutes),
			GoldEarned:            player.GoldEarned,
			CSTotal:               totalCS(player),
			CSPerMinute:           round2(float64(totalCS(player)) / minutes),
			VisionScore:           player.VisionScore,
			Items:                 player.Items(),
			AllParticipants:       participants,
			Teams:                 teamStats(match.Info.Teams, player.TeamID),
		})
	}
	return history
}

func summarize(match *riot.Match) Summary {
	summary := Summary{
		MatchID:               match.Metadata.MatchID,
		QueueID:               match.Info.QueueID,
		QueueName:             QueueName(match.Info.QueueID),
		GameMode:              match.Info.GameMode,
		GameDuration:          match.Info.GameDuration,
		GameDurationFormatted: formatDuration(match.Info.GameDuration),
		GameCreation:          match.Info.GameCreation,
		GameVersion:           match.Info.GameVersion,
	}
	for _, team := range match.Info.Teams {
		side := TeamSide{
			TeamID:      team.TeamID,
			Win:         team.Win,
			FirstBlood:  team.Objectives.Champion.First,
			FirstTower:  team.Objectives.Tower.First,
			FirstDragon: team.Objectives.Dragon.First,
			FirstBaron:  team.Objectives.Baron.First,
		}
		switch team.TeamID {
		case BlueTeamID:
			summary.BlueTeam = side
		case RedTeamID:
			summary.RedTeam = side
		}
	}
	return summary
}

// totals aggregates a team's kills, damage, and gold for share calculations.
type totals struct {
	kills  int
	damage int
	gold   int
}

func teamTotals(participants []riot.Participant) map[int]totals {
	byTeam := make(map[int]totals, 2)
	for i := range participants {
		p := &participants[i]
		t := byTeam[p.TeamID]
		t.kills += p.Kills
		t.damage += p.TotalDamageDealtToChampions
		t.gold += p.GoldEarned
		byTeam[p.TeamID] = t
	}
	return byTeam
}

func playerStats(p *riot.Participant, minutes float64, byTeam map[int]totals, targetPUUID string) PlayerStats {
	team := byTeam[p.TeamID]
	cs := totalCS(p)
	return PlayerStats{
		PUUID:             p.PUUID,
		SummonerName:      p.RiotIDGameName,
		ChampionName:      p.ChampionName,
		ChampionID:        p.ChampionID,
		TeamID:            p.TeamID,
		TeamPosition:      p.TeamPosition,
		Kills:             p.Kills,
		Deaths:            p.Deaths,
		Assists:           p.Assists,
		KDARatio:          kdaRatio(p.Kills, p.Deaths, p.Assists),
		DamageToChampions: p.TotalDamageDealtToChampions,
		DamagePerMinute:   round1(float64(p.TotalDamageDealtToChampions) / minutes),
		GoldEarned:        p.GoldEarned,
		CSTotal:           cs,
		CSPerMinute:       round2(float64(cs) / minutes),
		VisionScore:       p.VisionScore,
		KillParticipation: share(p.Kills+p.Assists, team.kills),
		DamageShare:       share(p.TotalDamageDealtToChampions, team.damage),
		GoldShare:         share(p.GoldEarned, team.gold),
		Items:             p.Items(),
		Win:               p.Win,
		IsTargetPlayer:    targetPUUID != "" && p.PUUID == targetPUUID,
	}
}

func teamStats(teams []riot.Team, playerTeamID int) []TeamStats {
	shaped := make([]TeamStats, 0, len(teams))
	for _, team := range teams {
		shaped = append(shaped, TeamStats{
			TeamID:       team.TeamID,
			Win:          team.Win,
			IsPlayerTeam: playerTeamID != 0 && team.TeamID == playerTeamID,
			Objectives: TeamObjectives{
				Baron:      team.Objectives.Baron.Kills,
				Dragon:     team.Objectives.Dragon.Kills,
				Tower:      team.Objectives.Tower.Kills,
				Inhibitor:  team.Objectives.Inhibitor.Kills,
				RiftHerald: team.Objectives.RiftHerald.Kills,
			},
		})
	}
	return shaped
}

func findParticipant(match *riot.Match, puuid string) *riot.Participant {
	for i := range match.Info.Participants {
		if match.Info.Participants[i].PUUID == puuid {
			return &match.Info.Participants[i]
		}
	}
	return nil
}

func totalCS(p *riot.Participant) int {
	return p.TotalMinionsKilled + p.NeutralMinionsKilled
}

// kdaRatio treats a deathless game as one death so the ratio stays finite.
func kdaRatio(kills, deaths, assists int) float64 {
	return round2(float64(kills+assists) / math.Max(float64(deaths), 1))
}

// share expresses part/total as a percentage; a zero total yields zero.
func share(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return round1(float64(part) / float64(total) * 100)
}

// durationMinutes clamps to one minute so per-minute rates never divide by zero.
func durationMinutes(seconds int64) float64 {
	return math.Max(float64(seconds)/60, 1)
}

func formatDuration(seconds int64) string {
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

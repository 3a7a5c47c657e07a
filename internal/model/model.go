// Package model contains domain entities used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

// Performance is one player's fantasy result for a single week.
type Performance struct {
	PerformanceID   int64   `json:"performance_id"`
	PlayerID        int64   `json:"player_id"`
	WeekNumber      string  `json:"week_number"` // season + week, e.g. "202301"
	FantasyPoints   float64 `json:"fantasy_points"`
	LastChangedDate Date    `json:"last_changed_date"`
}

// Player represents an NFL player tracked by SWC.
type Player struct {
	PlayerID        int64         `json:"player_id"`
	GSISID          string        `json:"gsis_id"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	Position        string        `json:"position"`
	LastChangedDate Date          `json:"last_changed_date"`
	Performances    []Performance `json:"performances"`
}

// TeamPlayer is a bare player entry nested under a team; performances are not expanded there.
type TeamPlayer struct {
	PlayerID        int64  `json:"player_id"`
	GSISID          string `json:"gsis_id"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Position        string `json:"position"`
	LastChangedDate Date   `json:"last_changed_date"`
}

// Team is a fantasy team belonging to exactly one league.
type Team struct {
	LeagueID        int64        `json:"league_id"`
	TeamID          int64        `json:"team_id"`
	TeamName        string       `json:"team_name"`
	LastChangedDate Date         `json:"last_changed_date"`
	Players         []TeamPlayer `json:"players"`
}

// LeagueTeam is a team entry nested under a league, without its roster.
type LeagueTeam struct {
	LeagueID        int64  `json:"league_id"`
	TeamID          int64  `json:"team_id"`
	TeamName        string `json:"team_name"`
	LastChangedDate Date   `json:"last_changed_date"`
}

// League is an SWC fantasy league.
type League struct {
	LeagueID        int64        `json:"league_id"`
	LeagueName      string       `json:"league_name"`
	ScoringType     string       `json:"scoring_type"`
	LastChangedDate Date         `json:"last_changed_date"`
	Teams           []LeagueTeam `json:"teams"`
}

// Counts is computed per request and never persisted.
type Counts struct {
	LeagueCount int `json:"league_count"`
	TeamCount   int `json:"team_count"`
	PlayerCount int `json:"player_count"`
}

// Roster is a row of the team_player relation.
type Roster struct {
	TeamID          int64 `json:"team_id"`
	PlayerID        int64 `json:"player_id"`
	LastChangedDate Date  `json:"last_changed_date"`
}

// Bare strips nested performances for embedding under a team.
func (p Player) Bare() TeamPlayer {
	return TeamPlayer{
		PlayerID:        p.PlayerID,
		GSISID:          p.GSISID,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Position:        p.Position,
		LastChangedDate: p.LastChangedDate,
	}
}

// Bare strips the roster for embedding under a league.
func (t Team) Bare() LeagueTeam {
	return LeagueTeam{
		LeagueID:        t.LeagueID,
		TeamID:          t.TeamID,
		TeamName:        t.TeamName,
		LastChangedDate: t.LastChangedDate,
	}
}

package games

import "strings"

// GameStatus is the normalized lifecycle state of a game.
type GameStatus string

const (
	StatusScheduled  GameStatus = "scheduled"
	StatusInProgress GameStatus = "inprogress"
	StatusFinished   GameStatus = "finished"
)

// PlaceholderTeam and PlaceholderDate stand in for values the upstream omits.
const (
	PlaceholderTeam = "TBD"
	PlaceholderDate = "TBD"
)

// Game is the schema-stable representation of one upstream game.
// Scores are nil unless the upstream supplied a numeric value; they are only
// meaningful once Status is StatusFinished, and even then may be nil.
type Game struct {
	Team1   string     `json:"team1"`
	Team2   string     `json:"team2"`
	Score1  *int       `json:"score1"`
	Score2  *int       `json:"score2"`
	Status  GameStatus `json:"status"`
	Date    string     `json:"date"`
	Time    string     `json:"time"`
	RawDate string     `json:"rawDate"`
	Meta    GameMeta   `json:"meta,omitempty"`
}

// GameMeta stores provider metadata for a game.
type GameMeta struct {
	Provider       string `json:"provider,omitempty"`
	UpstreamGameID string `json:"upstreamGameId,omitempty"`
}

// IsFinished reports whether the game has ended.
func (g Game) IsFinished() bool {
	return g.Status == StatusFinished
}

// Winner returns 1 or 2 for the side that won a finished game with both
// scores present, and 0 otherwise (unfinished, missing scores, or a tie).
func (g Game) Winner() int {
	if !g.IsFinished() || g.Score1 == nil || g.Score2 == nil {
		return 0
	}
	switch {
	case *g.Score1 > *g.Score2:
		return 1
	case *g.Score2 > *g.Score1:
		return 2
	default:
		return 0
	}
}

// Key identifies a game by matchup and scheduled start.
func (g Game) Key() string {
	return g.Team1 + "|" + g.Team2 + "|" + g.RawDate
}

// Day returns the calendar-day prefix of the raw date (YYYY-MM-DD), or "" when absent.
func (g Game) Day() string {
	raw := strings.TrimSpace(g.RawDate)
	if raw == "" {
		return ""
	}
	if idx := strings.IndexAny(raw, " T"); idx >= 0 {
		return raw[:idx]
	}
	return raw
}

// ScoresEqual reports whether two optional scores are the same value (or both absent).
func ScoresEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

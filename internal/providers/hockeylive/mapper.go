package hockeylive

import (
	"strings"
	"time"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/timeutil"
)

// mapGame normalizes one upstream record. It never fails: each field falls
// back to a placeholder on its own.
func mapGame(g rawGame, loc *time.Location) domaingames.Game {
	dateLabel, timeLabel := mapDate(g.Date, loc)
	return domaingames.Game{
		Team1:   teamOrPlaceholder(g.Team1Short),
		Team2:   teamOrPlaceholder(g.Team2Short),
		Score1:  pickScore(g.Goals1, g.Score, func(s *rawScore) *int { return s.Goals1 }),
		Score2:  pickScore(g.Goals2, g.Score, func(s *rawScore) *int { return s.Goals2 }),
		Status:  mapStatus(rawStatus(g)),
		Date:    dateLabel,
		Time:    timeLabel,
		RawDate: g.Date,
		Meta: domaingames.GameMeta{
			Provider:       providerName,
			UpstreamGameID: g.ID,
		},
	}
}

func teamOrPlaceholder(code string) string {
	if code == "" {
		return domaingames.PlaceholderTeam
	}
	return code
}

// pickScore prefers the flat field and falls back to the nested score object.
func pickScore(flat *int, nested *rawScore, get func(*rawScore) *int) *int {
	if flat != nil {
		return flat
	}
	if nested != nil {
		return get(nested)
	}
	return nil
}

func rawStatus(g rawGame) string {
	if g.Status != "" {
		return g.Status
	}
	if g.Score != nil {
		return g.Score.Status
	}
	return ""
}

// mapStatus classifies by keyword; "final" outranks "live"/"progress".
func mapStatus(status string) domaingames.GameStatus {
	s := strings.ToLower(status)
	switch {
	case strings.Contains(s, "final"):
		return domaingames.StatusFinished
	case strings.Contains(s, "live"), strings.Contains(s, "progress"):
		return domaingames.StatusInProgress
	default:
		return domaingames.StatusScheduled
	}
}

func mapDate(raw string, loc *time.Location) (string, string) {
	start, ok := timeutil.ParseUpstream(raw)
	if !ok {
		return domaingames.PlaceholderDate, ""
	}
	if loc == nil {
		loc = time.Local
	}
	local := start.In(loc)
	return timeutil.DayLabel(local), timeutil.ClockLabel(local)
}

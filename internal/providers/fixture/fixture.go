package fixture

import (
	"context"
	"time"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/timeutil"
)

const providerName = "fixture"

// upstreamLayout matches the schedule API's "YYYY-MM-DD HH:MM:SS" start times.
const upstreamLayout = "2006-01-02 15:04:05"

var upstreamZone = time.FixedZone("UTC+1", 60*60)

// Provider returns a static schedule anchored to the current day, useful for
// local development without network access.
type Provider struct {
	now func() time.Time
	loc *time.Location
}

// New creates a fixture provider rendering labels in loc (time.Local when nil).
func New(loc *time.Location) *Provider {
	if loc == nil {
		loc = time.Local
	}
	return &Provider{
		now: time.Now,
		loc: loc,
	}
}

// FetchGames returns a deterministic schedule: one finished game, one in
// progress, one later today, and an undecided matchup tomorrow.
func (p *Provider) FetchGames(ctx context.Context) ([]domaingames.Game, error) {
	_ = ctx

	day := p.now().In(upstreamZone)
	midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, upstreamZone)

	return []domaingames.Game{
		p.game("fixture-1", "SWE", "FIN", midnight.Add(12*time.Hour+10*time.Minute), domaingames.StatusFinished, domaingames.IntPtr(3), domaingames.IntPtr(2)),
		p.game("fixture-2", "CAN", "SUI", midnight.Add(16*time.Hour+40*time.Minute), domaingames.StatusInProgress, nil, nil),
		p.game("fixture-3", "USA", "GER", midnight.Add(21*time.Hour+10*time.Minute), domaingames.StatusScheduled, nil, nil),
		p.game("fixture-4", domaingames.PlaceholderTeam, domaingames.PlaceholderTeam, midnight.Add(36*time.Hour+10*time.Minute), domaingames.StatusScheduled, nil, nil),
	}, nil
}

func (p *Provider) game(id, team1, team2 string, start time.Time, status domaingames.GameStatus, score1, score2 *int) domaingames.Game {
	local := start.In(p.loc)
	return domaingames.Game{
		Team1:   team1,
		Team2:   team2,
		Score1:  score1,
		Score2:  score2,
		Status:  status,
		Date:    timeutil.DayLabel(local),
		Time:    timeutil.ClockLabel(local),
		RawDate: start.Format(upstreamLayout),
		Meta:    domaingames.GameMeta{Provider: providerName, UpstreamGameID: id},
	}
}

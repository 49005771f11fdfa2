package schedule

import (
	"time"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/timeutil"
)

const (
	DefaultShortInterval = 10 * time.Minute
	DefaultLongInterval  = 2 * time.Hour
)

// Window is an inclusive range of local hours during which games are likely live.
type Window struct {
	StartHour int
	EndHour   int
}

// Contains reports whether hour falls inside the window, both ends inclusive.
func (w Window) Contains(hour int) bool {
	return hour >= w.StartHour && hour <= w.EndHour
}

// DefaultWindows are kept as three separate ranges even though they are contiguous.
func DefaultWindows() []Window {
	return []Window{
		{StartHour: 5, EndHour: 8},
		{StartHour: 9, EndHour: 12},
		{StartHour: 13, EndHour: 16},
	}
}

// Policy decides polling cadence and whether polling should continue.
type Policy struct {
	Windows  []Window
	Short    time.Duration
	Long     time.Duration
	Location *time.Location
}

// DefaultPolicy returns the standard cadence evaluated in loc (local time when nil).
func DefaultPolicy(loc *time.Location) Policy {
	return Policy{
		Windows:  DefaultWindows(),
		Short:    DefaultShortInterval,
		Long:     DefaultLongInterval,
		Location: loc,
	}
}

// Interval returns the short interval inside a game window and the long one otherwise.
func (p Policy) Interval(now time.Time) time.Duration {
	hour := p.local(now).Hour()
	for _, w := range p.windows() {
		if w.Contains(hour) {
			return p.short()
		}
	}
	return p.long()
}

// GamesRemainingToday reports whether any game dated today (local calendar day)
// is not finished yet. Games without a raw date never count.
func (p Policy) GamesRemainingToday(games []domaingames.Game, now time.Time) bool {
	today := timeutil.FormatDate(p.local(now))
	for _, g := range games {
		day := g.Day()
		if day == "" || day != today {
			continue
		}
		if !g.IsFinished() {
			return true
		}
	}
	return false
}

// Next returns the delay before the next refresh, or false when polling should stop.
func (p Policy) Next(games []domaingames.Game, now time.Time) (time.Duration, bool) {
	if !p.GamesRemainingToday(games, now) {
		return 0, false
	}
	return p.Interval(now), true
}

func (p Policy) local(now time.Time) time.Time {
	if p.Location == nil {
		return now.Local()
	}
	return now.In(p.Location)
}

func (p Policy) windows() []Window {
	if p.Windows == nil {
		return DefaultWindows()
	}
	return p.Windows
}

func (p Policy) short() time.Duration {
	if p.Short <= 0 {
		return DefaultShortInterval
	}
	return p.Short
}

func (p Policy) long() time.Duration {
	if p.Long <= 0 {
		return DefaultLongInterval
	}
	return p.Long
}

package standings

import (
	"sort"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
)

// TeamGoals is the goal count credited to one team code.
type TeamGoals struct {
	Team  string `json:"team"`
	Goals int    `json:"goals"`
}

// PlayerTotal is one row of the pool table.
type PlayerTotal struct {
	Name  string      `json:"name"`
	Goals int         `json:"goals"`
	Teams []TeamGoals `json:"teams"`
}

// Table bundles the per-player standings with per-team goal totals.
type Table struct {
	Players []PlayerTotal  `json:"players"`
	Teams   map[string]int `json:"teams"`
}

// Build computes the full standings table for a batch.
func Build(games []domaingames.Game, roster Roster) Table {
	teams := TeamTotals(games)
	return Table{
		Players: compute(games, roster, teams),
		Teams:   teams,
	}
}

// Compute returns per-player goal totals sorted by goals descending.
// Only finished games with a score contribute; the owner of team1 is credited
// score1 and the owner of team2 score2. Equal totals keep roster order.
func Compute(games []domaingames.Game, roster Roster) []PlayerTotal {
	return compute(games, roster, TeamTotals(games))
}

func compute(games []domaingames.Game, roster Roster, teams map[string]int) []PlayerTotal {
	totals := make([]PlayerTotal, len(roster))
	for i, o := range roster {
		totals[i] = PlayerTotal{Name: o.Name, Teams: make([]TeamGoals, 0, len(o.Teams))}
		for _, team := range o.Teams {
			totals[i].Teams = append(totals[i].Teams, TeamGoals{Team: team, Goals: teams[team]})
		}
	}

	credit := func(team string, score *int) {
		if score == nil {
			return
		}
		// Positional so totals stay with the row that lists the team.
		if i := roster.IndexOf(team); i >= 0 {
			totals[i].Goals += *score
		}
	}

	for _, g := range games {
		if !g.IsFinished() {
			continue
		}
		credit(g.Team1, g.Score1)
		credit(g.Team2, g.Score2)
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Goals > totals[j].Goals
	})
	return totals
}

// TeamTotals sums goals per team code across finished games, crediting both sides.
func TeamTotals(games []domaingames.Game) map[string]int {
	out := make(map[string]int)
	for _, g := range games {
		if !g.IsFinished() {
			continue
		}
		if g.Score1 != nil {
			out[g.Team1] += *g.Score1
		}
		if g.Score2 != nil {
			out[g.Team2] += *g.Score2
		}
	}
	return out
}

package testutil

import (
	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
)

// SampleGame returns a scheduled game between team1 and team2 starting at rawDate.
func SampleGame(team1, team2, rawDate string) domaingames.Game {
	return domaingames.Game{
		Team1:   team1,
		Team2:   team2,
		Status:  domaingames.StatusScheduled,
		Date:    "Feb 12",
		Time:    "3:10 PM",
		RawDate: rawDate,
		Meta:    domaingames.GameMeta{Provider: "test"},
	}
}

// FinishedGame returns SampleGame marked finished with the given score.
func FinishedGame(team1, team2, rawDate string, score1, score2 int) domaingames.Game {
	g := SampleGame(team1, team2, rawDate)
	g.Status = domaingames.StatusFinished
	g.Score1 = domaingames.IntPtr(score1)
	g.Score2 = domaingames.IntPtr(score2)
	return g
}

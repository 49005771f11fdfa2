package changes

import (
	"fmt"
	"strings"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
)

// Mode names a change-detection strategy.
type Mode string

const (
	// ModeIndex pairs games by array position.
	ModeIndex Mode = "index"
	// ModeMatchup pairs games by team pair and raw date.
	ModeMatchup Mode = "matchup"
)

// Detector reports whether any score differs between the previous and next batch.
// A nil previous batch means nothing has been cached yet and always counts as a change.
type Detector interface {
	Changed(prev, next []domaingames.Game) bool
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func(prev, next []domaingames.Game) bool

// Changed calls f.
func (f DetectorFunc) Changed(prev, next []domaingames.Game) bool {
	return f(prev, next)
}

// ByIndex compares games at the same position. Positions missing from the
// previous batch are skipped. Reordered or inserted games can therefore be
// misreported; ByMatchup avoids that.
var ByIndex = DetectorFunc(byIndex)

// ByMatchup compares games sharing the same Game.Key. Games without a
// counterpart in the previous batch are skipped.
var ByMatchup = DetectorFunc(byMatchup)

// ForMode resolves a detector by name.
func ForMode(mode string) (Detector, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(mode))) {
	case "", ModeIndex:
		return ByIndex, nil
	case ModeMatchup:
		return ByMatchup, nil
	default:
		return nil, fmt.Errorf("unknown change detection mode %q", mode)
	}
}

func byIndex(prev, next []domaingames.Game) bool {
	if prev == nil {
		return true
	}
	for i, g := range next {
		if i >= len(prev) {
			continue
		}
		if scoresDiffer(prev[i], g) {
			return true
		}
	}
	return false
}

func byMatchup(prev, next []domaingames.Game) bool {
	if prev == nil {
		return true
	}
	byKey := make(map[string]domaingames.Game, len(prev))
	for _, g := range prev {
		byKey[g.Key()] = g
	}
	for _, g := range next {
		old, ok := byKey[g.Key()]
		if !ok {
			continue
		}
		if scoresDiffer(old, g) {
			return true
		}
	}
	return false
}

func scoresDiffer(a, b domaingames.Game) bool {
	return !domaingames.ScoresEqual(a.Score1, b.Score1) || !domaingames.ScoresEqual(a.Score2, b.Score2)
}

package store

import (
	"context"
	"sync"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/domain/standings"
	"github.com/preston-bernstein/hockey-pool-service/internal/render"
)

// MemoryStore keeps a thread-safe copy of the latest rendered view for HTTP readers.
type MemoryStore struct {
	mu    sync.RWMutex
	view  render.View
	ready bool
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Render replaces the stored view. It satisfies render.Renderer.
func (s *MemoryStore) Render(ctx context.Context, view render.View) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = cloneView(view)
	s.ready = true
	return nil
}

// View returns a copy of the latest view and whether one was ever rendered.
func (s *MemoryStore) View() (render.View, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneView(s.view), s.ready
}

// ListGames returns a copy of the current games slice.
func (s *MemoryStore) ListGames() []domaingames.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneGames(s.view.Games)
}

// Standings returns a copy of the current standings table.
func (s *MemoryStore) Standings() standings.Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTable(s.view.Standings)
}

func cloneView(v render.View) render.View {
	v.Games = cloneGames(v.Games)
	v.Standings = cloneTable(v.Standings)
	return v
}

func cloneGames(games []domaingames.Game) []domaingames.Game {
	out := make([]domaingames.Game, len(games))
	for i, g := range games {
		if g.Score1 != nil {
			g.Score1 = domaingames.IntPtr(*g.Score1)
		}
		if g.Score2 != nil {
			g.Score2 = domaingames.IntPtr(*g.Score2)
		}
		out[i] = g
	}
	return out
}

func cloneTable(t standings.Table) standings.Table {
	players := make([]standings.PlayerTotal, len(t.Players))
	for i, p := range t.Players {
		p.Teams = append([]standings.TeamGoals(nil), p.Teams...)
		players[i] = p
	}
	teams := make(map[string]int, len(t.Teams))
	for k, v := range t.Teams {
		teams[k] = v
	}
	return standings.Table{Players: players, Teams: teams}
}

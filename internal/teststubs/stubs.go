package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/render"
)

// StubProvider is a test double for providers.GameProvider.
type StubProvider struct {
	Games  []domaingames.Game
	Err    error
	Calls  atomic.Int32
	Notify chan struct{}
}

// FetchGames returns configured games and error while tracking calls.
func (s *StubProvider) FetchGames(ctx context.Context) ([]domaingames.Game, error) {
	_ = ctx
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.Calls.Add(1)
	return s.Games, s.Err
}

// Step is one scripted provider response.
type Step struct {
	Games []domaingames.Game
	Err   error
}

// SequenceProvider replays Steps in order and repeats the last one once exhausted.
// Fetched receives a value after every call when non-nil.
type SequenceProvider struct {
	mu      sync.Mutex
	Steps   []Step
	next    int
	Calls   atomic.Int32
	Fetched chan int
}

func (s *SequenceProvider) FetchGames(ctx context.Context) ([]domaingames.Game, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	var step Step
	if len(s.Steps) > 0 {
		idx := s.next
		if idx >= len(s.Steps) {
			idx = len(s.Steps) - 1
		} else {
			s.next++
		}
		step = s.Steps[idx]
	}
	s.mu.Unlock()

	n := s.Calls.Add(1)
	if s.Fetched != nil {
		select {
		case s.Fetched <- int(n):
		default:
		}
	}
	return step.Games, step.Err
}

// StubRenderer records every view it is handed.
type StubRenderer struct {
	mu       sync.Mutex
	views    []render.View
	Err      error
	Rendered chan render.View
}

func (r *StubRenderer) Render(ctx context.Context, view render.View) error {
	_ = ctx
	r.mu.Lock()
	r.views = append(r.views, view)
	r.mu.Unlock()
	if r.Rendered != nil {
		select {
		case r.Rendered <- view:
		default:
		}
	}
	return r.Err
}

// Views returns a copy of the views rendered so far.
func (r *StubRenderer) Views() []render.View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]render.View(nil), r.views...)
}

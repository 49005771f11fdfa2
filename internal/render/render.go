package render

import (
	"context"
	"errors"
	"time"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/domain/standings"
)

// View is everything a presentation layer needs after one refresh.
type View struct {
	Games       []domaingames.Game `json:"games"`
	Standings   standings.Table    `json:"standings"`
	LastUpdated string             `json:"lastUpdated"`
	// Changed reports whether Games differs from the batch rendered before it.
	Changed     bool      `json:"changed"`
	RefreshedAt time.Time `json:"refreshedAt"`
}

// Renderer consumes a View. Implementations must not retain and mutate the
// View's slices.
type Renderer interface {
	Render(ctx context.Context, view View) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(ctx context.Context, view View) error

func (f RendererFunc) Render(ctx context.Context, view View) error {
	return f(ctx, view)
}

// Multi fans a View out to every renderer, continuing past failures.
type Multi []Renderer

func (m Multi) Render(ctx context.Context, view View) error {
	var errs []error
	for _, r := range m {
		if r == nil {
			continue
		}
		if err := r.Render(ctx, view); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

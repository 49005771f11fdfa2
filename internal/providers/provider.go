package providers

import (
	"context"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
)

// GameProvider fetches the full upstream schedule and returns it normalized.
// Implementations never partially fail: either every record is normalized or an error is returned.
type GameProvider interface {
	FetchGames(ctx context.Context) ([]domaingames.Game, error)
}

// GameProviderFunc adapts a function to GameProvider.
type GameProviderFunc func(ctx context.Context) ([]domaingames.Game, error)

// FetchGames calls f.
func (f GameProviderFunc) FetchGames(ctx context.Context) ([]domaingames.Game, error) {
	return f(ctx)
}

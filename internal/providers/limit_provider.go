package providers

import (
	"context"
	"log/slog"
	"sync"
	"time"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
)

const defaultMinGap = 30 * time.Second

// rateLimitedProvider enforces a minimum gap between upstream calls so manual
// refreshes cannot hammer the API. The first call is never delayed.
type rateLimitedProvider struct {
	next   GameProvider
	gap    time.Duration
	logger *slog.Logger
	name   string
	now    func() time.Time

	mu   sync.Mutex
	last time.Time
}

// NewRateLimitedProvider returns a GameProvider that waits until gap has passed since the previous call.
func NewRateLimitedProvider(next GameProvider, gap time.Duration, logger *slog.Logger, providerName string) GameProvider {
	if gap <= 0 {
		gap = defaultMinGap
	}
	return &rateLimitedProvider{
		next:   next,
		gap:    gap,
		logger: logger,
		name:   providerName,
		now:    time.Now,
	}
}

func (p *rateLimitedProvider) FetchGames(ctx context.Context) ([]domaingames.Game, error) {
	if p == nil || p.next == nil {
		return nil, ErrProviderUnavailable
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.last.IsZero() {
		if wait := p.gap - p.now().Sub(p.last); wait > 0 {
			logWithProvider(ctx, p.logger, slog.LevelInfo, p.name, "throttling upstream fetch", "wait_ms", wait.Milliseconds())
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				logWithProvider(ctx, p.logger, slog.LevelWarn, p.name, "throttled fetch canceled")
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.last = p.now()
	return p.next.FetchGames(ctx)
}

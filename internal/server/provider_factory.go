package server

import (
	"log/slog"

	"github.com/preston-bernstein/hockey-pool-service/internal/config"
	"github.com/preston-bernstein/hockey-pool-service/internal/metrics"
	"github.com/preston-bernstein/hockey-pool-service/internal/providers"
)

// providerFactory assembles the provider with shared wrappers (retry + rate limit).
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

// build wraps the selected provider. Retries are opt-in and stay inside one
// cycle; the rate limiter sits outermost so retries are not spaced by the gap.
func (f providerFactory) build(cfg config.Config) (providers.GameProvider, error) {
	base, err := selectProvider(cfg)
	if err != nil {
		return nil, err
	}
	name := normalizeProviderName(cfg.Provider, base)

	wrapped := base
	if cfg.Refresh.FetchRetries > 0 {
		wrapped = providers.NewRetryingProvider(wrapped, f.logger, f.metrics, name, cfg.Refresh.FetchRetries+1, 0)
	}
	return providers.NewRateLimitedProvider(wrapped, cfg.Refresh.MinFetchGap, f.logger, name), nil
}

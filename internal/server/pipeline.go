package server

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/preston-bernstein/hockey-pool-service/internal/changes"
	"github.com/preston-bernstein/hockey-pool-service/internal/config"
	"github.com/preston-bernstein/hockey-pool-service/internal/logging"
	"github.com/preston-bernstein/hockey-pool-service/internal/metrics"
	"github.com/preston-bernstein/hockey-pool-service/internal/poller"
	"github.com/preston-bernstein/hockey-pool-service/internal/render"
	"github.com/preston-bernstein/hockey-pool-service/internal/schedule"
	"github.com/preston-bernstein/hockey-pool-service/internal/snapshots"
	"github.com/preston-bernstein/hockey-pool-service/internal/timeutil"
)

// pipeline is the provider, snapshot store and poller shared by serve and once.
type pipeline struct {
	poller *poller.Poller
	store  snapshots.Store
}

func buildPipeline(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, renderer render.Renderer) (pipeline, error) {
	pcfg, err := pollerConfig(cfg)
	if err != nil {
		return pipeline{}, err
	}
	provider, err := newProviderFactory(logger, recorder).build(cfg)
	if err != nil {
		return pipeline{}, err
	}
	store, err := buildSnapshotStore(ctx, cfg.Snapshots)
	if err != nil {
		return pipeline{}, fmt.Errorf("snapshot store: %w", err)
	}
	logging.Info(logger, "snapshot store ready", logging.FieldBackend, cfg.Snapshots.Backend)

	p := poller.New(provider, renderer, snapshots.NewCache(store), logger, recorder, pcfg)
	return pipeline{poller: p, store: store}, nil
}

func pollerConfig(cfg config.Config) (poller.Config, error) {
	detector, err := changes.ForMode(cfg.Refresh.ChangeDetection)
	if err != nil {
		return poller.Config{}, err
	}
	policy := schedule.DefaultPolicy(timeutil.ResolveLocation(cfg.Hockey.Timezone))
	if cfg.Refresh.ShortInterval > 0 {
		policy.Short = cfg.Refresh.ShortInterval
	}
	if cfg.Refresh.LongInterval > 0 {
		policy.Long = cfg.Refresh.LongInterval
	}
	return poller.Config{
		Policy:            policy,
		Detector:          detector,
		Roster:            cfg.Roster,
		FetchTimeout:      cfg.Refresh.FetchTimeout,
		MinGap:            cfg.Refresh.MinFetchGap,
		LastUpdatedPolicy: cfg.Refresh.LastUpdatedPolicy,
	}, nil
}

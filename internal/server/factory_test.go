package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/hockey-pool-service/internal/changes"
	"github.com/preston-bernstein/hockey-pool-service/internal/config"
	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/poller"
	"github.com/preston-bernstein/hockey-pool-service/internal/providers/fixture"
	"github.com/preston-bernstein/hockey-pool-service/internal/providers/hockeylive"
	"github.com/preston-bernstein/hockey-pool-service/internal/snapshots"
)

func TestSelectProvider(t *testing.T) {
	p, err := selectProvider(config.Config{Provider: "fixture"})
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	if _, ok := p.(*fixture.Provider); !ok {
		t.Fatalf("expected fixture provider, got %T", p)
	}

	p, err = selectProvider(config.Config{Provider: "hockeylive", Hockey: config.HockeyConfig{URL: "https://example.test/api"}})
	if err != nil {
		t.Fatalf("hockeylive: %v", err)
	}
	if _, ok := p.(*hockeylive.Client); !ok {
		t.Fatalf("expected hockeylive client, got %T", p)
	}

	if _, err := selectProvider(config.Config{Provider: "espn"}); err == nil {
		t.Fatalf("expected unknown provider error")
	}
}

func TestProviderFactoryWrapsProvider(t *testing.T) {
	factory := newProviderFactory(nil, nil)
	for _, retries := range []int{0, 2} {
		prov, err := factory.build(config.Config{Provider: "fixture", Refresh: config.RefreshConfig{FetchRetries: retries}})
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		games, err := prov.FetchGames(context.Background())
		if err != nil || len(games) != 4 {
			t.Fatalf("expected fixture games through wrappers, got %d err=%v", len(games), err)
		}
	}
	if _, err := factory.build(config.Config{Provider: "espn"}); err == nil {
		t.Fatalf("expected build error")
	}
}

func TestNormalizeProviderName(t *testing.T) {
	if got := normalizeProviderName(" HockeyLive ", nil); got != "hockeylive" {
		t.Fatalf("expected configured name lowered, got %q", got)
	}
	if got := normalizeProviderName("", fixture.New(time.UTC)); got != "fixture.provider" {
		t.Fatalf("expected derived type name, got %q", got)
	}
	if got := normalizeProviderName("", nil); got != "provider" {
		t.Fatalf("expected default name, got %q", got)
	}
}

func TestBuildSnapshotStore(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	fs, err := buildSnapshotStore(ctx, config.SnapshotConfig{Backend: "fs", Path: dir})
	if err != nil {
		t.Fatalf("fs: %v", err)
	}
	if got := fs.(*snapshots.FSStore).BasePath(); got != dir {
		t.Fatalf("expected base path %s, got %s", dir, got)
	}

	sq, err := buildSnapshotStore(ctx, config.SnapshotConfig{Backend: "sqlite", Path: filepath.Join(dir, "nested")})
	if err != nil {
		t.Fatalf("sqlite: %v", err)
	}
	if err := sq.Put(ctx, snapshots.KeyLastUpdated, []byte("3:04 PM")); err != nil {
		t.Fatalf("sqlite put: %v", err)
	}
	_ = sq.Close()

	mem, err := buildSnapshotStore(ctx, config.SnapshotConfig{Backend: "none"})
	if err != nil {
		t.Fatalf("none: %v", err)
	}
	if _, ok := mem.(*snapshots.MemoryStore); !ok {
		t.Fatalf("expected memory store, got %T", mem)
	}

	if _, err := buildSnapshotStore(ctx, config.SnapshotConfig{Backend: "redis", RedisAddr: "redis://localhost:notaport"}); err == nil {
		t.Fatalf("expected redis address error")
	}
	if _, err := buildSnapshotStore(ctx, config.SnapshotConfig{Backend: "s3"}); err == nil {
		t.Fatalf("expected unknown backend error")
	}
}

func TestPollerConfig(t *testing.T) {
	cfg := config.Config{
		Hockey: config.HockeyConfig{Timezone: "Europe/Bratislava"},
		Refresh: config.RefreshConfig{
			FetchTimeout:      5 * time.Second,
			MinFetchGap:       time.Minute,
			ShortInterval:     3 * time.Minute,
			ChangeDetection:   "matchup",
			LastUpdatedPolicy: config.LastUpdatedAlways,
		},
	}
	pc, err := pollerConfig(cfg)
	if err != nil {
		t.Fatalf("poller config: %v", err)
	}
	if pc.Policy.Short != 3*time.Minute || pc.Policy.Long != 2*time.Hour {
		t.Fatalf("unexpected intervals %+v", pc.Policy)
	}
	if pc.Policy.Location == nil || pc.Policy.Location.String() != "Europe/Bratislava" {
		t.Fatalf("expected configured location, got %v", pc.Policy.Location)
	}
	if pc.LastUpdatedPolicy != poller.StampAlways || pc.MinGap != time.Minute || pc.FetchTimeout != 5*time.Second {
		t.Fatalf("unexpected poller config %+v", pc)
	}
	prev := []domaingames.Game{
		{Team1: "CAN", Team2: "SUI", RawDate: "d1", Score1: domaingames.IntPtr(1)},
		{Team1: "USA", Team2: "GER", RawDate: "d1", Score1: domaingames.IntPtr(0)},
	}
	next := []domaingames.Game{prev[1], prev[0]}
	if pc.Detector.Changed(prev, next) || !changes.ByIndex.Changed(prev, next) {
		t.Fatalf("expected matchup detector selected")
	}

	cfg.Refresh.ChangeDetection = "bogus"
	if _, err := pollerConfig(cfg); err == nil {
		t.Fatalf("expected detection mode error")
	}
}

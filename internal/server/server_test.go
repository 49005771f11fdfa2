package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/hockey-pool-service/internal/config"
	"github.com/preston-bernstein/hockey-pool-service/internal/domain/standings"
	"github.com/preston-bernstein/hockey-pool-service/internal/http/handlers"
	"github.com/preston-bernstein/hockey-pool-service/internal/metrics"
	"github.com/preston-bernstein/hockey-pool-service/internal/testutil"
)

func fixtureConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:     "0",
		Provider: "fixture",
		Hockey:   config.HockeyConfig{Timezone: "UTC"},
		Refresh: config.RefreshConfig{
			FetchTimeout:      time.Second,
			MinFetchGap:       time.Millisecond,
			ChangeDetection:   "index",
			LastUpdatedPolicy: config.LastUpdatedOnChange,
		},
		Snapshots: config.SnapshotConfig{Backend: "fs", Path: t.TempDir()},
		Roster:    standings.DefaultRoster(),
	}
}

func TestNewServesFixtureScheduleEndToEnd(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	srv, err := newServerWithMetrics(context.Background(), fixtureConfig(t), logger, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := srv.store.View(); ok && srv.poller.Status().IsReady() {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("expected the first cycle to render")
		}
		time.Sleep(5 * time.Millisecond)
	}

	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/schedule", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var resp handlers.ScheduleResponse
	testutil.DecodeJSON(t, rr, &resp)
	if resp.Count != 4 || resp.LastUpdated == "" {
		t.Fatalf("unexpected schedule %+v", resp)
	}

	rr = testutil.Serve(srv.Handler(), http.MethodGet, "/ready", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return after cancel")
	}
	if got := srv.metrics.Refresh().Cycles; got < 1 {
		t.Fatalf("expected a recorded cycle, got %d", got)
	}
}

func TestNewRejectsUnknownComponents(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "provider", mutate: func(c *config.Config) { c.Provider = "espn" }},
		{name: "backend", mutate: func(c *config.Config) { c.Snapshots.Backend = "s3" }},
		{name: "detection", mutate: func(c *config.Config) { c.Refresh.ChangeDetection = "fuzzy" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fixtureConfig(t)
			tt.mutate(&cfg)
			if _, err := newServerWithMetrics(context.Background(), cfg, nil, metrics.NewRecorder()); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, p)
	srv.gracefulShutdown()

	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownClosesSnapshotsAndMetrics(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	closer := &closingStore{err: errors.New("close failed")}
	metricsSrv := &testutil.StubHTTPServer{}
	stopped := false

	srv := newServerWithDeps(config.Config{}, logger, &testutil.StubHTTPServer{}, &testutil.StubPoller{})
	srv.snapshots = closer
	srv.metricsServer = metricsSrv
	srv.metricsStop = func(context.Context) error {
		stopped = true
		return nil
	}
	srv.gracefulShutdown()

	if !closer.closed || !stopped || metricsSrv.ShutdownCalls != 1 {
		t.Fatalf("expected snapshots closed and metrics stopped")
	}
	if !strings.Contains(buf.String(), "snapshot store close failed") {
		t.Fatalf("expected close failure logged, got %q", buf.String())
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	blocking := &testutil.StubHTTPServer{
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("expected shutdown and stop once, got %d/%d", blocking.ShutdownCalls, p.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	p := &testutil.StubPoller{Err: errors.New("stop failure")}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, logger, httpSrv, p)
	srv.gracefulShutdown()

	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
	if !strings.Contains(buf.String(), "failed to stop poller") {
		t.Fatalf("expected stop failure logged")
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &testutil.StubHTTPServer{ListenErr: errors.New("listen failure")}, &testutil.StubPoller{})

	var once sync.Once
	stopCalled := make(chan struct{})
	srv.startServer(func() { once.Do(func() { close(stopCalled) }) })

	select {
	case <-stopCalled:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{ListenErr: http.ErrServerClosed}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 || plr.StopCalls != 1 {
		t.Fatalf("expected poller started and stopped once, got %d/%d", plr.StartCalls, plr.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestRunShutsDownWhenPollerRefusesToStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger, buf := testutil.NewBufferLogger()
	plr := &testutil.StubPoller{StartErr: errors.New("already stopped")}
	httpSrv := &testutil.StubHTTPServer{ListenErr: http.ErrServerClosed}
	srv := newServerWithDeps(config.Config{}, logger, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run kept going without a poller")
	}
	if plr.StopCalls != 1 || !strings.Contains(buf.String(), "poller failed to start") {
		t.Fatalf("expected logged start failure and shutdown, got stops=%d log=%q", plr.StopCalls, buf.String())
	}
}

func TestBuildMetrics(t *testing.T) {
	rec := metrics.NewRecorder()
	if got, srv, stop := buildMetrics(config.Config{}, nil, rec); got != rec || srv != nil || stop != nil {
		t.Fatalf("expected injected recorder passthrough")
	}

	orig := metricsSetup
	defer func() { metricsSetup = orig }()

	metricsSetup = func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
	}
	got, srv, stop := buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true, Port: "9999"}}, nil, nil)
	if got == nil || srv == nil || stop == nil || srv.Addr() != ":9999" {
		t.Fatalf("expected recorder, server and shutdown on success")
	}

	logger, buf := testutil.NewBufferLogger()
	metricsSetup = func(context.Context, metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("exporter down")
	}
	got, srv, _ = buildMetrics(config.Config{Metrics: config.MetricsConfig{Enabled: true}}, logger, nil)
	if got == nil || srv != nil {
		t.Fatalf("expected fallback recorder without server")
	}
	if !strings.Contains(buf.String(), "metrics setup failed") {
		t.Fatalf("expected setup failure logged")
	}
}

func TestRunOncePrintsTables(t *testing.T) {
	var out bytes.Buffer
	cfg := fixtureConfig(t)
	if err := RunOnce(context.Background(), cfg, nil, &out); err != nil {
		t.Fatalf("run once: %v", err)
	}
	text := out.String()
	for _, want := range []string{"SWE", "CAN", "Sean", "John", "Roland", "Last updated"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in output:\n%s", want, text)
		}
	}

	store, err := buildSnapshotStore(context.Background(), cfg.Snapshots)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	if _, ok, _ := store.Get(context.Background(), "schedule"); !ok {
		t.Fatalf("expected schedule persisted by once")
	}
}

func TestRunOnceReportsBuildErrors(t *testing.T) {
	cfg := fixtureConfig(t)
	cfg.Provider = "espn"
	if err := RunOnce(context.Background(), cfg, nil, &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for unknown provider")
	}
}

type closingStore struct {
	closed bool
	err    error
}

func (s *closingStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (s *closingStore) Put(context.Context, string, []byte) error         { return nil }
func (s *closingStore) Close() error {
	s.closed = true
	return s.err
}

package testutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClockAdvances(t *testing.T) {
	start := time.Date(2026, 2, 12, 10, 0, 0, 0, time.UTC)
	c := NewClock(start)
	if !c.Now().Equal(start) {
		t.Fatalf("expected start time, got %v", c.Now())
	}
	c.Advance(30 * time.Second)
	if got := c.Now().Sub(start); got != 30*time.Second {
		t.Fatalf("expected 30s advance, got %s", got)
	}
}

func TestFixturesHelper(t *testing.T) {
	g := SampleGame("CAN", "SUI", "2026-02-12 16:40:00")
	if g.Team1 != "CAN" || g.Team2 != "SUI" || g.IsFinished() || g.Score1 != nil {
		t.Fatalf("unexpected game fixture %+v", g)
	}
	f := FinishedGame("USA", "GER", "2026-02-12 21:10:00", 3, 2)
	if !f.IsFinished() || *f.Score1 != 3 || *f.Score2 != 2 || f.Winner() != 1 {
		t.Fatalf("unexpected finished fixture %+v", f)
	}
}

func TestServeHelpers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	rr := Serve(handler, http.MethodPost, "/test", strings.NewReader("{}"))
	AssertStatus(t, rr, http.StatusCreated)
	var body map[string]bool
	DecodeJSON(t, rr, &body)
	if !body["ok"] {
		t.Fatalf("expected ok=true")
	}

	req := httptest.NewRequest(http.MethodGet, "/req", nil)
	rr2 := ServeRequest(handler, req)
	AssertStatus(t, rr2, http.StatusCreated)
}

func TestServerStubs(t *testing.T) {
	p := &StubPoller{Err: errors.New("stop"), Queued: true}
	if err := p.Start(context.Background()); err != nil {
		t.Fatalf("unexpected start error %v", err)
	}
	if err := p.Stop(context.Background()); !errors.Is(err, p.Err) {
		t.Fatalf("expected stop error")
	}
	if !p.Trigger() || p.TriggerCalls != 1 {
		t.Fatalf("expected trigger passthrough, got %+v", p)
	}
	if p.StartCalls != 1 || p.StopCalls != 1 {
		t.Fatalf("unexpected call counts %+v", p)
	}
	if p.Status() != p.StatusVal {
		t.Fatalf("expected status passthrough")
	}

	sh := &StubHTTPServer{ListenErr: errors.New("boom"), ShutdownErr: errors.New("down")}
	sh.HandlerVal = http.NewServeMux()
	_ = sh.ListenAndServe()
	_ = sh.Shutdown(context.Background())
	_ = sh.Handler()
	_ = sh.Addr()
	if sh.ListenCalls != 1 || sh.ShutdownCalls != 1 {
		t.Fatalf("expected listen/shutdown calls, got %+v", sh)
	}

	b := &StubHTTPServer{Unblock: make(chan struct{}), ListenErr: http.ErrServerClosed}
	if err := b.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("expected ErrServerClosed, got %v", err)
	}
	done := make(chan error, 1)
	go func() { done <- b.Shutdown(context.Background()) }()
	close(b.Unblock)
	if err := <-done; err != nil {
		t.Fatalf("expected nil shutdown err, got %v", err)
	}
	if b.Addr() != ":0" {
		t.Fatalf("expected default addr, got %q", b.Addr())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	stuck := &StubHTTPServer{Unblock: make(chan struct{})}
	if err := stuck.Shutdown(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected ctx error from blocked shutdown, got %v", err)
	}
}

func TestLoggerAndMetricsHelpers(t *testing.T) {
	logger, buf := NewBufferLogger()
	logger.Debug("hello", "k", "v")
	if buf.Len() == 0 || !strings.Contains(buf.String(), "k=v") {
		t.Fatalf("expected buffered debug output, got %q", buf.String())
	}
	rec, shutdown := NewRecorderWithShutdown()
	if rec == nil || shutdown == nil {
		t.Fatalf("expected recorder and shutdown")
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("expected nil shutdown error, got %v", err)
	}
}

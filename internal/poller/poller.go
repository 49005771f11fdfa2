package poller

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/preston-bernstein/hockey-pool-service/internal/changes"
	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/domain/standings"
	"github.com/preston-bernstein/hockey-pool-service/internal/logging"
	"github.com/preston-bernstein/hockey-pool-service/internal/metrics"
	"github.com/preston-bernstein/hockey-pool-service/internal/providers"
	"github.com/preston-bernstein/hockey-pool-service/internal/render"
	"github.com/preston-bernstein/hockey-pool-service/internal/schedule"
	"github.com/preston-bernstein/hockey-pool-service/internal/snapshots"
	"github.com/preston-bernstein/hockey-pool-service/internal/timeutil"
)

const defaultFetchTimeout = 15 * time.Second

// Last-updated policies.
const (
	StampOnChange = "change"
	StampAlways   = "always"
)

// ErrRunning is returned by Start and RunOnce while another caller owns the cycle.
var ErrRunning = errors.New("poller loop is running")

// ErrStopped is returned by Start once Stop has been called.
var ErrStopped = errors.New("poller stopped")

// Config tunes a Poller. Zero values fall back to defaults.
type Config struct {
	Policy   schedule.Policy
	Detector changes.Detector
	Roster   standings.Roster
	// FetchTimeout bounds a single upstream fetch.
	FetchTimeout time.Duration
	// MinGap defers manual triggers arriving sooner than this after the last attempt.
	MinGap            time.Duration
	LastUpdatedPolicy string
}

// Poller runs fetch cycles one at a time and schedules the next one adaptively.
type Poller struct {
	provider providers.GameProvider
	renderer render.Renderer
	cache    *snapshots.Cache
	logger   *slog.Logger
	metrics  *metrics.Recorder
	cfg      Config
	now      func() time.Time
	newID    func() string

	timer    *schedule.Timer
	trigger  chan struct{}
	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	// Owned by whichever goroutine runs cycles.
	prev        []domaingames.Game
	lastUpdated string
	restored    bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the refresh loop.
type Status struct {
	ConsecutiveFailures int            `json:"consecutiveFailures"`
	LastError           string         `json:"lastError,omitempty"`
	LastAttempt         time.Time      `json:"lastAttempt"`
	LastSuccess         time.Time      `json:"lastSuccess"`
	State               schedule.State `json:"state"`
	NextRefresh         time.Time      `json:"nextRefresh"`
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Poller. cache and renderer may be nil.
func New(provider providers.GameProvider, renderer render.Renderer, cache *snapshots.Cache, logger *slog.Logger, recorder *metrics.Recorder, cfg Config) *Poller {
	if cfg.Detector == nil {
		cfg.Detector = changes.ByIndex
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = defaultFetchTimeout
	}
	if cfg.LastUpdatedPolicy != StampAlways {
		cfg.LastUpdatedPolicy = StampOnChange
	}
	if cfg.Roster == nil {
		cfg.Roster = standings.DefaultRoster()
	}
	return &Poller{
		provider: provider,
		renderer: renderer,
		cache:    cache,
		logger:   logger,
		metrics:  recorder,
		cfg:      cfg,
		now:      time.Now,
		newID:    uuid.NewString,
		timer:    schedule.NewTimer(),
		trigger:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		finished: make(chan struct{}),
		status:   Status{State: schedule.StateIdle},
	}
}

// Start restores the saved batch, runs a first cycle, then keeps refreshing
// until the context is cancelled, Stop is called, or no games remain today.
// It returns ErrRunning while the loop or a RunOnce is active and ErrStopped
// after Stop; a Poller is not restartable.
func (p *Poller) Start(ctx context.Context) error {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.started {
		return ErrRunning
	}
	select {
	case <-p.done:
		return ErrStopped
	default:
	}
	p.started = true

	go p.loop(ctx)
	return nil
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.finished)
	logging.Info(p.logger, "poller started")

	p.restore(ctx)
	_ = p.cycle(ctx)
	fire := p.scheduleNext()

	for {
		select {
		case <-ctx.Done():
			p.halt()
			return
		case <-p.done:
			p.halt()
			return
		case <-fire:
			_ = p.cycle(ctx)
			fire = p.scheduleNext()
		case <-p.trigger:
			if wait := p.deferral(); wait > 0 {
				logging.Info(p.logger, "manual refresh deferred", slog.Int64(logging.FieldIntervalMS, wait.Milliseconds()))
				fire = p.arm(wait)
				continue
			}
			p.timer.Stop()
			_ = p.cycle(ctx)
			fire = p.scheduleNext()
		}
	}
}

// Stop halts the loop and waits for an in-flight cycle to finish or ctx to expire.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
	})

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		p.timer.Stop()
		return nil
	}

	select {
	case <-p.finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Trigger requests an immediate refresh, resuming a stopped loop. Requests
// made while one is already pending coalesce; the return value reports
// whether this call queued a new one.
func (p *Poller) Trigger() bool {
	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// RunOnce restores the saved batch and runs exactly one cycle without
// scheduling another. It refuses to run while the background loop is active.
func (p *Poller) RunOnce(ctx context.Context) error {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return ErrRunning
	}
	p.started = true
	p.startMu.Unlock()
	defer func() {
		p.startMu.Lock()
		p.started = false
		p.startMu.Unlock()
	}()

	p.restore(ctx)
	return p.cycle(ctx)
}

// Status returns a snapshot of the loop's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// restore loads the previous run's batch and label, and renders them so
// readers have data before the first fetch completes.
func (p *Poller) restore(ctx context.Context) {
	if p.restored || p.cache == nil {
		return
	}
	p.restored = true

	saved, err := p.cache.Load(ctx)
	if err != nil {
		logging.Warn(p.logger, "snapshot load failed", "error", err)
		p.metrics.RecordSnapshotError("cache", "load")
	}
	p.prev = saved.Games
	p.lastUpdated = saved.LastUpdated
	if saved.Games == nil {
		return
	}

	logging.Info(p.logger, "restored saved schedule", logging.FieldCount, len(saved.Games))
	p.render(ctx, p.logger, p.view(saved.Games, false))
}

// cycle fetches, detects changes, persists, aggregates and renders one batch.
// On failure the previous batch stays in place and nothing is rendered.
func (p *Poller) cycle(ctx context.Context) error {
	start := p.now()
	logger := p.logger
	if logger != nil {
		logger = logger.With(slog.String(logging.FieldCycleID, p.newID()))
	}
	ctx = logging.WithLogger(ctx, logger)
	p.recordAttempt(start)

	if p.provider == nil {
		err := providers.ErrProviderUnavailable
		p.recordFailure(err)
		return err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.FetchTimeout)
	games, err := p.provider.FetchGames(fetchCtx)
	cancel()
	duration := p.now().Sub(start)
	p.metrics.RecordPollerCycle(duration, err)
	if err != nil {
		logging.Error(logger, "refresh failed", err, slog.Int64(logging.FieldDurationMS, duration.Milliseconds()))
		p.recordFailure(err)
		return err
	}
	if games == nil {
		games = []domaingames.Game{}
	}

	changed := p.cfg.Detector.Changed(p.prev, games)
	if changed {
		p.metrics.RecordScoreChange()
	}
	p.prev = games

	if p.cache != nil {
		if err := p.cache.SaveSchedule(ctx, games); err != nil {
			logging.Warn(logger, "snapshot save failed", "error", err)
			p.metrics.RecordSnapshotError("cache", "save")
		}
	}

	if changed || p.cfg.LastUpdatedPolicy == StampAlways {
		p.lastUpdated = timeutil.ClockLabel(p.local(start))
		if p.cache != nil {
			if err := p.cache.SaveLastUpdated(ctx, p.lastUpdated); err != nil {
				logging.Warn(logger, "last updated save failed", "error", err)
				p.metrics.RecordSnapshotError("cache", "save")
			}
		}
	}

	p.render(ctx, logger, p.view(games, changed))
	p.recordSuccess(start)
	logging.Info(logger, "refresh complete",
		logging.FieldCount, len(games),
		logging.FieldChanged, changed,
		logging.FieldDurationMS, duration.Milliseconds(),
	)
	return nil
}

func (p *Poller) view(games []domaingames.Game, changed bool) render.View {
	return render.View{
		Games:       games,
		Standings:   standings.Build(games, p.cfg.Roster),
		LastUpdated: p.lastUpdated,
		Changed:     changed,
		RefreshedAt: p.now(),
	}
}

func (p *Poller) render(ctx context.Context, logger *slog.Logger, view render.View) {
	if p.renderer == nil {
		return
	}
	if err := p.renderer.Render(ctx, view); err != nil {
		logging.Warn(logger, "render failed", "error", err)
	}
}

// scheduleNext arms the timer for the next cycle, or stops when every game
// dated today has finished. Until a first batch arrives polling continues.
func (p *Poller) scheduleNext() <-chan time.Time {
	now := p.now()
	var (
		wait time.Duration
		ok   = true
	)
	if p.prev == nil {
		wait = p.cfg.Policy.Interval(now)
	} else {
		wait, ok = p.cfg.Policy.Next(p.prev, now)
	}

	if !ok {
		p.timer.Stop()
		p.setState(schedule.StateStopped, time.Time{})
		p.metrics.RecordSchedule(0, true)
		logging.Info(p.logger, "refresh stopped, no games remaining today", logging.FieldState, string(schedule.StateStopped))
		return nil
	}
	p.metrics.RecordSchedule(wait, false)
	logging.Debug(p.logger, "next refresh scheduled", slog.Int64(logging.FieldIntervalMS, wait.Milliseconds()))
	return p.arm(wait)
}

func (p *Poller) arm(wait time.Duration) <-chan time.Time {
	fire := p.timer.Reset(wait)
	deadline, _ := p.timer.Pending()
	p.setState(schedule.StateScheduled, deadline)
	return fire
}

// deferral returns how long a manual trigger must wait to respect MinGap.
func (p *Poller) deferral() time.Duration {
	if p.cfg.MinGap <= 0 {
		return 0
	}
	last := p.Status().LastAttempt
	if last.IsZero() {
		return 0
	}
	return p.cfg.MinGap - p.now().Sub(last)
}

func (p *Poller) halt() {
	p.timer.Stop()
	p.setState(schedule.StateStopped, time.Time{})
	logging.Info(p.logger, "poller stopped")
}

func (p *Poller) local(t time.Time) time.Time {
	if p.cfg.Policy.Location == nil {
		return t.Local()
	}
	return t.In(p.cfg.Policy.Location)
}

func (p *Poller) setState(state schedule.State, next time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.State = state
	p.status.NextRefresh = next
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
	p.status.State = schedule.StateFetching
	p.status.NextRefresh = time.Time{}
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
}

package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	rateLimitHits   int
	lastRetryAfter  time.Duration
	lastCallLatency time.Duration
}

type refreshStats struct {
	cycles       int
	cycleErrors  int
	scoreChanges int
	lastInterval time.Duration
	stops        int
	snapshotErrs int
}

// Recorder captures lightweight, in-memory metrics about provider calls and
// refresh cycles, mirrored to OpenTelemetry instruments when configured.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*providerStats
	refresh refreshStats
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats: make(map[string]*providerStats),
		otel:  otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.withStats(provider, func(stats *providerStats) {
		stats.calls++
		stats.lastCallLatency = duration
		if err != nil {
			stats.errors++
		}
	})
	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordRateLimit tracks that a provider response hit a rate limit and stores the last Retry-After.
func (r *Recorder) RecordRateLimit(provider string, retryAfter time.Duration) {
	if r == nil {
		return
	}

	r.withStats(provider, func(stats *providerStats) {
		stats.rateLimitHits++
		if retryAfter > 0 {
			stats.lastRetryAfter = retryAfter
		}
	})
	if r.otel != nil {
		r.otel.recordRateLimit(provider, retryAfter)
	}
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// RateLimitHits returns the number of rate limit events seen for a provider.
func (r *Recorder) RateLimitHits(provider string) int {
	return r.Snapshot(provider).RateLimitHits
}

// LastRetryAfter returns the most recent Retry-After recorded for a provider.
func (r *Recorder) LastRetryAfter(provider string) time.Duration {
	return r.Snapshot(provider).LastRetryAfter
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	RateLimitHits   int
	LastRetryAfter  time.Duration
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		RateLimitHits:   stats.rateLimitHits,
		LastRetryAfter:  stats.lastRetryAfter,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks refresh cycles and their errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.refresh.cycles++
	if err != nil {
		r.refresh.cycleErrors++
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordPoller(duration, err)
	}
}

// RecordScoreChange counts a cycle whose batch differed from the previous one.
func (r *Recorder) RecordScoreChange() {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.refresh.scoreChanges++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordCounter(r.otel.scoreChanges, 1)
	}
}

// RecordSchedule stores the interval chosen for the next refresh. A stop
// decision is recorded with stopped set and no interval.
func (r *Recorder) RecordSchedule(interval time.Duration, stopped bool) {
	if r == nil {
		return
	}
	r.mu.Lock()
	if stopped {
		r.refresh.stops++
	} else {
		r.refresh.lastInterval = interval
	}
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSchedule(interval, stopped)
	}
}

// RecordSnapshotError counts a failed snapshot read or write.
func (r *Recorder) RecordSnapshotError(backend, op string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.refresh.snapshotErrs++
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordSnapshotError(backend, op)
	}
}

// RefreshSnapshot is a copy of the refresh loop counters.
type RefreshSnapshot struct {
	Cycles         int
	CycleErrors    int
	ScoreChanges   int
	LastInterval   time.Duration
	Stops          int
	SnapshotErrors int
}

// Refresh returns the refresh loop counters.
func (r *Recorder) Refresh() RefreshSnapshot {
	if r == nil {
		return RefreshSnapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return RefreshSnapshot{
		Cycles:         r.refresh.cycles,
		CycleErrors:    r.refresh.cycleErrors,
		ScoreChanges:   r.refresh.scoreChanges,
		LastInterval:   r.refresh.lastInterval,
		Stops:          r.refresh.stops,
		SnapshotErrors: r.refresh.snapshotErrs,
	}
}

func (r *Recorder) withStats(provider string, fn func(*providerStats)) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	fn(stats)
}

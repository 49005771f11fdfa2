package schedule

import (
	"sync"
	"time"
)

// Timer holds at most one pending refresh. Arming it always cancels the
// previous pending timer first.
type Timer struct {
	mu       sync.Mutex
	timer    *time.Timer
	deadline time.Time
	now      func() time.Time
}

// NewTimer returns an idle Timer.
func NewTimer() *Timer {
	return &Timer{now: time.Now}
}

// Reset cancels any pending timer and arms a new one firing after d.
func (t *Timer) Reset(d time.Duration) <-chan time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopLocked()
	t.timer = time.NewTimer(d)
	t.deadline = t.now().Add(d)
	return t.timer.C
}

// Stop cancels the pending timer, if any. It reports whether a timer was pending.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopLocked()
}

// Pending reports whether a timer is armed and when it fires.
func (t *Timer) Pending() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer == nil {
		return time.Time{}, false
	}
	return t.deadline, true
}

func (t *Timer) stopLocked() bool {
	if t.timer == nil {
		return false
	}
	stopped := t.timer.Stop()
	t.timer = nil
	t.deadline = time.Time{}
	return stopped
}

package poller

import (
	"time"

	domaingames "github.com/preston-bernstein/hockey-pool-service/internal/domain/games"
	"github.com/preston-bernstein/hockey-pool-service/internal/metrics"
	"github.com/preston-bernstein/hockey-pool-service/internal/schedule"
)

// Test hooks for the external poller_test package, which cannot reach
// unexported fields but must live outside package poller to import testutil.

func (p *Poller) SetNow(now func() time.Time) { p.now = now }

func (p *Poller) SetNewID(newID func() string) { p.newID = newID }

func (p *Poller) Metrics() *metrics.Recorder { return p.metrics }

func (p *Poller) Prev() []domaingames.Game { return p.prev }

func (p *Poller) Timer() *schedule.Timer { return p.timer }

package server

import (
	"context"

	"github.com/preston-bernstein/hockey-pool-service/internal/poller"
)

// Poller defines the poller behavior the server drives.
type Poller interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	Status() poller.Status
	Trigger() bool
}

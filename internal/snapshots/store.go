package snapshots

import (
	"context"
	"errors"
)

// Keys persisted between runs. Both are overwritten wholesale on every save.
const (
	KeySchedule    = "schedule"
	KeyLastUpdated = "last_updated"
)

// ErrNotConfigured is returned by methods called on a nil store.
var ErrNotConfigured = errors.New("snapshot store not configured")

// Store is a small key/value persistence boundary. Get reports ok=false for
// a key that has never been written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

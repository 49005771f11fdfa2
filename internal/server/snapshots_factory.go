package server

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/preston-bernstein/hockey-pool-service/internal/config"
	"github.com/preston-bernstein/hockey-pool-service/internal/snapshots"
)

const sqliteFile = "hockey-pool.db"

// buildSnapshotStore opens the configured backend. "none" keeps state in
// memory only, so nothing survives a restart.
func buildSnapshotStore(ctx context.Context, cfg config.SnapshotConfig) (snapshots.Store, error) {
	switch cfg.Backend {
	case "fs", "":
		return snapshots.NewFSStore(cfg.Path), nil
	case "sqlite":
		return snapshots.OpenSQLite(filepath.Join(cfg.Path, sqliteFile))
	case "redis":
		return snapshots.NewRedisStore(ctx, cfg.RedisAddr)
	case "none":
		return snapshots.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown snapshot backend %q", cfg.Backend)
	}
}

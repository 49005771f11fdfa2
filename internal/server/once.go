package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/preston-bernstein/hockey-pool-service/internal/config"
	"github.com/preston-bernstein/hockey-pool-service/internal/logging"
	"github.com/preston-bernstein/hockey-pool-service/internal/metrics"
	"github.com/preston-bernstein/hockey-pool-service/internal/render"
)

// RunOnce performs a single fetch cycle, persists it and prints the schedule
// and standings tables to out.
func RunOnce(ctx context.Context, cfg config.Config, logger *slog.Logger, out io.Writer) error {
	pl, err := buildPipeline(ctx, cfg, logger, metrics.NewRecorder(), render.NewText(out))
	if err != nil {
		return fmt.Errorf("once: %w", err)
	}
	defer func() {
		if err := pl.store.Close(); err != nil {
			logging.Warn(logger, "snapshot store close failed", "error", err)
		}
	}()

	if err := pl.poller.RunOnce(ctx); err != nil {
		return fmt.Errorf("once: %w", err)
	}
	return nil
}

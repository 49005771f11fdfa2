package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/hockey-pool-service/internal/config"
	"github.com/preston-bernstein/hockey-pool-service/internal/logging"
	"github.com/preston-bernstein/hockey-pool-service/internal/server"
)

const serviceName = "hockey-pool-service"

var (
	version = "dev"
	commit  = "none"
)

type rootOptions struct {
	provider string
	backend  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:          "hockey-pool",
		Short:        "Hockey schedule and fantasy pool standings service",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.provider, "provider", "", "override PROVIDER (hockeylive or fixture)")
	root.PersistentFlags().StringVar(&opts.backend, "snapshots", "", "override SNAPSHOT_BACKEND (fs, sqlite, redis or none)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the refresh loop and HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "once",
		Short: "Run one refresh, persist it and print the tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnce(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "hockey-pool %s (commit: %s)\n", version, commit)
		},
	})
	return root
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if opts.provider != "" {
		cfg.Provider = strings.ToLower(opts.provider)
	}
	if opts.backend != "" {
		cfg.Snapshots.Backend = strings.ToLower(opts.backend)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config, out io.Writer) *slog.Logger {
	return logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: serviceName,
		Version: version,
		Output:  out,
	})
}

func runServe(parent context.Context, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stdout)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	srv.Run(ctx, stop)
	return nil
}

// runOnce logs to errOut so out carries only the rendered tables.
func runOnce(ctx context.Context, opts *rootOptions, out, errOut io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return server.RunOnce(ctx, cfg, newLogger(cfg, errOut), out)
}

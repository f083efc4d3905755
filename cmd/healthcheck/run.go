package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	healthcheck "github.com/nomaanakhan/healthCheckScript"
	"github.com/nomaanakhan/healthCheckScript/config"
	"github.com/nomaanakhan/healthCheckScript/internal/logging"
)

// runCmd starts the probing loop.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start probing the endpoint catalog",
	Long: `Start probing the endpoint catalog in fixed-length cycles.

Every cycle probes each endpoint once (with bounded concurrency), prints
one availability line per domain, then sleeps out the remainder of the
cycle. Counts accumulate for the lifetime of the process.

The process runs until interrupted (Ctrl+C) or it receives SIGTERM. On
interrupt, probes already in flight are allowed to finish before exit.

Example:
  healthcheck run -f endpoints.yaml
  healthcheck run -f endpoints.yaml -t 5 --cycle-length 15s -v
  healthcheck run -f endpoints.yaml --listen :8080`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("file", "f", "", "path to YAML file with endpoints (required)")
	runCmd.Flags().IntP("threads", "t", 10, "maximum number of concurrent probes")
	runCmd.Flags().Duration("cycle-length", 15*time.Second, "time between cycle starts")
	runCmd.Flags().BoolP("colorize", "c", true, "colorize the availability report")
	runCmd.Flags().BoolP("verbose", "v", false, "log per-probe and per-cycle diagnostics")
	runCmd.Flags().String("listen", "", "serve the read-only status API on this address (off when empty)")
	runCmd.Flags().String("log-dir", "", "also write JSON logs to a rotating file in this directory")
	_ = runCmd.MarkFlagRequired("file")
}

func runRun(cmd *cobra.Command, args []string) error {
	file, _ := cmd.Flags().GetString("file")
	threads, _ := cmd.Flags().GetInt("threads")
	cycleLength, _ := cmd.Flags().GetDuration("cycle-length")
	colorize, _ := cmd.Flags().GetBool("colorize")
	verbose, _ := cmd.Flags().GetBool("verbose")
	listen, _ := cmd.Flags().GetString("listen")
	logDir, _ := cmd.Flags().GetString("log-dir")

	logger, err := logging.NewLogger(verbose, logDir)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfgs, err := config.Load(file)
	if err != nil {
		return fmt.Errorf("failed to load endpoints: %w", err)
	}

	endpoints, err := config.BuildEndpoints(cfgs)
	if err != nil {
		return fmt.Errorf("failed to build endpoints: %w", err)
	}

	logger.Info("catalog loaded",
		zap.String("file", file),
		zap.Int("endpoints", len(endpoints)),
	)

	opts := []healthcheck.Option{
		healthcheck.WithEndpoints(endpoints...),
		healthcheck.WithMaxThreads(threads),
		healthcheck.WithCycleLength(cycleLength),
		healthcheck.WithColorize(colorize),
		healthcheck.WithVerbose(verbose),
		healthcheck.WithLogger(logger),
	}
	if listen != "" {
		opts = append(opts, healthcheck.WithListenAddr(listen))
	}

	m, err := healthcheck.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create monitor: %w", err)
	}

	// cancel on SIGINT/SIGTERM; in-flight probes drain before exit
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := m.Start(ctx); err != nil {
		return fmt.Errorf("monitor error: %w", err)
	}
	return nil
}

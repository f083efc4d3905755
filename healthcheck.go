package healthcheck

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/nomaanakhan/healthCheckScript/internal/httpapi"
	"github.com/nomaanakhan/healthCheckScript/internal/probe"
	"github.com/nomaanakhan/healthCheckScript/internal/report"
	"github.com/nomaanakhan/healthCheckScript/internal/scheduler"
	"github.com/nomaanakhan/healthCheckScript/internal/stats"
)

const (
	defaultMaxThreads  = 10
	defaultCycleLength = 15 * time.Second
)

// Monitor is the main orchestrator for cyclic endpoint probing.
//
// Monitor wires the probe executor, the bounded-concurrency dispatcher, the
// cumulative stats registry, and the cycle scheduler together, and renders
// an availability report after every cycle. It is created with [New] using
// functional options and driven with [Monitor.Start].
//
// The caller controls the lifecycle via the context passed to Start; cancel
// it to trigger graceful shutdown. Probes already in flight are allowed to
// finish and their results are preserved in the final counts.
type Monitor struct {
	endpoints   []Endpoint
	maxThreads  int
	cycleLength time.Duration
	listenAddr  string
	logger      *zap.Logger
	reporter    *report.Reporter
	registry    *stats.Registry
}

// New creates a [Monitor] with the given options.
//
// At least one endpoint must be configured via [WithEndpoint] or
// [WithEndpoints]. Other options have defaults: 10 max threads, a 15 second
// cycle length, report on stdout, no color, no status API, and a no-op
// logger.
func New(opts ...Option) (*Monitor, error) {
	cfg := &monitorConfig{
		maxThreads:  defaultMaxThreads,
		cycleLength: defaultCycleLength,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if len(cfg.endpoints) == 0 {
		return nil, errors.New("at least one endpoint is required")
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := cfg.out
	if out == nil {
		out = os.Stdout
	}

	return &Monitor{
		endpoints:   cfg.endpoints,
		maxThreads:  cfg.maxThreads,
		cycleLength: cfg.cycleLength,
		listenAddr:  cfg.listenAddr,
		logger:      logger,
		reporter:    report.NewReporter(out, cfg.colorize, cfg.verbose),
		registry:    stats.NewRegistry(),
	}, nil
}

// Start runs probe cycles until the context is cancelled.
//
// Start blocks. Each cycle probes every endpoint in the catalog with at
// most the configured number of concurrent requests, then writes one
// availability line per domain with lifetime-cumulative percentages.
//
// Cancellation takes effect at the next suspension point (waiting out a
// round or sleeping between rounds). Returns nil on graceful shutdown;
// returns an error only if the optional status API fails to start.
func (m *Monitor) Start(ctx context.Context) error {
	m.logger.Info("healthcheck starting",
		zap.Int("endpoints", len(m.endpoints)),
		zap.Int("max_threads", m.maxThreads),
		zap.Duration("cycle_length", m.cycleLength),
	)

	if ctx.Err() != nil {
		return nil
	}

	targets := m.toTargets()

	if m.listenAddr != "" {
		api := httpapi.NewServer(m.registry, targets, m.listenAddr, m.logger)
		if err := api.Start(ctx); err != nil {
			return fmt.Errorf("failed to start status api: %w", err)
		}
	}

	prober := probe.NewProber(m.registry, m.logger)
	dispatcher := scheduler.NewDispatcher(prober, m.maxThreads, m.logger)
	sched := scheduler.NewScheduler(dispatcher, m.registry, targets, m.cycleLength, m.reportCycle, m.logger)

	if err := sched.Run(ctx); err != nil {
		return err
	}

	m.logger.Info("healthcheck stopped")
	return nil
}

// Snapshot returns the current cumulative per-domain stats.
func (m *Monitor) Snapshot() map[string]stats.DomainStats {
	return m.registry.Snapshot()
}

// Endpoints returns a copy of the configured catalog.
func (m *Monitor) Endpoints() []Endpoint {
	cp := make([]Endpoint, len(m.endpoints))
	copy(cp, m.endpoints)
	return cp
}

// reportCycle renders the availability report for one completed cycle.
func (m *Monitor) reportCycle(cycle int, snapshot map[string]stats.DomainStats) {
	m.reporter.Report(snapshot)
}

// toTargets converts the catalog to the probe-internal representation,
// resolving each endpoint's domain once up front.
func (m *Monitor) toTargets() []probe.Target {
	targets := make([]probe.Target, len(m.endpoints))
	for i, ep := range m.endpoints {
		targets[i] = probe.Target{
			Name:    ep.Name(),
			URL:     ep.URL(),
			Method:  ep.Method(),
			Headers: ep.Headers(),
			Body:    ep.Body(),
			Domain:  ep.Domain(),
		}
	}
	return targets
}

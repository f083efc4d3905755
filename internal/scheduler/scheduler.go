package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nomaanakhan/healthCheckScript/internal/probe"
	"github.com/nomaanakhan/healthCheckScript/internal/stats"
)

// ReportFunc receives the cycle number and a cumulative stats snapshot after
// every completed round.
type ReportFunc func(cycle int, snapshot map[string]stats.DomainStats)

// Scheduler runs rounds of probes on a fixed cadence.
//
// Each cycle dispatches the full catalog through the [Dispatcher], reports
// the cumulative availability snapshot, and then sleeps long enough to keep
// cycles spaced cycleLength apart. A round that overruns the target length
// is followed immediately by the next one; rounds are never skipped and
// never overlap.
type Scheduler struct {
	dispatcher  *Dispatcher
	registry    *stats.Registry
	targets     []probe.Target
	cycleLength time.Duration
	report      ReportFunc
	logger      *zap.Logger

	cycle int
}

// NewScheduler creates a [Scheduler] over the given catalog.
//
// report may be nil, in which case completed rounds are not reported.
func NewScheduler(d *Dispatcher, registry *stats.Registry, targets []probe.Target, cycleLength time.Duration, report ReportFunc, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		dispatcher:  d,
		registry:    registry,
		targets:     targets,
		cycleLength: cycleLength,
		report:      report,
		logger:      logger,
	}
}

// Cycle returns the number of cycles started so far.
func (s *Scheduler) Cycle() int {
	return s.cycle
}

// Run executes cycles until ctx is cancelled.
//
// Run blocks. There is no upper bound on cycle count. Cancellation is
// observed while waiting for a round to complete and while sleeping between
// rounds; probes already dispatched drain before Run returns, so their
// effect on the registry is preserved. Run always returns nil — a stop
// requested by the caller is not an error.
func (s *Scheduler) Run(ctx context.Context) error {
	firstCycleStart := time.Now()

	for {
		if ctx.Err() != nil {
			return nil
		}

		s.cycle++
		start := time.Now()
		s.logger.Debug("cycle started",
			zap.Int("cycle", s.cycle),
			zap.Int64("offset_seconds", int64(start.Sub(firstCycleStart).Seconds())),
			zap.Int("endpoints", len(s.targets)),
		)

		outcomes := s.dispatcher.Run(ctx, s.targets)

		// a cancelled round still drained its in-flight probes; exit
		// without reporting the partial cycle
		if ctx.Err() != nil {
			return nil
		}

		if s.report != nil {
			s.report(s.cycle, s.registry.Snapshot())
		}

		sleepFor := sleepDuration(s.cycleLength, time.Since(start))
		s.logger.Debug("cycle complete",
			zap.Int("cycle", s.cycle),
			zap.Int("probes", len(outcomes)),
			zap.Duration("elapsed", time.Since(start)),
			zap.Duration("sleep", sleepFor),
		)

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(sleepFor):
		}
	}
}

// sleepDuration clamps the remaining cycle time at zero so an overrunning
// round starts the next one immediately instead of sleeping negatively.
func sleepDuration(cycleLength, elapsed time.Duration) time.Duration {
	if remaining := cycleLength - elapsed; remaining > 0 {
		return remaining
	}
	return 0
}

package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nomaanakhan/healthCheckScript/internal/probe"
)

// Prober executes a single health check probe.
//
// *probe.Prober satisfies this; tests substitute fakes.
type Prober interface {
	Check(ctx context.Context, t probe.Target) probe.Outcome
}

// Dispatcher fans one round of probes out over a bounded worker pool.
//
// Each call to [Dispatcher.Run] executes exactly one probe per target with
// at most maxWorkers in flight at once, and returns only when every probe
// of the round has finished. A failure inside one probe never aborts or
// skips its siblings.
type Dispatcher struct {
	prober     Prober
	maxWorkers int
	logger     *zap.Logger
}

// NewDispatcher creates a [Dispatcher] with the given concurrency bound.
func NewDispatcher(p Prober, maxWorkers int, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		prober:     p,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

// Run executes one probe per target and returns the completed outcomes.
//
// Run blocks until the slowest outstanding probe finishes; it imposes no
// per-round deadline. If ctx is cancelled mid-round, workers pick up no
// further targets, but probes already in flight drain normally and their
// outcomes (and registry effects) are preserved. The returned slice holds
// one outcome per completed probe, in completion order.
func (d *Dispatcher) Run(ctx context.Context, targets []probe.Target) []probe.Outcome {
	jobs := make(chan probe.Target, len(targets))
	results := make(chan probe.Outcome, len(targets))

	// a started probe is allowed to finish even after cancellation, so the
	// request context is detached from ctx
	probeCtx := context.WithoutCancel(ctx)

	var wg sync.WaitGroup
	for i := 0; i < d.maxWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				if ctx.Err() != nil {
					return
				}
				results <- d.checkSafe(probeCtx, t)
			}
		}()
	}

	for _, t := range targets {
		jobs <- t
	}
	close(jobs)

	wg.Wait()
	close(results)

	outcomes := make([]probe.Outcome, 0, len(targets))
	for o := range results {
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// checkSafe runs one probe with panic recovery.
//
// If a probe panics, the stack trace is logged under a correlation ID and a
// DOWN outcome carrying that ID is returned, so one misbehaving probe cannot
// take down the round.
func (d *Dispatcher) checkSafe(ctx context.Context, t probe.Target) (out probe.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			d.logger.Error("probe panic",
				zap.String("correlation_id", correlationID),
				zap.String("endpoint", t.Name),
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)
			out = probe.Outcome{
				Name:   t.Name,
				Domain: t.Domain,
				Up:     false,
				Err:    fmt.Errorf("probe panic (correlation_id: %s)", correlationID),
			}
		}
	}()
	return d.prober.Check(ctx, t)
}

package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nomaanakhan/healthCheckScript/internal/probe"
	"github.com/nomaanakhan/healthCheckScript/internal/stats"
)

func TestSleepDuration(t *testing.T) {
	tests := []struct {
		name        string
		cycleLength time.Duration
		elapsed     time.Duration
		want        time.Duration
	}{
		{"fast round", 15 * time.Second, 2 * time.Second, 13 * time.Second},
		{"exact round", 15 * time.Second, 15 * time.Second, 0},
		{"overrun clamps to zero", 15 * time.Second, 20 * time.Second, 0},
		{"instant round", 15 * time.Second, 0, 15 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sleepDuration(tt.cycleLength, tt.elapsed); got != tt.want {
				t.Errorf("sleepDuration(%v, %v) = %v, want %v", tt.cycleLength, tt.elapsed, got, tt.want)
			}
		})
	}
}

// countingProber increments the registry the way the real prober does, so
// scheduler tests observe realistic cumulative aggregation.
func countingProber(registry *stats.Registry, up bool) proberFunc {
	return func(ctx context.Context, t probe.Target) probe.Outcome {
		registry.IncrementTotal(t.Domain)
		if up {
			registry.IncrementSuccess(t.Domain)
		}
		return probe.Outcome{Name: t.Name, Domain: t.Domain, Up: up}
	}
}

func TestScheduler_SingleCycleAggregation(t *testing.T) {
	registry := stats.NewRegistry()
	d := NewDispatcher(countingProber(registry, true), 3, zap.NewNop())

	catalog := []probe.Target{
		{Name: "a1", URL: "http://a.example.com/one", Domain: "a.example.com"},
		{Name: "a2", URL: "http://a.example.com/two", Domain: "a.example.com"},
		{Name: "b1", URL: "http://b.example.com/one", Domain: "b.example.com"},
	}

	var reported map[string]stats.DomainStats
	ctx, cancel := context.WithCancel(context.Background())
	report := func(cycle int, snapshot map[string]stats.DomainStats) {
		reported = snapshot
		cancel() // stop after the first cycle
	}

	s := NewScheduler(d, registry, catalog, time.Hour, report, zap.NewNop())
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	if got := reported["a.example.com"]; got.Total != 2 || got.Success != 2 {
		t.Errorf("a.example.com = %+v, want Total=2 Success=2", got)
	}
	if got := reported["a.example.com"]; got.Availability() != 100 {
		t.Errorf("a.example.com availability = %d%%, want 100%%", got.Availability())
	}
	if got := reported["b.example.com"]; got.Total != 1 || got.Success != 1 {
		t.Errorf("b.example.com = %+v, want Total=1 Success=1", got)
	}
}

func TestScheduler_CountsAccumulateAcrossCycles(t *testing.T) {
	registry := stats.NewRegistry()
	d := NewDispatcher(countingProber(registry, true), 2, zap.NewNop())

	catalog := []probe.Target{
		{Name: "a", URL: "http://a.example.com", Domain: "a.example.com"},
		{Name: "b", URL: "http://b.example.com", Domain: "b.example.com"},
	}

	var cycles int32
	ctx, cancel := context.WithCancel(context.Background())
	report := func(cycle int, snapshot map[string]stats.DomainStats) {
		if atomic.AddInt32(&cycles, 1) == 3 {
			cancel()
		}
	}

	s := NewScheduler(d, registry, catalog, time.Millisecond, report, zap.NewNop())
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	snap := registry.Snapshot()
	for _, domain := range []string{"a.example.com", "b.example.com"} {
		if got := snap[domain]; got.Total != 3 || got.Success != 3 {
			t.Errorf("%s = %+v, want Total=3 Success=3 after 3 cycles", domain, got)
		}
	}
	if s.Cycle() != 3 {
		t.Errorf("Cycle() = %d, want 3", s.Cycle())
	}
}

func TestScheduler_ReportsCumulativeNotPerCycle(t *testing.T) {
	registry := stats.NewRegistry()
	d := NewDispatcher(countingProber(registry, false), 1, zap.NewNop())

	catalog := []probe.Target{
		{Name: "a", URL: "http://a.example.com", Domain: "a.example.com"},
	}

	var lastTotal int64
	var cycles int
	ctx, cancel := context.WithCancel(context.Background())
	report := func(cycle int, snapshot map[string]stats.DomainStats) {
		cycles++
		lastTotal = snapshot["a.example.com"].Total
		if cycles == 2 {
			cancel()
		}
	}

	s := NewScheduler(d, registry, catalog, time.Millisecond, report, zap.NewNop())
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	// second report must include the first cycle's probe as well
	if lastTotal != 2 {
		t.Errorf("total in second report = %d, want 2", lastTotal)
	}
}

func TestScheduler_CancelledBeforeStart(t *testing.T) {
	registry := stats.NewRegistry()
	d := NewDispatcher(countingProber(registry, true), 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScheduler(d, registry, targets("a"), time.Second, nil, zap.NewNop())
	if err := s.Run(ctx); err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}

	if s.Cycle() != 0 {
		t.Errorf("Cycle() = %d, want 0 for a pre-cancelled context", s.Cycle())
	}
	if len(registry.Snapshot()) != 0 {
		t.Error("probes ran despite pre-cancelled context")
	}
}

// TestScheduler_CancelDuringSleep verifies the sleep between rounds is a
// cancellation point: Run returns promptly instead of sleeping out a long cycle.
func TestScheduler_CancelDuringSleep(t *testing.T) {
	registry := stats.NewRegistry()
	d := NewDispatcher(countingProber(registry, true), 1, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	report := func(cycle int, snapshot map[string]stats.DomainStats) {
		// cancel while the scheduler is about to enter its sleep
		go cancel()
	}

	s := NewScheduler(d, registry, targets("a"), time.Hour, report, zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return; sleep is not a cancellation point")
	}
}

package stats

import (
	"math"
	"sync"
)

// DomainStats holds the lifetime probe counters for a single domain.
//
// Success never exceeds Total: every probe increments Total before it runs,
// and Success only on an UP classification.
type DomainStats struct {
	// Success is the number of probes classified UP.
	Success int64

	// Total is the number of probes attempted, including ones that failed
	// before receiving a response.
	Total int64
}

// Availability returns the success ratio as a rounded percentage.
// Returns 0 when no probes have been recorded.
func (d DomainStats) Availability() int {
	if d.Total == 0 {
		return 0
	}
	return int(math.Round(float64(d.Success) / float64(d.Total) * 100))
}

// Registry is a process-wide, thread-safe map of domain to [DomainStats].
//
// Registry is shared by every concurrently running probe. A single mutex
// guards the whole map; it is held only for the duration of an individual
// increment or snapshot copy, so contention stays proportional to the
// endpoint count.
type Registry struct {
	mu      sync.Mutex
	domains map[string]DomainStats
}

// NewRegistry creates an empty [Registry] ready for use.
func NewRegistry() *Registry {
	return &Registry{
		domains: make(map[string]DomainStats),
	}
}

// IncrementTotal records one attempted probe against the domain.
//
// The domain's entry is created lazily on first use. A probe that never
// completes still counts toward the total, so callers increment before
// issuing the request.
func (r *Registry) IncrementTotal(domain string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := r.domains[domain]
	d.Total++
	r.domains[domain] = d
}

// IncrementSuccess records one UP-classified probe against the domain.
func (r *Registry) IncrementSuccess(domain string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := r.domains[domain]
	d.Success++
	r.domains[domain] = d
}

// Snapshot returns a stable copy of all current (domain, stats) pairs.
//
// The returned map is independent of the registry; concurrent increments
// after Snapshot returns do not affect it, and no torn counter pair is ever
// observed.
func (r *Registry) Snapshot() map[string]DomainStats {
	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := make(map[string]DomainStats, len(r.domains))
	for domain, d := range r.domains {
		snapshot[domain] = d
	}
	return snapshot
}

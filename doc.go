// Package healthcheck provides a cyclic, concurrent availability checker
// for HTTP endpoints.
//
// A [Monitor] repeatedly probes a catalog of endpoints on a fixed cadence
// and reports per-domain availability — the cumulative ratio of UP probes
// to attempted probes — after every cycle. A probe is UP when its response
// status is in [200, 300) and its latency is under 500ms; everything else,
// including transport failures, is DOWN.
//
// # Quick Start
//
// Build endpoints, create a monitor, and run it until interrupted:
//
//	ep, _ := healthcheck.NewEndpoint("https://api.example.com/health",
//	    healthcheck.WithName("API"),
//	)
//	m, _ := healthcheck.New(healthcheck.WithEndpoints(ep))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	m.Start(ctx) // blocks until context is cancelled
//
// Cycles are strictly sequential: a new round never starts before every
// probe of the previous round has finished, and each round is followed by a
// sleep that pads the cycle out to the configured length. Counters are
// cumulative for the life of the process.
//
// The cmd/healthcheck CLI wraps this package with a YAML endpoint catalog
// and command-line flags.
package healthcheck

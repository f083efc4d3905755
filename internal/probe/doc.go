// Package probe performs individual HTTP health checks.
//
// This package is internal to healthcheck. Each [Prober.Check] call issues
// exactly one HTTP request for one target, measures wall-clock latency, and
// classifies the outcome as UP or DOWN. The classification rule is fixed:
// UP means a status code in [200, 300) with latency strictly under 500ms.
//
// The main components are:
//
//   - [Prober]: Executes one probe and records it in the stats registry
//   - [Target]: Resolved endpoint ready to be probed
//   - [Outcome]: Value describing a single probe's result
//
// The HTTP client intentionally carries no timeout: this mirrors the
// long-standing behavior of the tool, where a hung endpoint stalls the
// current cycle rather than being cut off. Changing that would change
// observable cycle timing, so it is preserved and documented here.
package probe

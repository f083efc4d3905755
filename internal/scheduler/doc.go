// Package scheduler drives the cyclic probing of the endpoint catalog.
//
// This package is internal to healthcheck and contains the two coordinating
// pieces of the engine:
//
//   - [Dispatcher]: Bounded worker-pool fan-out running one probe per
//     endpoint per round and waiting for all of them to finish
//   - [Scheduler]: The sequential cycle loop — dispatch a round, report the
//     cumulative snapshot, then sleep out the remainder of the cycle
//
// Rounds never overlap: round n+1 does not start until every probe of
// round n has completed. Cancellation is observed at the two suspension
// points (waiting for a round and sleeping between rounds); probes already
// in flight are allowed to drain so their results are preserved.
package scheduler

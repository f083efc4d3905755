// Package stats provides cumulative availability accounting per domain.
//
// This package is internal to healthcheck and holds the single shared piece
// of mutable state in the system: a mapping from domain (the URL authority
// an endpoint belongs to) to its lifetime success and total probe counts.
//
// The main components are:
//
//   - [Registry]: Thread-safe counter map shared by all concurrent probes
//   - [DomainStats]: Success/total counter pair with availability percentage
//
// Counters only grow. They are never reset or deleted for the life of the
// process, so every snapshot reflects all probes since startup rather than
// a single cycle.
package stats

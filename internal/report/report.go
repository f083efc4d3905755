// Package report renders availability reports on the console.
//
// This package is internal to healthcheck. It is a thin formatting layer
// with no state of its own: each call renders one cumulative snapshot from
// the stats registry as one line per domain.
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/nomaanakhan/healthCheckScript/internal/stats"
)

// ANSI escape sequences used when colorized output is enabled.
const (
	colorRed   = "\033[91m"
	colorReset = "\033[0m"
)

// Reporter writes per-domain availability lines to a writer.
//
// Output format is one line per known domain:
//
//	<domain> has <percentage>% availability
//
// Domains are sorted so output is stable across cycles. When colorize is on,
// lines are wrapped in ANSI red; when verbose is on, each report is preceded
// by a heading.
type Reporter struct {
	w        io.Writer
	colorize bool
	verbose  bool
}

// NewReporter creates a [Reporter] writing to w.
func NewReporter(w io.Writer, colorize, verbose bool) *Reporter {
	return &Reporter{
		w:        w,
		colorize: colorize,
		verbose:  verbose,
	}
}

// Report renders one availability report for the given snapshot.
func (r *Reporter) Report(snapshot map[string]stats.DomainStats) {
	if r.verbose {
		fmt.Fprintln(r.w, "\nAvailability Report:")
	}

	domains := make([]string, 0, len(snapshot))
	for domain := range snapshot {
		domains = append(domains, domain)
	}
	sort.Strings(domains)

	for _, domain := range domains {
		line := fmt.Sprintf("%s has %d%% availability", domain, snapshot[domain].Availability())
		if r.colorize {
			fmt.Fprintf(r.w, "%s%s%s\n", colorRed, line, colorReset)
		} else {
			fmt.Fprintln(r.w, line)
		}
	}
}

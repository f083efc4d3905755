package healthcheck

import (
	"errors"
	"io"
	"time"

	"go.uber.org/zap"
)

// monitorConfig holds mutable state during Monitor construction.
type monitorConfig struct {
	endpoints   []Endpoint
	maxThreads  int
	cycleLength time.Duration
	colorize    bool
	verbose     bool
	listenAddr  string
	logger      *zap.Logger
	out         io.Writer
}

// Option configures a [Monitor] during construction.
//
// Options return an error if validation fails. Built-in options:
// [WithEndpoint], [WithEndpoints], [WithMaxThreads], [WithCycleLength],
// [WithColorize], [WithVerbose], [WithListenAddr], [WithLogger],
// [WithOutput].
type Option func(*monitorConfig) error

// WithEndpoint adds a single [Endpoint] to the catalog.
// Can be called multiple times. At least one endpoint is required.
func WithEndpoint(e Endpoint) Option {
	return func(cfg *monitorConfig) error {
		cfg.endpoints = append(cfg.endpoints, e)
		return nil
	}
}

// WithEndpoints adds multiple [Endpoint] values to the catalog.
func WithEndpoints(endpoints ...Endpoint) Option {
	return func(cfg *monitorConfig) error {
		cfg.endpoints = append(cfg.endpoints, endpoints...)
		return nil
	}
}

// WithMaxThreads bounds how many probes run concurrently within a cycle.
// Defaults to 10. Returns an error for non-positive values.
func WithMaxThreads(n int) Option {
	return func(cfg *monitorConfig) error {
		if n <= 0 {
			return errors.New("max threads must be positive")
		}
		cfg.maxThreads = n
		return nil
	}
}

// WithCycleLength sets the target spacing between cycle starts.
//
// A round that finishes early is padded with sleep; a round that overruns
// is followed immediately by the next one. Defaults to 15 seconds.
// Returns an error for non-positive durations.
func WithCycleLength(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("cycle length must be positive")
		}
		cfg.cycleLength = d
		return nil
	}
}

// WithColorize enables ANSI color in the availability report.
func WithColorize(colorize bool) Option {
	return func(cfg *monitorConfig) error {
		cfg.colorize = colorize
		return nil
	}
}

// WithVerbose enables the report heading and marks the run as verbose.
//
// Per-probe and per-cycle diagnostics are logged at debug level, so the
// supplied logger must also be configured at debug level for verbose output
// to appear.
func WithVerbose(verbose bool) Option {
	return func(cfg *monitorConfig) error {
		cfg.verbose = verbose
		return nil
	}
}

// WithListenAddr enables the read-only status API on the given address
// (for example ":8080"). The API is off when no address is configured.
func WithListenAddr(addr string) Option {
	return func(cfg *monitorConfig) error {
		cfg.listenAddr = addr
		return nil
	}
}

// WithLogger sets the [zap.Logger] used for diagnostics.
// Defaults to a no-op logger, which suits library embedding.
// Returns an error if the logger is nil.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *monitorConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithOutput sets the writer the availability report is rendered to.
// Defaults to os.Stdout. Returns an error if the writer is nil.
func WithOutput(w io.Writer) Option {
	return func(cfg *monitorConfig) error {
		if w == nil {
			return errors.New("output writer cannot be nil")
		}
		cfg.out = w
		return nil
	}
}

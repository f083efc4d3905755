package probe

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nomaanakhan/healthCheckScript/internal/stats"
)

// latencyThreshold is the upper bound for an UP classification. A response
// that takes exactly this long is DOWN.
const latencyThreshold = 500 * time.Millisecond

// connection pooling limits to prevent resource exhaustion when probing many endpoints
const (
	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 10
	defaultIdleConnTimeout     = 60 * time.Second
)

// maxDrainBytes caps how much of a response body is read before the
// connection is released back to the pool.
const maxDrainBytes = 1 << 20 // 1MB

// Target is a resolved endpoint ready to be probed.
//
// Target is the probe-internal representation of an endpoint, decoupled from
// the public healthcheck.Endpoint type. Domain is precomputed from the URL's
// authority; endpoints whose URLs fail to parse share the empty domain.
type Target struct {
	// Name is the display name of the endpoint.
	Name string

	// URL is the target URL to request.
	URL string

	// Method is the HTTP method. Empty defaults to GET.
	Method string

	// Headers contains custom HTTP headers sent with the request.
	Headers map[string]string

	// Body is the request payload. Empty means no body is sent.
	Body string

	// Domain is the URL authority (host and optional port) used as the
	// aggregation key.
	Domain string
}

// Reason explains why a probe was classified DOWN.
type Reason string

const (
	// ReasonNone marks an UP outcome.
	ReasonNone Reason = ""

	// ReasonStatusRange means the response status was outside [200, 300).
	ReasonStatusRange Reason = "status_out_of_range"

	// ReasonLatency means the response arrived at or above the latency threshold.
	ReasonLatency Reason = "latency_too_high"

	// ReasonTransport means the request failed before a response was received
	// (connection refused, DNS failure, malformed request, and so on).
	ReasonTransport Reason = "transport_error"
)

// Outcome holds the result of one probe.
//
// Outcome is transient: once the prober has recorded the probe in the stats
// registry and the dispatcher has logged it, nothing retains it.
type Outcome struct {
	// Name is the display name of the probed endpoint.
	Name string

	// Domain is the aggregation key the probe was counted under.
	Domain string

	// Up reports whether the probe was classified UP.
	Up bool

	// StatusCode is the HTTP status code. Zero on transport failure.
	StatusCode int

	// Latency is the measured wall-clock request time. Zero on failures
	// that occur before the request is issued.
	Latency time.Duration

	// Reason explains a DOWN classification. Empty when Up.
	Reason Reason

	// Err is the underlying error for transport failures, nil otherwise.
	Err error
}

// Classify applies the UP/DOWN rule to a completed response.
//
// UP requires a status code in [200, 300) and latency strictly below 500ms.
// The returned reason distinguishes the two DOWN causes for diagnostics.
func Classify(statusCode int, latency time.Duration) (bool, Reason) {
	if statusCode < 200 || statusCode >= 300 {
		return false, ReasonStatusRange
	}
	if latency >= latencyThreshold {
		return false, ReasonLatency
	}
	return true, ReasonNone
}

// Prober executes health check probes and records them in a [stats.Registry].
//
// Every Check increments the target domain's total count before the request
// is issued, so a request that never completes still counts as attempted.
// The success count is incremented only on an UP classification. These two
// increments are the only mutation path into the registry.
type Prober struct {
	client   *http.Client
	registry *stats.Registry
	logger   *zap.Logger
}

// NewProber creates a [Prober] recording into the given registry.
//
// The underlying client has no request timeout (see the package comment) but
// bounds its connection pool so repeated cycles over a large catalog do not
// exhaust sockets.
func NewProber(registry *stats.Registry, logger *zap.Logger) *Prober {
	return &Prober{
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
		registry: registry,
		logger:   logger,
	}
}

// Check performs one HTTP request against the target and returns its [Outcome].
//
// Transport failures are absorbed into the outcome rather than returned;
// callers never see an error escape a probe.
func (p *Prober) Check(ctx context.Context, t Target) Outcome {
	p.registry.IncrementTotal(t.Domain)

	outcome := Outcome{
		Name:   t.Name,
		Domain: t.Domain,
	}

	method := t.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if t.Body != "" {
		body = strings.NewReader(t.Body)
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, t.URL, body)
	if err != nil {
		outcome.Reason = ReasonTransport
		outcome.Err = err
		p.logDown(outcome)
		return outcome
	}
	for key, value := range t.Headers {
		req.Header.Set(key, value)
	}

	resp, err := p.client.Do(req)
	outcome.Latency = time.Since(start)
	if err != nil {
		outcome.Reason = ReasonTransport
		outcome.Err = err
		p.logDown(outcome)
		return outcome
	}
	defer func() { _ = resp.Body.Close() }()
	// drain so the connection can be reused
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	outcome.StatusCode = resp.StatusCode
	outcome.Up, outcome.Reason = Classify(resp.StatusCode, outcome.Latency)

	if outcome.Up {
		p.registry.IncrementSuccess(t.Domain)
		p.logger.Debug("endpoint up",
			zap.String("endpoint", t.Name),
			zap.Int("status", outcome.StatusCode),
			zap.Int64("latency_ms", outcome.Latency.Milliseconds()),
		)
	} else {
		p.logDown(outcome)
	}

	return outcome
}

func (p *Prober) logDown(o Outcome) {
	fields := []zap.Field{
		zap.String("endpoint", o.Name),
		zap.String("reason", string(o.Reason)),
	}
	if o.Err != nil {
		fields = append(fields, zap.Error(o.Err))
	} else {
		fields = append(fields,
			zap.Int("status", o.StatusCode),
			zap.Int64("latency_ms", o.Latency.Milliseconds()),
		)
	}
	p.logger.Debug("endpoint down", fields...)
}

package healthcheck

import (
	"errors"
	"net/url"
	"strings"
)

// DefaultEndpointName is used when an endpoint is created without a name.
const DefaultEndpointName = "Unnamed Request"

// Endpoint represents one HTTP target to probe.
//
// Endpoint is immutable after creation via [NewEndpoint]. All fields are
// private with getter methods that return copies of mutable data (maps),
// so an endpoint cannot change once the monitor holds it.
//
// Endpoints are configured with [EndpointOption] functions such as
// [WithName], [WithMethod], [WithHeaders], and [WithBody].
type Endpoint struct {
	name    string
	url     string
	method  string
	headers map[string]string
	body    string
}

// Name returns the endpoint's display name.
func (e Endpoint) Name() string {
	return e.name
}

// URL returns the endpoint's target URL as a string.
func (e Endpoint) URL() string {
	return e.url
}

// Method returns the HTTP method used for probes, normalized to upper case.
func (e Endpoint) Method() string {
	return e.method
}

// Headers returns a copy of the endpoint's custom HTTP headers.
// Returns nil if no custom headers are set.
func (e Endpoint) Headers() map[string]string {
	return copyMap(e.headers)
}

// Body returns the request payload sent with each probe.
// Empty means no body is sent.
func (e Endpoint) Body() string {
	return e.body
}

// Domain returns the aggregation key for this endpoint: the network
// authority of its URL (host and optional port, without scheme, path, or
// query). Endpoints sharing an authority share one availability bucket.
//
// If the URL cannot be parsed the domain is empty, and all such endpoints
// land in the same empty-keyed bucket. That matches how the tool has always
// grouped misconfigured endpoints and is deliberately not guarded against.
func (e Endpoint) Domain() string {
	u, err := url.Parse(e.url)
	if err != nil {
		return ""
	}
	return u.Host
}

// EndpointOption configures an [Endpoint] during construction.
type EndpointOption func(*endpointConfig) error

// endpointConfig holds mutable state during Endpoint construction.
type endpointConfig struct {
	name    string
	method  string
	headers map[string]string
	body    string
}

// WithName sets the endpoint's display name.
// Unnamed endpoints default to [DefaultEndpointName].
func WithName(name string) EndpointOption {
	return func(cfg *endpointConfig) error {
		cfg.name = name
		return nil
	}
}

// WithMethod sets the HTTP method for probes. The method is case-insensitive
// and stored upper-cased. Defaults to GET.
func WithMethod(method string) EndpointOption {
	return func(cfg *endpointConfig) error {
		if method == "" {
			return errors.New("method cannot be empty")
		}
		cfg.method = strings.ToUpper(method)
		return nil
	}
}

// WithHeaders sets custom HTTP headers sent with every probe.
// The map is copied; later mutation by the caller has no effect.
func WithHeaders(headers map[string]string) EndpointOption {
	return func(cfg *endpointConfig) error {
		cfg.headers = copyMap(headers)
		return nil
	}
}

// WithBody sets the request payload sent with every probe.
func WithBody(body string) EndpointOption {
	return func(cfg *endpointConfig) error {
		cfg.body = body
		return nil
	}
}

// NewEndpoint creates an [Endpoint] for the given URL.
//
// The URL is required; it is not otherwise validated here, because the
// domain bucketing of unparseable URLs is part of the observable behavior
// (see [Endpoint.Domain]). Options are applied in order.
//
// Example:
//
//	ep, err := healthcheck.NewEndpoint("https://api.example.com/health",
//	    healthcheck.WithName("API Health"),
//	    healthcheck.WithMethod("post"),
//	    healthcheck.WithBody(`{"check":true}`),
//	)
func NewEndpoint(rawURL string, opts ...EndpointOption) (Endpoint, error) {
	if rawURL == "" {
		return Endpoint{}, errors.New("endpoint url is required")
	}

	cfg := &endpointConfig{
		name:   DefaultEndpointName,
		method: "GET",
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return Endpoint{}, err
		}
	}

	return Endpoint{
		name:    cfg.name,
		url:     rawURL,
		method:  cfg.method,
		headers: cfg.headers,
		body:    cfg.body,
	}, nil
}

// copyMap returns a shallow copy of the map, or nil for an empty input.
func copyMap(m map[string]string) map[string]string {
	if len(m) == 0 {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}

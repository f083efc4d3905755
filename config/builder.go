package config

import (
	healthcheck "github.com/nomaanakhan/healthCheckScript"
)

// BuildEndpoints converts parsed catalog entries into [healthcheck.Endpoint]
// values ready to hand to a monitor.
func BuildEndpoints(cfgs []EndpointConfig) ([]healthcheck.Endpoint, error) {
	endpoints := make([]healthcheck.Endpoint, 0, len(cfgs))

	for _, ec := range cfgs {
		var opts []healthcheck.EndpointOption

		if ec.Name != "" {
			opts = append(opts, healthcheck.WithName(ec.Name))
		}
		if ec.Method != "" {
			opts = append(opts, healthcheck.WithMethod(ec.Method))
		}
		if len(ec.Headers) > 0 {
			opts = append(opts, healthcheck.WithHeaders(ec.Headers))
		}
		if ec.Body.String() != "" {
			opts = append(opts, healthcheck.WithBody(ec.Body.String()))
		}

		ep, err := healthcheck.NewEndpoint(ec.URL, opts...)
		if err != nil {
			return nil, err
		}
		endpoints = append(endpoints, ep)
	}

	return endpoints, nil
}

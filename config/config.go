// Package config provides YAML endpoint catalog parsing for healthcheck.
//
// The catalog file is a bare YAML list, one entry per endpoint:
//
//	- name: fetch index page
//	  url: https://example.com/
//	- name: submit payload
//	  url: https://example.com/api
//	  method: POST
//	  headers:
//	    content-type: application/json
//	  body: '{"foo": "bar"}'
//
// Only url is required. Environment variables in url and header values are
// expanded with ${VAR} or ${VAR:-default} syntax before validation.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// EndpointConfig defines a single catalog entry.
type EndpointConfig struct {
	// Name is the display name. Optional; unnamed endpoints are reported
	// as "Unnamed Request".
	Name string `yaml:"name"`

	// URL is the target URL. Required.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	URL string `yaml:"url"`

	// Method is the HTTP method. Optional, case-insensitive, defaults to GET.
	Method string `yaml:"method"`

	// Headers are custom HTTP headers sent with each probe.
	// Values support environment variable substitution.
	Headers map[string]string `yaml:"headers"`

	// Body is the request payload. A YAML scalar is sent verbatim; a
	// mapping or sequence is serialized to JSON.
	Body Body `yaml:"body"`
}

// Body holds an endpoint's request payload.
//
// The catalog schema allows either a plain string or a structured value.
// Structured values are serialized to JSON at parse time so the rest of the
// system only ever deals with a string payload.
type Body struct {
	value string
}

// String returns the payload as the string that will be sent on the wire.
// Empty means no body.
func (b Body) String() string {
	return b.value
}

// UnmarshalYAML implements yaml.Unmarshaler for Body.
func (b *Body) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		return node.Decode(&b.value)
	}

	var structured any
	if err := node.Decode(&structured); err != nil {
		return err
	}
	data, err := json.Marshal(structured)
	if err != nil {
		return fmt.Errorf("cannot serialize structured body: %w", err)
	}
	b.value = string(data)
	return nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML catalog file.
//
// Returns an error if the file cannot be read, parsed, or validated; catalog
// errors are fatal at startup and the probing engine never sees a bad
// catalog.
func Load(path string) ([]EndpointConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoint file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML catalog data.
//
// Environment variables are expanded in URL and header values. Each entry
// must have a url; anything else is optional.
func Parse(data []byte) ([]EndpointConfig, error) {
	var endpoints []EndpointConfig
	if err := yaml.Unmarshal(data, &endpoints); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(endpoints) == 0 {
		return nil, fmt.Errorf("endpoint file defines no endpoints")
	}

	for i := range endpoints {
		ep := &endpoints[i]

		if ep.URL == "" {
			return nil, fmt.Errorf("endpoints[%d] (%s): url is required", i, displayName(ep.Name))
		}
		expanded, err := expandEnvVars(ep.URL)
		if err != nil {
			return nil, fmt.Errorf("endpoints[%d] (%s): url: %w", i, displayName(ep.Name), err)
		}
		ep.URL = expanded

		for k, v := range ep.Headers {
			expanded, err := expandEnvVars(v)
			if err != nil {
				return nil, fmt.Errorf("endpoints[%d] (%s): headers[%s]: %w", i, displayName(ep.Name), k, err)
			}
			ep.Headers[k] = expanded
		}
	}

	return endpoints, nil
}

func displayName(name string) string {
	if name == "" {
		return "unnamed"
	}
	return name
}

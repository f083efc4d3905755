package config

import (
	"testing"
)

func TestBuildEndpoints(t *testing.T) {
	cfgs, err := Parse([]byte(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	endpoints, err := BuildEndpoints(cfgs)
	if err != nil {
		t.Fatalf("BuildEndpoints() error = %v", err)
	}

	if len(endpoints) != 3 {
		t.Fatalf("got %d endpoints, want 3", len(endpoints))
	}

	if endpoints[0].Name() != "fetch index page" {
		t.Errorf("endpoints[0].Name() = %q", endpoints[0].Name())
	}
	if endpoints[0].Method() != "GET" {
		t.Errorf("endpoints[0].Method() = %q, want GET default", endpoints[0].Method())
	}

	if endpoints[1].Method() != "POST" {
		t.Errorf("endpoints[1].Method() = %q, want POST (upper-cased)", endpoints[1].Method())
	}
	if endpoints[1].Body() != `{"foo": "bar"}` {
		t.Errorf("endpoints[1].Body() = %q", endpoints[1].Body())
	}
	if endpoints[1].Domain() != "example.com" {
		t.Errorf("endpoints[1].Domain() = %q, want example.com", endpoints[1].Domain())
	}

	// unnamed entries pick up the default display name
	if endpoints[2].Name() != "Unnamed Request" {
		t.Errorf("endpoints[2].Name() = %q, want %q", endpoints[2].Name(), "Unnamed Request")
	}
}

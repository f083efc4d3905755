package httpapi

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/nomaanakhan/healthCheckScript/internal/probe"
	"github.com/nomaanakhan/healthCheckScript/internal/stats"
)

func testServer() (*Server, *stats.Registry) {
	registry := stats.NewRegistry()
	targets := []probe.Target{
		{Name: "api", URL: "https://a.example.com/health", Domain: "a.example.com"},
		{Name: "web", URL: "https://b.example.com/", Method: "HEAD", Domain: "b.example.com"},
	}
	return NewServer(registry, targets, "127.0.0.1:0", zap.NewNop()), registry
}

func TestHealthz(t *testing.T) {
	s, _ := testServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestHandleAvailability(t *testing.T) {
	s, registry := testServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	registry.IncrementTotal("a.example.com")
	registry.IncrementTotal("a.example.com")
	registry.IncrementSuccess("a.example.com")
	registry.IncrementTotal("b.example.com")

	resp, err := srv.Client().Get(srv.URL + "/api/availability")
	if err != nil {
		t.Fatalf("GET /api/availability: %v", err)
	}
	defer resp.Body.Close()

	var entries []availabilityEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// sorted by domain
	if entries[0].Domain != "a.example.com" || entries[1].Domain != "b.example.com" {
		t.Errorf("order = %q, %q", entries[0].Domain, entries[1].Domain)
	}
	if entries[0].Total != 2 || entries[0].Success != 1 || entries[0].Availability != 50 {
		t.Errorf("a.example.com = %+v, want Total=2 Success=1 Availability=50", entries[0])
	}
	if entries[1].Availability != 0 {
		t.Errorf("b.example.com availability = %d, want 0", entries[1].Availability)
	}
}

func TestHandleEndpoints(t *testing.T) {
	s, _ := testServer()
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/api/endpoints")
	if err != nil {
		t.Fatalf("GET /api/endpoints: %v", err)
	}
	defer resp.Body.Close()

	var entries []endpointEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Method != "GET" {
		t.Errorf("default method = %q, want GET", entries[0].Method)
	}
	if entries[1].Method != "HEAD" {
		t.Errorf("method = %q, want HEAD", entries[1].Method)
	}
}

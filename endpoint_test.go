package healthcheck

import (
	"testing"
)

func TestNewEndpoint_Defaults(t *testing.T) {
	ep, err := NewEndpoint("https://api.example.com/health")
	if err != nil {
		t.Fatalf("NewEndpoint() error = %v", err)
	}

	if ep.Name() != DefaultEndpointName {
		t.Errorf("Name() = %q, want %q", ep.Name(), DefaultEndpointName)
	}
	if ep.Method() != "GET" {
		t.Errorf("Method() = %q, want GET", ep.Method())
	}
	if ep.Headers() != nil {
		t.Errorf("Headers() = %v, want nil", ep.Headers())
	}
	if ep.Body() != "" {
		t.Errorf("Body() = %q, want empty", ep.Body())
	}
}

func TestNewEndpoint_RequiresURL(t *testing.T) {
	if _, err := NewEndpoint(""); err == nil {
		t.Error("NewEndpoint(\"\") error = nil, want error")
	}
}

func TestNewEndpoint_MethodNormalizedUpper(t *testing.T) {
	ep, err := NewEndpoint("https://example.com", WithMethod("post"))
	if err != nil {
		t.Fatalf("NewEndpoint() error = %v", err)
	}
	if ep.Method() != "POST" {
		t.Errorf("Method() = %q, want POST", ep.Method())
	}
}

func TestNewEndpoint_HeadersCopied(t *testing.T) {
	headers := map[string]string{"Authorization": "Bearer x"}
	ep, err := NewEndpoint("https://example.com", WithHeaders(headers))
	if err != nil {
		t.Fatalf("NewEndpoint() error = %v", err)
	}

	// mutating the caller's map must not affect the endpoint
	headers["Authorization"] = "tampered"
	if ep.Headers()["Authorization"] != "Bearer x" {
		t.Error("endpoint headers were not copied at construction")
	}

	// mutating the returned copy must not affect the endpoint either
	got := ep.Headers()
	got["Authorization"] = "tampered again"
	if ep.Headers()["Authorization"] != "Bearer x" {
		t.Error("Headers() returned the internal map")
	}
}

func TestEndpoint_Domain(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{"plain host", "https://api.example.com/health", "api.example.com"},
		{"host with port", "http://localhost:8080/status", "localhost:8080"},
		{"query and path stripped", "https://example.com/a/b?x=1", "example.com"},
		{"same authority different paths share a key", "https://example.com/other", "example.com"},
		{"relative url has empty authority", "not-a-real-url", ""},
		{"unparseable url has empty authority", "://bad", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ep, err := NewEndpoint(tt.url)
			if err != nil {
				t.Fatalf("NewEndpoint(%q) error = %v", tt.url, err)
			}
			if got := ep.Domain(); got != tt.want {
				t.Errorf("Domain() = %q, want %q", got, tt.want)
			}
		})
	}
}

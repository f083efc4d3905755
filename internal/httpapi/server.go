// Package httpapi exposes the current availability state over HTTP.
//
// This package is internal to healthcheck. The API is read-only and serves
// the same cumulative snapshot the console reporter renders:
//
//   - GET /healthz: liveness check
//   - GET /api/availability: per-domain counters and availability percentage
//   - GET /api/endpoints: the configured catalog
//
// The server is optional; it runs only when a listen address is configured.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/nomaanakhan/healthCheckScript/internal/probe"
	"github.com/nomaanakhan/healthCheckScript/internal/stats"
)

const shutdownTimeout = 5 * time.Second

// Server serves the status API.
type Server struct {
	registry   *stats.Registry
	targets    []probe.Target
	addr       string
	logger     *zap.Logger
	httpServer *http.Server
}

// NewServer creates a status API [Server] reading from the given registry.
//
// The catalog is used only for the read-only endpoint listing; the server
// never mutates it or the registry.
func NewServer(registry *stats.Registry, targets []probe.Target, addr string, logger *zap.Logger) *Server {
	return &Server{
		registry: registry,
		targets:  targets,
		addr:     addr,
		logger:   logger,
	}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/api/availability", s.handleAvailability)
	r.Get("/api/endpoints", s.handleEndpoints)

	return r
}

// Start begins serving in a background goroutine.
//
// The listener is created synchronously so a bad address fails fast. The
// server shuts down gracefully when ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", s.addr, err)
	}

	s.httpServer = &http.Server{Handler: s.Router()}

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.logger.Error("status api server error", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("status api shutdown error", zap.Error(err))
		}
	}()

	s.logger.Info("status api listening", zap.String("addr", ln.Addr().String()))
	return nil
}

type availabilityEntry struct {
	Domain       string `json:"domain"`
	Success      int64  `json:"success"`
	Total        int64  `json:"total"`
	Availability int    `json:"availability"`
}

func (s *Server) handleAvailability(w http.ResponseWriter, r *http.Request) {
	snapshot := s.registry.Snapshot()

	entries := make([]availabilityEntry, 0, len(snapshot))
	for domain, d := range snapshot {
		entries = append(entries, availabilityEntry{
			Domain:       domain,
			Success:      d.Success,
			Total:        d.Total,
			Availability: d.Availability(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Domain < entries[j].Domain })

	writeJSON(w, s.logger, entries)
}

type endpointEntry struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Method string `json:"method"`
	Domain string `json:"domain"`
}

func (s *Server) handleEndpoints(w http.ResponseWriter, r *http.Request) {
	entries := make([]endpointEntry, 0, len(s.targets))
	for _, t := range s.targets {
		method := t.Method
		if method == "" {
			method = http.MethodGet
		}
		entries = append(entries, endpointEntry{
			Name:   t.Name,
			URL:    t.URL,
			Method: method,
			Domain: t.Domain,
		})
	}

	writeJSON(w, s.logger, entries)
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

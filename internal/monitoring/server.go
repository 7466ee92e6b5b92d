package monitoring

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"
)

// Server is the tiny embedded HTTP server each worker runs alongside its
// main consume loop, exposing /health and /metrics over the live Registry.
type Server struct {
	registry *Registry
	http     *http.Server
	log      arbor.ILogger
}

func NewServer(addr string, registry *Registry, log arbor.ILogger) *Server {
	mux := http.NewServeMux()
	s := &Server{registry: registry, log: log}
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /metrics", s.handleMetrics)
	s.http = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Start runs the server in the background; callers typically fire-and-forget
// this alongside their main consume loop.
func (s *Server) Start() {
	go func() {
		if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Warn().Err(err).Msg("monitoring: server stopped unexpectedly")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := s.registry.Health()
	status := http.StatusOK
	if health["status"] != "healthy" {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, health)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Metrics())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

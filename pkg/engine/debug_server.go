package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// DebugServer exposes the engine over HTTP: /health, /frames, /config,
// /state and /metrics.
type DebugServer struct {
	engine   *Engine
	gatherer prometheus.Gatherer

	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewDebugServer creates a server for e. Metrics are served from gatherer,
// or prometheus.DefaultGatherer when nil.
func NewDebugServer(e *Engine, gatherer prometheus.Gatherer) *DebugServer {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &DebugServer{engine: e, gatherer: gatherer}
}

// Handler returns the HTTP handler without starting a listener.
func (d *DebugServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", d.handleHealth)
	mux.HandleFunc("/frames", d.handleFrameTimeline)
	mux.HandleFunc("/config", d.handleConfig)
	mux.HandleFunc("/state", d.handleState)
	mux.Handle("/metrics", promhttp.HandlerFor(d.gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Start binds addr and serves in the background. It returns the bound
// address, which differs from addr when addr uses port 0.
func (d *DebugServer) Start(addr string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.server != nil {
		return d.listener.Addr().String(), nil
	}

	// Bind listener first to fail fast on port conflicts
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("debug server listen: %w", err)
	}

	server := &http.Server{Handler: d.Handler(), ReadHeaderTimeout: 5 * time.Second}
	d.server = server
	d.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			d.mu.Lock()
			d.server = nil
			d.listener = nil
			d.mu.Unlock()
			log.WithError(err).Error("debug server stopped")
		}
	}()

	return listener.Addr().String(), nil
}

// Stop gracefully shuts the server down.
func (d *DebugServer) Stop() {
	d.mu.Lock()
	server := d.server
	d.server = nil
	d.listener = nil
	d.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("debug server shutdown")
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (d *DebugServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (d *DebugServer) handleFrameTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, d.engine.Trace().Snapshot())
}

// handleConfig returns the active attributes on GET and applies
// {"name": "value"} pairs on POST.
func (d *DebugServer) handleConfig(w http.ResponseWriter, r *http.Request) {
	renderer := d.engine.Renderer()
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, renderer.Config().Attributes())
	case http.MethodPost:
		var attrs map[string]string
		if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
			http.Error(w, fmt.Sprintf("invalid body: %v", err), http.StatusBadRequest)
			return
		}
		if err := renderer.SetAttributes(attrs); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		writeJSON(w, renderer.Config().Attributes())
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (d *DebugServer) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	renderer := d.engine.Renderer()
	writeJSON(w, struct {
		State  string  `json:"state"`
		Radius float64 `json:"radius"`
	}{renderer.State().String(), renderer.Radius()})
}

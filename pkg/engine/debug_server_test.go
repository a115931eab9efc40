package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-drift/clockface/pkg/clockface"
	"github.com/jonboulle/clockwork"
)

// waitForServer polls the health endpoint until ready or timeout.
func waitForServer(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://%s/health", addr)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("server not ready after %v", timeout)
}

// waitForServerDown polls until the server stops responding or timeout.
func waitForServerDown(addr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://%s/health", addr)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err != nil {
			return nil // Connection refused = server is down
		}
		resp.Body.Close()
		time.Sleep(5 * time.Millisecond)
	}
	return fmt.Errorf("server still running after %v", timeout)
}

func newDebugServer(t *testing.T) (*DebugServer, *Engine) {
	t.Helper()
	clk := clockwork.NewFakeClockAt(start)
	r := newRenderer(t, clockface.DefaultConfig(), clk, true)
	stats := NewStats()
	reg, err := NewRegistry(stats)
	if err != nil {
		t.Fatal(err)
	}
	e := New(r, Options{Clock: clk, Stats: stats})
	t.Cleanup(e.Close)
	return NewDebugServer(e, reg), e
}

func TestDebugServer_StartStop(t *testing.T) {
	srv, _ := newDebugServer(t)
	addr, err := srv.Start("localhost:0")
	if err != nil {
		t.Fatalf("failed to start debug server: %v", err)
	}
	defer srv.Stop()

	if err := waitForServer(addr, 2*time.Second); err != nil {
		t.Fatalf("server not ready: %v", err)
	}

	resp, err := http.Get(fmt.Sprintf("http://%s/health", addr))
	if err != nil {
		t.Fatalf("failed to reach health endpoint: %v", err)
	}
	defer resp.Body.Close()

	var health map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&health); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if health["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", health["status"])
	}

	// Calling start again returns the same address.
	again, err := srv.Start("localhost:0")
	if err != nil || again != addr {
		t.Errorf("second Start = %q, %v; want %q", again, err, addr)
	}

	srv.Stop()
	if err := waitForServerDown(addr, 2*time.Second); err != nil {
		t.Errorf("server did not stop: %v", err)
	}
}

func TestDebugServer_FailFastOnPortConflict(t *testing.T) {
	blocker, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("failed to create blocker listener: %v", err)
	}
	defer blocker.Close()

	srv, _ := newDebugServer(t)
	if _, err := srv.Start(blocker.Addr().String()); err == nil {
		srv.Stop()
		t.Error("expected error when binding to occupied port, got nil")
	}
}

func TestDebugServer_Frames(t *testing.T) {
	srv, e := newDebugServer(t)
	e.Frame(start.Add(time.Second))

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/frames", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var timeline FrameTimeline
	if err := json.Unmarshal(rec.Body.Bytes(), &timeline); err != nil {
		t.Fatal(err)
	}
	if len(timeline.Samples) != 1 || !timeline.Samples[0].Second {
		t.Errorf("timeline = %+v", timeline)
	}
}

func TestDebugServer_Config(t *testing.T) {
	srv, e := newDebugServer(t)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/config",
		strings.NewReader(`{"size": "300", "brand-text": "DRIFT"}`)))
	if rec.Code != http.StatusOK {
		t.Fatalf("POST /config status = %d: %s", rec.Code, rec.Body)
	}
	if e.Renderer().Radius() != 150 {
		t.Errorf("Radius() = %v, want 150", e.Renderer().Radius())
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/config", nil))
	var attrs map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &attrs); err != nil {
		t.Fatal(err)
	}
	if attrs["brand-text"] != "DRIFT" || attrs["size"] != "300" {
		t.Errorf("attributes = %v", attrs)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/config", strings.NewReader(`{"size": "huge"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid attribute status = %d, want 400", rec.Code)
	}
	if e.Renderer().Config().Size != 300 {
		t.Error("rejected update must not change the config")
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/config",
		strings.NewReader(`{"brand-text": "OTHER", "size": "huge"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("mixed batch status = %d, want 400", rec.Code)
	}
	if got := e.Renderer().Config().BrandText; got != "DRIFT" {
		t.Errorf("brand-text = %q, rejected batch must apply nothing", got)
	}
}

func TestDebugServer_StateAndMetrics(t *testing.T) {
	srv, e := newDebugServer(t)
	e.Frame(start)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/state", nil))
	if !strings.Contains(rec.Body.String(), `"state": "running"`) {
		t.Errorf("/state = %s", rec.Body)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "clockface_frames_total 1") {
		t.Errorf("/metrics missing frame counter:\n%s", body)
	}
}

func TestDebugServer_MethodNotAllowed(t *testing.T) {
	srv, _ := newDebugServer(t)
	h := srv.Handler()
	for _, path := range []string{"/health", "/frames", "/state"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s status = %d, want 405", path, rec.Code)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/config", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("DELETE /config status = %d, want 405", rec.Code)
	}
}

package rest

import (
	"context"
	"net/http"
	"time"
)

const pingTimeout = 3 * time.Second

// pinger defines the minimal interface for component health checks.
type pinger interface {
	Ping(ctx context.Context) error
}

// Component is a named dependency checked by the readiness and health probes.
type Component struct {
	Name   string
	Pinger pinger
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	components []Component
	version    string
}

// NewHealthHandler creates a HealthHandler. Components with a nil Pinger
// are skipped.
func NewHealthHandler(version string, components ...Component) *HealthHandler {
	h := &HealthHandler{version: version}
	for _, c := range components {
		if c.Pinger != nil {
			h.components = append(h.components, c)
		}
	}
	return h
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 if every component answers, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	_, ok := h.check(r.Context())

	status, body := http.StatusOK, "ok"
	if !ok {
		status, body = http.StatusServiceUnavailable, "down"
	}
	writeJSON(w, status, HealthResponse{
		Status:    body,
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component latency and version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	components, ok := h.check(r.Context())

	status, body := http.StatusOK, "ok"
	if !ok {
		status, body = http.StatusServiceUnavailable, "down"
	}
	writeJSON(w, status, HealthResponse{
		Status:     body,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func (h *HealthHandler) check(ctx context.Context) (map[string]CompStatus, bool) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	components := make(map[string]CompStatus, len(h.components))
	ok := true
	for _, c := range h.components {
		start := time.Now()
		err := c.Pinger.Ping(ctx)
		latency := time.Since(start)

		if err != nil {
			components[c.Name] = CompStatus{Status: "down", Error: err.Error()}
			ok = false
			continue
		}
		components[c.Name] = CompStatus{Status: "ok", Latency: latency.String()}
	}
	return components, ok
}

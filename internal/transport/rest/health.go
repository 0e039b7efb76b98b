package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/heartmarshall/cherokee-verbs/internal/service/browse"
)

// catalogStatus reports whether a catalog snapshot is being served.
type catalogStatus interface {
	Ready() bool
	Status() browse.Status
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	catalog catalogStatus
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(catalog catalogStatus, version string) *HealthHandler {
	return &HealthHandler{catalog: catalog, version: version}
}

// Register mounts /live, /ready and /health on mux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /live", h.Live)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /health", h.Health)
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
	Status   string         `json:"status"`
	Snapshot *browse.Status `json:"snapshot,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 once a catalog is published, 503 before.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.catalog.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check with snapshot details and version.
// A failed reload with a previous snapshot still serving is "degraded".
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	st := h.catalog.Status()

	comp := CompStatus{Status: "ok", Snapshot: &st}
	switch {
	case !st.Loaded:
		comp.Status = "down"
	case st.LastError != "":
		comp.Status = "degraded"
	}

	status := http.StatusOK
	if comp.Status == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     comp.Status,
		Version:    h.version,
		Components: map[string]CompStatus{"catalog": comp},
		Timestamp:  time.Now(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"
)

const (
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
	healthStatusNoToken      = "no token"
)

// HealthChecker serves liveness and readiness probes for the metrics
// listener. Readiness is gated on the server lifecycle only; a missing
// Calendar token is reported but does not fail the probe, because the
// server can still hand out auth URLs without one.
type HealthChecker struct {
	ready         atomic.Bool
	serverContext *ServerContext
	startTime     time.Time
}

// NewHealthChecker creates a HealthChecker that starts out ready.
func NewHealthChecker(sc *ServerContext) *HealthChecker {
	h := &HealthChecker{
		serverContext: sc,
		startTime:     time.Now(),
	}
	h.ready.Store(true)
	return h
}

// SetReady sets the readiness state. Shutdown paths flip this to false
// before the listener closes so probes drain cleanly.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the server is ready to receive traffic.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load()
}

// readinessCheck is one named probe result. ok=false fails the probe.
type readinessCheck struct {
	name   string
	status string
	ok     bool
}

// runChecks evaluates all readiness checks. Informational checks report a
// non-ok status without failing the probe.
func (h *HealthChecker) runChecks() ([]readinessCheck, bool) {
	var checks []readinessCheck
	allOk := true

	if h.ready.Load() {
		checks = append(checks, readinessCheck{"ready", healthStatusOK, true})
	} else {
		checks = append(checks, readinessCheck{"ready", healthStatusNotReady, false})
		allOk = false
	}

	if h.serverContext != nil && h.serverContext.IsShutdown() {
		checks = append(checks, readinessCheck{"shutdown", healthStatusShuttingDown, false})
		allOk = false
	} else {
		checks = append(checks, readinessCheck{"shutdown", healthStatusOK, true})
	}

	// Informational: no Calendar token means the auth flow has not run yet.
	if h.serverContext != nil && h.serverContext.CalendarClient() != nil {
		checks = append(checks, readinessCheck{"calendar", healthStatusOK, true})
	} else {
		checks = append(checks, readinessCheck{"calendar", healthStatusNoToken, true})
	}

	return checks, allOk
}

// HealthResponse is the JSON body for the probe endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// DetailedHealthResponse adds uptime and token state for humans.
type DetailedHealthResponse struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	CalendarToken bool   `json:"calendarToken"`
}

// LivenessHandler returns the /healthz handler. It only confirms the
// process is serving; restart decisions belong to the orchestrator.
func (h *HealthChecker) LivenessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: healthStatusOK})
	})
}

// ReadinessHandler returns the /readyz handler.
func (h *HealthChecker) ReadinessHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		checks, allOk := h.runChecks()

		response := HealthResponse{Checks: make(map[string]string, len(checks))}
		for _, c := range checks {
			response.Checks[c.name] = c.status
		}

		code := http.StatusOK
		response.Status = healthStatusOK
		if !allOk {
			code = http.StatusServiceUnavailable
			response.Status = healthStatusNotReady
		}
		writeJSON(w, code, response)
	})
}

// DetailedHealthHandler returns the /healthz/detailed handler.
func (h *HealthChecker) DetailedHealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, allOk := h.runChecks()

		response := DetailedHealthResponse{
			Status:        healthStatusOK,
			Uptime:        time.Since(h.startTime).Truncate(time.Second).String(),
			CalendarToken: h.serverContext != nil && h.serverContext.CalendarClient() != nil,
		}

		code := http.StatusOK
		if !allOk {
			code = http.StatusServiceUnavailable
			response.Status = healthStatusNotReady
		}
		writeJSON(w, code, response)
	})
}

// RegisterHealthEndpoints registers the probe endpoints on the given mux.
func (h *HealthChecker) RegisterHealthEndpoints(mux *http.ServeMux) {
	mux.Handle("/healthz", h.LivenessHandler())
	mux.Handle("/readyz", h.ReadinessHandler())
	mux.Handle("/healthz/detailed", h.DetailedHealthHandler())
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

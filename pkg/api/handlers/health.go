package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/cauth-dev/cauth/pkg/store"
)

// HealthCheckTimeout is the maximum time allowed for health check operations.
const HealthCheckTimeout = 5 * time.Second

// HealthHandler handles the unauthenticated health probes.
type HealthHandler struct {
	store     *store.Store
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(s *store.Store) *HealthHandler {
	return &HealthHandler{
		store:     s,
		startTime: time.Now(),
	}
}

// Liveness handles GET /health - simple liveness probe.
//
// Returns 200 OK if the server process is running. Designed for Kubernetes
// liveness probes; succeeds as long as the HTTP server is responsive.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.startTime)
	WriteJSONOK(w, map[string]any{
		"service":    "cauth",
		"status":     "healthy",
		"started_at": h.startTime.UTC().Format(time.RFC3339),
		"uptime":     uptime.Round(time.Second).String(),
	})
}

// Readiness handles GET /health/ready - readiness probe.
// Returns 200 OK only when the database answers a ping within the timeout.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), HealthCheckTimeout)
	defer cancel()

	if err := h.store.Healthcheck(ctx); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	WriteJSONOK(w, map[string]string{"status": "healthy"})
}

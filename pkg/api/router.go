package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/cauth-dev/cauth/internal/logger"
	"github.com/cauth-dev/cauth/pkg/api/handlers"
	"github.com/cauth-dev/cauth/pkg/events"
	"github.com/cauth-dev/cauth/pkg/metrics"
	"github.com/cauth-dev/cauth/pkg/store"
)

// NewRouter creates and configures the chi router with all middleware and routes.
//
// The router is configured with:
//   - Request ID middleware for request tracking
//   - Real IP extraction for proper client identification
//   - Custom request logging using the internal logger
//   - Panic recovery to prevent server crashes
//   - Request timeout to prevent hung requests
//
// Routes:
//   - GET /health, /health/ready - probes (unauthenticated)
//   - GET /metrics - Prometheus scrape endpoint (unauthenticated)
//   - /permissions - permission management
//   - /groups - group management
//   - /users - user management, registration, login, logout
//   - /events/{id}/commit, /events/{id}/cancel - event workflow
//
// Privileged routes authenticate through the session_token query parameter;
// the per-route permission checks live in the handlers.
func NewRouter(config APIConfig, s *store.Store, engine *events.Engine, sm *metrics.ServiceMetrics) http.Handler {
	r := chi.NewRouter()

	// Middleware stack - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(sm))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(config.RequestTimeout))

	healthHandler := handlers.NewHealthHandler(s)
	permissionHandler := handlers.NewPermissionHandler(s, engine, sm)
	groupHandler := handlers.NewGroupHandler(s, engine, sm)
	userHandler := handlers.NewUserHandler(s, engine, sm, config.SessionTTL)
	eventHandler := handlers.NewEventHandler(engine, sm)

	// Health routes - unauthenticated
	r.Route("/health", func(r chi.Router) {
		r.Get("/", healthHandler.Liveness)
		r.Get("/ready", healthHandler.Readiness)
	})

	r.Get("/metrics", metrics.Handler().ServeHTTP)

	// Root redirect to health for convenience
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/health", http.StatusTemporaryRedirect)
	})

	r.Route("/permissions", func(r chi.Router) {
		r.Get("/", permissionHandler.List)
		r.Post("/", permissionHandler.Create)
		r.Get("/{name}", permissionHandler.Get)
		r.Delete("/{name}", permissionHandler.Delete)
	})

	r.Route("/groups", func(r chi.Router) {
		r.Get("/", groupHandler.List)
		r.Post("/", groupHandler.Create)
		r.Get("/{name}", groupHandler.Get)
		r.Delete("/{name}", groupHandler.Delete)
		r.Patch("/{name}/permissions", groupHandler.PatchPermissions)
	})

	r.Route("/users", func(r chi.Router) {
		r.Get("/", userHandler.List)
		r.Post("/", userHandler.Register)
		r.Post("/login", userHandler.Login)
		r.Post("/logout", userHandler.Logout)
		r.Get("/{login}", userHandler.Get)
		r.Delete("/{login}", userHandler.Delete)
		r.Patch("/{login}/groups", userHandler.PatchGroups)
		r.Get("/{login}/permissions/{name}", userHandler.Probe)
	})

	r.Route("/events", func(r chi.Router) {
		r.Post("/{id}/commit", eventHandler.Commit)
		r.Post("/{id}/cancel", eventHandler.Cancel)
	})

	return r
}

// isHealthPath returns true if the request path is a healthcheck endpoint.
func isHealthPath(path string) bool {
	return path == "/health" || strings.HasPrefix(path, "/health/") || path == "/metrics"
}

// requestLogger is a middleware that logs requests using the internal logger
// and feeds the request counters.
//
// It logs:
//   - Request start (DEBUG level): method, path, remote addr
//   - Request completion (INFO level): method, path, status, duration
//   - Healthcheck requests are logged at DEBUG level to reduce noise
//
// The session_token query parameter is never logged.
func requestLogger(sm *metrics.ServiceMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := middleware.GetReqID(r.Context())

			logger.Debug("API request started",
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			// Wrap response writer to capture status code
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)

			if pattern := chi.RouteContext(r.Context()).RoutePattern(); pattern != "" {
				sm.ObserveRequest(r.Method, pattern, ww.Status(), duration)
			}

			logArgs := []any{
				"request_id", requestID,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", duration.String(),
			}

			// Log healthcheck requests at DEBUG to avoid polluting logs in k8s
			if isHealthPath(r.URL.Path) {
				logger.Debug("API request completed", logArgs...)
			} else {
				logger.Info("API request completed", logArgs...)
			}
		})
	}
}

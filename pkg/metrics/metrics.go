// Package metrics exposes Prometheus instrumentation for the cauth service.
//
// Metrics are opt-in: nothing is registered until Init is called, and the
// recording helpers are nil-safe so instrumented code paths cost nothing when
// metrics are disabled.
package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	mu       sync.Mutex
	registry *prometheus.Registry
)

// Init creates the process-wide registry with the standard Go and process
// collectors. Calling it twice is a no-op.
func Init() {
	mu.Lock()
	defer mu.Unlock()
	if registry != nil {
		return
	}
	registry = prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Enabled reports whether Init has been called.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return registry != nil
}

// Handler returns the scrape endpoint handler for the registry.
// Returns http.NotFoundHandler when metrics are disabled.
func Handler() http.Handler {
	mu.Lock()
	defer mu.Unlock()
	if registry == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ServiceMetrics instruments the HTTP surface and the event workflow.
type ServiceMetrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	loginAttempts *prometheus.CounterVec
	eventsStaged  *prometheus.CounterVec
	eventsClosed  *prometheus.CounterVec
}

// NewServiceMetrics registers the service collectors.
// Returns nil when metrics are disabled; all recording methods accept a nil
// receiver, so callers never need to branch.
func NewServiceMetrics() *ServiceMetrics {
	mu.Lock()
	reg := registry
	mu.Unlock()
	if reg == nil {
		return nil
	}

	return &ServiceMetrics{
		httpRequests: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cauth_http_requests_total",
				Help: "Total number of HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "cauth_http_request_duration_seconds",
				Help: "HTTP request latency by method and route",
				Buckets: []float64{
					0.001, // trivial lookups
					0.005,
					0.01,
					0.05,
					0.1,
					0.5, // password hashing dominates here
					1,
					2.5,
				},
			},
			[]string{"method", "route"},
		),
		loginAttempts: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cauth_login_attempts_total",
				Help: "Total number of login attempts by outcome",
			},
			[]string{"outcome"}, // "accepted", "rejected"
		),
		eventsStaged: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cauth_events_staged_total",
				Help: "Total number of events staged by event type",
			},
			[]string{"type"},
		),
		eventsClosed: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "cauth_events_closed_total",
				Help: "Total number of events reaching a terminal status",
			},
			[]string{"status"}, // "committed", "cancelled"
		),
	}
}

// ObserveRequest records one handled HTTP request. The route is the chi
// pattern, not the raw path, to keep cardinality bounded.
func (m *ServiceMetrics) ObserveRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordLogin records a login attempt outcome.
func (m *ServiceMetrics) RecordLogin(accepted bool) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	m.loginAttempts.WithLabelValues(outcome).Inc()
}

// RecordEventStaged records the creation of a pending event.
func (m *ServiceMetrics) RecordEventStaged(eventType string) {
	if m == nil {
		return
	}
	m.eventsStaged.WithLabelValues(eventType).Inc()
}

// RecordEventClosed records an event reaching a terminal status.
func (m *ServiceMetrics) RecordEventClosed(status string) {
	if m == nil {
		return
	}
	m.eventsClosed.WithLabelValues(status).Inc()
}

// Package metrics exposes the Prometheus collectors of the service.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "points"

// Outcome labels of resource operations.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics owns a registry and the collectors registered on it.
type Metrics struct {
	Registry *prometheus.Registry

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	operations      *prometheus.CounterVec
	indexSyncErrors *prometheus.CounterVec
}

// New creates a registry with the HTTP, resource and runtime collectors.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "path", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		}, []string{"method", "path"}),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resource",
			Name:      "operations_total",
			Help:      "Resource operations by kind, operation and outcome.",
		}, []string{"kind", "op", "outcome"}),
		indexSyncErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "search_index",
			Name:      "sync_failures_total",
			Help:      "Index writes that failed after the entity store committed.",
		}, []string{"kind", "op"}),
	}

	m.Registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.operations,
		m.indexSyncErrors,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)
	return m
}

// Handler returns an HTTP handler exposing the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Operation counts one resource operation.
func (m *Metrics) Operation(kind, op string, err error) {
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.operations.WithLabelValues(kind, op, outcome).Inc()
}

// IndexSyncFailed counts an index write that diverged from the store.
func (m *Metrics) IndexSyncFailed(kind, op string) {
	m.indexSyncErrors.WithLabelValues(kind, op).Inc()
}

// UnmatchedRoute is the path label of requests no route matched.
const UnmatchedRoute = "unmatched"

type routeKey struct{}

type routeLabel struct {
	template string
}

// InstrumentHandler wraps next with HTTP request metrics. The path label is
// the route template recorded by RouteTemplate, so next must be a router
// using it; requests no route matched share UnmatchedRoute.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		label := &routeLabel{template: UnmatchedRoute}
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), routeKey{}, label)))

		method := strings.ToUpper(r.Method)
		m.httpRequests.WithLabelValues(method, label.template, strconv.Itoa(rec.status)).Inc()
		m.httpDuration.WithLabelValues(method, label.template).Observe(time.Since(start).Seconds())
	})
}

// RouteTemplate is a mux middleware recording the matched route template,
// e.g. /api/points/{id:[0-9]+}, for InstrumentHandler.
func RouteTemplate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if label, ok := r.Context().Value(routeKey{}).(*routeLabel); ok {
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					label.template = tpl
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

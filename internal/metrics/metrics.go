// Package metrics exposes Prometheus collectors for the availability
// service: query counters by campus and origin, table fetch latency
// and HTTP request instrumentation.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "hitecs"

// Metrics holds all collectors. It satisfies classroom.QueryRecorder.
type Metrics struct {
	registry *prometheus.Registry

	queriesTotal  *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	fetchTotal    *prometheus.CounterVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates a Metrics with its own registry, including the standard
// Go runtime and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "availability_queries_total",
			Help:      "Free classroom queries by campus, grouping mode and data origin.",
		}, []string{"campus", "mode", "origin"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "table_fetch_duration_seconds",
			Help:      "Time spent downloading availability tables.",
			Buckets:   prometheus.DefBuckets,
		}),
		fetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "table_fetch_total",
			Help:      "Availability table fetch attempts by result.",
		}, []string{"result"}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.queriesTotal,
		m.fetchDuration,
		m.fetchTotal,
		m.httpRequestsTotal,
		m.httpRequestDuration,
	)
	return m
}

// Registry returns the backing registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordQuery counts one availability query.
func (m *Metrics) RecordQuery(campus, mode, origin string) {
	m.queriesTotal.WithLabelValues(campus, mode, origin).Inc()
}

// ObserveFetch records one table download attempt.
func (m *Metrics) ObserveFetch(seconds float64, success bool) {
	m.fetchDuration.Observe(seconds)
	result := "error"
	if success {
		result = "success"
	}
	m.fetchTotal.WithLabelValues(result).Inc()
}

// ObserveHTTPRequest records one served HTTP request. route is the
// matched route pattern, not the raw path, to bound cardinality.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

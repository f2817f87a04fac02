// Package metrics owns the Prometheus registry exposed on /metrics.
//
// Every collector is registered on a private registry created per Metrics
// value, so tests can build as many instances as they like.
//
// Exposed series:
//   - joke_requests_total{endpoint}: calls to the joke endpoints (random, list, create)
//   - jokes_served_total{endpoint}: jokes written to responses
//   - http_requests_total{method,route,status}
//   - http_request_duration_seconds{method,route}
//   - http_requests_in_flight
//   - database_queries_total{operation,table,success}
//   - frontend_spans_total{name}, frontend_span_duration_milliseconds{name}
//   - process_* and go_* from the standard collectors
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Endpoint labels for joke_requests_total and jokes_served_total.
const (
	EndpointRandom = "random"
	EndpointList   = "list"
	EndpointCreate = "create"
)

type Metrics struct {
	registry *prometheus.Registry

	JokeRequests     *prometheus.CounterVec
	JokesServed      *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	HTTPInFlight     prometheus.Gauge
	DatabaseQueries  *prometheus.CounterVec
	FrontendSpans    *prometheus.CounterVec
	FrontendDuration *prometheus.HistogramVec
}

// New creates the registry and registers every collector on it.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		JokeRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "joke_requests_total",
			Help: "Total number of joke requests",
		}, []string{"endpoint"}),

		JokesServed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "jokes_served_total",
			Help: "Number of jokes written to responses",
		}, []string{"endpoint"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),

		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of in-flight HTTP requests",
		}),

		DatabaseQueries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "database_queries_total",
			Help: "Total number of database queries",
		}, []string{"operation", "table", "success"}),

		FrontendSpans: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "frontend_spans_total",
			Help: "Spans reported by the browser client",
		}, []string{"name"}),

		FrontendDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "frontend_span_duration_milliseconds",
			Help:    "Duration of spans reported by the browser client",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		}, []string{"name"}),
	}
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}

// RecordJokeRequest counts one call to a joke endpoint.
func (m *Metrics) RecordJokeRequest(endpoint string) {
	m.JokeRequests.WithLabelValues(endpoint).Inc()
}

// RecordJokesServed counts n jokes written for endpoint.
func (m *Metrics) RecordJokesServed(endpoint string, n int) {
	if n <= 0 {
		return
	}
	m.JokesServed.WithLabelValues(endpoint).Add(float64(n))
}

// RecordDatabaseQuery counts one store query.
func (m *Metrics) RecordDatabaseQuery(operation, table string, success bool) {
	m.DatabaseQueries.WithLabelValues(operation, table, strconv.FormatBool(success)).Inc()
}

// RecordFrontendSpan counts a browser span. A negative duration means the
// client did not report one and only the counter moves.
func (m *Metrics) RecordFrontendSpan(name string, durationMs float64) {
	m.FrontendSpans.WithLabelValues(name).Inc()
	if durationMs >= 0 {
		m.FrontendDuration.WithLabelValues(name).Observe(durationMs)
	}
}

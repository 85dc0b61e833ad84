// Package metrics exposes Prometheus collectors for the email pipeline.
//
// All methods are safe on a nil *Metrics, so components can take an
// optional recorder without nil checks.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels.
const (
	ResultOK       = "ok"
	ResultCacheHit = "cache_hit"
	ResultInvalid  = "invalid"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// Metrics owns a private registry and the service collectors.
type Metrics struct {
	registry       *prometheus.Registry
	previews       *prometheus.CounterVec
	deliveries     *prometheus.CounterVec
	renderDuration prometheus.Histogram
	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	corsFallbacks  prometheus.Counter
}

// New registers all collectors, plus Go runtime and process collectors,
// on a fresh registry.
func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		previews: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "previews_total",
			Help:      "Preview requests by result.",
		}, []string{"result"}),
		deliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deliveries_total",
			Help:      "Send requests by result.",
		}, []string{"result"}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Template assembly latency.",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		corsFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cors_fallback_total",
			Help:      "Requests whose origin was not in the allow-list.",
		}),
	}

	m.registry.MustRegister(
		m.previews,
		m.deliveries,
		m.renderDuration,
		m.httpRequests,
		m.httpDuration,
		m.corsFallbacks,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Preview counts a preview request.
func (m *Metrics) Preview(result string) {
	if m == nil {
		return
	}
	m.previews.WithLabelValues(result).Inc()
}

// Delivery counts a send request.
func (m *Metrics) Delivery(result string) {
	if m == nil {
		return
	}
	m.deliveries.WithLabelValues(result).Inc()
}

// Render records how long assembly took.
func (m *Metrics) Render(d time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.Observe(d.Seconds())
}

// HTTP records a finished request. route is the matched pattern, not the raw path.
func (m *Metrics) HTTP(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// CORSFallback counts a request served with the fallback policy.
func (m *Metrics) CORSFallback() {
	if m == nil {
		return
	}
	m.corsFallbacks.Inc()
}

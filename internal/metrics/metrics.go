// Package metrics holds the Prometheus collectors shared by the HTTP stack.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	ExpensesCreated    prometheus.Counter
	ExpensesDeleted    prometheus.Counter
	SuspiciousRequests *prometheus.CounterVec
	RateLimited        prometheus.Counter
}

// New registers every collector on a fresh registry, so several servers can
// coexist in one process (tests do this).
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diario_http_requests_total",
				Help: "HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "code"},
		),
		HTTPDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "diario_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		ExpensesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "diario_expenses_created_total",
			Help: "Expenses stored.",
		}),
		ExpensesDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "diario_expenses_deleted_total",
			Help: "Delete requests that completed.",
		}),
		SuspiciousRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "diario_suspicious_requests_total",
				Help: "Requests flagged by the security filter, by reason.",
			},
			[]string{"reason"},
		),
		RateLimited: f.NewCounter(prometheus.CounterOpts{
			Name: "diario_rate_limited_total",
			Help: "Requests rejected by the rate limiter.",
		}),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

package common

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects the HTTP-level counters exposed on /metrics.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RateLimited     prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Namespace: "quillfeed", Name: "http_requests_total", Help: "Number of HTTP requests by method and status."},
			[]string{"method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{Namespace: "quillfeed", Name: "http_request_duration_seconds", Help: "HTTP request latency by method.", Buckets: prometheus.DefBuckets},
			[]string{"method"},
		),
		RateLimited: prometheus.NewCounter(
			prometheus.CounterOpts{Namespace: "quillfeed", Name: "http_rate_limited_total", Help: "Number of requests rejected by the rate limiter."},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.RateLimited)
	return m
}

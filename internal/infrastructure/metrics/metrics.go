package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "documentmanager"

// NewCounter registers the service counters on the default registry.
func NewCounter() *prometheus.CounterVec {
	return NewCounterWith(prometheus.DefaultRegisterer)
}

func NewCounterWith(reg prometheus.Registerer) *prometheus.CounterVec {
	return promauto.With(reg).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "general_counters",
			Help:      "Domain and transport event counts keyed by result.",
		},
		[]string{"result"})
}

// NewRequestDuration registers the HTTP latency histogram labelled by route and status class.
func NewRequestDuration(reg prometheus.Registerer) *prometheus.HistogramVec {
	return promauto.With(reg).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"})
}

package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requestDuration *prometheus.HistogramVec
	requestFailures *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		requestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "sift",
			Subsystem: "search",
			Name:      "request_duration_seconds",
			Help:      "Time spent on requests to the search backend.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "status_code"}),
		requestFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "sift",
			Subsystem: "search",
			Name:      "request_failures_total",
			Help:      "Total number of failed requests to the search backend.",
		}, []string{"operation"}),
	}
}

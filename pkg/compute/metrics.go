package compute

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requestFailures *prometheus.CounterVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	return &metrics{
		requestFailures: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "sift",
			Subsystem: "compute",
			Name:      "request_failures_total",
			Help:      "Total number of failed requests to the compute service.",
		}, []string{"operation"}),
	}
}

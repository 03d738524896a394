package services

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	operationsTotal  *prometheus.CounterVec
	operationLatency *prometheus.HistogramVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		operationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrm",
			Name:      "employee_operations_total",
			Help:      "Total number of employee service operations by outcome.",
		}, []string{"operation", "outcome"}),
		operationLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrm",
			Name:      "employee_operation_duration_seconds",
			Help:      "Latency distribution for employee service operations.",
			Buckets: []float64{
				0.001, 0.002, 0.005,
				0.01, 0.02, 0.05,
				0.1, 0.2, 0.5,
				1, 2, 5,
			},
		}, []string{"operation"}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}

func observe(operation string, status Status, start time.Time) {
	m := getMetrics()
	m.operationsTotal.WithLabelValues(operation, status.String()).Inc()
	m.operationLatency.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

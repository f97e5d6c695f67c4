// Package metrics records Prometheus metrics for image-tool
// invocations.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	invocationsTotal   *prometheus.CounterVec
	invocationDuration *prometheus.HistogramVec

	// Registration guard
	metricsOnce       sync.Once
	metricsRegistered bool
)

// Init initializes all Prometheus metrics. It should be called once at
// startup; recording is a no-op until then, so library consumers that
// never call Init pay nothing.
func Init() {
	metricsOnce.Do(func() {
		invocationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "magicast_invocations_total",
				Help: "Total number of image tool invocations",
			},
			[]string{"operation", "status"},
		)

		invocationDuration = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "magicast_invocation_duration_seconds",
				Help:    "Duration of image tool invocations in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"operation"},
		)

		metricsRegistered = true
	})
}

// RecordInvocation records one subprocess invocation with its outcome.
func RecordInvocation(operation, status string, elapsed time.Duration) {
	if !metricsRegistered || invocationsTotal == nil {
		return
	}
	invocationsTotal.WithLabelValues(operation, status).Inc()
	invocationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// Package metrics exposes Prometheus counters for the transcription
// pipeline. Registration is on the default registry; the web server serves
// it at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	jobsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecohspeech",
		Name:      "jobs_total",
		Help:      "Jobs processed, by terminal status.",
	}, []string{"status"})

	conversionAttemptsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ecohspeech",
		Name:      "conversion_attempts_total",
		Help:      "Conversion strategy attempts, by strategy and outcome.",
	}, []string{"strategy", "outcome"})

	batchesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "ecohspeech",
		Name:      "batches_total",
		Help:      "Batches executed.",
	})
)

func ObserveJob(status string) {
	jobsTotal.WithLabelValues(status).Inc()
}

func ObserveConversionAttempt(strategy, outcome string) {
	conversionAttemptsTotal.WithLabelValues(strategy, outcome).Inc()
}

func ObserveBatch() {
	batchesTotal.Inc()
}

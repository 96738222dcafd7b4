// Package metrics holds the Prometheus collectors for oracle calls and response extraction.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Extraction paths
const (
	PathDirect = "direct"
	PathRegex  = "regex"
	PathFailed = "failed"
)

// Oracle call outcomes
const (
	OutcomeSuccess  = "success"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

var (
	OracleCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_oracle_calls_total",
			Help: "Total number of oracle calls by feature and outcome",
		},
		[]string{"feature", "outcome"},
	)

	Extractions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coach_extractions_total",
			Help: "Total number of structured response extractions by resolution path",
		},
		[]string{"path"},
	)

	OracleDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "coach_oracle_duration_seconds",
			Help:    "Duration of oracle calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"feature"},
	)
)

// ObserveOracleCall records one oracle call for feature.
func ObserveOracleCall(feature, outcome string, started time.Time) {
	OracleCalls.WithLabelValues(feature, outcome).Inc()
	OracleDuration.WithLabelValues(feature).Observe(time.Since(started).Seconds())
}

// ObserveExtraction records how an extraction resolved.
func ObserveExtraction(path string) {
	Extractions.WithLabelValues(path).Inc()
}

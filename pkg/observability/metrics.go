package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals // Prometheus metrics must be global for registration
var (
	// ValidationsTotal counts configuration validations
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mavis_config_validations_total",
			Help: "Total number of configuration validations",
		},
		[]string{"stage", "result"}, // result: valid, or the error kind
	)

	// ValidationDuration measures validation duration in seconds
	ValidationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mavis_config_validation_duration_seconds",
			Help:    "Configuration validation duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		},
		[]string{"stage"},
	)

	// ExpandedPathsTotal counts file paths produced by path expansion
	ExpandedPathsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mavis_config_expanded_paths_total",
			Help: "Total number of file paths produced by path expansion",
		},
		[]string{"kind"}, // kind: library, conversion, reference
	)

	// RowsCountedTotal counts input rows read for batch estimation
	RowsCountedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mavis_config_rows_counted_total",
			Help: "Total number of input rows counted for batch estimation",
		},
	)

	// APIRequestsTotal counts validation API requests
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mavis_config_api_requests_total",
			Help: "Total number of validation API requests",
		},
		[]string{"endpoint", "status"},
	)
)

// RecordValidation records the outcome of a validation
func RecordValidation(stage, result string, duration float64) {
	ValidationsTotal.WithLabelValues(stage, result).Inc()
	ValidationDuration.WithLabelValues(stage).Observe(duration)
}

// RecordExpandedPaths records paths produced by expansion
func RecordExpandedPaths(kind string, count int) {
	ExpandedPathsTotal.WithLabelValues(kind).Add(float64(count))
}

// RecordRowsCounted records rows read for batch estimation
func RecordRowsCounted(count int) {
	RowsCountedTotal.Add(float64(count))
}

// RecordAPIRequest records an API request outcome
func RecordAPIRequest(endpoint, status string) {
	APIRequestsTotal.WithLabelValues(endpoint, status).Inc()
}

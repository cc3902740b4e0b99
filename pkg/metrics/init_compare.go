package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initCompareMetrics() {
	r.ComparisonsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tck_comparisons_total",
			Help: "Total number of table comparisons by policy and outcome",
		},
		[]string{"policy", "outcome"},
	)

	r.ComparisonDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tck_comparison_duration_seconds",
			Help:    "Table comparison duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1.0},
		},
		[]string{"policy"},
	)

	r.ComparedRows = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tck_compared_rows",
			Help:    "Number of actual rows per comparison",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 1000},
		},
	)

	r.ChecksInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "tck_checks_in_flight",
			Help: "Number of checks currently running",
		},
	)
}

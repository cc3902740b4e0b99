package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initParseMetrics() {
	r.ParsesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tck_parses_total",
			Help: "Total number of literal and table parses",
		},
		[]string{"kind", "status"},
	)

	r.ParseErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "tck_parse_errors_total",
			Help: "Parse failures by cause",
		},
		[]string{"cause"},
	)

	r.ParseDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tck_parse_duration_seconds",
			Help:    "Parse duration in seconds",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
		},
		[]string{"kind"},
	)

	r.ParsedRows = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tck_parsed_rows",
			Help:    "Number of rows per parsed expected table",
			Buckets: []float64{0, 1, 5, 10, 50, 100, 1000},
		},
	)
}

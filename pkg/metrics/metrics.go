package metrics

import (
	"time"
)

// Parse kinds
const (
	KindValue = "value"
	KindTable = "table"
)

// Comparison outcomes
const (
	OutcomeMatch       = "match"
	OutcomeMismatch    = "mismatch"
	OutcomeSchemaError = "schema_error"
)

// RecordParse records one parse. An empty cause means the parse succeeded;
// rows is only observed for successful table parses.
func (r *Registry) RecordParse(kind, cause string, rows int, duration time.Duration) {
	status := "success"
	if cause != "" {
		status = "error"
		r.ParseErrorsTotal.WithLabelValues(cause).Inc()
	}
	r.ParsesTotal.WithLabelValues(kind, status).Inc()
	r.ParseDuration.WithLabelValues(kind).Observe(duration.Seconds())

	if kind == KindTable && cause == "" {
		r.ParsedRows.Observe(float64(rows))
	}
}

// RecordComparison records one table comparison
func (r *Registry) RecordComparison(policy, outcome string, rows int, duration time.Duration) {
	r.ComparisonsTotal.WithLabelValues(policy, outcome).Inc()
	r.ComparisonDuration.WithLabelValues(policy).Observe(duration.Seconds())
	r.ComparedRows.Observe(float64(rows))
}

// TrackCheck marks a check as running until the returned func is called
func (r *Registry) TrackCheck() func() {
	r.ChecksInFlight.Inc()
	return r.ChecksInFlight.Dec
}

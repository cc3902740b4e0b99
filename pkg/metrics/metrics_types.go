// Package metrics exposes Prometheus counters and histograms for table
// parsing and comparison.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics of the checker
type Registry struct {
	// Parse Metrics
	ParsesTotal      *prometheus.CounterVec
	ParseErrorsTotal *prometheus.CounterVec
	ParseDuration    *prometheus.HistogramVec
	ParsedRows       prometheus.Histogram

	// Comparison Metrics
	ComparisonsTotal   *prometheus.CounterVec
	ComparisonDuration *prometheus.HistogramVec
	ComparedRows       prometheus.Histogram
	ChecksInFlight     prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initParseMetrics()
	r.initCompareMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

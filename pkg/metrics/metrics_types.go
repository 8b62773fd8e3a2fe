package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	HTTPRequestsInFlight  prometheus.Gauge
	HTTPResponseSizeBytes *prometheus.HistogramVec

	// Namespace Metrics
	NamespaceObjectsTotal         *prometheus.GaugeVec
	NamespaceRegistrationsTotal   *prometheus.CounterVec
	NamespaceRegistrationDuration *prometheus.HistogramVec

	// Validation Metrics
	ValidationRunsTotal   *prometheus.CounterVec
	ValidationViolations  *prometheus.CounterVec
	ValidationRunDuration prometheus.Histogram

	// Export Metrics
	ExportsTotal   *prometheus.CounterVec
	ExportDuration *prometheus.HistogramVec

	// Snapshot Metrics
	SnapshotOperationsTotal   *prometheus.CounterVec
	SnapshotOperationDuration *prometheus.HistogramVec
	SnapshotSizeBytes         prometheus.Gauge

	// Event Metrics
	EventsPublishedTotal *prometheus.CounterVec
	EventSubscribers     prometheus.Gauge

	// System Metrics
	UptimeSeconds    prometheus.Gauge
	GoRoutines       prometheus.Gauge
	MemoryAllocBytes prometheus.Gauge
	MemorySysBytes   prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
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
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initHTTPMetrics()
	r.initNamespaceMetrics()
	r.initValidationMetrics()
	r.initExportMetrics()
	r.initSnapshotMetrics()
	r.initEventMetrics()
	r.initSystemMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

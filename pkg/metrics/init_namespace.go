package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initNamespaceMetrics() {
	r.NamespaceObjectsTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gonml_namespace_objects_total",
			Help: "Number of objects in the namespace by kind",
		},
		[]string{"kind"},
	)

	r.NamespaceRegistrationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gonml_namespace_registrations_total",
			Help: "Total number of registration attempts",
		},
		[]string{"kind", "status"},
	)

	r.NamespaceRegistrationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gonml_namespace_registration_duration_seconds",
			Help:    "Registration duration in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"kind"},
	)
}

func (r *Registry) initValidationMetrics() {
	r.ValidationRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gonml_validation_runs_total",
			Help: "Total number of constraint validation runs",
		},
		[]string{"status"},
	)

	r.ValidationViolations = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gonml_validation_violations_total",
			Help: "Constraint violations found, by type and severity",
		},
		[]string{"type", "severity"},
	)

	r.ValidationRunDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gonml_validation_run_duration_seconds",
			Help:    "Constraint validation run duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)
}

func (r *Registry) initExportMetrics() {
	r.ExportsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gonml_exports_total",
			Help: "Total number of namespace exports by format",
		},
		[]string{"format", "status"},
	)

	r.ExportDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gonml_export_duration_seconds",
			Help:    "Namespace export duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"format"},
	)
}

func (r *Registry) initSnapshotMetrics() {
	r.SnapshotOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gonml_snapshot_operations_total",
			Help: "Total number of snapshot save/load operations",
		},
		[]string{"operation", "status"},
	)

	r.SnapshotOperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gonml_snapshot_operation_duration_seconds",
			Help:    "Snapshot operation duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"operation"},
	)

	r.SnapshotSizeBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gonml_snapshot_size_bytes",
			Help: "Size of the last written snapshot in bytes",
		},
	)
}

func (r *Registry) initEventMetrics() {
	r.EventsPublishedTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gonml_events_published_total",
			Help: "Total number of topology events published by topic",
		},
		[]string{"topic"},
	)

	r.EventSubscribers = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gonml_event_subscribers",
			Help: "Current number of event bus subscribers",
		},
	)
}

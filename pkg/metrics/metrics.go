// Package metrics exposes Prometheus instrumentation for the topology
// service.
package metrics

import (
	"runtime"
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordRegistration records a registration attempt for an object kind
func (r *Registry) RecordRegistration(kind, status string, duration time.Duration) {
	r.NamespaceRegistrationsTotal.WithLabelValues(kind, status).Inc()
	r.NamespaceRegistrationDuration.WithLabelValues(kind).Observe(duration.Seconds())
}

// UpdateNamespaceCounts updates the per-kind object gauges
func (r *Registry) UpdateNamespaceCounts(nodes, ports, links, biports, bilinks, topologies, services int) {
	r.NamespaceObjectsTotal.WithLabelValues("Node").Set(float64(nodes))
	r.NamespaceObjectsTotal.WithLabelValues("Port").Set(float64(ports))
	r.NamespaceObjectsTotal.WithLabelValues("Link").Set(float64(links))
	r.NamespaceObjectsTotal.WithLabelValues("BidirectionalPort").Set(float64(biports))
	r.NamespaceObjectsTotal.WithLabelValues("BidirectionalLink").Set(float64(bilinks))
	r.NamespaceObjectsTotal.WithLabelValues("Topology").Set(float64(topologies))
	r.NamespaceObjectsTotal.WithLabelValues("Service").Set(float64(services))
}

// RecordValidationRun records a constraint validation run
func (r *Registry) RecordValidationRun(status string, duration time.Duration) {
	r.ValidationRunsTotal.WithLabelValues(status).Inc()
	r.ValidationRunDuration.Observe(duration.Seconds())
}

// RecordViolation records a single constraint violation
func (r *Registry) RecordViolation(violationType, severity string) {
	r.ValidationViolations.WithLabelValues(violationType, severity).Inc()
}

// RecordExport records a namespace export
func (r *Registry) RecordExport(format, status string, duration time.Duration) {
	r.ExportsTotal.WithLabelValues(format, status).Inc()
	r.ExportDuration.WithLabelValues(format).Observe(duration.Seconds())
}

// RecordSnapshotOperation records a snapshot save or load
func (r *Registry) RecordSnapshotOperation(operation, status string, duration time.Duration) {
	r.SnapshotOperationsTotal.WithLabelValues(operation, status).Inc()
	r.SnapshotOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordEventPublished records a published topology event
func (r *Registry) RecordEventPublished(topic string) {
	r.EventsPublishedTotal.WithLabelValues(topic).Inc()
}

// SetEventSubscribers sets the current subscriber count
func (r *Registry) SetEventSubscribers(n int) {
	r.EventSubscribers.Set(float64(n))
}

// UpdateSystemMetrics refreshes runtime-derived gauges
func (r *Registry) UpdateSystemMetrics(startTime time.Time) {
	r.UptimeSeconds.Set(time.Since(startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	r.MemoryAllocBytes.Set(float64(m.Alloc))
	r.MemorySysBytes.Set(float64(m.Sys))
}

package health

import "time"

// Common health check functions

// SimpleCheck creates a simple health check that always returns healthy
func SimpleCheck(name string) Check {
	return Check{
		Name:        name,
		Status:      StatusHealthy,
		LastChecked: time.Now(),
	}
}

// NamespaceCheck reports on the topology namespace: object count and
// rejected-registration ratio.
func NamespaceCheck(getState func() (objects, registered, rejected uint64)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "namespace",
			Details: make(map[string]any),
		}

		objects, registered, rejected := getState()

		check.Details["objects"] = objects
		check.Details["registered"] = registered
		check.Details["rejected"] = rejected

		attempts := registered + rejected
		if attempts > 0 && float64(rejected)/float64(attempts) > 0.5 {
			check.Status = StatusDegraded
			check.Message = "High registration rejection rate"
		} else {
			check.Status = StatusHealthy
			check.Message = "Namespace operational"
		}

		return check
	}
}

// ConstraintCheck runs structural validation of the namespace.
func ConstraintCheck(validateFunc func() (violations int, err error)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "constraints",
			Details: make(map[string]any),
		}

		violations, err := validateFunc()
		if err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
			return check
		}

		check.Details["violations"] = violations

		if violations > 0 {
			check.Status = StatusDegraded
			check.Message = "Namespace has constraint violations"
		} else {
			check.Status = StatusHealthy
			check.Message = "All constraints satisfied"
		}

		return check
	}
}

// SnapshotDirCheck verifies that the snapshot directory is writable.
func SnapshotDirCheck(probeFunc func() error) CheckFunc {
	return func() Check {
		check := Check{
			Name: "snapshot_dir",
		}

		if err := probeFunc(); err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
		} else {
			check.Status = StatusHealthy
			check.Message = "Writable"
		}

		return check
	}
}

// EventBusCheck reports on the event bus subscriber population.
func EventBusCheck(getSubscribers func() int) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "event_bus",
			Details: make(map[string]any),
		}

		subscribers := getSubscribers()
		check.Details["subscribers"] = subscribers

		check.Status = StatusHealthy
		check.Message = "Event bus operational"

		return check
	}
}

// MemoryCheck creates a health check for memory usage
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		alloc, sys := getUsage()

		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		usagePercent := float64(alloc) / float64(sys) * 100

		if usagePercent > 90 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}

		return check
	}
}

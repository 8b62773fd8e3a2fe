package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewHealthChecker(t *testing.T) {
	hc := NewHealthChecker()

	if hc == nil {
		t.Fatal("NewHealthChecker returned nil")
	}
	if hc.checks == nil {
		t.Error("checks map not initialized")
	}
	if hc.readyChecks == nil {
		t.Error("readyChecks map not initialized")
	}
	if hc.liveChecks == nil {
		t.Error("liveChecks map not initialized")
	}
}

func TestRegisterCheck(t *testing.T) {
	hc := NewHealthChecker()

	called := false
	hc.RegisterCheck("test", func() Check {
		called = true
		return Check{Status: StatusHealthy}
	})

	resp := hc.Check()
	if !called {
		t.Error("registered check was not called")
	}
	if _, exists := resp.Checks["test"]; !exists {
		t.Error("check result not in response")
	}
}

func TestRegisterReadinessCheck(t *testing.T) {
	hc := NewHealthChecker()

	called := false
	hc.RegisterReadinessCheck("ready-test", func() Check {
		called = true
		return Check{Status: StatusHealthy}
	})

	// Should not be called for regular Check()
	hc.Check()
	if called {
		t.Error("readiness check should not be called for Check()")
	}

	resp := hc.CheckReadiness()
	if !called {
		t.Error("readiness check was not called")
	}
	if _, exists := resp.Checks["ready-test"]; !exists {
		t.Error("readiness check result not in response")
	}
}

func TestWorstStatusWins(t *testing.T) {
	hc := NewHealthChecker()

	hc.RegisterCheck("ok", func() Check {
		return Check{Status: StatusHealthy}
	})
	hc.RegisterCheck("degraded", func() Check {
		return Check{Status: StatusDegraded}
	})

	resp := hc.Check()
	if resp.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", resp.Status)
	}

	hc.RegisterCheck("down", func() Check {
		return Check{Status: StatusUnhealthy}
	})

	resp = hc.Check()
	if resp.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", resp.Status)
	}
}

func TestNamespaceCheck(t *testing.T) {
	healthy := NamespaceCheck(func() (uint64, uint64, uint64) {
		return 10, 10, 0
	})()
	if healthy.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", healthy.Status)
	}

	degraded := NamespaceCheck(func() (uint64, uint64, uint64) {
		return 2, 2, 8
	})()
	if degraded.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", degraded.Status)
	}
}

func TestConstraintCheck(t *testing.T) {
	clean := ConstraintCheck(func() (int, error) {
		return 0, nil
	})()
	if clean.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", clean.Status)
	}

	violated := ConstraintCheck(func() (int, error) {
		return 3, nil
	})()
	if violated.Status != StatusDegraded {
		t.Errorf("Status = %v, want degraded", violated.Status)
	}

	failed := ConstraintCheck(func() (int, error) {
		return 0, errors.New("validation failed")
	})()
	if failed.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", failed.Status)
	}
}

func TestSnapshotDirCheck(t *testing.T) {
	ok := SnapshotDirCheck(func() error { return nil })()
	if ok.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", ok.Status)
	}

	bad := SnapshotDirCheck(func() error { return errors.New("read-only filesystem") })()
	if bad.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", bad.Status)
	}
}

func TestHTTPHandler(t *testing.T) {
	hc := NewHealthChecker()
	hc.RegisterCheck("ok", func() Check {
		return Check{Status: StatusHealthy}
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hc.HTTPHandler()(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", rec.Code)
	}

	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != StatusHealthy {
		t.Errorf("Status = %v, want healthy", resp.Status)
	}
}

func TestHTTPHandler_Unhealthy(t *testing.T) {
	hc := NewHealthChecker()
	hc.RegisterCheck("down", func() Check {
		return Check{Status: StatusUnhealthy, Message: "broken"}
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	hc.HTTPHandler()(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", rec.Code)
	}
}

func TestReadinessHandler(t *testing.T) {
	hc := NewHealthChecker()
	hc.RegisterReadinessCheck("ready", func() Check {
		return Check{Status: StatusHealthy}
	})

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	hc.ReadinessHandler()(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", rec.Code)
	}
}

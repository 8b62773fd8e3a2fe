package api

import (
	"net/http"
	"time"

	"github.com/opennml/gonml/pkg/constraints"
	"github.com/opennml/gonml/pkg/dot"
	"github.com/opennml/gonml/pkg/logging"
	"github.com/opennml/gonml/pkg/nmlxml"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.NewMethodRouter(w, r).
		Get(func() { s.respondJSON(w, http.StatusOK, s.ns.Stats()) }).
		NotAllowed()
}

// validate runs the structural constraint set over the namespace.
func (s *Server) validate() (*constraints.ValidationResult, error) {
	return constraints.NewStructuralValidator().Validate(s.ns)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	start := time.Now()
	result, err := s.validate()
	if err != nil {
		s.registry.RecordValidationRun("error", time.Since(start))
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "validate"))
		return
	}

	status := "valid"
	if !result.Valid {
		status = "invalid"
	}
	s.registry.RecordValidationRun(status, time.Since(start))
	for _, v := range result.Violations {
		s.registry.RecordViolation(v.Type.String(), v.Severity.String())
	}

	s.respondJSON(w, http.StatusOK, ValidateResponse{
		Valid:      result.Valid,
		CheckedAt:  result.CheckedAt,
		Violations: violationResponses(result.Violations),
		Time:       time.Since(start).String(),
	})
}

func (s *Server) handleExportNML(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	start := time.Now()
	opts := nmlxml.ExportOptions{
		Name: r.URL.Query().Get("name"),
	}

	w.Header().Set("Content-Type", "application/xml")
	if err := nmlxml.Export(w, s.ns, opts); err != nil {
		s.registry.RecordExport("nml", "error", time.Since(start))
		s.logger.Error("nml export failed", logging.Error(err))
		return
	}
	s.registry.RecordExport("nml", "ok", time.Since(start))
}

func (s *Server) handleExportDOT(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	start := time.Now()
	query := r.URL.Query()
	opts := dot.Options{
		GraphName:      query.Get("name"),
		Unidirectional: query.Get("unidirectional") == "true",
		ShowPorts:      query.Get("ports") == "true",
	}

	w.Header().Set("Content-Type", "text/vnd.graphviz")
	if err := dot.Export(w, s.ns, opts); err != nil {
		s.registry.RecordExport("dot", "error", time.Since(start))
		s.logger.Error("dot export failed", logging.Error(err))
		return
	}
	s.registry.RecordExport("dot", "ok", time.Since(start))
}

func (s *Server) handleVisualization(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var layout dot.Layout
	switch r.URL.Query().Get("layout") {
	case "", "circular":
		layout = dot.NewCircularLayout(nil)
	case "hierarchical":
		layout = dot.NewHierarchicalLayout(nil)
	default:
		s.respondError(w, http.StatusBadRequest, "Unknown layout")
		return
	}

	positions, err := layout.ComputeLayout(s.ns)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "compute layout"))
		return
	}

	viz := &dot.Visualization{Manager: s.ns, Positions: positions}
	data, err := viz.ExportJSON()
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "export visualization"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	if s.snapshots == nil {
		s.respondError(w, http.StatusServiceUnavailable, "Snapshots not configured")
		return
	}

	start := time.Now()
	if err := s.snapshots.Save(s.ns); err != nil {
		s.registry.RecordSnapshotOperation("save", "error", time.Since(start))
		s.respondError(w, http.StatusInternalServerError, s.sanitizeError(err, "save snapshot"))
		return
	}
	s.registry.RecordSnapshotOperation("save", "ok", time.Since(start))

	s.respondJSON(w, http.StatusOK, map[string]any{
		"path": s.snapshots.Path(),
		"time": time.Since(start).String(),
	})
}

package constraints

import (
	"testing"

	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/topology"
)

func TestValidator_AgainstManagerBuiltNamespace(t *testing.T) {
	m := topology.New()
	sw1, _ := m.CreateNode("sw1")
	sw2, _ := m.CreateNode("sw2")
	p1, err := m.CreateBiport(sw1.ID, "p1")
	if err != nil {
		t.Fatalf("CreateBiport failed: %v", err)
	}
	p2, err := m.CreateBiport(sw2.ID, "p2")
	if err != nil {
		t.Fatalf("CreateBiport failed: %v", err)
	}
	if _, err := m.CreateBilink(p1.ID, p2.ID, ""); err != nil {
		t.Fatalf("CreateBilink failed: %v", err)
	}

	result, err := NewStructuralValidator().Validate(m)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !result.Valid {
		t.Errorf("manager-built namespace reported violations: %v", result.Violations)
	}
}

func TestPortLinkCardinality_TooManyLinks(t *testing.T) {
	f := twoNodeFake()
	f.ports = append(f.ports, &nml.Port{
		ObjectMeta: nml.ObjectMeta{ID: "nml:b_in2"},
		Direction:  nml.Inbound,
		Node:       "nml:b",
	})
	// Second link sharing source port a_out.
	f.links = append(f.links, &nml.Link{
		ObjectMeta: nml.ObjectMeta{ID: "nml:a-b2"},
		Source:     "nml:a_out",
		Sink:       "nml:b_in2",
	})

	violations, err := (&PortLinkCardinalityConstraint{}).Validate(f)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	var found bool
	for _, v := range violations {
		if v.Type == CardinalityViolation && v.ObjectID == "nml:a_out" {
			found = true
		}
	}
	if !found {
		t.Errorf("no CardinalityViolation for port nml:a_out, got %v", violations)
	}
}

func TestUniqueIDConstraint_Duplicate(t *testing.T) {
	f := twoNodeFake()
	// A link reusing a node identifier.
	f.links = append(f.links, &nml.Link{
		ObjectMeta: nml.ObjectMeta{ID: "nml:a"},
		Source:     "nml:a_out",
		Sink:       "nml:b_in",
	})

	violations, err := (&UniqueIDConstraint{}).Validate(f)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if len(violations) != 1 || violations[0].Type != DuplicateIdentifier {
		t.Errorf("violations = %v, want one DuplicateIdentifier", violations)
	}
}

func TestValidationResult_Filters(t *testing.T) {
	result := &ValidationResult{
		Valid: false,
		Violations: []Violation{
			{Type: DirectionMismatch, Severity: Error},
			{Type: DanglingReference, Severity: Warning},
			{Type: DirectionMismatch, Severity: Error},
		},
	}

	if got := len(result.GetViolationsBySeverity(Error)); got != 2 {
		t.Errorf("GetViolationsBySeverity(Error) = %d, want 2", got)
	}
	if got := len(result.GetViolationsByType(DanglingReference)); got != 1 {
		t.Errorf("GetViolationsByType(DanglingReference) = %d, want 1", got)
	}
}

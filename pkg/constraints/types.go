package constraints

import (
	"github.com/opennml/gonml/pkg/nml"
)

// TopologyReader defines the read-only operations needed for constraint
// validation. The topology manager implements it; tests can substitute
// lighter fakes.
type TopologyReader interface {
	Nodes() []*nml.Node
	Ports() []*nml.Port
	Links() []*nml.Link
	Biports() []*nml.BidirectionalPort
	Bilinks() []*nml.BidirectionalLink

	Port(id nml.ObjectID) (*nml.Port, error)
	Link(id nml.ObjectID) (*nml.Link, error)
}

// Severity indicates the importance of a violation
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	default:
		return "Unknown"
	}
}

// ViolationType categorizes the type of constraint violation
type ViolationType int

const (
	DanglingReference ViolationType = iota
	DirectionMismatch
	EndpointCollision
	CardinalityViolation
	AggregateMismatch
	DuplicateIdentifier
)

func (vt ViolationType) String() string {
	switch vt {
	case DanglingReference:
		return "DanglingReference"
	case DirectionMismatch:
		return "DirectionMismatch"
	case EndpointCollision:
		return "EndpointCollision"
	case CardinalityViolation:
		return "CardinalityViolation"
	case AggregateMismatch:
		return "AggregateMismatch"
	case DuplicateIdentifier:
		return "DuplicateIdentifier"
	default:
		return "Unknown"
	}
}

// Violation represents a constraint violation
type Violation struct {
	Type       ViolationType
	Severity   Severity
	ObjectID   nml.ObjectID
	Constraint string
	Message    string
	Details    map[string]any
}

// Constraint is the interface that all constraint types must implement.
type Constraint interface {
	// Validate checks the constraint against the namespace.
	// Returns a list of violations (empty if valid).
	Validate(topo TopologyReader) ([]Violation, error)

	// Name returns a human-readable name for the constraint
	Name() string
}

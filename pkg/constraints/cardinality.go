package constraints

import (
	"fmt"

	"github.com/opennml/gonml/pkg/nml"
)

// PortLinkCardinalityConstraint checks that each port is the source of at
// most one link and the sink of at most one link, and that the port/link
// attachment references agree in both directions.
type PortLinkCardinalityConstraint struct{}

// Name returns the constraint name
func (pl *PortLinkCardinalityConstraint) Name() string {
	return "PortLinkCardinalityConstraint"
}

// Validate counts link attachments per port
func (pl *PortLinkCardinalityConstraint) Validate(topo TopologyReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	sources := make(map[nml.ObjectID][]nml.ObjectID)
	sinks := make(map[nml.ObjectID][]nml.ObjectID)
	for _, link := range topo.Links() {
		sources[link.Source] = append(sources[link.Source], link.ID)
		sinks[link.Sink] = append(sinks[link.Sink], link.ID)
	}

	for portID, links := range sources {
		if len(links) > 1 {
			violations = append(violations, pl.tooMany(portID, "source", links))
		}
	}
	for portID, links := range sinks {
		if len(links) > 1 {
			violations = append(violations, pl.tooMany(portID, "sink", links))
		}
	}

	// Attachment references must agree with the link endpoints.
	for _, port := range topo.Ports() {
		if !port.SourceOf.IsZero() {
			link, err := topo.Link(port.SourceOf)
			if err != nil || link.Source != port.ID {
				violations = append(violations, pl.disagrees(port.ID, "isSource", port.SourceOf))
			}
		}
		if !port.SinkOf.IsZero() {
			link, err := topo.Link(port.SinkOf)
			if err != nil || link.Sink != port.ID {
				violations = append(violations, pl.disagrees(port.ID, "isSink", port.SinkOf))
			}
		}
	}

	return violations, nil
}

func (pl *PortLinkCardinalityConstraint) tooMany(portID nml.ObjectID, role string, links []nml.ObjectID) Violation {
	return Violation{
		Type:       CardinalityViolation,
		Severity:   Error,
		ObjectID:   portID,
		Constraint: pl.Name(),
		Message: fmt.Sprintf("Port %s is the %s of %d links, maximum is 1",
			portID, role, len(links)),
		Details: map[string]any{"role": role, "count": len(links)},
	}
}

func (pl *PortLinkCardinalityConstraint) disagrees(portID nml.ObjectID, relation string, linkID nml.ObjectID) Violation {
	return Violation{
		Type:       DanglingReference,
		Severity:   Error,
		ObjectID:   portID,
		Constraint: pl.Name(),
		Message: fmt.Sprintf("Port %s %s relation names link %s which does not reference it back",
			portID, relation, linkID),
		Details: map[string]any{"relation": relation, "link": string(linkID)},
	}
}

// UniqueIDConstraint checks that no identifier is used by more than one
// object. The manager guarantees this by construction; the constraint
// audits namespaces assembled from imported documents.
type UniqueIDConstraint struct{}

// Name returns the constraint name
func (u *UniqueIDConstraint) Name() string {
	return "UniqueIDConstraint"
}

// Validate scans all object identifiers for duplicates
func (u *UniqueIDConstraint) Validate(topo TopologyReader) ([]Violation, error) {
	violations := make([]Violation, 0)
	seen := make(map[nml.ObjectID]string)

	record := func(id nml.ObjectID, kind string) {
		if prior, dup := seen[id]; dup {
			violations = append(violations, Violation{
				Type:       DuplicateIdentifier,
				Severity:   Error,
				ObjectID:   id,
				Constraint: u.Name(),
				Message:    fmt.Sprintf("Identifier %s used by both %s and %s", id, prior, kind),
				Details:    map[string]any{"first": prior, "second": kind},
			})
			return
		}
		seen[id] = kind
	}

	for _, node := range topo.Nodes() {
		record(node.ID, "Node")
	}
	for _, port := range topo.Ports() {
		record(port.ID, "Port")
	}
	for _, link := range topo.Links() {
		record(link.ID, "Link")
	}
	for _, biport := range topo.Biports() {
		record(biport.ID, "BidirectionalPort")
	}
	for _, bilink := range topo.Bilinks() {
		record(bilink.ID, "BidirectionalLink")
	}

	return violations, nil
}

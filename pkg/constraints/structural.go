package constraints

import (
	"fmt"

	"github.com/opennml/gonml/pkg/nml"
)

// PortDirectionConstraint checks that every port listed in a node's
// inbound or outbound relation carries the matching direction and names
// that node as its owner.
type PortDirectionConstraint struct{}

// Name returns the constraint name
func (pd *PortDirectionConstraint) Name() string {
	return "PortDirectionConstraint"
}

// Validate checks port directions against node port lists
func (pd *PortDirectionConstraint) Validate(topo TopologyReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	for _, node := range topo.Nodes() {
		lists := []struct {
			ids  []nml.ObjectID
			want nml.Direction
		}{
			{node.InboundPorts, nml.Inbound},
			{node.OutboundPorts, nml.Outbound},
		}
		for _, list := range lists {
			for _, portID := range list.ids {
				port, err := topo.Port(portID)
				if err != nil {
					violations = append(violations, Violation{
						Type:       DanglingReference,
						Severity:   Error,
						ObjectID:   portID,
						Constraint: pd.Name(),
						Message:    fmt.Sprintf("Node %s references unknown port %s", node.ID, portID),
						Details:    map[string]any{"node": string(node.ID)},
					})
					continue
				}
				if port.Direction != list.want {
					violations = append(violations, Violation{
						Type:       DirectionMismatch,
						Severity:   Error,
						ObjectID:   portID,
						Constraint: pd.Name(),
						Message: fmt.Sprintf("Port %s listed as %s port of node %s but has direction %s",
							portID, list.want, node.ID, port.Direction),
						Details: map[string]any{
							"node":     string(node.ID),
							"expected": list.want.String(),
							"actual":   port.Direction.String(),
						},
					})
				}
				if port.Node != node.ID {
					violations = append(violations, Violation{
						Type:       AggregateMismatch,
						Severity:   Error,
						ObjectID:   portID,
						Constraint: pd.Name(),
						Message: fmt.Sprintf("Port %s listed by node %s but owned by %s",
							portID, node.ID, port.Node),
						Details: map[string]any{
							"listed_by": string(node.ID),
							"owner":     string(port.Node),
						},
					})
				}
			}
		}
	}

	return violations, nil
}

// LinkEndpointConstraint checks that every link runs from an outbound
// source port to an inbound sink port owned by different nodes.
type LinkEndpointConstraint struct{}

// Name returns the constraint name
func (le *LinkEndpointConstraint) Name() string {
	return "LinkEndpointConstraint"
}

// Validate checks link endpoint roles and ownership
func (le *LinkEndpointConstraint) Validate(topo TopologyReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	for _, link := range topo.Links() {
		source, err := topo.Port(link.Source)
		if err != nil {
			violations = append(violations, le.dangling(link.ID, link.Source, "source"))
			continue
		}
		sink, err := topo.Port(link.Sink)
		if err != nil {
			violations = append(violations, le.dangling(link.ID, link.Sink, "sink"))
			continue
		}

		if source.Direction != nml.Outbound {
			violations = append(violations, Violation{
				Type:       DirectionMismatch,
				Severity:   Error,
				ObjectID:   link.ID,
				Constraint: le.Name(),
				Message:    fmt.Sprintf("Link %s source %s is not an outbound port", link.ID, source.ID),
			})
		}
		if sink.Direction != nml.Inbound {
			violations = append(violations, Violation{
				Type:       DirectionMismatch,
				Severity:   Error,
				ObjectID:   link.ID,
				Constraint: le.Name(),
				Message:    fmt.Sprintf("Link %s sink %s is not an inbound port", link.ID, sink.ID),
			})
		}
		if source.Node == sink.Node {
			violations = append(violations, Violation{
				Type:       EndpointCollision,
				Severity:   Error,
				ObjectID:   link.ID,
				Constraint: le.Name(),
				Message:    fmt.Sprintf("Link %s connects two ports of node %s", link.ID, source.Node),
				Details:    map[string]any{"node": string(source.Node)},
			})
		}
	}

	return violations, nil
}

func (le *LinkEndpointConstraint) dangling(linkID, portID nml.ObjectID, role string) Violation {
	return Violation{
		Type:       DanglingReference,
		Severity:   Error,
		ObjectID:   linkID,
		Constraint: le.Name(),
		Message:    fmt.Sprintf("Link %s references unknown %s port %s", linkID, role, portID),
		Details:    map[string]any{"role": role, "port": string(portID)},
	}
}

// BiportPairConstraint checks that every bidirectional port aggregates
// two distinct ports of the same node with opposite directions.
type BiportPairConstraint struct{}

// Name returns the constraint name
func (bp *BiportPairConstraint) Name() string {
	return "BiportPairConstraint"
}

// Validate checks bidirectional port membership
func (bp *BiportPairConstraint) Validate(topo TopologyReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	for _, biport := range topo.Biports() {
		if biport.Ports[0] == biport.Ports[1] {
			violations = append(violations, Violation{
				Type:       AggregateMismatch,
				Severity:   Error,
				ObjectID:   biport.ID,
				Constraint: bp.Name(),
				Message:    fmt.Sprintf("BidirectionalPort %s lists the same port twice", biport.ID),
			})
			continue
		}

		first, errFirst := topo.Port(biport.Ports[0])
		second, errSecond := topo.Port(biport.Ports[1])
		if errFirst != nil || errSecond != nil {
			violations = append(violations, Violation{
				Type:       DanglingReference,
				Severity:   Error,
				ObjectID:   biport.ID,
				Constraint: bp.Name(),
				Message:    fmt.Sprintf("BidirectionalPort %s references unknown member ports", biport.ID),
			})
			continue
		}

		if first.Node != second.Node {
			violations = append(violations, Violation{
				Type:       AggregateMismatch,
				Severity:   Error,
				ObjectID:   biport.ID,
				Constraint: bp.Name(),
				Message: fmt.Sprintf("BidirectionalPort %s members span nodes %s and %s",
					biport.ID, first.Node, second.Node),
			})
		}
		if first.Direction == second.Direction {
			violations = append(violations, Violation{
				Type:       DirectionMismatch,
				Severity:   Error,
				ObjectID:   biport.ID,
				Constraint: bp.Name(),
				Message: fmt.Sprintf("BidirectionalPort %s members share direction %s",
					biport.ID, first.Direction),
			})
		}
	}

	return violations, nil
}

// BilinkPairConstraint checks that every bidirectional link aggregates
// two distinct links forming a reciprocal pair between the same two
// nodes.
type BilinkPairConstraint struct{}

// Name returns the constraint name
func (bl *BilinkPairConstraint) Name() string {
	return "BilinkPairConstraint"
}

// Validate checks bidirectional link membership
func (bl *BilinkPairConstraint) Validate(topo TopologyReader) ([]Violation, error) {
	violations := make([]Violation, 0)

	for _, bilink := range topo.Bilinks() {
		if bilink.Links[0] == bilink.Links[1] {
			violations = append(violations, Violation{
				Type:       AggregateMismatch,
				Severity:   Error,
				ObjectID:   bilink.ID,
				Constraint: bl.Name(),
				Message:    fmt.Sprintf("BidirectionalLink %s lists the same link twice", bilink.ID),
			})
			continue
		}

		first, errFirst := topo.Link(bilink.Links[0])
		second, errSecond := topo.Link(bilink.Links[1])
		if errFirst != nil || errSecond != nil {
			violations = append(violations, Violation{
				Type:       DanglingReference,
				Severity:   Error,
				ObjectID:   bilink.ID,
				Constraint: bl.Name(),
				Message:    fmt.Sprintf("BidirectionalLink %s references unknown member links", bilink.ID),
			})
			continue
		}

		firstSrc, err1 := topo.Port(first.Source)
		firstSink, err2 := topo.Port(first.Sink)
		secondSrc, err3 := topo.Port(second.Source)
		secondSink, err4 := topo.Port(second.Sink)
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			// Dangling link endpoints are LinkEndpointConstraint territory.
			continue
		}

		if firstSrc.Node != secondSink.Node || firstSink.Node != secondSrc.Node {
			violations = append(violations, Violation{
				Type:       AggregateMismatch,
				Severity:   Error,
				ObjectID:   bilink.ID,
				Constraint: bl.Name(),
				Message:    fmt.Sprintf("BidirectionalLink %s members are not a reciprocal pair", bilink.ID),
				Details: map[string]any{
					"first_source":  string(firstSrc.Node),
					"first_sink":    string(firstSink.Node),
					"second_source": string(secondSrc.Node),
					"second_sink":   string(secondSink.Node),
				},
			})
		}
	}

	return violations, nil
}

package topology

import (
	"fmt"

	"github.com/opennml/gonml/pkg/nml"
)

// The builders mirror the convenience constructors of the original NML
// tooling: one call creates an aggregate together with its directed
// sub-objects and wires every relation through the namespace.

// CreateNode creates and registers a named node.
func (m *Manager) CreateNode(name string) (*nml.Node, error) {
	return m.RegisterNode(&nml.Node{ObjectMeta: nml.ObjectMeta{Name: name}})
}

// CreateBiport creates a bidirectional port on a node together with its
// inbound and outbound sub-ports, named "<name>_in" and "<name>_out". An
// empty name derives "port<N>" from the node's current port count.
func (m *Manager) CreateBiport(nodeID nml.ObjectID, name string) (*nml.BidirectionalPort, error) {
	if name == "" {
		node, err := m.Node(nodeID)
		if err != nil {
			return nil, err
		}
		name = fmt.Sprintf("port%d", len(node.InboundPorts)+1)
	}

	in, err := m.RegisterPort(&nml.Port{
		ObjectMeta: nml.ObjectMeta{Name: name + "_in"},
		Direction:  nml.Inbound,
		Node:       nodeID,
	})
	if err != nil {
		return nil, err
	}
	out, err := m.RegisterPort(&nml.Port{
		ObjectMeta: nml.ObjectMeta{Name: name + "_out"},
		Direction:  nml.Outbound,
		Node:       nodeID,
	})
	if err != nil {
		return nil, err
	}

	return m.RegisterBidirectionalPort(&nml.BidirectionalPort{
		ObjectMeta: nml.ObjectMeta{Name: name},
		Ports:      [2]nml.ObjectID{in.ID, out.ID},
	})
}

// CreateBilink connects two bidirectional ports on different nodes with a
// bidirectional link, creating the two reciprocal sub-links
// "<name>_link_a_b" and "<name>_link_b_a".
func (m *Manager) CreateBilink(biportA, biportB nml.ObjectID, name string) (*nml.BidirectionalLink, error) {
	a, err := m.Biport(biportA)
	if err != nil {
		return nil, err
	}
	b, err := m.Biport(biportB)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = a.Name + "--" + b.Name
	}

	ab, err := m.RegisterLink(&nml.Link{
		ObjectMeta: nml.ObjectMeta{Name: name + "_link_a_b"},
		Source:     a.Outbound(),
		Sink:       b.Inbound(),
	})
	if err != nil {
		return nil, err
	}
	ba, err := m.RegisterLink(&nml.Link{
		ObjectMeta: nml.ObjectMeta{Name: name + "_link_b_a"},
		Source:     b.Outbound(),
		Sink:       a.Inbound(),
	})
	if err != nil {
		return nil, err
	}

	return m.RegisterBidirectionalLink(&nml.BidirectionalLink{
		ObjectMeta: nml.ObjectMeta{Name: name},
		Links:      [2]nml.ObjectID{ab.ID, ba.ID},
	})
}

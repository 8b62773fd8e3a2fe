package topology

import (
	"github.com/opennml/gonml/pkg/nml"
)

// RegisterNode adds a node to the namespace. The node must not reference
// ports or services yet: those relations are established by RegisterPort
// and AttachService so the namespace can vouch for them.
func (m *Manager) RegisterNode(node *nml.Node) (*nml.Node, error) {
	const op = "RegisterNode"

	m.mu.Lock()
	stored, err := func() (*nml.Node, error) {
		if len(node.InboundPorts) > 0 || len(node.OutboundPorts) > 0 || len(node.Services) > 0 {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindNode).ID(node.ID).
				Context("relations must be registered through the namespace").
				Cause(nml.ErrWrongKind).Err())
		}

		stored := node.Clone()
		if err := m.admit(op, &stored.ObjectMeta); err != nil {
			return nil, err
		}

		m.nodes[stored.ID] = stored
		m.enter(stored.ID, nml.KindNode)
		m.stats.Nodes++
		return stored, nil
	}()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	node.ID = stored.ID
	m.publish(TopicNode, nml.KindNode, stored.ID, stored.Name)
	return stored.Clone(), nil
}

// RegisterPort adds a directional port under its owning node. The port's
// Node field names the owner; the declared direction must be inbound or
// outbound. Link attachment happens later through RegisterLink.
func (m *Manager) RegisterPort(port *nml.Port) (*nml.Port, error) {
	const op = "RegisterPort"

	m.mu.Lock()
	stored, err := func() (*nml.Port, error) {
		if port.Direction != nml.Inbound && port.Direction != nml.Outbound {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindPort).ID(port.ID).
				Cause(nml.ErrInvalidDirection).Err())
		}
		node, ok := m.nodes[port.Node]
		if !ok {
			return nil, m.reject(nml.NotFoundError(op, nml.KindNode, port.Node))
		}
		if !port.SinkOf.IsZero() || !port.SourceOf.IsZero() {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindPort).ID(port.ID).
				Context("link relations must be registered through RegisterLink").
				Cause(nml.ErrPortOccupied).Err())
		}

		stored := port.Clone()
		if err := m.admit(op, &stored.ObjectMeta); err != nil {
			return nil, err
		}

		m.ports[stored.ID] = stored
		if stored.Direction == nml.Inbound {
			node.InboundPorts = append(node.InboundPorts, stored.ID)
		} else {
			node.OutboundPorts = append(node.OutboundPorts, stored.ID)
		}
		m.enter(stored.ID, nml.KindPort)
		m.stats.Ports++
		return stored, nil
	}()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	port.ID = stored.ID
	m.publish(TopicPort, nml.KindPort, stored.ID, stored.Name)
	return stored.Clone(), nil
}

// RegisterLink adds a unidirectional link from an outbound source port to
// an inbound sink port on a different node. Each port carries at most one
// link per role, so a second link over the same port in the same
// direction is rejected.
func (m *Manager) RegisterLink(link *nml.Link) (*nml.Link, error) {
	const op = "RegisterLink"

	m.mu.Lock()
	stored, err := func() (*nml.Link, error) {
		source, ok := m.ports[link.Source]
		if !ok {
			return nil, m.reject(nml.NotFoundError(op, nml.KindPort, link.Source))
		}
		sink, ok := m.ports[link.Sink]
		if !ok {
			return nil, m.reject(nml.NotFoundError(op, nml.KindPort, link.Sink))
		}
		if source.Direction != nml.Outbound {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindPort).ID(source.ID).
				Context("source must be an outbound port").
				Cause(nml.ErrInvalidDirection).Err())
		}
		if sink.Direction != nml.Inbound {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindPort).ID(sink.ID).
				Context("sink must be an inbound port").
				Cause(nml.ErrInvalidDirection).Err())
		}
		if source.Node == sink.Node {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindLink).ID(link.ID).
				Cause(nml.ErrSameNode).Err())
		}
		if !source.SourceOf.IsZero() {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindPort).ID(source.ID).
				Context("already the source of " + string(source.SourceOf)).
				Cause(nml.ErrPortOccupied).Err())
		}
		if !sink.SinkOf.IsZero() {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindPort).ID(sink.ID).
				Context("already the sink of " + string(sink.SinkOf)).
				Cause(nml.ErrPortOccupied).Err())
		}

		stored := link.Clone()
		if err := m.admit(op, &stored.ObjectMeta); err != nil {
			return nil, err
		}

		m.links[stored.ID] = stored
		source.SourceOf = stored.ID
		sink.SinkOf = stored.ID
		m.enter(stored.ID, nml.KindLink)
		m.stats.Links++
		return stored, nil
	}()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	link.ID = stored.ID
	m.publish(TopicLink, nml.KindLink, stored.ID, stored.Name)
	return stored.Clone(), nil
}

// RegisterBidirectionalPort aggregates one inbound and one outbound port
// of the same node into a logical bidirectional endpoint. Members are
// stored inbound first regardless of argument order.
func (m *Manager) RegisterBidirectionalPort(biport *nml.BidirectionalPort) (*nml.BidirectionalPort, error) {
	const op = "RegisterBidirectionalPort"

	m.mu.Lock()
	stored, err := func() (*nml.BidirectionalPort, error) {
		first, ok := m.ports[biport.Ports[0]]
		if !ok {
			return nil, m.reject(nml.NotFoundError(op, nml.KindPort, biport.Ports[0]))
		}
		second, ok := m.ports[biport.Ports[1]]
		if !ok {
			return nil, m.reject(nml.NotFoundError(op, nml.KindPort, biport.Ports[1]))
		}
		if first.ID == second.ID {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindBidirectionalPort).ID(biport.ID).
				Context("members must be two distinct ports").
				Cause(nml.ErrWrongKind).Err())
		}
		if first.Node != second.Node {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindBidirectionalPort).ID(biport.ID).
				Cause(nml.ErrDifferentNode).Err())
		}
		if first.Direction == second.Direction {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindBidirectionalPort).ID(biport.ID).
				Context("members must have opposite directions").
				Cause(nml.ErrInvalidDirection).Err())
		}
		for _, member := range []*nml.Port{first, second} {
			if owner, taken := m.biportOf[member.ID]; taken {
				return nil, m.reject(nml.NewError(op).Kind(nml.KindPort).ID(member.ID).
					Context("member of " + string(owner)).
					Cause(nml.ErrAlreadyAggregated).Err())
			}
		}

		stored := biport.Clone()
		if err := m.admit(op, &stored.ObjectMeta); err != nil {
			return nil, err
		}

		// Normalize member order: inbound first.
		if first.Direction == nml.Inbound {
			stored.Ports = [2]nml.ObjectID{first.ID, second.ID}
		} else {
			stored.Ports = [2]nml.ObjectID{second.ID, first.ID}
		}

		m.biports[stored.ID] = stored
		m.biportOf[first.ID] = stored.ID
		m.biportOf[second.ID] = stored.ID
		m.enter(stored.ID, nml.KindBidirectionalPort)
		m.stats.BidirectionalPorts++
		return stored, nil
	}()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	biport.ID = stored.ID
	m.publish(TopicBiport, nml.KindBidirectionalPort, stored.ID, stored.Name)
	return stored.Clone(), nil
}

// RegisterBidirectionalLink aggregates two reciprocal unidirectional links
// into a logical bidirectional connection. The links must connect the same
// two nodes with source and sink swapped.
func (m *Manager) RegisterBidirectionalLink(bilink *nml.BidirectionalLink) (*nml.BidirectionalLink, error) {
	const op = "RegisterBidirectionalLink"

	m.mu.Lock()
	stored, err := func() (*nml.BidirectionalLink, error) {
		first, ok := m.links[bilink.Links[0]]
		if !ok {
			return nil, m.reject(nml.NotFoundError(op, nml.KindLink, bilink.Links[0]))
		}
		second, ok := m.links[bilink.Links[1]]
		if !ok {
			return nil, m.reject(nml.NotFoundError(op, nml.KindLink, bilink.Links[1]))
		}
		if first.ID == second.ID {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindBidirectionalLink).ID(bilink.ID).
				Context("members must be two distinct links").
				Cause(nml.ErrNotReciprocal).Err())
		}

		// Reciprocity is judged at the owning-node level: the node sending
		// on one link must be the node receiving on the other, both ways.
		firstSrc := m.ports[first.Source].Node
		firstSink := m.ports[first.Sink].Node
		secondSrc := m.ports[second.Source].Node
		secondSink := m.ports[second.Sink].Node
		if firstSrc != secondSink || firstSink != secondSrc {
			return nil, m.reject(nml.NewError(op).Kind(nml.KindBidirectionalLink).ID(bilink.ID).
				Cause(nml.ErrNotReciprocal).Err())
		}

		for _, member := range []*nml.Link{first, second} {
			if owner, taken := m.bilinkOf[member.ID]; taken {
				return nil, m.reject(nml.NewError(op).Kind(nml.KindLink).ID(member.ID).
					Context("member of " + string(owner)).
					Cause(nml.ErrAlreadyAggregated).Err())
			}
		}

		stored := bilink.Clone()
		if err := m.admit(op, &stored.ObjectMeta); err != nil {
			return nil, err
		}

		stored.Links = [2]nml.ObjectID{first.ID, second.ID}
		m.bilinks[stored.ID] = stored
		m.bilinkOf[first.ID] = stored.ID
		m.bilinkOf[second.ID] = stored.ID
		m.enter(stored.ID, nml.KindBidirectionalLink)
		m.stats.BidirectionalLinks++
		return stored, nil
	}()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	bilink.ID = stored.ID
	m.publish(TopicBilink, nml.KindBidirectionalLink, stored.ID, stored.Name)
	return stored.Clone(), nil
}

// RegisterTopology adds a topology group. Every referenced member must
// already be registered with the matching kind, and port members must
// carry the direction of the list naming them.
func (m *Manager) RegisterTopology(topo *nml.Topology) (*nml.Topology, error) {
	const op = "RegisterTopology"

	m.mu.Lock()
	stored, err := func() (*nml.Topology, error) {
		for _, nodeID := range topo.Nodes {
			if _, ok := m.nodes[nodeID]; !ok {
				return nil, m.reject(nml.NotFoundError(op, nml.KindNode, nodeID))
			}
		}
		for _, portID := range topo.InboundPorts {
			if err := m.requirePortDirection(op, portID, nml.Inbound); err != nil {
				return nil, err
			}
		}
		for _, portID := range topo.OutboundPorts {
			if err := m.requirePortDirection(op, portID, nml.Outbound); err != nil {
				return nil, err
			}
		}
		for _, svcID := range topo.Services {
			if !m.isService(svcID) {
				return nil, m.reject(nml.NotFoundError(op, nml.KindSwitchingService, svcID))
			}
		}
		for _, subID := range topo.Topologies {
			if _, ok := m.topologies[subID]; !ok {
				return nil, m.reject(nml.NotFoundError(op, nml.KindTopology, subID))
			}
		}

		stored := topo.Clone()
		if err := m.admit(op, &stored.ObjectMeta); err != nil {
			return nil, err
		}

		m.topologies[stored.ID] = stored
		m.enter(stored.ID, nml.KindTopology)
		m.stats.Topologies++
		return stored, nil
	}()
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	topo.ID = stored.ID
	m.publish(TopicTopology, nml.KindTopology, stored.ID, stored.Name)
	return stored.Clone(), nil
}

func (m *Manager) requirePortDirection(op string, portID nml.ObjectID, want nml.Direction) error {
	port, ok := m.ports[portID]
	if !ok {
		return m.reject(nml.NotFoundError(op, nml.KindPort, portID))
	}
	if port.Direction != want {
		return m.reject(nml.NewError(op).Kind(nml.KindPort).ID(portID).
			Context("expected " + want.String() + " port").
			Cause(nml.ErrInvalidDirection).Err())
	}
	return nil
}

func (m *Manager) isService(id nml.ObjectID) bool {
	switch m.kinds[id] {
	case nml.KindSwitchingService, nml.KindAdaptationService, nml.KindDeadaptationService:
		return true
	}
	return false
}

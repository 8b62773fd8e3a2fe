package topology

import (
	"github.com/opennml/gonml/pkg/nml"
)

// All query methods return deep clones; callers cannot mutate the
// namespace through them.

// Node retrieves a node by identifier.
func (m *Manager) Node(id nml.ObjectID) (*nml.Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, ok := m.nodes[id]
	if !ok {
		return nil, nml.NotFoundError("GetNode", nml.KindNode, id)
	}
	return node.Clone(), nil
}

// Port retrieves a port by identifier.
func (m *Manager) Port(id nml.ObjectID) (*nml.Port, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	port, ok := m.ports[id]
	if !ok {
		return nil, nml.NotFoundError("GetPort", nml.KindPort, id)
	}
	return port.Clone(), nil
}

// Link retrieves a link by identifier.
func (m *Manager) Link(id nml.ObjectID) (*nml.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	link, ok := m.links[id]
	if !ok {
		return nil, nml.NotFoundError("GetLink", nml.KindLink, id)
	}
	return link.Clone(), nil
}

// Biport retrieves a bidirectional port by identifier.
func (m *Manager) Biport(id nml.ObjectID) (*nml.BidirectionalPort, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	biport, ok := m.biports[id]
	if !ok {
		return nil, nml.NotFoundError("GetBiport", nml.KindBidirectionalPort, id)
	}
	return biport.Clone(), nil
}

// Bilink retrieves a bidirectional link by identifier.
func (m *Manager) Bilink(id nml.ObjectID) (*nml.BidirectionalLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bilink, ok := m.bilinks[id]
	if !ok {
		return nil, nml.NotFoundError("GetBilink", nml.KindBidirectionalLink, id)
	}
	return bilink.Clone(), nil
}

// Topology retrieves a topology group by identifier.
func (m *Manager) Topology(id nml.ObjectID) (*nml.Topology, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	topo, ok := m.topologies[id]
	if !ok {
		return nil, nml.NotFoundError("GetTopology", nml.KindTopology, id)
	}
	return topo.Clone(), nil
}

// InboundPorts lists a node's inbound ports in registration order.
func (m *Manager) InboundPorts(nodeID nml.ObjectID) ([]*nml.Port, error) {
	return m.nodePorts("InboundPorts", nodeID, nml.Inbound)
}

// OutboundPorts lists a node's outbound ports in registration order.
func (m *Manager) OutboundPorts(nodeID nml.ObjectID) ([]*nml.Port, error) {
	return m.nodePorts("OutboundPorts", nodeID, nml.Outbound)
}

func (m *Manager) nodePorts(op string, nodeID nml.ObjectID, direction nml.Direction) ([]*nml.Port, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	node, ok := m.nodes[nodeID]
	if !ok {
		return nil, nml.NotFoundError(op, nml.KindNode, nodeID)
	}
	ids := node.InboundPorts
	if direction == nml.Outbound {
		ids = node.OutboundPorts
	}
	out := make([]*nml.Port, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.ports[id].Clone())
	}
	return out, nil
}

// PortOwner returns the node owning a port.
func (m *Manager) PortOwner(portID nml.ObjectID) (*nml.Node, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	port, ok := m.ports[portID]
	if !ok {
		return nil, nml.NotFoundError("PortOwner", nml.KindPort, portID)
	}
	return m.nodes[port.Node].Clone(), nil
}

// SourceLink returns the link the port is the source of, or ErrNotFound
// if the port is not attached as a source.
func (m *Manager) SourceLink(portID nml.ObjectID) (*nml.Link, error) {
	return m.portLink("SourceLink", portID, func(p *nml.Port) nml.ObjectID { return p.SourceOf })
}

// SinkLink returns the link the port is the sink of, or ErrNotFound if
// the port is not attached as a sink.
func (m *Manager) SinkLink(portID nml.ObjectID) (*nml.Link, error) {
	return m.portLink("SinkLink", portID, func(p *nml.Port) nml.ObjectID { return p.SinkOf })
}

func (m *Manager) portLink(op string, portID nml.ObjectID, pick func(*nml.Port) nml.ObjectID) (*nml.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	port, ok := m.ports[portID]
	if !ok {
		return nil, nml.NotFoundError(op, nml.KindPort, portID)
	}
	linkID := pick(port)
	if linkID.IsZero() {
		return nil, nml.NotFoundError(op, nml.KindLink, portID)
	}
	return m.links[linkID].Clone(), nil
}

// PortsOf resolves the two member ports of a bidirectional port, inbound
// first.
func (m *Manager) PortsOf(biportID nml.ObjectID) ([2]*nml.Port, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	biport, ok := m.biports[biportID]
	if !ok {
		return [2]*nml.Port{}, nml.NotFoundError("PortsOf", nml.KindBidirectionalPort, biportID)
	}
	return [2]*nml.Port{
		m.ports[biport.Ports[0]].Clone(),
		m.ports[biport.Ports[1]].Clone(),
	}, nil
}

// LinksOf resolves the two member links of a bidirectional link.
func (m *Manager) LinksOf(bilinkID nml.ObjectID) ([2]*nml.Link, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bilink, ok := m.bilinks[bilinkID]
	if !ok {
		return [2]*nml.Link{}, nml.NotFoundError("LinksOf", nml.KindBidirectionalLink, bilinkID)
	}
	return [2]*nml.Link{
		m.links[bilink.Links[0]].Clone(),
		m.links[bilink.Links[1]].Clone(),
	}, nil
}

// BiportOf returns the bidirectional port a port belongs to, if any.
func (m *Manager) BiportOf(portID nml.ObjectID) (*nml.BidirectionalPort, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	biportID, ok := m.biportOf[portID]
	if !ok {
		return nil, false
	}
	return m.biports[biportID].Clone(), true
}

// BilinkOf returns the bidirectional link a link belongs to, if any.
func (m *Manager) BilinkOf(linkID nml.ObjectID) (*nml.BidirectionalLink, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	bilinkID, ok := m.bilinkOf[linkID]
	if !ok {
		return nil, false
	}
	return m.bilinks[bilinkID].Clone(), true
}

// Nodes lists every node in registration order.
func (m *Manager) Nodes() []*nml.Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*nml.Node, 0, len(m.nodes))
	for _, id := range m.order {
		if node, ok := m.nodes[id]; ok {
			out = append(out, node.Clone())
		}
	}
	return out
}

// Ports lists every port in registration order.
func (m *Manager) Ports() []*nml.Port {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*nml.Port, 0, len(m.ports))
	for _, id := range m.order {
		if port, ok := m.ports[id]; ok {
			out = append(out, port.Clone())
		}
	}
	return out
}

// Links lists every link in registration order.
func (m *Manager) Links() []*nml.Link {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*nml.Link, 0, len(m.links))
	for _, id := range m.order {
		if link, ok := m.links[id]; ok {
			out = append(out, link.Clone())
		}
	}
	return out
}

// Biports lists every bidirectional port in registration order.
func (m *Manager) Biports() []*nml.BidirectionalPort {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*nml.BidirectionalPort, 0, len(m.biports))
	for _, id := range m.order {
		if biport, ok := m.biports[id]; ok {
			out = append(out, biport.Clone())
		}
	}
	return out
}

// Bilinks lists every bidirectional link in registration order.
func (m *Manager) Bilinks() []*nml.BidirectionalLink {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*nml.BidirectionalLink, 0, len(m.bilinks))
	for _, id := range m.order {
		if bilink, ok := m.bilinks[id]; ok {
			out = append(out, bilink.Clone())
		}
	}
	return out
}

// Topologies lists every topology group in registration order.
func (m *Manager) Topologies() []*nml.Topology {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*nml.Topology, 0, len(m.topologies))
	for _, id := range m.order {
		if topo, ok := m.topologies[id]; ok {
			out = append(out, topo.Clone())
		}
	}
	return out
}

// SwitchingServices lists every switching service in registration order.
func (m *Manager) SwitchingServices() []*nml.SwitchingService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*nml.SwitchingService, 0, len(m.switching))
	for _, id := range m.order {
		if svc, ok := m.switching[id]; ok {
			out = append(out, svc.Clone())
		}
	}
	return out
}

// AdaptationServices lists every adaptation service in registration order.
func (m *Manager) AdaptationServices() []*nml.AdaptationService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*nml.AdaptationService, 0, len(m.adaptations))
	for _, id := range m.order {
		if svc, ok := m.adaptations[id]; ok {
			out = append(out, svc.Clone())
		}
	}
	return out
}

// DeadaptationServices lists every deadaptation service in registration
// order.
func (m *Manager) DeadaptationServices() []*nml.DeadaptationService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*nml.DeadaptationService, 0, len(m.deadaptations))
	for _, id := range m.order {
		if svc, ok := m.deadaptations[id]; ok {
			out = append(out, svc.Clone())
		}
	}
	return out
}

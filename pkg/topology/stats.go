package topology

// Stats tracks namespace counters.
type Stats struct {
	Nodes              uint64 `json:"nodes"`
	Ports              uint64 `json:"ports"`
	Links              uint64 `json:"links"`
	BidirectionalPorts uint64 `json:"bidirectional_ports"`
	BidirectionalLinks uint64 `json:"bidirectional_links"`
	Topologies         uint64 `json:"topologies"`
	Services           uint64 `json:"services"`
	Registered         uint64 `json:"registered"`
	Rejected           uint64 `json:"rejected"`
}

// Stats returns a copy of the namespace counters.
func (m *Manager) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

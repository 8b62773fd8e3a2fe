package nml

import "time"

// Lifetime is a time interval during which a network object is active. An
// object with several lifetimes is active during their union.
type Lifetime struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end,omitempty"`
}

// Contains reports whether the instant t falls inside the interval. A zero
// End means the interval is open-ended.
func (lt Lifetime) Contains(t time.Time) bool {
	if t.Before(lt.Start) {
		return false
	}
	return lt.End.IsZero() || !t.After(lt.End)
}

// Location is a geographical reference for a network object.
type Location struct {
	ID        ObjectID `json:"id,omitempty"`
	Name      string   `json:"name,omitempty"`
	Longitude float64  `json:"long,omitempty"`
	Latitude  float64  `json:"lat,omitempty"`
	Altitude  float64  `json:"alt,omitempty"`
	Unlocode  string   `json:"unlocode,omitempty"`
	Address   string   `json:"address,omitempty"`
}

// Label describes a single data stream embedded in a larger one, such as a
// VLAN number.
type Label struct {
	Type  string `json:"labeltype"`
	Value string `json:"value"`
}

// LabelGroup is an unordered set of labels sharing a type.
type LabelGroup struct {
	Type   string   `json:"labeltype"`
	Values []string `json:"values"`
}

// Topology is a set of connected network objects: objects that can
// communicate, or for which means of communication can be created.
// Sub-topologies nest through References to other Topology objects.
type Topology struct {
	ObjectMeta
	Nodes         []ObjectID `json:"hasNode,omitempty"`
	InboundPorts  []ObjectID `json:"hasInboundPort,omitempty"`
	OutboundPorts []ObjectID `json:"hasOutboundPort,omitempty"`
	Services      []ObjectID `json:"hasService,omitempty"`
	Topologies    []ObjectID `json:"hasTopology,omitempty"`
}

// Clone creates a deep copy of a topology.
func (t *Topology) Clone() *Topology {
	clone := *t
	clone.ObjectMeta = t.ObjectMeta.clone()
	clone.Nodes = cloneIDs(t.Nodes)
	clone.InboundPorts = cloneIDs(t.InboundPorts)
	clone.OutboundPorts = cloneIDs(t.OutboundPorts)
	clone.Services = cloneIDs(t.Services)
	clone.Topologies = cloneIDs(t.Topologies)
	return &clone
}

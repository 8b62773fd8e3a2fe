package nml

// Kind identifies the concrete type of an object in a namespace.
type Kind uint8

const (
	KindNode Kind = iota
	KindPort
	KindLink
	KindBidirectionalPort
	KindBidirectionalLink
	KindTopology
	KindSwitchingService
	KindAdaptationService
	KindDeadaptationService
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "Node"
	case KindPort:
		return "Port"
	case KindLink:
		return "Link"
	case KindBidirectionalPort:
		return "BidirectionalPort"
	case KindBidirectionalLink:
		return "BidirectionalLink"
	case KindTopology:
		return "Topology"
	case KindSwitchingService:
		return "SwitchingService"
	case KindAdaptationService:
		return "AdaptationService"
	case KindDeadaptationService:
		return "DeadaptationService"
	default:
		return "Unknown"
	}
}

// Direction tells whether a Port receives or emits traffic.
type Direction uint8

const (
	Inbound Direction = iota
	Outbound
)

func (d Direction) String() string {
	switch d {
	case Inbound:
		return "inbound"
	case Outbound:
		return "outbound"
	default:
		return "unknown"
	}
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	if d == Inbound {
		return Outbound
	}
	return Inbound
}

// ParseDirection parses the wire spelling of a direction.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "inbound", "in":
		return Inbound, nil
	case "outbound", "out":
		return Outbound, nil
	}
	return 0, NewError("parse").Kind(KindPort).Context(s).Cause(ErrInvalidDirection).Err()
}

// ObjectMeta carries the attributes shared by every network object:
// identifier, human name, schema version, and the optional existsDuring,
// locatedAt and isAlias relations.
type ObjectMeta struct {
	ID           ObjectID   `json:"id"`
	Name         string     `json:"name,omitempty"`
	Version      string     `json:"version,omitempty"`
	ExistsDuring []Lifetime `json:"existsDuring,omitempty"`
	LocatedAt    *Location  `json:"locatedAt,omitempty"`
	IsAlias      []ObjectID `json:"isAlias,omitempty"`
}

// Node represents a device or endpoint in a network topology. It does not
// necessarily stand for a physical device.
type Node struct {
	ObjectMeta
	InboundPorts  []ObjectID `json:"hasInboundPort,omitempty"`
	OutboundPorts []ObjectID `json:"hasOutboundPort,omitempty"`
	Services      []ObjectID `json:"hasService,omitempty"`
}

// Port is a directional attachment point on a Node. A port is the sink of
// at most one link and the source of at most one link.
type Port struct {
	ObjectMeta
	Direction Direction `json:"direction"`
	Encoding  string    `json:"encoding,omitempty"`
	Label     *Label    `json:"hasLabel,omitempty"`
	Node      ObjectID  `json:"node"`

	// Resolved through the owning namespace, empty when unattached.
	SinkOf   ObjectID `json:"isSink,omitempty"`
	SourceOf ObjectID `json:"isSource,omitempty"`
}

// Link defines unidirectional communication from one source Port to one
// sink Port on a different Node.
type Link struct {
	ObjectMeta
	Encoding        string   `json:"encoding,omitempty"`
	NoReturnTraffic bool     `json:"noReturnTraffic,omitempty"`
	Label           *Label   `json:"hasLabel,omitempty"`
	Source          ObjectID `json:"source"`
	Sink            ObjectID `json:"sink"`
}

// BidirectionalPort groups one inbound and one outbound Port of the same
// Node into a single logical endpoint. It references its member ports, it
// does not own them.
type BidirectionalPort struct {
	ObjectMeta
	Encoding string `json:"encoding,omitempty"`

	// Exactly two members, inbound first.
	Ports [2]ObjectID `json:"hasPort"`
}

// Inbound returns the inbound member port ID.
func (bp *BidirectionalPort) Inbound() ObjectID { return bp.Ports[0] }

// Outbound returns the outbound member port ID.
func (bp *BidirectionalPort) Outbound() ObjectID { return bp.Ports[1] }

// BidirectionalLink groups two reciprocal unidirectional Links between the
// same pair of Nodes into a single logical connection. Like
// BidirectionalPort it references, not owns, its members.
type BidirectionalLink struct {
	ObjectMeta
	Encoding string `json:"encoding,omitempty"`

	// Exactly two members, opposite directions.
	Links [2]ObjectID `json:"hasLink"`
}

// Clone creates a deep copy of a node.
func (n *Node) Clone() *Node {
	clone := *n
	clone.ObjectMeta = n.ObjectMeta.clone()
	clone.InboundPorts = cloneIDs(n.InboundPorts)
	clone.OutboundPorts = cloneIDs(n.OutboundPorts)
	clone.Services = cloneIDs(n.Services)
	return &clone
}

// Clone creates a deep copy of a port.
func (p *Port) Clone() *Port {
	clone := *p
	clone.ObjectMeta = p.ObjectMeta.clone()
	if p.Label != nil {
		label := *p.Label
		clone.Label = &label
	}
	return &clone
}

// Clone creates a deep copy of a link.
func (l *Link) Clone() *Link {
	clone := *l
	clone.ObjectMeta = l.ObjectMeta.clone()
	if l.Label != nil {
		label := *l.Label
		clone.Label = &label
	}
	return &clone
}

// Clone creates a deep copy of a bidirectional port.
func (bp *BidirectionalPort) Clone() *BidirectionalPort {
	clone := *bp
	clone.ObjectMeta = bp.ObjectMeta.clone()
	return &clone
}

// Clone creates a deep copy of a bidirectional link.
func (bl *BidirectionalLink) Clone() *BidirectionalLink {
	clone := *bl
	clone.ObjectMeta = bl.ObjectMeta.clone()
	return &clone
}

func (m ObjectMeta) clone() ObjectMeta {
	clone := m
	if m.ExistsDuring != nil {
		clone.ExistsDuring = make([]Lifetime, len(m.ExistsDuring))
		copy(clone.ExistsDuring, m.ExistsDuring)
	}
	if m.LocatedAt != nil {
		loc := *m.LocatedAt
		clone.LocatedAt = &loc
	}
	clone.IsAlias = cloneIDs(m.IsAlias)
	return clone
}

func cloneIDs(ids []ObjectID) []ObjectID {
	if ids == nil {
		return nil
	}
	out := make([]ObjectID, len(ids))
	copy(out, ids)
	return out
}

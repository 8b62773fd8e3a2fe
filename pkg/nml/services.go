package nml

// SwitchingService describes the ability of a Node to create new Links
// between its inbound and outbound Ports.
type SwitchingService struct {
	ObjectMeta
	Encoding      string     `json:"encoding,omitempty"`
	LabelSwapping bool       `json:"labelSwapping,omitempty"`
	InboundPorts  []ObjectID `json:"hasInboundPort,omitempty"`
	OutboundPorts []ObjectID `json:"hasOutboundPort,omitempty"`
	ProvidesLinks []ObjectID `json:"providesLink,omitempty"`
}

// AdaptationService describes the ability to embed the data of one or more
// Ports into the data stream of another (multiplexing).
type AdaptationService struct {
	ObjectMeta
	AdaptationFunction string     `json:"adaptationFunction,omitempty"`
	CanProvidePorts    []ObjectID `json:"canProvidePort,omitempty"`
	ProvidesPorts      []ObjectID `json:"providesPort,omitempty"`
}

// DeadaptationService is the inverse of AdaptationService: the ability to
// extract the data of one Port from the encoding of another.
type DeadaptationService struct {
	ObjectMeta
	AdaptationFunction string     `json:"adaptationFunction,omitempty"`
	CanProvidePorts    []ObjectID `json:"canProvidePort,omitempty"`
	ProvidesPorts      []ObjectID `json:"providesPort,omitempty"`
}

// Clone creates a deep copy of a switching service.
func (s *SwitchingService) Clone() *SwitchingService {
	clone := *s
	clone.ObjectMeta = s.ObjectMeta.clone()
	clone.InboundPorts = cloneIDs(s.InboundPorts)
	clone.OutboundPorts = cloneIDs(s.OutboundPorts)
	clone.ProvidesLinks = cloneIDs(s.ProvidesLinks)
	return &clone
}

// Clone creates a deep copy of an adaptation service.
func (s *AdaptationService) Clone() *AdaptationService {
	clone := *s
	clone.ObjectMeta = s.ObjectMeta.clone()
	clone.CanProvidePorts = cloneIDs(s.CanProvidePorts)
	clone.ProvidesPorts = cloneIDs(s.ProvidesPorts)
	return &clone
}

// Clone creates a deep copy of a deadaptation service.
func (s *DeadaptationService) Clone() *DeadaptationService {
	clone := *s
	clone.ObjectMeta = s.ObjectMeta.clone()
	clone.CanProvidePorts = cloneIDs(s.CanProvidePorts)
	clone.ProvidesPorts = cloneIDs(s.ProvidesPorts)
	return &clone
}

// Package topology implements an ordered namespace of NML network objects:
// nodes, directional ports, unidirectional links and their bidirectional
// aggregates. All relations are held as identifier references resolved
// through the namespace, never as embedded pointers.
package topology

import (
	"sync"
	"time"

	"github.com/opennml/gonml/pkg/events"
	"github.com/opennml/gonml/pkg/nml"
)

// Event topics published on the configured bus.
const (
	TopicNode     = "node"
	TopicPort     = "port"
	TopicLink     = "link"
	TopicBiport   = "biport"
	TopicBilink   = "bilink"
	TopicTopology = "topology"
	TopicService  = "service"
)

// Manager is the in-memory namespace of NML objects. Registration enforces
// the model invariants eagerly: a violating object never enters the
// namespace. The namespace is append-only; deletion semantics are
// deliberately not offered.
type Manager struct {
	mu sync.RWMutex

	// Namespace-wide identifier index
	kinds map[nml.ObjectID]nml.Kind
	order []nml.ObjectID

	// Typed object stores
	nodes         map[nml.ObjectID]*nml.Node
	ports         map[nml.ObjectID]*nml.Port
	links         map[nml.ObjectID]*nml.Link
	biports       map[nml.ObjectID]*nml.BidirectionalPort
	bilinks       map[nml.ObjectID]*nml.BidirectionalLink
	topologies    map[nml.ObjectID]*nml.Topology
	switching     map[nml.ObjectID]*nml.SwitchingService
	adaptations   map[nml.ObjectID]*nml.AdaptationService
	deadaptations map[nml.ObjectID]*nml.DeadaptationService

	// Aggregate membership (member -> aggregate)
	biportOf map[nml.ObjectID]nml.ObjectID
	bilinkOf map[nml.ObjectID]nml.ObjectID

	bus      *events.Bus
	metadata map[string]string
	stats    Stats
}

// Config holds construction options for a Manager.
type Config struct {
	// Bus receives a change event after every successful registration.
	// Nil disables event publishing.
	Bus *events.Bus

	// Metadata carries free-form namespace annotations.
	Metadata map[string]string
}

// New creates an empty namespace manager.
func New() *Manager {
	return NewWithConfig(Config{})
}

// NewWithConfig creates an empty namespace manager with custom options.
func NewWithConfig(config Config) *Manager {
	metadata := make(map[string]string, len(config.Metadata))
	for k, v := range config.Metadata {
		metadata[k] = v
	}
	return &Manager{
		kinds:         make(map[nml.ObjectID]nml.Kind),
		nodes:         make(map[nml.ObjectID]*nml.Node),
		ports:         make(map[nml.ObjectID]*nml.Port),
		links:         make(map[nml.ObjectID]*nml.Link),
		biports:       make(map[nml.ObjectID]*nml.BidirectionalPort),
		bilinks:       make(map[nml.ObjectID]*nml.BidirectionalLink),
		topologies:    make(map[nml.ObjectID]*nml.Topology),
		switching:     make(map[nml.ObjectID]*nml.SwitchingService),
		adaptations:   make(map[nml.ObjectID]*nml.AdaptationService),
		deadaptations: make(map[nml.ObjectID]*nml.DeadaptationService),
		biportOf:      make(map[nml.ObjectID]nml.ObjectID),
		bilinkOf:      make(map[nml.ObjectID]nml.ObjectID),
		bus:           config.Bus,
		metadata:      metadata,
	}
}

// Metadata returns a copy of the namespace annotations.
func (m *Manager) Metadata() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.metadata))
	for k, v := range m.metadata {
		out[k] = v
	}
	return out
}

// Len returns the number of objects in the namespace.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.kinds)
}

// IDs returns every registered identifier in registration order.
func (m *Manager) IDs() []nml.ObjectID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]nml.ObjectID, len(m.order))
	copy(out, m.order)
	return out
}

// Contains reports whether an identifier is registered.
func (m *Manager) Contains(id nml.ObjectID) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.kinds[id]
	return ok
}

// KindOf returns the kind of a registered identifier.
func (m *Manager) KindOf(id nml.ObjectID) (nml.Kind, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	kind, ok := m.kinds[id]
	return kind, ok
}

// admit performs the checks every registration shares: identifier
// generation, URI validity and namespace uniqueness. Caller holds the
// write lock.
func (m *Manager) admit(op string, meta *nml.ObjectMeta) error {
	if meta.ID.IsZero() {
		meta.ID = nml.NewID()
	}
	if err := meta.ID.Validate(); err != nil {
		return m.reject(err)
	}
	if _, exists := m.kinds[meta.ID]; exists {
		return m.reject(nml.DuplicateError(op, meta.ID))
	}
	return nil
}

// enter records an admitted object in the namespace index. Caller holds
// the write lock.
func (m *Manager) enter(id nml.ObjectID, kind nml.Kind) {
	m.kinds[id] = kind
	m.order = append(m.order, id)
	m.stats.Registered++
}

// reject counts a failed registration. Caller holds the write lock.
func (m *Manager) reject(err error) error {
	m.stats.Rejected++
	return err
}

func (m *Manager) publish(topic string, kind nml.Kind, id nml.ObjectID, name string) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(topic, events.Event{
		Topic: topic,
		Kind:  kind.String(),
		ID:    string(id),
		Name:  name,
		At:    time.Now(),
	})
}

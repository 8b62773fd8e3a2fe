// Package snapshot persists a topology namespace to disk as a JSON
// document, optionally snappy-compressed.
package snapshot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang/snappy"

	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/topology"
)

const (
	fileName        = "namespace.json"
	filePermissions = 0o600
	formatVersion   = 1
)

// Store reads and writes namespace snapshots under a data directory.
type Store struct {
	dataDir  string
	compress bool
}

// NewStore creates a snapshot store. With compress set, snapshots are
// snappy-encoded on disk.
func NewStore(dataDir string, compress bool) *Store {
	return &Store{dataDir: dataDir, compress: compress}
}

// Path returns the snapshot file location.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, fileName)
}

// Probe verifies the data directory is writable.
func (s *Store) Probe() error {
	if err := os.MkdirAll(s.dataDir, 0o750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	probe := filepath.Join(s.dataDir, ".probe")
	if err := os.WriteFile(probe, []byte("ok"), filePermissions); err != nil {
		return fmt.Errorf("probing data directory: %w", err)
	}
	return os.Remove(probe)
}

type fileFormat struct {
	Version       int                        `json:"version"`
	SavedAt       time.Time                  `json:"savedAt"`
	Metadata      map[string]string          `json:"metadata,omitempty"`
	Order         []nml.ObjectID             `json:"order,omitempty"`
	Nodes         []*nml.Node                `json:"nodes,omitempty"`
	Ports         []*nml.Port                `json:"ports,omitempty"`
	Links         []*nml.Link                `json:"links,omitempty"`
	Biports       []*nml.BidirectionalPort   `json:"biports,omitempty"`
	Bilinks       []*nml.BidirectionalLink   `json:"bilinks,omitempty"`
	Topologies    []*nml.Topology            `json:"topologies,omitempty"`
	Switching     []*nml.SwitchingService    `json:"switchingServices,omitempty"`
	Adaptations   []*nml.AdaptationService   `json:"adaptationServices,omitempty"`
	Deadaptations []*nml.DeadaptationService `json:"deadaptationServices,omitempty"`
}

// Save writes the namespace to disk. The write is atomic: a temporary
// file is renamed over the previous snapshot.
func (s *Store) Save(m *topology.Manager) error {
	if err := os.MkdirAll(s.dataDir, 0o750); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	file := fileFormat{
		Version:       formatVersion,
		SavedAt:       time.Now(),
		Metadata:      m.Metadata(),
		Order:         m.IDs(),
		Nodes:         m.Nodes(),
		Ports:         m.Ports(),
		Links:         m.Links(),
		Biports:       m.Biports(),
		Bilinks:       m.Bilinks(),
		Topologies:    m.Topologies(),
		Switching:     m.SwitchingServices(),
		Adaptations:   m.AdaptationServices(),
		Deadaptations: m.DeadaptationServices(),
	}

	data, err := json.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if s.compress {
		data = snappy.Encode(nil, data)
	}

	snapshotPath := s.Path()
	tmpPath := snapshotPath + ".tmp"

	// Write to temporary file first
	if err := os.WriteFile(tmpPath, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, snapshotPath); err != nil {
		return fmt.Errorf("failed to rename snapshot: %w", err)
	}

	return nil
}

// Load rebuilds a namespace from the snapshot on disk. The manager is
// created with the given config; relation wiring is re-derived by
// re-registering every object in the saved registration order, so the
// restored namespace iterates identically to the saved one. Snapshots
// without an order index are replayed grouped by kind in dependency
// order instead.
func (s *Store) Load(cfg topology.Config) (*topology.Manager, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		return nil, err
	}

	// Compressed snapshots are binary; plain ones start with '{'.
	if len(data) > 0 && data[0] != '{' {
		decoded, err := snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
		}
		data = decoded
	}

	var file fileFormat
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if file.Version != formatVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", file.Version)
	}

	if cfg.Metadata == nil {
		cfg.Metadata = file.Metadata
	}
	m := topology.NewWithConfig(cfg)

	if len(file.Order) > 0 {
		if err := replayOrdered(m, &file); err != nil {
			return nil, err
		}
	} else if err := replayGrouped(m, &file); err != nil {
		return nil, err
	}

	// Node hasService relations reference services registered above.
	for _, node := range file.Nodes {
		for _, serviceID := range node.Services {
			if err := m.AttachService(node.ID, serviceID); err != nil {
				return nil, fmt.Errorf("restoring service attachment %s -> %s: %w", node.ID, serviceID, err)
			}
		}
	}

	return m, nil
}

// replayOrdered re-registers every object in the saved registration
// order. Registration order always respects dependencies (a port cannot
// precede its node), so the replay does too.
func replayOrdered(m *topology.Manager, file *fileFormat) error {
	restore := make(map[nml.ObjectID]func() error, len(file.Order))
	for _, node := range file.Nodes {
		node := node
		restore[node.ID] = func() error { return restoreNode(m, node) }
	}
	for _, port := range file.Ports {
		port := port
		restore[port.ID] = func() error { return restorePort(m, port) }
	}
	for _, link := range file.Links {
		link := link
		restore[link.ID] = func() error {
			_, err := m.RegisterLink(link.Clone())
			return err
		}
	}
	for _, biport := range file.Biports {
		biport := biport
		restore[biport.ID] = func() error {
			_, err := m.RegisterBidirectionalPort(biport.Clone())
			return err
		}
	}
	for _, bilink := range file.Bilinks {
		bilink := bilink
		restore[bilink.ID] = func() error {
			_, err := m.RegisterBidirectionalLink(bilink.Clone())
			return err
		}
	}
	for _, svc := range file.Switching {
		svc := svc
		restore[svc.ID] = func() error {
			_, err := m.RegisterSwitchingService(svc.Clone())
			return err
		}
	}
	for _, svc := range file.Adaptations {
		svc := svc
		restore[svc.ID] = func() error {
			_, err := m.RegisterAdaptationService(svc.Clone())
			return err
		}
	}
	for _, svc := range file.Deadaptations {
		svc := svc
		restore[svc.ID] = func() error {
			_, err := m.RegisterDeadaptationService(svc.Clone())
			return err
		}
	}
	for _, topo := range file.Topologies {
		topo := topo
		restore[topo.ID] = func() error {
			_, err := m.RegisterTopology(topo.Clone())
			return err
		}
	}

	for _, id := range file.Order {
		fn, ok := restore[id]
		if !ok {
			return fmt.Errorf("snapshot order references unknown object %s", id)
		}
		if err := fn(); err != nil {
			return fmt.Errorf("restoring %s: %w", id, err)
		}
	}
	return nil
}

// replayGrouped re-registers objects grouped by kind in dependency
// order. Used for snapshots written before the order index existed;
// per-kind ordering is preserved, cross-kind interleaving is not.
func replayGrouped(m *topology.Manager, file *fileFormat) error {
	for _, node := range file.Nodes {
		if err := restoreNode(m, node); err != nil {
			return fmt.Errorf("restoring node %s: %w", node.ID, err)
		}
	}
	for _, port := range file.Ports {
		if err := restorePort(m, port); err != nil {
			return fmt.Errorf("restoring port %s: %w", port.ID, err)
		}
	}
	for _, link := range file.Links {
		if _, err := m.RegisterLink(link.Clone()); err != nil {
			return fmt.Errorf("restoring link %s: %w", link.ID, err)
		}
	}
	for _, biport := range file.Biports {
		if _, err := m.RegisterBidirectionalPort(biport.Clone()); err != nil {
			return fmt.Errorf("restoring bidirectional port %s: %w", biport.ID, err)
		}
	}
	for _, bilink := range file.Bilinks {
		if _, err := m.RegisterBidirectionalLink(bilink.Clone()); err != nil {
			return fmt.Errorf("restoring bidirectional link %s: %w", bilink.ID, err)
		}
	}
	for _, svc := range file.Switching {
		if _, err := m.RegisterSwitchingService(svc.Clone()); err != nil {
			return fmt.Errorf("restoring switching service %s: %w", svc.ID, err)
		}
	}
	for _, svc := range file.Adaptations {
		if _, err := m.RegisterAdaptationService(svc.Clone()); err != nil {
			return fmt.Errorf("restoring adaptation service %s: %w", svc.ID, err)
		}
	}
	for _, svc := range file.Deadaptations {
		if _, err := m.RegisterDeadaptationService(svc.Clone()); err != nil {
			return fmt.Errorf("restoring deadaptation service %s: %w", svc.ID, err)
		}
	}
	for _, topo := range file.Topologies {
		if _, err := m.RegisterTopology(topo.Clone()); err != nil {
			return fmt.Errorf("restoring topology %s: %w", topo.ID, err)
		}
	}
	return nil
}

// Node relation lists and port attachments are rebuilt by later
// registrations, so the stored ones are stripped before re-registering.
func restoreNode(m *topology.Manager, node *nml.Node) error {
	bare := node.Clone()
	bare.InboundPorts = nil
	bare.OutboundPorts = nil
	bare.Services = nil
	_, err := m.RegisterNode(bare)
	return err
}

func restorePort(m *topology.Manager, port *nml.Port) error {
	bare := port.Clone()
	bare.SinkOf = ""
	bare.SourceOf = ""
	_, err := m.RegisterPort(bare)
	return err
}

// Exists reports whether a snapshot file is present.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.Path())
	return err == nil
}

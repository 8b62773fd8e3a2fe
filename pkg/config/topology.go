package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/topology"
)

// TopologyDoc is a declarative topology description. Nodes declare
// their bidirectional ports by name; bilinks reference endpoints as
// "node.port".
type TopologyDoc struct {
	Name     string            `yaml:"name"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
	Nodes    []NodeDoc         `yaml:"nodes"`
	Bilinks  []BilinkDoc       `yaml:"bilinks,omitempty"`
}

// NodeDoc declares a node and its bidirectional ports.
type NodeDoc struct {
	Name    string   `yaml:"name"`
	Biports []string `yaml:"biports,omitempty"`
}

// BilinkDoc connects two "node.port" endpoints.
type BilinkDoc struct {
	A    string `yaml:"a"`
	B    string `yaml:"b"`
	Name string `yaml:"name,omitempty"`
}

// LoadTopologyDoc reads a declarative topology document from a file.
func LoadTopologyDoc(path string) (*TopologyDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading topology file: %w", err)
	}
	return ParseTopologyDoc(data)
}

// ParseTopologyDoc parses a declarative topology document.
func ParseTopologyDoc(data []byte) (*TopologyDoc, error) {
	var doc TopologyDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing topology document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate checks the document for internal consistency before any
// registration happens.
func (d *TopologyDoc) Validate() error {
	cv := NewConfigValidator("TopologyDoc")

	seen := make(map[string]map[string]bool)
	for i, node := range d.Nodes {
		if node.Name == "" {
			cv.Custom("Nodes", func() error {
				return fmt.Errorf("node at index %d has no name", i)
			})
			continue
		}
		if seen[node.Name] != nil {
			cv.Custom("Nodes", func() error {
				return fmt.Errorf("duplicate node name %q", node.Name)
			})
			continue
		}
		seen[node.Name] = make(map[string]bool)
		for _, biport := range node.Biports {
			if seen[node.Name][biport] {
				cv.Custom("Nodes", func() error {
					return fmt.Errorf("duplicate biport %q on node %q", biport, node.Name)
				})
			}
			seen[node.Name][biport] = true
		}
	}

	for i, bilink := range d.Bilinks {
		for _, endpoint := range []string{bilink.A, bilink.B} {
			nodeName, portName, err := splitEndpoint(endpoint)
			if err != nil {
				cv.Custom("Bilinks", func() error {
					return fmt.Errorf("bilink at index %d: %w", i, err)
				})
				continue
			}
			if seen[nodeName] == nil {
				cv.Custom("Bilinks", func() error {
					return fmt.Errorf("bilink at index %d references unknown node %q", i, nodeName)
				})
			} else if !seen[nodeName][portName] {
				cv.Custom("Bilinks", func() error {
					return fmt.Errorf("bilink at index %d references unknown biport %q on node %q", i, portName, nodeName)
				})
			}
		}
	}

	return cv.Err()
}

// Build registers the document's topology into a new manager.
func (d *TopologyDoc) Build(cfg topology.Config) (*topology.Manager, error) {
	if cfg.Metadata == nil {
		cfg.Metadata = d.Metadata
	}
	m := topology.NewWithConfig(cfg)

	nodes := make(map[string]nml.ObjectID)
	biports := make(map[string]nml.ObjectID)

	for _, nodeDoc := range d.Nodes {
		node, err := m.CreateNode(nodeDoc.Name)
		if err != nil {
			return nil, fmt.Errorf("creating node %q: %w", nodeDoc.Name, err)
		}
		nodes[nodeDoc.Name] = node.ID

		for _, biportName := range nodeDoc.Biports {
			biport, err := m.CreateBiport(node.ID, biportName)
			if err != nil {
				return nil, fmt.Errorf("creating biport %q on node %q: %w", biportName, nodeDoc.Name, err)
			}
			biports[nodeDoc.Name+"."+biportName] = biport.ID
		}
	}

	for _, bilinkDoc := range d.Bilinks {
		a := biports[bilinkDoc.A]
		b := biports[bilinkDoc.B]
		if _, err := m.CreateBilink(a, b, bilinkDoc.Name); err != nil {
			return nil, fmt.Errorf("connecting %q to %q: %w", bilinkDoc.A, bilinkDoc.B, err)
		}
	}

	return m, nil
}

func splitEndpoint(endpoint string) (node, port string, err error) {
	parts := strings.SplitN(endpoint, ".", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("endpoint %q is not of the form node.port", endpoint)
	}
	return parts[0], parts[1], nil
}

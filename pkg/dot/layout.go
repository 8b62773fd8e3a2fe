package dot

import (
	"encoding/json"
	"math"

	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/topology"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width   float64 // Canvas width
	Height  float64 // Canvas height
	Padding float64 // Padding from edges
}

// Layout computes 2D positions for the namespace's nodes.
type Layout interface {
	ComputeLayout(m *topology.Manager) (map[nml.ObjectID]Position, error)
}

// CircularLayout arranges nodes in a circle
type CircularLayout struct {
	config *LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config *LayoutConfig) *CircularLayout {
	return &CircularLayout{config: layoutDefaults(config)}
}

// ComputeLayout arranges nodes in a circle in registration order.
func (cl *CircularLayout) ComputeLayout(m *topology.Manager) (map[nml.ObjectID]Position, error) {
	positions := make(map[nml.ObjectID]Position)

	nodes := m.Nodes()
	if len(nodes) == 0 {
		return positions, nil
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(nodes))

	for i, node := range nodes {
		angle := float64(i) * angleStep
		positions[node.ID] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions, nil
}

// HierarchicalLayout arranges nodes in BFS levels from the least
// connected nodes downward.
type HierarchicalLayout struct {
	config *LayoutConfig
}

// NewHierarchicalLayout creates a new hierarchical layout
func NewHierarchicalLayout(config *LayoutConfig) *HierarchicalLayout {
	return &HierarchicalLayout{config: layoutDefaults(config)}
}

// layoutDefaults fills unset layout dimensions.
func layoutDefaults(config *LayoutConfig) *LayoutConfig {
	if config == nil {
		config = &LayoutConfig{}
	}
	if config.Width == 0 {
		config.Width = 800
	}
	if config.Height == 0 {
		config.Height = 600
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return config
}

// ComputeLayout arranges nodes hierarchically
func (hl *HierarchicalLayout) ComputeLayout(m *topology.Manager) (map[nml.ObjectID]Position, error) {
	positions := make(map[nml.ObjectID]Position)

	nodes := m.Nodes()
	if len(nodes) == 0 {
		return positions, nil
	}

	neighbors, err := adjacency(m)
	if err != nil {
		return nil, err
	}

	// Roots: nodes with the lowest degree. Fabrics are symmetric, so
	// falling back to the first registered node keeps this stable.
	minDegree := len(nodes)
	for _, node := range nodes {
		if d := len(neighbors[node.ID]); d < minDegree {
			minDegree = d
		}
	}
	roots := make([]nml.ObjectID, 0)
	for _, node := range nodes {
		if len(neighbors[node.ID]) == minDegree {
			roots = append(roots, node.ID)
		}
	}
	if len(roots) == len(nodes) {
		roots = []nml.ObjectID{nodes[0].ID}
	}

	// Build levels using BFS
	levels := make([][]nml.ObjectID, 0)
	visited := make(map[nml.ObjectID]bool)
	currentLevel := roots
	for _, id := range roots {
		visited[id] = true
	}

	for len(currentLevel) > 0 {
		levels = append(levels, currentLevel)
		nextLevel := make([]nml.ObjectID, 0)

		for _, id := range currentLevel {
			for _, neighbor := range sortedNeighbors(neighbors, id) {
				if !visited[neighbor] {
					nextLevel = append(nextLevel, neighbor)
					visited[neighbor] = true
				}
			}
		}

		currentLevel = nextLevel
	}

	// Disconnected nodes join the last level
	for _, node := range nodes {
		if !visited[node.ID] {
			levels[len(levels)-1] = append(levels[len(levels)-1], node.ID)
		}
	}

	// Position nodes
	levelHeight := (hl.config.Height - 2*hl.config.Padding) / float64(len(levels))

	for levelIdx, level := range levels {
		y := hl.config.Padding + float64(levelIdx)*levelHeight + levelHeight/2
		levelWidth := hl.config.Width - 2*hl.config.Padding
		spacing := levelWidth / float64(len(level)+1)

		for nodeIdx, id := range level {
			x := hl.config.Padding + spacing*float64(nodeIdx+1)
			positions[id] = Position{X: x, Y: y}
		}
	}

	return positions, nil
}

// Visualization bundles a namespace snapshot with computed positions
// for JSON consumers.
type Visualization struct {
	Manager   *topology.Manager
	Positions map[nml.ObjectID]Position
}

// ExportJSON exports the visualization to JSON
func (v *Visualization) ExportJSON() ([]byte, error) {
	type NodeViz struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Ports int     `json:"ports"`
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
	}

	type EdgeViz struct {
		ID   string `json:"id"`
		From string `json:"from"`
		To   string `json:"to"`
		Name string `json:"name"`
	}

	type VizData struct {
		Nodes []NodeViz `json:"nodes"`
		Edges []EdgeViz `json:"edges"`
	}

	data := VizData{
		Nodes: make([]NodeViz, 0),
		Edges: make([]EdgeViz, 0),
	}

	for _, node := range v.Manager.Nodes() {
		pos := v.Positions[node.ID]
		data.Nodes = append(data.Nodes, NodeViz{
			ID:    node.ID.String(),
			Name:  node.Name,
			Ports: len(node.InboundPorts) + len(node.OutboundPorts),
			X:     pos.X,
			Y:     pos.Y,
		})
	}

	for _, bilink := range v.Manager.Bilinks() {
		links, err := v.Manager.LinksOf(bilink.ID)
		if err != nil {
			return nil, err
		}
		src, err := v.Manager.PortOwner(links[0].Source)
		if err != nil {
			return nil, err
		}
		sink, err := v.Manager.PortOwner(links[0].Sink)
		if err != nil {
			return nil, err
		}
		data.Edges = append(data.Edges, EdgeViz{
			ID:   bilink.ID.String(),
			From: src.ID.String(),
			To:   sink.ID.String(),
			Name: bilink.Name,
		})
	}

	return json.Marshal(data)
}

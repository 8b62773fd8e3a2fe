// Package dot renders a topology namespace as a Graphviz graph and
// computes 2D layouts for visualization clients.
package dot

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/topology"
)

// Options controls the Graphviz rendering.
type Options struct {
	// GraphName is the graph identifier in the DOT output.
	GraphName string
	// Unidirectional renders a digraph of raw links instead of an
	// undirected graph of bidirectional links.
	Unidirectional bool
	// ShowPorts labels edges with the connected port names.
	ShowPorts bool
}

// Export writes the namespace in Graphviz DOT notation. Bidirectional
// links render as undirected edges between the owning nodes; with
// Unidirectional set, every link renders as a directed edge instead.
func Export(w io.Writer, m *topology.Manager, opts Options) error {
	name := opts.GraphName
	if name == "" {
		name = "topology"
	}

	var b strings.Builder
	if opts.Unidirectional {
		fmt.Fprintf(&b, "digraph %q {\n", name)
	} else {
		fmt.Fprintf(&b, "graph %q {\n", name)
	}
	b.WriteString("  node [shape=box];\n")

	for _, node := range m.Nodes() {
		fmt.Fprintf(&b, "  %q [label=%q];\n", node.ID.String(), node.Name)
	}

	if opts.Unidirectional {
		if err := writeLinkEdges(&b, m, opts); err != nil {
			return err
		}
	} else {
		if err := writeBilinkEdges(&b, m, opts); err != nil {
			return err
		}
	}

	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeBilinkEdges(b *strings.Builder, m *topology.Manager, opts Options) error {
	for _, bilink := range m.Bilinks() {
		links, err := m.LinksOf(bilink.ID)
		if err != nil {
			return err
		}
		// Both member links connect the same node pair; the first one
		// fixes the endpoints.
		src, err := m.PortOwner(links[0].Source)
		if err != nil {
			return err
		}
		sink, err := m.PortOwner(links[0].Sink)
		if err != nil {
			return err
		}

		label := bilink.Name
		if opts.ShowPorts {
			srcPort, err := m.Port(links[0].Source)
			if err != nil {
				return err
			}
			sinkPort, err := m.Port(links[0].Sink)
			if err != nil {
				return err
			}
			label = fmt.Sprintf("%s (%s -- %s)", bilink.Name, srcPort.Name, sinkPort.Name)
		}

		fmt.Fprintf(b, "  %q -- %q [label=%q];\n", src.ID.String(), sink.ID.String(), label)
	}
	return nil
}

func writeLinkEdges(b *strings.Builder, m *topology.Manager, opts Options) error {
	for _, link := range m.Links() {
		src, err := m.PortOwner(link.Source)
		if err != nil {
			return err
		}
		sink, err := m.PortOwner(link.Sink)
		if err != nil {
			return err
		}

		label := link.Name
		if opts.ShowPorts {
			srcPort, err := m.Port(link.Source)
			if err != nil {
				return err
			}
			sinkPort, err := m.Port(link.Sink)
			if err != nil {
				return err
			}
			label = fmt.Sprintf("%s (%s -> %s)", link.Name, srcPort.Name, sinkPort.Name)
		}

		fmt.Fprintf(b, "  %q -> %q [label=%q];\n", src.ID.String(), sink.ID.String(), label)
	}
	return nil
}

// adjacency builds node-level neighbor sets from the namespace links.
func adjacency(m *topology.Manager) (map[nml.ObjectID]map[nml.ObjectID]bool, error) {
	neighbors := make(map[nml.ObjectID]map[nml.ObjectID]bool)
	add := func(a, b nml.ObjectID) {
		if neighbors[a] == nil {
			neighbors[a] = make(map[nml.ObjectID]bool)
		}
		neighbors[a][b] = true
	}

	for _, link := range m.Links() {
		src, err := m.PortOwner(link.Source)
		if err != nil {
			return nil, err
		}
		sink, err := m.PortOwner(link.Sink)
		if err != nil {
			return nil, err
		}
		add(src.ID, sink.ID)
		add(sink.ID, src.ID)
	}

	return neighbors, nil
}

// sortedNeighbors returns a node's neighbors in stable order.
func sortedNeighbors(neighbors map[nml.ObjectID]map[nml.ObjectID]bool, id nml.ObjectID) []nml.ObjectID {
	out := make([]nml.ObjectID, 0, len(neighbors[id]))
	for n := range neighbors[id] {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

package nmlxml

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/topology"
)

// ExportOptions controls document-level attributes of the export.
type ExportOptions struct {
	// TopologyID is the id attribute of the root Topology element.
	TopologyID string
	// Name is the name attribute of the root Topology element.
	Name string
	// Version is the schema version attribute, e.g. a timestamp.
	Version string
}

// BuildDocument converts a namespace into an NML XML document model.
func BuildDocument(m *topology.Manager, opts ExportOptions) *Document {
	doc := &Document{
		Xmlns:   Namespace,
		ID:      opts.TopologyID,
		Name:    opts.Name,
		Version: opts.Version,
	}

	for _, node := range m.Nodes() {
		doc.Nodes = append(doc.Nodes, nodeElement(node))
	}
	for _, port := range m.Ports() {
		doc.Ports = append(doc.Ports, portElement(port))
	}
	for _, link := range m.Links() {
		doc.Links = append(doc.Links, linkElement(link))
	}
	for _, biport := range m.Biports() {
		doc.Biports = append(doc.Biports, biportElement(biport))
	}
	for _, bilink := range m.Bilinks() {
		doc.Bilinks = append(doc.Bilinks, bilinkElement(bilink))
	}

	return doc
}

// Export writes a namespace as an indented NML XML document.
func Export(w io.Writer, m *topology.Manager, opts ExportOptions) error {
	doc := BuildDocument(m, opts)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("writing XML header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding NML document: %w", err)
	}
	return enc.Close()
}

func nodeElement(node *nml.Node) NodeElement {
	elem := NodeElement{
		ID:      node.ID.String(),
		Name:    node.Name,
		Version: node.Version,
	}

	if len(node.InboundPorts) > 0 {
		elem.Relations = append(elem.Relations, Relation{
			Type:  RelationHasInboundPort,
			Ports: refs(node.InboundPorts),
		})
	}
	if len(node.OutboundPorts) > 0 {
		elem.Relations = append(elem.Relations, Relation{
			Type:  RelationHasOutboundPort,
			Ports: refs(node.OutboundPorts),
		})
	}
	return elem
}

func portElement(port *nml.Port) PortElement {
	elem := PortElement{
		ID:        port.ID.String(),
		Name:      port.Name,
		Version:   port.Version,
		Encoding:  port.Encoding,
		Direction: port.Direction.String(),
	}

	if !port.SinkOf.IsZero() {
		elem.Relations = append(elem.Relations, Relation{
			Type:  RelationIsSink,
			Links: []Ref{{ID: port.SinkOf.String()}},
		})
	}
	if !port.SourceOf.IsZero() {
		elem.Relations = append(elem.Relations, Relation{
			Type:  RelationIsSource,
			Links: []Ref{{ID: port.SourceOf.String()}},
		})
	}

	return elem
}

func linkElement(link *nml.Link) LinkElement {
	return LinkElement{
		ID:              link.ID.String(),
		Name:            link.Name,
		Version:         link.Version,
		Encoding:        link.Encoding,
		NoReturnTraffic: link.NoReturnTraffic,
		Source:          link.Source.String(),
		Sink:            link.Sink.String(),
	}
}

func biportElement(biport *nml.BidirectionalPort) BiportElement {
	return BiportElement{
		ID:   biport.ID.String(),
		Name: biport.Name,
		Relations: []Relation{{
			Type:  RelationHasPort,
			Ports: refs(biport.Ports[:]),
		}},
	}
}

func bilinkElement(bilink *nml.BidirectionalLink) BilinkElement {
	return BilinkElement{
		ID:   bilink.ID.String(),
		Name: bilink.Name,
		Relations: []Relation{{
			Type:  RelationHasLink,
			Links: refs(bilink.Links[:]),
		}},
	}
}

func refs(ids []nml.ObjectID) []Ref {
	out := make([]Ref, 0, len(ids))
	for _, id := range ids {
		out = append(out, Ref{ID: id.String()})
	}
	return out
}

package nmlxml

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/opennml/gonml/pkg/constraints"
	"github.com/opennml/gonml/pkg/nml"
	"github.com/opennml/gonml/pkg/topology"
)

// Parse decodes an NML XML document without registering anything.
func Parse(r io.Reader) (*Document, error) {
	var doc Document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding NML document: %w", err)
	}
	return &doc, nil
}

// Import reads an NML XML document and builds a fresh namespace from it.
// After registration the namespace is checked against the structural
// constraints; a non-empty violation list is returned alongside the
// manager so callers can decide how strict to be.
func Import(r io.Reader) (*topology.Manager, *constraints.ValidationResult, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, nil, err
	}
	return ImportDocument(doc)
}

// ImportDocument registers every object of a parsed document into a new
// manager. Objects are registered in dependency order: nodes, ports,
// links, bidirectional groups.
func ImportDocument(doc *Document) (*topology.Manager, *constraints.ValidationResult, error) {
	m := topology.New()

	for _, elem := range doc.Nodes {
		node := &nml.Node{
			ObjectMeta: nml.ObjectMeta{
				ID:      nml.ObjectID(elem.ID),
				Name:    elem.Name,
				Version: elem.Version,
			},
		}
		if _, err := m.RegisterNode(node); err != nil {
			return nil, nil, fmt.Errorf("importing node %s: %w", elem.ID, err)
		}
	}

	portOwners := nodePortOwners(doc)
	for _, elem := range doc.Ports {
		direction, err := nml.ParseDirection(elem.Direction)
		if err != nil {
			return nil, nil, fmt.Errorf("importing port %s: %w", elem.ID, err)
		}
		owner, ok := portOwners[elem.ID]
		if !ok {
			return nil, nil, fmt.Errorf("importing port %s: no node lists it in a hasInboundPort or hasOutboundPort relation", elem.ID)
		}
		port := &nml.Port{
			ObjectMeta: nml.ObjectMeta{
				ID:      nml.ObjectID(elem.ID),
				Name:    elem.Name,
				Version: elem.Version,
			},
			Direction: direction,
			Encoding:  elem.Encoding,
			Node:      owner,
		}
		if _, err := m.RegisterPort(port); err != nil {
			return nil, nil, fmt.Errorf("importing port %s: %w", elem.ID, err)
		}
	}

	for _, elem := range doc.Links {
		link := &nml.Link{
			ObjectMeta: nml.ObjectMeta{
				ID:      nml.ObjectID(elem.ID),
				Name:    elem.Name,
				Version: elem.Version,
			},
			Encoding:        elem.Encoding,
			NoReturnTraffic: elem.NoReturnTraffic,
			Source:          nml.ObjectID(elem.Source),
			Sink:            nml.ObjectID(elem.Sink),
		}
		if _, err := m.RegisterLink(link); err != nil {
			return nil, nil, fmt.Errorf("importing link %s: %w", elem.ID, err)
		}
	}

	for _, elem := range doc.Biports {
		ports := relationRefs(elem.Relations, RelationHasPort)
		if len(ports) != 2 {
			return nil, nil, fmt.Errorf("importing bidirectional port %s: hasPort relation must reference exactly 2 ports, got %d", elem.ID, len(ports))
		}
		biport := &nml.BidirectionalPort{
			ObjectMeta: nml.ObjectMeta{
				ID:   nml.ObjectID(elem.ID),
				Name: elem.Name,
			},
			Ports: [2]nml.ObjectID{ports[0], ports[1]},
		}
		if _, err := m.RegisterBidirectionalPort(biport); err != nil {
			return nil, nil, fmt.Errorf("importing bidirectional port %s: %w", elem.ID, err)
		}
	}

	for _, elem := range doc.Bilinks {
		links := relationRefs(elem.Relations, RelationHasLink)
		if len(links) != 2 {
			return nil, nil, fmt.Errorf("importing bidirectional link %s: hasLink relation must reference exactly 2 links, got %d", elem.ID, len(links))
		}
		bilink := &nml.BidirectionalLink{
			ObjectMeta: nml.ObjectMeta{
				ID:   nml.ObjectID(elem.ID),
				Name: elem.Name,
			},
			Links: [2]nml.ObjectID{links[0], links[1]},
		}
		if _, err := m.RegisterBidirectionalLink(bilink); err != nil {
			return nil, nil, fmt.Errorf("importing bidirectional link %s: %w", elem.ID, err)
		}
	}

	result, err := constraints.NewStructuralValidator().Validate(m)
	if err != nil {
		return nil, nil, fmt.Errorf("validating imported namespace: %w", err)
	}
	return m, result, nil
}

// nodePortOwners maps port IDs to the node that lists them.
func nodePortOwners(doc *Document) map[string]nml.ObjectID {
	owners := make(map[string]nml.ObjectID)
	for _, node := range doc.Nodes {
		for _, rel := range node.Relations {
			if rel.Type != RelationHasInboundPort && rel.Type != RelationHasOutboundPort {
				continue
			}
			for _, ref := range rel.Ports {
				owners[ref.ID] = nml.ObjectID(node.ID)
			}
		}
	}
	return owners
}

func relationRefs(relations []Relation, relType string) []nml.ObjectID {
	var out []nml.ObjectID
	for _, rel := range relations {
		if rel.Type != relType {
			continue
		}
		for _, ref := range rel.Ports {
			out = append(out, nml.ObjectID(ref.ID))
		}
		for _, ref := range rel.Links {
			out = append(out, nml.ObjectID(ref.ID))
		}
	}
	return out
}

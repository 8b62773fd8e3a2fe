package constraints

import (
	"github.com/opennml/gonml/pkg/nml"
)

// fakeTopology is a hand-assembled namespace used to exercise violations
// the manager refuses to construct.
type fakeTopology struct {
	nodes   []*nml.Node
	ports   []*nml.Port
	links   []*nml.Link
	biports []*nml.BidirectionalPort
	bilinks []*nml.BidirectionalLink
}

func (f *fakeTopology) Nodes() []*nml.Node                { return f.nodes }
func (f *fakeTopology) Ports() []*nml.Port                { return f.ports }
func (f *fakeTopology) Links() []*nml.Link                { return f.links }
func (f *fakeTopology) Biports() []*nml.BidirectionalPort { return f.biports }
func (f *fakeTopology) Bilinks() []*nml.BidirectionalLink { return f.bilinks }

func (f *fakeTopology) Port(id nml.ObjectID) (*nml.Port, error) {
	for _, port := range f.ports {
		if port.ID == id {
			return port, nil
		}
	}
	return nil, nml.NotFoundError("GetPort", nml.KindPort, id)
}

func (f *fakeTopology) Link(id nml.ObjectID) (*nml.Link, error) {
	for _, link := range f.links {
		if link.ID == id {
			return link, nil
		}
	}
	return nil, nml.NotFoundError("GetLink", nml.KindLink, id)
}

// twoNodeFake builds a structurally valid two-node namespace: nodes a and
// b, one biport each, connected by a reciprocal link pair aggregated into
// a bilink.
func twoNodeFake() *fakeTopology {
	f := &fakeTopology{}

	f.nodes = []*nml.Node{
		{
			ObjectMeta:    nml.ObjectMeta{ID: "nml:a", Name: "a"},
			InboundPorts:  []nml.ObjectID{"nml:a_in"},
			OutboundPorts: []nml.ObjectID{"nml:a_out"},
		},
		{
			ObjectMeta:    nml.ObjectMeta{ID: "nml:b", Name: "b"},
			InboundPorts:  []nml.ObjectID{"nml:b_in"},
			OutboundPorts: []nml.ObjectID{"nml:b_out"},
		},
	}
	f.ports = []*nml.Port{
		{ObjectMeta: nml.ObjectMeta{ID: "nml:a_in"}, Direction: nml.Inbound, Node: "nml:a", SinkOf: "nml:b-a"},
		{ObjectMeta: nml.ObjectMeta{ID: "nml:a_out"}, Direction: nml.Outbound, Node: "nml:a", SourceOf: "nml:a-b"},
		{ObjectMeta: nml.ObjectMeta{ID: "nml:b_in"}, Direction: nml.Inbound, Node: "nml:b", SinkOf: "nml:a-b"},
		{ObjectMeta: nml.ObjectMeta{ID: "nml:b_out"}, Direction: nml.Outbound, Node: "nml:b", SourceOf: "nml:b-a"},
	}
	f.links = []*nml.Link{
		{ObjectMeta: nml.ObjectMeta{ID: "nml:a-b"}, Source: "nml:a_out", Sink: "nml:b_in"},
		{ObjectMeta: nml.ObjectMeta{ID: "nml:b-a"}, Source: "nml:b_out", Sink: "nml:a_in"},
	}
	f.biports = []*nml.BidirectionalPort{
		{ObjectMeta: nml.ObjectMeta{ID: "nml:a_bp"}, Ports: [2]nml.ObjectID{"nml:a_in", "nml:a_out"}},
		{ObjectMeta: nml.ObjectMeta{ID: "nml:b_bp"}, Ports: [2]nml.ObjectID{"nml:b_in", "nml:b_out"}},
	}
	f.bilinks = []*nml.BidirectionalLink{
		{ObjectMeta: nml.ObjectMeta{ID: "nml:ab_bl"}, Links: [2]nml.ObjectID{"nml:a-b", "nml:b-a"}},
	}
	return f
}

package topology

import (
	"errors"
	"testing"

	"github.com/opennml/gonml/pkg/nml"
)

// twoNodes registers two nodes each carrying one inbound and one outbound
// port, and returns the manager plus the port IDs keyed by role.
func twoNodes(t *testing.T) (*Manager, map[string]nml.ObjectID) {
	t.Helper()
	m := New()

	ids := make(map[string]nml.ObjectID)
	for _, name := range []string{"a", "b"} {
		node, err := m.CreateNode("node " + name)
		if err != nil {
			t.Fatalf("CreateNode(%s) failed: %v", name, err)
		}
		ids[name] = node.ID

		in, err := m.RegisterPort(&nml.Port{
			ObjectMeta: nml.ObjectMeta{Name: name + "_in"},
			Direction:  nml.Inbound,
			Node:       node.ID,
		})
		if err != nil {
			t.Fatalf("RegisterPort(%s_in) failed: %v", name, err)
		}
		ids[name+"_in"] = in.ID

		out, err := m.RegisterPort(&nml.Port{
			ObjectMeta: nml.ObjectMeta{Name: name + "_out"},
			Direction:  nml.Outbound,
			Node:       node.ID,
		})
		if err != nil {
			t.Fatalf("RegisterPort(%s_out) failed: %v", name, err)
		}
		ids[name+"_out"] = out.ID
	}
	return m, ids
}

func TestRegisterNode_GeneratesURNID(t *testing.T) {
	m := New()
	node, err := m.RegisterNode(&nml.Node{ObjectMeta: nml.ObjectMeta{Name: "sw1"}})
	if err != nil {
		t.Fatalf("RegisterNode failed: %v", err)
	}
	if node.ID.IsZero() {
		t.Fatal("registered node has no ID")
	}
	if err := node.ID.Validate(); err != nil {
		t.Errorf("generated ID invalid: %v", err)
	}
}

func TestRegisterNode_RejectsDuplicateID(t *testing.T) {
	m := New()
	if _, err := m.RegisterNode(&nml.Node{ObjectMeta: nml.ObjectMeta{ID: "nml:sw1"}}); err != nil {
		t.Fatalf("first RegisterNode failed: %v", err)
	}
	_, err := m.RegisterNode(&nml.Node{ObjectMeta: nml.ObjectMeta{ID: "nml:sw1"}})
	if !errors.Is(err, nml.ErrDuplicateID) {
		t.Errorf("duplicate registration = %v, want ErrDuplicateID", err)
	}
}

func TestRegisterNode_RejectsNonURIID(t *testing.T) {
	m := New()
	_, err := m.RegisterNode(&nml.Node{ObjectMeta: nml.ObjectMeta{ID: "not a uri"}})
	if !errors.Is(err, nml.ErrInvalidID) {
		t.Errorf("RegisterNode = %v, want ErrInvalidID", err)
	}
}

func TestRegisterNode_RejectsPreWiredRelations(t *testing.T) {
	m := New()
	_, err := m.RegisterNode(&nml.Node{
		ObjectMeta:   nml.ObjectMeta{ID: "nml:sw1"},
		InboundPorts: []nml.ObjectID{"nml:phantom"},
	})
	if err == nil {
		t.Error("node with pre-wired ports should be rejected")
	}
}

func TestRegisterPort_RejectsUnknownNode(t *testing.T) {
	m := New()
	_, err := m.RegisterPort(&nml.Port{Direction: nml.Inbound, Node: "nml:missing"})
	if !nml.IsNotFound(err) {
		t.Errorf("RegisterPort = %v, want not found", err)
	}
}

func TestRegisterPort_RejectsInvalidDirection(t *testing.T) {
	m := New()
	node, _ := m.CreateNode("sw1")
	_, err := m.RegisterPort(&nml.Port{Direction: nml.Direction(7), Node: node.ID})
	if !errors.Is(err, nml.ErrInvalidDirection) {
		t.Errorf("RegisterPort = %v, want ErrInvalidDirection", err)
	}
}

func TestRegisterPort_AppearsInNodePortList(t *testing.T) {
	m, ids := twoNodes(t)

	inbound, err := m.InboundPorts(ids["a"])
	if err != nil {
		t.Fatalf("InboundPorts failed: %v", err)
	}
	if len(inbound) != 1 || inbound[0].ID != ids["a_in"] {
		t.Errorf("InboundPorts = %v, want [%s]", inbound, ids["a_in"])
	}
	for _, port := range inbound {
		if port.Direction != nml.Inbound {
			t.Errorf("inbound port %s has direction %v", port.ID, port.Direction)
		}
	}

	outbound, err := m.OutboundPorts(ids["a"])
	if err != nil {
		t.Fatalf("OutboundPorts failed: %v", err)
	}
	if len(outbound) != 1 || outbound[0].ID != ids["a_out"] {
		t.Errorf("OutboundPorts = %v, want [%s]", outbound, ids["a_out"])
	}
}

func TestRegisterLink_WiresPortRelations(t *testing.T) {
	m, ids := twoNodes(t)

	link, err := m.RegisterLink(&nml.Link{
		ObjectMeta: nml.ObjectMeta{Name: "a->b"},
		Source:     ids["a_out"],
		Sink:       ids["b_in"],
	})
	if err != nil {
		t.Fatalf("RegisterLink failed: %v", err)
	}

	fromSource, err := m.SourceLink(ids["a_out"])
	if err != nil {
		t.Fatalf("SourceLink failed: %v", err)
	}
	if fromSource.ID != link.ID {
		t.Errorf("SourceLink = %s, want %s", fromSource.ID, link.ID)
	}

	fromSink, err := m.SinkLink(ids["b_in"])
	if err != nil {
		t.Fatalf("SinkLink failed: %v", err)
	}
	if fromSink.ID != link.ID {
		t.Errorf("SinkLink = %s, want %s", fromSink.ID, link.ID)
	}
}

func TestRegisterLink_RejectsSameNode(t *testing.T) {
	m, ids := twoNodes(t)
	_, err := m.RegisterLink(&nml.Link{Source: ids["a_out"], Sink: ids["a_in"]})
	if !errors.Is(err, nml.ErrSameNode) {
		t.Errorf("RegisterLink = %v, want ErrSameNode", err)
	}
}

func TestRegisterLink_RejectsWrongRoles(t *testing.T) {
	m, ids := twoNodes(t)

	// Inbound port as source
	if _, err := m.RegisterLink(&nml.Link{Source: ids["a_in"], Sink: ids["b_in"]}); !errors.Is(err, nml.ErrInvalidDirection) {
		t.Errorf("inbound source = %v, want ErrInvalidDirection", err)
	}
	// Outbound port as sink
	if _, err := m.RegisterLink(&nml.Link{Source: ids["a_out"], Sink: ids["b_out"]}); !errors.Is(err, nml.ErrInvalidDirection) {
		t.Errorf("outbound sink = %v, want ErrInvalidDirection", err)
	}
}

func TestRegisterLink_RejectsOccupiedPort(t *testing.T) {
	m, ids := twoNodes(t)

	if _, err := m.RegisterLink(&nml.Link{Source: ids["a_out"], Sink: ids["b_in"]}); err != nil {
		t.Fatalf("first RegisterLink failed: %v", err)
	}

	// Second link reusing the same source port.
	extra, err := m.RegisterPort(&nml.Port{Direction: nml.Inbound, Node: ids["b"]})
	if err != nil {
		t.Fatalf("RegisterPort failed: %v", err)
	}
	_, err = m.RegisterLink(&nml.Link{Source: ids["a_out"], Sink: extra.ID})
	if !errors.Is(err, nml.ErrPortOccupied) {
		t.Errorf("occupied source = %v, want ErrPortOccupied", err)
	}
}

func TestRegisterBidirectionalPort_NormalizesMemberOrder(t *testing.T) {
	m, ids := twoNodes(t)

	// Outbound first: the stored pair must still come back inbound first.
	biport, err := m.RegisterBidirectionalPort(&nml.BidirectionalPort{
		Ports: [2]nml.ObjectID{ids["a_out"], ids["a_in"]},
	})
	if err != nil {
		t.Fatalf("RegisterBidirectionalPort failed: %v", err)
	}
	if biport.Inbound() != ids["a_in"] || biport.Outbound() != ids["a_out"] {
		t.Errorf("member order = %v, want inbound first", biport.Ports)
	}

	members, err := m.PortsOf(biport.ID)
	if err != nil {
		t.Fatalf("PortsOf failed: %v", err)
	}
	if members[0].Direction != nml.Inbound || members[1].Direction != nml.Outbound {
		t.Errorf("resolved members have directions %v/%v", members[0].Direction, members[1].Direction)
	}
	if members[0].Node != members[1].Node {
		t.Errorf("biport members span nodes %s and %s", members[0].Node, members[1].Node)
	}
}

func TestRegisterBidirectionalPort_RejectsBadPairs(t *testing.T) {
	m, ids := twoNodes(t)

	// Different nodes
	_, err := m.RegisterBidirectionalPort(&nml.BidirectionalPort{
		Ports: [2]nml.ObjectID{ids["a_in"], ids["b_out"]},
	})
	if !errors.Is(err, nml.ErrDifferentNode) {
		t.Errorf("cross-node pair = %v, want ErrDifferentNode", err)
	}

	// Same direction
	extra, _ := m.RegisterPort(&nml.Port{Direction: nml.Inbound, Node: ids["a"]})
	_, err = m.RegisterBidirectionalPort(&nml.BidirectionalPort{
		Ports: [2]nml.ObjectID{ids["a_in"], extra.ID},
	})
	if !errors.Is(err, nml.ErrInvalidDirection) {
		t.Errorf("same-direction pair = %v, want ErrInvalidDirection", err)
	}

	// Same port twice
	_, err = m.RegisterBidirectionalPort(&nml.BidirectionalPort{
		Ports: [2]nml.ObjectID{ids["a_in"], ids["a_in"]},
	})
	if err == nil {
		t.Error("duplicate member should be rejected")
	}
}

func TestRegisterBidirectionalPort_RejectsDoubleAggregation(t *testing.T) {
	m, ids := twoNodes(t)

	if _, err := m.RegisterBidirectionalPort(&nml.BidirectionalPort{
		Ports: [2]nml.ObjectID{ids["a_in"], ids["a_out"]},
	}); err != nil {
		t.Fatalf("first aggregation failed: %v", err)
	}

	extra, _ := m.RegisterPort(&nml.Port{Direction: nml.Outbound, Node: ids["a"]})
	_, err := m.RegisterBidirectionalPort(&nml.BidirectionalPort{
		Ports: [2]nml.ObjectID{ids["a_in"], extra.ID},
	})
	if !errors.Is(err, nml.ErrAlreadyAggregated) {
		t.Errorf("second aggregation = %v, want ErrAlreadyAggregated", err)
	}
}

func TestRegisterBidirectionalLink_AcceptsReciprocalPair(t *testing.T) {
	m, ids := twoNodes(t)

	ab, err := m.RegisterLink(&nml.Link{Source: ids["a_out"], Sink: ids["b_in"]})
	if err != nil {
		t.Fatalf("RegisterLink(a->b) failed: %v", err)
	}
	ba, err := m.RegisterLink(&nml.Link{Source: ids["b_out"], Sink: ids["a_in"]})
	if err != nil {
		t.Fatalf("RegisterLink(b->a) failed: %v", err)
	}

	bilink, err := m.RegisterBidirectionalLink(&nml.BidirectionalLink{
		Links: [2]nml.ObjectID{ab.ID, ba.ID},
	})
	if err != nil {
		t.Fatalf("RegisterBidirectionalLink failed: %v", err)
	}

	members, err := m.LinksOf(bilink.ID)
	if err != nil {
		t.Fatalf("LinksOf failed: %v", err)
	}
	if members[0].ID != ab.ID || members[1].ID != ba.ID {
		t.Errorf("LinksOf = %s/%s, want %s/%s", members[0].ID, members[1].ID, ab.ID, ba.ID)
	}
}

func TestRegisterBidirectionalLink_RejectsSameLinkTwice(t *testing.T) {
	m, ids := twoNodes(t)
	ab, _ := m.RegisterLink(&nml.Link{Source: ids["a_out"], Sink: ids["b_in"]})

	_, err := m.RegisterBidirectionalLink(&nml.BidirectionalLink{
		Links: [2]nml.ObjectID{ab.ID, ab.ID},
	})
	if !errors.Is(err, nml.ErrNotReciprocal) {
		t.Errorf("same link twice = %v, want ErrNotReciprocal", err)
	}
}

func TestRegisterBidirectionalLink_RejectsNonReciprocalPair(t *testing.T) {
	m, ids := twoNodes(t)

	// Third node so two same-direction links exist.
	c, _ := m.CreateNode("node c")
	cIn, _ := m.RegisterPort(&nml.Port{Direction: nml.Inbound, Node: c.ID})
	bOut2, _ := m.RegisterPort(&nml.Port{Direction: nml.Outbound, Node: ids["b"]})

	ab, _ := m.RegisterLink(&nml.Link{Source: ids["a_out"], Sink: ids["b_in"]})
	bc, _ := m.RegisterLink(&nml.Link{Source: bOut2.ID, Sink: cIn.ID})

	_, err := m.RegisterBidirectionalLink(&nml.BidirectionalLink{
		Links: [2]nml.ObjectID{ab.ID, bc.ID},
	})
	if !errors.Is(err, nml.ErrNotReciprocal) {
		t.Errorf("non-reciprocal pair = %v, want ErrNotReciprocal", err)
	}
}

func TestStats_CountsRegistrationsAndRejections(t *testing.T) {
	m, ids := twoNodes(t)

	// One rejection to count.
	m.RegisterLink(&nml.Link{Source: ids["a_out"], Sink: ids["a_in"]})

	stats := m.Stats()
	if stats.Nodes != 2 {
		t.Errorf("Stats.Nodes = %d, want 2", stats.Nodes)
	}
	if stats.Ports != 4 {
		t.Errorf("Stats.Ports = %d, want 4", stats.Ports)
	}
	if stats.Registered != 6 {
		t.Errorf("Stats.Registered = %d, want 6", stats.Registered)
	}
	if stats.Rejected != 1 {
		t.Errorf("Stats.Rejected = %d, want 1", stats.Rejected)
	}
}

func TestQueries_ReturnClones(t *testing.T) {
	m, ids := twoNodes(t)

	node, _ := m.Node(ids["a"])
	node.Name = "mutated"
	node.InboundPorts[0] = "nml:mutated"

	again, _ := m.Node(ids["a"])
	if again.Name == "mutated" || again.InboundPorts[0] == "nml:mutated" {
		t.Error("query result aliases namespace state")
	}
}

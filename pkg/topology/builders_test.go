package topology

import (
	"context"
	"testing"
	"time"

	"github.com/opennml/gonml/pkg/events"
	"github.com/opennml/gonml/pkg/nml"
)

func TestCreateBiport_CreatesWiredSubports(t *testing.T) {
	m := New()
	sw1, err := m.CreateNode("sw1")
	if err != nil {
		t.Fatalf("CreateNode failed: %v", err)
	}

	biport, err := m.CreateBiport(sw1.ID, "p1")
	if err != nil {
		t.Fatalf("CreateBiport failed: %v", err)
	}

	members, err := m.PortsOf(biport.ID)
	if err != nil {
		t.Fatalf("PortsOf failed: %v", err)
	}
	if members[0].Name != "p1_in" || members[1].Name != "p1_out" {
		t.Errorf("member names = %q/%q, want p1_in/p1_out", members[0].Name, members[1].Name)
	}
	for _, member := range members {
		if member.Node != sw1.ID {
			t.Errorf("member %s owned by %s, want %s", member.ID, member.Node, sw1.ID)
		}
	}

	inbound, _ := m.InboundPorts(sw1.ID)
	outbound, _ := m.OutboundPorts(sw1.ID)
	if len(inbound) != 1 || len(outbound) != 1 {
		t.Errorf("node port lists = %d/%d, want 1/1", len(inbound), len(outbound))
	}
}

func TestCreateBiport_DefaultName(t *testing.T) {
	m := New()
	sw1, _ := m.CreateNode("sw1")

	first, err := m.CreateBiport(sw1.ID, "")
	if err != nil {
		t.Fatalf("CreateBiport failed: %v", err)
	}
	if first.Name != "port1" {
		t.Errorf("first biport name = %q, want port1", first.Name)
	}

	second, err := m.CreateBiport(sw1.ID, "")
	if err != nil {
		t.Fatalf("second CreateBiport failed: %v", err)
	}
	if second.Name != "port2" {
		t.Errorf("second biport name = %q, want port2", second.Name)
	}
}

// The reference scenario: two switches with three biports each, connected
// by two bilinks.
func TestCreateBilink_TwoSwitchScenario(t *testing.T) {
	m := New()

	sw1, _ := m.CreateNode("My Switch 1")
	sw2, _ := m.CreateNode("My Switch 2")

	var sw1Ports, sw2Ports []*nml.BidirectionalPort
	for i := 0; i < 3; i++ {
		p1, err := m.CreateBiport(sw1.ID, "")
		if err != nil {
			t.Fatalf("CreateBiport(sw1) failed: %v", err)
		}
		sw1Ports = append(sw1Ports, p1)

		p2, err := m.CreateBiport(sw2.ID, "")
		if err != nil {
			t.Fatalf("CreateBiport(sw2) failed: %v", err)
		}
		sw2Ports = append(sw2Ports, p2)
	}

	for i := 0; i < 2; i++ {
		bilink, err := m.CreateBilink(sw1Ports[i].ID, sw2Ports[i].ID, "")
		if err != nil {
			t.Fatalf("CreateBilink(%d) failed: %v", i, err)
		}

		members, err := m.LinksOf(bilink.ID)
		if err != nil {
			t.Fatalf("LinksOf failed: %v", err)
		}
		// Reciprocity at the node level: source of one is sink of the other.
		srcA, _ := m.PortOwner(members[0].Source)
		sinkA, _ := m.PortOwner(members[0].Sink)
		srcB, _ := m.PortOwner(members[1].Source)
		sinkB, _ := m.PortOwner(members[1].Sink)
		if srcA.ID != sinkB.ID || sinkA.ID != srcB.ID {
			t.Errorf("bilink %d members are not reciprocal", i)
		}
	}

	stats := m.Stats()
	if stats.Nodes != 2 || stats.BidirectionalPorts != 6 || stats.BidirectionalLinks != 2 {
		t.Errorf("stats = %+v, want 2 nodes, 6 biports, 2 bilinks", stats)
	}
	if stats.Ports != 12 || stats.Links != 4 {
		t.Errorf("stats = %+v, want 12 subports, 4 sublinks", stats)
	}
}

func TestCreateBilink_RejectsSameBiportPair(t *testing.T) {
	m := New()
	sw1, _ := m.CreateNode("sw1")
	p1, _ := m.CreateBiport(sw1.ID, "p1")

	if _, err := m.CreateBilink(p1.ID, p1.ID, ""); err == nil {
		t.Error("bilink between a biport and itself should fail")
	}
}

func TestRegistration_PublishesEvents(t *testing.T) {
	bus := events.NewBus()
	defer bus.Shutdown()

	nodeSub, err := bus.Subscribe(context.Background(), TopicNode)
	if err != nil {
		t.Fatalf("Subscribe failed: %v", err)
	}

	m := NewWithConfig(Config{Bus: bus})
	sw1, err := m.CreateNode("sw1")
	if err != nil {
		t.Fatalf("CreateNode failed: %v", err)
	}

	select {
	case ev := <-nodeSub.Channel():
		if ev.ID != string(sw1.ID) || ev.Kind != "Node" {
			t.Errorf("event = %+v, want node %s", ev, sw1.ID)
		}
	case <-time.After(time.Second):
		t.Fatal("no event published for node registration")
	}
}

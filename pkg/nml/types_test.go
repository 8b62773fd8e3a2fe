package nml

import (
	"testing"
	"time"
)

func TestDirection_RoundTrip(t *testing.T) {
	for _, d := range []Direction{Inbound, Outbound} {
		parsed, err := ParseDirection(d.String())
		if err != nil {
			t.Fatalf("ParseDirection(%q) failed: %v", d, err)
		}
		if parsed != d {
			t.Errorf("ParseDirection(%q) = %v, want %v", d, parsed, d)
		}
		if d.Opposite() == d {
			t.Errorf("Opposite(%v) should differ", d)
		}
	}

	if _, err := ParseDirection("sideways"); err == nil {
		t.Errorf("ParseDirection(sideways) should fail")
	}
}

func TestNode_Clone_IsDeep(t *testing.T) {
	node := &Node{
		ObjectMeta:    ObjectMeta{ID: "nml:sw1", Name: "Switch 1"},
		InboundPorts:  []ObjectID{"nml:sw1:p1_in"},
		OutboundPorts: []ObjectID{"nml:sw1:p1_out"},
	}

	clone := node.Clone()
	clone.InboundPorts[0] = "nml:mutated"
	clone.Name = "mutated"

	if node.InboundPorts[0] != "nml:sw1:p1_in" {
		t.Errorf("clone mutated original inbound ports")
	}
	if node.Name != "Switch 1" {
		t.Errorf("clone mutated original name")
	}
}

func TestPort_Clone_CopiesLabel(t *testing.T) {
	port := &Port{
		ObjectMeta: ObjectMeta{ID: "nml:sw1:p1_in"},
		Direction:  Inbound,
		Node:       "nml:sw1",
		Label:      &Label{Type: "vlan", Value: "100"},
	}

	clone := port.Clone()
	clone.Label.Value = "200"

	if port.Label.Value != "100" {
		t.Errorf("clone shares label with original")
	}
}

func TestLifetime_Contains(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 6, 0)

	bounded := Lifetime{Start: start, End: end}
	if !bounded.Contains(start.AddDate(0, 1, 0)) {
		t.Errorf("instant inside interval reported outside")
	}
	if bounded.Contains(end.AddDate(0, 1, 0)) {
		t.Errorf("instant after end reported inside")
	}

	open := Lifetime{Start: start}
	if !open.Contains(start.AddDate(10, 0, 0)) {
		t.Errorf("open-ended lifetime should contain any later instant")
	}
}

func TestKind_String(t *testing.T) {
	kinds := map[Kind]string{
		KindNode:              "Node",
		KindPort:              "Port",
		KindLink:              "Link",
		KindBidirectionalPort: "BidirectionalPort",
		KindBidirectionalLink: "BidirectionalLink",
		KindTopology:          "Topology",
	}
	for k, want := range kinds {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}

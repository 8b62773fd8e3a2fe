package nml

import (
	"errors"
	"strings"
	"testing"
)

func TestObjectID_Validate(t *testing.T) {
	valid := []ObjectID{
		"urn:uuid:de305d54-75b4-431b-adb2-eb6b9e546014",
		"http://example.org/topology#sw1",
		"nml:sw1:port1",
	}
	for _, id := range valid {
		if err := id.Validate(); err != nil {
			t.Errorf("Validate(%q) failed: %v", id, err)
		}
	}

	invalid := []ObjectID{
		"",
		"sw1",
		"just a name",
		"://missing-scheme",
	}
	for _, id := range invalid {
		err := id.Validate()
		if err == nil {
			t.Errorf("Validate(%q) should have failed", id)
			continue
		}
		if !errors.Is(err, ErrInvalidID) {
			t.Errorf("Validate(%q) = %v, want ErrInvalidID", id, err)
		}
	}
}

func TestNewID_IsURNUUID(t *testing.T) {
	id := NewID()
	if !strings.HasPrefix(string(id), "urn:uuid:") {
		t.Fatalf("NewID() = %q, want urn:uuid prefix", id)
	}
	if err := id.Validate(); err != nil {
		t.Errorf("generated ID failed validation: %v", err)
	}

	other := NewID()
	if id == other {
		t.Errorf("two generated IDs collided: %q", id)
	}
}

package nml

import (
	"errors"
	"strings"
	"testing"
)

func TestModelError_Format(t *testing.T) {
	err := NewError("RegisterLink").
		Kind(KindPort).
		ID("nml:sw1:p1_out").
		Cause(ErrPortOccupied).
		Err()

	msg := err.Error()
	for _, want := range []string{"RegisterLink", "Port", "nml:sw1:p1_out", "already attached"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error message %q missing %q", msg, want)
		}
	}
}

func TestModelError_Unwrap(t *testing.T) {
	err := NotFoundError("GetNode", KindNode, "nml:missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("errors.Is(err, ErrNotFound) = false")
	}
	if !IsNotFound(err) {
		t.Errorf("IsNotFound(err) = false")
	}

	var modelErr *ModelError
	if !errors.As(err, &modelErr) {
		t.Fatalf("errors.As failed for %T", err)
	}
	if modelErr.Entity != "Node" {
		t.Errorf("Entity = %q, want Node", modelErr.Entity)
	}
}

func TestIsValidation(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{NewError("RegisterLink").Cause(ErrSameNode).Err(), true},
		{NewError("RegisterBidirectionalLink").Cause(ErrNotReciprocal).Err(), true},
		{NewError("RegisterPort").Cause(ErrInvalidDirection).Err(), true},
		{NotFoundError("GetPort", KindPort, "nml:p"), false},
		{DuplicateError("RegisterNode", "nml:n"), false},
	}
	for _, c := range cases {
		if got := IsValidation(c.err); got != c.want {
			t.Errorf("IsValidation(%v) = %v, want %v", c.err, got, c.want)
		}
	}
}

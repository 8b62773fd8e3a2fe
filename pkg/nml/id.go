package nml

import (
	"net/url"

	"github.com/google/uuid"
)

// ObjectID identifies a network object. NML identifiers are URIs; every ID
// accepted into a namespace must carry a scheme.
type ObjectID string

func (id ObjectID) String() string { return string(id) }

// IsZero reports whether the ID is unset.
func (id ObjectID) IsZero() bool { return id == "" }

// Validate checks that the ID is a URI with a scheme.
func (id ObjectID) Validate() error {
	u, err := url.Parse(string(id))
	if err != nil || u.Scheme == "" {
		return NewError("validate").ID(id).Cause(ErrInvalidID).Err()
	}
	return nil
}

// NewID generates a fresh urn:uuid identifier. Used when the caller does
// not supply an explicit URI.
func NewID() ObjectID {
	return ObjectID("urn:uuid:" + uuid.NewString())
}

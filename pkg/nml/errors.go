package nml

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrNotFound          = errors.New("object not found")
	ErrDuplicateID       = errors.New("identifier already in namespace")
	ErrInvalidID         = errors.New("identifier is not a valid URI")
	ErrInvalidDirection  = errors.New("invalid port direction")
	ErrWrongKind         = errors.New("object has the wrong kind")
	ErrSameNode          = errors.New("ports belong to the same node")
	ErrDifferentNode     = errors.New("ports belong to different nodes")
	ErrPortOccupied      = errors.New("port already attached to a link")
	ErrAlreadyAggregated = errors.New("object already belongs to an aggregate")
	ErrNotReciprocal     = errors.New("links are not a reciprocal pair")
)

// ModelError provides structured error information for namespace operations.
type ModelError struct {
	Op      string   // Operation that failed (e.g. "RegisterLink")
	Entity  string   // Entity kind (e.g. "Port", "Link")
	ObjID   ObjectID // Entity ID (if applicable)
	Cause   error    // Underlying error
	Context string   // Additional context
}

// Error implements the error interface.
func (e *ModelError) Error() string {
	switch {
	case e.ObjID != "" && e.Context != "":
		return fmt.Sprintf("%s %s %s (%s): %v", e.Op, e.Entity, e.ObjID, e.Context, e.Cause)
	case e.ObjID != "":
		return fmt.Sprintf("%s %s %s: %v", e.Op, e.Entity, e.ObjID, e.Cause)
	case e.Context != "":
		return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Entity, e.Context, e.Cause)
	case e.Entity != "":
		return fmt.Sprintf("%s %s: %v", e.Op, e.Entity, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *ModelError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *ModelError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building ModelErrors.
type ErrorBuilder struct {
	err ModelError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: ModelError{Op: op}}
}

// Kind sets the entity kind.
func (b *ErrorBuilder) Kind(k Kind) *ErrorBuilder {
	b.err.Entity = k.String()
	return b
}

// ID sets the entity identifier.
func (b *ErrorBuilder) ID(id ObjectID) *ErrorBuilder {
	b.err.ObjID = id
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// NotFoundError creates a not found error for the given kind and ID.
func NotFoundError(op string, kind Kind, id ObjectID) error {
	return NewError(op).Kind(kind).ID(id).Cause(ErrNotFound).Err()
}

// DuplicateError creates a duplicate identifier error.
func DuplicateError(op string, id ObjectID) error {
	return NewError(op).ID(id).Cause(ErrDuplicateID).Err()
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation returns true if the error reports a violated model invariant.
func IsValidation(err error) bool {
	for _, sentinel := range []error{
		ErrInvalidID, ErrInvalidDirection, ErrWrongKind, ErrSameNode,
		ErrDifferentNode, ErrPortOccupied, ErrAlreadyAggregated, ErrNotReciprocal,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

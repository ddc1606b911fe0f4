package schema

import "errors"

// Sentinel errors for schema resolution failures.
var (
	// ErrInvalidSchema indicates a schema definition error detected
	// during resolution, such as duplicate property names.
	ErrInvalidSchema = errors.New("daolite: invalid schema")
	// ErrUnmappedType indicates an abstract type with no catalog entry.
	// This is a programming error, not a recoverable condition.
	ErrUnmappedType = errors.New("daolite: unmapped property type")
)

// FILE: lixenwraith/roconfig/errors.go
package roconfig

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigNotFound is returned when a required configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidPathSegment is returned when a key path segment cannot address its container,
	// e.g. a non-numeric token against a sequence or an empty segment.
	ErrInvalidPathSegment = errors.New("invalid path segment")

	// ErrIndexOutOfRange is returned when a numeric segment is outside the sequence bounds.
	// Sequences are never grown by an override.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrStructuralConflict is returned when a path would descend through an existing scalar.
	ErrStructuralConflict = errors.New("structural conflict")

	// ErrInvalidAssignment is returned when the target container rejects the key or value type.
	ErrInvalidAssignment = errors.New("invalid assignment")

	// ErrKeyNotFound is returned by strict accessors for absent keys.
	ErrKeyNotFound = errors.New("key not found")

	// ErrTypeMismatch is returned when a Value is converted to a kind it does not hold.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrInvalidDocument is returned when a parsed file does not have a mapping at its top level.
	ErrInvalidDocument = errors.New("invalid configuration document")

	// ErrInterpolation is returned when an INI value holds a malformed or unresolvable %(name)s reference.
	ErrInterpolation = errors.New("invalid interpolation")

	// ErrUnknownFormat is returned when a file format cannot be derived from the path.
	ErrUnknownFormat = errors.New("unknown configuration format")
)

// OverrideError describes a failed override of a key path.
type OverrideError struct {
	// Key is the raw override key as supplied by the caller
	Key string

	// Segment is the path segment where resolution stopped
	Segment string

	// Detail is optional additional context
	Detail string

	// Err is one of the resolver sentinels
	Err error
}

func (e *OverrideError) Error() string {
	msg := fmt.Sprintf("cannot apply override %q at segment %q: %v", e.Key, e.Segment, e.Err)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

func (e *OverrideError) Unwrap() error {
	return e.Err
}

func overrideErr(key, segment string, err error, detail string) error {
	return &OverrideError{Key: key, Segment: segment, Detail: detail, Err: err}
}

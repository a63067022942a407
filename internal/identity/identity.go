// Package identity mints and checks entity identifiers.
package identity

import "github.com/google/uuid"

// Policy generates identifiers and decides whether a caller-supplied string is
// well-formed. Well-formedness says nothing about whether an entity exists.
type Policy interface {
	New() string
	Valid(candidate string) bool
}

// UUID issues random version 4 UUIDs in canonical textual form.
type UUID struct{}

// New returns a freshly generated identifier. Collisions are not checked.
func (UUID) New() string {
	return uuid.NewString()
}

// Valid accepts the canonical 36 character hyphenated form of an RFC 4122
// UUID of versions 1 through 8, and the nil UUID.
func (UUID) Valid(candidate string) bool {
	if len(candidate) != 36 {
		return false
	}
	id, err := uuid.Parse(candidate)
	if err != nil {
		return false
	}
	if id == uuid.Nil {
		return true
	}
	if id.Variant() != uuid.RFC4122 {
		return false
	}
	v := id.Version()
	return v >= 1 && v <= 8
}

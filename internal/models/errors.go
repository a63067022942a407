package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedID signals an identifier that is not a well-formed UUID.
	ErrMalformedID = errors.New("invalid id")
	// ErrNotFound signals a well-formed identifier with no stored entity.
	ErrNotFound = errors.New("not found")
	// ErrInvalidPayload signals a create or update payload that failed validation.
	ErrInvalidPayload = errors.New("invalid payload")
)

// MalformedID wraps ErrMalformedID with the offending identifier.
func MalformedID(kind Kind, id string) error {
	return fmt.Errorf("%s id %q: %w", kind, id, ErrMalformedID)
}

// NotFound wraps ErrNotFound with the entity kind and identifier.
func NotFound(kind Kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
}

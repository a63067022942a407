// Package relations keeps the weak references between artists, albums and
// tracks consistent: it coerces dangling references on write and nulls
// dependents when the referenced entity is deleted.
package relations

import (
	"homelibrary/internal/identity"
	"homelibrary/internal/models"
)

// Lookup answers whether an entity exists. *store.Tx implements it.
type Lookup interface {
	Exists(kind models.Kind, id string) bool
}

// Resolver turns caller-supplied reference candidates into stored references.
type Resolver struct {
	ids identity.Policy
}

// NewResolver returns a resolver validating candidates with ids.
func NewResolver(ids identity.Policy) Resolver {
	return Resolver{ids: ids}
}

// Resolve returns a copy of candidate when it is a well-formed identifier of
// an existing entity of kind, and nil otherwise. It never fails.
func (r Resolver) Resolve(lookup Lookup, kind models.Kind, candidate *string) *string {
	if candidate == nil {
		return nil
	}
	id := *candidate
	if !r.ids.Valid(id) || !lookup.Exists(kind, id) {
		return nil
	}
	return &id
}

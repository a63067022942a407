package relations

import (
	"homelibrary/internal/models"
	"homelibrary/internal/store"
)

// Relationship declares that Dependent entities hold a weak reference to a
// Target entity in Field.
type Relationship struct {
	// Target is the referenced kind (e.g., artist).
	Target models.Kind

	// Dependent is the kind holding the reference (e.g., album).
	Dependent models.Kind

	// Field is the payload and JSON name of the reference (e.g., "artistId").
	Field string

	// Detach nulls every reference to id held by dependents and returns the
	// ids of the dependents it changed.
	Detach func(tx *store.Tx, id string) []string
}

// Registry holds the relationships consulted by cascading deletes.
type Registry struct {
	relationships []Relationship
	byTarget      map[models.Kind][]Relationship
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		relationships: []Relationship{},
		byTarget:      make(map[models.Kind][]Relationship),
	}
}

// DefaultRegistry returns the relationships of the library model.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Relationship{
		Target:    models.KindArtist,
		Dependent: models.KindAlbum,
		Field:     "artistId",
		Detach: func(tx *store.Tx, id string) []string {
			return detach(tx.Albums(), func(a *models.Album) **string { return &a.ArtistID }, id)
		},
	})
	r.Register(Relationship{
		Target:    models.KindArtist,
		Dependent: models.KindTrack,
		Field:     "artistId",
		Detach: func(tx *store.Tx, id string) []string {
			return detach(tx.Tracks(), func(t *models.Track) **string { return &t.ArtistID }, id)
		},
	})
	r.Register(Relationship{
		Target:    models.KindAlbum,
		Dependent: models.KindTrack,
		Field:     "albumId",
		Detach: func(tx *store.Tx, id string) []string {
			return detach(tx.Tracks(), func(t *models.Track) **string { return &t.AlbumID }, id)
		},
	})
	return r
}

// Register adds a relationship to the registry.
func (r *Registry) Register(rel Relationship) {
	r.relationships = append(r.relationships, rel)
	r.byTarget[rel.Target] = append(r.byTarget[rel.Target], rel)
}

// DependentsOf returns the relationships referencing target.
func (r *Registry) DependentsOf(target models.Kind) []Relationship {
	return r.byTarget[target]
}

// All returns all registered relationships.
func (r *Registry) All() []Relationship {
	return r.relationships
}

func detach[T store.Record[T]](c *store.Collection[T], ref func(*T) **string, id string) []string {
	return c.Mutate(func(item *T) bool {
		p := ref(item)
		if *p == nil || **p != id {
			return false
		}
		*p = nil
		return true
	})
}

// Package store provides the in-memory entity collections the library
// services read and write.
package store

import (
	"context"
	"sync"

	"homelibrary/internal/models"
)

// Store keeps every entity collection in process memory. Transactions are
// serialized by a single mutex guarding the whole state and work on a cloned
// copy that replaces the state only when the transaction succeeds.
type Store struct {
	mu    sync.Mutex
	state state
}

type state struct {
	artists   *Collection[models.Artist]
	albums    *Collection[models.Album]
	tracks    *Collection[models.Track]
	favorites models.Favorites
}

func newState() state {
	return state{
		artists:   newCollection[models.Artist](),
		albums:    newCollection[models.Album](),
		tracks:    newCollection[models.Track](),
		favorites: models.NewFavorites(),
	}
}

func (s state) clone() state {
	return state{
		artists:   s.artists.clone(),
		albums:    s.albums.clone(),
		tracks:    s.tracks.clone(),
		favorites: s.favorites.Clone(),
	}
}

// Snapshot is a point-in-time copy of the store contents.
type Snapshot struct {
	Artists   []models.Artist  `json:"artists"`
	Albums    []models.Album   `json:"albums"`
	Tracks    []models.Track   `json:"tracks"`
	Favorites models.Favorites `json:"favorites"`
}

// New returns an empty store.
func New() *Store {
	return &Store{state: newState()}
}

// RunInTransaction executes fn against a copy of the state. The copy becomes
// the new state only when fn returns nil, so a failed operation leaves no
// partial changes behind.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{state: s.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}

	s.state = tx.state
	return nil
}

// View executes fn against a copy of the state. Changes made through the
// transaction are discarded.
func (s *Store) View(ctx context.Context, fn func(tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	snapshot := s.state.clone()
	s.mu.Unlock()

	return fn(&Tx{state: snapshot})
}

// ExportState returns a copy of every collection.
func (s *Store) ExportState() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Artists:   s.state.artists.All(),
		Albums:    s.state.albums.All(),
		Tracks:    s.state.tracks.All(),
		Favorites: s.state.favorites.Clone(),
	}
}

// Tx exposes the collections of one transaction.
type Tx struct {
	state state
}

// Artists returns the artist collection.
func (tx *Tx) Artists() *Collection[models.Artist] { return tx.state.artists }

// Albums returns the album collection.
func (tx *Tx) Albums() *Collection[models.Album] { return tx.state.albums }

// Tracks returns the track collection.
func (tx *Tx) Tracks() *Collection[models.Track] { return tx.state.tracks }

// Favorites returns the favorites membership sets.
func (tx *Tx) Favorites() *models.Favorites { return &tx.state.favorites }

// Exists reports whether an entity of kind with the given id is stored.
func (tx *Tx) Exists(kind models.Kind, id string) bool {
	switch kind {
	case models.KindArtist:
		return tx.state.artists.Contains(id)
	case models.KindAlbum:
		return tx.state.albums.Contains(id)
	case models.KindTrack:
		return tx.state.tracks.Contains(id)
	}
	return false
}

// Remove deletes the entity of kind with the given id and reports whether it
// existed. Dependent references are not touched.
func (tx *Tx) Remove(kind models.Kind, id string) bool {
	switch kind {
	case models.KindArtist:
		return tx.state.artists.Remove(id)
	case models.KindAlbum:
		return tx.state.albums.Remove(id)
	case models.KindTrack:
		return tx.state.tracks.Remove(id)
	}
	return false
}

// Package app composes the library services over one store.
package app

import (
	"homelibrary/internal/app/albums"
	"homelibrary/internal/app/artists"
	"homelibrary/internal/app/favorites"
	"homelibrary/internal/app/tracks"
	"homelibrary/internal/relations"
	"homelibrary/internal/store"
)

// Catalog exposes every library service. All of them share one store and one
// relationship engine.
type Catalog struct {
	Artists   artists.Service
	Albums    albums.Service
	Tracks    tracks.Service
	Favorites favorites.Service
}

// NewCatalog wires the services over st.
func NewCatalog(st *store.Store, engine *relations.Engine) *Catalog {
	return &Catalog{
		Artists:   artists.New(st, engine),
		Albums:    albums.New(st, engine),
		Tracks:    tracks.New(st, engine),
		Favorites: favorites.New(st, engine),
	}
}

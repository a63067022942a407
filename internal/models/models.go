// Package models holds the library entities shared by the store, the
// relationship engine and the services.
package models

import "fmt"

// Kind names a stored entity collection.
type Kind string

const (
	KindArtist Kind = "artist"
	KindAlbum  Kind = "album"
	KindTrack  Kind = "track"
)

// Kinds lists every entity kind in dependency order.
var Kinds = []Kind{KindArtist, KindAlbum, KindTrack}

// Valid reports whether k is a known entity kind.
func (k Kind) Valid() bool {
	switch k {
	case KindArtist, KindAlbum, KindTrack:
		return true
	}
	return false
}

// ParseKind converts a caller-supplied kind name.
func ParseKind(raw string) (Kind, error) {
	k := Kind(raw)
	if !k.Valid() {
		return "", fmt.Errorf("unknown kind %q: %w", raw, ErrInvalidPayload)
	}
	return k, nil
}

// Artist is a performer referenced by albums and tracks.
type Artist struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Grammy bool   `json:"grammy"`
	Year   int    `json:"year,omitempty"`
}

// Album is a release. ArtistID is a weak reference that is cleared when the
// artist is deleted.
type Album struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Year     int     `json:"year"`
	ArtistID *string `json:"artistId"`
}

// Track is a single recording with weak references to its album and artist.
type Track struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	AlbumID  *string `json:"albumId"`
	ArtistID *string `json:"artistId"`
	Duration int     `json:"duration"`
}

// EntityID returns the artist identifier.
func (a Artist) EntityID() string { return a.ID }

// Clone returns a copy of the artist.
func (a Artist) Clone() Artist { return a }

// EntityID returns the album identifier.
func (a Album) EntityID() string { return a.ID }

// Clone returns a deep copy of the album.
func (a Album) Clone() Album {
	a.ArtistID = cloneRef(a.ArtistID)
	return a
}

// EntityID returns the track identifier.
func (t Track) EntityID() string { return t.ID }

// Clone returns a deep copy of the track.
func (t Track) Clone() Track {
	t.AlbumID = cloneRef(t.AlbumID)
	t.ArtistID = cloneRef(t.ArtistID)
	return t
}

// Ref returns a pointer to a copy of id, for populating reference fields.
func Ref(id string) *string {
	return &id
}

func cloneRef(ref *string) *string {
	if ref == nil {
		return nil
	}
	v := *ref
	return &v
}

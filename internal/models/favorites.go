package models

// Favorites holds the membership sets of favorited entities by identifier.
// Members carry no ownership; deleting an entity removes it from its set.
type Favorites struct {
	Artists []string `json:"artists"`
	Albums  []string `json:"albums"`
	Tracks  []string `json:"tracks"`
}

// FavoritesView is Favorites with every identifier resolved to its entity.
type FavoritesView struct {
	Artists []Artist `json:"artists"`
	Albums  []Album  `json:"albums"`
	Tracks  []Track  `json:"tracks"`
}

// NewFavorites returns empty, non-nil membership sets.
func NewFavorites() Favorites {
	return Favorites{
		Artists: []string{},
		Albums:  []string{},
		Tracks:  []string{},
	}
}

// IDs returns a copy of the membership set for kind.
func (f *Favorites) IDs(kind Kind) []string {
	set := f.set(kind)
	if set == nil {
		return nil
	}
	return append([]string{}, (*set)...)
}

// Contains reports whether id is a member of the set for kind.
func (f *Favorites) Contains(kind Kind, id string) bool {
	set := f.set(kind)
	if set == nil {
		return false
	}
	for _, member := range *set {
		if member == id {
			return true
		}
	}
	return false
}

// Add inserts id into the set for kind. It reports false when the id was
// already present or the kind is unknown.
func (f *Favorites) Add(kind Kind, id string) bool {
	set := f.set(kind)
	if set == nil || f.Contains(kind, id) {
		return false
	}
	*set = append(*set, id)
	return true
}

// Remove drops id from the set for kind and reports whether it was present.
func (f *Favorites) Remove(kind Kind, id string) bool {
	set := f.set(kind)
	if set == nil {
		return false
	}
	kept := (*set)[:0]
	removed := false
	for _, member := range *set {
		if member == id {
			removed = true
			continue
		}
		kept = append(kept, member)
	}
	*set = kept
	return removed
}

// Clone returns a deep copy.
func (f Favorites) Clone() Favorites {
	return Favorites{
		Artists: append([]string{}, f.Artists...),
		Albums:  append([]string{}, f.Albums...),
		Tracks:  append([]string{}, f.Tracks...),
	}
}

func (f *Favorites) set(kind Kind) *[]string {
	switch kind {
	case KindArtist:
		return &f.Artists
	case KindAlbum:
		return &f.Albums
	case KindTrack:
		return &f.Tracks
	}
	return nil
}

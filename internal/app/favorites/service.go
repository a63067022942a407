package favorites

import (
	"context"
	"fmt"

	"homelibrary/internal/models"
	"homelibrary/internal/relations"
	"homelibrary/internal/store"
)

// Store defines the transactional access favorites workflows need.
type Store interface {
	View(ctx context.Context, fn func(tx *store.Tx) error) error
	RunInTransaction(ctx context.Context, fn func(tx *store.Tx) error) error
}

// Service describes favorites membership operations.
type Service interface {
	List(ctx context.Context) (models.FavoritesView, error)
	Add(ctx context.Context, kind models.Kind, id string) error
	Remove(ctx context.Context, kind models.Kind, id string) error
}

type service struct {
	store  Store
	engine *relations.Engine
}

// New constructs a favorites Service backed by the given store.
func New(st Store, engine *relations.Engine) Service {
	return &service{store: st, engine: engine}
}

// List resolves every favorite to its entity, in the order they were added.
func (s *service) List(ctx context.Context) (view models.FavoritesView, err error) {
	if err := ctx.Err(); err != nil {
		return models.FavoritesView{}, err
	}

	err = s.store.View(ctx, func(tx *store.Tx) error {
		favs := tx.Favorites()
		view = models.FavoritesView{
			Artists: resolve(tx.Artists(), favs.IDs(models.KindArtist)),
			Albums:  resolve(tx.Albums(), favs.IDs(models.KindAlbum)),
			Tracks:  resolve(tx.Tracks(), favs.IDs(models.KindTrack)),
		}
		return nil
	})
	return view, err
}

// Add marks an existing entity as a favorite. Adding a favorite twice is a
// no-op.
func (s *service) Add(ctx context.Context, kind models.Kind, id string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := models.ParseKind(string(kind)); err != nil {
		return fmt.Errorf("favorite: %w", err)
	}
	done := s.engine.Track(kind, relations.OpAdd)
	defer func() { done(err) }()

	return s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		if err := s.engine.CheckID(kind, id); err != nil {
			return err
		}
		if !tx.Exists(kind, id) {
			return models.NotFound(kind, id)
		}
		tx.Favorites().Add(kind, id)
		return nil
	})
}

// Remove drops an entity from favorites. It fails with ErrNotFound when the
// id is not a favorite of that kind.
func (s *service) Remove(ctx context.Context, kind models.Kind, id string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := models.ParseKind(string(kind)); err != nil {
		return fmt.Errorf("favorite: %w", err)
	}
	done := s.engine.Track(kind, relations.OpRemove)
	defer func() { done(err) }()

	return s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		if err := s.engine.CheckID(kind, id); err != nil {
			return err
		}
		if !tx.Favorites().Remove(kind, id) {
			return fmt.Errorf("favorite %w", models.NotFound(kind, id))
		}
		return nil
	})
}

func resolve[T store.Record[T]](c *store.Collection[T], ids []string) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		if item, ok := c.Find(id); ok {
			out = append(out, item)
		}
	}
	return out
}

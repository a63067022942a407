package artists

import (
	"context"

	"homelibrary/internal/models"
	"homelibrary/internal/relations"
	"homelibrary/internal/store"
	"homelibrary/internal/validation"
)

// Store captures the transactional access artist workflows need.
type Store interface {
	View(ctx context.Context, fn func(tx *store.Tx) error) error
	RunInTransaction(ctx context.Context, fn func(tx *store.Tx) error) error
}

// Service coordinates artist operations.
type Service interface {
	List(ctx context.Context) ([]models.Artist, error)
	Get(ctx context.Context, id string) (models.Artist, error)
	Create(ctx context.Context, payload validation.Payload) (models.Artist, error)
	Update(ctx context.Context, id string, payload validation.Payload) (models.Artist, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	store  Store
	engine *relations.Engine
}

// New constructs a Service backed by the provided Store.
func New(st Store, engine *relations.Engine) Service {
	return &service{store: st, engine: engine}
}

func (s *service) List(ctx context.Context) (artists []models.Artist, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done := s.engine.Track(models.KindArtist, relations.OpList)
	defer func() { done(err) }()

	err = s.store.View(ctx, func(tx *store.Tx) error {
		artists = tx.Artists().All()
		return nil
	})
	return artists, err
}

func (s *service) Get(ctx context.Context, id string) (artist models.Artist, err error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	done := s.engine.Track(models.KindArtist, relations.OpGet)
	defer func() { done(err) }()

	err = s.store.View(ctx, func(tx *store.Tx) error {
		i, err := relations.Locate(s.engine, tx.Artists(), models.KindArtist, id)
		if err != nil {
			return err
		}
		artist = tx.Artists().At(i)
		return nil
	})
	return artist, err
}

func (s *service) Create(ctx context.Context, payload validation.Payload) (artist models.Artist, err error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	done := s.engine.Track(models.KindArtist, relations.OpCreate)
	defer func() { done(err) }()

	values, err := validation.ArtistSchema.Create(payload)
	if err != nil {
		return models.Artist{}, err
	}

	err = s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		artist = models.Artist{
			ID:     s.engine.NewID(),
			Name:   values.String("name"),
			Grammy: values.Bool("grammy"),
			Year:   values.Int("year"),
		}
		tx.Artists().Append(artist)
		return nil
	})
	if err != nil {
		return models.Artist{}, err
	}
	return artist, nil
}

func (s *service) Update(ctx context.Context, id string, payload validation.Payload) (artist models.Artist, err error) {
	if err := ctx.Err(); err != nil {
		return models.Artist{}, err
	}
	done := s.engine.Track(models.KindArtist, relations.OpUpdate)
	defer func() { done(err) }()

	err = s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		i, err := relations.Locate(s.engine, tx.Artists(), models.KindArtist, id)
		if err != nil {
			return err
		}
		values, err := validation.ArtistSchema.Update(payload)
		if err != nil {
			return err
		}

		artist = tx.Artists().At(i)
		if values.Has("name") {
			artist.Name = values.String("name")
		}
		if values.Has("grammy") {
			artist.Grammy = values.Bool("grammy")
		}
		if values.Has("year") {
			artist.Year = values.Int("year")
		}
		tx.Artists().Replace(i, artist)
		return nil
	})
	if err != nil {
		return models.Artist{}, err
	}
	return artist, nil
}

func (s *service) Delete(ctx context.Context, id string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := s.engine.Track(models.KindArtist, relations.OpDelete)
	defer func() { done(err) }()

	var cascade relations.Cascade
	err = s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		var err error
		cascade, err = s.engine.Delete(tx, models.KindArtist, id)
		return err
	})
	if err != nil {
		return err
	}
	s.engine.Committed(cascade)
	return nil
}

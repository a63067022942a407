package albums

import (
	"context"

	"homelibrary/internal/models"
	"homelibrary/internal/relations"
	"homelibrary/internal/store"
	"homelibrary/internal/validation"
)

// Store captures the transactional access album workflows need.
type Store interface {
	View(ctx context.Context, fn func(tx *store.Tx) error) error
	RunInTransaction(ctx context.Context, fn func(tx *store.Tx) error) error
}

// Service coordinates album operations.
type Service interface {
	List(ctx context.Context) ([]models.Album, error)
	Get(ctx context.Context, id string) (models.Album, error)
	Create(ctx context.Context, payload validation.Payload) (models.Album, error)
	Update(ctx context.Context, id string, payload validation.Payload) (models.Album, error)
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

func (s *service) List(ctx context.Context) (albums []models.Album, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done := s.engine.Track(models.KindAlbum, relations.OpList)
	defer func() { done(err) }()

	err = s.store.View(ctx, func(tx *store.Tx) error {
		albums = tx.Albums().All()
		return nil
	})
	return albums, err
}

func (s *service) Get(ctx context.Context, id string) (album models.Album, err error) {
	if err := ctx.Err(); err != nil {
		return models.Album{}, err
	}
	done := s.engine.Track(models.KindAlbum, relations.OpGet)
	defer func() { done(err) }()

	err = s.store.View(ctx, func(tx *store.Tx) error {
		i, err := relations.Locate(s.engine, tx.Albums(), models.KindAlbum, id)
		if err != nil {
			return err
		}
		album = tx.Albums().At(i)
		return nil
	})
	return album, err
}

// Create stores a new album. An artistId that does not name a stored artist
// is saved as null.
func (s *service) Create(ctx context.Context, payload validation.Payload) (album models.Album, err error) {
	if err := ctx.Err(); err != nil {
		return models.Album{}, err
	}
	done := s.engine.Track(models.KindAlbum, relations.OpCreate)
	defer func() { done(err) }()

	values, err := validation.AlbumSchema.Create(payload)
	if err != nil {
		return models.Album{}, err
	}

	err = s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		album = models.Album{
			ID:       s.engine.NewID(),
			Name:     values.String("name"),
			Year:     values.Int("year"),
			ArtistID: s.engine.Resolve(tx, models.KindArtist, values.Ref("artistId")),
		}
		tx.Albums().Append(album)
		return nil
	})
	if err != nil {
		return models.Album{}, err
	}
	return album, nil
}

// Update merges the supplied fields over the stored album. Omitted fields,
// including artistId, keep their stored values.
func (s *service) Update(ctx context.Context, id string, payload validation.Payload) (album models.Album, err error) {
	if err := ctx.Err(); err != nil {
		return models.Album{}, err
	}
	done := s.engine.Track(models.KindAlbum, relations.OpUpdate)
	defer func() { done(err) }()

	err = s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		i, err := relations.Locate(s.engine, tx.Albums(), models.KindAlbum, id)
		if err != nil {
			return err
		}
		values, err := validation.AlbumSchema.Update(payload)
		if err != nil {
			return err
		}

		album = tx.Albums().At(i)
		if values.Has("name") {
			album.Name = values.String("name")
		}
		if values.Has("year") {
			album.Year = values.Int("year")
		}
		if values.Has("artistId") {
			album.ArtistID = s.engine.Resolve(tx, models.KindArtist, values.Ref("artistId"))
		}
		tx.Albums().Replace(i, album)
		return nil
	})
	if err != nil {
		return models.Album{}, err
	}
	return album, nil
}

func (s *service) Delete(ctx context.Context, id string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := s.engine.Track(models.KindAlbum, relations.OpDelete)
	defer func() { done(err) }()

	var cascade relations.Cascade
	err = s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		var err error
		cascade, err = s.engine.Delete(tx, models.KindAlbum, id)
		return err
	})
	if err != nil {
		return err
	}
	s.engine.Committed(cascade)
	return nil
}

package tracks

import (
	"context"

	"homelibrary/internal/models"
	"homelibrary/internal/relations"
	"homelibrary/internal/store"
	"homelibrary/internal/validation"
)

// Store captures the transactional access track workflows need.
type Store interface {
	View(ctx context.Context, fn func(tx *store.Tx) error) error
	RunInTransaction(ctx context.Context, fn func(tx *store.Tx) error) error
}

// Service coordinates track operations.
type Service interface {
	List(ctx context.Context) ([]models.Track, error)
	Get(ctx context.Context, id string) (models.Track, error)
	Create(ctx context.Context, payload validation.Payload) (models.Track, error)
	Update(ctx context.Context, id string, payload validation.Payload) (models.Track, error)
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

func (s *service) List(ctx context.Context) (tracks []models.Track, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	done := s.engine.Track(models.KindTrack, relations.OpList)
	defer func() { done(err) }()

	err = s.store.View(ctx, func(tx *store.Tx) error {
		tracks = tx.Tracks().All()
		return nil
	})
	return tracks, err
}

func (s *service) Get(ctx context.Context, id string) (track models.Track, err error) {
	if err := ctx.Err(); err != nil {
		return models.Track{}, err
	}
	done := s.engine.Track(models.KindTrack, relations.OpGet)
	defer func() { done(err) }()

	err = s.store.View(ctx, func(tx *store.Tx) error {
		i, err := relations.Locate(s.engine, tx.Tracks(), models.KindTrack, id)
		if err != nil {
			return err
		}
		track = tx.Tracks().At(i)
		return nil
	})
	return track, err
}

func (s *service) Create(ctx context.Context, payload validation.Payload) (track models.Track, err error) {
	if err := ctx.Err(); err != nil {
		return models.Track{}, err
	}
	done := s.engine.Track(models.KindTrack, relations.OpCreate)
	defer func() { done(err) }()

	values, err := validation.TrackSchema.Create(payload)
	if err != nil {
		return models.Track{}, err
	}

	err = s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		track = models.Track{
			ID:       s.engine.NewID(),
			Name:     values.String("name"),
			AlbumID:  s.engine.Resolve(tx, models.KindAlbum, values.Ref("albumId")),
			ArtistID: s.engine.Resolve(tx, models.KindArtist, values.Ref("artistId")),
			Duration: values.Int("duration"),
		}
		tx.Tracks().Append(track)
		return nil
	})
	if err != nil {
		return models.Track{}, err
	}
	return track, nil
}

func (s *service) Update(ctx context.Context, id string, payload validation.Payload) (track models.Track, err error) {
	if err := ctx.Err(); err != nil {
		return models.Track{}, err
	}
	done := s.engine.Track(models.KindTrack, relations.OpUpdate)
	defer func() { done(err) }()

	err = s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		i, err := relations.Locate(s.engine, tx.Tracks(), models.KindTrack, id)
		if err != nil {
			return err
		}
		values, err := validation.TrackSchema.Update(payload)
		if err != nil {
			return err
		}

		track = tx.Tracks().At(i)
		if values.Has("name") {
			track.Name = values.String("name")
		}
		if values.Has("duration") {
			track.Duration = values.Int("duration")
		}
		if values.Has("albumId") {
			track.AlbumID = s.engine.Resolve(tx, models.KindAlbum, values.Ref("albumId"))
		}
		if values.Has("artistId") {
			track.ArtistID = s.engine.Resolve(tx, models.KindArtist, values.Ref("artistId"))
		}
		tx.Tracks().Replace(i, track)
		return nil
	})
	if err != nil {
		return models.Track{}, err
	}
	return track, nil
}

func (s *service) Delete(ctx context.Context, id string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := s.engine.Track(models.KindTrack, relations.OpDelete)
	defer func() { done(err) }()

	var cascade relations.Cascade
	err = s.store.RunInTransaction(ctx, func(tx *store.Tx) error {
		var err error
		cascade, err = s.engine.Delete(tx, models.KindTrack, id)
		return err
	})
	if err != nil {
		return err
	}
	s.engine.Committed(cascade)
	return nil
}

package relations

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"homelibrary/internal/identity"
	"homelibrary/internal/metrics"
	"homelibrary/internal/models"
	"homelibrary/internal/store"
)

// Op names a tracked library operation.
type Op string

const (
	OpList   Op = "list"
	OpGet    Op = "get"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpAdd    Op = "add"
	OpRemove Op = "remove"
)

// Operation results used as metric labels.
const (
	ResultOK             = "ok"
	ResultMalformedID    = "malformed_id"
	ResultNotFound       = "not_found"
	ResultInvalidPayload = "invalid_payload"
	ResultError          = "error"
)

// Engine applies the referential rules shared by every entity service.
type Engine struct {
	ids      identity.Policy
	resolver Resolver
	registry *Registry
	logger   zerolog.Logger
	metrics  *metrics.Recorder
}

// NewEngine builds an engine. A nil registry means DefaultRegistry and a nil
// recorder disables metrics.
func NewEngine(ids identity.Policy, registry *Registry, logger zerolog.Logger, rec *metrics.Recorder) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Engine{
		ids:      ids,
		resolver: NewResolver(ids),
		registry: registry,
		logger:   logger,
		metrics:  rec,
	}
}

// NewID mints a fresh identifier.
func (e *Engine) NewID() string {
	return e.ids.New()
}

// CheckID fails with ErrMalformedID when id is not a well-formed identifier.
func (e *Engine) CheckID(kind models.Kind, id string) error {
	if !e.ids.Valid(id) {
		return models.MalformedID(kind, id)
	}
	return nil
}

// Resolve coerces a reference candidate to an existing entity of kind, or nil.
func (e *Engine) Resolve(tx Lookup, kind models.Kind, candidate *string) *string {
	resolved := e.resolver.Resolve(tx, kind, candidate)
	if candidate != nil && resolved == nil {
		e.logger.Debug().
			Str("kind", string(kind)).
			Str("candidate", *candidate).
			Msg("dangling reference coerced to null")
	}
	return resolved
}

// Locate returns the position of id in c. A malformed id fails before any
// lookup; a well-formed id with no entity fails with ErrNotFound.
func Locate[T store.Record[T]](e *Engine, c *store.Collection[T], kind models.Kind, id string) (int, error) {
	if err := e.CheckID(kind, id); err != nil {
		return -1, err
	}
	i := c.Index(id)
	if i < 0 {
		return -1, models.NotFound(kind, id)
	}
	return i, nil
}

// Detachment lists the dependents whose Field was nulled by a delete.
type Detachment struct {
	Kind  models.Kind
	Field string
	IDs   []string
}

// Cascade reports the effects of one delete.
type Cascade struct {
	Kind        models.Kind
	ID          string
	Detached    []Detachment
	Unfavorited bool
}

// Delete removes the entity of kind with id after nulling every reference to
// it and dropping it from favorites. All changes go through tx, so they
// commit or roll back together.
func (e *Engine) Delete(tx *store.Tx, kind models.Kind, id string) (Cascade, error) {
	if err := e.CheckID(kind, id); err != nil {
		return Cascade{}, err
	}
	if !tx.Exists(kind, id) {
		return Cascade{}, models.NotFound(kind, id)
	}

	report := Cascade{Kind: kind, ID: id}
	for _, rel := range e.registry.DependentsOf(kind) {
		changed := rel.Detach(tx, id)
		if len(changed) == 0 {
			continue
		}
		report.Detached = append(report.Detached, Detachment{
			Kind:  rel.Dependent,
			Field: rel.Field,
			IDs:   changed,
		})
	}
	report.Unfavorited = tx.Favorites().Remove(kind, id)
	tx.Remove(kind, id)

	return report, nil
}

// Committed logs and counts a cascade once its transaction has committed.
func (e *Engine) Committed(c Cascade) {
	detached := 0
	for _, d := range c.Detached {
		detached += len(d.IDs)
		e.metrics.Detached(string(d.Kind), d.Field, len(d.IDs))
	}

	e.logger.Info().
		Str("kind", string(c.Kind)).
		Str("id", c.ID).
		Int("detached", detached).
		Bool("unfavorited", c.Unfavorited).
		Msg("entity deleted")
}

// Track starts timing an operation. The returned func records its outcome.
func (e *Engine) Track(kind models.Kind, op Op) func(error) {
	start := time.Now()
	return func(err error) {
		result := Result(err)
		e.metrics.Observe(string(kind), string(op), result, time.Since(start))
		if err != nil {
			e.logger.Debug().
				Err(err).
				Str("kind", string(kind)).
				Str("op", string(op)).
				Str("result", result).
				Msg("operation rejected")
		}
	}
}

// Result classifies err into a metric label.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, models.ErrMalformedID):
		return ResultMalformedID
	case errors.Is(err, models.ErrNotFound):
		return ResultNotFound
	case errors.Is(err, models.ErrInvalidPayload):
		return ResultInvalidPayload
	default:
		return ResultError
	}
}

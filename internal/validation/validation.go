// Package validation checks loosely typed create and update payloads against
// the field rules of each entity kind.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"

	"homelibrary/internal/models"
)

// Payload is a decoded JSON object: strings, numbers, booleans and nulls.
type Payload map[string]any

// DecodePayload reads one JSON object from r.
func DecodePayload(r io.Reader) (Payload, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode payload: %w: %v", models.ErrInvalidPayload, err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &Error{Rule: RuleWrongType}
	}
	return Payload(obj), nil
}

// Rule names the class of validation failure.
type Rule string

const (
	RuleMissing     Rule = "missing"
	RuleWrongType   Rule = "wrong_type"
	RuleEmptyUpdate Rule = "empty_update"
)

// Error describes a rejected payload.
type Error struct {
	Kind  models.Kind
	Field string
	Rule  Rule
}

func (e *Error) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("invalid payload: %s", e.Rule)
	}
	switch {
	case e.Rule == RuleEmptyUpdate:
		return fmt.Sprintf("invalid %s payload: no updatable field supplied", e.Kind)
	case e.Field == "":
		return fmt.Sprintf("invalid %s payload: %s", e.Kind, e.Rule)
	default:
		return fmt.Sprintf("invalid %s payload: field %q %s", e.Kind, e.Field, e.Rule)
	}
}

// Unwrap lets errors.Is match models.ErrInvalidPayload.
func (e *Error) Unwrap() error {
	return models.ErrInvalidPayload
}

// RuleOf returns the rule of a validation error, or "" when err is not one.
func RuleOf(err error) Rule {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Rule
	}
	return ""
}

// FieldType is the declared type of a payload field.
type FieldType int

const (
	String FieldType = iota
	Number
	Bool
	Reference
)

// Field declares one recognized payload field.
type Field struct {
	Name     string
	Type     FieldType
	Required bool
	// Target is the referenced kind for Reference fields.
	Target models.Kind
}

// Schema lists the recognized fields of one entity kind.
type Schema struct {
	Kind   models.Kind
	Fields []Field
}

var (
	ArtistSchema = Schema{
		Kind: models.KindArtist,
		Fields: []Field{
			{Name: "name", Type: String, Required: true},
			{Name: "grammy", Type: Bool},
			{Name: "year", Type: Number},
		},
	}

	AlbumSchema = Schema{
		Kind: models.KindAlbum,
		Fields: []Field{
			{Name: "name", Type: String, Required: true},
			{Name: "year", Type: Number, Required: true},
			{Name: "artistId", Type: Reference, Target: models.KindArtist},
		},
	}

	TrackSchema = Schema{
		Kind: models.KindTrack,
		Fields: []Field{
			{Name: "name", Type: String, Required: true},
			{Name: "duration", Type: Number},
			{Name: "albumId", Type: Reference, Target: models.KindAlbum},
			{Name: "artistId", Type: Reference, Target: models.KindArtist},
		},
	}
)

// Values holds the normalized fields of an accepted payload.
type Values struct {
	fields map[string]any
}

// Has reports whether the field was supplied.
func (v Values) Has(name string) bool {
	_, ok := v.fields[name]
	return ok
}

// String returns a string field, or "" when absent.
func (v Values) String(name string) string {
	s, _ := v.fields[name].(string)
	return s
}

// Int returns a number field, or 0 when absent.
func (v Values) Int(name string) int {
	n, _ := v.fields[name].(int)
	return n
}

// Bool returns a boolean field, or false when absent.
func (v Values) Bool(name string) bool {
	b, _ := v.fields[name].(bool)
	return b
}

// Ref returns the candidate identifier of a reference field. It is nil when
// the field was absent or explicitly null.
func (v Values) Ref(name string) *string {
	s, ok := v.fields[name].(string)
	if !ok {
		return nil
	}
	return &s
}

// Create validates a create payload. Required fields must be present and
// truthy; present fields must carry their declared type; reference fields may
// be absent, null or a string.
func (s Schema) Create(p Payload) (Values, error) {
	values := Values{fields: make(map[string]any, len(s.Fields))}

	for _, f := range s.Fields {
		raw, present := p[f.Name]

		if f.Required && !truthy(raw) {
			return Values{}, s.fail(f.Name, RuleMissing)
		}

		if f.Type == Reference {
			if !present || raw == nil {
				values.fields[f.Name] = nil
				continue
			}
			id, ok := raw.(string)
			if !ok {
				return Values{}, s.fail(f.Name, RuleWrongType)
			}
			values.fields[f.Name] = id
			continue
		}

		if !present || raw == nil {
			continue
		}
		v, ok := normalize(f.Type, raw)
		if !ok {
			return Values{}, s.fail(f.Name, RuleWrongType)
		}
		values.fields[f.Name] = v
	}

	return values, nil
}

// Update validates a sparse update payload. A field is supplied when its
// value is truthy, or when a reference field is explicitly null. Falsy scalar
// values are treated as absent, so an update can never set year to 0.
func (s Schema) Update(p Payload) (Values, error) {
	values := Values{fields: make(map[string]any, len(s.Fields))}

	for _, f := range s.Fields {
		raw, present := p[f.Name]
		if !present {
			continue
		}

		if f.Type == Reference && raw == nil {
			values.fields[f.Name] = nil
			continue
		}
		if !truthy(raw) {
			continue
		}

		if f.Type == Reference {
			id, ok := raw.(string)
			if !ok {
				return Values{}, s.fail(f.Name, RuleWrongType)
			}
			values.fields[f.Name] = id
			continue
		}

		v, ok := normalize(f.Type, raw)
		if !ok {
			return Values{}, s.fail(f.Name, RuleWrongType)
		}
		values.fields[f.Name] = v
	}

	if len(values.fields) == 0 {
		return Values{}, &Error{Kind: s.Kind, Rule: RuleEmptyUpdate}
	}
	return values, nil
}

func (s Schema) fail(field string, rule Rule) error {
	return &Error{Kind: s.Kind, Field: field, Rule: rule}
}

func normalize(t FieldType, raw any) (any, bool) {
	switch t {
	case String:
		v, ok := raw.(string)
		return v, ok
	case Bool:
		v, ok := raw.(bool)
		return v, ok
	case Number:
		n, ok := number(raw)
		if !ok || n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt32 || n < math.MinInt32 {
			return nil, false
		}
		return int(n), true
	}
	return nil, false
}

func number(raw any) (float64, bool) {
	switch v := raw.(type) {
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// truthy reports whether raw counts as supplied: nil, "", 0 and false do not.
func truthy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return false
	case string:
		return v != ""
	case bool:
		return v
	case json.Number:
		f, err := v.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	}
	if n, ok := number(raw); ok {
		return n != 0 && !math.IsNaN(n)
	}
	return true
}

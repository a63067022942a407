package artists

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"homelibrary/internal/identity"
	"homelibrary/internal/models"
	"homelibrary/internal/relations"
	"homelibrary/internal/store"
	"homelibrary/internal/validation"
)

func newService() (Service, *store.Store) {
	st := store.New()
	engine := relations.NewEngine(identity.UUID{}, nil, zerolog.Nop(), nil)
	return New(st, engine), st
}

func TestCreateAndGet(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	created, err := svc.Create(ctx, validation.Payload{"name": "Q", "year": 1990, "grammy": true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !(identity.UUID{}).Valid(created.ID) {
		t.Fatalf("created id %q is not well-formed", created.ID)
	}
	if created.Name != "Q" || created.Year != 1990 || !created.Grammy {
		t.Fatalf("unexpected artist: %+v", created)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != created {
		t.Fatalf("Get = %+v, want %+v", got, created)
	}
}

func TestCreateRejectsMissingName(t *testing.T) {
	svc, st := newService()

	_, err := svc.Create(context.Background(), validation.Payload{"grammy": true})
	if !errors.Is(err, models.ErrInvalidPayload) || validation.RuleOf(err) != validation.RuleMissing {
		t.Fatalf("expected missing name, got %v", err)
	}
	if len(st.ExportState().Artists) != 0 {
		t.Fatalf("rejected create stored an artist")
	}
}

func TestCreateIssuesUniqueIDs(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		a, err := svc.Create(ctx, validation.Payload{"name": "Artist"})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if seen[a.ID] {
			t.Fatalf("duplicate id %s", a.ID)
		}
		seen[a.ID] = true
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 20 {
		t.Fatalf("List returned %d artists", len(list))
	}
}

func TestUpdateSparseMerge(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, validation.Payload{"name": "Portishead", "year": 1991, "grammy": true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	tests := []struct {
		name    string
		payload validation.Payload
		want    models.Artist
	}{
		{
			name:    "rename",
			payload: validation.Payload{"name": "Portishead (Bristol)"},
			want:    models.Artist{ID: a.ID, Name: "Portishead (Bristol)", Year: 1991, Grammy: true},
		},
		{
			name:    "falsy values keep stored values",
			payload: validation.Payload{"year": 0, "grammy": false, "name": "Beth Gibbons"},
			want:    models.Artist{ID: a.ID, Name: "Beth Gibbons", Year: 1991, Grammy: true},
		},
		{
			name:    "year",
			payload: validation.Payload{"year": 1994},
			want:    models.Artist{ID: a.ID, Name: "Beth Gibbons", Year: 1994, Grammy: true},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.Update(ctx, a.ID, tc.payload)
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Update = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestMalformedIDPrecedence(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, validation.Payload{"name": "Radiohead"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, id := range []string{"", "1", "not-a-uuid", "6f1c1c5e8a6b4c559a0f3b1f7f0c2d11"} {
		if _, err := svc.Get(ctx, id); !errors.Is(err, models.ErrMalformedID) {
			t.Errorf("Get(%q): expected ErrMalformedID, got %v", id, err)
		}
		if _, err := svc.Update(ctx, id, validation.Payload{}); !errors.Is(err, models.ErrMalformedID) {
			t.Errorf("Update(%q): expected ErrMalformedID, got %v", id, err)
		}
		if err := svc.Delete(ctx, id); !errors.Is(err, models.ErrMalformedID) {
			t.Errorf("Delete(%q): expected ErrMalformedID, got %v", id, err)
		}
	}
}

func TestNotFound(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()
	id := identity.UUID{}.New()

	if _, err := svc.Get(ctx, id); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Get: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(ctx, id, validation.Payload{"name": "X"}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Update: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, id); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestUpdateEmptyPayload(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, validation.Payload{"name": "Bonobo"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(ctx, a.ID, validation.Payload{"genre": "Downtempo"})
	if validation.RuleOf(err) != validation.RuleEmptyUpdate {
		t.Fatalf("expected empty_update, got %v", err)
	}
}

func TestDeleteRemovesArtist(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	a, err := svc.Create(ctx, validation.Payload{"name": "Thundercat"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(st.ExportState().Artists) != 0 {
		t.Fatalf("artist still stored")
	}
	if err := svc.Delete(ctx, a.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	svc, _ := newService()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := svc.List(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := svc.Create(ctx, validation.Payload{"name": "X"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

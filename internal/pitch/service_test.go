package pitch

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/youssefhoussam/pitch-service/internal/providers"
	"github.com/youssefhoussam/pitch-service/internal/store"
	"github.com/youssefhoussam/pitch-service/internal/types"
	"github.com/youssefhoussam/pitch-service/internal/upstream"
)

// fakeAuth resolves every token to a fixed user, or fails.
type fakeAuth struct {
	user *types.User
	err  error
}

func (f *fakeAuth) CurrentUser(ctx context.Context, token string) (*types.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

// fakeStartups resolves every token to a fixed startup, or fails.
type fakeStartups struct {
	startup *types.StartupProfile
	err     error
}

func (f *fakeStartups) MyStartup(ctx context.Context, token string) (*types.StartupProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.startup, nil
}

type fixture struct {
	svc     *Service
	store   *store.MemoryStore
	mock    *providers.MockGenerator
	startup *types.StartupProfile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st := store.NewMemoryStore()
	mock := providers.NewMockGenerator()
	mock.ResponseText = "Nous révolutionnons la livraison urbaine."

	registry := providers.NewRegistry()
	registry.Register("mock", mock)

	startup := &types.StartupProfile{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Name:   "DroneExpress",
		Sector: "Logistique",
	}
	user := &types.User{ID: startup.UserID, Email: "founder@example.com", Role: "FOUNDER", IsActive: true}

	svc := NewService(st, registry,
		&fakeAuth{user: user},
		&fakeStartups{startup: startup},
		nil)

	return &fixture{svc: svc, store: st, mock: mock, startup: startup}
}

func validRequest() GenerateRequest {
	return GenerateRequest{
		Problem:   "les livraisons urbaines sont lentes",
		Solution:  "une flotte de drones autonomes",
		Target:    "e-commerçants",
		Advantage: "livraison en 30 minutes",
		Type:      types.PitchTypeElevator,
	}
}

const token = "Bearer test-token"

func mustGenerate(t *testing.T, f *fixture) *types.Pitch {
	t.Helper()
	p, err := f.svc.Generate(context.Background(), token, validRequest())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return p
}

func TestGenerate(t *testing.T) {
	t.Run("persists generated pitch", func(t *testing.T) {
		f := newFixture(t)

		p := mustGenerate(t, f)

		if p.ID == uuid.Nil {
			t.Error("expected assigned id")
		}
		if p.StartupID != f.startup.ID {
			t.Errorf("StartupID = %s, want %s", p.StartupID, f.startup.ID)
		}
		if p.Generated != "Nous révolutionnons la livraison urbaine." {
			t.Errorf("Generated = %q", p.Generated)
		}
		if p.CreatedAt.IsZero() {
			t.Error("expected CreatedAt to be set")
		}

		stored, err := f.store.FindByIDAndStartup(context.Background(), p.ID, f.startup.ID)
		if err != nil {
			t.Fatalf("stored pitch missing: %v", err)
		}
		if stored.Generated != p.Generated {
			t.Error("stored pitch differs from returned pitch")
		}
	})

	t.Run("defaults type to elevator", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Type = ""

		p, err := f.svc.Generate(context.Background(), token, req)
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if p.Type != types.PitchTypeElevator {
			t.Errorf("Type = %q, want %q", p.Type, types.PitchTypeElevator)
		}
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		f := newFixture(t)

		for _, field := range []string{"probleme", "solution", "cible", "avantage"} {
			req := validRequest()
			switch field {
			case "probleme":
				req.Problem = "   "
			case "solution":
				req.Solution = ""
			case "cible":
				req.Target = "\n"
			case "avantage":
				req.Advantage = " "
			}

			_, err := f.svc.Generate(context.Background(), token, req)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("field %s: error = %v, want *ValidationError", field, err)
			}
			if ve.Field != field {
				t.Errorf("Field = %q, want %q", ve.Field, field)
			}
		}
		if f.mock.RequestCount() != 0 {
			t.Error("generator called despite invalid input")
		}
	})

	t.Run("rejects oversized fields", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Problem = strings.Repeat("x", types.MaxProblemLen+1)

		_, err := f.svc.Generate(context.Background(), token, req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("counts characters, not bytes", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		// MaxProblemLen accented runes encode to twice as many bytes.
		req.Problem = strings.Repeat("é", types.MaxProblemLen)

		if _, err := f.svc.Generate(context.Background(), token, req); err != nil {
			t.Fatalf("Generate() error = %v, want nil", err)
		}

		req.Problem = strings.Repeat("é", types.MaxProblemLen+1)
		_, err := f.svc.Generate(context.Background(), token, req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		f := newFixture(t)
		req := validRequest()
		req.Type = "HAIKU"

		_, err := f.svc.Generate(context.Background(), token, req)
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})

	t.Run("generation failure persists nothing", func(t *testing.T) {
		f := newFixture(t)
		f.mock.ShouldFail = true

		_, err := f.svc.Generate(context.Background(), token, validRequest())
		var genErr *providers.GenerationError
		if !errors.As(err, &genErr) {
			t.Fatalf("error = %v, want *GenerationError", err)
		}

		count, err := f.store.CountByStartup(context.Background(), f.startup.ID)
		if err != nil {
			t.Fatalf("CountByStartup() error = %v", err)
		}
		if count != 0 {
			t.Errorf("count = %d, want 0", count)
		}
	})

	t.Run("auth failure surfaces", func(t *testing.T) {
		f := newFixture(t)
		authErr := &upstream.Error{Service: "auth", Op: "current user", StatusCode: http.StatusUnauthorized, Err: errors.New("invalid token")}
		f.svc.auth = &fakeAuth{err: authErr}

		_, err := f.svc.Generate(context.Background(), token, validRequest())
		if !upstream.IsUnauthorized(err) {
			t.Errorf("IsUnauthorized() = false, err = %v", err)
		}
		if f.mock.RequestCount() != 0 {
			t.Error("generator called despite auth failure")
		}
	})
}

func TestListAndGet(t *testing.T) {
	t.Run("list returns only the caller's pitches", func(t *testing.T) {
		f := newFixture(t)
		mine := mustGenerate(t, f)

		// A pitch belonging to a different startup.
		other := &types.Pitch{
			StartupID: uuid.New(),
			Problem:   "p", Solution: "s", Target: "t", Advantage: "a",
			Generated: "other pitch", Type: types.PitchTypeElevator,
		}
		if err := f.store.Save(context.Background(), other); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		list, err := f.svc.List(context.Background(), token)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(list) != 1 {
			t.Fatalf("len = %d, want 1", len(list))
		}
		if list[0].ID != mine.ID {
			t.Error("listed a pitch from another startup")
		}
	})

	t.Run("get enforces ownership", func(t *testing.T) {
		f := newFixture(t)

		foreign := &types.Pitch{
			StartupID: uuid.New(),
			Problem:   "p", Solution: "s", Target: "t", Advantage: "a",
			Generated: "other pitch", Type: types.PitchTypeElevator,
		}
		if err := f.store.Save(context.Background(), foreign); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		_, err := f.svc.Get(context.Background(), token, foreign.ID)
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}

func TestUpdate(t *testing.T) {
	t.Run("regenerates content", func(t *testing.T) {
		f := newFixture(t)
		p := mustGenerate(t, f)

		f.mock.ResponseText = "Version améliorée du pitch."
		req := validRequest()
		req.Problem = "les livraisons rurales sont inexistantes"

		updated, err := f.svc.Update(context.Background(), token, p.ID, req)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.ID != p.ID {
			t.Error("update changed the pitch id")
		}
		if updated.Problem != req.Problem {
			t.Errorf("Problem = %q", updated.Problem)
		}
		if updated.Generated != "Version améliorée du pitch." {
			t.Errorf("Generated = %q", updated.Generated)
		}
	})

	t.Run("keeps the existing type", func(t *testing.T) {
		f := newFixture(t)
		deck := &types.Pitch{
			StartupID: f.startup.ID,
			Problem:   "p", Solution: "s", Target: "t", Advantage: "a",
			Generated: "structure du deck", Type: types.PitchTypeDeck,
		}
		if err := f.store.Save(context.Background(), deck); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		// A request-supplied type must not overwrite the stored one.
		req := validRequest()
		req.Type = types.PitchTypeElevator
		updated, err := f.svc.Update(context.Background(), token, deck.ID, req)
		if err != nil {
			t.Fatalf("Update() error = %v", err)
		}
		if updated.Type != types.PitchTypeDeck {
			t.Errorf("Type = %s, want DECK", updated.Type)
		}

		stored, err := f.store.FindByIDAndStartup(context.Background(), deck.ID, f.startup.ID)
		if err != nil {
			t.Fatalf("FindByIDAndStartup() error = %v", err)
		}
		if stored.Type != types.PitchTypeDeck {
			t.Errorf("stored Type = %s, want DECK", stored.Type)
		}
	})

	t.Run("generation failure leaves record untouched", func(t *testing.T) {
		f := newFixture(t)
		p := mustGenerate(t, f)
		before := p.Generated

		f.mock.ShouldFail = true
		_, err := f.svc.Update(context.Background(), token, p.ID, validRequest())
		if err == nil {
			t.Fatal("expected error")
		}

		stored, err := f.store.FindByIDAndStartup(context.Background(), p.ID, f.startup.ID)
		if err != nil {
			t.Fatalf("FindByIDAndStartup() error = %v", err)
		}
		if stored.Generated != before {
			t.Error("failed update modified the stored pitch")
		}
	})

	t.Run("unknown pitch", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Update(context.Background(), token, uuid.New(), validRequest())
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
		if f.mock.RequestCount() != 0 {
			t.Error("generator called for unknown pitch")
		}
	})
}

func TestDelete(t *testing.T) {
	f := newFixture(t)
	p := mustGenerate(t, f)

	if err := f.svc.Delete(context.Background(), token, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	_, err := f.svc.Get(context.Background(), token, p.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Get() after delete = %v, want ErrNotFound", err)
	}

	// Deleting again reports not found.
	if err := f.svc.Delete(context.Background(), token, p.ID); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}

func TestToggleFavorite(t *testing.T) {
	f := newFixture(t)
	p := mustGenerate(t, f)

	first, err := f.svc.ToggleFavorite(context.Background(), token, p.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if !first.IsFavorite {
		t.Error("first toggle should set favorite")
	}

	second, err := f.svc.ToggleFavorite(context.Background(), token, p.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if second.IsFavorite {
		t.Error("second toggle should clear favorite")
	}

	favorites, err := f.svc.ListFavorites(context.Background(), token)
	if err != nil {
		t.Fatalf("ListFavorites() error = %v", err)
	}
	if len(favorites) != 0 {
		t.Errorf("favorites = %d, want 0 after double toggle", len(favorites))
	}
}

func TestRate(t *testing.T) {
	t.Run("sets rating", func(t *testing.T) {
		f := newFixture(t)
		p := mustGenerate(t, f)

		rated, err := f.svc.Rate(context.Background(), token, p.ID, 4)
		if err != nil {
			t.Fatalf("Rate() error = %v", err)
		}
		if rated.Rating == nil || *rated.Rating != 4 {
			t.Errorf("Rating = %v, want 4", rated.Rating)
		}
	})

	t.Run("rejects out-of-range ratings", func(t *testing.T) {
		f := newFixture(t)
		p := mustGenerate(t, f)

		for _, bad := range []int{0, -1, 6, 100} {
			_, err := f.svc.Rate(context.Background(), token, p.ID, bad)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("rating %d: error = %v, want *ValidationError", bad, err)
			}
		}
	})
}

func TestStats(t *testing.T) {
	t.Run("aggregates counts and rated-only average", func(t *testing.T) {
		f := newFixture(t)
		ctx := context.Background()

		p1 := mustGenerate(t, f)
		p2 := mustGenerate(t, f)
		mustGenerate(t, f) // unrated, not favorite

		if _, err := f.svc.Rate(ctx, token, p1.ID, 3); err != nil {
			t.Fatalf("Rate() error = %v", err)
		}
		if _, err := f.svc.Rate(ctx, token, p2.ID, 5); err != nil {
			t.Fatalf("Rate() error = %v", err)
		}
		if _, err := f.svc.ToggleFavorite(ctx, token, p1.ID); err != nil {
			t.Fatalf("ToggleFavorite() error = %v", err)
		}

		stats, err := f.svc.Stats(ctx, token)
		if err != nil {
			t.Fatalf("Stats() error = %v", err)
		}
		if stats.TotalPitches != 3 {
			t.Errorf("TotalPitches = %d, want 3", stats.TotalPitches)
		}
		if stats.FavoritePitches != 1 {
			t.Errorf("FavoritePitches = %d, want 1", stats.FavoritePitches)
		}
		// Unrated pitches stay out of the average: (3+5)/2.
		if stats.AverageRating != 4.0 {
			t.Errorf("AverageRating = %f, want 4.0", stats.AverageRating)
		}
		if stats.PitchesByType[string(types.PitchTypeElevator)] != 3 {
			t.Errorf("PitchesByType = %v", stats.PitchesByType)
		}
	})

	t.Run("empty startup", func(t *testing.T) {
		f := newFixture(t)

		stats, err := f.svc.Stats(context.Background(), token)
		if err != nil {
			t.Fatalf("Stats() error = %v", err)
		}
		if stats.TotalPitches != 0 || stats.FavoritePitches != 0 || stats.AverageRating != 0 {
			t.Errorf("unexpected stats: %+v", stats)
		}
	})
}

func TestListPaginated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		mustGenerate(t, f)
	}

	page0, err := f.svc.ListPaginated(ctx, token, store.PageRequest{Page: 0, Size: 2})
	if err != nil {
		t.Fatalf("ListPaginated() error = %v", err)
	}
	if page0.TotalCount != 5 {
		t.Errorf("TotalCount = %d, want 5", page0.TotalCount)
	}
	if page0.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page0.TotalPages)
	}
	if len(page0.Items) != 2 {
		t.Errorf("page 0 items = %d, want 2", len(page0.Items))
	}

	page2, err := f.svc.ListPaginated(ctx, token, store.PageRequest{Page: 2, Size: 2})
	if err != nil {
		t.Fatalf("ListPaginated() error = %v", err)
	}
	if len(page2.Items) != 1 {
		t.Errorf("page 2 items = %d, want 1", len(page2.Items))
	}

	// No row appears on two pages.
	seen := map[uuid.UUID]bool{}
	for p := 0; p < 3; p++ {
		page, err := f.svc.ListPaginated(ctx, token, store.PageRequest{Page: p, Size: 2})
		if err != nil {
			t.Fatalf("page %d: %v", p, err)
		}
		for _, item := range page.Items {
			if seen[item.ID] {
				t.Errorf("pitch %s appears on multiple pages", item.ID)
			}
			seen[item.ID] = true
		}
	}
	if len(seen) != 5 {
		t.Errorf("saw %d distinct pitches, want 5", len(seen))
	}

	// Unknown sort fields fail fast.
	_, err = f.svc.ListPaginated(ctx, token, store.PageRequest{Page: 0, Size: 2, SortBy: "generated; DROP TABLE pitches"})
	if !errors.Is(err, store.ErrInvalidSortField) {
		t.Errorf("error = %v, want ErrInvalidSortField", err)
	}
}

func TestGenerateOnlyAndImprove(t *testing.T) {
	t.Run("generate only persists nothing", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.GenerateOnly(context.Background(), token, validRequest(), types.PitchTypeDeck)
		if err != nil {
			t.Fatalf("GenerateOnly() error = %v", err)
		}
		if res.Pitch == "" {
			t.Error("expected generated text")
		}
		if res.Type != types.PitchTypeDeck {
			t.Errorf("Type = %s, want DECK", res.Type)
		}
		if res.StartupName != f.startup.Name {
			t.Errorf("StartupName = %q, want %q", res.StartupName, f.startup.Name)
		}

		count, err := f.store.CountByStartup(context.Background(), f.startup.ID)
		if err != nil {
			t.Fatalf("CountByStartup() error = %v", err)
		}
		if count != 0 {
			t.Errorf("count = %d, want 0", count)
		}
	})

	t.Run("improve requires pitch text", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Improve(context.Background(), token, "  ", "raccourcir")
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}

		got, err := f.svc.Improve(context.Background(), token, "mon pitch", "raccourcir")
		if err != nil {
			t.Fatalf("Improve() error = %v", err)
		}
		if got == "" {
			t.Error("expected improved text")
		}
	})

	t.Run("suggest requires pitch text", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Suggest(context.Background(), token, "")
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("error = %v, want *ValidationError", err)
		}
	})
}

func TestTemplates(t *testing.T) {
	f := newFixture(t)
	f.store.AddTemplate(types.PitchTemplate{
		ID:       uuid.New(),
		Name:     "saas-b2b",
		Prompt:   "Pitch orienté SaaS B2B",
		Sector:   "SaaS",
		IsActive: true,
	})
	f.store.AddTemplate(types.PitchTemplate{
		ID:       uuid.New(),
		Name:     "legacy",
		Prompt:   "ancien modèle",
		IsActive: false,
	})

	templates, err := f.svc.Templates(context.Background(), token)
	if err != nil {
		t.Fatalf("Templates() error = %v", err)
	}
	if len(templates) != 1 {
		t.Fatalf("len = %d, want 1 active template", len(templates))
	}
	if templates[0].Name != "saas-b2b" {
		t.Errorf("Name = %q", templates[0].Name)
	}
}

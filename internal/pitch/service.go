// Package pitch implements the pitch lifecycle: every operation resolves
// the caller's identity and startup from the peer services, then reads or
// mutates only that startup's pitches.
package pitch

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/youssefhoussam/pitch-service/internal/providers"
	"github.com/youssefhoussam/pitch-service/internal/store"
	"github.com/youssefhoussam/pitch-service/internal/types"
)

// UserResolver resolves a bearer token to a platform user.
type UserResolver interface {
	CurrentUser(ctx context.Context, token string) (*types.User, error)
}

// StartupResolver resolves a bearer token to the caller's startup profile.
type StartupResolver interface {
	MyStartup(ctx context.Context, token string) (*types.StartupProfile, error)
}

// Service orchestrates pitch operations.
type Service struct {
	store    store.Store
	registry *providers.Registry
	auth     UserResolver
	startups StartupResolver
	logger   *slog.Logger
}

// NewService creates a pitch service.
func NewService(st store.Store, registry *providers.Registry, auth UserResolver, startups StartupResolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:    st,
		registry: registry,
		auth:     auth,
		startups: startups,
		logger:   logger,
	}
}

// GenerateRequest carries the structured inputs for pitch generation.
type GenerateRequest struct {
	Problem   string          `json:"probleme"`
	Solution  string          `json:"solution"`
	Target    string          `json:"cible"`
	Advantage string          `json:"avantage"`
	Type      types.PitchType `json:"type"`
}

// Validate checks presence and length limits on the generation inputs.
func (r *GenerateRequest) Validate() error {
	checks := []struct {
		field string
		value string
		max   int
	}{
		{"probleme", r.Problem, types.MaxProblemLen},
		{"solution", r.Solution, types.MaxSolutionLen},
		{"cible", r.Target, types.MaxTargetLen},
		{"avantage", r.Advantage, types.MaxAdvantageLen},
	}
	for _, c := range checks {
		if strings.TrimSpace(c.value) == "" {
			return invalidf(c.field, "must not be blank")
		}
		if utf8.RuneCountInString(c.value) > c.max {
			return invalidf(c.field, "must not exceed %d characters", c.max)
		}
	}
	if r.Type != "" && !r.Type.Valid() {
		return invalidf("type", "must be one of ELEVATOR, DECK, VALUE_PROP")
	}
	return nil
}

// identity bundles the resolved caller and their startup.
type identity struct {
	user    *types.User
	startup *types.StartupProfile
}

// resolve authenticates the token and loads the caller's startup profile.
func (s *Service) resolve(ctx context.Context, token string) (*identity, error) {
	user, err := s.auth.CurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	startup, err := s.startups.MyStartup(ctx, token)
	if err != nil {
		return nil, err
	}
	return &identity{user: user, startup: startup}, nil
}

// Generate produces a pitch from the structured inputs, persists it, and
// returns the stored record. A generation failure persists nothing.
func (s *Service) Generate(ctx context.Context, token string, req GenerateRequest) (*types.Pitch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	id, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	gen, err := s.registry.Default()
	if err != nil {
		return nil, err
	}

	pitchType := req.Type
	if pitchType == "" {
		pitchType = types.PitchTypeElevator
	}

	text, err := gen.GeneratePitch(ctx, providers.GenerateInput{
		Problem:   req.Problem,
		Solution:  req.Solution,
		Target:    req.Target,
		Advantage: req.Advantage,
		Startup:   *id.startup,
		Type:      pitchType,
	})
	if err != nil {
		return nil, err
	}

	p := &types.Pitch{
		StartupID: id.startup.ID,
		Problem:   req.Problem,
		Solution:  req.Solution,
		Target:    req.Target,
		Advantage: req.Advantage,
		Generated: text,
		Type:      pitchType,
	}
	if err := s.store.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("generated pitch",
		"pitch_id", p.ID,
		"startup_id", p.StartupID,
		"type", p.Type,
		"provider", gen.Name())

	return p, nil
}

// List returns all of the caller's pitches, newest first.
func (s *Service) List(ctx context.Context, token string) ([]types.Pitch, error) {
	id, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.store.FindAllByStartup(ctx, id.startup.ID)
}

// ListFavorites returns the caller's favorite pitches, newest first.
func (s *Service) ListFavorites(ctx context.Context, token string) ([]types.Pitch, error) {
	id, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.store.FindFavoritesByStartup(ctx, id.startup.ID)
}

// ListPaginated returns one page of the caller's pitches.
func (s *Service) ListPaginated(ctx context.Context, token string, req store.PageRequest) (*store.Page, error) {
	id, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.store.Paginate(ctx, id.startup.ID, req)
}

// Get returns one of the caller's pitches by id.
func (s *Service) Get(ctx context.Context, token string, pitchID uuid.UUID) (*types.Pitch, error) {
	id, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.store.FindByIDAndStartup(ctx, pitchID, id.startup.ID)
}

// Update regenerates a pitch from new inputs and replaces the stored
// record's content. The previous record is untouched if generation fails.
func (s *Service) Update(ctx context.Context, token string, pitchID uuid.UUID, req GenerateRequest) (*types.Pitch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	id, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	// Ownership check before spending a generation call.
	existing, err := s.store.FindByIDAndStartup(ctx, pitchID, id.startup.ID)
	if err != nil {
		return nil, err
	}

	gen, err := s.registry.Default()
	if err != nil {
		return nil, err
	}

	// An update never changes the pitch's type; regeneration reuses the
	// stored one regardless of what the request carries.
	pitchType := existing.Type

	text, err := gen.GeneratePitch(ctx, providers.GenerateInput{
		Problem:   req.Problem,
		Solution:  req.Solution,
		Target:    req.Target,
		Advantage: req.Advantage,
		Startup:   *id.startup,
		Type:      pitchType,
	})
	if err != nil {
		return nil, err
	}

	var updated *types.Pitch
	err = s.store.Transact(ctx, func(tx store.Store) error {
		p, err := tx.FindByIDAndStartup(ctx, pitchID, id.startup.ID)
		if err != nil {
			return err
		}
		p.Problem = req.Problem
		p.Solution = req.Solution
		p.Target = req.Target
		p.Advantage = req.Advantage
		p.Generated = text
		p.Type = pitchType
		if err := tx.Save(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("regenerated pitch", "pitch_id", pitchID, "startup_id", id.startup.ID)
	return updated, nil
}

// Delete removes one of the caller's pitches.
func (s *Service) Delete(ctx context.Context, token string, pitchID uuid.UUID) error {
	id, err := s.resolve(ctx, token)
	if err != nil {
		return err
	}

	return s.store.Transact(ctx, func(tx store.Store) error {
		exists, err := tx.ExistsByIDAndStartup(ctx, pitchID, id.startup.ID)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrNotFound
		}
		return tx.DeleteByID(ctx, pitchID)
	})
}

// ToggleFavorite flips the favorite flag and returns the updated pitch.
func (s *Service) ToggleFavorite(ctx context.Context, token string, pitchID uuid.UUID) (*types.Pitch, error) {
	id, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	var result *types.Pitch
	err = s.store.Transact(ctx, func(tx store.Store) error {
		p, err := tx.FindByIDAndStartup(ctx, pitchID, id.startup.ID)
		if err != nil {
			return err
		}
		p.IsFavorite = !p.IsFavorite
		if err := tx.Save(ctx, p); err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Rate sets the rating on a pitch. Ratings run from 1 to 5.
func (s *Service) Rate(ctx context.Context, token string, pitchID uuid.UUID, rating int) (*types.Pitch, error) {
	if rating < 1 || rating > 5 {
		return nil, invalidf("rating", "must be between 1 and 5")
	}
	id, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	var result *types.Pitch
	err = s.store.Transact(ctx, func(tx store.Store) error {
		p, err := tx.FindByIDAndStartup(ctx, pitchID, id.startup.ID)
		if err != nil {
			return err
		}
		p.Rating = &rating
		if err := tx.Save(ctx, p); err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Stats aggregates the caller's pitch counts and average rating. The
// average covers rated pitches only and is 0 when none are rated.
func (s *Service) Stats(ctx context.Context, token string) (*types.PitchStats, error) {
	id, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}

	total, err := s.store.CountByStartup(ctx, id.startup.ID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.store.FindFavoritesByStartup(ctx, id.startup.ID)
	if err != nil {
		return nil, err
	}
	avg, err := s.store.AverageRating(ctx, id.startup.ID)
	if err != nil {
		return nil, err
	}
	byType, err := s.store.CountByType(ctx, id.startup.ID)
	if err != nil {
		return nil, err
	}

	stats := &types.PitchStats{
		TotalPitches:    total,
		FavoritePitches: int64(len(favorites)),
		PitchesByType:   byType,
	}
	if avg != nil {
		stats.AverageRating = *avg
	}
	return stats, nil
}

// GeneratedPitch is the result of a generation that is not persisted.
type GeneratedPitch struct {
	Type        types.PitchType `json:"type"`
	Pitch       string          `json:"pitch"`
	StartupName string          `json:"startupName"`
}

// GenerateOnly produces pitch text without persisting anything. It still
// resolves the caller's startup so the prompt carries real context.
func (s *Service) GenerateOnly(ctx context.Context, token string, req GenerateRequest, pitchType types.PitchType) (*GeneratedPitch, error) {
	r := req
	r.Type = pitchType
	if err := r.Validate(); err != nil {
		return nil, err
	}
	id, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	gen, err := s.registry.Default()
	if err != nil {
		return nil, err
	}
	text, err := gen.GeneratePitch(ctx, providers.GenerateInput{
		Problem:   r.Problem,
		Solution:  r.Solution,
		Target:    r.Target,
		Advantage: r.Advantage,
		Startup:   *id.startup,
		Type:      pitchType,
	})
	if err != nil {
		return nil, err
	}
	return &GeneratedPitch{Type: pitchType, Pitch: text, StartupName: id.startup.Name}, nil
}

// Improve rewrites an existing pitch text according to free-form
// suggestions. Nothing is persisted.
func (s *Service) Improve(ctx context.Context, token, existing, suggestions string) (string, error) {
	if strings.TrimSpace(existing) == "" {
		return "", invalidf("pitch", "must not be blank")
	}
	if _, err := s.auth.CurrentUser(ctx, token); err != nil {
		return "", err
	}
	gen, err := s.registry.Default()
	if err != nil {
		return "", err
	}
	return gen.ImprovePitch(ctx, existing, suggestions)
}

// Suggest analyzes a pitch text and returns improvement suggestions.
func (s *Service) Suggest(ctx context.Context, token, pitchText string) (string, error) {
	if strings.TrimSpace(pitchText) == "" {
		return "", invalidf("pitch", "must not be blank")
	}
	if _, err := s.auth.CurrentUser(ctx, token); err != nil {
		return "", err
	}
	gen, err := s.registry.Default()
	if err != nil {
		return "", err
	}
	return gen.Suggestions(ctx, pitchText)
}

// Templates returns the active prompt templates.
func (s *Service) Templates(ctx context.Context, token string) ([]types.PitchTemplate, error) {
	if _, err := s.auth.CurrentUser(ctx, token); err != nil {
		return nil, err
	}
	return s.store.ActiveTemplates(ctx)
}

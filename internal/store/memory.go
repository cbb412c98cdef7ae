package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/youssefhoussam/pitch-service/internal/types"
)

// MemoryStore is an in-process Store. It backs unit tests and the "memory"
// database mode for local development without Postgres.
type MemoryStore struct {
	mu        sync.Mutex
	pitches   map[uuid.UUID]types.Pitch
	templates map[uuid.UUID]types.PitchTemplate
	now       func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		pitches:   make(map[uuid.UUID]types.Pitch),
		templates: make(map[uuid.UUID]types.PitchTemplate),
		now:       time.Now,
	}
}

// SetClock overrides the store's clock. Tests use it to create pitches with
// distinct, deterministic creation times.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// AddTemplate seeds a template.
func (s *MemoryStore) AddTemplate(tpl types.PitchTemplate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tpl.ID == uuid.Nil {
		tpl.ID = uuid.New()
	}
	s.templates[tpl.ID] = tpl
}

func (s *MemoryStore) Save(_ context.Context, p *types.Pitch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	normalizePitch(p)
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
	}
	p.UpdatedAt = s.now()
	s.pitches[p.ID] = *p
	return nil
}

func (s *MemoryStore) FindAllByStartup(_ context.Context, startupID uuid.UUID) ([]types.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(startupID, func(types.Pitch) bool { return true }), nil
}

func (s *MemoryStore) FindFavoritesByStartup(_ context.Context, startupID uuid.UUID) ([]types.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.collect(startupID, func(p types.Pitch) bool { return p.IsFavorite }), nil
}

func (s *MemoryStore) FindByIDAndStartup(_ context.Context, id, startupID uuid.UUID) (*types.Pitch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pitches[id]
	if !ok || p.StartupID != startupID {
		return nil, ErrNotFound
	}
	out := p
	return &out, nil
}

func (s *MemoryStore) ExistsByIDAndStartup(_ context.Context, id, startupID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pitches[id]
	return ok && p.StartupID == startupID, nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pitches, id)
	return nil
}

func (s *MemoryStore) Paginate(_ context.Context, startupID uuid.UUID, req PageRequest) (*Page, error) {
	if _, err := SortColumn(req.SortBy); err != nil {
		return nil, err
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.Page < 0 {
		req.Page = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all := s.collect(startupID, func(types.Pitch) bool { return true })
	sortPitches(all, req.SortBy, req.Direction)

	total := int64(len(all))
	start := req.Page * req.Size
	if start > len(all) {
		start = len(all)
	}
	end := start + req.Size
	if end > len(all) {
		end = len(all)
	}

	return &Page{
		Items:      all[start:end],
		TotalCount: total,
		TotalPages: totalPages(total, req.Size),
		Page:       req.Page,
		Size:       req.Size,
	}, nil
}

func (s *MemoryStore) CountByStartup(_ context.Context, startupID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.collect(startupID, func(types.Pitch) bool { return true }))), nil
}

func (s *MemoryStore) CountByType(_ context.Context, startupID uuid.UUID) (map[string]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int64)
	for _, p := range s.pitches {
		if p.StartupID == startupID {
			counts[string(p.Type)]++
		}
	}
	return counts, nil
}

func (s *MemoryStore) AverageRating(_ context.Context, startupID uuid.UUID) (*float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum, count float64
	for _, p := range s.pitches {
		if p.StartupID == startupID && p.Rating != nil {
			sum += float64(*p.Rating)
			count++
		}
	}
	if count == 0 {
		return nil, nil
	}
	avg := sum / count
	return &avg, nil
}

func (s *MemoryStore) ActiveTemplates(_ context.Context) ([]types.PitchTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.PitchTemplate
	for _, tpl := range s.templates {
		if tpl.IsActive {
			out = append(out, tpl)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *MemoryStore) TemplateByName(_ context.Context, name string) (*types.PitchTemplate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tpl := range s.templates {
		if tpl.IsActive && tpl.Name == name {
			out := tpl
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// Transact runs fn against the store. The memory store has no real
// transactions; each operation is individually atomic, which is enough for
// the deterministic lookup-then-mutate behavior tests rely on.
func (s *MemoryStore) Transact(_ context.Context, fn func(Store) error) error {
	return fn(s)
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }

// collect returns the startup's pitches matching keep, newest first.
// Caller holds the lock.
func (s *MemoryStore) collect(startupID uuid.UUID, keep func(types.Pitch) bool) []types.Pitch {
	out := make([]types.Pitch, 0)
	for _, p := range s.pitches {
		if p.StartupID == startupID && keep(p) {
			out = append(out, p)
		}
	}
	sortPitches(out, "createdAt", SortDesc)
	return out
}

func sortPitches(pitches []types.Pitch, field string, dir SortDirection) {
	less := func(a, b types.Pitch) bool {
		switch field {
		case "updatedAt":
			if !a.UpdatedAt.Equal(b.UpdatedAt) {
				return a.UpdatedAt.Before(b.UpdatedAt)
			}
		case "rating":
			ar, br := -1, -1
			if a.Rating != nil {
				ar = *a.Rating
			}
			if b.Rating != nil {
				br = *b.Rating
			}
			if ar != br {
				return ar < br
			}
		case "type":
			if a.Type != b.Type {
				return strings.Compare(string(a.Type), string(b.Type)) < 0
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
		}
		// Stable tiebreak so pagination never duplicates rows across pages.
		return a.ID.String() < b.ID.String()
	}

	sort.Slice(pitches, func(i, j int) bool {
		if dir == SortAsc {
			return less(pitches[i], pitches[j])
		}
		return less(pitches[j], pitches[i])
	})
}

// Verify interface
var _ Store = (*MemoryStore)(nil)

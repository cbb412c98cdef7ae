// Package store provides durable persistence for pitches, scoped by startup.
// Two implementations exist: a GORM/Postgres store used in production and an
// in-memory store used by tests and the "memory" dev mode.
package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/youssefhoussam/pitch-service/internal/types"
)

var (
	// ErrNotFound is returned when a pitch does not exist or belongs to a
	// different startup. Callers cannot distinguish the two cases.
	ErrNotFound = errors.New("pitch not found")

	// ErrInvalidSortField is returned when a pagination request names a sort
	// field outside the whitelist. Invalid fields fail fast rather than
	// silently falling back to a default.
	ErrInvalidSortField = errors.New("invalid sort field")
)

// SortDirection orders paginated results.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// ParseDirection maps a query-string direction to a SortDirection.
// Anything that is not ASC (case-insensitive) sorts descending.
func ParseDirection(s string) SortDirection {
	if strings.EqualFold(s, string(SortAsc)) {
		return SortAsc
	}
	return SortDesc
}

// sortColumns whitelists JSON-level sort field names to database columns.
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"rating":    "rating",
	"type":      "type",
}

// SortColumn resolves a sort field name to its column, or ErrInvalidSortField.
// An empty field sorts by creation time.
func SortColumn(field string) (string, error) {
	if field == "" {
		field = "createdAt"
	}
	col, ok := sortColumns[field]
	if !ok {
		return "", ErrInvalidSortField
	}
	return col, nil
}

// PageRequest describes one page of a paginated listing. Page numbers are
// 0-based.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	Direction SortDirection
}

// Page is one page of pitches plus the total row count for the startup.
type Page struct {
	Items      []types.Pitch `json:"content"`
	TotalCount int64         `json:"totalElements"`
	TotalPages int           `json:"totalPages"`
	Page       int           `json:"page"`
	Size       int           `json:"size"`
}

// Store is the pitch repository. Every query is implicitly filtered by
// startup id; there is no cross-startup access path.
type Store interface {
	// Save inserts or updates a pitch. On insert it assigns the id and
	// created/updated timestamps; on update it bumps the updated timestamp.
	Save(ctx context.Context, p *types.Pitch) error

	// FindAllByStartup returns the startup's pitches, newest first.
	FindAllByStartup(ctx context.Context, startupID uuid.UUID) ([]types.Pitch, error)

	// FindFavoritesByStartup returns the startup's favorite pitches, newest first.
	FindFavoritesByStartup(ctx context.Context, startupID uuid.UUID) ([]types.Pitch, error)

	// FindByIDAndStartup returns the pitch, or ErrNotFound if it is absent or
	// owned by a different startup.
	FindByIDAndStartup(ctx context.Context, id, startupID uuid.UUID) (*types.Pitch, error)

	// ExistsByIDAndStartup reports whether the startup owns the pitch.
	ExistsByIDAndStartup(ctx context.Context, id, startupID uuid.UUID) (bool, error)

	// DeleteByID removes a pitch.
	DeleteByID(ctx context.Context, id uuid.UUID) error

	// Paginate returns one page of the startup's pitches plus the total count.
	Paginate(ctx context.Context, startupID uuid.UUID, req PageRequest) (*Page, error)

	// CountByStartup returns the startup's total pitch count.
	CountByStartup(ctx context.Context, startupID uuid.UUID) (int64, error)

	// CountByType returns pitch counts grouped by type.
	CountByType(ctx context.Context, startupID uuid.UUID) (map[string]int64, error)

	// AverageRating averages over rated pitches only. Returns nil when the
	// startup has no rated pitches.
	AverageRating(ctx context.Context, startupID uuid.UUID) (*float64, error)

	// ActiveTemplates returns all active pitch templates.
	ActiveTemplates(ctx context.Context) ([]types.PitchTemplate, error)

	// TemplateByName returns the active template with the given name, or
	// ErrNotFound.
	TemplateByName(ctx context.Context, name string) (*types.PitchTemplate, error)

	// Transact runs fn atomically. Mutating use cases wrap their
	// lookup-then-mutate sequence in a transaction so concurrent operations
	// on the same pitch resolve deterministically.
	Transact(ctx context.Context, fn func(Store) error) error

	// Ping verifies the backing database is reachable.
	Ping(ctx context.Context) error

	// Close releases the underlying connections.
	Close() error
}

// normalizePitch applies insert-time defaults before a pitch first hits
// the database.
func normalizePitch(p *types.Pitch) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Type == "" {
		p.Type = types.PitchTypeElevator
	}
}

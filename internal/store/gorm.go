package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/youssefhoussam/pitch-service/internal/types"
)

// GormStore implements Store on top of GORM and Postgres.
type GormStore struct {
	db *gorm.DB
}

// GormConfig holds GORM store settings.
type GormConfig struct {
	// DSN is the Postgres connection string.
	DSN string
	// ConnectTimeout bounds how long Open waits for the database to accept
	// connections (default: 30s). Useful when a managed container is still
	// starting.
	ConnectTimeout time.Duration
	// LogSQL enables GORM's info-level statement logging.
	LogSQL bool
}

// Open connects to Postgres, retrying until the database accepts connections,
// and migrates the schema.
func Open(ctx context.Context, cfg GormConfig) (*GormStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}
	if cfg.ConnectTimeout == 0 {
		cfg.ConnectTimeout = 30 * time.Second
	}

	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
	if cfg.LogSQL {
		gormCfg.Logger = logger.Default.LogMode(logger.Info)
	}

	var db *gorm.DB
	err := retry.Do(
		func() error {
			var openErr error
			db, openErr = gorm.Open(postgres.Open(cfg.DSN), gormCfg)
			if openErr != nil {
				return openErr
			}
			sqlDB, dbErr := db.DB()
			if dbErr != nil {
				return dbErr
			}
			return sqlDB.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(uint(cfg.ConnectTimeout.Seconds())),
		retry.Delay(1*time.Second),
		retry.DelayType(retry.FixedDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&types.Pitch{}, &types.PitchTemplate{}); err != nil {
		return nil, fmt.Errorf("schema migration failed: %w", err)
	}

	slog.Debug("postgres store ready")
	return &GormStore{db: db}, nil
}

// NewGormStore wraps an existing GORM handle. Used by Transact and tests.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, p *types.Pitch) error {
	normalizePitch(p)
	// A zero CreatedAt means the pitch has never been persisted.
	if p.CreatedAt.IsZero() {
		if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
			return fmt.Errorf("failed to insert pitch: %w", err)
		}
		return nil
	}
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("failed to update pitch: %w", err)
	}
	return nil
}

func (s *GormStore) FindAllByStartup(ctx context.Context, startupID uuid.UUID) ([]types.Pitch, error) {
	var pitches []types.Pitch
	err := s.db.WithContext(ctx).
		Where("startup_id = ?", startupID).
		Order("created_at DESC").
		Find(&pitches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pitches: %w", err)
	}
	return pitches, nil
}

func (s *GormStore) FindFavoritesByStartup(ctx context.Context, startupID uuid.UUID) ([]types.Pitch, error) {
	var pitches []types.Pitch
	err := s.db.WithContext(ctx).
		Where("startup_id = ? AND is_favorite = ?", startupID, true).
		Order("created_at DESC").
		Find(&pitches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorite pitches: %w", err)
	}
	return pitches, nil
}

func (s *GormStore) FindByIDAndStartup(ctx context.Context, id, startupID uuid.UUID) (*types.Pitch, error) {
	var pitch types.Pitch
	err := s.db.WithContext(ctx).
		Where("id = ? AND startup_id = ?", id, startupID).
		First(&pitch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pitch: %w", err)
	}
	return &pitch, nil
}

func (s *GormStore) ExistsByIDAndStartup(ctx context.Context, id, startupID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&types.Pitch{}).
		Where("id = ? AND startup_id = ?", id, startupID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check pitch existence: %w", err)
	}
	return count > 0, nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := s.db.WithContext(ctx).Delete(&types.Pitch{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete pitch: %w", err)
	}
	return nil
}

func (s *GormStore) Paginate(ctx context.Context, startupID uuid.UUID, req PageRequest) (*Page, error) {
	col, err := SortColumn(req.SortBy)
	if err != nil {
		return nil, err
	}
	if req.Size <= 0 {
		req.Size = 10
	}
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Direction == "" {
		req.Direction = SortDesc
	}

	var total int64
	base := s.db.WithContext(ctx).Model(&types.Pitch{}).Where("startup_id = ?", startupID)
	if err := base.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count pitches: %w", err)
	}

	var pitches []types.Pitch
	err = s.db.WithContext(ctx).
		Where("startup_id = ?", startupID).
		Order(fmt.Sprintf("%s %s", col, req.Direction)).
		Offset(req.Page * req.Size).
		Limit(req.Size).
		Find(&pitches).Error
	if err != nil {
		return nil, fmt.Errorf("failed to page pitches: %w", err)
	}

	return &Page{
		Items:      pitches,
		TotalCount: total,
		TotalPages: totalPages(total, req.Size),
		Page:       req.Page,
		Size:       req.Size,
	}, nil
}

func (s *GormStore) CountByStartup(ctx context.Context, startupID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&types.Pitch{}).
		Where("startup_id = ?", startupID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count pitches: %w", err)
	}
	return count, nil
}

func (s *GormStore) CountByType(ctx context.Context, startupID uuid.UUID) (map[string]int64, error) {
	var rows []struct {
		Type  string
		Count int64
	}
	err := s.db.WithContext(ctx).
		Model(&types.Pitch{}).
		Select("type, COUNT(*) as count").
		Where("startup_id = ?", startupID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count pitches by type: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Type] = row.Count
	}
	return counts, nil
}

func (s *GormStore) AverageRating(ctx context.Context, startupID uuid.UUID) (*float64, error) {
	var avg *float64
	err := s.db.WithContext(ctx).
		Model(&types.Pitch{}).
		Select("AVG(rating)").
		Where("startup_id = ? AND rating IS NOT NULL", startupID).
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	return avg, nil
}

func (s *GormStore) ActiveTemplates(ctx context.Context) ([]types.PitchTemplate, error) {
	var templates []types.PitchTemplate
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("nom ASC").
		Find(&templates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

func (s *GormStore) TemplateByName(ctx context.Context, name string) (*types.PitchTemplate, error) {
	var tpl types.PitchTemplate
	err := s.db.WithContext(ctx).
		Where("nom = ? AND is_active = ?", name, true).
		First(&tpl).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &tpl, nil
}

func (s *GormStore) Transact(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewGormStore(tx))
	})
}

func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := int(total) / size
	if int(total)%size != 0 {
		pages++
	}
	return pages
}

// Verify interface
var _ Store = (*GormStore)(nil)

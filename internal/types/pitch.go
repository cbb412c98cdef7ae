package types

import (
	"time"

	"github.com/google/uuid"
)

// PitchType identifies the flavor of generated pitch.
type PitchType string

const (
	PitchTypeElevator  PitchType = "ELEVATOR"
	PitchTypeDeck      PitchType = "DECK"
	PitchTypeValueProp PitchType = "VALUE_PROP"
)

// Valid reports whether t is one of the known pitch types.
func (t PitchType) Valid() bool {
	switch t {
	case PitchTypeElevator, PitchTypeDeck, PitchTypeValueProp:
		return true
	}
	return false
}

// Input field length limits, enforced on every create/update.
const (
	MaxProblemLen   = 500
	MaxSolutionLen  = 500
	MaxTargetLen    = 300
	MaxAdvantageLen = 300
)

// Pitch is the persisted artifact: the caller's four structured inputs plus
// the AI-generated text. A pitch belongs to exactly one startup and ownership
// never changes after creation.
//
// Column and JSON names keep the original wire contract (French field names).
type Pitch struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	StartupID uuid.UUID `json:"startupId" gorm:"type:uuid;column:startup_id;not null;index"`

	Problem   string `json:"probleme" gorm:"column:probleme;size:500;not null"`
	Solution  string `json:"solution" gorm:"column:solution;size:500;not null"`
	Target    string `json:"cible" gorm:"column:cible;size:300;not null"`
	Advantage string `json:"avantage" gorm:"column:avantage;size:300;not null"`

	Generated string    `json:"pitchGenere" gorm:"column:pitch_genere;type:text;not null"`
	Type      PitchType `json:"type" gorm:"column:type;size:50;not null"`

	Rating     *int `json:"rating" gorm:"column:rating"`
	IsFavorite bool `json:"isFavorite" gorm:"column:is_favorite;not null;default:false"`

	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

// TableName overrides GORM's default pluralization.
func (Pitch) TableName() string { return "pitches" }

// PitchTemplate is a reusable prompt template, optionally scoped to a sector.
type PitchTemplate struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name     string    `json:"nom" gorm:"column:nom;not null"`
	Prompt   string    `json:"prompt" gorm:"column:prompt;type:text;not null"`
	Sector   string    `json:"secteur" gorm:"column:secteur;size:100"`
	IsActive bool      `json:"isActive" gorm:"column:is_active;not null;default:true"`
}

// TableName overrides GORM's default pluralization.
func (PitchTemplate) TableName() string { return "pitch_templates" }

// PitchStats aggregates a startup's pitch activity.
type PitchStats struct {
	TotalPitches    int64            `json:"totalPitchs"`
	FavoritePitches int64            `json:"favoritePitchs"`
	AverageRating   float64          `json:"averageRating"`
	PitchesByType   map[string]int64 `json:"pitchsByType"`
}

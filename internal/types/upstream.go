package types

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated caller as reported by the auth service.
// It is used only to confirm the bearer token; nothing from it is persisted.
type User struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

// StartupProfile is the caller's startup as reported by the startup service.
// Treated as an immutable snapshot for the duration of one request.
type StartupProfile struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"userId"`
	Name        string    `json:"nom"`
	Sector      string    `json:"secteur"`
	Description string    `json:"description"`
	Tags        string    `json:"tags"`
}

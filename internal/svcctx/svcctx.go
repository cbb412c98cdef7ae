// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/youssefhoussam/pitch-service/internal/config"
	"github.com/youssefhoussam/pitch-service/internal/pitch"
	"github.com/youssefhoussam/pitch-service/internal/providers"
	"github.com/youssefhoussam/pitch-service/internal/store"
	"github.com/youssefhoussam/pitch-service/internal/upstream"
)

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Store         store.Store
	Registry      *providers.Registry
	AuthClient    *upstream.AuthClient
	StartupClient *upstream.StartupClient
	PitchService  *pitch.Service
	ConfigManager *config.Manager
	Logger        *slog.Logger
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// StoreFrom extracts the pitch store from context.
func StoreFrom(ctx context.Context) store.Store {
	if s := ServicesFrom(ctx); s != nil {
		return s.Store
	}
	return nil
}

// RegistryFrom extracts the provider registry from context.
func RegistryFrom(ctx context.Context) *providers.Registry {
	if s := ServicesFrom(ctx); s != nil {
		return s.Registry
	}
	return nil
}

// AuthClientFrom extracts the auth service client from context.
func AuthClientFrom(ctx context.Context) *upstream.AuthClient {
	if s := ServicesFrom(ctx); s != nil {
		return s.AuthClient
	}
	return nil
}

// StartupClientFrom extracts the startup service client from context.
func StartupClientFrom(ctx context.Context) *upstream.StartupClient {
	if s := ServicesFrom(ctx); s != nil {
		return s.StartupClient
	}
	return nil
}

// PitchServiceFrom extracts the pitch service from context.
func PitchServiceFrom(ctx context.Context) *pitch.Service {
	if s := ServicesFrom(ctx); s != nil {
		return s.PitchService
	}
	return nil
}

// ConfigManagerFrom extracts the config manager from context.
func ConfigManagerFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.ConfigManager
	}
	return nil
}

// LoggerFrom extracts the logger from context.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil {
		return s.Logger
	}
	return nil
}

package endpoints

import (
	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/store"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	DBManager       *store.DockerManager
	SwaggerSpecPath string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{DBManager: cfg.DBManager},

		// Pitch endpoints
		&GeneratePitchEndpoint{},
		&ListPitchesEndpoint{},
		&ListFavoritesEndpoint{},
		&PaginatedPitchesEndpoint{},
		&PitchStatsEndpoint{},
		&GetPitchEndpoint{},
		&UpdatePitchEndpoint{},
		&DeletePitchEndpoint{},
		&FavoritePitchEndpoint{},
		&RatePitchEndpoint{},

		// AI endpoints
		&ElevatorPitchEndpoint{},
		&PitchDeckEndpoint{},
		&ImprovePitchEndpoint{},
		&PitchSuggestionsEndpoint{},

		// Template endpoints
		&TemplatesEndpoint{},

		// Debug endpoints
		&DebugAuthEndpoint{},
		&DebugStartupEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{SpecPath: cfg.SwaggerSpecPath},
		&SwaggerUIEndpoint{},
	}
}

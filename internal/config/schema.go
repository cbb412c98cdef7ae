package config

import (
	"github.com/youssefhoussam/pitch-service/internal/store"
)

// Config holds pitch service configuration.
// Stored at: ./config.yaml or ~/.pitchsvc/config.yaml
type Config struct {
	Server      ServerCfg                 `mapstructure:"server" yaml:"server"`
	Database    DatabaseCfg               `mapstructure:"database" yaml:"database"`
	Services    ServicesCfg               `mapstructure:"services" yaml:"services"`
	AIProviders map[string]AIProviderCfg  `mapstructure:"ai_providers" yaml:"ai_providers"`
	Defaults    DefaultsCfg               `mapstructure:"defaults" yaml:"defaults"`
}

// ServerCfg configures the HTTP listener.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// DatabaseCfg configures the Postgres connection. With Managed set the
// server runs its own Postgres container; otherwise DSN must point at an
// existing database. Mode "memory" skips Postgres entirely.
type DatabaseCfg struct {
	// Mode selects the store backend: "postgres" (default) or "memory".
	Mode string `mapstructure:"mode" yaml:"mode"`
	// DSN is the Postgres connection string (supports ${ENV_VAR} syntax).
	DSN string `mapstructure:"dsn" yaml:"dsn"`
	// Managed runs Postgres in a Docker container owned by this server.
	Managed bool `mapstructure:"managed" yaml:"managed"`
	// ContainerName is the Docker container name (default: pitchsvc-postgres)
	ContainerName string `mapstructure:"container_name" yaml:"container_name"`
	// Image is the Docker image to use (default: postgres:16-alpine)
	Image string `mapstructure:"image" yaml:"image"`
	// Port is the host port to bind (default: 5432)
	Port string `mapstructure:"port" yaml:"port"`
	// DataPath is the host directory mounted as the data volume.
	DataPath string `mapstructure:"data_path" yaml:"data_path"`
	// Name is the database name (default: pitchdb)
	Name string `mapstructure:"name" yaml:"name"`
	// User is the database user (default: pitchsvc)
	User string `mapstructure:"user" yaml:"user"`
	// Password is the database password (supports ${ENV_VAR} syntax).
	Password string `mapstructure:"password" yaml:"password"`
	// LogSQL enables statement logging.
	LogSQL bool `mapstructure:"log_sql" yaml:"log_sql"`
}

// ServicesCfg points at the peer platform services.
type ServicesCfg struct {
	AuthURL        string `mapstructure:"auth_url" yaml:"auth_url"`
	StartupURL     string `mapstructure:"startup_url" yaml:"startup_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
}

// AIProviderCfg configures a pitch generation provider.
type AIProviderCfg struct {
	Type           string `mapstructure:"type" yaml:"type"`                       // "gemini", "groq", "mock"
	APIKey         string `mapstructure:"api_key" yaml:"api_key"`                 // API key (supports ${ENV_VAR} syntax)
	Model          string `mapstructure:"model" yaml:"model"`                     // Model name (groq)
	Endpoint       string `mapstructure:"endpoint" yaml:"endpoint"`               // Override endpoint URL
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"` // Per-request timeout
	KeyInQuery     bool   `mapstructure:"key_in_query" yaml:"key_in_query"`       // Gemini key placement
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
}

// DefaultsCfg specifies default selections.
type DefaultsCfg struct {
	AIProvider string `mapstructure:"ai_provider" yaml:"ai_provider"` // Default generation provider
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerCfg{
			Host: "0.0.0.0",
			Port: 8084,
		},
		Database: DatabaseCfg{
			Mode:          "postgres",
			Managed:       true,
			ContainerName: store.DefaultContainerName,
			Image:         store.DefaultImage,
			Port:          store.DefaultPort,
			Name:          store.DefaultDatabase,
			User:          store.DefaultUser,
			Password:      store.DefaultPassword,
		},
		Services: ServicesCfg{
			AuthURL:        "http://localhost:8081",
			StartupURL:     "http://localhost:8082",
			TimeoutSeconds: 10,
		},
		AIProviders: map[string]AIProviderCfg{
			"gemini": {
				Type:    "gemini",
				APIKey:  "${GEMINI_API_KEY}",
				Enabled: true,
			},
			"groq": {
				Type:    "groq",
				Model:   "llama3-8b-8192",
				APIKey:  "${GROQ_API_KEY}",
				Enabled: true,
			},
		},
		Defaults: DefaultsCfg{
			AIProvider: "gemini",
		},
	}
}

// GetAIProvider returns an AI provider config by name.
func (c *Config) GetAIProvider(name string) (AIProviderCfg, bool) {
	cfg, ok := c.AIProviders[name]
	return cfg, ok
}

// EnabledAIProviders returns all enabled AI providers.
func (c *Config) EnabledAIProviders() map[string]AIProviderCfg {
	result := make(map[string]AIProviderCfg)
	for name, cfg := range c.AIProviders {
		if cfg.Enabled {
			result[name] = cfg
		}
	}
	return result
}

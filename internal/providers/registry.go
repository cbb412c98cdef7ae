package providers

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Registry holds references to pitch generators.
// It supports config-driven instantiation, hot-reload, and provides
// thread-safe access.
type Registry struct {
	mu          sync.RWMutex
	generators  map[string]PitchGenerator
	defaultName string
	logger      *slog.Logger
}

// NewRegistry creates a new empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]PitchGenerator),
		logger:     slog.Default(),
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger *slog.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Register registers a generator by name.
func (r *Registry) Register(name string, gen PitchGenerator) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generators[name] = gen
	if r.defaultName == "" {
		r.defaultName = name
	}
	if r.logger != nil {
		r.logger.Info("registered pitch generator", "name", name)
	}
}

// Unregister removes a generator by name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.generators, name)
	if r.logger != nil {
		r.logger.Info("unregistered pitch generator", "name", name)
	}
}

// Get returns a generator by name.
func (r *Registry) Get(name string) (PitchGenerator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	gen, ok := r.generators[name]
	if !ok {
		return nil, fmt.Errorf("pitch generator not found: %s", name)
	}
	return gen, nil
}

// Default returns the configured default generator.
func (r *Registry) Default() (PitchGenerator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.defaultName == "" {
		return nil, fmt.Errorf("no pitch generators registered")
	}
	gen, ok := r.generators[r.defaultName]
	if !ok {
		return nil, fmt.Errorf("default pitch generator not found: %s", r.defaultName)
	}
	return gen, nil
}

// SetDefault marks a registered generator as the default.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.generators[name]; !ok {
		return fmt.Errorf("pitch generator not found: %s", name)
	}
	r.defaultName = name
	return nil
}

// List returns all registered generator names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	return names
}

// Has checks if a generator is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.generators[name]
	return ok
}

// RegistryConfig defines the generators to instantiate from config.
type RegistryConfig struct {
	// Providers maps provider names to their config
	Providers map[string]ProviderConfig

	// Default names the generator used when none is requested
	Default string
}

// ProviderConfig matches config.AIProviderCfg with resolved API key.
type ProviderConfig struct {
	Type           string // "gemini", "groq", "mock"
	APIKey         string // Resolved API key
	Model          string // Model name (groq)
	Endpoint       string // Override endpoint URL
	TimeoutSeconds int
	KeyInQuery     bool // Gemini key placement
	Enabled        bool
}

// NewRegistryFromConfig creates a registry with generators based on
// configuration. Only enabled providers with valid API keys will be
// registered.
func NewRegistryFromConfig(cfg RegistryConfig) *Registry {
	r := NewRegistry()
	r.applyConfig(cfg)
	return r
}

// Reload updates the registry based on new configuration.
// Providers that are no longer configured will be unregistered.
// Providers with changed settings will be re-registered.
func (r *Registry) Reload(cfg RegistryConfig) {
	r.mu.Lock()
	defer r.mu.Unlock()

	want := make(map[string]bool)

	for name, provCfg := range cfg.Providers {
		if !provCfg.Enabled || (provCfg.APIKey == "" && provCfg.Type != "mock") {
			continue
		}
		want[name] = true

		existing, hasExisting := r.generators[name]
		if !hasExisting || needsUpdate(existing, provCfg) {
			gen := createGenerator(provCfg)
			if gen != nil {
				r.generators[name] = gen
				if r.logger != nil {
					if hasExisting {
						r.logger.Info("updated pitch generator", "name", name, "type", provCfg.Type)
					} else {
						r.logger.Info("registered pitch generator", "name", name, "type", provCfg.Type)
					}
				}
			}
		}
	}

	// Remove generators that are no longer configured
	for name := range r.generators {
		if !want[name] {
			delete(r.generators, name)
			if r.logger != nil {
				r.logger.Info("unregistered pitch generator", "name", name)
			}
		}
	}

	if cfg.Default != "" {
		r.defaultName = cfg.Default
	}
	if _, ok := r.generators[r.defaultName]; !ok {
		r.defaultName = ""
		for name := range r.generators {
			r.defaultName = name
			break
		}
	}
}

// applyConfig applies configuration without locking (used during init).
func (r *Registry) applyConfig(cfg RegistryConfig) {
	for name, provCfg := range cfg.Providers {
		if !provCfg.Enabled || (provCfg.APIKey == "" && provCfg.Type != "mock") {
			continue
		}
		gen := createGenerator(provCfg)
		if gen != nil {
			r.generators[name] = gen
		}
	}

	if cfg.Default != "" {
		r.defaultName = cfg.Default
	}
	if _, ok := r.generators[r.defaultName]; !ok {
		r.defaultName = ""
		for name := range r.generators {
			r.defaultName = name
			break
		}
	}
}

// createGenerator creates a generator based on provider type.
func createGenerator(cfg ProviderConfig) PitchGenerator {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	switch cfg.Type {
	case "gemini":
		return NewGeminiClient(GeminiConfig{
			APIKey:     cfg.APIKey,
			Endpoint:   cfg.Endpoint,
			Timeout:    timeout,
			KeyInQuery: cfg.KeyInQuery,
		})
	case "groq":
		return NewGroqClient(GroqConfig{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.Endpoint,
			Timeout: timeout,
		})
	case "mock":
		return NewMockGenerator()
	default:
		return nil
	}
}

// needsUpdate checks if a generator needs to be recreated.
func needsUpdate(gen PitchGenerator, cfg ProviderConfig) bool {
	switch g := gen.(type) {
	case *GeminiClient:
		endpoint := cfg.Endpoint
		if endpoint == "" {
			endpoint = GeminiDefaultURL
		}
		return g.apiKey != cfg.APIKey ||
			g.endpoint != endpoint ||
			g.keyInQuery != cfg.KeyInQuery
	case *GroqClient:
		model := cfg.Model
		if model == "" {
			model = groqDefaultModel
		}
		baseURL := cfg.Endpoint
		if baseURL == "" {
			baseURL = GroqDefaultURL
		}
		return g.apiKey != cfg.APIKey ||
			g.model != model ||
			g.baseURL != baseURL
	case *MockGenerator:
		return false
	default:
		return true
	}
}

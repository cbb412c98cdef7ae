package providers

import (
	"sync"
	"testing"
)

func TestRegistry(t *testing.T) {
	t.Run("register and get", func(t *testing.T) {
		r := NewRegistry()
		mock := NewMockGenerator()

		r.Register("test-gen", mock)

		gen, err := r.Get("test-gen")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if gen != mock {
			t.Error("got different generator than registered")
		}
	})

	t.Run("get nonexistent", func(t *testing.T) {
		r := NewRegistry()

		_, err := r.Get("nonexistent")
		if err == nil {
			t.Error("expected error for nonexistent generator")
		}
	})

	t.Run("first registered becomes default", func(t *testing.T) {
		r := NewRegistry()
		first := NewMockGenerator()
		r.Register("first", first)
		r.Register("second", NewMockGenerator())

		gen, err := r.Default()
		if err != nil {
			t.Fatalf("Default() error = %v", err)
		}
		if gen != first {
			t.Error("default is not the first registered generator")
		}
	})

	t.Run("set default", func(t *testing.T) {
		r := NewRegistry()
		r.Register("a", NewMockGenerator())
		second := NewMockGenerator()
		r.Register("b", second)

		if err := r.SetDefault("b"); err != nil {
			t.Fatalf("SetDefault() error = %v", err)
		}
		gen, err := r.Default()
		if err != nil {
			t.Fatalf("Default() error = %v", err)
		}
		if gen != second {
			t.Error("default did not change")
		}

		if err := r.SetDefault("missing"); err == nil {
			t.Error("expected error setting unknown default")
		}
	})

	t.Run("default on empty registry", func(t *testing.T) {
		r := NewRegistry()

		if _, err := r.Default(); err == nil {
			t.Error("expected error for empty registry")
		}
	})

	t.Run("list and has", func(t *testing.T) {
		r := NewRegistry()
		r.Register("gen1", NewMockGenerator())
		r.Register("gen2", NewMockGenerator())

		if got := len(r.List()); got != 2 {
			t.Errorf("List() returned %d items, want 2", got)
		}
		if !r.Has("gen1") {
			t.Error("Has() = false for registered generator")
		}
		if r.Has("other") {
			t.Error("Has() = true for unregistered generator")
		}
	})

	t.Run("concurrent access", func(t *testing.T) {
		r := NewRegistry()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				r.Register("concurrent", NewMockGenerator())
			}()
			go func() {
				defer wg.Done()
				r.Get("concurrent") // May fail, that's ok
			}()
		}
		wg.Wait()
	})
}

func TestNewRegistryFromConfig(t *testing.T) {
	t.Run("registers providers from config", func(t *testing.T) {
		r := NewRegistryFromConfig(RegistryConfig{
			Providers: map[string]ProviderConfig{
				"gemini": {
					Type:    "gemini",
					APIKey:  "test-gemini-key",
					Enabled: true,
				},
				"groq": {
					Type:    "groq",
					APIKey:  "test-groq-key",
					Model:   "llama3-8b-8192",
					Enabled: true,
				},
			},
			Default: "gemini",
		})

		if !r.Has("gemini") {
			t.Error("gemini not registered")
		}
		if !r.Has("groq") {
			t.Error("groq not registered")
		}
		gen, err := r.Default()
		if err != nil {
			t.Fatalf("Default() error = %v", err)
		}
		if gen.Name() != GeminiName {
			t.Errorf("default = %q, want %q", gen.Name(), GeminiName)
		}
	})

	t.Run("skips disabled and keyless providers", func(t *testing.T) {
		r := NewRegistryFromConfig(RegistryConfig{
			Providers: map[string]ProviderConfig{
				"disabled": {Type: "gemini", APIKey: "k", Enabled: false},
				"keyless":  {Type: "groq", Enabled: true},
				"unknown":  {Type: "llama-farm", APIKey: "k", Enabled: true},
			},
		})

		if len(r.List()) != 0 {
			t.Errorf("List() = %v, want empty", r.List())
		}
	})

	t.Run("mock needs no key", func(t *testing.T) {
		r := NewRegistryFromConfig(RegistryConfig{
			Providers: map[string]ProviderConfig{
				"mock": {Type: "mock", Enabled: true},
			},
		})

		if !r.Has("mock") {
			t.Error("mock not registered")
		}
	})
}

func TestRegistryReload(t *testing.T) {
	base := RegistryConfig{
		Providers: map[string]ProviderConfig{
			"gemini": {Type: "gemini", APIKey: "key-1", Enabled: true},
			"groq":   {Type: "groq", APIKey: "key-2", Enabled: true},
		},
		Default: "gemini",
	}

	t.Run("removes dropped providers", func(t *testing.T) {
		r := NewRegistryFromConfig(base)

		r.Reload(RegistryConfig{
			Providers: map[string]ProviderConfig{
				"groq": {Type: "groq", APIKey: "key-2", Enabled: true},
			},
			Default: "groq",
		})

		if r.Has("gemini") {
			t.Error("gemini should be unregistered")
		}
		gen, err := r.Default()
		if err != nil {
			t.Fatalf("Default() error = %v", err)
		}
		if gen.Name() != GroqName {
			t.Errorf("default = %q, want %q", gen.Name(), GroqName)
		}
	})

	t.Run("keeps unchanged providers", func(t *testing.T) {
		r := NewRegistryFromConfig(base)
		before, err := r.Get("gemini")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}

		r.Reload(base)

		after, err := r.Get("gemini")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if before != after {
			t.Error("unchanged provider was recreated")
		}
	})

	t.Run("recreates changed providers", func(t *testing.T) {
		r := NewRegistryFromConfig(base)
		before, err := r.Get("gemini")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}

		updated := RegistryConfig{
			Providers: map[string]ProviderConfig{
				"gemini": {Type: "gemini", APIKey: "rotated-key", Enabled: true},
				"groq":   {Type: "groq", APIKey: "key-2", Enabled: true},
			},
			Default: "gemini",
		}
		r.Reload(updated)

		after, err := r.Get("gemini")
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if before == after {
			t.Error("changed provider was not recreated")
		}
	})

	t.Run("default falls back when removed", func(t *testing.T) {
		r := NewRegistryFromConfig(base)

		r.Reload(RegistryConfig{
			Providers: map[string]ProviderConfig{
				"groq": {Type: "groq", APIKey: "key-2", Enabled: true},
			},
		})

		gen, err := r.Default()
		if err != nil {
			t.Fatalf("Default() error = %v", err)
		}
		if gen.Name() != GroqName {
			t.Errorf("default = %q, want %q", gen.Name(), GroqName)
		}
	})
}

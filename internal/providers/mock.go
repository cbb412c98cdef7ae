package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockName = "mock"

// MockGenerator is a PitchGenerator for testing.
type MockGenerator struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	FailAfter    int // Fail after N requests (0 = never)
	ResponseText string

	// State
	requestCount atomic.Int64
	lastPrompt   atomic.Value // string
}

// NewMockGenerator creates a new mock generator with sensible defaults.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		Latency:      time.Millisecond,
		ResponseText: "mock pitch",
	}
}

// Name returns the provider identifier.
func (m *MockGenerator) Name() string {
	return MockName
}

// GeneratePitch returns the configured response text.
func (m *MockGenerator) GeneratePitch(ctx context.Context, in GenerateInput) (string, error) {
	return m.respond(ctx, "generate", buildPitchPrompt(in))
}

// ImprovePitch returns the configured response text.
func (m *MockGenerator) ImprovePitch(ctx context.Context, existing, suggestions string) (string, error) {
	return m.respond(ctx, "improve", buildImprovementPrompt(existing, suggestions))
}

// Suggestions returns the configured response text.
func (m *MockGenerator) Suggestions(ctx context.Context, pitch string) (string, error) {
	return m.respond(ctx, "suggestions", buildSuggestionsPrompt(pitch))
}

func (m *MockGenerator) respond(ctx context.Context, op, prompt string) (string, error) {
	count := m.requestCount.Add(1)
	m.lastPrompt.Store(prompt)

	if m.ShouldFail {
		return "", genErr(MockName, op, fmt.Errorf("mock generator configured to fail"))
	}
	if m.FailAfter > 0 && int(count) > m.FailAfter {
		return "", genErr(MockName, op, fmt.Errorf("mock generator failed after %d requests", m.FailAfter))
	}

	// Simulate latency
	select {
	case <-time.After(m.Latency):
	case <-ctx.Done():
		return "", genErr(MockName, op, ctx.Err())
	}

	return m.ResponseText, nil
}

// RequestCount returns the number of requests made.
func (m *MockGenerator) RequestCount() int64 {
	return m.requestCount.Load()
}

// LastPrompt returns the prompt from the most recent request.
func (m *MockGenerator) LastPrompt() string {
	if v := m.lastPrompt.Load(); v != nil {
		return v.(string)
	}
	return ""
}

// Reset resets the request counter.
func (m *MockGenerator) Reset() {
	m.requestCount.Store(0)
}

// Verify interface
var _ PitchGenerator = (*MockGenerator)(nil)

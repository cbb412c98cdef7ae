// Package providers abstracts the external text-generation APIs behind a
// single capability interface so the concrete provider can be swapped at
// process startup without touching callers.
package providers

import (
	"context"
	"fmt"

	"github.com/youssefhoussam/pitch-service/internal/types"
)

// GenerateInput carries the structured inputs for one pitch generation.
type GenerateInput struct {
	Problem   string
	Solution  string
	Target    string
	Advantage string
	Startup   types.StartupProfile
	Type      types.PitchType
}

// PitchGenerator is the provider-agnostic "send prompt, get text" capability.
// All implementations report failure as *GenerationError: transport errors,
// non-2xx statuses, empty candidate lists and malformed payloads are
// indistinguishable to callers.
type PitchGenerator interface {
	// GeneratePitch produces pitch prose from the structured inputs.
	GeneratePitch(ctx context.Context, in GenerateInput) (string, error)

	// ImprovePitch rewrites an existing pitch according to suggestions.
	ImprovePitch(ctx context.Context, existing, suggestions string) (string, error)

	// Suggestions analyzes a pitch and returns improvement suggestions.
	Suggestions(ctx context.Context, pitch string) (string, error)

	// Name returns the provider identifier (e.g. "gemini", "groq").
	Name() string
}

// GenerationError is the single failure type for AI provider calls. The
// original provider error is retained as the cause for diagnostics but is
// never shown verbatim to end users.
type GenerationError struct {
	Provider string
	Op       string
	Cause    error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s failed: %v", e.Provider, e.Op, e.Cause)
	}
	return fmt.Sprintf("%s: %s failed", e.Provider, e.Op)
}

func (e *GenerationError) Unwrap() error { return e.Cause }

// genErr builds a GenerationError.
func genErr(provider, op string, cause error) *GenerationError {
	return &GenerationError{Provider: provider, Op: op, Cause: cause}
}

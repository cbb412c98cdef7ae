package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	GroqName         = "groq"
	GroqDefaultURL   = "https://api.groq.com/openai/v1"
	groqDefaultModel = "llama3-8b-8192"

	groqTemperature = 0.7
	groqMaxTokens   = 500
)

// GroqConfig holds configuration for the Groq client.
type GroqConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional (tests)
}

// GroqClient implements PitchGenerator against Groq's OpenAI-compatible
// chat completions API.
type GroqClient struct {
	apiKey  string
	model   string
	baseURL string
	client  openai.Client
}

// NewGroqClient creates a new Groq client.
func NewGroqClient(cfg GroqConfig) *GroqClient {
	if cfg.Model == "" {
		cfg.Model = groqDefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = GroqDefaultURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	)

	return &GroqClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		client:  client,
	}
}

// Name returns the provider identifier.
func (c *GroqClient) Name() string { return GroqName }

// GeneratePitch produces pitch prose from the structured inputs.
func (c *GroqClient) GeneratePitch(ctx context.Context, in GenerateInput) (string, error) {
	text, err := c.complete(ctx, buildPitchPrompt(in))
	if err != nil {
		return "", genErr(GroqName, "generate", err)
	}
	return cleanGenerated(text), nil
}

// ImprovePitch rewrites an existing pitch according to suggestions.
func (c *GroqClient) ImprovePitch(ctx context.Context, existing, suggestions string) (string, error) {
	text, err := c.complete(ctx, buildImprovementPrompt(existing, suggestions))
	if err != nil {
		return "", genErr(GroqName, "improve", err)
	}
	return cleanGenerated(text), nil
}

// Suggestions analyzes a pitch and returns improvement suggestions.
func (c *GroqClient) Suggestions(ctx context.Context, pitch string) (string, error) {
	text, err := c.complete(ctx, buildSuggestionsPrompt(pitch))
	if err != nil {
		return "", genErr(GroqName, "suggestions", err)
	}
	return cleanGenerated(text), nil
}

// complete sends a single-turn chat completion and returns the first
// choice's content.
func (c *GroqClient) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(groqTemperature),
		MaxTokens:   openai.Int(groqMaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	text := resp.Choices[0].Message.Content
	if text == "" {
		return "", fmt.Errorf("empty completion text")
	}
	return text, nil
}

// Verify interface
var _ PitchGenerator = (*GroqClient)(nil)

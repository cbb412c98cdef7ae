package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	GeminiName       = "gemini"
	GeminiDefaultURL = "https://generativelanguage.googleapis.com/v1beta/models/gemini-2.0-flash:generateContent"
)

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey   string
	Endpoint string
	Timeout  time.Duration
	// KeyInQuery sends the credential as a ?key= query parameter instead of
	// the X-goog-api-key header. One placement per deployed instance.
	KeyInQuery bool
}

// GeminiClient implements PitchGenerator against the Gemini generateContent
// API (nested contents[].parts[].text schema).
type GeminiClient struct {
	apiKey     string
	endpoint   string
	keyInQuery bool
	client     *http.Client
}

// NewGeminiClient creates a new Gemini client.
func NewGeminiClient(cfg GeminiConfig) *GeminiClient {
	if cfg.Endpoint == "" {
		cfg.Endpoint = GeminiDefaultURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 15 * time.Second
	}

	return &GeminiClient{
		apiKey:     cfg.APIKey,
		endpoint:   cfg.Endpoint,
		keyInQuery: cfg.KeyInQuery,
		client:     &http.Client{Timeout: cfg.Timeout},
	}
}

// Name returns the provider identifier.
func (c *GeminiClient) Name() string { return GeminiName }

// GeneratePitch produces pitch prose from the structured inputs.
func (c *GeminiClient) GeneratePitch(ctx context.Context, in GenerateInput) (string, error) {
	text, err := c.call(ctx, buildPitchPrompt(in))
	if err != nil {
		return "", genErr(GeminiName, "generate", err)
	}
	return cleanGenerated(text), nil
}

// ImprovePitch rewrites an existing pitch according to suggestions.
func (c *GeminiClient) ImprovePitch(ctx context.Context, existing, suggestions string) (string, error) {
	text, err := c.call(ctx, buildImprovementPrompt(existing, suggestions))
	if err != nil {
		return "", genErr(GeminiName, "improve", err)
	}
	return cleanGenerated(text), nil
}

// Suggestions analyzes a pitch and returns improvement suggestions.
func (c *GeminiClient) Suggestions(ctx context.Context, pitch string) (string, error) {
	text, err := c.call(ctx, buildSuggestionsPrompt(pitch))
	if err != nil {
		return "", genErr(GeminiName, "suggestions", err)
	}
	return cleanGenerated(text), nil
}

// call sends a single-turn generation request and extracts the first
// candidate's text. One round trip, no retries.
func (c *GeminiClient) call(ctx context.Context, prompt string) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := c.endpoint
	if c.keyInQuery {
		url += "?key=" + c.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if !c.keyInQuery {
		req.Header.Set("X-goog-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini error (status %d)", resp.StatusCode)
	}

	var gemResp geminiResponse
	if err := json.Unmarshal(respBody, &gemResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(gemResp.Candidates) == 0 || len(gemResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	text := gemResp.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty candidate text")
	}
	return text, nil
}

// Gemini API types

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Verify interface
var _ PitchGenerator = (*GeminiClient)(nil)

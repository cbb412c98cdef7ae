package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/youssefhoussam/pitch-service/internal/types"
)

func groqCompletionBody(text string) string {
	return fmt.Sprintf(`{
		"id": "chatcmpl-test",
		"object": "chat.completion",
		"model": "llama3-8b-8192",
		"choices": [
			{"index": 0, "message": {"role": "assistant", "content": %q}, "finish_reason": "stop"}
		]
	}`, text)
}

func TestGroqClient_GeneratePitch(t *testing.T) {
	t.Run("successful generation", func(t *testing.T) {
		var gotBody map[string]any
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Verify request
			if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
				t.Errorf("unexpected authorization: %s", auth)
			}
			if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
				t.Errorf("decode request: %v", err)
			}

			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, groqCompletionBody("Un pitch percutant."))
		}))
		defer server.Close()

		client := NewGroqClient(GroqConfig{
			APIKey:  "test-key",
			BaseURL: server.URL,
		})

		got, err := client.GeneratePitch(context.Background(), GenerateInput{
			Problem:   "les factures s'accumulent",
			Solution:  "un robot comptable",
			Target:    "PME",
			Advantage: "zéro saisie manuelle",
			Startup:   types.StartupProfile{Name: "Compta+", Sector: "Fintech"},
			Type:      types.PitchTypeDeck,
		})
		if err != nil {
			t.Fatalf("GeneratePitch() error = %v", err)
		}
		if got != "Un pitch percutant." {
			t.Errorf("unexpected pitch: %q", got)
		}

		// Completion parameters are fixed
		if gotBody["model"] != "llama3-8b-8192" {
			t.Errorf("model = %v, want llama3-8b-8192", gotBody["model"])
		}
		if temp, _ := gotBody["temperature"].(float64); temp != 0.7 {
			t.Errorf("temperature = %v, want 0.7", gotBody["temperature"])
		}
		if max, _ := gotBody["max_tokens"].(float64); max != 500 {
			t.Errorf("max_tokens = %v, want 500", gotBody["max_tokens"])
		}

		msgs, ok := gotBody["messages"].([]any)
		if !ok || len(msgs) != 1 {
			t.Fatalf("unexpected messages: %v", gotBody["messages"])
		}
		msg := msgs[0].(map[string]any)
		if msg["role"] != "user" {
			t.Errorf("role = %v, want user", msg["role"])
		}
		content, _ := msg["content"].(string)
		if !strings.Contains(content, "Compta+") {
			t.Error("prompt missing startup name")
		}
	})

	t.Run("strips boilerplate prefix", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, groqCompletionBody("Le pitch : Nous digitalisons la comptabilité."))
		}))
		defer server.Close()

		client := NewGroqClient(GroqConfig{APIKey: "k", BaseURL: server.URL})

		got, err := client.ImprovePitch(context.Background(), "pitch existant", "plus court")
		if err != nil {
			t.Fatalf("ImprovePitch() error = %v", err)
		}
		if got != "Nous digitalisons la comptabilité." {
			t.Errorf("unexpected cleaned pitch: %q", got)
		}
	})

	t.Run("API error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error": {"message": "invalid api key"}}`)
		}))
		defer server.Close()

		client := NewGroqClient(GroqConfig{APIKey: "bad-key", BaseURL: server.URL})

		_, err := client.Suggestions(context.Background(), "mon pitch")
		if err == nil {
			t.Fatal("expected error")
		}
		var genErr *GenerationError
		if !errors.As(err, &genErr) {
			t.Fatalf("error type = %T, want *GenerationError", err)
		}
		if genErr.Provider != GroqName {
			t.Errorf("Provider = %q, want %q", genErr.Provider, GroqName)
		}
		if genErr.Op != "suggestions" {
			t.Errorf("Op = %q, want suggestions", genErr.Op)
		}
	})

	t.Run("no choices", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"id": "chatcmpl-test", "object": "chat.completion", "choices": []}`)
		}))
		defer server.Close()

		client := NewGroqClient(GroqConfig{APIKey: "k", BaseURL: server.URL})

		_, err := client.GeneratePitch(context.Background(), GenerateInput{
			Problem: "p", Solution: "s", Target: "t", Advantage: "a",
		})
		if err == nil {
			t.Fatal("expected error for empty choices")
		}
	})
}

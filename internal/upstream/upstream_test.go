package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/youssefhoussam/pitch-service/internal/types"
)

func TestAuthClient_CurrentUser(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		userID := uuid.New()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/users/me" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			if auth := r.Header.Get("Authorization"); auth != "Bearer token-123" {
				t.Errorf("unexpected authorization: %s", auth)
			}

			json.NewEncoder(w).Encode(types.User{
				ID:       userID,
				Email:    "founder@example.com",
				Role:     "FOUNDER",
				IsActive: true,
			})
		}))
		defer server.Close()

		client := NewAuthClient(server.URL, 0)

		user, err := client.CurrentUser(context.Background(), "Bearer token-123")
		if err != nil {
			t.Fatalf("CurrentUser() error = %v", err)
		}
		if user.ID != userID {
			t.Errorf("ID = %s, want %s", user.ID, userID)
		}
		if user.Email != "founder@example.com" {
			t.Errorf("Email = %q", user.Email)
		}
	})

	t.Run("rejected token", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "invalid token"})
		}))
		defer server.Close()

		client := NewAuthClient(server.URL, 0)

		_, err := client.CurrentUser(context.Background(), "Bearer bad")
		if err == nil {
			t.Fatal("expected error")
		}
		var ue *Error
		if !errors.As(err, &ue) {
			t.Fatalf("error type = %T, want *Error", err)
		}
		if !ue.Unauthorized() {
			t.Error("Unauthorized() = false for 401")
		}
		if !IsUnauthorized(err) {
			t.Error("IsUnauthorized() = false for 401")
		}
		if ue.Service != "auth" {
			t.Errorf("Service = %q, want auth", ue.Service)
		}
	})

	t.Run("service unreachable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // Connection refused from here on

		client := NewAuthClient(server.URL, 0)

		_, err := client.CurrentUser(context.Background(), "Bearer token")
		if err == nil {
			t.Fatal("expected error")
		}
		var ue *Error
		if !errors.As(err, &ue) {
			t.Fatalf("error type = %T, want *Error", err)
		}
		if ue.StatusCode != 0 {
			t.Errorf("StatusCode = %d, want 0", ue.StatusCode)
		}
		if ue.Unauthorized() {
			t.Error("Unauthorized() = true for transport error")
		}
	})
}

func TestStartupClient(t *testing.T) {
	t.Run("my startup", func(t *testing.T) {
		startupID := uuid.New()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/startups/me" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}

			json.NewEncoder(w).Encode(types.StartupProfile{
				ID:     startupID,
				Name:   "DroneExpress",
				Sector: "Logistique",
			})
		}))
		defer server.Close()

		client := NewStartupClient(server.URL, 0)

		profile, err := client.MyStartup(context.Background(), "Bearer token")
		if err != nil {
			t.Fatalf("MyStartup() error = %v", err)
		}
		if profile.ID != startupID {
			t.Errorf("ID = %s, want %s", profile.ID, startupID)
		}
		if profile.Name != "DroneExpress" {
			t.Errorf("Name = %q", profile.Name)
		}
	})

	t.Run("startup by id", func(t *testing.T) {
		startupID := uuid.New()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			want := "/api/startups/" + startupID.String()
			if r.URL.Path != want {
				t.Errorf("path = %s, want %s", r.URL.Path, want)
			}

			json.NewEncoder(w).Encode(types.StartupProfile{ID: startupID, Name: "Compta+"})
		}))
		defer server.Close()

		client := NewStartupClient(server.URL, 0)

		profile, err := client.StartupByID(context.Background(), "Bearer token", startupID)
		if err != nil {
			t.Fatalf("StartupByID() error = %v", err)
		}
		if profile.Name != "Compta+" {
			t.Errorf("Name = %q", profile.Name)
		}
	})

	t.Run("missing profile", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "no startup for user"})
		}))
		defer server.Close()

		client := NewStartupClient(server.URL, 0)

		_, err := client.MyStartup(context.Background(), "Bearer token")
		if err == nil {
			t.Fatal("expected error")
		}
		var ue *Error
		if !errors.As(err, &ue) {
			t.Fatalf("error type = %T, want *Error", err)
		}
		if ue.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want 404", ue.StatusCode)
		}
		if ue.Service != "startup" {
			t.Errorf("Service = %q, want startup", ue.Service)
		}
	})
}

package endpoints

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/youssefhoussam/pitch-service/internal/pitch"
	"github.com/youssefhoussam/pitch-service/internal/providers"
	"github.com/youssefhoussam/pitch-service/internal/store"
	"github.com/youssefhoussam/pitch-service/internal/upstream"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ErrorResponse is a standard error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps service-layer errors to HTTP statuses: invalid
// input is 400, rejected credentials 401, missing pitches 404, and any
// generation or peer-service failure 502. Provider and upstream causes are
// logged but never written to the response body.
func writeServiceError(w http.ResponseWriter, err error) {
	var ve *pitch.ValidationError
	if errors.As(err, &ve) {
		writeError(w, http.StatusBadRequest, ve.Error())
		return
	}
	if upstream.IsUnauthorized(err) {
		writeError(w, http.StatusUnauthorized, "invalid or missing credentials")
		return
	}
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "pitch not found")
		return
	}
	if errors.Is(err, store.ErrInvalidSortField) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var genErr *providers.GenerationError
	if errors.As(err, &genErr) {
		slog.Error("pitch generation failed", "provider", genErr.Provider, "op", genErr.Op, "error", err)
		writeError(w, http.StatusBadGateway, "pitch generation failed")
		return
	}
	var ue *upstream.Error
	if errors.As(err, &ue) {
		slog.Error("upstream service call failed", "service", ue.Service, "op", ue.Op, "status", ue.StatusCode, "error", err)
		writeError(w, http.StatusBadGateway, "upstream service unavailable")
		return
	}
	slog.Error("unhandled service error", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// bearerToken extracts the Authorization header. An empty return means the
// request carried no credentials.
func bearerToken(r *http.Request) string {
	return r.Header.Get("Authorization")
}

// requireToken writes a 401 and returns "" when the request has no
// Authorization header.
func requireToken(w http.ResponseWriter, r *http.Request) string {
	token := bearerToken(r)
	if token == "" {
		writeError(w, http.StatusUnauthorized, "missing Authorization header")
	}
	return token
}

// pathUUID parses the {id} path segment.
func pathUUID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid pitch id")
		return uuid.Nil, false
	}
	return id, true
}

// Package upstream holds HTTP clients for the platform's peer services:
// the auth service (token introspection) and the startup service (founder
// profiles). Both pass the caller's bearer token through unchanged.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single upstream call.
const DefaultTimeout = 10 * time.Second

// Error describes a failed upstream call.
type Error struct {
	Service    string // "auth" or "startup"
	Op         string
	StatusCode int // 0 when the request never completed
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s service: %s: status %d: %v", e.Service, e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s service: %s: %v", e.Service, e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Unauthorized reports whether the upstream rejected the caller's token.
func (e *Error) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsUnauthorized reports whether err is an upstream rejection of the
// caller's credentials.
func IsUnauthorized(err error) bool {
	var ue *Error
	return errors.As(err, &ue) && ue.Unauthorized()
}

// client is the shared request/decode plumbing for both upstream services.
type client struct {
	service    string
	baseURL    string
	httpClient *http.Client
}

func newClient(service, baseURL string, timeout time.Duration) client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return client{
		service:    service,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// get performs a GET with the caller's bearer token and decodes the JSON
// response into result.
func (c client) get(ctx context.Context, op, path, token string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &Error{Service: c.service, Op: op, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Service: c.service, Op: op, Err: fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Service: c.service, Op: op, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := string(body)
		if json.Unmarshal(body, &errResp) == nil {
			if errResp.Error != "" {
				msg = errResp.Error
			} else if errResp.Message != "" {
				msg = errResp.Message
			}
		}
		return &Error{
			Service:    c.service,
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("server error: %s", msg),
		}
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return &Error{Service: c.service, Op: op, Err: fmt.Errorf("failed to decode response: %w", err)}
		}
	}

	return nil
}

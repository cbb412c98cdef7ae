package upstream

import (
	"context"
	"time"

	"github.com/youssefhoussam/pitch-service/internal/types"
)

// AuthClient resolves bearer tokens against the auth service.
type AuthClient struct {
	client
}

// NewAuthClient creates a client for the auth service.
func NewAuthClient(baseURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{client: newClient("auth", baseURL, timeout)}
}

// CurrentUser returns the user the token belongs to. A rejected token
// surfaces as an *Error with Unauthorized() == true.
func (c *AuthClient) CurrentUser(ctx context.Context, token string) (*types.User, error) {
	var user types.User
	if err := c.get(ctx, "current user", "/api/users/me", token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

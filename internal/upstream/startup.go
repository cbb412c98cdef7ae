package upstream

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/youssefhoussam/pitch-service/internal/types"
)

// StartupClient fetches founder profiles from the startup service.
type StartupClient struct {
	client
}

// NewStartupClient creates a client for the startup service.
func NewStartupClient(baseURL string, timeout time.Duration) *StartupClient {
	return &StartupClient{client: newClient("startup", baseURL, timeout)}
}

// MyStartup returns the startup profile owned by the token's user.
func (c *StartupClient) MyStartup(ctx context.Context, token string) (*types.StartupProfile, error) {
	var profile types.StartupProfile
	if err := c.get(ctx, "my startup", "/api/startups/me", token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// StartupByID returns a startup profile by its identifier.
func (c *StartupClient) StartupByID(ctx context.Context, token string, id uuid.UUID) (*types.StartupProfile, error) {
	var profile types.StartupProfile
	if err := c.get(ctx, "startup by id", "/api/startups/"+id.String(), token, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

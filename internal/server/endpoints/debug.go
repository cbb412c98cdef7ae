package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
	"github.com/youssefhoussam/pitch-service/internal/types"
)

// DebugAuthEndpoint handles GET /api/debug/auth. It forwards the caller's
// token to the auth service and echoes the resolved user, which makes
// token problems easy to diagnose without touching pitch data.
type DebugAuthEndpoint struct{}

func (e *DebugAuthEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/debug/auth", e.handler
}

func (e *DebugAuthEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Check auth connectivity
//	@Description	Resolve the caller against the auth service and echo the user
//	@Tags			debug
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Success		200				{object}	types.User
//	@Failure		401				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/debug/auth [get]
func (e *DebugAuthEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}

	auth := svcctx.AuthClientFrom(r.Context())
	if auth == nil {
		writeError(w, http.StatusServiceUnavailable, "auth client not initialized")
		return
	}

	user, err := auth.CurrentUser(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

func (e *DebugAuthEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "debug-auth",
		Short: "Check connectivity to the auth service",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp types.User
			if err := client.Get(cmd.Context(), "/api/debug/auth", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// DebugStartupEndpoint handles GET /api/debug/startup.
type DebugStartupEndpoint struct{}

func (e *DebugStartupEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/debug/startup", e.handler
}

func (e *DebugStartupEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Check startup connectivity
//	@Description	Resolve the caller's startup profile and echo it
//	@Tags			debug
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Success		200				{object}	types.StartupProfile
//	@Failure		401				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/debug/startup [get]
func (e *DebugStartupEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}

	startups := svcctx.StartupClientFrom(r.Context())
	if startups == nil {
		writeError(w, http.StatusServiceUnavailable, "startup client not initialized")
		return
	}

	startup, err := startups.MyStartup(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, startup)
}

func (e *DebugStartupEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "debug-startup",
		Short: "Check connectivity to the startup service",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp types.StartupProfile
			if err := client.Get(cmd.Context(), "/api/debug/startup", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

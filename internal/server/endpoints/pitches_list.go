package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
	"github.com/youssefhoussam/pitch-service/internal/types"
)

// ListPitchesEndpoint handles GET /api/pitches/me.
type ListPitchesEndpoint struct{}

func (e *ListPitchesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pitches/me", e.handler
}

func (e *ListPitchesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List pitches
//	@Description	List all of the caller's pitches, newest first
//	@Tags			pitches
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Success		200				{array}		types.Pitch
//	@Failure		401				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/pitches/me [get]
func (e *ListPitchesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}

	svc := svcctx.PitchServiceFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "pitch service not initialized")
		return
	}

	pitches, err := svc.List(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pitches)
}

func (e *ListPitchesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your pitches",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp []types.Pitch
			if err := client.Get(cmd.Context(), "/api/pitches/me", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ListFavoritesEndpoint handles GET /api/pitches/me/favorites.
type ListFavoritesEndpoint struct{}

func (e *ListFavoritesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pitches/me/favorites", e.handler
}

func (e *ListFavoritesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List favorite pitches
//	@Description	List the caller's favorite pitches, newest first
//	@Tags			pitches
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Success		200				{array}		types.Pitch
//	@Failure		401				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/pitches/me/favorites [get]
func (e *ListFavoritesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}

	svc := svcctx.PitchServiceFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "pitch service not initialized")
		return
	}

	pitches, err := svc.ListFavorites(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, pitches)
}

func (e *ListFavoritesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "favorites",
		Short: "List your favorite pitches",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp []types.Pitch
			if err := client.Get(cmd.Context(), "/api/pitches/me/favorites", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

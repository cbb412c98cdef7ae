package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
	"github.com/youssefhoussam/pitch-service/internal/types"
)

// FavoritePitchEndpoint handles PATCH /api/pitches/{id}/favorite.
type FavoritePitchEndpoint struct{}

func (e *FavoritePitchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PATCH", "/api/pitches/{id}/favorite", e.handler
}

func (e *FavoritePitchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Toggle favorite
//	@Description	Flip the favorite flag on a pitch
//	@Tags			pitches
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Param			id				path		string	true	"Pitch ID"
//	@Success		200				{object}	types.Pitch
//	@Failure		401				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/api/pitches/{id}/favorite [patch]
func (e *FavoritePitchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}

	svc := svcctx.PitchServiceFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "pitch service not initialized")
		return
	}

	p, err := svc.ToggleFavorite(r.Context(), token, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (e *FavoritePitchEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "favorite <id>",
		Short: "Toggle the favorite flag on a pitch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp types.Pitch
			if err := client.Patch(cmd.Context(), "/api/pitches/"+args[0]+"/favorite", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

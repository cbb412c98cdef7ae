package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
	"github.com/youssefhoussam/pitch-service/internal/types"
)

// GetPitchEndpoint handles GET /api/pitches/{id}.
type GetPitchEndpoint struct{}

func (e *GetPitchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pitches/{id}", e.handler
}

func (e *GetPitchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get pitch by ID
//	@Description	Get one of the caller's pitches
//	@Tags			pitches
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Param			id				path		string	true	"Pitch ID"
//	@Success		200				{object}	types.Pitch
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/api/pitches/{id} [get]
func (e *GetPitchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
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

	p, err := svc.Get(r.Context(), token, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (e *GetPitchEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a pitch by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp types.Pitch
			if err := client.Get(cmd.Context(), "/api/pitches/"+args[0], &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
)

// DeletePitchEndpoint handles DELETE /api/pitches/{id}.
type DeletePitchEndpoint struct{}

func (e *DeletePitchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/pitches/{id}", e.handler
}

func (e *DeletePitchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Delete a pitch
//	@Description	Delete a pitch owned by the caller's startup
//	@Tags			pitches
//	@Param			Authorization	header	string	true	"Bearer token"
//	@Param			id				path	string	true	"Pitch ID"
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/pitches/{id} [delete]
func (e *DeletePitchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
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

	if err := svc.Delete(r.Context(), token, id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (e *DeletePitchEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a pitch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			if err := client.Delete(cmd.Context(), "/api/pitches/"+args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted pitch %s\n", args[0])
			return nil
		},
	}
}

package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/pitch"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
	"github.com/youssefhoussam/pitch-service/internal/types"
)

// UpdatePitchEndpoint handles PUT /api/pitches/{id}.
type UpdatePitchEndpoint struct{}

func (e *UpdatePitchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/pitches/{id}", e.handler
}

func (e *UpdatePitchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Update a pitch
//	@Description	Regenerate a pitch from new inputs. The stored record keeps its id, type, rating, and favorite flag.
//	@Tags			pitches
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string				true	"Bearer token"
//	@Param			id				path		string				true	"Pitch ID"
//	@Param			request			body		pitch.GenerateRequest	true	"New generation inputs"
//	@Success		200				{object}	types.Pitch
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/pitches/{id} [put]
func (e *UpdatePitchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}

	var req pitch.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	svc := svcctx.PitchServiceFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "pitch service not initialized")
		return
	}

	p, err := svc.Update(r.Context(), token, id, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (e *UpdatePitchEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req pitch.GenerateRequest
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Regenerate a pitch from new inputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Problem == "" || req.Solution == "" || req.Target == "" || req.Advantage == "" {
				return fmt.Errorf("--problem, --solution, --target, and --advantage are required")
			}

			client := api.NewClient(getServerURL())
			var resp types.Pitch
			if err := client.Put(cmd.Context(), "/api/pitches/"+args[0], req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.Problem, "problem", "", "Problem statement (required)")
	cmd.Flags().StringVar(&req.Solution, "solution", "", "Solution description (required)")
	cmd.Flags().StringVar(&req.Target, "target", "", "Target market (required)")
	cmd.Flags().StringVar(&req.Advantage, "advantage", "", "Competitive advantage (required)")
	return cmd
}

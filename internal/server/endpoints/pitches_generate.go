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

// GeneratePitchEndpoint handles POST /api/pitches/generate.
type GeneratePitchEndpoint struct{}

func (e *GeneratePitchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/pitches/generate", e.handler
}

func (e *GeneratePitchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Generate and store a pitch
//	@Description	Generate pitch text from structured inputs and persist it for the caller's startup
//	@Tags			pitches
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string				true	"Bearer token"
//	@Param			request			body		pitch.GenerateRequest	true	"Generation inputs"
//	@Success		201				{object}	types.Pitch
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/pitches/generate [post]
func (e *GeneratePitchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
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

	p, err := svc.Generate(r.Context(), token, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

func (e *GeneratePitchEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req pitch.GenerateRequest
	var pitchType string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate and store a pitch",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Problem == "" || req.Solution == "" || req.Target == "" || req.Advantage == "" {
				return fmt.Errorf("--problem, --solution, --target, and --advantage are required")
			}
			req.Type = types.PitchType(pitchType)

			client := api.NewClient(getServerURL())
			var resp types.Pitch
			if err := client.Post(cmd.Context(), "/api/pitches/generate", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.Problem, "problem", "", "Problem statement (required)")
	cmd.Flags().StringVar(&req.Solution, "solution", "", "Solution description (required)")
	cmd.Flags().StringVar(&req.Target, "target", "", "Target market (required)")
	cmd.Flags().StringVar(&req.Advantage, "advantage", "", "Competitive advantage (required)")
	cmd.Flags().StringVar(&pitchType, "type", "ELEVATOR", "Pitch type: ELEVATOR, DECK, or VALUE_PROP")
	return cmd
}

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

// ImproveRequest is the body for POST /api/ai/improve.
type ImproveRequest struct {
	Pitch       string `json:"pitch"`
	Suggestions string `json:"suggestions"`
}

// ImproveResponse carries both versions of an improved pitch.
type ImproveResponse struct {
	OriginalPitch string `json:"originalPitch"`
	ImprovedPitch string `json:"improvedPitch"`
	Suggestions   string `json:"suggestions"`
}

// SuggestionsRequest is the body for POST /api/ai/suggestions.
type SuggestionsRequest struct {
	Pitch string `json:"pitch"`
}

// SuggestionsResponse pairs a pitch with generated suggestions.
type SuggestionsResponse struct {
	Pitch       string `json:"pitch"`
	Suggestions string `json:"suggestions"`
}

// ElevatorPitchEndpoint handles POST /api/ai/elevator. The result is
// returned to the caller without being persisted.
type ElevatorPitchEndpoint struct{}

func (e *ElevatorPitchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/ai/elevator", generateOnlyHandler(types.PitchTypeElevator)
}

func (e *ElevatorPitchEndpoint) RequiresInit() bool { return true }

// Command godoc
//
//	@Summary		Generate an elevator pitch
//	@Description	Generate a 30-second elevator pitch without saving it
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string					true	"Bearer token"
//	@Param			request			body		pitch.GenerateRequest	true	"Generation inputs"
//	@Success		200				{object}	pitch.GeneratedPitch
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/ai/elevator [post]
func (e *ElevatorPitchEndpoint) Command(getServerURL func() string) *cobra.Command {
	return generateOnlyCommand(getServerURL, "elevator", "Generate an elevator pitch without saving it", "/api/ai/elevator")
}

// PitchDeckEndpoint handles POST /api/ai/deck.
type PitchDeckEndpoint struct{}

func (e *PitchDeckEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/ai/deck", generateOnlyHandler(types.PitchTypeDeck)
}

func (e *PitchDeckEndpoint) RequiresInit() bool { return true }

// Command godoc
//
//	@Summary		Generate a pitch deck outline
//	@Description	Generate a structured pitch deck outline without saving it
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string					true	"Bearer token"
//	@Param			request			body		pitch.GenerateRequest	true	"Generation inputs"
//	@Success		200				{object}	pitch.GeneratedPitch
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/ai/deck [post]
func (e *PitchDeckEndpoint) Command(getServerURL func() string) *cobra.Command {
	return generateOnlyCommand(getServerURL, "deck", "Generate a pitch deck outline without saving it", "/api/ai/deck")
}

func generateOnlyHandler(pitchType types.PitchType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
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

		res, err := svc.GenerateOnly(r.Context(), token, req, pitchType)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func generateOnlyCommand(getServerURL func() string, use, short, path string) *cobra.Command {
	var req pitch.GenerateRequest
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Problem == "" || req.Solution == "" || req.Target == "" || req.Advantage == "" {
				return fmt.Errorf("--problem, --solution, --target, and --advantage are required")
			}
			client := api.NewClient(getServerURL())
			var resp pitch.GeneratedPitch
			if err := client.Post(cmd.Context(), path, req, &resp); err != nil {
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

// ImprovePitchEndpoint handles POST /api/ai/improve.
type ImprovePitchEndpoint struct{}

func (e *ImprovePitchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/ai/improve", e.handler
}

func (e *ImprovePitchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Improve a pitch
//	@Description	Rewrite an existing pitch following free-form suggestions
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string			true	"Bearer token"
//	@Param			request			body		ImproveRequest	true	"Pitch text and suggestions"
//	@Success		200				{object}	ImproveResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/ai/improve [post]
func (e *ImprovePitchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}

	var req ImproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	svc := svcctx.PitchServiceFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "pitch service not initialized")
		return
	}

	improved, err := svc.Improve(r.Context(), token, req.Pitch, req.Suggestions)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ImproveResponse{
		OriginalPitch: req.Pitch,
		ImprovedPitch: improved,
		Suggestions:   req.Suggestions,
	})
}

func (e *ImprovePitchEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req ImproveRequest
	cmd := &cobra.Command{
		Use:   "improve",
		Short: "Improve an existing pitch text",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Pitch == "" {
				return fmt.Errorf("--pitch is required")
			}
			client := api.NewClient(getServerURL())
			var resp ImproveResponse
			if err := client.Post(cmd.Context(), "/api/ai/improve", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&req.Pitch, "pitch", "", "Existing pitch text (required)")
	cmd.Flags().StringVar(&req.Suggestions, "suggestions", "", "Directions for the rewrite")
	return cmd
}

// PitchSuggestionsEndpoint handles POST /api/ai/suggestions.
type PitchSuggestionsEndpoint struct{}

func (e *PitchSuggestionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/ai/suggestions", e.handler
}

func (e *PitchSuggestionsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Analyze a pitch
//	@Description	Generate improvement suggestions for a pitch text
//	@Tags			ai
//	@Accept			json
//	@Produce		json
//	@Param			Authorization	header		string				true	"Bearer token"
//	@Param			request			body		SuggestionsRequest	true	"Pitch text to analyze"
//	@Success		200				{object}	SuggestionsResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/ai/suggestions [post]
func (e *PitchSuggestionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}

	var req SuggestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	svc := svcctx.PitchServiceFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "pitch service not initialized")
		return
	}

	suggestions, err := svc.Suggest(r.Context(), token, req.Pitch)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, SuggestionsResponse{
		Pitch:       req.Pitch,
		Suggestions: suggestions,
	})
}

func (e *PitchSuggestionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var pitchText string
	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Get improvement suggestions for a pitch text",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pitchText == "" {
				return fmt.Errorf("--pitch is required")
			}
			client := api.NewClient(getServerURL())
			var resp SuggestionsResponse
			if err := client.Post(cmd.Context(), "/api/ai/suggestions", SuggestionsRequest{Pitch: pitchText}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().StringVar(&pitchText, "pitch", "", "Pitch text to analyze (required)")
	return cmd
}

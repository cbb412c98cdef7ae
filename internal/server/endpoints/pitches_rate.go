package endpoints

import (
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
	"github.com/youssefhoussam/pitch-service/internal/types"
)

// RatePitchEndpoint handles POST /api/pitches/{id}/rate.
type RatePitchEndpoint struct{}

func (e *RatePitchEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/pitches/{id}/rate", e.handler
}

func (e *RatePitchEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Rate a pitch
//	@Description	Set a 1-5 rating on a pitch
//	@Tags			pitches
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Param			id				path		string	true	"Pitch ID"
//	@Param			rating			query		int		true	"Rating between 1 and 5"
//	@Success		200				{object}	types.Pitch
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		404				{object}	ErrorResponse
//	@Router			/api/pitches/{id}/rate [post]
func (e *RatePitchEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}
	id, ok := pathUUID(w, r)
	if !ok {
		return
	}

	rating, err := strconv.Atoi(r.URL.Query().Get("rating"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "rating must be an integer")
		return
	}

	svc := svcctx.PitchServiceFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "pitch service not initialized")
		return
	}

	p, err := svc.Rate(r.Context(), token, id, rating)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, p)
}

func (e *RatePitchEndpoint) Command(getServerURL func() string) *cobra.Command {
	var rating int
	cmd := &cobra.Command{
		Use:   "rate <id>",
		Short: "Rate a pitch from 1 to 5",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp types.Pitch
			path := "/api/pitches/" + args[0] + "/rate?rating=" + strconv.Itoa(rating)
			if err := client.Post(cmd.Context(), path, nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&rating, "rating", 0, "Rating between 1 and 5 (required)")
	cmd.MarkFlagRequired("rating")
	return cmd
}

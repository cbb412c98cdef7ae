package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
	"github.com/youssefhoussam/pitch-service/internal/types"
)

// PitchStatsEndpoint handles GET /api/pitches/me/stats.
type PitchStatsEndpoint struct{}

func (e *PitchStatsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pitches/me/stats", e.handler
}

func (e *PitchStatsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Pitch statistics
//	@Description	Aggregate counts and average rating for the caller's startup
//	@Tags			pitches
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Success		200				{object}	types.PitchStats
//	@Failure		401				{object}	ErrorResponse
//	@Router			/api/pitches/me/stats [get]
func (e *PitchStatsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}

	svc := svcctx.PitchServiceFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "pitch service not initialized")
		return
	}

	stats, err := svc.Stats(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (e *PitchStatsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show pitch statistics for your startup",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp types.PitchStats
			if err := client.Get(cmd.Context(), "/api/pitches/me/stats", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
	"github.com/youssefhoussam/pitch-service/internal/types"
)

// TemplatesEndpoint handles GET /api/templates.
type TemplatesEndpoint struct{}

func (e *TemplatesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/templates", e.handler
}

func (e *TemplatesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List prompt templates
//	@Description	List active pitch prompt templates
//	@Tags			templates
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Success		200				{array}		types.PitchTemplate
//	@Failure		401				{object}	ErrorResponse
//	@Router			/api/templates [get]
func (e *TemplatesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}

	svc := svcctx.PitchServiceFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "pitch service not initialized")
		return
	}

	templates, err := svc.Templates(r.Context(), token)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, templates)
}

func (e *TemplatesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List active pitch prompt templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp []types.PitchTemplate
			if err := client.Get(cmd.Context(), "/api/templates", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

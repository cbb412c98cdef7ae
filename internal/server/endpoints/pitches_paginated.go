package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/youssefhoussam/pitch-service/internal/api"
	"github.com/youssefhoussam/pitch-service/internal/store"
	"github.com/youssefhoussam/pitch-service/internal/svcctx"
)

// PaginatedPitchesEndpoint handles GET /api/pitches/me/paginated.
type PaginatedPitchesEndpoint struct{}

func (e *PaginatedPitchesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pitches/me/paginated", e.handler
}

func (e *PaginatedPitchesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List pitches with pagination
//	@Description	List one page of the caller's pitches. Pages are 0-based. Sortable by createdAt, updatedAt, rating, or type.
//	@Tags			pitches
//	@Produce		json
//	@Param			Authorization	header		string	true	"Bearer token"
//	@Param			page			query		int		false	"Page number (0-based)"
//	@Param			size			query		int		false	"Page size (default 10)"
//	@Param			sortBy			query		string	false	"Sort field (default createdAt)"
//	@Param			direction		query		string	false	"ASC or DESC (default DESC)"
//	@Success		200				{object}	store.Page
//	@Failure		400				{object}	ErrorResponse
//	@Failure		401				{object}	ErrorResponse
//	@Failure		502				{object}	ErrorResponse
//	@Router			/api/pitches/me/paginated [get]
func (e *PaginatedPitchesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	token := requireToken(w, r)
	if token == "" {
		return
	}

	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	req := store.PageRequest{
		Page:      page,
		Size:      size,
		SortBy:    q.Get("sortBy"),
		Direction: store.ParseDirection(q.Get("direction")),
	}

	svc := svcctx.PitchServiceFrom(r.Context())
	if svc == nil {
		writeError(w, http.StatusServiceUnavailable, "pitch service not initialized")
		return
	}

	result, err := svc.ListPaginated(r.Context(), token, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (e *PaginatedPitchesEndpoint) Command(getServerURL func() string) *cobra.Command {
	var page, size int
	var sortBy, direction string
	cmd := &cobra.Command{
		Use:   "paginated",
		Short: "List your pitches one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			params.Set("page", strconv.Itoa(page))
			params.Set("size", strconv.Itoa(size))
			if sortBy != "" {
				params.Set("sortBy", sortBy)
			}
			if direction != "" {
				params.Set("direction", direction)
			}

			client := api.NewClient(getServerURL())
			var resp store.Page
			if err := client.Get(cmd.Context(), "/api/pitches/me/paginated?"+params.Encode(), &resp); err != nil {
				return err
			}
			fmt.Printf("Page %d/%d (%d total)\n", resp.Page+1, resp.TotalPages, resp.TotalCount)
			return api.Output(resp.Items)
		},
	}
	cmd.Flags().IntVar(&page, "page", 0, "Page number (0-based)")
	cmd.Flags().IntVar(&size, "size", 10, "Page size")
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "Sort field: createdAt, updatedAt, rating, type")
	cmd.Flags().StringVar(&direction, "direction", "", "Sort direction: ASC or DESC")
	return cmd
}

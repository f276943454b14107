package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/svcctx"
	"github.com/odoma/benchdash/internal/view"
)

// OptionsEndpoint handles GET /api/options.
type OptionsEndpoint struct{}

var _ api.Endpoint = (*OptionsEndpoint)(nil)

func (e *OptionsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/options", e.handler
}

func (e *OptionsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Filter options
//	@Description	Disciplines, score columns with their ranges, page sizes and columns for building filter controls
//	@Tags			documents
//	@Produce		json
//	@Success		200	{object}	view.Options
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/options [get]
func (e *OptionsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	d, err := loadDataset(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view.BuildOptions(d.Aggregate, d.Pages, svcctx.SchemaFrom(r.Context())))
}

func (e *OptionsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "Show the available filter choices",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp view.Options
			if err := client.Get(cmd.Context(), "/api/options", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

package endpoints

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/export"
	"github.com/odoma/benchdash/internal/session"
	"github.com/odoma/benchdash/internal/view"
)

// PagesResponse is one page of the page explorer.
type PagesResponse struct {
	Session string           `json:"session"`
	State   view.PageState   `json:"state"`
	Page    view.Page        `json:"page"`
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// ListPagesEndpoint handles GET /api/pages.
type ListPagesEndpoint struct{}

var _ api.Endpoint = (*ListPagesEndpoint)(nil)

func (e *ListPagesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pages", e.handler
}

func (e *ListPagesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Explore pages
//	@Description	Filters the page-level table with the session's page explorer state, overridden by the query
//	@Tags			pages
//	@Produce		json
//	@Param			discipline	query		string	false	"Discipline or All"
//	@Param			page_min	query		number	false	"Lowest page number"
//	@Param			page_max	query		number	false	"Highest page number"
//	@Param			min_overall	query		number	false	"Minimum overall score on any tool"
//	@Param			min_words	query		number	false	"Minimum word count on any tool"
//	@Param			search		query		string	false	"Filename substring"
//	@Param			page		query		int		false	"Page number"
//	@Param			page_size	query		int		false	"Rows per page"
//	@Param			columns		query		string	false	"Comma-separated columns"
//	@Param			reset		query		bool	false	"Reset the explorer first"
//	@Success		200			{object}	PagesResponse
//	@Failure		400			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/pages [get]
func (e *ListPagesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	filtered, state, page, err := resolvePages(r, true)
	if err != nil {
		writeErr(w, err)
		return
	}
	tr := tableResponse(view.Project(page.Rows(filtered), state.Columns, view.PagePriority))
	writeJSON(w, http.StatusOK, PagesResponse{
		Session: session.IDFrom(r.Context()),
		State:   state,
		Page:    page,
		Columns: tr.Columns,
		Rows:    tr.Rows,
	})
}

func (e *ListPagesEndpoint) Command(getServerURL func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List filtered page-level rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp PagesResponse
			if err := client.GetQuery(cmd.Context(), "/api/pages", queryFromFlags(cmd), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	addQueryFlags(cmd, pageFlags)
	return cmd
}

// ExportPagesEndpoint handles GET /api/pages/export.
type ExportPagesEndpoint struct{}

var _ api.Endpoint = (*ExportPagesEndpoint)(nil)

func (e *ExportPagesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/pages/export", e.handler
}

func (e *ExportPagesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Export pages
//	@Description	CSV of every row of the filtered page table
//	@Tags			pages
//	@Produce		text/csv
//	@Success		200	{file}		file
//	@Failure		400	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/pages/export [get]
func (e *ExportPagesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	filtered, _, _, err := resolvePages(r, false)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeCSV(w, r, export.PagesPrefix, filtered)
}

func (e *ExportPagesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return exportCommand(getServerURL, "/api/pages/export", export.PagesPrefix, pageFlags)
}

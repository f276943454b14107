package endpoints

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/export"
	"github.com/odoma/benchdash/internal/svcctx"
	"github.com/odoma/benchdash/internal/table"
	"github.com/odoma/benchdash/internal/view"
)

// DocumentsResponse is one page of the filtered document view.
type DocumentsResponse struct {
	Session     string           `json:"session"`
	State       view.State       `json:"state"`
	ScoreColumn string           `json:"score_column,omitempty"`
	Page        view.Page        `json:"page"`
	LinkedPages int              `json:"linked_pages"`
	Columns     []string         `json:"columns"`
	Rows        []map[string]any `json:"rows"`
}

// ListDocumentsEndpoint handles GET /api/documents.
type ListDocumentsEndpoint struct{}

var _ api.Endpoint = (*ListDocumentsEndpoint)(nil)

func (e *ListDocumentsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/documents", e.handler
}

func (e *ListDocumentsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List documents
//	@Description	Filters the per-document aggregate with the session view state, overridden by the query, and returns one page. The merged state is stored in the session.
//	@Tags			documents
//	@Produce		json
//	@Param			discipline		query		string	false	"Discipline or All"
//	@Param			score_column	query		string	false	"Score column to filter on"
//	@Param			score_min		query		number	false	"Lower score bound"
//	@Param			score_max		query		number	false	"Upper score bound"
//	@Param			min_words		query		number	false	"Minimum word count on any tool"
//	@Param			search			query		string	false	"Filename substring"
//	@Param			page			query		int		false	"Page number"
//	@Param			page_size		query		int		false	"Rows per page"
//	@Param			columns			query		string	false	"Comma-separated columns"
//	@Param			reset			query		bool	false	"Reset the view first"
//	@Success		200				{object}	DocumentsResponse
//	@Failure		400				{object}	ErrorResponse
//	@Failure		503				{object}	ErrorResponse
//	@Router			/api/documents [get]
func (e *ListDocumentsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	dv, err := resolveDocuments(r, true)
	if err != nil {
		writeErr(w, err)
		return
	}
	rows := view.Project(dv.page.Rows(dv.result.Aggregate), dv.state.Columns, view.DocumentPriority)
	tr := tableResponse(rows)
	writeJSON(w, http.StatusOK, DocumentsResponse{
		Session:     dv.sess.ID,
		State:       dv.state,
		ScoreColumn: dv.result.ScoreColumn,
		Page:        dv.page,
		LinkedPages: dv.result.Pages.Len(),
		Columns:     tr.Columns,
		Rows:        tr.Rows,
	})
}

func (e *ListDocumentsEndpoint) Command(getServerURL func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List filtered documents",
		Long: `List one page of the document view.

Flags override the view stored in the session; unset flags keep it.
Pass --session to continue an earlier session.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp DocumentsResponse
			if err := client.GetQuery(cmd.Context(), "/api/documents", queryFromFlags(cmd), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	addQueryFlags(cmd, documentFlags)
	return cmd
}

// ExportDocumentsEndpoint handles GET /api/documents/export.
type ExportDocumentsEndpoint struct{}

var _ api.Endpoint = (*ExportDocumentsEndpoint)(nil)

func (e *ExportDocumentsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/documents/export", e.handler
}

func (e *ExportDocumentsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Export documents
//	@Description	CSV of every row of the filtered aggregate, all columns, no index
//	@Tags			documents
//	@Produce		text/csv
//	@Success		200	{file}		file
//	@Failure		400	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/documents/export [get]
func (e *ExportDocumentsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	dv, err := resolveDocuments(r, false)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeCSV(w, r, export.DocumentsPrefix, dv.result.Aggregate)
}

func (e *ExportDocumentsEndpoint) Command(getServerURL func() string) *cobra.Command {
	return exportCommand(getServerURL, "/api/documents/export", export.DocumentsPrefix, documentFlags)
}

// DocumentPagesEndpoint handles GET /api/documents/{filename}/pages.
type DocumentPagesEndpoint struct{}

var _ api.Endpoint = (*DocumentPagesEndpoint)(nil)

func (e *DocumentPagesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/documents/{filename}/pages", e.handler
}

func (e *DocumentPagesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Pages of a document
//	@Description	Page-level rows of one document, ordered by page number
//	@Tags			documents
//	@Produce		json
//	@Param			filename	path		string	true	"Document filename"
//	@Success		200			{object}	TableResponse
//	@Failure		404			{object}	ErrorResponse
//	@Failure		503			{object}	ErrorResponse
//	@Router			/api/documents/{filename}/pages [get]
func (e *DocumentPagesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	d, err := loadDataset(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	filename := r.PathValue("filename")
	rows := view.DocumentPages(d.Pages, filename, svcctx.SchemaFrom(r.Context()))
	if rows.Len() == 0 {
		writeError(w, http.StatusNotFound, fmt.Sprintf("no pages for document %q", filename))
		return
	}
	writeJSON(w, http.StatusOK, tableResponse(rows))
}

func (e *DocumentPagesEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "pages <filename>",
		Short: "Show the page-level rows of one document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp TableResponse
			if err := client.Get(cmd.Context(), "/api/documents/"+url.PathEscape(args[0])+"/pages", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// writeCSV streams t as a CSV attachment named after prefix.
func writeCSV(w http.ResponseWriter, r *http.Request, prefix string, t *table.Table) {
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, t); err != nil {
		writeErr(w, err)
		return
	}
	name := export.Filename(prefix, time.Now())
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		svcctx.LoggerFrom(r.Context()).Warn("failed to write export", "file", name, "error", err)
	}
}

// exportCommand builds a CLI command that downloads a CSV export and saves it.
func exportCommand(getServerURL func() string, path, prefix string, flags []queryFlag) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the filtered rows as CSV",
		Long: fmt.Sprintf(`Download the filtered rows as CSV.

Without --out the file is saved to the exports directory of the home
directory as %s_<timestamp>.csv.`, prefix),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			data, hdr, err := client.Download(cmd.Context(), path, queryFromFlags(cmd))
			if err != nil {
				return err
			}
			name := api.DownloadName(hdr, export.Filename(prefix, time.Now()))
			saved, err := api.SaveDownload(data, name, out)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %s (%d bytes)\n", saved, len(data))
			return nil
		},
	}
	addQueryFlags(cmd, flags)
	cmd.Flags().StringVarP(&out, "out", "f", "", "Write the CSV to this path")
	return cmd
}

package endpoints

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/assets"
	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/session"
	"github.com/odoma/benchdash/internal/stats"
	"github.com/odoma/benchdash/internal/svcctx"
	"github.com/odoma/benchdash/internal/view"
)

// SelectRequest picks a row of the current document view. Index is local to
// the page; Page and PageSize default to the session's view. A non-empty
// Filename selects that document instead, if it is in the view.
type SelectRequest struct {
	Index    int    `json:"index"`
	Page     int    `json:"page,omitempty"`
	PageSize int    `json:"page_size,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// SelectionResponse is the selected document with its full field map.
type SelectionResponse struct {
	Index      int            `json:"index"`
	Filename   string         `json:"filename"`
	Discipline string         `json:"discipline"`
	Row        map[string]any `json:"row"`
}

func selectionResponse(sel *view.Selection) SelectionResponse {
	return SelectionResponse{
		Index:      sel.Index,
		Filename:   sel.Filename,
		Discipline: sel.Discipline,
		Row:        record(sel.Row),
	}
}

// currentSelection returns the session's selected row.
func currentSelection(ctx context.Context) (*view.Selection, error) {
	_, sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}
	if sess.Selection == nil {
		return nil, errNoSelection
	}
	return sess.Selection, nil
}

func resolverFrom(ctx context.Context) (*assets.Resolver, error) {
	res := svcctx.AssetsFrom(ctx)
	if res == nil {
		return nil, fmt.Errorf("%w: asset resolver not initialized", assets.ErrAssetNotFound)
	}
	return res, nil
}

// SelectEndpoint handles POST /api/selection.
type SelectEndpoint struct{}

var _ api.Endpoint = (*SelectEndpoint)(nil)

func (e *SelectEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/selection", e.handler
}

func (e *SelectEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Select a document
//	@Description	Maps a row index on a page of the current document view to the filtered aggregate and stores the row in the session
//	@Tags			selection
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SelectRequest	true	"Row to select"
//	@Success		200		{object}	SelectionResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/selection [post]
func (e *SelectEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	q := url.Values{}
	if req.Page > 0 {
		q.Set("page", strconv.Itoa(req.Page))
	}
	if req.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(req.PageSize))
	}
	dv, err := documentsFor(r.Context(), q, false)
	if err != nil {
		writeErr(w, err)
		return
	}

	var sel *view.Selection
	if req.Filename != "" {
		sel, err = selectFilename(dv, req.Filename)
	} else {
		sel, err = view.Select(dv.result.Aggregate, dv.page, req.Index)
	}
	if err != nil {
		writeErr(w, err)
		return
	}

	sessions := svcctx.SessionsFrom(r.Context())
	if _, err := sessions.Update(dv.sess.ID, func(s *session.Session) { s.Selection = sel }); err != nil {
		writeErr(w, err)
		return
	}
	svcctx.LoggerFrom(r.Context()).Debug("document selected", "session", dv.sess.ID, "filename", sel.Filename)
	writeJSON(w, http.StatusOK, selectionResponse(sel))
}

// selectFilename selects the document named filename from the whole
// filtered view, not just the current page.
func selectFilename(dv *documentView, filename string) (*view.Selection, error) {
	agg := dv.result.Aggregate
	col := agg.Index(schema.Filename)
	for i := 0; col >= 0 && i < agg.Len(); i++ {
		if agg.Row(i)[col].String() == filename {
			return view.Select(agg, view.Page{Number: 1, Size: agg.Len(), TotalRows: agg.Len(), TotalPages: 1, End: agg.Len()}, i)
		}
	}
	return nil, fmt.Errorf("%w: document %q is not in the current view", errNotFound, filename)
}

func (e *SelectEndpoint) Command(getServerURL func() string) *cobra.Command {
	var req SelectRequest
	cmd := &cobra.Command{
		Use:   "select [index]",
		Short: "Select a row of the current document view",
		Long: `Select a row of the current document view.

The index is zero-based and local to the page. Use --filename to select
a document by name anywhere in the filtered view.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid index %q: %w", args[0], err)
				}
				req.Index = n
			} else if req.Filename == "" {
				return fmt.Errorf("an index or --filename is required")
			}
			client := api.NewClient(getServerURL())
			var resp SelectionResponse
			if err := client.Post(cmd.Context(), "/api/selection", req, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&req.Page, "page", 0, "Page of the view (default: the session's page)")
	cmd.Flags().IntVar(&req.PageSize, "page-size", 0, "Rows per page (default: the session's page size)")
	cmd.Flags().StringVar(&req.Filename, "filename", "", "Select a document by filename")
	return cmd
}

// GetSelectionEndpoint handles GET /api/selection.
type GetSelectionEndpoint struct{}

var _ api.Endpoint = (*GetSelectionEndpoint)(nil)

func (e *GetSelectionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/selection", e.handler
}

func (e *GetSelectionEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Current selection
//	@Tags			selection
//	@Produce		json
//	@Success		200	{object}	SelectionResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/api/selection [get]
func (e *GetSelectionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sel, err := currentSelection(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, selectionResponse(sel))
}

func (e *GetSelectionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the selected document",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp SelectionResponse
			if err := client.Get(cmd.Context(), "/api/selection", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// ClearSelectionEndpoint handles DELETE /api/selection.
type ClearSelectionEndpoint struct{}

var _ api.Endpoint = (*ClearSelectionEndpoint)(nil)

func (e *ClearSelectionEndpoint) Route() (string, string, http.HandlerFunc) {
	return "DELETE", "/api/selection", e.handler
}

func (e *ClearSelectionEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Clear selection
//	@Tags			selection
//	@Success		204
//	@Router			/api/selection [delete]
func (e *ClearSelectionEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sessions, sess, err := currentSession(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	if _, err := sessions.Update(sess.ID, func(s *session.Session) { s.Selection = nil }); err != nil {
		writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (e *ClearSelectionEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the selected document",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			if err := client.Delete(cmd.Context(), "/api/selection"); err != nil {
				return err
			}
			fmt.Println("Selection cleared")
			return nil
		},
	}
}

// SelectionPDFEndpoint handles GET /api/selection/pdf.
type SelectionPDFEndpoint struct{}

var _ api.Endpoint = (*SelectionPDFEndpoint)(nil)

func (e *SelectionPDFEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/selection/pdf", e.handler
}

func (e *SelectionPDFEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Selected PDF
//	@Description	The source PDF of the selected document, streamed as stored; X-Page-Count carries its page count when the PDF parses
//	@Tags			selection
//	@Produce		application/pdf
//	@Success		200	{file}		file
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/api/selection/pdf [get]
func (e *SelectionPDFEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sel, err := currentSelection(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	res, err := resolverFrom(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	f, err := res.OpenPDF(sel.Discipline, sel.Filename)
	if err != nil {
		writeErr(w, err)
		return
	}
	defer f.Close()
	info, err := assets.Inspect(f)
	if err != nil {
		writeErr(w, err)
		return
	}

	name := filepath.Base(info.Path)
	w.Header().Set("Content-Type", "application/pdf")
	if info.PageCountError == "" {
		w.Header().Set("X-Page-Count", strconv.Itoa(info.PageCount))
	} else {
		svcctx.LoggerFrom(r.Context()).Warn("serving PDF without page count",
			"path", info.Path, "error", info.PageCountError)
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", name))
	http.ServeContent(w, r, name, info.Modified, f)
}

func (e *SelectionPDFEndpoint) Command(getServerURL func() string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "pdf",
		Short: "Download the PDF of the selected document",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			data, hdr, err := client.Download(cmd.Context(), "/api/selection/pdf", nil)
			if err != nil {
				return err
			}
			saved, err := api.SaveDownload(data, api.DownloadName(hdr, "selection.pdf"), out)
			if err != nil {
				return err
			}
			if n := hdr.Get("X-Page-Count"); n != "" {
				fmt.Printf("Saved %s (%s pages)\n", saved, n)
			} else {
				fmt.Printf("Saved %s\n", saved)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "f", "", "Write the PDF to this path")
	return cmd
}

// SelectionPDFInfoEndpoint handles GET /api/selection/pdf/info.
type SelectionPDFInfoEndpoint struct{}

var _ api.Endpoint = (*SelectionPDFInfoEndpoint)(nil)

func (e *SelectionPDFInfoEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/selection/pdf/info", e.handler
}

func (e *SelectionPDFInfoEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Selected PDF info
//	@Tags			selection
//	@Produce		json
//	@Success		200	{object}	assets.PDFInfo
//	@Failure		404	{object}	ErrorResponse
//	@Failure		409	{object}	ErrorResponse
//	@Router			/api/selection/pdf/info [get]
func (e *SelectionPDFInfoEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sel, err := currentSelection(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	res, err := resolverFrom(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	info, err := res.PDFInfo(sel.Discipline, sel.Filename)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (e *SelectionPDFInfoEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "pdf-info",
		Short: "Show the PDF path and page count of the selected document",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp assets.PDFInfo
			if err := client.Get(cmd.Context(), "/api/selection/pdf/info", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// SelectionMarkdownEndpoint handles GET /api/selection/markdown/{tool}.
type SelectionMarkdownEndpoint struct{}

var _ api.Endpoint = (*SelectionMarkdownEndpoint)(nil)

func (e *SelectionMarkdownEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/selection/markdown/{tool}", e.handler
}

func (e *SelectionMarkdownEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Extracted markdown
//	@Description	One tool's markdown for the selected document with line, word, character and language stats. format=html returns a sanitized HTML preview instead.
//	@Tags			selection
//	@Produce		json
//	@Produce		html
//	@Param			tool	path		string	true	"Extraction tool"
//	@Param			format	query		string	false	"html for a rendered preview"
//	@Success		200		{object}	assets.Markdown
//	@Failure		404		{object}	ErrorResponse
//	@Failure		409		{object}	ErrorResponse
//	@Router			/api/selection/markdown/{tool} [get]
func (e *SelectionMarkdownEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	tool := r.PathValue("tool")
	if !svcctx.SchemaFrom(r.Context()).HasTool(tool) {
		writeErr(w, fmt.Errorf("%w: unknown tool %q", errNotFound, tool))
		return
	}
	sel, err := currentSelection(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	res, err := resolverFrom(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	md, err := res.Markdown(tool, sel.Discipline, sel.Filename)
	if err != nil {
		writeErr(w, err)
		return
	}

	if r.URL.Query().Get("format") == "html" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, assets.RenderHTML(md.Content))
		return
	}
	writeJSON(w, http.StatusOK, md)
}

func (e *SelectionMarkdownEndpoint) Command(getServerURL func() string) *cobra.Command {
	var html, statsOnly bool
	cmd := &cobra.Command{
		Use:   "markdown <tool>",
		Short: "Show one tool's extracted markdown for the selected document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/selection/markdown/" + url.PathEscape(args[0])
			if html {
				data, _, err := client.Download(cmd.Context(), path, url.Values{"format": {"html"}})
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			var resp assets.Markdown
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			if statsOnly {
				return api.Output(resp.Stats)
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().BoolVar(&html, "html", false, "Print the rendered HTML preview")
	cmd.Flags().BoolVar(&statsOnly, "stats", false, "Print only the text stats")
	return cmd
}

// SelectionCompareEndpoint handles GET /api/selection/compare.
type SelectionCompareEndpoint struct{}

var _ api.Endpoint = (*SelectionCompareEndpoint)(nil)

func (e *SelectionCompareEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/selection/compare", e.handler
}

func (e *SelectionCompareEndpoint) RequiresInit() bool { return false }

// handler godoc
//
//	@Summary		Compare tools
//	@Description	Overall score, word count and perplexity of each tool for the selected document, plus the per-dimension breakdown
//	@Tags			selection
//	@Produce		json
//	@Success		200	{object}	stats.Comparison
//	@Failure		409	{object}	ErrorResponse
//	@Router			/api/selection/compare [get]
func (e *SelectionCompareEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	sel, err := currentSelection(r.Context())
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Compare(sel.Row, svcctx.SchemaFrom(r.Context())))
}

func (e *SelectionCompareEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Compare the extraction tools on the selected document",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp stats.Comparison
			if err := client.Get(cmd.Context(), "/api/selection/compare", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

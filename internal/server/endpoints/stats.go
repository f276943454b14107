package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/stats"
	"github.com/odoma/benchdash/internal/svcctx"
	"github.com/odoma/benchdash/internal/table"
	"github.com/odoma/benchdash/internal/view"
)

// The chart endpoints read the session's document view without changing it.

// HistogramResponse holds one histogram per tool.
type HistogramResponse struct {
	Histograms []stats.Histogram `json:"histograms"`
}

// GroupResponse is a score column averaged per group.
type GroupResponse struct {
	Column string            `json:"column"`
	Groups []stats.GroupMean `json:"groups"`
}

// PageNumberResponse is a score column averaged per page number.
type PageNumberResponse struct {
	Column   string           `json:"column"`
	MinCount int              `json:"min_count"`
	Pages    []stats.PageMean `json:"pages"`
}

// SummaryEndpoint handles GET /api/stats/summary.
type SummaryEndpoint struct{}

var _ api.Endpoint = (*SummaryEndpoint)(nil)

func (e *SummaryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/stats/summary", e.handler
}

func (e *SummaryEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Summary figures
//	@Description	Document count, average of the chosen score column and discipline count of the filtered view
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	stats.Summary
//	@Failure		400	{object}	ErrorResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/stats/summary [get]
func (e *SummaryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	dv, err := resolveDocuments(r, false)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats.Summarize(dv.result.Aggregate, dv.result.ScoreColumn))
}

func (e *SummaryEndpoint) Command(getServerURL func() string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the headline figures of the filtered view",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp stats.Summary
			if err := client.GetQuery(cmd.Context(), "/api/stats/summary", queryFromFlags(cmd), &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	addQueryFlags(cmd, documentFlags)
	return cmd
}

// HistogramEndpoint handles GET /api/stats/histogram.
type HistogramEndpoint struct{}

var _ api.Endpoint = (*HistogramEndpoint)(nil)

func (e *HistogramEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/stats/histogram", e.handler
}

func (e *HistogramEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Score histograms
//	@Description	Overall score distribution of the first three tools over the filtered view
//	@Tags			stats
//	@Produce		json
//	@Param			bins	query		int	false	"Number of bins (default 20)"
//	@Success		200		{object}	HistogramResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/stats/histogram [get]
func (e *HistogramEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	bins, err := intParam(r.URL.Query(), "bins", stats.HistogramBins)
	if err != nil {
		writeErr(w, err)
		return
	}
	dv, err := documentsFor(r.Context(), viewQuery(r.URL.Query(), "bins"), false)
	if err != nil {
		writeErr(w, err)
		return
	}
	hists := stats.Histograms(dv.result.Aggregate, svcctx.SchemaFrom(r.Context()), bins)
	writeJSON(w, http.StatusOK, HistogramResponse{Histograms: hists})
}

func (e *HistogramEndpoint) Command(getServerURL func() string) *cobra.Command {
	var bins int
	cmd := &cobra.Command{
		Use:   "histogram",
		Short: "Show the overall score histograms",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := queryFromFlags(cmd)
			if bins > 0 {
				q.Set("bins", strconv.Itoa(bins))
			}
			client := api.NewClient(getServerURL())
			var resp HistogramResponse
			if err := client.GetQuery(cmd.Context(), "/api/stats/histogram", q, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	addQueryFlags(cmd, documentFlags)
	cmd.Flags().IntVar(&bins, "bins", 0, "Number of bins (default 20)")
	return cmd
}

// DisciplinesEndpoint handles GET /api/stats/disciplines.
type DisciplinesEndpoint struct{}

var _ api.Endpoint = (*DisciplinesEndpoint)(nil)

func (e *DisciplinesEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/stats/disciplines", e.handler
}

func (e *DisciplinesEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Scores by discipline
//	@Description	Mean and count of a score column per discipline over the filtered view
//	@Tags			stats
//	@Produce		json
//	@Param			column	query		string	false	"Score column (default: the view's score column)"
//	@Success		200		{object}	GroupResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/stats/disciplines [get]
func (e *DisciplinesEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	dv, err := documentsFor(r.Context(), viewQuery(r.URL.Query(), "column"), false)
	if err != nil {
		writeErr(w, err)
		return
	}
	col, err := chartColumn(dv.result.Aggregate, r.URL.Query().Get("column"), dv.result.ScoreColumn)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GroupResponse{
		Column: col,
		Groups: stats.ByDiscipline(dv.result.Aggregate, col),
	})
}

func (e *DisciplinesEndpoint) Command(getServerURL func() string) *cobra.Command {
	var column string
	cmd := &cobra.Command{
		Use:   "disciplines",
		Short: "Show a score column averaged per discipline",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := queryFromFlags(cmd)
			q.Set("column", column)
			client := api.NewClient(getServerURL())
			var resp GroupResponse
			if err := client.GetQuery(cmd.Context(), "/api/stats/disciplines", q, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	addQueryFlags(cmd, documentFlags)
	cmd.Flags().StringVar(&column, "column", "", "Score column to average")
	return cmd
}

// PageNumbersEndpoint handles GET /api/stats/page-numbers.
type PageNumbersEndpoint struct{}

var _ api.Endpoint = (*PageNumbersEndpoint)(nil)

func (e *PageNumbersEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/stats/page-numbers", e.handler
}

func (e *PageNumbersEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Scores by page number
//	@Description	Mean and count of a score column per page number over the pages of the filtered documents, keeping page numbers with at least min_count values
//	@Tags			stats
//	@Produce		json
//	@Param			column		query		string	false	"Score column (default: the default tool's overall score)"
//	@Param			min_count	query		int		false	"Minimum values per page number (default 5)"
//	@Success		200			{object}	PageNumberResponse
//	@Failure		400			{object}	ErrorResponse
//	@Router			/api/stats/page-numbers [get]
func (e *PageNumbersEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	minCount, err := intParam(q, "min_count", stats.MinPageNumberRows)
	if err != nil {
		writeErr(w, err)
		return
	}
	dv, err := documentsFor(r.Context(), viewQuery(q, "column", "min_count"), false)
	if err != nil {
		writeErr(w, err)
		return
	}
	pages := dv.result.Pages
	col, err := chartColumn(pages, q.Get("column"), svcctx.SchemaFrom(r.Context()).DefaultScoreColumn())
	if err != nil {
		writeErr(w, err)
		return
	}
	pageCol := view.PageIndexColumn(pages)
	if pageCol == "" {
		writeErr(w, fmt.Errorf("%w: page table has no page number column", view.ErrUnknownColumn))
		return
	}
	writeJSON(w, http.StatusOK, PageNumberResponse{
		Column:   col,
		MinCount: minCount,
		Pages:    stats.ByPageNumber(pages, pageCol, col, minCount),
	})
}

func (e *PageNumbersEndpoint) Command(getServerURL func() string) *cobra.Command {
	var column string
	var minCount int
	cmd := &cobra.Command{
		Use:   "page-numbers",
		Short: "Show a score column averaged per page number",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := queryFromFlags(cmd)
			q.Set("column", column)
			if minCount > 0 {
				q.Set("min_count", strconv.Itoa(minCount))
			}
			client := api.NewClient(getServerURL())
			var resp PageNumberResponse
			if err := client.GetQuery(cmd.Context(), "/api/stats/page-numbers", q, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	addQueryFlags(cmd, documentFlags)
	cmd.Flags().StringVar(&column, "column", "", "Score column to average")
	cmd.Flags().IntVar(&minCount, "min-count", 0, "Minimum values per page number (default 5)")
	return cmd
}

// viewQuery returns q without the chart-specific keys.
func viewQuery(q url.Values, drop ...string) url.Values {
	out := url.Values{}
	for k, v := range q {
		out[k] = v
	}
	for _, k := range drop {
		out.Del(k)
	}
	return out
}

// chartColumn validates the requested column, falling back to def.
func chartColumn(t *table.Table, requested, def string) (string, error) {
	col := requested
	if col == "" {
		col = def
	}
	if col == "" || !t.Has(col) || !t.IsNumeric(col) {
		return "", fmt.Errorf("%w: %q is not a numeric column", view.ErrUnknownColumn, col)
	}
	return col, nil
}

func intParam(q url.Values, name string, def int) (int, error) {
	p := params{q: q}
	n := def
	p.int(name, &n)
	return n, p.err
}

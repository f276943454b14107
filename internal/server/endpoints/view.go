package endpoints

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/odoma/benchdash/internal/assets"
	"github.com/odoma/benchdash/internal/dataset"
	"github.com/odoma/benchdash/internal/session"
	"github.com/odoma/benchdash/internal/source"
	"github.com/odoma/benchdash/internal/svcctx"
	"github.com/odoma/benchdash/internal/table"
	"github.com/odoma/benchdash/internal/view"
)

// errBadRequest marks client input errors.
var errBadRequest = errors.New("bad request")

// errNotFound marks a missing resource named in the request.
var errNotFound = errors.New("not found")

// errNoSelection is returned by selection endpoints before a row is picked.
var errNoSelection = errors.New("no document selected")

// statusFor maps an error to its HTTP status.
func statusFor(err error) int {
	switch {
	case source.IsMissing(err), source.IsCorrupt(err):
		return http.StatusServiceUnavailable
	case errors.Is(err, assets.ErrAssetNotFound), errors.Is(err, session.ErrNotFound),
		errors.Is(err, errNotFound):
		return http.StatusNotFound
	case errors.Is(err, errNoSelection):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, view.ErrUnknownColumn),
		errors.Is(err, view.ErrInvalidRange),
		errors.Is(err, view.ErrRowOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeErr writes err with the status statusFor picks.
func writeErr(w http.ResponseWriter, err error) {
	writeError(w, statusFor(err), err.Error())
}

// TableResponse is a page of rows. Rows are keyed by column; Columns gives
// the display order.
type TableResponse struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

func tableResponse(t *table.Table) TableResponse {
	resp := TableResponse{Columns: t.Columns(), Rows: make([]map[string]any, 0, t.Len())}
	for i := 0; i < t.Len(); i++ {
		resp.Rows = append(resp.Rows, record(t.Record(i)))
	}
	return resp
}

func record(rec map[string]table.Value) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v.Interface()
	}
	return out
}

// loadDataset returns the cached dataset, loading it on a miss.
func loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	store := svcctx.DatasetsFrom(ctx)
	if store == nil {
		return nil, fmt.Errorf("%w: dataset store not initialized", source.ErrMissing)
	}
	return store.Get(ctx)
}

// currentSession returns the session attached to the request by the server
// middleware.
func currentSession(ctx context.Context) (*session.Store, session.Session, error) {
	sessions := svcctx.SessionsFrom(ctx)
	if sessions == nil {
		return nil, session.Session{}, fmt.Errorf("%w: sessions not initialized", session.ErrNotFound)
	}
	sess, err := sessions.Get(session.IDFrom(ctx))
	if err != nil {
		return nil, session.Session{}, err
	}
	return sessions, sess, nil
}

// documentView is the session's document view with query overrides applied.
type documentView struct {
	data   *dataset.Dataset
	sess   session.Session
	state  view.State
	result *view.Result
	page   view.Page
}

// resolveDocuments applies the session state, overridden by the query, to
// the dataset. With persist the merged state is written back to the session.
func resolveDocuments(r *http.Request, persist bool) (*documentView, error) {
	return documentsFor(r.Context(), r.URL.Query(), persist)
}

func documentsFor(ctx context.Context, q url.Values, persist bool) (*documentView, error) {
	d, err := loadDataset(ctx)
	if err != nil {
		return nil, err
	}
	sessions, sess, err := currentSession(ctx)
	if err != nil {
		return nil, err
	}

	state := sess.State
	if err := mergeState(&state, q); err != nil {
		return nil, err
	}
	res, err := view.Apply(d.Aggregate, d.Pages, state, svcctx.SchemaFrom(ctx))
	if err != nil {
		return nil, err
	}
	page := view.Paginate(res.Aggregate.Len(), state.Page, state.PageSize)
	state.Page, state.PageSize = page.Number, page.Size

	if persist {
		if sess, err = sessions.Update(sess.ID, func(s *session.Session) { s.State = state }); err != nil {
			return nil, err
		}
	}
	return &documentView{data: d, sess: sess, state: state, result: res, page: page}, nil
}

// resolvePages applies the session's page explorer state, overridden by the
// query, to the page table.
func resolvePages(r *http.Request, persist bool) (*table.Table, view.PageState, view.Page, error) {
	ctx := r.Context()
	d, err := loadDataset(ctx)
	if err != nil {
		return nil, view.PageState{}, view.Page{}, err
	}
	sessions, sess, err := currentSession(ctx)
	if err != nil {
		return nil, view.PageState{}, view.Page{}, err
	}

	state := sess.Pages
	if err := mergePageState(&state, r.URL.Query()); err != nil {
		return nil, view.PageState{}, view.Page{}, err
	}
	filtered, err := view.ApplyPages(d.Pages, state, svcctx.SchemaFrom(ctx))
	if err != nil {
		return nil, view.PageState{}, view.Page{}, err
	}
	page := view.Paginate(filtered.Len(), state.Page, state.PageSize)
	state.Page, state.PageSize = page.Number, page.Size

	if persist {
		if _, err := sessions.Update(sess.ID, func(s *session.Session) { s.Pages = state }); err != nil {
			return nil, view.PageState{}, view.Page{}, err
		}
	}
	return filtered, state, page, nil
}

// filterKeys are the document filters; changing one returns to page 1.
var filterKeys = []string{"discipline", "score_column", "score_min", "score_max", "min_words", "search"}

// mergeState overrides s with the document view parameters present in q.
// An empty value clears an optional parameter; reset=true starts from the
// defaults.
func mergeState(s *view.State, q url.Values) error {
	if q.Get("reset") == "true" {
		*s = view.State{Discipline: view.All, Page: 1, PageSize: s.PageSize}
	}
	p := params{q: q}
	filtered := p.changed(filterKeys...)

	if q.Has("score_column") && q.Get("score_column") != s.ScoreColumn {
		s.ScoreColumn = q.Get("score_column")
		s.ScoreMin, s.ScoreMax = nil, nil
	}
	p.str("discipline", &s.Discipline)
	p.floatPtr("score_min", &s.ScoreMin)
	p.floatPtr("score_max", &s.ScoreMax)
	p.float("min_words", &s.MinWords)
	p.str("search", &s.Search)
	p.pageSize(&s.PageSize)
	p.columns(&s.Columns)

	if filtered {
		s.Page = 1
	}
	p.int("page", &s.Page)
	return p.err
}

var pageFilterKeys = []string{"discipline", "page_min", "page_max", "min_overall", "min_words", "search"}

// mergePageState overrides s with the page explorer parameters present in q.
func mergePageState(s *view.PageState, q url.Values) error {
	if q.Get("reset") == "true" {
		*s = view.PageState{Discipline: view.All, Page: 1, PageSize: s.PageSize}
	}
	p := params{q: q}
	filtered := p.changed(pageFilterKeys...)

	p.str("discipline", &s.Discipline)
	p.floatPtr("page_min", &s.PageMin)
	p.floatPtr("page_max", &s.PageMax)
	p.floatPtr("min_overall", &s.MinOverall)
	p.float("min_words", &s.MinWords)
	p.str("search", &s.Search)
	p.pageSize(&s.PageSize)
	p.columns(&s.Columns)

	if filtered {
		s.Page = 1
	}
	p.int("page", &s.Page)
	return p.err
}

// params reads optional query parameters, keeping the first error.
type params struct {
	q   url.Values
	err error
}

func (p *params) changed(keys ...string) bool {
	for _, k := range keys {
		if p.q.Has(k) {
			return true
		}
	}
	return false
}

func (p *params) fail(name, v, want string) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: invalid %s: %q must be %s", errBadRequest, name, v, want)
	}
}

func (p *params) str(name string, dst *string) {
	if p.q.Has(name) {
		*dst = strings.TrimSpace(p.q.Get(name))
	}
}

func (p *params) float(name string, dst *float64) {
	if !p.q.Has(name) {
		return
	}
	v := p.q.Get(name)
	if v == "" {
		*dst = 0
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(name, v, "a number")
		return
	}
	*dst = f
}

func (p *params) floatPtr(name string, dst **float64) {
	if !p.q.Has(name) {
		return
	}
	v := p.q.Get(name)
	if v == "" {
		*dst = nil
		return
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(name, v, "a number")
		return
	}
	*dst = &f
}

func (p *params) int(name string, dst *int) {
	if !p.q.Has(name) {
		return
	}
	v := p.q.Get(name)
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		p.fail(name, v, "a positive integer")
		return
	}
	*dst = n
}

func (p *params) pageSize(dst *int) {
	if !p.q.Has("page_size") {
		return
	}
	v := p.q.Get("page_size")
	n, err := strconv.Atoi(v)
	if err != nil || !view.ValidPageSize(n) {
		p.fail("page_size", v, fmt.Sprintf("one of %v", view.PageSizes))
		return
	}
	*dst = n
}

func (p *params) columns(dst *[]string) {
	if !p.q.Has("columns") {
		return
	}
	var cols []string
	for _, c := range strings.Split(p.q.Get("columns"), ",") {
		if c = strings.TrimSpace(c); c != "" {
			cols = append(cols, c)
		}
	}
	*dst = cols
}

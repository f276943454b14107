package endpoints

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/odoma/benchdash/internal/api"
	"github.com/odoma/benchdash/internal/assets"
	"github.com/odoma/benchdash/internal/dataset"
	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/session"
	"github.com/odoma/benchdash/internal/stats"
	"github.com/odoma/benchdash/internal/svcctx"
	"github.com/odoma/benchdash/internal/view"
)

const scoresCSV = `filename,discipline,page_number,overall_score_pymupdf,overall_score_marker,word_count_pymupdf
extracted_10_1_a,History,1,0.2,0.4,100
extracted_10_1_a,History,2,0.4,0.6,200
extracted_10_1_b,Law,1,0.9,0.8,50
extracted_10_1_c,History,1,0.6,0.5,10
`

const metadataJSON = `[
  {"id_gotriple": "10.1/a", "discipline": "History", "title": "Paper A"},
  {"id_gotriple": "10.1/b", "discipline": "Law", "title": "Paper B"}
]`

type testEnv struct {
	handler  http.Handler
	sessions *session.Store
	datasets *dataset.Store
	pdfDir   string
	mdDir    string
	session  string
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWithScores(t, scoresCSV)
}

func newTestEnvWithScores(t *testing.T, csvData string) *testEnv {
	t.Helper()
	dir := t.TempDir()
	scores := filepath.Join(dir, "page_scores.csv")
	meta := filepath.Join(dir, "metadata.json")
	writeFile(t, scores, csvData)
	writeFile(t, meta, metadataJSON)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sch := schema.Default()
	env := &testEnv{
		datasets: dataset.NewStore(dataset.StoreConfig{
			Dataset: dataset.Config{ScoresPath: scores, MetadataPath: meta},
			Logger:  logger,
		}),
		sessions: session.NewStore(time.Hour, view.State{Discipline: view.All, Page: 1, PageSize: view.DefaultPageSize}),
		pdfDir:   filepath.Join(dir, "pdfs"),
		mdDir:    filepath.Join(dir, "extracted"),
	}
	svc := &svcctx.Services{
		Datasets: env.datasets,
		Sessions: env.sessions,
		Assets:   assets.NewResolver(env.pdfDir, env.mdDir, sch),
		Schema:   sch,
		Logger:   logger,
	}

	reg := api.NewRegistry()
	for _, ep := range All() {
		reg.Register(ep)
	}
	mux := http.NewServeMux()
	reg.RegisterRoutes(mux, func(next http.HandlerFunc) http.HandlerFunc { return next })

	env.handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := svcctx.WithServices(r.Context(), svc)
		sess, _ := env.sessions.Resolve(session.IDFromRequest(r))
		session.SetCookie(w, sess.ID, env.sessions.TTL())
		mux.ServeHTTP(w, r.WithContext(session.WithID(ctx, sess.ID)))
	})
	return env
}

// do sends a request in the env's session, starting one on first use.
func (e *testEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rd)
	if e.session != "" {
		req.Header.Set(session.HeaderName, e.session)
	}
	w := httptest.NewRecorder()
	e.handler.ServeHTTP(w, req)
	e.session = w.Header().Get(session.HeaderName)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d: %s", w.Code, want, w.Body.String())
	}
}

func filenames(rows []map[string]any) []string {
	var out []string
	for _, r := range rows {
		out = append(out, r[schema.Filename].(string))
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestListDocuments(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 3},
		{"discipline", "?discipline=History", 2},
		{"score range", "?score_min=0.5&score_max=1", 2},
		{"min words", "?min_words=100", 1},
		{"search", "?search=_B", 1},
		{"empty result", "?search=nothing", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			w := env.do(t, "GET", "/api/documents"+tt.query, nil)
			expectStatus(t, w, http.StatusOK)

			resp := decode[DocumentsResponse](t, w)
			if len(resp.Rows) != tt.want || resp.Page.TotalRows != tt.want {
				t.Errorf("rows = %d, total = %d, want %d", len(resp.Rows), resp.Page.TotalRows, tt.want)
			}
			if resp.Session == "" || resp.Session != w.Header().Get(session.HeaderName) {
				t.Errorf("session = %q, header = %q", resp.Session, w.Header().Get(session.HeaderName))
			}
			if resp.ScoreColumn != "Overall Score Pymupdf" {
				t.Errorf("score column = %q", resp.ScoreColumn)
			}
		})
	}
}

func TestListDocuments_StatePersistsInSession(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.do(t, "GET", "/api/documents?discipline=History&page_size=10", nil), http.StatusOK)

	w := env.do(t, "GET", "/api/documents", nil)
	expectStatus(t, w, http.StatusOK)
	resp := decode[DocumentsResponse](t, w)
	if resp.State.Discipline != "History" || resp.Page.Size != 10 || len(resp.Rows) != 2 {
		t.Errorf("state not kept: %+v, %d rows", resp.State, len(resp.Rows))
	}
	if resp.LinkedPages != 3 {
		t.Errorf("linked pages = %d, want 3", resp.LinkedPages)
	}

	// A new session starts from the defaults.
	other := &testEnv{handler: env.handler}
	resp = decode[DocumentsResponse](t, other.do(t, "GET", "/api/documents", nil))
	if len(resp.Rows) != 3 || other.session == env.session {
		t.Errorf("sessions should be independent: %d rows", len(resp.Rows))
	}

	w = env.do(t, "GET", "/api/documents?reset=true", nil)
	if resp := decode[DocumentsResponse](t, w); len(resp.Rows) != 3 || resp.State.Discipline != view.All {
		t.Errorf("reset should clear filters: %+v", resp.State)
	}
}

func TestListDocuments_Columns(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "GET", "/api/documents?columns=Filename,Title,Nope", nil)
	expectStatus(t, w, http.StatusOK)
	resp := decode[DocumentsResponse](t, w)
	if strings.Join(resp.Columns, ",") != "Filename,Title" {
		t.Errorf("columns = %v", resp.Columns)
	}
}

func TestListDocuments_BadRequests(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"page size", "?page_size=7"},
		{"page", "?page=0"},
		{"score bound", "?score_min=high"},
		{"inverted range", "?score_min=0.9&score_max=0.1"},
		{"unknown score column", "?score_column=Title"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			w := env.do(t, "GET", "/api/documents"+tt.query, nil)
			expectStatus(t, w, http.StatusBadRequest)
			if decode[ErrorResponse](t, w).Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestListDocuments_MissingSource(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.datasets.Config()
	cfg.ScoresPath = filepath.Join(t.TempDir(), "missing.csv")
	env.datasets.SetConfig(cfg)

	w := env.do(t, "GET", "/api/documents", nil)
	expectStatus(t, w, http.StatusServiceUnavailable)
	if !strings.Contains(decode[ErrorResponse](t, w).Error, "missing.csv") {
		t.Errorf("diagnostic should name the file: %s", w.Body.String())
	}
	expectStatus(t, env.do(t, "GET", "/ready", nil), http.StatusServiceUnavailable)
}

func TestListDocuments_InfiniteScores(t *testing.T) {
	env := newTestEnvWithScores(t, `filename,discipline,page_number,overall_score_pymupdf,perplexity_pymupdf
extracted_10_1_a,History,1,0.5,inf
extracted_10_1_a,History,2,0.7,-Infinity
extracted_10_1_b,Law,1,0.9,12.5
`)

	w := env.do(t, "GET", "/api/documents", nil)
	expectStatus(t, w, http.StatusOK)
	resp := decode[DocumentsResponse](t, w)
	if len(resp.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(resp.Rows))
	}
	for _, row := range resp.Rows {
		got := row["Perplexity Pymupdf"]
		switch row[schema.Filename] {
		case "extracted_10_1_a":
			if got != nil {
				t.Errorf("infinite perplexity should be null, got %v", got)
			}
		case "extracted_10_1_b":
			if f, ok := got.(float64); !ok || !near(f, 12.5) {
				t.Errorf("perplexity = %v, want 12.5", got)
			}
		}
	}

	pages := env.do(t, "GET", "/api/pages", nil)
	expectStatus(t, pages, http.StatusOK)
	if n := len(decode[PagesResponse](t, pages).Rows); n != 3 {
		t.Errorf("page rows = %d, want 3", n)
	}
}

func TestWriteJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusOK, map[string]float64{"score": math.Inf(1)})
	expectStatus(t, w, http.StatusInternalServerError)
	if !strings.Contains(decode[ErrorResponse](t, w).Error, "failed to encode response") {
		t.Errorf("body = %q", w.Body.String())
	}
}

func TestExportDocuments(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "GET", "/api/documents/export?discipline=History", nil)
	expectStatus(t, w, http.StatusOK)

	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "filtered_results_") {
		t.Errorf("content disposition = %q", cd)
	}
	records, err := csv.NewReader(w.Body).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("records = %d, want header + 2 rows", len(records))
	}

	// Exporting does not change the session view.
	resp := decode[DocumentsResponse](t, env.do(t, "GET", "/api/documents", nil))
	if len(resp.Rows) != 3 {
		t.Errorf("export should not persist its filters, got %d rows", len(resp.Rows))
	}
}

func TestDocumentPages(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "GET", "/api/documents/extracted_10_1_a/pages", nil)
	expectStatus(t, w, http.StatusOK)
	if resp := decode[TableResponse](t, w); len(resp.Rows) != 2 {
		t.Errorf("pages = %d, want 2", len(resp.Rows))
	}

	expectStatus(t, env.do(t, "GET", "/api/documents/extracted_nope/pages", nil), http.StatusNotFound)
}

func TestListPages(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "GET", "/api/pages?min_overall=0.5", nil)
	expectStatus(t, w, http.StatusOK)
	resp := decode[PagesResponse](t, w)
	if len(resp.Rows) != 3 {
		t.Errorf("pages = %d, want 3", len(resp.Rows))
	}

	w = env.do(t, "GET", "/api/pages?page_min=2", nil)
	resp = decode[PagesResponse](t, w)
	if len(resp.Rows) != 1 || resp.State.MinOverall == nil {
		t.Errorf("page filters should combine with session state: %d rows, %+v", len(resp.Rows), resp.State)
	}

	w = env.do(t, "GET", "/api/pages/export", nil)
	expectStatus(t, w, http.StatusOK)
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "filtered_page_results_") {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestOptions(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "GET", "/api/options", nil)
	expectStatus(t, w, http.StatusOK)
	opts := decode[view.Options](t, w)
	if strings.Join(opts.Disciplines, ",") != "History,Law" {
		t.Errorf("disciplines = %v", opts.Disciplines)
	}
	if opts.DefaultScoreColumn != "Overall Score Pymupdf" {
		t.Errorf("default score column = %q", opts.DefaultScoreColumn)
	}
	if r := opts.ScoreRanges["Overall Score Pymupdf"]; !near(r.Min, 0.3) || !near(r.Max, 0.9) {
		t.Errorf("score range = %+v", r)
	}
}

func TestSelection(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.do(t, "GET", "/api/selection", nil), http.StatusConflict)
	expectStatus(t, env.do(t, "GET", "/api/selection/compare", nil), http.StatusConflict)

	docs := decode[DocumentsResponse](t, env.do(t, "GET", "/api/documents?page_size=10", nil))
	want := filenames(docs.Rows)[1]

	w := env.do(t, "POST", "/api/selection", SelectRequest{Index: 1})
	expectStatus(t, w, http.StatusOK)
	sel := decode[SelectionResponse](t, w)
	if sel.Filename != want || sel.Index != 1 {
		t.Errorf("selected %q at %d, want %q at 1", sel.Filename, sel.Index, want)
	}

	got := decode[SelectionResponse](t, env.do(t, "GET", "/api/selection", nil))
	if got.Filename != want || got.Row[schema.Filename] != want {
		t.Errorf("stored selection = %+v", got)
	}

	cmp := decode[stats.Comparison](t, env.do(t, "GET", "/api/selection/compare", nil))
	if len(cmp.Tools) != 3 || cmp.Tools[0].OverallScore == nil {
		t.Errorf("comparison = %+v", cmp)
	}

	expectStatus(t, env.do(t, "POST", "/api/selection", SelectRequest{Index: 5}), http.StatusBadRequest)

	w = env.do(t, "DELETE", "/api/selection", nil)
	expectStatus(t, w, http.StatusNoContent)
	expectStatus(t, env.do(t, "GET", "/api/selection", nil), http.StatusConflict)
}

func TestSelection_ByFilename(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "POST", "/api/selection", SelectRequest{Filename: "extracted_10_1_c"})
	expectStatus(t, w, http.StatusOK)
	if sel := decode[SelectionResponse](t, w); sel.Discipline != "History" {
		t.Errorf("selection = %+v", sel)
	}

	env.do(t, "GET", "/api/documents?discipline=Law", nil)
	expectStatus(t, env.do(t, "POST", "/api/selection", SelectRequest{Filename: "extracted_10_1_c"}), http.StatusNotFound)
}

func TestSelection_Assets(t *testing.T) {
	env := newTestEnv(t)
	writeFile(t, filepath.Join(env.mdDir, "marker", "Law", "extracted_10_1_b_marker.md"), "# Results\n\nThe court held the statute valid.\n")

	expectStatus(t, env.do(t, "POST", "/api/selection", SelectRequest{Filename: "extracted_10_1_b"}), http.StatusOK)

	w := env.do(t, "GET", "/api/selection/markdown/marker", nil)
	expectStatus(t, w, http.StatusOK)
	md := decode[assets.Markdown](t, w)
	if md.Stats.Lines != 4 || md.Stats.Words != 8 {
		t.Errorf("stats = %+v", md.Stats)
	}

	w = env.do(t, "GET", "/api/selection/markdown/marker?format=html", nil)
	expectStatus(t, w, http.StatusOK)
	if !strings.Contains(w.Body.String(), "Results</h1>") {
		t.Errorf("html = %q", w.Body.String())
	}

	expectStatus(t, env.do(t, "GET", "/api/selection/markdown/pymupdf", nil), http.StatusNotFound)
	expectStatus(t, env.do(t, "GET", "/api/selection/markdown/word", nil), http.StatusNotFound)
	expectStatus(t, env.do(t, "GET", "/api/selection/pdf", nil), http.StatusNotFound)
	expectStatus(t, env.do(t, "GET", "/api/selection/pdf/info", nil), http.StatusNotFound)
}

// blankPDF builds a valid PDF with the given number of empty pages.
func blankPDF(pages int) []byte {
	var b bytes.Buffer
	var offsets []int
	obj := func(body string) {
		offsets = append(offsets, b.Len())
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}
	b.WriteString("%PDF-1.4\n")
	var kids []string
	for i := 0; i < pages; i++ {
		kids = append(kids, fmt.Sprintf("%d 0 R", 3+i))
	}
	obj("<< /Type /Catalog /Pages 2 0 R >>")
	obj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), pages))
	for i := 0; i < pages; i++ {
		obj("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>")
	}
	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, o := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", o)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return b.Bytes()
}

func TestSelection_PDF(t *testing.T) {
	tests := []struct {
		name      string
		content   []byte
		pageCount string
	}{
		{"valid", blankPDF(2), "2"},
		{"unparsable", []byte("%PDF-1.7\nthis catalog is damaged\n%%EOF\n"), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			writeFile(t, filepath.Join(env.pdfDir, "History", "extracted_10_1_a.pdf"), string(tt.content))
			expectStatus(t, env.do(t, "POST", "/api/selection", SelectRequest{Filename: "extracted_10_1_a"}), http.StatusOK)

			w := env.do(t, "GET", "/api/selection/pdf", nil)
			expectStatus(t, w, http.StatusOK)
			if !bytes.Equal(w.Body.Bytes(), tt.content) {
				t.Errorf("served %d bytes, want the %d stored bytes", w.Body.Len(), len(tt.content))
			}
			if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
				t.Errorf("content type = %q", ct)
			}
			if got := w.Header().Get("X-Page-Count"); got != tt.pageCount {
				t.Errorf("X-Page-Count = %q, want %q", got, tt.pageCount)
			}

			w = env.do(t, "GET", "/api/selection/pdf/info", nil)
			expectStatus(t, w, http.StatusOK)
			info := decode[assets.PDFInfo](t, w)
			if info.Size != int64(len(tt.content)) {
				t.Errorf("size = %d", info.Size)
			}
			if parsed := tt.pageCount != ""; parsed != (info.PageCountError == "") {
				t.Errorf("page_count_error = %q for %s PDF", info.PageCountError, tt.name)
			}
			if tt.pageCount == "2" && info.PageCount != 2 {
				t.Errorf("page count = %d", info.PageCount)
			}
		})
	}
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)

	sum := decode[stats.Summary](t, env.do(t, "GET", "/api/stats/summary", nil))
	if sum.Documents != 3 || sum.Disciplines != 2 || sum.AverageScore == nil || !near(*sum.AverageScore, 0.6) {
		t.Errorf("summary = %+v", sum)
	}

	hist := decode[HistogramResponse](t, env.do(t, "GET", "/api/stats/histogram?bins=10", nil))
	if len(hist.Histograms) == 0 || len(hist.Histograms[0].Bins) != 10 || hist.Histograms[0].Count != 3 {
		t.Errorf("histograms = %+v", hist)
	}

	groups := decode[GroupResponse](t, env.do(t, "GET", "/api/stats/disciplines", nil))
	if len(groups.Groups) != 2 || groups.Groups[0].Key != "History" || !near(*groups.Groups[0].Mean, 0.45) {
		t.Errorf("groups = %+v", groups)
	}

	pages := decode[PageNumberResponse](t, env.do(t, "GET", "/api/stats/page-numbers?min_count=1", nil))
	if len(pages.Pages) != 2 || pages.Pages[0].Count != 3 {
		t.Errorf("page numbers = %+v", pages)
	}
	if pages = decode[PageNumberResponse](t, env.do(t, "GET", "/api/stats/page-numbers", nil)); len(pages.Pages) != 0 {
		t.Errorf("default minimum should drop sparse page numbers, got %+v", pages.Pages)
	}

	expectStatus(t, env.do(t, "GET", "/api/stats/disciplines?column=Title", nil), http.StatusBadRequest)
	expectStatus(t, env.do(t, "GET", "/api/stats/histogram?bins=x", nil), http.StatusBadRequest)
}

func TestHealthAndStatus(t *testing.T) {
	env := newTestEnv(t)
	expectStatus(t, env.do(t, "GET", "/health", nil), http.StatusOK)
	expectStatus(t, env.do(t, "GET", "/ready", nil), http.StatusOK)

	st := decode[StatusResponse](t, env.do(t, "GET", "/status", nil))
	if !st.Dataset.Loaded || st.Dataset.Documents != 3 || st.Dataset.Pages != 4 {
		t.Errorf("dataset status = %+v", st.Dataset)
	}
	if st.Dataset.Join == nil || st.Dataset.Join.Matched != 3 {
		t.Errorf("join report = %+v", st.Dataset.Join)
	}

	w := env.do(t, "POST", "/api/reload", nil)
	expectStatus(t, w, http.StatusOK)
	if ds := decode[DatasetStatus](t, w); ds.Loads != 2 {
		t.Errorf("loads = %d, want 2", ds.Loads)
	}
}

func TestSwagger(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, "GET", "/swagger.json", nil)
	expectStatus(t, w, http.StatusOK)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("swagger.json is not valid JSON: %v", err)
	}
	for _, ep := range All() {
		method, path, _ := ep.Route()
		if strings.HasPrefix(path, "/swagger") {
			continue
		}
		if _, ok := doc.Paths[path][strings.ToLower(method)]; !ok {
			t.Errorf("%s %s missing from swagger.json", method, path)
		}
	}
}

func TestMergeState(t *testing.T) {
	lo, hi := 0.2, 0.8
	base := view.State{Discipline: "Law", ScoreColumn: "A", ScoreMin: &lo, ScoreMax: &hi, Page: 4, PageSize: 50}

	tests := []struct {
		name  string
		query string
		check func(t *testing.T, s view.State)
	}{
		{"paging only keeps filters", "page=2", func(t *testing.T, s view.State) {
			if s.Page != 2 || s.Discipline != "Law" || s.ScoreMin == nil {
				t.Errorf("state = %+v", s)
			}
		}},
		{"filter change returns to page 1", "search=x", func(t *testing.T, s view.State) {
			if s.Page != 1 || s.Search != "x" {
				t.Errorf("state = %+v", s)
			}
		}},
		{"score column change clears bounds", "score_column=B", func(t *testing.T, s view.State) {
			if s.ScoreColumn != "B" || s.ScoreMin != nil || s.ScoreMax != nil {
				t.Errorf("state = %+v", s)
			}
		}},
		{"same score column keeps bounds", "score_column=A", func(t *testing.T, s view.State) {
			if s.ScoreMin == nil || *s.ScoreMin != 0.2 {
				t.Errorf("state = %+v", s)
			}
		}},
		{"empty value clears bound", "score_max=", func(t *testing.T, s view.State) {
			if s.ScoreMax != nil || s.ScoreMin == nil {
				t.Errorf("state = %+v", s)
			}
		}},
		{"reset keeps page size", "reset=true", func(t *testing.T, s view.State) {
			if s.Discipline != view.All || s.ScoreColumn != "" || s.PageSize != 50 || s.Page != 1 {
				t.Errorf("state = %+v", s)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}
			if err := mergeState(&s, q); err != nil {
				t.Fatalf("mergeState() error = %v", err)
			}
			tt.check(t, s)
		})
	}
}

package view

import (
	"errors"
	"testing"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

func ptr(f float64) *float64 { return &f }

const overall = "Overall Score Pymupdf"

func docs(t *testing.T) *table.Table {
	t.Helper()
	tb := table.MustNew("Filename", "Discipline", overall, "Overall Score Marker", "Word Count Pymupdf", "Word Count Marker", "Title")
	rows := []table.Row{
		{table.TextValue("extracted_a"), table.TextValue("History"), table.NumberValue(0.9), table.NumberValue(0.1), table.NumberValue(100), table.NumberValue(50), table.TextValue("A")},
		{table.TextValue("extracted_b"), table.TextValue("History"), table.NumberValue(0.4), table.NumberValue(0.8), table.NumberValue(400), table.NumberValue(10), table.TextValue("B")},
		{table.TextValue("extracted_c"), table.TextValue("Law"), table.NumberValue(0.7), table.NumberValue(0.7), table.NumberValue(10), table.NumberValue(900), table.TextValue("C")},
		{table.TextValue("extracted_d"), table.TextValue("History"), table.NullValue(), table.NumberValue(0.6), table.NumberValue(20), table.NumberValue(20), table.TextValue("D")},
		{table.TextValue("Extracted_E"), table.TextValue("History"), table.NumberValue(0.5), table.NumberValue(0.5), table.NullValue(), table.NumberValue(300), table.NullValue()},
	}
	for _, r := range rows {
		if err := tb.Append(r); err != nil {
			t.Fatal(err)
		}
	}
	return tb
}

func pageRows(t *testing.T) *table.Table {
	t.Helper()
	tb := table.MustNew("Filename", "Discipline", "Page Number", overall, "Overall Score Marker", "Word Count Pymupdf", "Word Count Marker")
	add := func(f, d string, page, o1, o2, w1, w2 float64) {
		r := table.Row{table.TextValue(f), table.TextValue(d), table.NumberValue(page),
			table.NumberValue(o1), table.NumberValue(o2), table.NumberValue(w1), table.NumberValue(w2)}
		if err := tb.Append(r); err != nil {
			t.Fatal(err)
		}
	}
	add("extracted_a", "History", 1, 1.0, 0.1, 150, 40)
	add("extracted_a", "History", 2, 0.8, 0.1, 50, 60)
	add("extracted_b", "History", 1, 0.4, 0.8, 400, 10)
	add("extracted_c", "Law", 1, 0.7, 0.7, 10, 900)
	add("extracted_d", "History", 5, 0.2, 0.6, 20, 20)
	add("Extracted_E", "History", 9, 0.5, 0.5, 0, 300)
	return tb
}

func filenames(tb *table.Table) []string {
	var out []string
	for i := 0; i < tb.Len(); i++ {
		out = append(out, tb.Get(i, "Filename").String())
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApply(t *testing.T) {
	sch := schema.Default()
	tests := []struct {
		name      string
		state     State
		wantDocs  []string
		wantPages []string
		wantCol   string
	}{
		{
			name:      "no filters keeps scored rows",
			state:     State{},
			wantDocs:  []string{"extracted_a", "extracted_b", "extracted_c", "Extracted_E"},
			wantPages: []string{"extracted_a", "extracted_a", "extracted_b", "extracted_c", "Extracted_E"},
			wantCol:   overall,
		},
		{
			name:      "history in range",
			state:     State{Discipline: "History", ScoreColumn: overall, ScoreMin: ptr(0.5), ScoreMax: ptr(1.0)},
			wantDocs:  []string{"extracted_a", "Extracted_E"},
			wantPages: []string{"extracted_a", "extracted_a", "Extracted_E"},
			wantCol:   overall,
		},
		{
			name:      "word count on any tool",
			state:     State{ScoreColumn: "Overall Score Marker", MinWords: 300},
			wantDocs:  []string{"extracted_b", "extracted_c", "Extracted_E"},
			wantPages: []string{"extracted_b", "extracted_c", "Extracted_E"},
			wantCol:   "Overall Score Marker",
		},
		{
			name:      "case-insensitive search",
			state:     State{ScoreColumn: "Overall Score Marker", Search: "EXTRACTED_E"},
			wantDocs:  []string{"Extracted_E"},
			wantPages: []string{"Extracted_E"},
			wantCol:   "Overall Score Marker",
		},
		{
			name:      "all disciplines",
			state:     State{Discipline: All, ScoreMax: ptr(0.45)},
			wantDocs:  []string{"extracted_b"},
			wantPages: []string{"extracted_b"},
			wantCol:   overall,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Apply(docs(t), pageRows(t), tt.state, sch)
			if err != nil {
				t.Fatalf("Apply() error = %v", err)
			}
			if got := filenames(res.Aggregate); !equal(got, tt.wantDocs) {
				t.Errorf("docs = %v, want %v", got, tt.wantDocs)
			}
			if got := filenames(res.Pages); !equal(got, tt.wantPages) {
				t.Errorf("pages = %v, want %v", got, tt.wantPages)
			}
			if res.ScoreColumn != tt.wantCol {
				t.Errorf("score column = %q, want %q", res.ScoreColumn, tt.wantCol)
			}
		})
	}
}

func TestApply_HistoryRangeInvariant(t *testing.T) {
	res, err := Apply(docs(t), pageRows(t), State{
		Discipline: "History", ScoreColumn: overall, ScoreMin: ptr(0.5), ScoreMax: ptr(1.0),
	}, schema.Default())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < res.Aggregate.Len(); i++ {
		if d := res.Aggregate.Get(i, "Discipline").String(); d != "History" {
			t.Errorf("row %d discipline = %q", i, d)
		}
		v, ok := res.Aggregate.Get(i, overall).Float()
		if !ok || v < 0.5 || v > 1.0 {
			t.Errorf("row %d score = %v", i, v)
		}
	}
}

func TestApply_Idempotent(t *testing.T) {
	s := State{Discipline: "History", ScoreMin: ptr(0.3), MinWords: 50, Search: "extracted"}
	sch := schema.Default()

	once, err := Apply(docs(t), pageRows(t), s, sch)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := Apply(once.Aggregate, once.Pages, s, sch)
	if err != nil {
		t.Fatal(err)
	}
	if !equal(filenames(once.Aggregate), filenames(twice.Aggregate)) ||
		!equal(filenames(once.Pages), filenames(twice.Pages)) {
		t.Errorf("second application changed the result: %v -> %v", filenames(once.Aggregate), filenames(twice.Aggregate))
	}
}

func TestApply_PagesSubsetOfDocs(t *testing.T) {
	states := []State{
		{},
		{Discipline: "Law"},
		{ScoreMin: ptr(0.95)},
		{MinWords: 1000},
		{Search: "zzz"},
	}
	for _, s := range states {
		res, err := Apply(docs(t), pageRows(t), s, schema.Default())
		if err != nil {
			t.Fatal(err)
		}
		allowed := make(map[string]bool)
		for _, f := range filenames(res.Aggregate) {
			allowed[f] = true
		}
		for _, f := range filenames(res.Pages) {
			if !allowed[f] {
				t.Errorf("state %+v: page filename %q not in aggregate", s, f)
			}
		}
	}
}

func TestApply_Errors(t *testing.T) {
	sch := schema.Default()
	if _, err := Apply(docs(t), pageRows(t), State{ScoreColumn: "Title"}, sch); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("text column: expected ErrUnknownColumn, got %v", err)
	}
	if _, err := Apply(docs(t), pageRows(t), State{ScoreColumn: "Nope"}, sch); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("missing column: expected ErrUnknownColumn, got %v", err)
	}
	if _, err := Apply(docs(t), pageRows(t), State{ScoreMin: ptr(0.9), ScoreMax: ptr(0.1)}, sch); !errors.Is(err, ErrInvalidRange) {
		t.Errorf("expected ErrInvalidRange, got %v", err)
	}
}

func TestApplyPages(t *testing.T) {
	sch := schema.Default()
	tests := []struct {
		name  string
		state PageState
		want  []string
	}{
		{"no filters", PageState{}, []string{"extracted_a", "extracted_a", "extracted_b", "extracted_c", "extracted_d", "Extracted_E"}},
		{"discipline", PageState{Discipline: "Law"}, []string{"extracted_c"}},
		{"page range", PageState{PageMin: ptr(2), PageMax: ptr(5)}, []string{"extracted_a", "extracted_d"}},
		{"overall on any tool", PageState{MinOverall: ptr(0.75)}, []string{"extracted_a", "extracted_a", "extracted_b"}},
		{"word count on any tool", PageState{MinWords: 300}, []string{"extracted_b", "extracted_c", "Extracted_E"}},
		{"search", PageState{Search: "_A"}, []string{"extracted_a", "extracted_a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyPages(pageRows(t), tt.state, sch)
			if err != nil {
				t.Fatalf("ApplyPages() error = %v", err)
			}
			if names := filenames(got); !equal(names, tt.want) {
				t.Errorf("got %v, want %v", names, tt.want)
			}
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name               string
		total, number      int
		size               int
		wantNum, wantPages int
		wantStart, wantEnd int
		wantSize           int
	}{
		{"first page", 60, 1, 25, 1, 3, 0, 25, 25},
		{"last partial page", 60, 3, 25, 3, 3, 50, 60, 25},
		{"page past end clamps", 60, 9, 25, 3, 3, 50, 60, 25},
		{"page zero clamps", 60, 0, 10, 1, 6, 0, 10, 10},
		{"invalid size falls back", 60, 1, 7, 1, 3, 0, 25, 25},
		{"empty table", 0, 1, 25, 1, 0, 0, 0, 25},
		{"exact multiple", 50, 2, 25, 2, 2, 25, 50, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Paginate(tt.total, tt.number, tt.size)
			if p.Number != tt.wantNum || p.TotalPages != tt.wantPages || p.Start != tt.wantStart || p.End != tt.wantEnd || p.Size != tt.wantSize {
				t.Errorf("Paginate(%d, %d, %d) = %+v", tt.total, tt.number, tt.size, p)
			}
		})
	}
}

func TestSelect(t *testing.T) {
	tb := docs(t)
	p := Paginate(tb.Len(), 2, 10)
	if p.Number != 1 {
		t.Fatalf("expected clamp to page 1, got %d", p.Number)
	}

	sel, err := Select(tb, p, 2)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if sel.Index != 2 || sel.Filename != "extracted_c" || sel.Discipline != "Law" {
		t.Errorf("selection = %+v", sel)
	}
	if got := sel.Row["Title"].String(); got != "C" {
		t.Errorf("row title = %q", got)
	}

	if _, err := Select(tb, p, 5); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("expected ErrRowOutOfRange, got %v", err)
	}
	if _, err := Select(tb, p, -1); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("expected ErrRowOutOfRange, got %v", err)
	}
}

func TestSelect_SecondPage(t *testing.T) {
	tb := table.MustNew("Filename", "Discipline")
	for i := 0; i < 30; i++ {
		_ = tb.Append(table.Row{table.TextValue(string(rune('a' + i%26))), table.TextValue("D")})
	}
	p := Paginate(tb.Len(), 2, 25)
	sel, err := Select(tb, p, 3)
	if err != nil {
		t.Fatal(err)
	}
	if sel.Index != 28 {
		t.Errorf("global index = %d, want 28", sel.Index)
	}
	if _, err := Select(tb, p, 5); !errors.Is(err, ErrRowOutOfRange) {
		t.Errorf("row past the page end should fail, got %v", err)
	}
}

func TestBuildOptions(t *testing.T) {
	opts := BuildOptions(docs(t), pageRows(t), schema.Default())

	if !equal(opts.Disciplines, []string{"History", "Law"}) {
		t.Errorf("disciplines = %v", opts.Disciplines)
	}
	if opts.DefaultScoreColumn != overall {
		t.Errorf("default score column = %q", opts.DefaultScoreColumn)
	}
	if !equal(opts.ScoreColumns, []string{overall, "Overall Score Marker"}) {
		t.Errorf("score columns = %v", opts.ScoreColumns)
	}
	if r := opts.ScoreRanges[overall]; r.Min != 0.4 || r.Max != 0.9 {
		t.Errorf("range = %+v", r)
	}
	if opts.PageRange == nil || opts.PageRange.Min != 1 || opts.PageRange.Max != 9 {
		t.Errorf("page range = %+v", opts.PageRange)
	}
}

func TestDefaultColumns(t *testing.T) {
	available := []string{"Filename", "Discipline", "A", "Overall Score Pymupdf", "B", "C", "Title", "D", "E", "F"}
	got := DefaultColumns(available, DocumentPriority)
	want := []string{"Filename", "Discipline", "Title", "Overall Score Pymupdf", "A", "B", "C", "D"}
	if !equal(got, want) {
		t.Errorf("DefaultColumns() = %v, want %v", got, want)
	}
}

func TestDocumentPages(t *testing.T) {
	got := DocumentPages(pageRows(t), "extracted_a", schema.Default())
	if got.Len() != 2 {
		t.Fatalf("rows = %d, want 2", got.Len())
	}
	want := []string{"Page Number", overall, "Overall Score Marker", "Word Count Pymupdf", "Word Count Marker"}
	if cols := got.Columns(); !equal(cols, want) {
		t.Errorf("columns = %v, want %v", cols, want)
	}
}

func TestDocumentPages_OrderedByPageNumber(t *testing.T) {
	tb := table.MustNew("Filename", "Page Number", overall)
	for _, page := range []float64{3, 1, 10, 2} {
		if err := tb.Append(table.Row{table.TextValue("extracted_a"), table.NumberValue(page), table.NumberValue(0.5)}); err != nil {
			t.Fatal(err)
		}
	}
	got := DocumentPages(tb, "extracted_a", schema.Default())
	var pages []string
	for i := 0; i < got.Len(); i++ {
		pages = append(pages, got.Get(i, "Page Number").String())
	}
	if want := []string{"1", "2", "3", "10"}; !equal(pages, want) {
		t.Errorf("pages = %v, want %v", pages, want)
	}
}

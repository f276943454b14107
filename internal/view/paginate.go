package view

import (
	"errors"
	"fmt"
	"slices"

	"github.com/odoma/benchdash/internal/schema"
	"github.com/odoma/benchdash/internal/table"
)

// PageSizes are the accepted rows-per-page values.
var PageSizes = []int{10, 25, 50, 100}

// DefaultPageSize is used when no page size is given.
const DefaultPageSize = 25

// ErrRowOutOfRange is returned when a selection points past the current page.
var ErrRowOutOfRange = errors.New("row out of range")

// Page describes one slice of a filtered table.
type Page struct {
	Number     int `json:"page"`
	Size       int `json:"page_size"`
	TotalRows  int `json:"total_rows"`
	TotalPages int `json:"total_pages"`
	// Start and End are the 0-based half-open global row range.
	Start int `json:"start"`
	End   int `json:"end"`
}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool { return slices.Contains(PageSizes, n) }

// Paginate computes the page of a table with total rows. The page number is
// 1-based and clamped to [1, TotalPages]; a size outside PageSizes falls
// back to DefaultPageSize.
func Paginate(total, number, size int) Page {
	if !ValidPageSize(size) {
		size = DefaultPageSize
	}
	pages := 0
	if total > 0 {
		pages = (total-1)/size + 1
	}
	if number > pages {
		number = pages
	}
	if number < 1 {
		number = 1
	}
	start := (number - 1) * size
	end := min(start+size, total)
	if start > end {
		start = end
	}
	return Page{
		Number:     number,
		Size:       size,
		TotalRows:  total,
		TotalPages: pages,
		Start:      start,
		End:        end,
	}
}

// Rows returns the rows of t on page p.
func (p Page) Rows(t *table.Table) *table.Table {
	return t.Slice(p.Start, p.End)
}

// Selection is one row picked from a page, addressed globally.
type Selection struct {
	Index      int                    `json:"index"`
	Filename   string                 `json:"filename"`
	Discipline string                 `json:"discipline"`
	Row        map[string]table.Value `json:"row"`
}

// Select maps a row index local to page p onto the filtered table t and
// returns the global row with its full field map.
func Select(t *table.Table, p Page, local int) (*Selection, error) {
	global := p.Start + local
	if local < 0 || global >= p.End || global >= t.Len() {
		return nil, fmt.Errorf("%w: row %d on page %d (%d rows)", ErrRowOutOfRange, local, p.Number, p.End-p.Start)
	}
	rec := t.Record(global)
	return &Selection{
		Index:      global,
		Filename:   rec[schema.Filename].String(),
		Discipline: rec[schema.Discipline].String(),
		Row:        rec,
	}, nil
}

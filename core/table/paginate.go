package table

import (
	"fmt"

	"github.com/asaidimu/go-datagrid/core/record"
)

// DefaultWindowWidth is the number of page links shown in the pagination
// window when the stage is configured with a zero width.
const DefaultWindowWidth = 5

// Window is the pagination display metadata emitted alongside each page
// slice: the visible page numbers (a sliding span centered on the current
// page and clamped to the page count) and 1-based from/to row indices.
type Window struct {
	Page      int
	PageCount int
	Pages     []int
	From      int
	To        int
	Total     int
}

// PaginateStage slices a collection into one page and computes the display
// window. It is stateless; the resolved page is written back to the view
// state by the driver.
type PaginateStage struct {
	width int
}

// NewPaginateStage creates a paginate stage with the given window width.
// Zero or negative widths select DefaultWindowWidth.
func NewPaginateStage(width int) *PaginateStage {
	if width < 1 {
		width = DefaultWindowWidth
	}
	return &PaginateStage{width: width}
}

// Apply resolves the effective page from the state and action, clamps it
// into [1, pageCount], and returns the page slice plus its window. Empty
// data still yields one page so the window is always renderable.
func (p *PaginateStage) Apply(data []record.Record, state PageState, action Action) ([]record.Record, Window, error) {
	if state.RowsPerPage < 1 {
		return nil, Window{}, fmt.Errorf("paginate stage: rows per page must be positive, got %d", state.RowsPerPage)
	}

	total := len(data)
	pageCount := (total + state.RowsPerPage - 1) / state.RowsPerPage
	if pageCount < 1 {
		pageCount = 1
	}

	page := state.Current
	switch action.Kind {
	case ActionPageFirst:
		page = 1
	case ActionPagePrev:
		page--
	case ActionPageNext:
		page++
	case ActionPageLast:
		page = pageCount
	case ActionPageGoto:
		page = action.Page
	}
	page = clamp(page, 1, pageCount)

	from := (page-1)*state.RowsPerPage + 1
	to := page * state.RowsPerPage
	if to > total {
		to = total
	}
	if total == 0 {
		from, to = 0, 0
	}

	window := Window{
		Page:      page,
		PageCount: pageCount,
		Pages:     pageSpan(page, pageCount, p.width),
		From:      from,
		To:        to,
		Total:     total,
	}

	var slice []record.Record
	if total > 0 {
		slice = record.CloneAll(data[from-1 : to])
	} else {
		slice = []record.Record{}
	}
	return slice, window, nil
}

// pageSpan computes the visible page numbers: a span of at most width
// pages centered on the current page and clamped to [1, pageCount].
func pageSpan(page, pageCount, width int) []int {
	start := page - width/2
	if start+width-1 > pageCount {
		start = pageCount - width + 1
	}
	if start < 1 {
		start = 1
	}
	end := start + width - 1
	if end > pageCount {
		end = pageCount
	}
	pages := make([]int, 0, end-start+1)
	for n := start; n <= end; n++ {
		pages = append(pages, n)
	}
	return pages
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

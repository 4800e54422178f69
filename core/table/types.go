// Package table implements the grid's view pipeline: four transform stages
// (search, filter, sort, paginate) threaded in fixed order over the full
// dataset on every view change, plus the driver that owns the view state
// between renders.
package table

// ActionKind identifies the user interaction that triggered a render pass.
type ActionKind string

// Supported action kinds. ActionNone re-renders with the current state,
// which is also how plain criteria edits (typing into a filter) arrive.
const (
	ActionNone      ActionKind = ""
	ActionSort      ActionKind = "sort"
	ActionClear     ActionKind = "clear"
	ActionPageFirst ActionKind = "page:first"
	ActionPagePrev  ActionKind = "page:prev"
	ActionPageNext  ActionKind = "page:next"
	ActionPageLast  ActionKind = "page:last"
	ActionPageGoto  ActionKind = "page:goto"
)

// Action describes one user interaction. Field names the column for sort
// and clear actions; Page carries the target page for ActionPageGoto.
type Action struct {
	Kind  ActionKind
	Field string
	Page  int
}

// SortOrder is the direction a column is sorted in.
type SortOrder string

// Supported sort orders.
const (
	SortNone       SortOrder = "none"
	SortAscending  SortOrder = "asc"
	SortDescending SortOrder = "desc"
)

// PageState is the pagination portion of the view state. Both values are
// 1-based positive integers.
type PageState struct {
	Current     int
	RowsPerPage int
}

// RangeBounds is a pair of user-entered bound fields combined into a single
// inclusive range criterion before the filter stage runs.
type RangeBounds struct {
	From any
	To   any
}

// ViewState is the full user-entered grid state. It is owned by the
// pipeline driver and rebuilt into a fresh criteria snapshot on every
// render pass; stages never see it directly.
type ViewState struct {
	Query   string
	Filters map[string]any
	Ranges  map[string]RangeBounds
	Page    PageState
}

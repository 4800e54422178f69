// Package table provides a fluent API for assembling view state without
// hand-built maps. The builder mirrors how a form-state collector would
// populate the grid's criteria.
package table

import "maps"

// ViewBuilder provides a fluent and intuitive API for building ViewState
// values step by step, culminating in a final snapshot via Build.
type ViewBuilder struct {
	state ViewState
}

// NewViewBuilder creates a new, empty view builder instance.
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{state: ViewState{
		Filters: map[string]any{},
		Ranges:  map[string]RangeBounds{},
		Page:    PageState{Current: 1, RowsPerPage: 10},
	}}
}

// Search sets the multi-field search query.
func (b *ViewBuilder) Search(query string) *ViewBuilder {
	b.state.Query = query
	return b
}

// Filter sets a per-field criterion value.
func (b *ViewBuilder) Filter(field string, value any) *ViewBuilder {
	b.state.Filters[field] = value
	return b
}

// Range sets the paired from/to bounds for a field. The driver combines
// them into one inclusive range criterion before filtering.
func (b *ViewBuilder) Range(field string, from, to any) *ViewBuilder {
	b.state.Ranges[field] = RangeBounds{From: from, To: to}
	return b
}

// Page sets the current page (1-based).
func (b *ViewBuilder) Page(n int) *ViewBuilder {
	b.state.Page.Current = n
	return b
}

// RowsPerPage sets the page size.
func (b *ViewBuilder) RowsPerPage(n int) *ViewBuilder {
	b.state.Page.RowsPerPage = n
	return b
}

// Clone creates a deep copy of the current builder, allowing new view
// states to be derived without modifying the original.
func (b *ViewBuilder) Clone() *ViewBuilder {
	clone := NewViewBuilder()
	clone.state.Query = b.state.Query
	clone.state.Page = b.state.Page
	maps.Copy(clone.state.Filters, b.state.Filters)
	maps.Copy(clone.state.Ranges, b.state.Ranges)
	return clone
}

// Reset clears all configuration, returning the builder to its initial state.
func (b *ViewBuilder) Reset() *ViewBuilder {
	*b = *NewViewBuilder()
	return b
}

// Build returns the constructed view state.
func (b *ViewBuilder) Build() ViewState {
	return b.state
}

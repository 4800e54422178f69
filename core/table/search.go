package table

import (
	"fmt"

	"github.com/asaidimu/go-datagrid/core/record"
	"github.com/asaidimu/go-datagrid/core/rules"
)

// SearchStage filters records on a single query string scanned across a
// fixed set of fields. An empty query leaves the collection untouched,
// order and membership preserved.
type SearchStage struct {
	compare rules.Comparison
}

// NewSearchStage builds the search comparator: the empty-criteria guard
// followed by the multi-field search rule. Criteria fields other than the
// query field fall through both rules and pass untouched, so the search
// stage never rejects rows on filter input.
func NewSearchStage(catalog *rules.Catalog, cfg rules.SearchConfig) (*SearchStage, error) {
	compare, err := catalog.NewComparison(
		[]string{rules.RuleTargetSet},
		rules.Search(cfg),
	)
	if err != nil {
		return nil, fmt.Errorf("search stage: %w", err)
	}
	return &SearchStage{compare: compare}, nil
}

// Apply returns the records matching the current query, in their original
// relative order.
func (s *SearchStage) Apply(data []record.Record, criteria record.Criteria) ([]record.Record, error) {
	out := make([]record.Record, 0, len(data))
	for _, row := range data {
		ok, err := s.compare(row, criteria)
		if err != nil {
			return nil, fmt.Errorf("search stage: %w", err)
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

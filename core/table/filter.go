package table

import (
	"fmt"

	"github.com/asaidimu/go-datagrid/core/record"
	"github.com/asaidimu/go-datagrid/core/rules"
)

// FilterStage matches structured per-field criteria (exact values, ranges)
// against records using the default comparison chain. The chain order is
// the tie-break policy: the first applicable rule decides a field.
type FilterStage struct {
	compare rules.Comparison
}

// NewFilterStage builds the filter comparator over the catalog's default
// chain. Ad-hoc rules are spliced in after the guards and before the
// decisive matchers, since strict equality at the end of the default chain
// settles every field it reaches.
func NewFilterStage(catalog *rules.Catalog, extra ...rules.Rule) (*FilterStage, error) {
	guards, err := catalog.Resolve(rules.DefaultGuardChain()...)
	if err != nil {
		return nil, fmt.Errorf("filter stage: %w", err)
	}
	matchers, err := catalog.Resolve(rules.DefaultMatchChain()...)
	if err != nil {
		return nil, fmt.Errorf("filter stage: %w", err)
	}
	chain := append(append(guards, extra...), matchers...)
	return &FilterStage{compare: func(source record.Record, target record.Criteria) (bool, error) {
		return rules.Compare(source, target, chain)
	}}, nil
}

// Apply returns the records accepted by the criteria, in their original
// relative order. Range synthesis and clear-field overrides happen in the
// driver before Apply runs; the stage sees the finished snapshot.
func (f *FilterStage) Apply(data []record.Record, criteria record.Criteria) ([]record.Record, error) {
	out := make([]record.Record, 0, len(data))
	for _, row := range data {
		ok, err := f.compare(row, criteria)
		if err != nil {
			return nil, fmt.Errorf("filter stage: %w", err)
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

package rules

import (
	"errors"
	"fmt"

	"github.com/asaidimu/go-datagrid/core/record"
)

// Contract violations surfaced by Compare. These indicate a programming
// error in the caller, not a runtime condition of the data.
var (
	ErrEmptyChain  = errors.New("comparison requires a non-empty rule chain")
	ErrNilSource   = errors.New("comparison requires a non-nil source record")
	ErrNilCriteria = errors.New("comparison requires a non-nil criteria object")
)

// UnknownRuleError is returned when a comparison names a rule the catalog
// does not hold.
type UnknownRuleError struct {
	Name string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("unknown comparison rule: %s", e.Name)
}

// Compare runs the chain across every field present in the criteria object
// and reports whether the record is accepted. Skipped fields count as
// satisfied; the first failing field rejects the record. A record compared
// against zero criteria fields always passes.
func Compare(source record.Record, target record.Criteria, chain Chain) (bool, error) {
	if len(chain) == 0 {
		return false, ErrEmptyChain
	}
	if source == nil {
		return false, ErrNilSource
	}
	if target == nil {
		return false, ErrNilCriteria
	}

	for field, want := range target {
		ctx := FieldContext{
			Field:       field,
			SourceValue: source[field],
			TargetValue: want,
			Source:      source,
			Target:      target,
		}
		switch EvaluateField(ctx, chain) {
		case VerdictSkip:
			continue
		case VerdictFail:
			return false, nil
		}
	}
	return true, nil
}

// Comparison is a reusable comparator closed over a resolved chain.
type Comparison func(source record.Record, target record.Criteria) (bool, error)

// NewComparison binds a named subset of the catalog plus any ad-hoc rules
// into a reusable comparator. Named rules run before the extras, in the
// order given.
func (c *Catalog) NewComparison(names []string, extra ...Rule) (Comparison, error) {
	chain, err := c.Resolve(names...)
	if err != nil {
		return nil, fmt.Errorf("building comparison: %w", err)
	}
	chain = append(chain, extra...)
	if len(chain) == 0 {
		return nil, ErrEmptyChain
	}
	return func(source record.Record, target record.Criteria) (bool, error) {
		return Compare(source, target, chain)
	}, nil
}

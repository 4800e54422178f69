package table

import (
	"sort"
	"strings"

	"github.com/asaidimu/go-datagrid/core/record"
)

// SortStage holds the per-column sort cycle: none → ascending → descending
// → none, advanced only by a sort action naming that column. Activating a
// column resets every other column to none, so at most one column is ever
// sorted.
type SortStage struct {
	orders map[string]SortOrder
}

// NewSortStage creates a sort stage with every column at none.
func NewSortStage() *SortStage {
	return &SortStage{orders: map[string]SortOrder{}}
}

// Order reports the current order for a column.
func (s *SortStage) Order(field string) SortOrder {
	if order, ok := s.orders[field]; ok {
		return order
	}
	return SortNone
}

// Active returns the column currently holding a non-none order, if any.
func (s *SortStage) Active() (string, SortOrder) {
	for field, order := range s.orders {
		return field, order
	}
	return "", SortNone
}

// advance cycles the named column and clears all others.
func (s *SortStage) advance(field string) SortOrder {
	next := nextOrder(s.Order(field))
	s.orders = map[string]SortOrder{}
	if next != SortNone {
		s.orders[field] = next
	}
	return next
}

func nextOrder(order SortOrder) SortOrder {
	switch order {
	case SortAscending:
		return SortDescending
	case SortDescending:
		return SortNone
	default:
		return SortAscending
	}
}

// Apply returns a sorted copy of the collection. A sort action advances the
// named column's cycle first; otherwise whichever column holds a non-none
// order is used. With no active column the input order is preserved. The
// sort is stable, so ties keep their original relative order.
func (s *SortStage) Apply(data []record.Record, action Action) []record.Record {
	field, order := s.Active()
	if action.Kind == ActionSort && action.Field != "" {
		field = action.Field
		order = s.advance(action.Field)
	}

	out := record.CloneAll(data)
	if order == SortNone {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i][field], out[j][field]
		if order == SortDescending {
			a, b = b, a
		}
		return lessValue(a, b)
	})
	return out
}

// lessValue orders two field values: numerically when both coerce to
// float64, lexicographically otherwise.
func lessValue(a, b any) bool {
	af, aok := record.ToFloat64(a)
	bf, bok := record.ToFloat64(b)
	if aok && bok {
		return af < bf
	}
	return strings.Compare(record.ToString(a), record.ToString(b)) < 0
}

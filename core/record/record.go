// Package record defines the flat data model shared by every stage of the
// grid pipeline: the Record (one table row) and the Criteria (the current
// user-entered view state). Both are plain maps so datasets can come from
// JSON, YAML, or SQL sources without an intermediate struct layer.
package record

import "maps"

// Record is one table row: a flat mapping of field name to scalar value.
// Records are treated as immutable once loaded; pipeline stages return new
// collections instead of mutating rows in place.
type Record map[string]any

// Criteria is the current user-specified search/filter state. Values are
// scalars, or 2-element slices representing an inclusive [from, to] range.
// A criteria snapshot is rebuilt fresh on every render pass.
type Criteria map[string]any

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	maps.Copy(out, r)
	return out
}

// Clone returns a shallow copy of the criteria.
func (c Criteria) Clone() Criteria {
	if c == nil {
		return Criteria{}
	}
	out := make(Criteria, len(c))
	maps.Copy(out, c)
	return out
}

// CloneAll returns a new slice holding the same records. The records
// themselves are shared; stages that reorder or drop rows operate on the
// new slice only.
func CloneAll(records []Record) []Record {
	out := make([]Record, len(records))
	copy(out, records)
	return out
}

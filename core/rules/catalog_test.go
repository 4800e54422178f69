package rules

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/asaidimu/go-datagrid/core/record"
)

func fieldCtx(field string, source record.Record, target record.Criteria) FieldContext {
	return FieldContext{
		Field:       field,
		SourceValue: source[field],
		TargetValue: target[field],
		Source:      source,
		Target:      target,
	}
}

func TestSourceExists(t *testing.T) {
	rule := SourceExists()
	source := record.Record{"present": 1}

	t.Run("absent field is skipped", func(t *testing.T) {
		ctx := fieldCtx("missing", source, record.Criteria{"missing": "x"})
		assert.Equal(t, Skip(), rule.Evaluate(ctx))
	})

	t.Run("present field continues", func(t *testing.T) {
		ctx := fieldCtx("present", source, record.Criteria{"present": 1})
		assert.Equal(t, Continue(), rule.Evaluate(ctx))
	})
}

func TestTargetSet(t *testing.T) {
	rule := TargetSet()
	source := record.Record{"a": 1}

	t.Run("empty criterion is skipped", func(t *testing.T) {
		for _, empty := range []any{nil, "", math.NaN()} {
			ctx := fieldCtx("a", source, record.Criteria{"a": empty})
			assert.Equal(t, Skip(), rule.Evaluate(ctx))
		}
	})

	t.Run("set criterion continues", func(t *testing.T) {
		ctx := fieldCtx("a", source, record.Criteria{"a": 0})
		assert.Equal(t, Continue(), rule.Evaluate(ctx))
	})
}

func TestSourceRequired(t *testing.T) {
	rule := SourceRequired()

	t.Run("empty source value fails", func(t *testing.T) {
		ctx := fieldCtx("a", record.Record{"a": ""}, record.Criteria{"a": "x"})
		assert.Equal(t, Result(false), rule.Evaluate(ctx))
	})

	t.Run("set source value continues", func(t *testing.T) {
		ctx := fieldCtx("a", record.Record{"a": "v"}, record.Criteria{"a": "x"})
		assert.Equal(t, Continue(), rule.Evaluate(ctx))
	})
}

func TestRangeMatch(t *testing.T) {
	rule := RangeMatch()

	tests := []struct {
		name     string
		source   any
		target   any
		expected Outcome
	}{
		{"value inside bounds", 50, []any{10, 100}, Result(true)},
		{"value at lower bound", 10, []any{10, 100}, Result(true)},
		{"value at upper bound", 100, []any{10, 100}, Result(true)},
		{"value below bounds", 9, []any{10, 100}, Result(false)},
		{"value above bounds", 101, []any{10, 100}, Result(false)},
		{"numeric strings coerce", "50", []any{"10", "100"}, Result(true)},
		{"typed float slice", 5.0, []float64{1, 10}, Result(true)},
		{"wrong length array fails", 50, []any{10}, Result(false)},
		{"empty array fails", 50, []any{}, Result(false)},
		{"three elements fail", 50, []any{1, 2, 3}, Result(false)},
		{"non-numeric bound fails", 50, []any{"a", 100}, Result(false)},
		{"non-numeric source fails", "abc", []any{10, 100}, Result(false)},
		{"scalar criterion continues", 50, 50, Continue()},
		{"string criterion continues", 50, "50", Continue()},
		{"nil criterion continues", 50, nil, Continue()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := fieldCtx("v", record.Record{"v": tt.source}, record.Criteria{"v": tt.target})
			assert.Equal(t, tt.expected, rule.Evaluate(ctx))
		})
	}
}

func TestContains(t *testing.T) {
	sensitive := Contains(ContainsConfig{CaseSensitive: true})
	fold := Contains(ContainsConfig{CaseSensitive: false})

	t.Run("case sensitive", func(t *testing.T) {
		ctx := fieldCtx("name", record.Record{"name": "Annabel"}, record.Criteria{"name": "nna"})
		assert.Equal(t, Result(true), sensitive.Evaluate(ctx))

		ctx = fieldCtx("name", record.Record{"name": "Annabel"}, record.Criteria{"name": "NNA"})
		assert.Equal(t, Result(false), sensitive.Evaluate(ctx))
	})

	t.Run("case insensitive", func(t *testing.T) {
		ctx := fieldCtx("name", record.Record{"name": "Annabel"}, record.Criteria{"name": "NNA"})
		assert.Equal(t, Result(true), fold.Evaluate(ctx))
	})

	t.Run("non-string operands continue", func(t *testing.T) {
		ctx := fieldCtx("total", record.Record{"total": 100}, record.Criteria{"total": "10"})
		assert.Equal(t, Continue(), sensitive.Evaluate(ctx))
	})
}

func TestExactString(t *testing.T) {
	rule := ExactString()

	ctx := fieldCtx("a", record.Record{"a": "abc"}, record.Criteria{"a": "abc"})
	assert.Equal(t, Result(true), rule.Evaluate(ctx))

	ctx = fieldCtx("a", record.Record{"a": "abc"}, record.Criteria{"a": "ab"})
	assert.Equal(t, Result(false), rule.Evaluate(ctx))

	ctx = fieldCtx("a", record.Record{"a": 1}, record.Criteria{"a": "1"})
	assert.Equal(t, Continue(), rule.Evaluate(ctx))
}

func TestEquals(t *testing.T) {
	rule := Equals()

	ctx := fieldCtx("a", record.Record{"a": 5}, record.Criteria{"a": 5})
	assert.Equal(t, Result(true), rule.Evaluate(ctx))

	t.Run("different types are not equal", func(t *testing.T) {
		ctx := fieldCtx("a", record.Record{"a": 5}, record.Criteria{"a": 5.0})
		assert.Equal(t, Result(false), rule.Evaluate(ctx))
	})

	t.Run("uncomparable operands do not panic", func(t *testing.T) {
		ctx := fieldCtx("a", record.Record{"a": []any{1}}, record.Criteria{"a": []any{1}})
		assert.NotPanics(t, func() {
			assert.Equal(t, Result(false), rule.Evaluate(ctx))
		})
	})

	t.Run("both nil are equal", func(t *testing.T) {
		ctx := fieldCtx("a", record.Record{"a": nil}, record.Criteria{"a": nil})
		assert.Equal(t, Result(true), rule.Evaluate(ctx))
	})
}

func TestDeepEquals(t *testing.T) {
	rule := DeepEquals()

	ctx := fieldCtx("a",
		record.Record{"a": map[string]any{"x": 1.0}},
		record.Criteria{"a": map[string]any{"x": 1.0}})
	assert.Equal(t, Result(true), rule.Evaluate(ctx))

	ctx = fieldCtx("a",
		record.Record{"a": map[string]any{"x": 1.0}},
		record.Criteria{"a": map[string]any{"x": 2.0}})
	assert.Equal(t, Result(false), rule.Evaluate(ctx))

	t.Run("serialization failure is a non-match", func(t *testing.T) {
		ctx := fieldCtx("a", record.Record{"a": func() {}}, record.Criteria{"a": func() {}})
		assert.Equal(t, Result(false), rule.Evaluate(ctx))
	})
}

func TestNearlyEquals(t *testing.T) {
	rule := NearlyEquals(ToleranceConfig{})

	ctx := fieldCtx("a", record.Record{"a": 1.0004}, record.Criteria{"a": 1.0})
	assert.Equal(t, Result(true), rule.Evaluate(ctx))

	ctx = fieldCtx("a", record.Record{"a": 1.002}, record.Criteria{"a": 1.0})
	assert.Equal(t, Result(false), rule.Evaluate(ctx))

	t.Run("custom epsilon", func(t *testing.T) {
		wide := NearlyEquals(ToleranceConfig{Epsilon: 0.1})
		ctx := fieldCtx("a", record.Record{"a": 1.05}, record.Criteria{"a": 1.0})
		assert.Equal(t, Result(true), wide.Evaluate(ctx))
	})

	t.Run("non-numeric operands continue", func(t *testing.T) {
		ctx := fieldCtx("a", record.Record{"a": "x"}, record.Criteria{"a": 1.0})
		assert.Equal(t, Continue(), rule.Evaluate(ctx))
	})
}

func TestSearch(t *testing.T) {
	rule := Search(SearchConfig{QueryField: "q", Fields: []string{"customer", "date"}})

	source := record.Record{"customer": "Annabel", "date": "2024-01-01", "total": 100}

	t.Run("query found in any field", func(t *testing.T) {
		ctx := fieldCtx("q", source, record.Criteria{"q": "anna"})
		assert.Equal(t, Result(true), rule.Evaluate(ctx))

		ctx = fieldCtx("q", source, record.Criteria{"q": "2024"})
		assert.Equal(t, Result(true), rule.Evaluate(ctx))
	})

	t.Run("query absent from all fields", func(t *testing.T) {
		ctx := fieldCtx("q", source, record.Criteria{"q": "zzz"})
		assert.Equal(t, Result(false), rule.Evaluate(ctx))
	})

	t.Run("unconfigured fields are not scanned", func(t *testing.T) {
		ctx := fieldCtx("q", source, record.Criteria{"q": "100"})
		assert.Equal(t, Result(false), rule.Evaluate(ctx))
	})

	t.Run("empty or blank query skips", func(t *testing.T) {
		ctx := fieldCtx("q", source, record.Criteria{"q": ""})
		assert.Equal(t, Skip(), rule.Evaluate(ctx))

		ctx = fieldCtx("q", source, record.Criteria{"q": "   "})
		assert.Equal(t, Skip(), rule.Evaluate(ctx))
	})

	t.Run("other fields continue", func(t *testing.T) {
		ctx := fieldCtx("customer", source, record.Criteria{"customer": "Ann", "q": ""})
		assert.Equal(t, Continue(), rule.Evaluate(ctx))
	})

	t.Run("whole query must be contained", func(t *testing.T) {
		ctx := fieldCtx("q", source, record.Criteria{"q": "zzz anna"})
		assert.Equal(t, Result(false), rule.Evaluate(ctx))

		ctx = fieldCtx("q", source, record.Criteria{"q": "nnab"})
		assert.Equal(t, Result(true), rule.Evaluate(ctx))
	})

	t.Run("folding is not ascii-only", func(t *testing.T) {
		accented := record.Record{"customer": "Ångström", "date": "2024-01-01"}
		ctx := fieldCtx("q", accented, record.Criteria{"q": "ångström"})
		assert.Equal(t, Result(true), rule.Evaluate(ctx))
	})

	t.Run("case sensitive config", func(t *testing.T) {
		strict := Search(SearchConfig{QueryField: "q", Fields: []string{"customer"}, CaseSensitive: true})
		ctx := fieldCtx("q", source, record.Criteria{"q": "anna"})
		assert.Equal(t, Result(false), strict.Evaluate(ctx))

		ctx = fieldCtx("q", source, record.Criteria{"q": "Anna"})
		assert.Equal(t, Result(true), strict.Evaluate(ctx))
	})
}

func TestCatalog(t *testing.T) {
	catalog := NewCatalog(nil)

	t.Run("resolves built-in rules in order", func(t *testing.T) {
		chain, err := catalog.Resolve(RuleSourceExists, RuleTargetSet, RuleEquals)
		assert.NoError(t, err)
		assert.Len(t, chain, 3)
		assert.Equal(t, RuleSourceExists, chain[0].Name)
		assert.Equal(t, RuleEquals, chain[2].Name)
	})

	t.Run("unknown rule name errors", func(t *testing.T) {
		_, err := catalog.Resolve("no-such-rule")
		assert.Error(t, err)
		var unknownErr *UnknownRuleError
		assert.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "no-such-rule", unknownErr.Name)
	})

	t.Run("register extends the catalog", func(t *testing.T) {
		catalog.Register(Rule{Name: "always", Evaluate: func(ctx FieldContext) Outcome {
			return Result(true)
		}})
		chain, err := catalog.Resolve("always")
		assert.NoError(t, err)
		assert.Len(t, chain, 1)
	})
}

package rules

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"sync"

	ac "github.com/petar-dambovaliev/aho-corasick"
	"go.uber.org/zap"

	"github.com/asaidimu/go-datagrid/core/record"
)

// Names of the built-in comparison rules.
const (
	RuleSourceExists   = "source-exists"
	RuleTargetSet      = "target-set"
	RuleSourceRequired = "source-required"
	RuleRange          = "range"
	RuleContains       = "contains"
	RuleContainsFold   = "contains-fold"
	RuleExactString    = "exact-string"
	RuleEquals         = "equals"
	RuleDeepEquals     = "deep-equals"
	RuleNearlyEquals   = "nearly-equals"
)

// DefaultEpsilon is the tolerance used by NearlyEquals when the config
// leaves Epsilon unset.
const DefaultEpsilon = 0.001

// SourceExists skips fields that are absent from the source record, so
// criteria fields with no record counterpart never reject a row.
func SourceExists() Rule {
	return Rule{Name: RuleSourceExists, Evaluate: func(ctx FieldContext) Outcome {
		if _, ok := ctx.Source[ctx.Field]; !ok {
			return Skip()
		}
		return Continue()
	}}
}

// TargetSet skips fields whose criterion carries no user input
// (nil, empty string, or NaN).
func TargetSet() Rule {
	return Rule{Name: RuleTargetSet, Evaluate: func(ctx FieldContext) Outcome {
		if record.IsEmpty(ctx.TargetValue) {
			return Skip()
		}
		return Continue()
	}}
}

// SourceRequired fails the comparison outright when the record's own value
// for the field is empty.
func SourceRequired() Rule {
	return Rule{Name: RuleSourceRequired, Evaluate: func(ctx FieldContext) Outcome {
		if record.IsEmpty(ctx.SourceValue) {
			return Result(false)
		}
		return Continue()
	}}
}

// RangeMatch treats a 2-element slice or array criterion as an inclusive
// [from, to] bound on the record's numeric value. Any other slice length is
// a decisive non-match; non-slice criteria fall through to later rules.
func RangeMatch() Rule {
	return Rule{Name: RuleRange, Evaluate: func(ctx FieldContext) Outcome {
		bounds, ok := asRange(ctx.TargetValue)
		if !ok {
			return Continue()
		}
		if len(bounds) != 2 {
			return Result(false)
		}
		from, okFrom := record.ToFloat64(bounds[0])
		to, okTo := record.ToFloat64(bounds[1])
		val, okVal := record.ToFloat64(ctx.SourceValue)
		if !okFrom || !okTo || !okVal {
			return Result(false)
		}
		return Result(val >= from && val <= to)
	}}
}

// ContainsConfig parameterizes the substring rule.
type ContainsConfig struct {
	CaseSensitive bool
}

// Contains matches when the record's string value contains the criterion
// string. Non-string operands fall through to later rules.
func Contains(cfg ContainsConfig) Rule {
	name := RuleContains
	if !cfg.CaseSensitive {
		name = RuleContainsFold
	}
	return Rule{Name: name, Evaluate: func(ctx FieldContext) Outcome {
		src, okSrc := ctx.SourceValue.(string)
		tgt, okTgt := ctx.TargetValue.(string)
		if !okSrc || !okTgt {
			return Continue()
		}
		if cfg.CaseSensitive {
			return Result(strings.Contains(src, tgt))
		}
		return Result(strings.Contains(strings.ToLower(src), strings.ToLower(tgt)))
	}}
}

// ExactString matches string operands by exact equality; anything else
// falls through.
func ExactString() Rule {
	return Rule{Name: RuleExactString, Evaluate: func(ctx FieldContext) Outcome {
		src, okSrc := ctx.SourceValue.(string)
		tgt, okTgt := ctx.TargetValue.(string)
		if !okSrc || !okTgt {
			return Continue()
		}
		return Result(src == tgt)
	}}
}

// Equals settles the field with strict equality across any comparable
// types. Uncomparable operands are a non-match rather than a panic.
func Equals() Rule {
	return Rule{Name: RuleEquals, Evaluate: func(ctx FieldContext) Outcome {
		return Result(strictEqual(ctx.SourceValue, ctx.TargetValue))
	}}
}

// DeepEquals compares operands structurally through their canonical JSON
// serialization. Serialization failure is a non-match, never an error.
func DeepEquals() Rule {
	return Rule{Name: RuleDeepEquals, Evaluate: func(ctx FieldContext) Outcome {
		src, errSrc := json.Marshal(ctx.SourceValue)
		tgt, errTgt := json.Marshal(ctx.TargetValue)
		if errSrc != nil || errTgt != nil {
			return Result(false)
		}
		return Result(bytes.Equal(src, tgt))
	}}
}

// ToleranceConfig parameterizes NearlyEquals. A zero Epsilon selects
// DefaultEpsilon.
type ToleranceConfig struct {
	Epsilon float64
}

// NearlyEquals matches numeric operands within a configurable tolerance.
// Non-numeric operands fall through.
func NearlyEquals(cfg ToleranceConfig) Rule {
	eps := cfg.Epsilon
	if eps == 0 {
		eps = DefaultEpsilon
	}
	return Rule{Name: RuleNearlyEquals, Evaluate: func(ctx FieldContext) Outcome {
		src, okSrc := record.ToFloat64(ctx.SourceValue)
		tgt, okTgt := record.ToFloat64(ctx.TargetValue)
		if !okSrc || !okTgt {
			return Continue()
		}
		return Result(math.Abs(src-tgt) <= eps)
	}}
}

// SearchConfig parameterizes the multi-field search rule.
type SearchConfig struct {
	QueryField    string   // criteria key holding the query string
	Fields        []string // record fields scanned for the query
	CaseSensitive bool
}

// Search is active only when evaluating the designated query field. The
// whole query is one substring pattern; the record is retained when any
// configured field contains it. An empty query skips the field entirely.
func Search(cfg SearchConfig) Rule {
	return Rule{Name: "search", Evaluate: func(ctx FieldContext) Outcome {
		if ctx.Field != cfg.QueryField {
			return Continue()
		}
		query, ok := ctx.TargetValue.(string)
		if !ok || strings.TrimSpace(query) == "" {
			return Skip()
		}
		matcher := newQueryMatcher(query, cfg.CaseSensitive)
		for _, field := range cfg.Fields {
			if matcher.matches(record.ToString(ctx.Source[field])) {
				return Result(true)
			}
		}
		return Result(false)
	}}
}

// queryMatcher scans text for the query as a single substring pattern.
// Folding lowercases both sides, matching the Contains rule's behavior on
// non-ASCII input.
type queryMatcher struct {
	automaton ac.AhoCorasick
	fold      bool
}

func newQueryMatcher(query string, caseSensitive bool) *queryMatcher {
	if !caseSensitive {
		query = strings.ToLower(query)
	}
	builder := ac.NewAhoCorasickBuilder(ac.Opts{
		MatchKind: ac.LeftMostLongestMatch,
	})
	return &queryMatcher{automaton: builder.Build([]string{query}), fold: !caseSensitive}
}

func (m *queryMatcher) matches(text string) bool {
	if m.fold {
		text = strings.ToLower(text)
	}
	return len(m.automaton.FindAll(text)) > 0
}

// asRange reports whether a criterion value is a slice or array, returning
// its elements as []any.
func asRange(v any) ([]any, bool) {
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// strictEqual is == with a guard against uncomparable operands.
func strictEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if !ta.Comparable() || !tb.Comparable() {
		return false
	}
	return a == b
}

// Catalog resolves rule names to configured Rule values. Registration is
// guarded so setup code may extend the catalog while comparisons are being
// constructed.
type Catalog struct {
	mu     sync.RWMutex
	rules  map[string]Rule
	logger *zap.Logger
}

// NewCatalog creates a catalog pre-populated with the built-in rules using
// their default configurations.
func NewCatalog(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Catalog{rules: make(map[string]Rule), logger: logger}
	for _, r := range []Rule{
		SourceExists(),
		TargetSet(),
		SourceRequired(),
		RangeMatch(),
		Contains(ContainsConfig{CaseSensitive: true}),
		Contains(ContainsConfig{CaseSensitive: false}),
		ExactString(),
		Equals(),
		DeepEquals(),
		NearlyEquals(ToleranceConfig{}),
	} {
		c.rules[r.Name] = r
	}
	return c
}

// Register adds or replaces a named rule in the catalog.
func (c *Catalog) Register(rule Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules[rule.Name] = rule
	c.logger.Debug("Registered comparison rule", zap.String("name", rule.Name))
}

// Resolve maps rule names to a chain, preserving order.
func (c *Catalog) Resolve(names ...string) (Chain, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	chain := make(Chain, 0, len(names))
	for _, name := range names {
		rule, ok := c.rules[name]
		if !ok {
			return nil, &UnknownRuleError{Name: name}
		}
		chain = append(chain, rule)
	}
	return chain, nil
}

// DefaultGuardChain is the prefix of the filter stage's chain: the rules
// that exclude a field or reject a record before any matching happens.
func DefaultGuardChain() []string {
	return []string{
		RuleSourceExists,
		RuleTargetSet,
		RuleSourceRequired,
	}
}

// DefaultMatchChain is the suffix of the filter stage's chain. The order is
// the tie-break policy: the first applicable rule decides, and strict
// equality settles anything the earlier rules passed over.
func DefaultMatchChain() []string {
	return []string{
		RuleRange,
		RuleContains,
		RuleEquals,
	}
}

// DefaultFilterChain is the fixed rule order used by the filter stage when
// no ad-hoc rules are spliced in.
func DefaultFilterChain() []string {
	return append(DefaultGuardChain(), DefaultMatchChain()...)
}

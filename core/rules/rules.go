// Package rules implements the object-comparison engine behind the grid's
// search and filter stages. A comparison is an ordered chain of rules run
// against each field of a criteria object; the first rule producing a
// decisive signal settles that field, and a single failing field rejects
// the whole record.
package rules

import (
	"github.com/asaidimu/go-datagrid/core/record"
)

// Signal identifies the kind of outcome a rule produced.
type Signal int

// Rule outcome signals. A rule either passes control to the next rule in
// the chain, excludes the field from the comparison entirely, or settles
// the field with a boolean verdict.
const (
	SignalContinue Signal = iota
	SignalSkip
	SignalResult
)

// Outcome is the tagged result of a single rule evaluation. Value is only
// meaningful when Signal is SignalResult.
type Outcome struct {
	Signal Signal
	Value  bool
}

// Continue passes control to the next rule in the chain.
func Continue() Outcome { return Outcome{Signal: SignalContinue} }

// Skip excludes the field from the comparison; the field counts as satisfied.
func Skip() Outcome { return Outcome{Signal: SignalSkip} }

// Result settles the field with a decisive verdict.
func Result(v bool) Outcome { return Outcome{Signal: SignalResult, Value: v} }

// FieldContext carries everything a rule may inspect when evaluating one
// field of a comparison. Rules are stateless; any construction-time
// parameters live in explicit config structs on the rule factories.
type FieldContext struct {
	Field       string          // the criteria field under evaluation
	SourceValue any             // the record's value for the field (nil when absent)
	TargetValue any             // the criteria's value for the field
	Source      record.Record   // the full record
	Target      record.Criteria // the full criteria object
}

// EvaluateFunc is a pure decision function over one field context.
type EvaluateFunc func(ctx FieldContext) Outcome

// Rule is a single named decision in a comparison chain.
type Rule struct {
	Name     string
	Evaluate EvaluateFunc
}

// Chain is an ordered sequence of rules. Order is significant: the first
// rule producing a skip or result wins and the rest of the chain is not
// consulted for that field.
type Chain []Rule

// Verdict is the per-field result of walking a chain.
type Verdict int

const (
	VerdictPass Verdict = iota
	VerdictFail
	VerdictSkip
)

// EvaluateField walks the chain in order and returns the field verdict.
// A chain exhausted without any decisive signal passes the field; rules
// that want default-deny must end their chain with a decisive rule.
func EvaluateField(ctx FieldContext, chain Chain) Verdict {
	for _, r := range chain {
		out := r.Evaluate(ctx)
		switch out.Signal {
		case SignalSkip:
			return VerdictSkip
		case SignalResult:
			if out.Value {
				return VerdictPass
			}
			return VerdictFail
		}
	}
	return VerdictPass
}

package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// ExprRule compiles an expression string into a comparison rule. The
// expression may reference:
//
//	field: the criteria field under evaluation
//	source: the record's value for the field
//	target: the criterion value
//	record: the full record as a map
//	criteria: the full criteria object as a map
//
// A boolean result settles the field; any other result, including nil,
// passes control to the next rule, letting an expression scope itself to
// particular fields. Compilation failure is a constructor error.
// Evaluation failure at comparison time degrades to Continue so a broken
// ad-hoc rule never rejects rows on its own.
func ExprRule(name, source string) (Rule, error) {
	program, err := expr.Compile(source)
	if err != nil {
		return Rule{}, fmt.Errorf("compile rule %q: %w", name, err)
	}
	return Rule{Name: name, Evaluate: func(ctx FieldContext) Outcome {
		env := map[string]any{
			"field":    ctx.Field,
			"source":   ctx.SourceValue,
			"target":   ctx.TargetValue,
			"record":   map[string]any(ctx.Source),
			"criteria": map[string]any(ctx.Target),
		}
		out, err := expr.Run(program, env)
		if err != nil {
			return Continue()
		}
		verdict, ok := out.(bool)
		if !ok {
			return Continue()
		}
		return Result(verdict)
	}}, nil
}

package mcfg

import (
	"fmt"
	"strings"
)

// Rule is an MCFG production restricted to chart-normal form: a left-side
// RuleElement plus an ordered right-side of RuleElements of rank 0 (a
// lexical/epsilon rule), rank 1 (a unary closure, resolved by
// chart.Parser's tryUnary), or rank 2 (a binary combination, resolved by
// combine) — rules of higher rank are out of scope.
//
// Serial is the rule's position in the Grammar that built it, assigned by
// NewGrammar; it exists purely to give Grammar.String and
// Grammar.Reduce/ReduceUnary a deterministic, reproducible order (a fixed
// canonical ordering over rules/grammar iteration).
type Rule struct {
	LeftSide  RuleElement
	RightSide []RuleElement
	Serial    int
}

// NewRule constructs and validates a Rule:
//   - right-side elements' string-variable id sets are pairwise disjoint
//   - for non-epsilon rules, the union of RHS variable ids equals the set
//     of left-side variable ids
//
// Failure is fatal (a *RuleConstructionError), never a no-match value —
// no-match is reserved for InstantiateLeftSide at parse time.
func NewRule(left RuleElement, right ...RuleElement) (*Rule, error) {
	r := &Rule{LeftSide: left, RightSide: right}
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// IsEpsilon reports whether r is a lexical rule (empty right side).
func (r *Rule) IsEpsilon() bool { return len(r.RightSide) == 0 }

func (r *Rule) validate() error {
	seen := make(map[int]struct{})
	for _, el := range r.RightSide {
		for v := range el.UniqueStringVariables() {
			if _, dup := seen[v]; dup {
				return &RuleConstructionError{Msg: fmt.Sprintf(
					"string variable %d is shared across right-side elements of %s", v, r.skeleton())}
			}
			seen[v] = struct{}{}
		}
	}
	if r.IsEpsilon() {
		if r.LeftSide.Terminal == "" {
			return &RuleConstructionError{Msg: "epsilon rule's left side must carry a terminal literal"}
		}
		return nil
	}
	left := r.LeftSide.UniqueStringVariables()
	if len(left) != len(seen) {
		return &RuleConstructionError{Msg: fmt.Sprintf(
			"left side of %s binds %d variables, right side provides %d", r.skeleton(), len(left), len(seen))}
	}
	for v := range left {
		if _, ok := seen[v]; !ok {
			return &RuleConstructionError{Msg: fmt.Sprintf(
				"left side of %s references unbound string variable %d", r.skeleton(), v)}
		}
	}
	return nil
}

// skeleton renders the rule for error messages without panicking on a
// not-yet-fully-validated Rule.
func (r *Rule) skeleton() string {
	parts := make([]string, len(r.RightSide))
	for i, e := range r.RightSide {
		parts[i] = e.String()
	}
	if len(parts) == 0 {
		return r.LeftSide.String()
	}
	return r.LeftSide.String() + " -> " + strings.Join(parts, " ")
}

func (r *Rule) String() string { return r.skeleton() }

// rightSideAligns checks arity and variable-name agreement between r's
// declared right side and an instantiated right side, the precondition
// Grammar.Reduce's lookup contract relies on.
func (r *Rule) rightSideAligns(rhs []RuleElementInstance) bool {
	if len(rhs) != len(r.RightSide) {
		return false
	}
	for i, el := range r.RightSide {
		if el.Variable != rhs[i].Variable {
			return false
		}
		if len(el.StringVariables) != len(rhs[i].Spans) {
			return false
		}
	}
	return true
}

// buildSpanMap zips r's declared right side against instantiated spans,
// binding each string-variable id to the span of the RHS component that
// carries it. Per chart-normal form, every right-side component tuple is
// a singleton (id,) — general RuleElements may declare longer tuples
// only on a left side, where they describe a concatenation.
func (r *Rule) buildSpanMap(rhs []RuleElementInstance) map[int]Span {
	m := make(map[int]Span, len(r.RightSide))
	for i, el := range r.RightSide {
		for j, tup := range el.StringVariables {
			m[tup[0]] = rhs[i].Spans[j]
		}
	}
	return m
}

// InstantiateLeftSide attempts to combine rhs — an ordered tuple of
// instantiated right-hand-side elements — under r, producing the
// left-side instance. The second return value is false when rhs does not
// satisfy r (misaligned shape, or a failed adjacency check): this is an
// ordinary no-match value, not an error.
//
// For a lexical rule, callers pass a single "phantom" instance whose
// Variable is the word being seeded and whose sole Span is the token's
// position — see chart.Parser's seeding step.
func (r *Rule) InstantiateLeftSide(rhs ...RuleElementInstance) (*RuleElementInstance, bool) {
	if r.IsEpsilon() {
		if len(rhs) != 1 || len(rhs[0].Spans) != 1 {
			return nil, false
		}
		phantom := rhs[0]
		if r.LeftSide.Terminal != phantom.Variable {
			return nil, false
		}
		inst := NewInstance(r.LeftSide.Variable, phantom.Spans...)
		return &inst, true
	}
	if !r.rightSideAligns(rhs) {
		return nil, false
	}
	spanMap := r.buildSpanMap(rhs)
	spans := make([]Span, len(r.LeftSide.StringVariables))
	for ci, comp := range r.LeftSide.StringVariables {
		for i := 1; i < len(comp); i++ {
			prev, cur := spanMap[comp[i-1]], spanMap[comp[i]]
			if prev.End != cur.Begin {
				return nil, false
			}
		}
		spans[ci] = Span{Begin: spanMap[comp[0]].Begin, End: spanMap[comp[len(comp)-1]].End}
	}
	left := NewInstance(r.LeftSide.Variable, spans...)
	return &left, true
}

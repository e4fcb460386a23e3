package mcfg

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
)

// RuleElementInstance is a RuleElement whose components have been bound
// to concrete half-open Spans into the input. Components
// never overlap and carry no prescribed input order — they may be
// discontiguous and out-of-order with respect to input positions.
type RuleElementInstance struct {
	Variable string
	Spans    []Span
}

// NewInstance builds an instance, one Span per component.
func NewInstance(variable string, spans ...Span) RuleElementInstance {
	return RuleElementInstance{Variable: variable, Spans: spans}
}

func (i RuleElementInstance) Equal(other RuleElementInstance) bool {
	if i.Variable != other.Variable || len(i.Spans) != len(other.Spans) {
		return false
	}
	for k := range i.Spans {
		if i.Spans[k] != other.Spans[k] {
			return false
		}
	}
	return true
}

// Key returns a stable hash depending only on (Variable, Spans), used for
// dedup/memoization keys throughout chart and grammar lookup.
func (i RuleElementInstance) Key() string {
	h, err := structhash.Hash(struct {
		V string
		S []Span
	}{i.Variable, i.Spans}, 1)
	if err != nil {
		panic(err)
	}
	return h
}

// Shape returns (variable, arity), the key Grammar.Reduce memoizes on.
func (i RuleElementInstance) Shape() (string, int) {
	return i.Variable, len(i.Spans)
}

func (i RuleElementInstance) String() string {
	parts := make([]string, len(i.Spans))
	for k, s := range i.Spans {
		parts[k] = s.String()
	}
	return fmt.Sprintf("%s(%s)", i.Variable, strings.Join(parts, ", "))
}

package mcfg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cnf/structhash"
)

// RuleElement is a grammar nonterminal symbol together with an ordered
// tuple of component tuples, each a sequence of string-variable ids
// scoped to the enclosing Rule. Components describe how one of the
// element's instantiated spans is assembled: a component with more than
// one id is concatenated from several right-hand-side spans (see
// Rule.InstantiateLeftSide); a singleton component is bound directly to
// one right-hand-side span.
//
// Terminal is set instead of StringVariables for the left side of a
// lexical (epsilon) rule, whose sole component holds a literal word
// rather than a string-variable id — the two element shapes never mix
// within one RuleElement.
type RuleElement struct {
	Variable        string
	StringVariables [][]int
	Terminal        string
}

// NewRuleElement builds a non-terminal RuleElement, one component tuple
// per positional argument.
func NewRuleElement(variable string, stringVariables ...[]int) RuleElement {
	return RuleElement{Variable: variable, StringVariables: stringVariables}
}

// NewTerminalElement builds the left side of a lexical rule: variable is
// the introduced nonterminal's name, word is the terminal literal.
func NewTerminalElement(variable, word string) RuleElement {
	return RuleElement{Variable: variable, Terminal: word}
}

// Equal reports structural equality: this depends only on
// (Variable, StringVariables) — and, for lexical elements, Terminal.
func (e RuleElement) Equal(other RuleElement) bool {
	if e.Variable != other.Variable || e.Terminal != other.Terminal {
		return false
	}
	if len(e.StringVariables) != len(other.StringVariables) {
		return false
	}
	for i := range e.StringVariables {
		if !equalIntSlice(e.StringVariables[i], other.StringVariables[i]) {
			return false
		}
	}
	return true
}

func equalIntSlice(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Key returns a stable hash, suitable as a map key, depending only on the
// same fields as Equal. Implemented with structhash rather than identity,
// per the design note on hash-on-tuple equality.
func (e RuleElement) Key() string {
	h, err := structhash.Hash(struct {
		V string
		S [][]int
		T string
	}{e.Variable, e.StringVariables, e.Terminal}, 1)
	if err != nil {
		// structhash only fails on unsupported field types; this shape
		// (strings and nested int slices) is always supported.
		panic(err)
	}
	return h
}

// UniqueStringVariables returns the set of string-variable ids appearing
// anywhere across e's components.
func (e RuleElement) UniqueStringVariables() map[int]struct{} {
	set := make(map[int]struct{})
	for _, tup := range e.StringVariables {
		for _, v := range tup {
			set[v] = struct{}{}
		}
	}
	return set
}

// Arity returns the number of components this element carries.
func (e RuleElement) Arity() int {
	if e.Terminal != "" {
		return 1
	}
	return len(e.StringVariables)
}

func (e RuleElement) String() string {
	if e.Terminal != "" {
		return fmt.Sprintf("%s(%s)", e.Variable, e.Terminal)
	}
	parts := make([]string, len(e.StringVariables))
	for i, tup := range e.StringVariables {
		ids := make([]string, len(tup))
		for j, v := range tup {
			ids[j] = strconv.Itoa(v)
		}
		parts[i] = strings.Join(ids, "")
	}
	return fmt.Sprintf("%s(%s)", e.Variable, strings.Join(parts, ", "))
}

package mcfg

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"golang.org/x/exp/slices"
)

// Grammar is an MCFG in chart-normal form: every Rule's right side has
// rank 0 (lexical/epsilon), rank 1 (unary closure), or rank 2 (binary
// combination). Alphabet and Variables are not supplied by the caller —
// they are auto-derived from the rule set, then validated for
// disjointness.
type Grammar struct {
	StartVariables []string
	Rules          []*Rule

	alphabet  map[string]struct{}
	variables map[string]struct{}
	starts    map[string]struct{}

	// lexical indexes epsilon rules by the terminal word they introduce.
	lexical map[string][]*Rule
	// unary indexes rank-1 rules by the (variable, arity) shape of their
	// sole right-side element, the key Grammar.ReduceUnary looks up.
	unary map[string][]*Rule
	// binary indexes rank-2 rules by the (variable, arity) shape pair of
	// their two right-side elements, the key Grammar.Reduce looks up.
	binary map[string][]*Rule
	// byLHS indexes every rule by its left-side variable name.
	byLHS map[string][]*Rule

	sortedAlphabet  *treeset.Set
	sortedVariables *treeset.Set

	mu               sync.RWMutex
	reduceCache      map[string][]*Rule
	unaryReduceCache map[string][]*Rule
}

// NewGrammar builds and validates a Grammar from a rule set. Alphabet and
// Variables are derived, not supplied: every RuleElement.Variable seen
// anywhere becomes a variable, every epsilon-rule Terminal becomes an
// alphabet symbol, and every name in start must name one of the derived
// variables.
func NewGrammar(start []string, rules []*Rule) (*Grammar, error) {
	g := &Grammar{
		StartVariables:   start,
		Rules:            rules,
		alphabet:         make(map[string]struct{}),
		variables:        make(map[string]struct{}),
		starts:           make(map[string]struct{}),
		lexical:          make(map[string][]*Rule),
		unary:            make(map[string][]*Rule),
		binary:           make(map[string][]*Rule),
		byLHS:            make(map[string][]*Rule),
		reduceCache:      make(map[string][]*Rule),
		unaryReduceCache: make(map[string][]*Rule),
	}
	for _, s := range start {
		g.starts[s] = struct{}{}
	}
	for i, r := range rules {
		r.Serial = i
	}
	g.derive()
	if err := g.validate(); err != nil {
		return nil, err
	}
	g.buildIndices()
	return g, nil
}

func (g *Grammar) derive() {
	for _, r := range g.Rules {
		g.variables[r.LeftSide.Variable] = struct{}{}
		if r.IsEpsilon() {
			g.alphabet[r.LeftSide.Terminal] = struct{}{}
			continue
		}
		for _, el := range r.RightSide {
			g.variables[el.Variable] = struct{}{}
		}
	}
}

func (g *Grammar) validate() error {
	for s := range g.starts {
		if _, ok := g.variables[s]; !ok {
			return &GrammarValidationError{Msg: fmt.Sprintf("start variable %q is not defined by any rule", s)}
		}
	}
	for a := range g.alphabet {
		if _, ok := g.variables[a]; ok {
			return &GrammarValidationError{Msg: fmt.Sprintf(
				"%q appears both as an alphabet symbol and as a variable", a)}
		}
	}
	for _, r := range g.Rules {
		if r.IsEpsilon() {
			continue
		}
		if len(r.RightSide) > 2 {
			return &GrammarValidationError{Msg: fmt.Sprintf(
				"rule %s has right-side rank %d, chart-normal form allows at most 2", r, len(r.RightSide))}
		}
		for _, el := range r.RightSide {
			if _, ok := g.variables[el.Variable]; !ok {
				return &GrammarValidationError{Msg: fmt.Sprintf(
					"rule %s references undefined variable %q", r, el.Variable)}
			}
		}
	}
	return nil
}

func binaryShapeKey(vA string, arityA int, vB string, arityB int) string {
	return fmt.Sprintf("%s/%d\x00%s/%d", vA, arityA, vB, arityB)
}

func unaryShapeKey(v string, arity int) string {
	return fmt.Sprintf("%s/%d", v, arity)
}

func (g *Grammar) buildIndices() {
	for _, r := range g.Rules {
		g.byLHS[r.LeftSide.Variable] = append(g.byLHS[r.LeftSide.Variable], r)
		switch len(r.RightSide) {
		case 0:
			g.lexical[r.LeftSide.Terminal] = append(g.lexical[r.LeftSide.Terminal], r)
		case 1:
			a := r.RightSide[0]
			key := unaryShapeKey(a.Variable, a.Arity())
			g.unary[key] = append(g.unary[key], r)
		default:
			a, b := r.RightSide[0], r.RightSide[1]
			key := binaryShapeKey(a.Variable, a.Arity(), b.Variable, b.Arity())
			g.binary[key] = append(g.binary[key], r)
		}
	}

	g.sortedAlphabet = treeset.NewWith(utils.StringComparator)
	for a := range g.alphabet {
		g.sortedAlphabet.Add(a)
	}
	g.sortedVariables = treeset.NewWith(utils.StringComparator)
	for v := range g.variables {
		g.sortedVariables.Add(v)
	}
}

// Lexical returns the epsilon rules whose terminal literal is word, in
// Serial order.
func (g *Grammar) Lexical(word string) []*Rule {
	return g.lexical[word]
}

// RulesByLHS returns every rule whose left-side variable name is name, in
// Serial order.
func (g *Grammar) RulesByLHS(name string) []*Rule {
	return g.byLHS[name]
}

// IsStartVariable reports whether name was declared as an accepting root.
func (g *Grammar) IsStartVariable(name string) bool {
	_, ok := g.starts[name]
	return ok
}

// IsVariable reports whether name was derived as a grammar variable.
func (g *Grammar) IsVariable(name string) bool {
	_, ok := g.variables[name]
	return ok
}

// IsTerminal reports whether sym was derived as an alphabet symbol.
func (g *Grammar) IsTerminal(sym string) bool {
	_, ok := g.alphabet[sym]
	return ok
}

// Alphabet returns the derived terminal symbols in deterministic,
// lexicographic order.
func (g *Grammar) Alphabet() []string {
	vals := g.sortedAlphabet.Values()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}
	return out
}

// VariableNames returns the derived nonterminal names in deterministic,
// lexicographic order.
func (g *Grammar) VariableNames() []string {
	vals := g.sortedVariables.Values()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.(string)
	}
	return out
}

// Reduce returns every binary rule whose two right-side elements match
// the (variable, arity) shapes of left and right, in Serial order. This
// is the hot lookup of chart.Parser's combine step, so results are
// memoized behind a read-mostly lock — a grammar's rule set never
// changes after NewGrammar returns, so the cache is populated once per
// distinct shape pair and never invalidated.
func (g *Grammar) Reduce(left, right RuleElementInstance) []*Rule {
	lv, la := left.Shape()
	rv, ra := right.Shape()
	key := binaryShapeKey(lv, la, rv, ra)

	g.mu.RLock()
	cached, ok := g.reduceCache[key]
	g.mu.RUnlock()
	if ok {
		return cached
	}

	candidates := g.binary[key]
	sorted := make([]*Rule, len(candidates))
	copy(sorted, candidates)
	slices.SortFunc(sorted, func(a, b *Rule) int { return a.Serial - b.Serial })

	g.mu.Lock()
	g.reduceCache[key] = sorted
	g.mu.Unlock()
	return sorted
}

// ReduceUnary returns every rank-1 rule whose sole right-side element
// matches sym's (variable, arity) shape, in Serial order. This is
// chart.Parser's unary-closure lookup, memoized the same way as Reduce.
func (g *Grammar) ReduceUnary(sym RuleElementInstance) []*Rule {
	v, a := sym.Shape()
	key := unaryShapeKey(v, a)

	g.mu.RLock()
	cached, ok := g.unaryReduceCache[key]
	g.mu.RUnlock()
	if ok {
		return cached
	}

	candidates := g.unary[key]
	sorted := make([]*Rule, len(candidates))
	copy(sorted, candidates)
	slices.SortFunc(sorted, func(a, b *Rule) int { return a.Serial - b.Serial })

	g.mu.Lock()
	g.unaryReduceCache[key] = sorted
	g.mu.Unlock()
	return sorted
}

// String renders the grammar's rules one per line, sorted by Serial, for
// diagnostics.
func (g *Grammar) String() string {
	rules := make([]*Rule, len(g.Rules))
	copy(rules, g.Rules)
	sort.Slice(rules, func(i, j int) bool { return rules[i].Serial < rules[j].Serial })
	lines := make([]string, len(rules))
	for i, r := range rules {
		lines[i] = r.String()
	}
	return strings.Join(lines, "\n")
}

package mcfg_test

import (
	"testing"

	"github.com/kvantas/mcfg"
	"github.com/kvantas/mcfg/chart"
)

// buildAnBnCnRecursive assembles the full a^n b^n c^n witness grammar, the
// textbook proof that MCFG strictly dominates context-free grammars:
//
//	S(xy)     -> T(x,y)
//	T(ax,byc) -> T(x,y) ABC(a,b,c)
//	T(x,y)    -> A(x) BC(y)
//	ABC(a,b,c)-> AB(a,b) C(c)
//	AB(a,b)   -> A(a) B(b)
//	BC(xy)    -> B(x) C(y)
//	A, B, C   -> eps
//
// A literal anchor can only enter a rule bound to a right-side element, so
// the recursive step's three new letters (a, b, c) are carried in by the
// auxiliary AB/ABC nonterminals rather than written directly into T's left
// side — every rule here has at most two right-side elements, T's rank
// never exceeding the chart engine's binary combine step.
func buildAnBnCnRecursive(t *testing.T) *mcfg.Grammar {
	t.Helper()
	a, err := mcfg.NewRule(mcfg.NewTerminalElement("A", "a"))
	if err != nil {
		t.Fatalf("lexical A: %v", err)
	}
	b, err := mcfg.NewRule(mcfg.NewTerminalElement("B", "b"))
	if err != nil {
		t.Fatalf("lexical B: %v", err)
	}
	c, err := mcfg.NewRule(mcfg.NewTerminalElement("C", "c"))
	if err != nil {
		t.Fatalf("lexical C: %v", err)
	}
	bc, err := mcfg.NewRule(
		mcfg.NewRuleElement("BC", []int{0, 1}),
		mcfg.NewRuleElement("B", []int{0}), mcfg.NewRuleElement("C", []int{1}),
	)
	if err != nil {
		t.Fatalf("BC rule: %v", err)
	}
	ab, err := mcfg.NewRule(
		mcfg.NewRuleElement("AB", []int{0}, []int{1}),
		mcfg.NewRuleElement("A", []int{0}), mcfg.NewRuleElement("B", []int{1}),
	)
	if err != nil {
		t.Fatalf("AB rule: %v", err)
	}
	abc, err := mcfg.NewRule(
		mcfg.NewRuleElement("ABC", []int{0}, []int{1}, []int{2}),
		mcfg.NewRuleElement("AB", []int{0}, []int{1}), mcfg.NewRuleElement("C", []int{2}),
	)
	if err != nil {
		t.Fatalf("ABC rule: %v", err)
	}
	tBase, err := mcfg.NewRule(
		mcfg.NewRuleElement("T", []int{0}, []int{1}),
		mcfg.NewRuleElement("A", []int{0}), mcfg.NewRuleElement("BC", []int{1}),
	)
	if err != nil {
		t.Fatalf("T base rule: %v", err)
	}
	tRec, err := mcfg.NewRule(
		mcfg.NewRuleElement("T", []int{3, 0}, []int{4, 1, 5}),
		mcfg.NewRuleElement("T", []int{0}, []int{1}), mcfg.NewRuleElement("ABC", []int{3}, []int{4}, []int{5}),
	)
	if err != nil {
		t.Fatalf("T recursive rule: %v", err)
	}
	s, err := mcfg.NewRule(
		mcfg.NewRuleElement("S", []int{0, 1}),
		mcfg.NewRuleElement("T", []int{0}, []int{1}),
	)
	if err != nil {
		t.Fatalf("S rule: %v", err)
	}
	g, err := mcfg.NewGrammar([]string{"S"}, []*mcfg.Rule{a, b, c, bc, ab, abc, tBase, tRec, s})
	if err != nil {
		t.Fatalf("NewGrammar: %v", err)
	}
	return g
}

func TestAnBnCnDerivation(t *testing.T) {
	p := chart.NewParser(buildAnBnCnRecursive(t))

	accept := [][]string{
		{"a", "b", "c"},
		{"a", "a", "b", "b", "c", "c"},
		{"a", "a", "a", "b", "b", "b", "c", "c", "c"},
	}
	for _, tokens := range accept {
		if !p.Recognize(tokens) {
			t.Errorf("expected %v to be recognized", tokens)
		}
	}

	reject := [][]string{
		{"a", "a", "b", "c"},           // unbalanced: two a's, one b, one c
		{"a", "b", "b", "c"},           // unbalanced: one a, two b's, one c
		{"a", "b", "c", "a", "b", "c"}, // wrong order, not a^n b^n c^n
		{},
	}
	for _, tokens := range reject {
		if p.Recognize(tokens) {
			t.Errorf("expected %v to be rejected", tokens)
		}
	}

	trees := p.Parse([]string{"a", "a", "b", "b", "c", "c"})
	if len(trees) != 1 || trees[0].Data != "S" {
		t.Fatalf("expected exactly one S-rooted parse for \"aabbcc\", got %v", trees)
	}
}

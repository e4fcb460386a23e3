package mcfg

import "testing"

// buildAnBnCn assembles the base case (n = 1) of the a^n b^n c^n
// calibration grammar as a validated Grammar, in chart-normal form:
//
//	S(xy)      -> T(x,y)
//	T(x,y)     -> A(x) BC(y)
//	BC(xy)     -> B(x) C(y)
//	A, B, C    -> eps      (lexical rules for "a", "b" and "c")
//
// The recursive T step is not included here; see anbncn_test.go for the
// full grammar.
func buildAnBnCn(t *testing.T) *Grammar {
	t.Helper()
	a, err := NewRule(NewTerminalElement("A", "a"))
	if err != nil {
		t.Fatalf("lexical A: %v", err)
	}
	b, err := NewRule(NewTerminalElement("B", "b"))
	if err != nil {
		t.Fatalf("lexical B: %v", err)
	}
	c, err := NewRule(NewTerminalElement("C", "c"))
	if err != nil {
		t.Fatalf("lexical C: %v", err)
	}
	bc, err := NewRule(
		NewRuleElement("BC", []int{0, 1}),
		NewRuleElement("B", []int{0}), NewRuleElement("C", []int{1}),
	)
	if err != nil {
		t.Fatalf("binary BC: %v", err)
	}
	tBase, err := NewRule(
		NewRuleElement("T", []int{0}, []int{1}),
		NewRuleElement("A", []int{0}), NewRuleElement("BC", []int{1}),
	)
	if err != nil {
		t.Fatalf("binary T base: %v", err)
	}
	s, err := NewRule(
		NewRuleElement("S", []int{0, 1}),
		NewRuleElement("T", []int{0}, []int{1}),
	)
	if err != nil {
		t.Fatalf("unary S: %v", err)
	}
	g, err := NewGrammar([]string{"S"}, []*Rule{a, b, c, bc, tBase, s})
	if err != nil {
		t.Fatalf("NewGrammar: %v", err)
	}
	return g
}

func TestNewGrammarDerivesAlphabetAndVariables(t *testing.T) {
	g := buildAnBnCn(t)
	for _, sym := range []string{"a", "b", "c"} {
		if !g.IsTerminal(sym) {
			t.Errorf("expected %q to be derived as a terminal", sym)
		}
	}
	for _, v := range []string{"A", "B", "C", "BC", "T", "S"} {
		if !g.IsVariable(v) {
			t.Errorf("expected %q to be derived as a variable", v)
		}
	}
}

func TestNewGrammarRejectsUnknownStart(t *testing.T) {
	a, _ := NewRule(NewTerminalElement("A", "a"))
	if _, err := NewGrammar([]string{"Sentence"}, []*Rule{a}); err == nil {
		t.Fatal("expected a GrammarValidationError for an undefined start variable")
	} else if _, ok := err.(*GrammarValidationError); !ok {
		t.Fatalf("expected *GrammarValidationError, got %T", err)
	}
}

func TestNewGrammarRejectsAlphabetVariableOverlap(t *testing.T) {
	a, _ := NewRule(NewTerminalElement("A", "a"))
	clashing, err := NewRule(
		NewRuleElement("a", []int{0}),
		NewRuleElement("A", []int{0}),
	)
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	if _, err := NewGrammar([]string{"a"}, []*Rule{a, clashing}); err == nil {
		t.Fatal("expected a GrammarValidationError when a symbol is both terminal and variable")
	}
}

func TestNewGrammarRejectsRankAboveTwo(t *testing.T) {
	a, _ := NewRule(NewTerminalElement("A", "a"))
	b, _ := NewRule(NewTerminalElement("B", "b"))
	c, _ := NewRule(NewTerminalElement("C", "c"))
	ternary, err := NewRule(
		NewRuleElement("S", []int{0, 1, 2}),
		NewRuleElement("A", []int{0}), NewRuleElement("B", []int{1}), NewRuleElement("C", []int{2}),
	)
	if err != nil {
		t.Fatalf("NewRule: %v", err)
	}
	if _, err := NewGrammar([]string{"S"}, []*Rule{a, b, c, ternary}); err == nil {
		t.Fatal("expected a GrammarValidationError: right-side rank 3 violates chart-normal form")
	}
}

func TestGrammarReduceFindsBinaryRulesByShape(t *testing.T) {
	g := buildAnBnCn(t)
	bInst := NewInstance("B", Span{Begin: 1, End: 2})
	cInst := NewInstance("C", Span{Begin: 2, End: 3})
	found := g.Reduce(bInst, cInst)
	if len(found) != 1 || found[0].LeftSide.Variable != "BC" {
		t.Fatalf("expected exactly the BC rule, got %v", found)
	}

	// An unrelated shape pair yields no rules, not an error.
	aInst := NewInstance("A", Span{Begin: 0, End: 1})
	if found := g.Reduce(aInst, cInst); len(found) != 0 {
		t.Fatalf("expected no rules combining A and C, got %v", found)
	}
}

func TestGrammarReduceIsMemoizedAndStable(t *testing.T) {
	g := buildAnBnCn(t)
	bInst := NewInstance("B", Span{Begin: 1, End: 2})
	cInst := NewInstance("C", Span{Begin: 2, End: 3})
	first := g.Reduce(bInst, cInst)
	second := g.Reduce(bInst, cInst)
	if len(first) != len(second) {
		t.Fatalf("expected stable results across calls, got %v then %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expected identical rule pointers from the memoized cache at index %d", i)
		}
	}
}

func TestGrammarVariableNamesAndAlphabetAreSorted(t *testing.T) {
	g := buildAnBnCn(t)
	names := g.VariableNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("VariableNames() not strictly sorted: %v", names)
		}
	}
	alphabet := g.Alphabet()
	for i := 1; i < len(alphabet); i++ {
		if alphabet[i-1] >= alphabet[i] {
			t.Fatalf("Alphabet() not strictly sorted: %v", alphabet)
		}
	}
}

func TestGrammarLexicalLooksUpByWord(t *testing.T) {
	g := buildAnBnCn(t)
	if rules := g.Lexical("a"); len(rules) != 1 || rules[0].LeftSide.Variable != "A" {
		t.Fatalf("expected exactly one lexical rule for \"a\", got %v", rules)
	}
	if rules := g.Lexical("nonsense"); len(rules) != 0 {
		t.Fatalf("expected no lexical rules for an unknown word, got %v", rules)
	}
}

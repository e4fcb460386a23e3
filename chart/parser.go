package chart

import (
	"fmt"

	"github.com/npillmayer/schuko/gconf"

	"github.com/kvantas/mcfg"
	"github.com/kvantas/mcfg/tree"
)

// Mode selects what Parser.Call computes.
type Mode int

const (
	// Recognize asks only whether the input is accepted.
	Recognize Mode = iota
	// Parse additionally extracts the parse forest.
	Parse
)

func (m Mode) String() string {
	switch m {
	case Recognize:
		return "recognize"
	case Parse:
		return "parse"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Result is what Parser.Call returns: Accepted always reflects whether the
// input was recognized; Trees is populated only when the call mode was
// Parse.
type Result struct {
	Accepted bool
	Trees    []*tree.Tree
}

// Parser drives the agenda-based chart engine over a grammar. Create one
// with NewParser; a Parser may be reused across calls to Call, since each
// call builds a fresh agenda and chart — only the wrapped Grammar (and its
// read-mostly Reduce/ReduceUnary caches) is shared.
type Parser struct {
	grammar *mcfg.Grammar
	mode    uint
}

// Option configures a Parser.
type Option func(p *Parser)

const optionPanicOnEmptyChart uint = 1 << 1

// PanicOnEmptyChart configures the parser to panic when a non-empty input
// seeds no chart entries at all (every token lacks a lexical rule). This
// is almost always a grammar/input mismatch worth surfacing loudly during
// development; defaults to false.
func PanicOnEmptyChart(b bool) Option {
	return func(p *Parser) {
		if b {
			p.mode |= optionPanicOnEmptyChart
		} else {
			p.mode &^= optionPanicOnEmptyChart
		}
	}
}

func (p *Parser) hasmode(m uint) bool { return p.mode&m > 0 }

// NewParser creates a chart parser wrapping g. A single callable
// accepting a token sequence and a mode is exposed here as Call rather
// than as a method directly on Grammar, avoiding a Grammar-imports-chart
// cycle while keeping parse state (agenda, chart, ids) out of Grammar's
// otherwise immutable, freely-shared value.
func NewParser(g *mcfg.Grammar, opts ...Option) *Parser {
	p := &Parser{grammar: g}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Call runs the chart engine over tokens under mode. Recognize answers
// with Result.Accepted alone; Parse additionally populates Result.Trees.
// An unrecognized mode is a *mcfg.ParserMisuseError.
func (p *Parser) Call(tokens []string, mode Mode) (*Result, error) {
	switch mode {
	case Recognize:
		accepted, _ := p.run(tokens, false)
		return &Result{Accepted: accepted}, nil
	case Parse:
		accepted, trees := p.run(tokens, true)
		return &Result{Accepted: accepted, Trees: trees}, nil
	default:
		return nil, &mcfg.ParserMisuseError{Msg: fmt.Sprintf("unrecognized parser mode %v", mode)}
	}
}

// Recognize is a convenience wrapper around Call(tokens, Recognize).
func (p *Parser) Recognize(tokens []string) bool {
	r, _ := p.Call(tokens, Recognize)
	return r.Accepted
}

// Parse is a convenience wrapper around Call(tokens, Parse).
func (p *Parser) Parse(tokens []string) []*tree.Tree {
	r, _ := p.Call(tokens, Parse)
	return r.Trees
}

// run drives one complete chart-construction pass over tokens.
// extractTrees controls whether forest extraction runs afterward.
func (p *Parser) run(tokens []string, extractTrees bool) (bool, []*tree.Tree) {
	agenda, byID := p.seed(tokens)
	chartList := p.fill(agenda, byID)

	accepting := p.acceptingEntries(chartList, len(tokens))
	if len(accepting) == 0 {
		return false, nil
	}
	if !extractTrees {
		return true, nil
	}
	forest := make([]*tree.Tree, 0, len(accepting))
	for _, entry := range accepting {
		forest = append(forest, p.materialize(entry, byID))
	}
	return true, forest
}

// seed instantiates every lexical rule against its matching token, and
// reassigns ids so seed entries occupy 0…k−1 contiguously.
func (p *Parser) seed(tokens []string) ([]*Entry, map[int]*Entry) {
	var seeded []*Entry
	for i, word := range tokens {
		phantom := mcfg.NewInstance(word, mcfg.Span{Begin: i, End: i + 1})
		for _, rule := range p.grammar.Lexical(word) {
			left, ok := rule.InstantiateLeftSide(phantom)
			if !ok {
				continue
			}
			seeded = append(seeded, &Entry{Symbol: *left, Kind: Leaf, Word: word})
		}
	}
	if len(tokens) > 0 && len(seeded) == 0 && p.hasmode(optionPanicOnEmptyChart) {
		tracer().Errorf("no lexical rule matched any token in %v", tokens)
		panic(fmt.Sprintf("chart parser seeded zero entries for input %v; every token lacks a lexical rule", tokens))
	}
	byID := make(map[int]*Entry, len(seeded))
	for i, e := range seeded {
		e.ID = i
		byID[e.ID] = e
	}
	return seeded, byID
}

// fill runs the FIFO main loop until the agenda is empty, returning the
// final chart in insertion order.
func (p *Parser) fill(agenda []*Entry, byID map[int]*Entry) []*Entry {
	nextID := len(agenda)
	var chartList []*Entry
	seenIDs := make(map[int]bool, len(agenda))

	for len(agenda) > 0 {
		current := agenda[0]
		agenda = agenda[1:]

		for _, derived := range p.tryUnary(current) {
			id := nextID
			nextID++
			derived.entry.ID = id
			byID[id] = derived.entry
			agenda = append(agenda, derived.entry)
		}

		for _, element := range chartList {
			produced := p.combine(current, element)
			for _, np := range produced {
				id := nextID
				nextID++
				np.entry.ID = id
				byID[id] = np.entry
				agenda = append(agenda, np.entry)
			}
		}

		if !seenIDs[current.ID] {
			chartList = append(chartList, current)
			seenIDs[current.ID] = true
		}
	}
	dumpChart(chartList)
	return chartList
}

// producedEntry wraps a freshly-built Entry (id not yet assigned; its Rule
// field names the rule that produced it), so fill can assign ids in
// visitation order.
type producedEntry struct {
	entry *Entry
}

// combine tries both RHS orientations of current and element against
// Grammar.Reduce, and returns one Entry per matching rule whose
// instantiation succeeds. The second orientation is only attempted when
// the first finds no candidate rules at all — once Reduce has returned a
// nonempty rule set for an orientation, that orientation alone decides
// the outcome, even if every one of its rules fails its adjacency check.
func (p *Parser) combine(current, element *Entry) []producedEntry {
	produced, hadRules := p.tryOrientation(current, element, 0)
	if hadRules {
		return produced
	}
	produced, _ = p.tryOrientation(element, current, 1)
	return produced
}

func (p *Parser) tryOrientation(left, right *Entry, orientation int) ([]producedEntry, bool) {
	rules := p.grammar.Reduce(left.Symbol, right.Symbol)
	var produced []producedEntry
	for _, rule := range rules {
		inst, ok := rule.InstantiateLeftSide(left.Symbol, right.Symbol)
		if !ok {
			continue
		}
		bp := []Backpointer{
			{SourceID: left.ID, SourceName: left.Symbol.Variable},
			{SourceID: right.ID, SourceName: right.Symbol.Variable},
		}
		produced = append(produced, producedEntry{entry: &Entry{
			Symbol:       *inst,
			Kind:         Derived,
			Rule:         rule,
			Backpointers: bp,
		}})
	}
	return produced, len(rules) > 0
}

// tryUnary applies every rank-1 rule whose RHS shape matches entry to
// entry alone. A derived entry reaches its own unary closure once it
// surfaces at the front of the agenda, so chains of unary rules resolve
// without recursion here.
func (p *Parser) tryUnary(entry *Entry) []producedEntry {
	rules := p.grammar.ReduceUnary(entry.Symbol)
	var produced []producedEntry
	for _, rule := range rules {
		inst, ok := rule.InstantiateLeftSide(entry.Symbol)
		if !ok {
			continue
		}
		bp := []Backpointer{{SourceID: entry.ID, SourceName: entry.Symbol.Variable}}
		produced = append(produced, producedEntry{entry: &Entry{
			Symbol:       *inst,
			Kind:         Derived,
			Rule:         rule,
			Backpointers: bp,
		}})
	}
	return produced
}

// acceptingEntries returns every chart entry whose variable is a start
// variable and whose spans are exactly ((0, n),).
func (p *Parser) acceptingEntries(chartList []*Entry, n int) []*Entry {
	var out []*Entry
	for _, e := range chartList {
		if !p.grammar.IsStartVariable(e.Symbol.Variable) {
			continue
		}
		if len(e.Symbol.Spans) != 1 || e.Symbol.Spans[0] != (mcfg.Span{Begin: 0, End: n}) {
			continue
		}
		out = append(out, e)
	}
	tracer().Debugf("accepting entries: %s", entrySetString(out))
	return out
}

// materialize walks back-pointers from entry to build a concrete Tree.
// Shared subtrees are rebuilt
// independently at every occurrence rather than shared by reference,
// matching the reference implementation's concrete-tree semantics.
func (p *Parser) materialize(entry *Entry, byID map[int]*Entry) *tree.Tree {
	if entry.Kind == Leaf {
		return tree.Leaf(fmt.Sprintf("%s(%s)", entry.Symbol.Variable, entry.Word))
	}
	children := make([]*tree.Tree, len(entry.Backpointers))
	for i, bp := range entry.Backpointers {
		source, ok := byID[bp.SourceID]
		if !ok {
			if gconf.GetBool("panic-on-unresolved-backpointer") {
				panic(fmt.Sprintf("chart entry #%d references unresolved back-pointer #%d (%s)",
					entry.ID, bp.SourceID, bp.SourceName))
			}
			tracer().Errorf("unresolved back-pointer #%d (%s) from entry #%d", bp.SourceID, bp.SourceName, entry.ID)
			continue
		}
		children[i] = p.materialize(source, byID)
	}
	return tree.New(entry.Symbol.Variable, children...)
}

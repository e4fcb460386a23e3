package syntax

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kvantas/mcfg"
)

// elemAST is one "NAME(var, var, …)" element as parsed from rule text,
// before string-variable identifiers have been resolved to integer ids.
type elemAST struct {
	name string
	vars []string
}

// Parser loads mcfg.Rule values from rule-text lines. Create one with
// NewParser and reuse it across many ParseRule calls — it compiles the
// lexmachine DFA once and hands out a fresh Scanner per input.
type Parser struct {
	lx *lexer
}

// NewParser compiles the rule-text DFA and returns a ready-to-use Parser.
func NewParser() (*Parser, error) {
	lx, err := newLexer()
	if err != nil {
		return nil, err
	}
	return &Parser{lx: lx}, nil
}

// ParseRule parses one line of rule text into a Rule, per the textual
// grammar:
//
//	<rule>  ::= <elem> '->' <elem> (' ' <elem>)*  | <elem>
//	<elem>  ::= NAME '(' <vars> ')'
//	<vars>  ::= <var> (',' ' '? <var>)*
//	<var>   ::= [A-Za-z0-9]+
//
// A rule with no "->" is epsilon: its single element's sole var is a
// terminal word literal, not a string-variable list.
func (p *Parser) ParseRule(src string) (*mcfg.Rule, error) {
	toks, err := p.lx.tokenize(src)
	if err != nil {
		return nil, &mcfg.RuleSyntaxError{Msg: err.Error()}
	}
	left, right, err := parseTokens(toks)
	if err != nil {
		return nil, err
	}
	if right == nil {
		if len(left.vars) != 1 {
			return nil, &mcfg.RuleSyntaxError{Msg: fmt.Sprintf(
				"epsilon rule %q must name exactly one terminal literal, got %v", src, left.vars)}
		}
		return mcfg.NewRule(mcfg.NewTerminalElement(left.name, left.vars[0]))
	}
	return buildRule(left, right)
}

// parseTokens is a small recursive-descent parser over the flat token
// stream. It returns a nil right-hand side for an epsilon rule.
func parseTokens(toks []token) (left *elemAST, right []*elemAST, err error) {
	pos := 0
	at := func(i int) token {
		if i >= len(toks) {
			return token{kind: tokEOF}
		}
		return toks[i]
	}
	next := func() token {
		t := at(pos)
		pos++
		return t
	}
	peek := func() token { return at(pos) }
	expect := func(k tokKind) (token, error) {
		t := next()
		if t.kind != k {
			return t, &mcfg.RuleSyntaxError{Msg: fmt.Sprintf("expected %s, got %s %q", k, t.kind, t.lexeme)}
		}
		return t, nil
	}
	parseElem := func() (*elemAST, error) {
		nameTok, err := expect(tokName)
		if err != nil {
			return nil, err
		}
		if _, err := expect(tokLParen); err != nil {
			return nil, err
		}
		var vars []string
		for {
			v, err := expect(tokName)
			if err != nil {
				return nil, err
			}
			vars = append(vars, v.lexeme)
			if peek().kind == tokComma {
				next()
				continue
			}
			break
		}
		if _, err := expect(tokRParen); err != nil {
			return nil, err
		}
		return &elemAST{name: nameTok.lexeme, vars: vars}, nil
	}

	left, err = parseElem()
	if err != nil {
		return nil, nil, err
	}
	if peek().kind == tokEOF {
		return left, nil, nil
	}
	if _, err := expect(tokArrow); err != nil {
		return nil, nil, err
	}
	for {
		elem, err := parseElem()
		if err != nil {
			return nil, nil, err
		}
		right = append(right, elem)
		if peek().kind == tokEOF {
			break
		}
	}
	return left, right, nil
}

// buildRule resolves string-variable identifiers and constructs the Rule.
// Each distinct RHS variable name is assigned an id by order of first
// appearance, left-to-right, element by element; RHS
// components are always singleton tuples of one id. Left-side var strings
// may concatenate several RHS variable names with no separator (e.g.
// "xy"), so they are decomposed by greedy longest-prefix matching against
// the known RHS names — longer names are tried first so e.g. a variable
// named "xy" itself is never split into "x","y" by accident.
func buildRule(left *elemAST, right []*elemAST) (*mcfg.Rule, error) {
	ids := make(map[string]int)
	var order []string
	for _, elem := range right {
		for _, v := range elem.vars {
			if _, dup := ids[v]; dup {
				return nil, &mcfg.RuleSyntaxError{Msg: fmt.Sprintf(
					"duplicate right-side variable %q", v)}
			}
			ids[v] = len(order)
			order = append(order, v)
		}
	}
	sortedNames := make([]string, len(order))
	copy(sortedNames, order)
	sort.Slice(sortedNames, func(i, j int) bool { return len(sortedNames[i]) > len(sortedNames[j]) })

	rightElems := make([]mcfg.RuleElement, len(right))
	for i, elem := range right {
		comps := make([][]int, len(elem.vars))
		for j, v := range elem.vars {
			comps[j] = []int{ids[v]}
		}
		rightElems[i] = mcfg.NewRuleElement(elem.name, comps...)
	}

	leftComps := make([][]int, len(left.vars))
	for i, raw := range left.vars {
		comp, ok := decomposeComponent(raw, ids, sortedNames)
		if !ok {
			return nil, &mcfg.RuleSyntaxError{Msg: fmt.Sprintf(
				"left-side component %q does not decompose into known right-side variables", raw)}
		}
		leftComps[i] = comp
	}
	leftElem := mcfg.NewRuleElement(left.name, leftComps...)
	return mcfg.NewRule(leftElem, rightElems...)
}

// decomposeComponent splits raw into a sequence of right-side variable
// ids by repeatedly matching the longest known name that prefixes the
// remaining text.
func decomposeComponent(raw string, ids map[string]int, namesByDescLength []string) ([]int, bool) {
	var ordered []int
	remaining := raw
	for len(remaining) > 0 {
		matched := ""
		for _, name := range namesByDescLength {
			if strings.HasPrefix(remaining, name) {
				matched = name
				break
			}
		}
		if matched == "" {
			return nil, false
		}
		ordered = append(ordered, ids[matched])
		remaining = remaining[len(matched):]
	}
	return ordered, true
}

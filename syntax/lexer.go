// Package syntax implements the textual rule-source grammar described in
// the external-interfaces section of the reference: a factory that turns
// lines of the shape "S(xy) -> T(x, y)" or a bare "A(a)" (an epsilon rule)
// into *mcfg.Rule values. This is the one component the core recognizer
// and chart engine treat as an opaque collaborator — callers may load
// rules however they like — but a complete module still needs one
// concrete loader, built on top of github.com/timtadh/lexmachine.
package syntax

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'mcfg.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("mcfg.syntax")
}

// tokKind enumerates the lexemes of the rule-text grammar.
type tokKind int

const (
	tokEOF tokKind = iota
	tokName
	tokLParen
	tokRParen
	tokComma
	tokArrow
)

func (k tokKind) String() string {
	switch k {
	case tokEOF:
		return "EOF"
	case tokName:
		return "NAME"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	case tokArrow:
		return "'->'"
	default:
		return fmt.Sprintf("tokKind(%d)", int(k))
	}
}

type token struct {
	kind   tokKind
	lexeme string
}

// lexer tokenizes one rule-text line using a compiled lexmachine DFA.
type lexer struct {
	lm *lexmachine.Lexer
}

// newLexer compiles the rule-text DFA. Compiling once per call keeps the
// loader stateless and side-effect free; callers parsing many rules
// should prefer Parser, which compiles the DFA a single time and reuses
// it (see parse.go).
func newLexer() (*lexer, error) {
	lm := lexmachine.NewLexer()
	lm.Add([]byte(`->`), makeTok(tokArrow))
	lm.Add([]byte(`\(`), makeTok(tokLParen))
	lm.Add([]byte(`\)`), makeTok(tokRParen))
	lm.Add([]byte(`,`), makeTok(tokComma))
	lm.Add([]byte(`[A-Za-z0-9]+`), makeTok(tokName))
	lm.Add([]byte(`( |\t)+`), skip)
	if err := lm.Compile(); err != nil {
		tracer().Errorf("compiling rule-text DFA: %v", err)
		return nil, err
	}
	return &lexer{lm: lm}, nil
}

// tokenize scans src into a flat token slice terminated by tokEOF.
func (lx *lexer) tokenize(src string) ([]token, error) {
	scanner, err := lx.lm.Scanner([]byte(src))
	if err != nil {
		return nil, err
	}
	var toks []token
	for {
		tok, err, eof := scanner.Next()
		if err != nil {
			if ui, is := err.(*machines.UnconsumedInput); is {
				return nil, fmt.Errorf("unexpected character at position %d in %q", ui.FailTC, src)
			}
			return nil, err
		}
		if eof {
			break
		}
		lt := tok.(*lexmachine.Token)
		toks = append(toks, token{kind: tokKind(lt.Type), lexeme: string(lt.Bytes)})
	}
	toks = append(toks, token{kind: tokEOF})
	return toks, nil
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeTok(kind tokKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}

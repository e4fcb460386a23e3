// Package chart implements the agenda-based bottom-up chart engine for
// mcfg.Grammar: seeding from lexical rules, the FIFO work-list main loop,
// span combination through Grammar.Reduce, and parse-forest extraction by
// walking back-pointers. The design descends from classical Earley
// parsing, adapted from single-position Earley items to MCFG span-tuple
// instances.
package chart

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"

	"github.com/kvantas/mcfg"
)

// tracer traces with key 'mcfg.chart'.
func tracer() tracing.Trace {
	return tracing.Select("mcfg.chart")
}

// Backpointer names the chart entry and right-side variable name that
// contributed one position of a Derived entry's producing rule, in RHS
// declaration order.
type Backpointer struct {
	SourceID   int
	SourceName string
}

// Entry is a RuleElementInstance stamped with a stable id and provenance.
// Source code distinguishes lexical seeds from combined entries with an
// explicit tag rather than a sentinel back-pointer pair, replacing the
// duck-typed None the reference implementation relies on.
type Entry struct {
	ID     int
	Symbol mcfg.RuleElementInstance

	// Kind selects which of Word/Rule/Backpointers is meaningful.
	Kind EntryKind

	// Word is set only when Kind == Leaf: the terminal token this entry
	// was seeded from.
	Word string

	// Rule and Backpointers are set only when Kind == Derived: the rule
	// whose instantiation produced Symbol, and — in the rule's RHS
	// order — the chart entries it was derived from.
	Rule         *mcfg.Rule
	Backpointers []Backpointer
}

// EntryKind tags an Entry as a lexical seed or a rule-derived combination.
type EntryKind int

const (
	// Leaf entries come directly from lexical seeding and carry no
	// back-pointers.
	Leaf EntryKind = iota
	// Derived entries were produced by applying a unary or binary rule to
	// one or two existing chart entries.
	Derived
)

func (e *Entry) String() string {
	switch e.Kind {
	case Leaf:
		return fmt.Sprintf("#%d %s [leaf %q]", e.ID, e.Symbol, e.Word)
	default:
		return fmt.Sprintf("#%d %s [rule %s <- %v]", e.ID, e.Symbol, e.Rule, e.Backpointers)
	}
}

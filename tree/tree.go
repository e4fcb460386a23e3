// Package tree provides the minimal derivation-tree structure produced by
// a chart parse: an immutable value type supporting structural equality,
// stable hashing, indented string rendering, and flat terminal-yield
// extraction.
package tree

import (
	"fmt"
	"strings"

	"github.com/cnf/structhash"
)

// Tree is an immutable node label plus an ordered list of children. Zero
// children marks a leaf.
type Tree struct {
	Data     string
	Children []*Tree
}

// New builds an interior node.
func New(data string, children ...*Tree) *Tree {
	return &Tree{Data: data, Children: children}
}

// Leaf builds a childless node, conventionally labeled "Var(word)" for a
// preterminal.
func Leaf(data string) *Tree {
	return &Tree{Data: data}
}

// Equal reports deep structural equality: same Data, same Children in
// order, recursively.
func (t *Tree) Equal(other *Tree) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.Data != other.Data || len(t.Children) != len(other.Children) {
		return false
	}
	for i, c := range t.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Key returns a stable hash over the tree's full shape, for use as a map
// key or in ambiguity dedup — identity is never the right notion of
// equality for a tree materialized fresh per occurrence (see chart
// package's forest extraction).
func (t *Tree) Key() string {
	childKeys := make([]string, len(t.Children))
	for i, c := range t.Children {
		childKeys[i] = c.Key()
	}
	h, err := structhash.Hash(struct {
		D string
		C []string
	}{t.Data, childKeys}, 1)
	if err != nil {
		panic(err)
	}
	return h
}

// String renders the tree at depth 0. See StringAt for the indentation
// rule.
func (t *Tree) String() string {
	return t.StringAt(0)
}

// StringAt renders t and its descendants one node per line: each non-root
// line at depth d is d−1 two-space indents followed by a "--" marker, then
// the node's Data; the root line is the Data alone.
func (t *Tree) StringAt(depth int) string {
	var b strings.Builder
	t.writeAt(&b, depth)
	return b.String()
}

func (t *Tree) writeAt(b *strings.Builder, depth int) {
	if depth > 0 {
		b.WriteString(strings.Repeat("  ", depth-1))
		b.WriteString("--")
	}
	b.WriteString(t.Data)
	b.WriteString("\n")
	for _, c := range t.Children {
		c.writeAt(b, depth+1)
	}
}

// Yield returns the original input words in left-to-right order: for each
// leaf, the word literal inside its "Var(word)" label.
func (t *Tree) Yield() []string {
	if len(t.Children) == 0 {
		return []string{leafWord(t.Data)}
	}
	var out []string
	for _, c := range t.Children {
		out = append(out, c.Yield()...)
	}
	return out
}

// leafWord extracts word from a "Var(word)" preterminal label.
func leafWord(label string) string {
	open := strings.IndexByte(label, '(')
	if open < 0 || !strings.HasSuffix(label, ")") {
		return label
	}
	return label[open+1 : len(label)-1]
}

// GoString supports %#v debugging with the same rendering as String.
func (t *Tree) GoString() string {
	return fmt.Sprintf("tree.Tree(%s)", t.String())
}

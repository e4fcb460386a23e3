/*
Package mcfg implements the data model for Multiple Context-Free Grammars
restricted to a chart-normal form: every rule's right side has rank 0 (an
epsilon production introducing one terminal), rank 1 (a unary closure
over a single nonterminal), or rank 2 (a binary combination of two) —
the engine never needs to combine more than two items at once. A single
nonterminal instance carries an ordered tuple of disjoint input spans
rather than one contiguous span,
which is what lets an MCFG express cross-serial dependencies, wh-movement,
and displaced relative-clause material that a context-free grammar cannot.

Package structure is as follows:

■ mcfg (this package): RuleElement, RuleElementInstance, Rule and Grammar
— the grammar data model and its span algebra.

■ chart: the agenda-based bottom-up chart engine that recognizes and
parses token sequences against a Grammar.

■ tree: the minimal derivation-tree type produced by chart.Parser.

■ syntax: a small regex-flavored textual rule syntax ("A(u,v) -> B(u) C(v)"),
compiled with a lexmachine DFA, for building Rules and Grammars from
plain text instead of Go literals.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.
*/
package mcfg

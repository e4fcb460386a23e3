package mcfg

// Error taxonomy. Construction-time problems are fatal and
// reported via these typed errors; a Rule's instantiation failing an
// adjacency check is not an error at all — it is an ordinary no-match
// value (see Rule.InstantiateLeftSide).

// GrammarValidationError is returned by NewGrammar when the alphabet and
// variables overlap, a start variable is not itself a variable, or (in
// the chart-normal form enforced here) a rule references a right-side
// symbol that isn't a registered variable.
type GrammarValidationError struct {
	Msg string
}

func (e *GrammarValidationError) Error() string { return "grammar validation: " + e.Msg }

// RuleConstructionError is returned by NewRule when right-side variables
// are shared across right-side elements, or the left-side variable set
// doesn't equal the union of right-side variables.
type RuleConstructionError struct {
	Msg string
}

func (e *RuleConstructionError) Error() string { return "rule construction: " + e.Msg }

// RuleSyntaxError is returned by the syntax package's textual rule
// loader: duplicated right-side variable names, or a malformed element
// list.
type RuleSyntaxError struct {
	Msg string
}

func (e *RuleSyntaxError) Error() string { return "rule syntax: " + e.Msg }

// ParserMisuseError is returned when a parser entry point is called with
// an unrecognized mode.
type ParserMisuseError struct {
	Msg string
}

func (e *ParserMisuseError) Error() string { return "parser misuse: " + e.Msg }

package lexer

// StateKind is the lexical mode a line is entered or exited in.
type StateKind uint8

const (
	StateNormal StateKind = iota
	StateBlockComment
	StateTemplateString
	StateTripleString
)

// QuoteFlavor enumerates the triple-quote flavors Python supports.
// It is carried in LineState.TemplateExpressionDepth when Kind is
// StateTripleString, per the data model's compact encoding.
type QuoteFlavor int

const (
	QuoteDouble QuoteFlavor = 1
	QuoteSingle QuoteFlavor = 2
)

// LineState is the entry/exit lexical mode of a line. For Kind ==
// StateNormal, TemplateExpressionDepth is always 0. For Kind ==
// StateTripleString, TemplateExpressionDepth holds a QuoteFlavor. For
// Kind == StateTemplateString, TemplateExpressionDepth holds the
// nesting depth of the unclosed `${` expression that carried the
// state across the line boundary (see DESIGN.md and §9.1 of the
// specification for why this is a depth rather than a distinct
// "inside expression" state).
type LineState struct {
	Kind                    StateKind
	TemplateExpressionDepth int
}

// Initial is the state every language's tokenizer begins a document in.
var Initial = LineState{Kind: StateNormal}

// Equal reports whether two states are structurally identical, the
// notion of state equality the incremental cache's early-exit rule
// relies on.
func (s LineState) Equal(other LineState) bool {
	return s.Kind == other.Kind && s.TemplateExpressionDepth == other.TemplateExpressionDepth
}

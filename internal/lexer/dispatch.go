package lexer

// tokenizeFunc is the pure per-language line tokenizer shape every
// language file implements.
type tokenizeFunc func(line string, entry LineState) ([]Token, LineState)

// byLanguage is the closed dispatch table the engine uses instead of
// any subclass hierarchy: one pure function per language, selected by
// a map lookup.
var byLanguage = map[Language]tokenizeFunc{
	Plaintext:  tokenizePlaintext,
	JavaScript: tokenizeJavaScript,
	TypeScript: tokenizeTypeScript,
	Python:     tokenizePython,
}

// Tokenize runs the line tokenizer for lang over a single line of
// text, given the lexical state the line is entered in. It returns
// the line's tokens, covering the line totally and without overlap,
// and the lexical state the next line should be entered with.
//
// Tokenize is a pure function: the same (lang, line, entry) always
// produces the same result, and it never inspects or mutates anything
// beyond its arguments.
func Tokenize(lang Language, line string, entry LineState) ([]Token, LineState) {
	fn, ok := byLanguage[lang]
	if !ok {
		fn = tokenizePlaintext
	}
	return fn(line, entry)
}

package lexer

// TypeScript shares JavaScript's state machine and template-string
// handling in full; it only adds a further set of reserved words on
// top of the JavaScript keyword table.
var typescriptKeywords = buildTypeScriptKeywords()

func buildTypeScriptKeywords() map[string]TokenType {
	m := make(map[string]TokenType, len(jsKeywords)+16)
	for k, v := range jsKeywords {
		m[k] = v
	}
	for _, w := range []string{
		"interface", "type", "enum", "namespace", "declare",
		"public", "private", "protected", "readonly", "abstract",
		"implements", "as", "is", "keyof", "infer", "satisfies",
	} {
		m[w] = TokenKeyword
	}
	return m
}

var typescriptSpec = &spec{
	lineComment:       "//",
	blockComment:      true,
	templateString:    true,
	allowBigIntSuffix: true,
	keywords:          typescriptKeywords,
}

func tokenizeTypeScript(line string, entry LineState) ([]Token, LineState) {
	return typescriptSpec.tokenizeEntry(line, entry)
}

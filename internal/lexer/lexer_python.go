package lexer

var pythonKeywords = buildPythonKeywords()

func buildPythonKeywords() map[string]TokenType {
	m := map[string]TokenType{
		"and": TokenKeyword, "as": TokenKeyword, "assert": TokenKeyword,
		"async": TokenKeyword, "await": TokenKeyword, "break": TokenKeyword,
		"class": TokenKeyword, "continue": TokenKeyword, "def": TokenKeyword,
		"del": TokenKeyword, "elif": TokenKeyword, "else": TokenKeyword,
		"except": TokenKeyword, "finally": TokenKeyword, "for": TokenKeyword,
		"from": TokenKeyword, "global": TokenKeyword, "if": TokenKeyword,
		"import": TokenKeyword, "in": TokenKeyword, "is": TokenKeyword,
		"lambda": TokenKeyword, "nonlocal": TokenKeyword, "not": TokenKeyword,
		"or": TokenKeyword, "pass": TokenKeyword, "raise": TokenKeyword,
		"return": TokenKeyword, "try": TokenKeyword, "while": TokenKeyword,
		"with": TokenKeyword, "yield": TokenKeyword,

		"True": TokenConstant, "False": TokenConstant, "None": TokenConstant,
	}
	// Built-ins fall back to the keyword lookup tier rather than a
	// distinct token type — the closed vocabulary has no "builtin"
	// category, so these classify the same as language keywords.
	for _, w := range []string{
		"print", "len", "range", "str", "int", "float", "bool", "list",
		"dict", "set", "tuple", "object", "type", "isinstance", "issubclass",
		"super", "staticmethod", "classmethod", "property", "enumerate",
		"zip", "map", "filter", "open", "input", "iter", "next", "abs",
		"all", "any", "sorted", "reversed", "sum", "min", "max", "round",
		"repr", "format", "hash", "id", "vars", "dir", "getattr", "setattr",
		"hasattr", "delattr", "callable", "self", "cls",
		"Exception", "ValueError", "TypeError", "KeyError", "IndexError",
		"AttributeError", "StopIteration", "RuntimeError", "NotImplementedError",
	} {
		m[w] = TokenKeyword
	}
	return m
}

var pythonSpec = &spec{
	lineComment:        "#",
	tripleString:       true,
	decorator:          true,
	allowOctal:         true,
	allowComplexSuffix: true,
	keywords:           pythonKeywords,
}

func tokenizePython(line string, entry LineState) ([]Token, LineState) {
	return pythonSpec.tokenizeEntry(line, entry)
}

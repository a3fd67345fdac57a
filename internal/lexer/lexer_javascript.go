package lexer

var jsKeywords = map[string]TokenType{
	"break": TokenKeyword, "case": TokenKeyword, "catch": TokenKeyword,
	"class": TokenKeyword, "const": TokenKeyword, "continue": TokenKeyword,
	"debugger": TokenKeyword, "default": TokenKeyword, "delete": TokenKeyword,
	"do": TokenKeyword, "else": TokenKeyword, "export": TokenKeyword,
	"extends": TokenKeyword, "finally": TokenKeyword, "for": TokenKeyword,
	"function": TokenKeyword, "if": TokenKeyword, "import": TokenKeyword,
	"in": TokenKeyword, "instanceof": TokenKeyword, "let": TokenKeyword,
	"new": TokenKeyword, "of": TokenKeyword, "return": TokenKeyword,
	"static": TokenKeyword, "super": TokenKeyword, "switch": TokenKeyword,
	"this": TokenKeyword, "throw": TokenKeyword, "try": TokenKeyword,
	"typeof": TokenKeyword, "var": TokenKeyword, "void": TokenKeyword,
	"while": TokenKeyword, "with": TokenKeyword, "yield": TokenKeyword,
	"async": TokenKeyword, "await": TokenKeyword,

	"true": TokenConstant, "false": TokenConstant, "null": TokenConstant,
	"undefined": TokenConstant, "NaN": TokenConstant, "Infinity": TokenConstant,
}

var javascriptSpec = &spec{
	lineComment:       "//",
	blockComment:      true,
	templateString:    true,
	allowBigIntSuffix: true,
	keywords:          jsKeywords,
}

func tokenizeJavaScript(line string, entry LineState) ([]Token, LineState) {
	return javascriptSpec.tokenizeEntry(line, entry)
}

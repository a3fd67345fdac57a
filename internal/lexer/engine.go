package lexer

import "strings"

// spec captures the per-language knobs the shared scanning engine
// dispatches on. Each language file builds one of these and hands it
// to the engine entry points; the engine itself never special-cases a
// language by name, only by which features spec enables — the "closed
// dispatch on LanguageId" the design notes call for lives one level up,
// in dispatch.go.
type spec struct {
	lineComment        string // "//", "#", or "" if the language has none
	blockComment       bool   // JS/TS /* */
	templateString     bool   // JS/TS backtick templates
	tripleString       bool   // Python triple-quoted strings
	decorator          bool   // Python @decorator
	allowOctal         bool   // Python 0o literals
	allowBigIntSuffix  bool   // JS/TS numeric 'n' suffix
	allowComplexSuffix bool   // Python numeric 'j'/'J' suffix
	keywords           map[string]TokenType
}

// tokenizeEntry is the top-level per-line entry point: it dispatches on
// the entry state's Kind exactly as §4.1 describes, then delegates to
// the shared normal-state scanner for any "normal" text it encounters.
func (s *spec) tokenizeEntry(line string, entry LineState) ([]Token, LineState) {
	switch entry.Kind {
	case StateBlockComment:
		return s.continueBlockComment(line)
	case StateTemplateString:
		return s.scanTemplateBody(line, 0, 0, entry.TemplateExpressionDepth)
	case StateTripleString:
		return s.continueTripleString(line, QuoteFlavor(entry.TemplateExpressionDepth))
	default:
		return s.tokenizeNormalRange(line, 0)
	}
}

func (s *spec) continueBlockComment(line string) ([]Token, LineState) {
	if idx := strings.Index(line, "*/"); idx >= 0 {
		end := idx + 2
		tok := Token{Type: TokenComment, Start: 0, Length: end}
		if end == len(line) {
			return []Token{tok}, LineState{Kind: StateNormal}
		}
		rest, exit := s.tokenizeNormalRange(line, end)
		return append([]Token{tok}, rest...), exit
	}
	return []Token{{Type: TokenComment, Start: 0, Length: len(line)}}, LineState{Kind: StateBlockComment}
}

func (s *spec) continueTripleString(line string, flavor QuoteFlavor) ([]Token, LineState) {
	quote := tripleQuoteFor(flavor)
	if idx := strings.Index(line, quote); idx >= 0 {
		end := idx + len(quote)
		tok := Token{Type: TokenString, Start: 0, Length: end}
		if end == len(line) {
			return []Token{tok}, LineState{Kind: StateNormal}
		}
		rest, exit := s.tokenizeNormalRange(line, end)
		return append([]Token{tok}, rest...), exit
	}
	return []Token{{Type: TokenString, Start: 0, Length: len(line)}},
		LineState{Kind: StateTripleString, TemplateExpressionDepth: int(flavor)}
}

func tripleQuoteFor(flavor QuoteFlavor) string {
	if flavor == QuoteSingle {
		return "'''"
	}
	return `"""`
}

// scanTemplateBody scans the literal portion of a backtick template
// string. stringStart is the absolute offset the resulting String
// token begins at (it includes the opening backtick for a template
// that starts mid-line); searchFrom is where scanning for a
// terminator begins. depth is the entry expression depth, carried
// forward bug-for-bug per §9.1 when an unescaped "${" is found before
// the closing backtick.
func (s *spec) scanTemplateBody(line string, stringStart, searchFrom, depth int) ([]Token, LineState) {
	i := searchFrom
	for i < len(line) {
		c := line[i]
		if c == '\\' && i+1 < len(line) {
			i += 2
			continue
		}
		if c == '`' {
			tok := Token{Type: TokenString, Start: stringStart, Length: i + 1 - stringStart}
			if i+1 == len(line) {
				return []Token{tok}, LineState{Kind: StateNormal}
			}
			rest, exit := s.tokenizeNormalRange(line, i+1)
			return append([]Token{tok}, rest...), exit
		}
		if c == '$' && i+1 < len(line) && line[i+1] == '{' {
			tok := Token{Type: TokenString, Start: stringStart, Length: i + 2 - stringStart}
			exit := LineState{Kind: StateTemplateString, TemplateExpressionDepth: depth + 1}
			if i+2 == len(line) {
				return []Token{tok}, exit
			}
			rest, _ := s.tokenizeNormalRange(line, i+2)
			return append([]Token{tok}, rest...), exit
		}
		i++
	}
	tok := Token{Type: TokenString, Start: stringStart, Length: len(line) - stringStart}
	return []Token{tok}, LineState{Kind: StateTemplateString, TemplateExpressionDepth: depth}
}

// tokenizeNormalRange scans line[start:] in the normal dispatch state,
// producing absolutely-positioned tokens, per the character-class
// table in §4.1.
func (s *spec) tokenizeNormalRange(line string, start int) ([]Token, LineState) {
	var tokens []Token
	pos := start
	n := len(line)

	for pos < n {
		r := decodeRuneAt(line, pos)

		switch {
		case isSpaceOrTab(r):
			end := scanWhile(line, pos, isSpaceOrTab)
			tokens = append(tokens, Token{Type: TokenWhitespace, Start: pos, Length: end - pos})
			pos = end

		case s.lineComment != "" && hasPrefixAt(line, pos, s.lineComment):
			tokens = append(tokens, Token{Type: TokenComment, Start: pos, Length: n - pos})
			pos = n

		case s.blockComment && hasPrefixAt(line, pos, "/*"):
			if idx := strings.Index(line[pos+2:], "*/"); idx >= 0 {
				end := pos + 2 + idx + 2
				tokens = append(tokens, Token{Type: TokenComment, Start: pos, Length: end - pos})
				pos = end
			} else {
				tokens = append(tokens, Token{Type: TokenComment, Start: pos, Length: n - pos})
				return tokens, LineState{Kind: StateBlockComment}
			}

		case s.tripleString && hasPrefixAt(line, pos, `"""`):
			toks, exit := s.scanTripleOpen(line, pos, QuoteDouble)
			return append(tokens, toks...), exit

		case s.tripleString && hasPrefixAt(line, pos, "'''"):
			toks, exit := s.scanTripleOpen(line, pos, QuoteSingle)
			return append(tokens, toks...), exit

		case s.templateString && line[pos] == '`':
			toks, exit := s.scanTemplateBody(line, pos, pos+1, 0)
			return append(tokens, toks...), exit

		case line[pos] == '"' || line[pos] == '\'':
			end, _ := scanEscapedQuoted(line, pos+1, line[pos])
			tokens = append(tokens, Token{Type: TokenString, Start: pos, Length: end - pos})
			pos = end

		case s.decorator && line[pos] == '@':
			pos = s.scanDecorator(line, pos, &tokens)

		case isDigit(r) || (r == '.' && pos+1 < n && isDigit(rune(line[pos+1]))):
			end := scanNumber(line, pos, s.allowOctal, s.allowBigIntSuffix, s.allowComplexSuffix)
			tokens = append(tokens, Token{Type: TokenNumber, Start: pos, Length: end - pos})
			pos = end

		case isIdentStart(r):
			end := scanIdentifier(line, pos)
			word := line[pos:end]
			typ := s.classify(word, line, end)
			tokens = append(tokens, Token{Type: typ, Start: pos, Length: end - pos})
			pos = end

		case isOperatorChar(r):
			end := scanWhile(line, pos, isOperatorChar)
			tokens = append(tokens, Token{Type: TokenOperator, Start: pos, Length: end - pos})
			pos = end

		case isPunctChar(r):
			tokens = append(tokens, Token{Type: TokenPunctuation, Start: pos, Length: 1})
			pos++

		default:
			rl := runeLenAt(line, pos)
			tokens = append(tokens, Token{Type: TokenUnknown, Start: pos, Length: rl})
			pos += rl
		}
	}

	return tokens, LineState{Kind: StateNormal}
}

func (s *spec) scanTripleOpen(line string, pos int, flavor QuoteFlavor) ([]Token, LineState) {
	quote := tripleQuoteFor(flavor)
	if idx := strings.Index(line[pos+len(quote):], quote); idx >= 0 {
		end := pos + len(quote) + idx + len(quote)
		tok := Token{Type: TokenString, Start: pos, Length: end - pos}
		if end == len(line) {
			return []Token{tok}, LineState{Kind: StateNormal}
		}
		rest, exit := s.tokenizeNormalRange(line, end)
		return append([]Token{tok}, rest...), exit
	}
	return []Token{{Type: TokenString, Start: pos, Length: len(line) - pos}},
		LineState{Kind: StateTripleString, TemplateExpressionDepth: int(flavor)}
}

// scanDecorator handles the Python "@decorator" rule: a one-character
// keyword, optional whitespace, then an identifier unconditionally
// tagged as function.
func (s *spec) scanDecorator(line string, pos int, tokens *[]Token) int {
	*tokens = append(*tokens, Token{Type: TokenKeyword, Start: pos, Length: 1})
	pos++
	if pos < len(line) && isSpaceOrTab(rune(line[pos])) {
		end := scanWhile(line, pos, isSpaceOrTab)
		*tokens = append(*tokens, Token{Type: TokenWhitespace, Start: pos, Length: end - pos})
		pos = end
	}
	if pos < len(line) && isIdentStart(decodeRuneAt(line, pos)) {
		end := scanIdentifier(line, pos)
		*tokens = append(*tokens, Token{Type: TokenFunction, Start: pos, Length: end - pos})
		pos = end
	}
	return pos
}

// classify resolves a scanned word's TokenType: keyword/builtin table
// lookup first (which also covers language constants such as
// true/false/None), then the function/class/identifier lookahead.
func (s *spec) classify(word string, line string, afterEnd int) TokenType {
	if typ, ok := s.keywords[word]; ok {
		return typ
	}
	return classifyWord(word, line, afterEnd)
}

func hasPrefixAt(line string, pos int, prefix string) bool {
	return pos+len(prefix) <= len(line) && line[pos:pos+len(prefix)] == prefix
}

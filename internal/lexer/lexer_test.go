package lexer

import (
	"strings"
	"testing"
)

// assertCoverage checks the closed-set invariant every tokenizer must
// satisfy: tokens are ordered, contiguous, and their spans sum exactly
// to the line's length, with zero overlap and zero gaps.
func assertCoverage(t *testing.T, line string, tokens []Token) {
	t.Helper()
	pos := 0
	for i, tok := range tokens {
		if tok.Length <= 0 {
			t.Fatalf("token %d has non-positive length: %+v", i, tok)
		}
		if tok.Start != pos {
			t.Fatalf("token %d starts at %d, want %d (line %q, tokens %+v)", i, tok.Start, pos, line, tokens)
		}
		pos = tok.End()
	}
	if pos != len(line) {
		t.Fatalf("tokens cover [0,%d), want [0,%d) for line %q (tokens %+v)", pos, len(line), line, tokens)
	}
}

func TestTokenizeCoverageAllLanguages(t *testing.T) {
	lines := []string{
		``,
		`   `,
		`hello world`,
		`const x = 42;`,
		`function foo(a, b) { return a + b; }`,
		`// a comment`,
		`/* block */ var y = 1;`,
		`let s = "a \"quoted\" string";`,
		"let t = `hello ${name}!`;",
		`def f(x):`,
		`    return x ** 2  # squared`,
		`class Foo(Bar):`,
		`@staticmethod`,
		`x = 0x1F + 0b101 + 0o17 + 1_000.5e-3`,
		`import foo.bar as baz`,
		`s = """triple"""`,
		`price: $12.50, 日本語 text`,
	}
	for _, lang := range []Language{Plaintext, JavaScript, TypeScript, Python} {
		for _, line := range lines {
			toks, _ := Tokenize(lang, line, Initial)
			assertCoverage(t, line, toks)
		}
	}
}

func TestPlaintextSingleSpanPerLine(t *testing.T) {
	cases := []struct {
		line string
		want TokenType
	}{
		{"const x = 42;", TokenIdentifier},
		{"   ", TokenWhitespace},
		{"\t  \t", TokenWhitespace},
		{"price: $12.50, 日本語 text", TokenIdentifier},
	}
	for _, c := range cases {
		toks, exit := Tokenize(Plaintext, c.line, Initial)
		if len(toks) != 1 {
			t.Fatalf("line %q: got %d tokens, want exactly 1: %+v", c.line, len(toks), toks)
		}
		if toks[0].Type != c.want {
			t.Fatalf("line %q: token type = %v, want %v", c.line, toks[0].Type, c.want)
		}
		if toks[0].Start != 0 || toks[0].Length != len(c.line) {
			t.Fatalf("line %q: token = %+v, want span [0,%d)", c.line, toks[0], len(c.line))
		}
		if !exit.Equal(Initial) {
			t.Fatalf("line %q: exit state = %+v, want entry state passed through unchanged", c.line, exit)
		}
	}

	toks, exit := Tokenize(Plaintext, "", Initial)
	if len(toks) != 0 {
		t.Fatalf("expected no tokens for an empty plaintext line, got %+v", toks)
	}
	if !exit.Equal(Initial) {
		t.Fatalf("expected empty plaintext line to pass entry state through unchanged, got %+v", exit)
	}
}

func TestTokenizeDeterministic(t *testing.T) {
	line := `const re = /not-a-regex/ + foo.bar(1, 2);`
	toks1, exit1 := Tokenize(JavaScript, line, Initial)
	toks2, exit2 := Tokenize(JavaScript, line, Initial)
	if !exit1.Equal(exit2) {
		t.Fatalf("exit state not deterministic: %+v vs %+v", exit1, exit2)
	}
	if len(toks1) != len(toks2) {
		t.Fatalf("token count not deterministic: %d vs %d", len(toks1), len(toks2))
	}
	for i := range toks1 {
		if toks1[i] != toks2[i] {
			t.Fatalf("token %d differs: %+v vs %+v", i, toks1[i], toks2[i])
		}
	}
}

func TestEmptyLine(t *testing.T) {
	toks, exit := Tokenize(JavaScript, "", Initial)
	if len(toks) != 0 {
		t.Fatalf("expected no tokens for empty line, got %+v", toks)
	}
	if !exit.Equal(Initial) {
		t.Fatalf("expected empty line to exit normal, got %+v", exit)
	}
}

func TestWhitespaceOnlyLine(t *testing.T) {
	toks, exit := Tokenize(Python, "    \t  ", Initial)
	if len(toks) != 1 || toks[0].Type != TokenWhitespace {
		t.Fatalf("expected a single whitespace token, got %+v", toks)
	}
	if !exit.Equal(Initial) {
		t.Fatalf("expected whitespace-only line to exit normal, got %+v", exit)
	}
}

// S1: a block comment opened on one line and continuing unterminated
// must propagate StateBlockComment to the next line, and the next
// line's entire text (until the closing "*/") is a single comment
// token.
func TestScenarioBlockCommentSpansLines(t *testing.T) {
	line1 := `/* this comment`
	toks1, exit1 := Tokenize(JavaScript, line1, Initial)
	assertCoverage(t, line1, toks1)
	if exit1.Kind != StateBlockComment {
		t.Fatalf("expected exit state block-comment, got %+v", exit1)
	}

	line2 := `   keeps going`
	toks2, exit2 := Tokenize(JavaScript, line2, exit1)
	assertCoverage(t, line2, toks2)
	if len(toks2) != 1 || toks2[0].Type != TokenComment {
		t.Fatalf("expected whole unterminated continuation line as one comment token, got %+v", toks2)
	}
	if exit2.Kind != StateBlockComment {
		t.Fatalf("expected still inside block comment, got %+v", exit2)
	}

	// S3: the block comment is finally closed, and the remaining text on
	// that line resumes normal tokenization.
	line3 := `still here */ var done = true;`
	toks3, exit3 := Tokenize(JavaScript, line3, exit2)
	assertCoverage(t, line3, toks3)
	if !exit3.Equal(Initial) {
		t.Fatalf("expected exit state normal after closing comment, got %+v", exit3)
	}
	foundKeyword := false
	for _, tok := range toks3 {
		if tok.Type == TokenKeyword {
			foundKeyword = true
		}
	}
	if !foundKeyword {
		t.Fatalf("expected a keyword token after the comment closes, got %+v", toks3)
	}
}

// S4: a Python triple-quoted string spans multiple lines, correctly
// tracking which quote flavor opened it.
func TestScenarioTripleQuotedStringSpansLines(t *testing.T) {
	line1 := `doc = """first line`
	toks1, exit1 := Tokenize(Python, line1, Initial)
	assertCoverage(t, line1, toks1)
	if exit1.Kind != StateTripleString || QuoteFlavor(exit1.TemplateExpressionDepth) != QuoteDouble {
		t.Fatalf("expected triple-string/double exit state, got %+v", exit1)
	}

	line2 := `middle line, nothing special`
	toks2, exit2 := Tokenize(Python, line2, exit1)
	assertCoverage(t, line2, toks2)
	if len(toks2) != 1 || toks2[0].Type != TokenString {
		t.Fatalf("expected whole continuation line as one string token, got %+v", toks2)
	}
	if exit2.Kind != StateTripleString {
		t.Fatalf("expected still inside triple string, got %+v", exit2)
	}

	line3 := `end""" + suffix_call()`
	toks3, exit3 := Tokenize(Python, line3, exit2)
	assertCoverage(t, line3, toks3)
	if !exit3.Equal(Initial) {
		t.Fatalf("expected exit state normal after closing triple string, got %+v", exit3)
	}

	// A single-quote triple string closed on the same line exits normal.
	line4 := `doc2 = '''starts single'''`
	_, exit4 := Tokenize(Python, line4, Initial)
	if !exit4.Equal(Initial) {
		t.Fatalf("expected a same-line closed triple string to exit normal, got %+v", exit4)
	}
}

// §9.1: an unclosed template expression forces the exit state to
// template-string with an incremented depth, even though the depth
// itself is never consulted by later scanning — preserved bug-for-bug.
func TestTemplateExpressionDepthBumpedButUnused(t *testing.T) {
	line := "const greeting = `hi ${name";
	toks, exit := Tokenize(JavaScript, line, Initial)
	assertCoverage(t, line, toks)
	if exit.Kind != StateTemplateString {
		t.Fatalf("expected template-string exit state, got %+v", exit)
	}
	if exit.TemplateExpressionDepth != 1 {
		t.Fatalf("expected depth 1 after one unclosed ${, got %+v", exit)
	}

	// Re-entering with a stale, deeper depth behaves identically to
	// depth 1: the scanner only ever searches for a backtick or another
	// "${", it never consults the depth to change behavior.
	staleEntry := LineState{Kind: StateTemplateString, TemplateExpressionDepth: 99}
	line2 := "}` done"
	toks2, exit2 := Tokenize(JavaScript, line2, staleEntry)
	assertCoverage(t, line2, toks2)
	if !exit2.Equal(Initial) {
		t.Fatalf("expected closing backtick to exit normal regardless of stale depth, got %+v", exit2)
	}
}

// The backtick closes on this line, but the "${" before it still forces
// the exit state to template-string with depth 1, the same preserved
// behavior TestTemplateExpressionDepthBumpedButUnused locks in.
func TestTemplateStringClosesOnSameLine(t *testing.T) {
	line := "let x = `hello ${name}!` + 1;"
	toks, exit := Tokenize(JavaScript, line, Initial)
	assertCoverage(t, line, toks)
	if exit.Kind != StateTemplateString || exit.TemplateExpressionDepth != 1 {
		t.Fatalf("expected exit state template-string with depth 1, got %+v", exit)
	}
}

func TestUnterminatedStringExitsNormal(t *testing.T) {
	line := `let s = "never closed`
	toks, exit := Tokenize(JavaScript, line, Initial)
	assertCoverage(t, line, toks)
	if !exit.Equal(Initial) {
		t.Fatalf("expected unterminated quoted string to still exit normal, got %+v", exit)
	}
	last := toks[len(toks)-1]
	if last.Type != TokenString || last.End() != len(line) {
		t.Fatalf("expected the unterminated string to run to end of line, got %+v", last)
	}
}

func TestFunctionClassIdentifierLookahead(t *testing.T) {
	line := `Widget foo() bar`
	toks, _ := Tokenize(JavaScript, line, Initial)
	var got []TokenType
	for _, tok := range toks {
		if tok.Type != TokenWhitespace {
			got = append(got, tok.Type)
		}
	}
	want := []TokenType{TokenClass, TokenFunction, TokenPunctuation, TokenPunctuation, TokenIdentifier}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestPythonDecorator(t *testing.T) {
	line := `@app.route("/")`
	toks, _ := Tokenize(Python, line, Initial)
	assertCoverage(t, line, toks)
	if toks[0].Type != TokenKeyword || toks[0].Length != 1 {
		t.Fatalf("expected '@' as a one-length keyword token, got %+v", toks[0])
	}
	if toks[1].Type != TokenFunction {
		t.Fatalf("expected decorator name classified as function, got %+v", toks[1])
	}
}

func TestKeywordConstantClassification(t *testing.T) {
	for _, tc := range []struct {
		lang Language
		word string
		want TokenType
	}{
		{JavaScript, "true", TokenConstant},
		{JavaScript, "undefined", TokenConstant},
		{JavaScript, "function", TokenKeyword},
		{TypeScript, "interface", TokenKeyword},
		{TypeScript, "satisfies", TokenKeyword},
		{Python, "True", TokenConstant},
		{Python, "None", TokenConstant},
		{Python, "lambda", TokenKeyword},
	} {
		toks, _ := Tokenize(tc.lang, tc.word, Initial)
		if len(toks) != 1 || toks[0].Type != tc.want {
			t.Fatalf("%s %q: got %+v, want single token of type %v", tc.lang, tc.word, toks, tc.want)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	for _, tc := range []struct {
		lang Language
		text string
	}{
		{JavaScript, "0x1F"},
		{JavaScript, "0b101"},
		{JavaScript, "1_000.5e-3"},
		{JavaScript, "123n"},
		{Python, "0o17"},
		{Python, "3.14j"},
	} {
		toks, _ := Tokenize(tc.lang, tc.text, Initial)
		if len(toks) != 1 || toks[0].Type != TokenNumber || toks[0].Length != len(tc.text) {
			t.Fatalf("%s %q: got %+v, want a single number token spanning the whole literal", tc.lang, tc.text, toks)
		}
	}
}

func TestLineCommentStyles(t *testing.T) {
	toks, _ := Tokenize(JavaScript, `x; // trailing`, Initial)
	if toks[len(toks)-1].Type != TokenComment {
		t.Fatalf("expected trailing // comment, got %+v", toks)
	}
	toks, _ = Tokenize(Python, `x = 1  # trailing`, Initial)
	if toks[len(toks)-1].Type != TokenComment {
		t.Fatalf("expected trailing # comment, got %+v", toks)
	}
}

func TestLanguageByName(t *testing.T) {
	for name, want := range map[string]Language{
		"plaintext":  Plaintext,
		"javascript": JavaScript,
		"typescript": TypeScript,
		"python":     Python,
	} {
		got, ok := LanguageByName(name)
		if !ok || got != want {
			t.Fatalf("LanguageByName(%q) = (%v, %v), want (%v, true)", name, got, ok, want)
		}
	}
	if _, ok := LanguageByName("cobol"); ok {
		t.Fatalf("expected unrecognized language name to report false")
	}
}

func TestUnicodeLineCoverage(t *testing.T) {
	line := `名前 = "こんにちは" // 挨拶`
	toks, _ := Tokenize(JavaScript, line, Initial)
	assertCoverage(t, line, toks)
}

func TestLongSyntheticLineCoverage(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("identifier_")
		b.WriteString(strings.Repeat("x", i%5))
		b.WriteString(" + 1; ")
	}
	line := b.String()
	toks, _ := Tokenize(JavaScript, line, Initial)
	assertCoverage(t, line, toks)
}

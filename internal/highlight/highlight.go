// Package highlight implements the document highlight cache: an
// ordered, per-line record of tokenizations that tracks an evolving
// text buffer and keeps each line's tokens and lexical state in sync
// with its neighbors, re-tokenizing the smallest suffix an edit can
// possibly have disturbed.
package highlight

import "github.com/maple-editor/tokenize/internal/lexer"

// LineHighlight is the cached tokenization record for a single line:
// its tokens, and the lexical state it was entered and exited with.
// ExitState is always equal to the next line's EntryState in a
// consistent DocumentHighlightState — that equality is the cache's
// central chain invariant.
type LineHighlight struct {
	Tokens     []lexer.Token
	EntryState lexer.LineState
	ExitState  lexer.LineState
}

// DocumentHighlightState holds the full, ordered tokenization of a
// document: one LineHighlight per line, plus the language it was
// tokenized under and a monotonic version bumped on every mutation.
type DocumentHighlightState struct {
	Language lexer.Language
	Lines    []LineHighlight
	Version  uint64
}

// Init computes a DocumentHighlightState from scratch: every line is
// tokenized in order, each one entering in the previous line's exit
// state (the first line always enters in lexer.Initial).
func Init(lang lexer.Language, lines []string) *DocumentHighlightState {
	d := &DocumentHighlightState{Language: lang, Lines: make([]LineHighlight, 0, len(lines))}
	entry := lexer.Initial
	for _, text := range lines {
		toks, exit := lexer.Tokenize(lang, text, entry)
		d.Lines = append(d.Lines, LineHighlight{Tokens: toks, EntryState: entry, ExitState: exit})
		entry = exit
	}
	return d
}

// Reinit replaces the state in place with a full Init, bumping the
// version. It is used on a language change or any other event that
// invalidates the entire cache rather than a bounded suffix of it.
func (d *DocumentHighlightState) Reinit(lang lexer.Language, lines []string) {
	fresh := Init(lang, lines)
	d.Language = fresh.Language
	d.Lines = fresh.Lines
	d.Version++
}

// Update re-tokenizes lines starting at changedFromLine (1-indexed,
// the first line an edit could have affected) through the end of the
// document, propagating lexical state forward line by line. It stops
// early — the defining optimization of this cache — as soon as a
// recomputed line's exit state matches the exit state already on
// record for that same line index and the document's line count has
// not changed, since every line beyond that point must still enter in
// the same state it did before and so is guaranteed to retokenize
// identically.
//
// changedFromLine values less than 1 are treated as 1 (retokenize
// everything); values past the end of the document are a no-op aside
// from trimming or extending to lines' new length.
func (d *DocumentHighlightState) Update(lines []string, changedFromLine int) {
	if changedFromLine < 1 {
		changedFromLine = 1
	}
	start := changedFromLine - 1
	if start > len(d.Lines) {
		start = len(d.Lines)
	}
	if start > len(lines) {
		start = len(lines)
	}

	sameLength := len(lines) == len(d.Lines)

	entry := lexer.Initial
	if start > 0 {
		entry = d.Lines[start-1].ExitState
	}

	result := make([]LineHighlight, start, len(lines))
	copy(result, d.Lines[:start])

	i := start
	for i < len(lines) {
		toks, exit := lexer.Tokenize(d.Language, lines[i], entry)
		result = append(result, LineHighlight{Tokens: toks, EntryState: entry, ExitState: exit})

		if sameLength && i < len(d.Lines) && exit.Equal(d.Lines[i].ExitState) {
			result = append(result, d.Lines[i+1:]...)
			i = len(lines)
			break
		}
		entry = exit
		i++
	}

	d.Lines = result
	d.Version++
}

// Tokens returns the cached tokens for a line, or nil if the line is
// out of range. It never triggers tokenization; it is a pure read of
// whatever is already cached.
func (d *DocumentHighlightState) Tokens(line int) []lexer.Token {
	if line < 0 || line >= len(d.Lines) {
		return nil
	}
	return d.Lines[line].Tokens
}

// LineCount returns the number of lines currently tracked.
func (d *DocumentHighlightState) LineCount() int {
	return len(d.Lines)
}

// Stats is a diagnostic snapshot exposed for tests;
// it carries no weight in any correctness invariant.
type Stats struct {
	LineCount int
	Version   uint64
	Language  lexer.Language
}

// Stats returns a snapshot of the cache's current size and version.
func (d *DocumentHighlightState) Stats() Stats {
	return Stats{LineCount: len(d.Lines), Version: d.Version, Language: d.Language}
}

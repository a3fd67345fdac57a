// Package driver implements the tokenizer driver: the facade a text
// editor's rendering layer talks to. It owns the decision of whether
// a document is small enough to tokenize in-process or large enough
// to hand off to a background execution context, and it hides that
// choice entirely from callers — GetTokens returns the same thing
// either way.
package driver

import (
	"sync"

	"github.com/google/uuid"

	"github.com/maple-editor/tokenize/internal/highlight"
	"github.com/maple-editor/tokenize/internal/lexer"
	"github.com/maple-editor/tokenize/internal/worker"
)

// Accessors are the construction-time hooks the driver pulls a
// document's current state from. The driver never holds a reference
// to a text buffer itself — it only ever asks these functions.
type Accessors struct {
	// Language returns the document's current language.
	Language func() lexer.Language
	// LineCount returns the document's current line count.
	LineCount func() int
	// Line returns the text of the given 0-indexed line.
	Line func(i int) string
	// Version returns a counter that increases every time the
	// document's text changes.
	Version func() uint64
	// ChangedFromLine returns the 1-indexed first line an edit since
	// the last observed version could have affected. A driver that
	// cannot determine this precisely should return 1.
	ChangedFromLine func() int
}

func (a Accessors) lines() []string {
	n := a.LineCount()
	out := make([]string, n)
	for i := 0; i < n; i++ {
		out[i] = a.Line(i)
	}
	return out
}

// mode records whether the driver is currently tokenizing in-process
// or through the offload transport.
type mode uint8

const (
	modeInProcess mode = iota
	modeOffload
)

// Driver is the tokenizer driver facade described above.
type Driver struct {
	mu sync.Mutex

	id        uuid.UUID
	accessors Accessors
	threshold int
	logger    Logger

	mode      mode
	state     *highlight.DocumentHighlightState
	transport *worker.Transport

	lastSentVersion uint64
	lastLanguage    lexer.Language

	ready         bool
	readyCallback func()
	disposed      bool
}

// Option configures a Driver at construction time.
type Option func(*Driver)

// WithLogger overrides the driver's default stdlib-backed logger.
func WithLogger(l Logger) Option {
	return func(d *Driver) { d.logger = l }
}

// WithWorkerThreshold sets the line count past which New offloads
// tokenization to a background context.
func WithWorkerThreshold(n int) Option {
	return func(d *Driver) { d.threshold = n }
}

// New constructs a Driver and performs its first, full tokenization
// synchronously if the document is small, or kicks off an offload
// init if it is not.
func New(accessors Accessors, opts ...Option) *Driver {
	d := &Driver{
		id:        uuid.New(),
		accessors: accessors,
		threshold: 1000,
		logger:    stdLogger{},
	}
	for _, opt := range opts {
		opt(d)
	}
	d.fullInit()
	return d
}

// SetWorkerThreshold changes the line-count threshold used to choose
// between in-process and offload tokenization. It takes effect on the
// next full re-init (a language change, or the next construction);
// it does not itself migrate an already-running document between
// modes.
func (d *Driver) SetWorkerThreshold(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.threshold = n
}

// GetTokens returns the cached tokens for a line, addressed
// 1-indexed to match the driver's external interface. It returns nil
// if the driver is not ready yet or the line is out of range; it
// never blocks waiting for tokenization to complete.
func (d *Driver) GetTokens(lineNumber int) []lexer.Token {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.ready || d.state == nil {
		return nil
	}
	return d.state.Tokens(lineNumber - 1)
}

// IsReady reports whether the driver has a complete tokenization
// available to read from.
func (d *Driver) IsReady() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.ready
}

// OnReady registers a callback invoked each time a full init
// completes — the first one, and any later one triggered by a
// language change or an offload failure fallback — and when an
// offload update makes a not-yet-ready driver ready. Incremental
// updates on an already-ready driver do not invoke it. Only the most
// recently registered callback is kept.
func (d *Driver) OnReady(cb func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readyCallback = cb
}

// NotifyEdit tells the driver the underlying document has changed.
// It reads accessors.Version to decide whether anything happened at
// all, accessors.Language to decide whether a full re-init is needed,
// and otherwise drives an incremental update from
// accessors.ChangedFromLine.
func (d *Driver) NotifyEdit() {
	d.mu.Lock()
	if d.disposed {
		d.mu.Unlock()
		return
	}
	version := d.accessors.Version()
	lang := d.accessors.Language()
	languageChanged := lang != d.lastLanguage
	unchanged := !languageChanged && d.ready && version == d.lastSentVersion
	d.mu.Unlock()

	if unchanged {
		return
	}
	if languageChanged || !d.ready {
		d.fullInit()
		return
	}
	d.incrementalUpdate(version)
}

// Dispose releases the driver's background context, if any. It is
// idempotent: a second call is a no-op.
func (d *Driver) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return
	}
	d.disposed = true
	if d.transport != nil {
		d.transport.Dispose()
		d.transport = nil
	}
}

func (d *Driver) fullInit() {
	d.mu.Lock()
	lang := d.accessors.Language()
	lineCount := d.accessors.LineCount()
	version := d.accessors.Version()
	offload := lineCount > d.threshold
	d.mu.Unlock()

	if offload {
		d.startOffload(lang, version)
		return
	}

	lines := d.accessors.lines()
	state := highlight.Init(lang, lines)

	d.mu.Lock()
	d.mode = modeInProcess
	d.state = state
	d.lastLanguage = lang
	d.lastSentVersion = version
	d.ready = true
	d.logger.Printf("tokenizer driver %s: full init in-process, %d lines, language=%s", d.id, lineCount, lang)
	cb := d.readyCallback
	d.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (d *Driver) startOffload(lang lexer.Language, version uint64) {
	d.mu.Lock()
	if d.transport == nil {
		d.transport = worker.NewTransport()
		go d.pump(d.transport)
	}
	d.mode = modeOffload
	d.lastLanguage = lang
	d.lastSentVersion = version
	d.ready = false
	tr := d.transport
	lines := d.accessors.lines()
	lineCount := len(lines)
	d.logger.Printf("tokenizer driver %s: offloading full init, %d lines, language=%s", d.id, lineCount, lang)
	d.mu.Unlock()

	tr.Send(worker.Request{Kind: worker.RequestInit, Version: version, Language: lang, Lines: lines})
}

func (d *Driver) incrementalUpdate(version uint64) {
	d.mu.Lock()
	lang := d.accessors.Language()
	changedFrom := d.accessors.ChangedFromLine()
	if changedFrom < 1 {
		changedFrom = 1
	}
	currentMode := d.mode
	d.mu.Unlock()

	if currentMode == modeOffload {
		d.mu.Lock()
		tr := d.transport
		lines := d.accessors.lines()
		d.lastSentVersion = version
		d.mu.Unlock()
		if tr != nil {
			tr.Send(worker.Request{Kind: worker.RequestUpdate, Version: version, Language: lang, Lines: lines, ChangedFromLine: changedFrom})
		}
		return
	}

	lines := d.accessors.lines()
	d.mu.Lock()
	d.state.Update(lines, changedFrom)
	d.lastSentVersion = version
	d.mu.Unlock()
}

// pump applies responses from the background context, dropping any
// response whose version does not match the most recently sent
// request's version — the monotonic-version filter that stands in
// for cancellation.
func (d *Driver) pump(tr *worker.Transport) {
	for resp := range tr.Responses() {
		d.mu.Lock()
		if d.disposed || resp.Version != d.lastSentVersion {
			d.mu.Unlock()
			continue
		}

		switch resp.Kind {
		case worker.ResponseInitComplete:
			d.state = &highlight.DocumentHighlightState{Language: d.lastLanguage, Lines: resp.Lines, Version: resp.Version}
			d.ready = true
			cb := d.readyCallback
			d.mu.Unlock()
			if cb != nil {
				cb()
			}

		case worker.ResponseUpdateComplete:
			// resp.Lines is only the suffix starting at
			// resp.ChangedFromLine; splice it into the cached lines
			// rather than treating it as the whole document.
			if d.state == nil {
				d.state = &highlight.DocumentHighlightState{Language: d.lastLanguage, Lines: resp.Lines, Version: resp.Version}
			} else {
				start := resp.ChangedFromLine - 1
				if start < 0 {
					start = 0
				}
				if start > len(d.state.Lines) {
					start = len(d.state.Lines)
				}
				d.state.Lines = append(d.state.Lines[:start:start], resp.Lines...)
				d.state.Version = resp.Version
			}
			wasReady := d.ready
			d.ready = true
			cb := d.readyCallback
			d.mu.Unlock()
			if cb != nil && !wasReady {
				cb()
			}

		case worker.ResponseError:
			d.logger.Printf("tokenizer driver %s: offload error %v, falling back to in-process", d.id, resp.Err)
			d.mode = modeInProcess
			failed := d.transport
			d.transport = nil
			lang := d.accessors.Language()
			version := d.accessors.Version()
			d.mu.Unlock()
			failed.Dispose()
			state := highlight.Init(lang, d.accessors.lines())
			d.mu.Lock()
			d.state = state
			d.lastLanguage = lang
			d.lastSentVersion = version
			d.ready = true
			cb := d.readyCallback
			d.mu.Unlock()
			if cb != nil {
				cb()
			}
		}
	}
}

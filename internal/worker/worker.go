// Package worker implements the offload transport: a background
// execution context for tokenizing large documents without blocking
// whatever owns the driver. It is modeled directly on a request/
// response transport that exchanges plain value messages over a pair
// of channels instead of framed bytes over a pipe — the same
// init/update/dispose vocabulary, the same notion of a response
// carrying the version it answers, and the same rule that a response
// for a version older than the most recently sent request is stale
// and must be dropped rather than applied.
package worker

import (
	"sync"

	"github.com/maple-editor/tokenize/internal/highlight"
	"github.com/maple-editor/tokenize/internal/lexer"
)

// RequestKind distinguishes the three messages the driver ever sends
// into the background context.
type RequestKind uint8

const (
	RequestInit RequestKind = iota
	RequestUpdate
	RequestDispose
)

// Request is a value message sent to the background context. Lines is
// always the full current document text; ChangedFromLine is only
// meaningful for RequestUpdate.
type Request struct {
	Kind            RequestKind
	Version         uint64
	Language        lexer.Language
	Lines           []string
	ChangedFromLine int
}

// ResponseKind distinguishes the messages the background context
// sends back.
type ResponseKind uint8

const (
	ResponseInitComplete ResponseKind = iota
	ResponseUpdateComplete
	ResponseError
)

// Response is a value message sent back from the background context.
// Version echoes the Request.Version it answers, the detail a caller
// needs to recognize and drop a stale response. For ResponseUpdateComplete,
// Lines is only the suffix starting at ChangedFromLine, not the full
// document — the caller splices it into its own cache. For
// ResponseInitComplete, Lines is the full new sequence and
// ChangedFromLine is meaningless.
type Response struct {
	Kind            ResponseKind
	Version         uint64
	ChangedFromLine int
	Lines           []highlight.LineHighlight
	Err             error
}

// Transport runs document tokenization on a dedicated goroutine,
// communicating only through Request and Response value messages —
// no memory is shared between the caller and the background context
// beyond the channels themselves. sendMu guards Send against racing
// Dispose's channel close: a caller that loses that race gets a
// silent no-op instead of a send-on-closed-channel panic, since a
// request arriving after disposal has nothing left to answer it
// anyway.
type Transport struct {
	sendMu   sync.Mutex
	disposed bool

	requests  chan Request
	responses chan Response
}

// NewTransport starts the background context and returns a Transport
// ready to accept requests.
func NewTransport() *Transport {
	t := &Transport{
		requests:  make(chan Request, 4),
		responses: make(chan Response, 4),
	}
	go t.run()
	return t
}

// Send enqueues a request for the background context. It never
// blocks the caller on the background context's progress beyond
// filling the request channel's buffer. It is a no-op once Dispose
// has been called.
func (t *Transport) Send(req Request) {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	if t.disposed {
		return
	}
	t.requests <- req
}

// Responses returns the channel the background context's responses
// arrive on.
func (t *Transport) Responses() <-chan Response {
	return t.responses
}

// Dispose sends a disposal request and stops accepting further
// requests. It is idempotent: a second call is a no-op.
func (t *Transport) Dispose() {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	if t.disposed {
		return
	}
	t.disposed = true
	t.requests <- Request{Kind: RequestDispose}
	close(t.requests)
}

func (t *Transport) run() {
	defer close(t.responses)

	var state *highlight.DocumentHighlightState

	for req := range t.requests {
		switch req.Kind {
		case RequestInit:
			state = highlight.Init(req.Language, req.Lines)
			t.responses <- Response{
				Kind:    ResponseInitComplete,
				Version: req.Version,
				Lines:   snapshot(state),
			}

		case RequestUpdate:
			if state == nil {
				t.responses <- Response{Kind: ResponseError, Version: req.Version, Err: ErrNotInitialized}
				continue
			}
			if req.Language != state.Language {
				// The background's language no longer matches the
				// document's: reconstruct from the full lines the
				// request already carries and reply as a fresh init
				// rather than an incremental update.
				state = highlight.Init(req.Language, req.Lines)
				t.responses <- Response{
					Kind:    ResponseInitComplete,
					Version: req.Version,
					Lines:   snapshot(state),
				}
				continue
			}
			state.Update(req.Lines, req.ChangedFromLine)
			t.responses <- Response{
				Kind:            ResponseUpdateComplete,
				Version:         req.Version,
				ChangedFromLine: req.ChangedFromLine,
				Lines:           snapshotFrom(state, req.ChangedFromLine),
			}

		case RequestDispose:
			return
		}
	}
}

func snapshot(state *highlight.DocumentHighlightState) []highlight.LineHighlight {
	out := make([]highlight.LineHighlight, len(state.Lines))
	copy(out, state.Lines)
	return out
}

// snapshotFrom returns the suffix of state.Lines starting at the
// 1-indexed changedFromLine, clamped to the slice's bounds.
func snapshotFrom(state *highlight.DocumentHighlightState, changedFromLine int) []highlight.LineHighlight {
	start := changedFromLine - 1
	if start < 0 {
		start = 0
	}
	if start > len(state.Lines) {
		start = len(state.Lines)
	}
	out := make([]highlight.LineHighlight, len(state.Lines)-start)
	copy(out, state.Lines[start:])
	return out
}

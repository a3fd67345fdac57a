package driver

import "log"

// Logger is the minimal logging surface the driver needs: mode
// transitions and offload failures are worth a line in whatever log
// the embedder already has, nothing more structured than that.
type Logger interface {
	Printf(format string, args ...any)
}

// stdLogger backs a Driver that was not given an explicit Logger. The
// standard library's log package is the only logging this module
// pulls in; see the design notes for why no structured-logging
// library was wired in for it.
type stdLogger struct{}

func (stdLogger) Printf(format string, args ...any) {
	log.Printf(format, args...)
}

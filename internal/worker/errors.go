package worker

import "errors"

// ErrNotInitialized is returned (via a Response, never a panic) when
// an update is sent to a background context that has not completed an
// init request yet.
var ErrNotInitialized = errors.New("worker: update requested before init")

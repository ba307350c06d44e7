package eventlog

import "errors"

// Sentinel kinds for event log errors.
var (
	ErrLogNotFound     = errors.New("event log not found")
	ErrMalformedRecord = errors.New("malformed event record")
	ErrClosed          = errors.New("recorder closed")
)

package virtualdrive

import "errors"

var (
	// ErrMalformedRequest indicates a write request that is not a JSON object
	// with a "payload" list of controllers.
	ErrMalformedRequest = errors.New("virtualdrive: malformed write request")

	// ErrAlreadyStarted indicates Start was called twice.
	ErrAlreadyStarted = errors.New("virtualdrive: already started")
)

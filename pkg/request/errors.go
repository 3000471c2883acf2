package request

import "errors"

var (
	// ErrInternalServer is the error returned to a client when a handler panics.
	ErrInternalServer = errors.New("internal server error")
)

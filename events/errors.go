package events

import "errors"

var (
	// ErrInvalidType indicates an event with an unknown type.
	ErrInvalidType = errors.New("events: invalid event type")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("events: nil parameter")
)

package countdown

import "errors"

// Sentinel errors for countdown transitions.
var (
	ErrZeroDuration    = errors.New("duration must be greater than zero")
	ErrSessionActive   = errors.New("a countdown session is already active")
	ErrInvalidDuration = errors.New("minutes and seconds must be within 0..59")
)

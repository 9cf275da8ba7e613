package ticker

import "time"

// Timer is a pending scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks. Tests swap in a manual implementation.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the Clock backed by the time package.
//
//nolint:gochecknoglobals // Stateless default implementation.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

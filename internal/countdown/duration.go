package countdown

import (
	"fmt"

	"github.com/ensigniasec/countdown/internal/validate"
)

const (
	secondsPerMinute = 60
	// FieldMax is the largest value either picker column can hold.
	FieldMax = 59
)

// Duration is a minutes/seconds pair as chosen in the selector.
type Duration struct {
	Minutes int `json:"minutes" yaml:"minutes" validate:"min=0,max=59"`
	Seconds int `json:"seconds" yaml:"seconds" validate:"min=0,max=59"`
}

// TotalSeconds returns Minutes*60 + Seconds.
func (d Duration) TotalSeconds() int {
	return d.Minutes*secondsPerMinute + d.Seconds
}

// IsZero reports whether the duration adds up to no time at all.
func (d Duration) IsZero() bool {
	return d.TotalSeconds() == 0
}

// Validate checks both fields against the picker range.
func (d Duration) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %d:%d", ErrInvalidDuration, d.Minutes, d.Seconds)
	}
	return nil
}

func (d Duration) String() string {
	return FormatClock(d.TotalSeconds())
}

// DurationFromSeconds splits a total back into minutes and seconds.
func DurationFromSeconds(total int) Duration {
	if total < 0 {
		total = 0
	}
	return Duration{Minutes: total / secondsPerMinute, Seconds: total % secondsPerMinute}
}

// FormatClock renders seconds as zero-padded MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/secondsPerMinute, seconds%secondsPerMinute)
}

// Field identifies one selector column.
type Field int

const (
	FieldMinutes Field = iota
	FieldSeconds
)

func (f Field) String() string {
	if f == FieldSeconds {
		return "seconds"
	}
	return "minutes"
}

// Selector holds the pre-start duration. It stores whatever it is given;
// range enforcement is the job of the input feeding it.
type Selector struct {
	value    Duration
	onChange func(Duration)
}

// NewSelector returns a selector preset to d.
func NewSelector(d Duration) *Selector {
	return &Selector{value: d}
}

// Duration returns the currently selected value.
func (s *Selector) Duration() Duration {
	return s.value
}

// OnChange registers a callback fired after every change.
func (s *Selector) OnChange(fn func(Duration)) {
	s.onChange = fn
}

func (s *Selector) SetMinutes(m int) {
	s.value.Minutes = m
	s.notify()
}

func (s *Selector) SetSeconds(sec int) {
	s.value.Seconds = sec
	s.notify()
}

// Set replaces both fields at once.
func (s *Selector) Set(d Duration) {
	s.value = d
	s.notify()
}

// Increment steps a field up by one, wrapping 59 back to 0.
func (s *Selector) Increment(f Field) {
	s.step(f, 1)
}

// Decrement steps a field down by one, wrapping 0 around to 59.
func (s *Selector) Decrement(f Field) {
	s.step(f, -1)
}

func (s *Selector) step(f Field, delta int) {
	span := FieldMax + 1
	switch f {
	case FieldMinutes:
		s.SetMinutes(((s.value.Minutes+delta)%span + span) % span)
	case FieldSeconds:
		s.SetSeconds(((s.value.Seconds+delta)%span + span) % span)
	}
}

func (s *Selector) notify() {
	if s.onChange != nil {
		s.onChange(s.value)
	}
}

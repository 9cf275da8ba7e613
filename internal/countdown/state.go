package countdown

// Phase is the lifecycle position of a countdown session.
type Phase int

const (
	Idle Phase = iota
	Running
	Paused
	Expired
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Expired:
		return "expired"
	default:
		return "idle"
	}
}

// State is an immutable snapshot of one session's time accounting.
// Transitions return a new State and never modify the receiver.
type State struct {
	Total     int
	Remaining int
	Phase     Phase
}

// Begin creates a running state for a countdown of total seconds.
func Begin(total int) (State, error) {
	if total <= 0 {
		return State{}, ErrZeroDuration
	}
	return State{Total: total, Remaining: total, Phase: Running}, nil
}

// Tick applies one elapsed second. The bool is true exactly when this tick
// moved the state into Expired. Ticks outside Running change nothing.
func (s State) Tick() (State, bool) {
	if s.Phase != Running {
		return s, false
	}
	if s.Remaining <= 1 {
		s.Remaining = 0
		s.Phase = Expired
		return s, true
	}
	s.Remaining--
	return s, false
}

// TogglePause flips between Running and Paused.
func (s State) TogglePause() State {
	switch s.Phase {
	case Running:
		s.Phase = Paused
	case Paused:
		s.Phase = Running
	}
	return s
}

// Percent is the remaining fraction of the session in [0,100].
func (s State) Percent() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Remaining) / float64(s.Total) * 100
}

// Clock renders the remaining time as MM:SS.
func (s State) Clock() string {
	return FormatClock(s.Remaining)
}

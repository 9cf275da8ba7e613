package countdown

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Token identifies one uninterrupted stretch of Running. A tick scheduled
// with a token that is no longer current must be dropped.
type Token uint64

// NoToken is never issued to a running session.
const NoToken Token = 0

// Event is what a tick did to the coordinator.
type Event int

const (
	EventNone Event = iota
	EventTicked
	EventExpired
)

// Reason explains why a session ended.
type Reason int

const (
	ReasonUser Reason = iota
	ReasonExpired
)

func (r Reason) String() string {
	if r == ReasonExpired {
		return "expired"
	}
	return "reset"
}

// Outcome is delivered to reset observers when a session is torn down.
type Outcome struct {
	SessionID string
	Reason    Reason
	Duration  Duration
	Remaining int
	EndedAt   time.Time
}

// Session is one countdown run from start to reset or expiry.
type Session struct {
	ID        string
	StartedAt time.Time
	State     State
	token     Token
}

// Snapshot is a read-only view for renderers.
type Snapshot struct {
	Active      bool
	SessionID   string
	Phase       Phase
	Remaining   int
	Total       int
	Percent     float64
	Clock       string
	Selection   Duration
	CanStart    bool
	LastOutcome *Outcome
}

// Coordinator owns the selector and at most one active session.
// It is not safe for concurrent use; drivers serialize calls.
type Coordinator struct {
	selector *Selector
	captured Duration
	session  *Session
	next     Token
	last     *Outcome
	onReset  []func(Outcome)
	now      func() time.Time
	log      *logrus.Entry
}

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithLogger routes transition logs to the given entry.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Coordinator) { c.log = l }
}

// WithNow overrides the wall clock used for timestamps.
func WithNow(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// NewCoordinator returns a coordinator whose selector starts at initial.
func NewCoordinator(initial Duration, opts ...Option) *Coordinator {
	c := &Coordinator{
		selector: NewSelector(initial),
		now:      time.Now,
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Selector exposes the pre-start duration picker.
func (c *Coordinator) Selector() *Selector {
	return c.selector
}

// OnReset registers an observer for session teardown, whether by user or expiry.
func (c *Coordinator) OnReset(fn func(Outcome)) {
	c.onReset = append(c.onReset, fn)
}

// Active reports whether a session is in progress.
func (c *Coordinator) Active() bool {
	return c.session != nil
}

// Session returns a copy of the active session.
func (c *Coordinator) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Token returns the current tick token, or NoToken when not running.
func (c *Coordinator) Token() Token {
	if c.session == nil {
		return NoToken
	}
	return c.session.token
}

// CanStart gates the Start control.
func (c *Coordinator) CanStart() bool {
	return c.session == nil && !c.selector.Duration().IsZero()
}

// Start snapshots the selected duration and begins a running session.
func (c *Coordinator) Start() (Token, error) {
	if c.session != nil {
		return NoToken, ErrSessionActive
	}
	d := c.selector.Duration()
	st, err := Begin(d.TotalSeconds())
	if err != nil {
		return NoToken, err
	}
	c.captured = d
	c.session = &Session{
		ID:        uuid.NewString(),
		StartedAt: c.now(),
		State:     st,
		token:     c.issue(),
	}
	c.last = nil
	c.log.WithFields(logrus.Fields{"session": c.session.ID, "total": st.Total}).Debug("countdown started")
	return c.session.token, nil
}

// Tick applies one second if tok is the live token.
func (c *Coordinator) Tick(tok Token) Event {
	if c.session == nil || tok == NoToken || tok != c.session.token {
		c.log.WithField("token", tok).Debug("dropping stale tick")
		return EventNone
	}
	next, expired := c.session.State.Tick()
	c.session.State = next
	if !expired {
		return EventTicked
	}
	c.log.WithField("session", c.session.ID).Debug("countdown expired")
	c.teardown(ReasonExpired)
	return EventExpired
}

// TogglePause pauses or resumes the session. On resume it returns the
// freshly issued token and true so the caller can re-arm its ticker.
func (c *Coordinator) TogglePause() (Token, bool) {
	if c.session == nil {
		return NoToken, false
	}
	c.session.State = c.session.State.TogglePause()
	switch c.session.State.Phase {
	case Paused:
		c.session.token = NoToken
		c.log.WithFields(logrus.Fields{"session": c.session.ID, "remaining": c.session.State.Remaining}).Debug("countdown paused")
		return NoToken, false
	case Running:
		c.session.token = c.issue()
		c.log.WithFields(logrus.Fields{"session": c.session.ID, "remaining": c.session.State.Remaining}).Debug("countdown resumed")
		return c.session.token, true
	}
	return NoToken, false
}

// Reset tears down the session from any state and restores the selector to
// the duration captured at Start.
func (c *Coordinator) Reset() {
	if c.session == nil {
		return
	}
	c.log.WithField("session", c.session.ID).Debug("countdown reset")
	c.teardown(ReasonUser)
}

// LastOutcome returns how the previous session ended.
func (c *Coordinator) LastOutcome() (Outcome, bool) {
	if c.last == nil {
		return Outcome{}, false
	}
	return *c.last, true
}

// Snapshot returns the render view of the coordinator.
func (c *Coordinator) Snapshot() Snapshot {
	snap := Snapshot{
		Selection: c.selector.Duration(),
		CanStart:  c.CanStart(),
		Phase:     Idle,
		Clock:     c.selector.Duration().String(),
	}
	if c.last != nil {
		o := *c.last
		snap.LastOutcome = &o
	}
	if c.session == nil {
		return snap
	}
	st := c.session.State
	snap.Active = true
	snap.SessionID = c.session.ID
	snap.Phase = st.Phase
	snap.Remaining = st.Remaining
	snap.Total = st.Total
	snap.Percent = st.Percent()
	snap.Clock = st.Clock()
	return snap
}

func (c *Coordinator) teardown(reason Reason) {
	s := c.session
	c.session = nil
	out := Outcome{
		SessionID: s.ID,
		Reason:    reason,
		Duration:  c.captured,
		Remaining: s.State.Remaining,
		EndedAt:   c.now(),
	}
	c.last = &out
	c.selector.Set(c.captured)
	for _, fn := range c.onReset {
		fn(out)
	}
}

func (c *Coordinator) issue() Token {
	c.next++
	return c.next
}

// Package ticker drives a countdown coordinator from a clock without a UI.
// All coordinator mutations happen on the goroutine running Driver.Run.
package ticker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/countdown/internal/countdown"
)

const (
	// DefaultInterval is one countdown second.
	DefaultInterval = time.Second
	commandBuffer   = 8
)

// ErrDriverStopped is returned when Run is called on a driver that already finished.
var ErrDriverStopped = errors.New("driver already stopped")

type command int

const (
	cmdTogglePause command = iota
	cmdReset
)

// Driver runs one countdown session against a Clock.
type Driver struct {
	coord    *countdown.Coordinator
	clock    Clock
	interval time.Duration
	observer func(countdown.Snapshot)
	log      *logrus.Entry

	cmds     chan command
	fires    chan countdown.Token
	done     chan struct{}
	stopOnce sync.Once
	ran      bool
	pending  Timer
}

// Option customizes a Driver.
type Option func(*Driver)

func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

func WithInterval(i time.Duration) Option {
	return func(d *Driver) { d.interval = i }
}

// WithObserver receives a snapshot after every applied transition.
func WithObserver(fn func(countdown.Snapshot)) Option {
	return func(d *Driver) { d.observer = fn }
}

func WithLogger(l *logrus.Entry) Option {
	return func(d *Driver) { d.log = l }
}

// New returns a driver for coord. The session starts when Run is called.
func New(coord *countdown.Coordinator, opts ...Option) *Driver {
	d := &Driver{
		coord:    coord,
		clock:    SystemClock,
		interval: DefaultInterval,
		log:      logrus.NewEntry(logrus.StandardLogger()),
		cmds:     make(chan command, commandBuffer),
		fires:    make(chan countdown.Token),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// TogglePause asks the loop to pause or resume. It never blocks after Run returns.
func (d *Driver) TogglePause() {
	d.send(cmdTogglePause)
}

// Reset asks the loop to tear the session down.
func (d *Driver) Reset() {
	d.send(cmdReset)
}

func (d *Driver) send(c command) {
	select {
	case d.cmds <- c:
	case <-d.done:
	}
}

// Run starts a session and processes ticks and commands until the session
// expires, is reset, or ctx is canceled. Cancellation resets the session and
// returns ctx.Err() alongside the outcome.
func (d *Driver) Run(ctx context.Context) (countdown.Outcome, error) {
	if d.ran {
		return countdown.Outcome{}, ErrDriverStopped
	}
	d.ran = true
	defer d.stopOnce.Do(func() { close(d.done) })

	tok, err := d.coord.Start()
	if err != nil {
		return countdown.Outcome{}, err
	}
	d.arm(tok)
	d.notify()

	for {
		select {
		case <-ctx.Done():
			d.disarm()
			d.coord.Reset()
			d.notify()
			out, _ := d.coord.LastOutcome()
			return out, ctx.Err()

		case fired := <-d.fires:
			switch d.coord.Tick(fired) {
			case countdown.EventNone:
				continue
			case countdown.EventTicked:
				d.arm(fired)
				d.notify()
			case countdown.EventExpired:
				d.pending = nil
				d.notify()
				out, _ := d.coord.LastOutcome()
				return out, nil
			}

		case c := <-d.cmds:
			switch c {
			case cmdTogglePause:
				d.disarm()
				if next, resumed := d.coord.TogglePause(); resumed {
					d.arm(next)
				}
				d.notify()
			case cmdReset:
				d.disarm()
				d.coord.Reset()
				d.notify()
				out, _ := d.coord.LastOutcome()
				return out, nil
			}
		}
	}
}

func (d *Driver) arm(tok countdown.Token) {
	d.pending = d.clock.AfterFunc(d.interval, func() {
		select {
		case d.fires <- tok:
		case <-d.done:
		}
	})
}

func (d *Driver) disarm() {
	if d.pending == nil {
		return
	}
	if !d.pending.Stop() {
		d.log.Debug("tick already in flight; it will be dropped")
	}
	d.pending = nil
}

func (d *Driver) notify() {
	if d.observer != nil {
		d.observer(d.coord.Snapshot())
	}
}

package ticker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/countdown/internal/countdown"
)

const waitTimeout = 2 * time.Second

// manualTimer is a scheduled callback held by manualClock until fired.
type manualTimer struct {
	clock   *manualClock
	f       func()
	stopped bool
	fired   bool
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	wasLive := !t.stopped && !t.fired
	t.stopped = true
	return wasLive
}

// manualClock fires callbacks only when the test asks it to.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (c *manualClock) AfterFunc(_ time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{clock: c, f: f}
	c.timers = append(c.timers, t)
	return t
}

// live returns how many scheduled callbacks are neither stopped nor fired.
func (c *manualClock) live() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// fire runs the newest live callback and reports whether one existed.
func (c *manualClock) fire() bool {
	c.mu.Lock()
	var target *manualTimer
	for i := len(c.timers) - 1; i >= 0; i-- {
		if t := c.timers[i]; !t.stopped && !t.fired {
			target = t
			break
		}
	}
	if target != nil {
		target.fired = true
	}
	c.mu.Unlock()
	if target == nil {
		return false
	}
	target.f()
	return true
}

// fireStopped runs the newest stopped callback, as if Stop lost a race with the timer.
func (c *manualClock) fireStopped() bool {
	c.mu.Lock()
	var target *manualTimer
	for i := len(c.timers) - 1; i >= 0; i-- {
		if t := c.timers[i]; t.stopped && !t.fired {
			target = t
			break
		}
	}
	if target != nil {
		target.fired = true
	}
	c.mu.Unlock()
	if target == nil {
		return false
	}
	target.f()
	return true
}

type runResult struct {
	out countdown.Outcome
	err error
}

type harness struct {
	clock  *manualClock
	driver *Driver
	coord  *countdown.Coordinator
	snaps  chan countdown.Snapshot
	result chan runResult
	resets *int
}

func quietEntry() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func startHarness(ctx context.Context, t *testing.T, d countdown.Duration) *harness {
	t.Helper()
	h := &harness{
		clock:  &manualClock{},
		snaps:  make(chan countdown.Snapshot, 128),
		result: make(chan runResult, 1),
		resets: new(int),
	}
	h.coord = countdown.NewCoordinator(d, countdown.WithLogger(quietEntry()))
	h.coord.OnReset(func(countdown.Outcome) { *h.resets++ })
	h.driver = New(h.coord,
		WithClock(h.clock),
		WithLogger(quietEntry()),
		WithObserver(func(s countdown.Snapshot) { h.snaps <- s }),
	)
	go func() {
		out, err := h.driver.Run(ctx)
		h.result <- runResult{out: out, err: err}
	}()
	return h
}

func (h *harness) next(t *testing.T) countdown.Snapshot {
	t.Helper()
	select {
	case s := <-h.snaps:
		return s
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for snapshot")
		return countdown.Snapshot{}
	}
}

func (h *harness) wait(t *testing.T) runResult {
	t.Helper()
	select {
	case r := <-h.result:
		return r
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for Run to return")
		return runResult{}
	}
}

func TestDriver_RunsToExpiry(t *testing.T) {
	t.Parallel()

	h := startHarness(context.Background(), t, countdown.Duration{Seconds: 5})
	first := h.next(t)
	require.Equal(t, countdown.Running, first.Phase)
	require.Equal(t, 5, first.Remaining)

	for want := 4; want >= 1; want-- {
		require.True(t, h.clock.fire())
		s := h.next(t)
		assert.Equal(t, want, s.Remaining)
		assert.Equal(t, countdown.Running, s.Phase)
	}

	require.True(t, h.clock.fire())
	last := h.next(t)
	assert.False(t, last.Active)
	assert.Equal(t, countdown.Duration{Seconds: 5}, last.Selection)

	res := h.wait(t)
	require.NoError(t, res.err)
	assert.Equal(t, countdown.ReasonExpired, res.out.Reason)
	assert.Equal(t, 0, res.out.Remaining)
	assert.Equal(t, 1, *h.resets)
	assert.Zero(t, h.clock.live())
}

func TestDriver_PauseCancelsPendingTick(t *testing.T) {
	t.Parallel()

	h := startHarness(context.Background(), t, countdown.Duration{Seconds: 10})
	h.next(t)
	require.True(t, h.clock.fire())
	require.Equal(t, 9, h.next(t).Remaining)

	h.driver.TogglePause()
	paused := h.next(t)
	assert.Equal(t, countdown.Paused, paused.Phase)
	assert.Zero(t, h.clock.live())
	assert.False(t, h.clock.fire())

	// a timer that beat Stop still delivers, and is dropped
	require.True(t, h.clock.fireStopped())

	h.driver.TogglePause()
	resumed := h.next(t)
	assert.Equal(t, countdown.Running, resumed.Phase)
	assert.Equal(t, 9, resumed.Remaining)
	assert.Equal(t, 1, h.clock.live())

	require.True(t, h.clock.fire())
	assert.Equal(t, 8, h.next(t).Remaining)

	h.driver.Reset()
	h.next(t)
	res := h.wait(t)
	require.NoError(t, res.err)
	assert.Equal(t, countdown.ReasonUser, res.out.Reason)
	assert.Equal(t, 8, res.out.Remaining)
	assert.Equal(t, 1, *h.resets)
}

func TestDriver_ResetRestoresSelection(t *testing.T) {
	t.Parallel()

	chosen := countdown.Duration{Minutes: 1, Seconds: 30}
	h := startHarness(context.Background(), t, chosen)
	h.next(t)
	for i := 0; i < 10; i++ {
		require.True(t, h.clock.fire())
		h.next(t)
	}

	h.driver.Reset()
	final := h.next(t)
	assert.False(t, final.Active)
	assert.Equal(t, chosen, final.Selection)

	res := h.wait(t)
	require.NoError(t, res.err)
	assert.Equal(t, 80, res.out.Remaining)
	assert.Zero(t, h.clock.live())
}

func TestDriver_ContextCancelTearsDown(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	h := startHarness(ctx, t, countdown.Duration{Seconds: 30})
	h.next(t)

	cancel()
	h.next(t)
	res := h.wait(t)
	require.True(t, errors.Is(res.err, context.Canceled))
	assert.Equal(t, countdown.ReasonUser, res.out.Reason)
	assert.False(t, h.coord.Active())
	assert.Zero(t, h.clock.live())

	// commands after Run returned must not block
	h.driver.TogglePause()
	h.driver.Reset()
}

func TestDriver_ZeroDurationRefused(t *testing.T) {
	t.Parallel()

	coord := countdown.NewCoordinator(countdown.Duration{}, countdown.WithLogger(quietEntry()))
	d := New(coord, WithClock(&manualClock{}), WithLogger(quietEntry()))

	_, err := d.Run(context.Background())
	require.True(t, errors.Is(err, countdown.ErrZeroDuration))

	_, err = d.Run(context.Background())
	require.True(t, errors.Is(err, ErrDriverStopped))
}

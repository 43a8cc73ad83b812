package ai

import (
	"errors"
	"time"
)

var ErrStaleContext = errors.New("ai: state context is no longer active")

// Context is the scratch space of one state instance. The machine creates it
// on enter and closes it on exit; hooks must not keep it past their own call.
type Context struct {
	state      StateID
	sinceEnter float64
	pending    Handle
	data       any
	closed     bool

	scheduler  Scheduler
	transition func(StateID) error
}

func (c *Context) State() StateID { return c.state }

// SinceEnter returns seconds accumulated since enter, or since the last time
// Every fired.
func (c *Context) SinceEnter() float64 { return c.sinceEnter }

func (c *Context) Data() any { return c.data }

func (c *Context) SetData(v any) { c.data = v }

// Active reports whether the state owning this context is still current.
func (c *Context) Active() bool { return !c.closed }

// Every reports whether period seconds have accumulated, resetting the
// accumulator when they have. Overshoot is dropped.
func (c *Context) Every(period float64) bool {
	if c.sinceEnter < period {
		return false
	}
	c.sinceEnter = 0
	return true
}

// ScheduleOnce runs fn after delay unless the state exits first. Any callback
// already pending for this context is cancelled.
func (c *Context) ScheduleOnce(delay time.Duration, fn func()) {
	if c.closed {
		return
	}
	c.CancelPending()

	var h Handle
	h = c.scheduler.Schedule(delay, func() {
		if c.closed || c.pending != h {
			return
		}
		c.pending = 0
		fn()
	})
	c.pending = h
}

// CancelPending drops the pending callback, if any.
func (c *Context) CancelPending() {
	if c.pending == 0 {
		return
	}
	c.scheduler.Cancel(c.pending)
	c.pending = 0
}

func (c *Context) HasPending() bool { return c.pending != 0 }

// Transition asks the machine to leave this state for target. It takes effect
// before Transition returns.
func (c *Context) Transition(target StateID) error {
	if c.closed {
		return ErrStaleContext
	}
	return c.transition(target)
}

func (c *Context) tick(dt float64) {
	c.sinceEnter += dt
}

func (c *Context) close() {
	c.closed = true
}

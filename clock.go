package main

import (
	"sync"
	"time"
)

// Clock is game time: wall time since start minus the time spent paused.
type Clock struct {
	mu sync.RWMutex

	now         func() time.Time
	start       time.Time
	paused      bool
	pauseStart  time.Time
	totalPaused time.Duration
}

func NewClock() *Clock {
	return newClockAt(time.Now)
}

func newClockAt(now func() time.Time) *Clock {
	return &Clock{now: now, start: now()}
}

// Elapsed returns game time. It stands still while paused.
func (c *Clock) Elapsed() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.paused {
		return c.pauseStart.Sub(c.start) - c.totalPaused
	}
	return c.now().Sub(c.start) - c.totalPaused
}

func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paused {
		return
	}
	c.paused = true
	c.pauseStart = c.now()
}

func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.paused {
		return
	}
	c.totalPaused += c.now().Sub(c.pauseStart)
	c.paused = false
	c.pauseStart = time.Time{}
}

func (c *Clock) Paused() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.paused
}

// PauseDuration returns how long the current pause has lasted.
func (c *Clock) PauseDuration() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.paused {
		return 0
	}
	return c.now().Sub(c.pauseStart)
}

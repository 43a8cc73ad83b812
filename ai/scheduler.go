package ai

import "time"

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Scheduler runs one-shot deferred callbacks.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
	// Cancel drops a pending callback and reports whether it was still pending.
	Cancel(h Handle) bool
}

type scheduled struct {
	due time.Duration
	fn  func()
}

// ManualScheduler is a Scheduler on a virtual clock. Nothing fires until the
// owner advances the clock, and callbacks run on the advancing goroutine.
type ManualScheduler struct {
	now     time.Duration
	next    Handle
	pending map[Handle]scheduled
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{pending: map[Handle]scheduled{}}
}

func (s *ManualScheduler) Now() time.Duration { return s.now }

// Pending returns the number of callbacks waiting to fire.
func (s *ManualScheduler) Pending() int { return len(s.pending) }

func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.next++
	s.pending[s.next] = scheduled{due: s.now + delay, fn: fn}
	return s.next
}

func (s *ManualScheduler) Cancel(h Handle) bool {
	if _, ok := s.pending[h]; !ok {
		return false
	}
	delete(s.pending, h)
	return true
}

// Advance moves the clock forward by d.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.AdvanceTo(s.now + d)
}

// AdvanceTo moves the clock to t, firing every callback due at or before t in
// due order. Callbacks due at the same instant fire in scheduling order. A
// callback may schedule or cancel others; newly scheduled ones still fire in
// this call if they fall due before t.
func (s *ManualScheduler) AdvanceTo(t time.Duration) {
	for {
		h, ok := s.earliest(t)
		if !ok {
			break
		}
		e := s.pending[h]
		delete(s.pending, h)
		if e.due > s.now {
			s.now = e.due
		}
		if e.fn != nil {
			e.fn()
		}
	}
	if t > s.now {
		s.now = t
	}
}

func (s *ManualScheduler) earliest(limit time.Duration) (Handle, bool) {
	var (
		best  Handle
		found bool
	)
	for h, e := range s.pending {
		if e.due > limit {
			continue
		}
		if !found || e.due < s.pending[best].due || (e.due == s.pending[best].due && h < best) {
			best = h
			found = true
		}
	}
	return best, found
}

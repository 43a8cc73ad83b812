// Package pointer keeps the last known mouse position for everything that
// chases it.
package pointer

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/jakecoffman/cp"
)

// Tracker holds the last reported pointer position. Move may be called from
// any goroutine; readers always see a whole coordinate pair.
type Tracker struct {
	pos atomic.Pointer[cp.Vector]
}

var (
	shared     *Tracker
	sharedOnce sync.Once
)

// Listen returns the process-wide tracker, creating it on first use.
func Listen() *Tracker {
	sharedOnce.Do(func() {
		shared = New()
	})
	return shared
}

// New creates a tracker at the origin. Hosts normally use Listen; tests use
// New to stay independent of each other.
func New() *Tracker {
	t := &Tracker{}
	t.pos.Store(&cp.Vector{})
	return t
}

// Move records a new pointer position. Non-finite coordinates are ignored.
func (t *Tracker) Move(x, y float64) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return
	}
	t.pos.Store(&cp.Vector{X: x, Y: y})
}

// Position returns the last recorded pointer position.
func (t *Tracker) Position() cp.Vector {
	return *t.pos.Load()
}

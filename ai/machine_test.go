package ai

import (
	"errors"
	"testing"
	"time"
)

const (
	stateA StateID = "a"
	stateB StateID = "b"
	stateC StateID = "c"
)

type recorder struct {
	calls []string
	fired []string
}

func (r *recorder) log(s string) { r.calls = append(r.calls, s) }

func newTestMachine(r *recorder, sched Scheduler) *Machine[*recorder] {
	return NewMachine(r, map[StateID]StateDef[*recorder]{
		stateA: {
			Enter: func(r *recorder, ctx *Context) {
				r.log("enter a")
				ctx.ScheduleOnce(time.Second, func() {
					r.fired = append(r.fired, "a")
					_ = ctx.Transition(stateB)
				})
			},
			Exit: func(r *recorder, ctx *Context) { r.log("exit a") },
		},
		stateB: {
			Enter: func(r *recorder, ctx *Context) { r.log("enter b") },
			Update: func(r *recorder, ctx *Context, dt float64) {
				if ctx.Every(2) {
					_ = ctx.Transition(stateC)
				}
			},
			Exit: func(r *recorder, ctx *Context) { r.log("exit b") },
		},
		stateC: {
			Enter: func(r *recorder, ctx *Context) {
				r.log("enter c")
				ctx.ScheduleOnce(500*time.Millisecond, func() {
					r.fired = append(r.fired, "c")
					_ = ctx.Transition(stateA)
				})
			},
			Exit: func(r *recorder, ctx *Context) { r.log("exit c") },
		},
	}, WithScheduler(sched))
}

func TestMachineDeferredTransition(t *testing.T) {
	sched := NewManualScheduler()
	r := &recorder{}
	m := newTestMachine(r, sched)

	if err := m.Start(stateA); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	sched.Advance(999 * time.Millisecond)
	if m.Current() != stateA {
		t.Fatalf("expected a before the delay, got %s", m.Current())
	}
	sched.Advance(time.Millisecond)
	if m.Current() != stateB {
		t.Fatalf("expected b after the delay, got %s", m.Current())
	}
	if sched.Pending() != 0 {
		t.Fatalf("expected no pending callbacks, got %d", sched.Pending())
	}
}

func TestMachineExitCancelsPendingCallback(t *testing.T) {
	sched := NewManualScheduler()
	r := &recorder{}
	m := newTestMachine(r, sched)

	if err := m.Start(stateA); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	sched.Advance(300 * time.Millisecond)
	if err := m.ChangeState(stateB); err != nil {
		t.Fatalf("change failed: %v", err)
	}
	sched.Advance(5 * time.Second)

	if len(r.fired) != 0 {
		t.Fatalf("stale callback fired: %v", r.fired)
	}
	if m.Current() != stateB {
		t.Fatalf("expected b, got %s", m.Current())
	}
}

func TestMachineEnterExitPairs(t *testing.T) {
	sched := NewManualScheduler()
	r := &recorder{}
	m := newTestMachine(r, sched)

	if err := m.Start(stateA); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	for i := 0; i < 20; i++ {
		sched.Advance(250 * time.Millisecond)
		m.Update(0.25)
	}
	m.Stop()

	for id, s := range m.Stats() {
		if s.Enters != s.Exits {
			t.Fatalf("state %s: %d enters vs %d exits", id, s.Enters, s.Exits)
		}
	}

	// every exit must come before the next enter
	depth := 0
	for _, c := range r.calls {
		switch c[:4] {
		case "ente":
			depth++
		case "exit":
			depth--
		}
		if depth > 1 || depth < 0 {
			t.Fatalf("unbalanced hook order: %v", r.calls)
		}
	}
}

func TestMachineUnknownState(t *testing.T) {
	r := &recorder{}
	m := newTestMachine(r, NewManualScheduler())

	if err := m.Start("nope"); !errors.Is(err, ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState from Start, got %v", err)
	}
	if err := m.ChangeState(stateB); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
	if err := m.Start(stateB); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := m.Start(stateB); !errors.Is(err, ErrRunning) {
		t.Fatalf("expected ErrRunning, got %v", err)
	}

	if err := m.ChangeState("nope"); !errors.Is(err, ErrUnknownState) {
		t.Fatalf("expected ErrUnknownState, got %v", err)
	}
	if m.Current() != stateB || !m.Context().Active() {
		t.Fatalf("machine changed after a bad transition: %s", m.Current())
	}
	if s := m.Stats()[stateB]; s.Exits != 0 {
		t.Fatalf("bad transition exited b")
	}
}

func TestMachineStaleContext(t *testing.T) {
	r := &recorder{}
	m := newTestMachine(r, NewManualScheduler())
	if err := m.Start(stateB); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	old := m.Context()
	if err := m.ChangeState(stateC); err != nil {
		t.Fatalf("change failed: %v", err)
	}
	if old.Active() {
		t.Fatalf("old context still active")
	}
	if err := old.Transition(stateA); !errors.Is(err, ErrStaleContext) {
		t.Fatalf("expected ErrStaleContext, got %v", err)
	}
	if m.Current() != stateC {
		t.Fatalf("stale transition took effect: %s", m.Current())
	}

	old.ScheduleOnce(0, func() { t.Fatalf("scheduled on a closed context") })
	if old.HasPending() {
		t.Fatalf("closed context accepted a callback")
	}
}

func TestMachineTransitionHook(t *testing.T) {
	var seen [][2]StateID
	r := &recorder{}
	m := NewMachine(r, map[StateID]StateDef[*recorder]{
		stateA: {},
		stateB: {
			// b bounces straight to c; the hook only sees settled states
			Enter: func(r *recorder, ctx *Context) { _ = ctx.Transition(stateC) },
		},
		stateC: {},
	}, WithTransitionHook(func(from, to StateID) {
		seen = append(seen, [2]StateID{from, to})
	}))

	if err := m.Start(stateA); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if err := m.ChangeState(stateB); err != nil {
		t.Fatalf("change failed: %v", err)
	}

	want := [][2]StateID{{"", stateA}, {stateB, stateC}}
	if len(seen) != len(want) {
		t.Fatalf("expected hooks %v, got %v", want, seen)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("hook %d: expected %v, got %v", i, want[i], seen[i])
		}
	}
	if m.Current() != stateC {
		t.Fatalf("expected c, got %s", m.Current())
	}
}

func TestContextEvery(t *testing.T) {
	ctx := &Context{scheduler: NewManualScheduler()}

	steps := []struct {
		dt    float64
		fires bool
		left  float64
	}{
		{1.5, false, 1.5},
		{1.5, false, 3},
		{2.5, true, 0},
		{4.9, false, 4.9},
		{0.2, true, 0},
	}
	for i, s := range steps {
		ctx.tick(s.dt)
		if got := ctx.Every(5); got != s.fires {
			t.Fatalf("step %d: expected fires=%v, got %v", i, s.fires, got)
		}
		if diff := ctx.SinceEnter() - s.left; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("step %d: expected accumulator %v, got %v", i, s.left, ctx.SinceEnter())
		}
	}
}

func TestContextScheduleOnceReplacesPending(t *testing.T) {
	sched := NewManualScheduler()
	ctx := &Context{scheduler: sched}

	var fired []int
	ctx.ScheduleOnce(time.Second, func() { fired = append(fired, 1) })
	ctx.ScheduleOnce(2*time.Second, func() { fired = append(fired, 2) })
	if sched.Pending() != 1 {
		t.Fatalf("expected one pending callback, got %d", sched.Pending())
	}

	sched.Advance(3 * time.Second)
	if len(fired) != 1 || fired[0] != 2 {
		t.Fatalf("expected only the second callback, got %v", fired)
	}
	if ctx.HasPending() {
		t.Fatalf("fired callback still marked pending")
	}

	ctx.CancelPending()
	ctx.CancelPending()
}

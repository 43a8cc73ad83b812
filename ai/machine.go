package ai

import (
	"errors"
	"fmt"
	"log/slog"
)

// StateID identifies a state of a Machine.
type StateID string

var (
	ErrUnknownState = errors.New("ai: unknown state")
	ErrNotRunning   = errors.New("ai: machine not running")
	ErrRunning      = errors.New("ai: machine already running")
)

// Logger is used by machines built without WithLogger.
var Logger = slog.Default()

// StateDef holds the hooks of one state. Every hook is optional.
type StateDef[O any] struct {
	Enter  func(o O, ctx *Context)
	Update func(o O, ctx *Context, dt float64)
	Exit   func(o O, ctx *Context)
}

// StateStats counts how often a state was entered and exited.
type StateStats struct {
	Enters int
	Exits  int
}

type machineOptions struct {
	scheduler Scheduler
	logger    *slog.Logger
	onChange  []func(from, to StateID)
}

// Option configures a Machine.
type Option func(*machineOptions)

// WithScheduler sets the scheduler backing Context.ScheduleOnce. Without it
// the machine gets a private ManualScheduler that is never advanced.
func WithScheduler(s Scheduler) Option {
	return func(o *machineOptions) {
		o.scheduler = s
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *machineOptions) {
		o.logger = l
	}
}

// WithTransitionHook registers fn to run after every completed state change,
// including the initial enter (from is empty then).
func WithTransitionHook(fn func(from, to StateID)) Option {
	return func(o *machineOptions) {
		if fn != nil {
			o.onChange = append(o.onChange, fn)
		}
	}
}

// Machine is a flat state machine whose hooks receive the owner O and the
// per-state Context. Transitions are synchronous.
type Machine[O any] struct {
	owner  O
	states map[StateID]StateDef[O]
	opts   machineOptions

	current StateID
	ctx     *Context
	stats   map[StateID]*StateStats
}

func NewMachine[O any](owner O, states map[StateID]StateDef[O], opts ...Option) *Machine[O] {
	o := machineOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.scheduler == nil {
		o.scheduler = NewManualScheduler()
	}
	if o.logger == nil {
		o.logger = Logger
	}

	defs := make(map[StateID]StateDef[O], len(states))
	for id, def := range states {
		defs[id] = def
	}

	return &Machine[O]{
		owner:  owner,
		states: defs,
		opts:   o,
		stats:  map[StateID]*StateStats{},
	}
}

// Start enters the initial state.
func (m *Machine[O]) Start(initial StateID) error {
	if m.ctx != nil {
		return ErrRunning
	}
	if _, ok := m.states[initial]; !ok {
		return fmt.Errorf("ai: start %q: %w", initial, ErrUnknownState)
	}
	m.enter("", initial)
	return nil
}

// ChangeState leaves the current state and enters target. An unknown target
// leaves the machine untouched.
func (m *Machine[O]) ChangeState(target StateID) error {
	if m.ctx == nil {
		return ErrNotRunning
	}
	if _, ok := m.states[target]; !ok {
		return fmt.Errorf("ai: %s -> %q: %w", m.current, target, ErrUnknownState)
	}

	from := m.current
	m.exit()
	m.enter(from, target)
	return nil
}

// Update advances the current state's clock by dt seconds and runs its update
// hook.
func (m *Machine[O]) Update(dt float64) {
	if m.ctx == nil {
		return
	}
	ctx := m.ctx
	ctx.tick(dt)
	if def := m.states[m.current]; def.Update != nil {
		def.Update(m.owner, ctx, dt)
	}
}

// Stop exits the current state without entering another one.
func (m *Machine[O]) Stop() {
	if m.ctx == nil {
		return
	}
	m.exit()
	m.current = ""
}

func (m *Machine[O]) Current() StateID { return m.current }

func (m *Machine[O]) Running() bool { return m.ctx != nil }

// Context returns the live context of the current state, nil when stopped.
func (m *Machine[O]) Context() *Context { return m.ctx }

func (m *Machine[O]) Stats() map[StateID]StateStats {
	out := make(map[StateID]StateStats, len(m.stats))
	for id, s := range m.stats {
		out[id] = *s
	}
	return out
}

func (m *Machine[O]) enter(from, to StateID) {
	ctx := &Context{
		state:     to,
		scheduler: m.opts.scheduler,
	}
	ctx.transition = func(target StateID) error {
		if m.ctx != ctx {
			return ErrStaleContext
		}
		return m.ChangeState(target)
	}

	m.current = to
	m.ctx = ctx
	m.stat(to).Enters++

	m.opts.logger.Debug("state change", "from", from, "to", to)

	if def := m.states[to]; def.Enter != nil {
		def.Enter(m.owner, ctx)
	}
	if m.ctx != ctx {
		// enter hook already moved on
		return
	}
	for _, fn := range m.opts.onChange {
		fn(from, to)
	}
}

func (m *Machine[O]) exit() {
	ctx := m.ctx
	ctx.close()
	if def := m.states[ctx.state]; def.Exit != nil {
		def.Exit(m.owner, ctx)
	}
	ctx.CancelPending()
	m.stat(ctx.state).Exits++
	m.ctx = nil
}

func (m *Machine[O]) stat(id StateID) *StateStats {
	s, ok := m.stats[id]
	if !ok {
		s = &StateStats{}
		m.stats[id] = s
	}
	return s
}

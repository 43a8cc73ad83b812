// Package duck is the roaming desktop duck: a timed state machine that
// chases the pointer, naps, quacks and wanders inside its container.
package duck

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/quackpet/ai"
	"github.com/milk9111/quackpet/component"
)

var (
	ErrMissingDeps    = errors.New("duck: renderer, container, pointer and scheduler are required")
	ErrAlreadySpawned = errors.New("duck: already spawned")
	ErrDeparted       = errors.New("duck: departed")
)

// Logger is used by ducks created without Deps.Logger.
var Logger = slog.Default()

// StackTop is the stack order every duck is drawn at.
const StackTop = math.MaxInt32

// Handle identifies a visual owned by a Renderer.
type Handle uint64

// VisualSpec describes the visual a duck asks its renderer for.
type VisualSpec struct {
	ID         uint64
	Width      float64
	Height     float64
	Sprite     string
	SpriteCols int
	Scale      float64
	Debug      bool
}

// Renderer owns the on-screen visuals. Positions are the top-left corner of
// the scaled footprint, in container pixels.
type Renderer interface {
	CreateVisual(spec VisualSpec) Handle
	SetPosition(h Handle, x, y float64)
	SetSpriteOffset(h Handle, dx, dy float64)
	SetStackOrder(h Handle, z int)
	Attach(h Handle, c Container)
	Detach(h Handle)
}

// Labeler is implemented by renderers that can print text on a visual. Ducks
// in debug mode label themselves with their state.
type Labeler interface {
	SetLabel(h Handle, text string)
}

// Container is the surface a duck roams.
type Container interface {
	Name() string
	Size() (w, h float64)
}

// Pointer reports where the mouse is.
type Pointer interface {
	Position() cp.Vector
}

// Deps are the collaborators a duck needs from its host.
type Deps struct {
	Renderer  Renderer
	Container Container
	Pointer   Pointer
	Scheduler ai.Scheduler
	Logger    *slog.Logger
}

var nextID atomic.Uint64

type Duck struct {
	id  uint64
	cfg Config

	renderer  Renderer
	container Container
	pointer   Pointer
	logger    *slog.Logger
	rand      func() float64

	pos  cp.Vector
	half cp.Vector

	machine  *ai.Machine[*Duck]
	anim     *component.Animator
	pools    map[ai.StateID]*ai.Pool[ai.StateID]
	visual   Handle
	changes  int
	interval time.Duration
	last     time.Duration

	spawned  bool
	departed bool
}

// New creates a duck at a random spot in its container. It is not drawn or
// updated until Spawn.
func New(cfg Config, deps Deps) (*Duck, error) {
	if deps.Renderer == nil || deps.Container == nil || deps.Pointer == nil || deps.Scheduler == nil {
		return nil, ErrMissingDeps
	}
	if cfg.UpdatesPerSecond <= 0 || cfg.SpriteScale <= 0 {
		return nil, fmt.Errorf("duck: updates per second %v, scale %v", cfg.UpdatesPerSecond, cfg.SpriteScale)
	}
	if cfg.Pools == nil {
		cfg.Pools = DefaultPools()
	}

	d := &Duck{
		id:        nextID.Add(1),
		cfg:       cfg,
		renderer:  deps.Renderer,
		container: deps.Container,
		pointer:   deps.Pointer,
		rand:      cfg.Rand,
		half: cp.Vector{
			X: cfg.Width * cfg.SpriteScale / 2,
			Y: cfg.Height * cfg.SpriteScale / 2,
		},
		anim:     component.NewAnimator(cfg.SpriteCols),
		pools:    make(map[ai.StateID]*ai.Pool[ai.StateID], len(cfg.Pools)),
		interval: time.Duration(float64(time.Second) / cfg.UpdatesPerSecond),
	}
	if d.rand == nil {
		d.rand = rand.Float64
	}
	for s, p := range cfg.Pools {
		d.pools[s] = p.WithSource(d.rand)
	}

	logger := deps.Logger
	if logger == nil {
		logger = Logger
	}
	d.logger = logger.With("duck", d.id)

	d.machine = ai.NewMachine(d, states,
		ai.WithScheduler(deps.Scheduler),
		ai.WithLogger(d.logger),
		ai.WithTransitionHook(d.onStateChange),
	)

	d.visual = d.renderer.CreateVisual(VisualSpec{
		ID:         d.id,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Sprite:     cfg.Sprite,
		SpriteCols: cfg.SpriteCols,
		Scale:      cfg.SpriteScale,
		Debug:      cfg.Debug,
	})
	d.renderer.SetStackOrder(d.visual, StackTop)

	w, h := d.container.Size()
	d.moveTo(cp.Vector{X: d.rand() * w, Y: d.rand() * h})
	return d, nil
}

// Spawn attaches the duck to its container and starts it idling. now is the
// host clock reading the first Step is measured from.
func (d *Duck) Spawn(now time.Duration) error {
	if d.departed {
		return ErrDeparted
	}
	if d.spawned {
		return ErrAlreadySpawned
	}
	d.renderer.Attach(d.visual, d.container)
	d.last = now
	d.spawned = true
	if err := d.machine.Start(Idle); err != nil {
		return err
	}
	d.logger.Debug("duck spawned", "x", d.pos.X, "y", d.pos.Y, "container", d.container.Name())
	return nil
}

// Step is called by the host on every frame. It runs one behaviour update
// when at least 1/UpdatesPerSecond has passed since the last processed step,
// using the real elapsed time as dt, and reports whether it did.
func (d *Duck) Step(now time.Duration) bool {
	if d.departed || !d.spawned {
		return false
	}
	elapsed := now - d.last
	if elapsed < d.interval {
		return false
	}
	d.last = now
	dt := elapsed.Seconds()

	changes := d.changes
	d.machine.Update(dt)
	if d.departed {
		return true
	}
	// a clip started during this update shows its first frame for a full tick
	if changes == d.changes && d.anim.Update(dt) {
		d.pushSprite()
	}
	d.pushPosition()
	return true
}

// Depart stops the duck for good: its pending timer is cancelled and its
// visual detached. Only the first call does anything.
func (d *Duck) Depart() bool {
	if d.departed {
		return false
	}
	d.departed = true
	d.machine.Stop()
	d.renderer.Detach(d.visual)
	d.logger.Debug("duck departed")
	return true
}

// Place moves the duck to p, kept inside its container.
func (d *Duck) Place(p cp.Vector) {
	if d.departed {
		return
	}
	d.moveTo(p)
}

func (d *Duck) ID() uint64 { return d.id }

func (d *Duck) Departed() bool { return d.departed }

func (d *Duck) State() ai.StateID { return d.machine.Current() }

func (d *Duck) Position() cp.Vector { return d.pos }

// Frame returns the sprite-sheet frame currently shown.
func (d *Duck) Frame() int { return d.anim.Frame() }

// Stats returns how often each state was entered and exited.
func (d *Duck) Stats() map[ai.StateID]ai.StateStats { return d.machine.Stats() }

// ProximityRadius is how close the pointer must be for the duck to notice
// it. It grows with the scaled sprite.
func (d *Duck) ProximityRadius() float64 {
	return d.cfg.MouseProximity + math.Max(d.half.X, d.half.Y)
}

func (d *Duck) NearPointer() bool {
	r := d.ProximityRadius()
	return d.pos.DistanceSq(d.pointer.Position()) <= r*r
}

func (d *Duck) transition(ctx *ai.Context, target ai.StateID) {
	if err := ctx.Transition(target); err != nil {
		d.logger.Error("duck transition failed", "from", ctx.State(), "to", target, "err", err)
		if d.cfg.Debug {
			panic(err)
		}
	}
}

func (d *Duck) drawFrom(ctx *ai.Context, from ai.StateID) {
	if next, ok := d.pools[from].Pull(); ok {
		d.transition(ctx, next)
	}
}

func (d *Duck) uniform(lo, hi float64) float64 {
	return lo + d.rand()*(hi-lo)
}

func (d *Duck) onStateChange(from, to ai.StateID) {
	d.changes++
	clip, _ := ClipFor(to)
	d.anim.Play(clip)
	d.pushSprite()
	if l, ok := d.renderer.(Labeler); ok && d.cfg.Debug {
		l.SetLabel(d.visual, string(to))
	}
}

func (d *Duck) moveTo(p cp.Vector) {
	w, h := d.container.Size()
	d.pos = Clamp(p, Bounds(w, h, d.half))
	d.pushPosition()
}

func (d *Duck) pushPosition() {
	d.renderer.SetPosition(d.visual, math.Ceil(d.pos.X-d.half.X), math.Ceil(d.pos.Y-d.half.Y))
}

func (d *Duck) pushSprite() {
	dx, dy := d.anim.Offset(d.cfg.Width, d.cfg.Height)
	d.renderer.SetSpriteOffset(d.visual, dx*d.cfg.SpriteScale, dy*d.cfg.SpriteScale)
}

package duck

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/quackpet/ai"
	"github.com/milk9111/quackpet/component"
)

const (
	Idle     ai.StateID = "idle"
	Alert    ai.StateID = "alert"
	Sleeping ai.StateID = "sleeping"
	Quack    ai.StateID = "quack"
	Walking  ai.StateID = "walking"
)

const (
	drawPeriod = 5.0 // seconds between pool draws while idle or asleep
	alertDelay = time.Second
	quackDelay = 500 * time.Millisecond
)

var clips = map[ai.StateID]component.Clip{
	Idle:     {Frames: []int{0, 1}, Holds: []float64{2, 0.1}},
	Alert:    {Frames: []int{1}, Holds: []float64{1}},
	Sleeping: component.NewClip(0.5, 8, 9, 10, 11),
	Quack:    {Frames: []int{12, 13, 14}, Holds: []float64{0.1, 0.2, 0.2}},
	Walking:  component.NewClip(0.05, 4, 5, 6, 7),
}

var states = map[ai.StateID]ai.StateDef[*Duck]{
	Idle:     {Update: idleUpdate},
	Alert:    {Enter: alertEnter, Update: alertUpdate},
	Sleeping: {Update: sleepingUpdate},
	Quack:    {Enter: quackEnter},
	Walking:  {Enter: walkingEnter, Update: walkingUpdate},
}

// ClipFor returns the animation played in state s.
func ClipFor(s ai.StateID) (component.Clip, bool) {
	c, ok := clips[s]
	return c, ok
}

// States lists every state a duck can be in.
func States() []ai.StateID {
	return []ai.StateID{Idle, Alert, Sleeping, Quack, Walking}
}

func idleUpdate(d *Duck, ctx *ai.Context, dt float64) {
	if !d.NearPointer() {
		d.transition(ctx, Alert)
		return
	}
	if ctx.Every(drawPeriod) {
		d.drawFrom(ctx, Idle)
	}
}

func alertEnter(d *Duck, ctx *ai.Context) {
	ctx.ScheduleOnce(alertDelay, func() {
		d.transition(ctx, Walking)
	})
}

func alertUpdate(d *Duck, ctx *ai.Context, dt float64) {
	if d.NearPointer() {
		d.transition(ctx, Idle)
	}
}

func sleepingUpdate(d *Duck, ctx *ai.Context, dt float64) {
	if !d.NearPointer() {
		d.transition(ctx, Idle)
		return
	}
	if ctx.Every(drawPeriod) {
		d.drawFrom(ctx, Sleeping)
	}
}

func quackEnter(d *Duck, ctx *ai.Context) {
	ctx.ScheduleOnce(quackDelay, func() {
		d.transition(ctx, Idle)
	})
}

func walkingEnter(d *Duck, ctx *ai.Context) {
	j := d.cfg.Jitter
	ctx.SetData(cp.Vector{X: d.uniform(-j, j), Y: d.uniform(-j, j)})
}

func walkingUpdate(d *Duck, ctx *ai.Context, dt float64) {
	if d.NearPointer() {
		d.transition(ctx, Idle)
		return
	}
	jitter, _ := ctx.Data().(cp.Vector)
	dest := d.pointer.Position().Add(jitter)
	d.moveTo(MoveToward(d.pos, dest, d.cfg.Speed*dt))
}

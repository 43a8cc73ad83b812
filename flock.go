package main

import (
	"log/slog"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/quackpet/ai"
	"github.com/milk9111/quackpet/duck"
)

type pet struct {
	duck    *duck.Duck
	despawn ai.Handle
}

// Flock owns the live ducks of one container.
type Flock struct {
	cfg    duck.Config
	deps   duck.Deps
	logger *slog.Logger
	pets   []*pet
}

func NewFlock(cfg duck.Config, deps duck.Deps) *Flock {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Flock{cfg: cfg, deps: deps, logger: logger}
}

// Spawn adds a duck at a random spot.
func (f *Flock) Spawn(now time.Duration) (*duck.Duck, error) {
	p, err := f.spawn(nil, now)
	if err != nil {
		return nil, err
	}
	return p.duck, nil
}

// SpawnAt adds a duck at pos that departs after ttl. A ttl of zero or less
// keeps it forever.
func (f *Flock) SpawnAt(pos cp.Vector, now, ttl time.Duration) (*duck.Duck, error) {
	p, err := f.spawn(&pos, now)
	if err != nil {
		return nil, err
	}
	if ttl > 0 {
		p.despawn = f.deps.Scheduler.Schedule(ttl, func() {
			p.despawn = 0
			p.duck.Depart()
		})
	}
	return p.duck, nil
}

func (f *Flock) spawn(pos *cp.Vector, now time.Duration) (*pet, error) {
	d, err := duck.New(f.cfg, f.deps)
	if err != nil {
		return nil, err
	}
	if pos != nil {
		d.Place(*pos)
	}
	if err := d.Spawn(now); err != nil {
		d.Depart()
		return nil, err
	}
	p := &pet{duck: d}
	f.pets = append(f.pets, p)
	return p, nil
}

// Step steps every duck and forgets the ones that departed.
func (f *Flock) Step(now time.Duration) {
	live := f.pets[:0]
	for _, p := range f.pets {
		p.duck.Step(now)
		if !p.duck.Departed() {
			live = append(live, p)
		}
	}
	clear(f.pets[len(live):])
	f.pets = live
}

// Reconfigure replaces every live duck with one built from cfg at the same
// spot. Pending despawns carry over to the replacement. If any replacement
// cannot be built the flock is left as it was.
func (f *Flock) Reconfigure(cfg duck.Config, now time.Duration) error {
	next := make([]*duck.Duck, len(f.pets))
	for i, p := range f.pets {
		if p.duck.Departed() {
			continue
		}
		d, err := duck.New(cfg, f.deps)
		if err != nil {
			for _, built := range next[:i] {
				if built != nil {
					built.Depart()
				}
			}
			return err
		}
		next[i] = d
	}

	f.cfg = cfg
	for i, p := range f.pets {
		d := next[i]
		if d == nil {
			continue
		}
		pos := p.duck.Position()
		p.duck.Depart()
		d.Place(pos)
		if err := d.Spawn(now); err != nil {
			f.logger.Error("respawn failed", "err", err)
			continue
		}
		p.duck = d
	}
	f.logger.Info("flock reconfigured", "ducks", f.Len())
	return nil
}

// DepartAll sends every duck away and cancels their despawn timers.
func (f *Flock) DepartAll() {
	for _, p := range f.pets {
		if p.despawn != 0 {
			f.deps.Scheduler.Cancel(p.despawn)
		}
		p.duck.Depart()
	}
	clear(f.pets)
	f.pets = f.pets[:0]
}

// Len counts ducks that have not departed.
func (f *Flock) Len() int {
	n := 0
	for _, p := range f.pets {
		if !p.duck.Departed() {
			n++
		}
	}
	return n
}

func (f *Flock) Ducks() []*duck.Duck {
	out := make([]*duck.Duck, 0, len(f.pets))
	for _, p := range f.pets {
		out = append(out, p.duck)
	}
	return out
}

package duck

import (
	"errors"
	"fmt"

	"github.com/milk9111/quackpet/ai"
	"github.com/milk9111/quackpet/prefabs"
)

var ErrUnusedPool = errors.New("duck: pool is never drawn")

// Config is a validated duck configuration.
type Config struct {
	Width            float64
	Height           float64
	Speed            float64
	MouseProximity   float64
	Jitter           float64
	UpdatesPerSecond float64
	Sprite           string
	SpriteCols       int
	SpriteScale      float64
	Container        string
	Debug            bool

	// Pools holds the weighted transition table of every state that draws.
	Pools map[ai.StateID]*ai.Pool[ai.StateID]

	// Rand returns uniform values in [0, 1). Nil means math/rand/v2.
	Rand func() float64
}

// DefaultPools returns the stock transition tables.
func DefaultPools() map[ai.StateID]*ai.Pool[ai.StateID] {
	return map[ai.StateID]*ai.Pool[ai.StateID]{
		Idle: ai.MustPool(
			ai.To(Sleeping, 25),
			ai.To(Quack, 35),
			ai.To(Walking, 5),
			ai.Stay[ai.StateID](35),
		),
		Sleeping: ai.MustPool(
			ai.To(Idle, 60),
			ai.Stay[ai.StateID](40),
		),
	}
}

func DefaultConfig() Config {
	cfg, err := ConfigFromSpec(prefabs.DefaultDuckSpec())
	if err != nil {
		panic(err)
	}
	return cfg
}

// ConfigFromSpec validates a DuckSpec and turns it into a Config. Pools it
// leaves out keep their stock tables.
func ConfigFromSpec(spec prefabs.DuckSpec) (Config, error) {
	if err := spec.Validate(); err != nil {
		return Config{}, err
	}

	pools := DefaultPools()
	for name, entries := range spec.Pools {
		from := ai.StateID(name)
		if _, ok := states[from]; !ok {
			return Config{}, fmt.Errorf("duck: pools.%s: %w", name, ai.ErrUnknownState)
		}
		if _, ok := pools[from]; !ok {
			return Config{}, fmt.Errorf("duck: pools.%s: %w", name, ErrUnusedPool)
		}

		outcomes := make([]ai.Outcome[ai.StateID], 0, len(entries))
		for i, e := range entries {
			if e.Stay {
				outcomes = append(outcomes, ai.Stay[ai.StateID](e.Weight))
				continue
			}
			to := ai.StateID(e.To)
			if _, ok := states[to]; !ok {
				return Config{}, fmt.Errorf("duck: pools.%s[%d] -> %q: %w", name, i, e.To, ai.ErrUnknownState)
			}
			outcomes = append(outcomes, ai.To(to, e.Weight))
		}
		pool, err := ai.NewPool(outcomes...)
		if err != nil {
			return Config{}, fmt.Errorf("duck: pools.%s: %w", name, err)
		}
		pools[from] = pool
	}

	return Config{
		Width:            spec.Width,
		Height:           spec.Height,
		Speed:            spec.Speed,
		MouseProximity:   spec.MouseProximity,
		Jitter:           spec.Jitter,
		UpdatesPerSecond: spec.UpdatesPerSecond,
		Sprite:           spec.Sprite,
		SpriteCols:       spec.SpriteCols,
		SpriteScale:      spec.SpriteScale,
		Container:        spec.Container,
		Debug:            spec.Debug,
		Pools:            pools,
	}, nil
}

package prefabs

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// DuckFile is the prefab read when no other config is named.
const DuckFile = "duck.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid duck spec")

// PoolEntrySpec is one weighted outcome of a transition pool. Exactly one of
// To and Stay must be set.
type PoolEntrySpec struct {
	To     string  `yaml:"to"`
	Stay   bool    `yaml:"stay"`
	Weight float64 `yaml:"weight"`
}

type DuckSpec struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Speed            float64 `yaml:"speed"`
	MouseProximity   float64 `yaml:"mouse_proximity"`
	Jitter           float64 `yaml:"jitter"`
	UpdatesPerSecond float64 `yaml:"updates_per_second"`
	Sprite           string  `yaml:"sprite"`
	SpriteCols       int     `yaml:"sprite_cols"`
	SpriteScale      float64 `yaml:"sprite_scale"`
	Container        string  `yaml:"container"`
	Debug            bool    `yaml:"debug"`

	// Pools overrides the weighted transition tables, keyed by the state that
	// draws from them.
	Pools map[string][]PoolEntrySpec `yaml:"pools"`

	Spawn          bool `yaml:"spawn"`
	ClickSpawn     bool `yaml:"click_spawn"`
	ClickDespawnMS int  `yaml:"click_despawn_ms"`
}

// DefaultDuckSpec returns the values used for every key a config leaves out.
func DefaultDuckSpec() DuckSpec {
	return DuckSpec{
		Width:            32,
		Height:           32,
		Speed:            250,
		MouseProximity:   48,
		Jitter:           32,
		UpdatesPerSecond: 60,
		Sprite:           "duck.png",
		SpriteCols:       4,
		SpriteScale:      1,
		Container:        "screen",
		Spawn:            true,
		ClickDespawnMS:   5000,
	}
}

// LoadDuckSpec reads filename and lays its values over DefaultDuckSpec.
func LoadDuckSpec(filename string) (DuckSpec, error) {
	spec := DefaultDuckSpec()
	data, err := Load(filename)
	if err != nil {
		return spec, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return spec, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	if err := spec.Validate(); err != nil {
		return spec, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

func (s DuckSpec) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: size %vx%v", ErrInvalidSpec, s.Width, s.Height)
	case s.Speed < 0:
		return fmt.Errorf("%w: speed %v", ErrInvalidSpec, s.Speed)
	case s.MouseProximity < 0:
		return fmt.Errorf("%w: mouse_proximity %v", ErrInvalidSpec, s.MouseProximity)
	case s.Jitter < 0:
		return fmt.Errorf("%w: jitter %v", ErrInvalidSpec, s.Jitter)
	case s.UpdatesPerSecond <= 0:
		return fmt.Errorf("%w: updates_per_second %v", ErrInvalidSpec, s.UpdatesPerSecond)
	case s.SpriteCols < 1:
		return fmt.Errorf("%w: sprite_cols %d", ErrInvalidSpec, s.SpriteCols)
	case s.SpriteScale <= 0:
		return fmt.Errorf("%w: sprite_scale %v", ErrInvalidSpec, s.SpriteScale)
	}

	for state, entries := range s.Pools {
		for i, e := range entries {
			if (e.To == "") == !e.Stay {
				return fmt.Errorf("%w: pools.%s[%d] needs exactly one of to/stay", ErrInvalidSpec, state, i)
			}
			if e.Weight < 0 {
				return fmt.Errorf("%w: pools.%s[%d] weight %v", ErrInvalidSpec, state, i, e.Weight)
			}
		}
	}
	return nil
}

package ai

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
)

var ErrInvalidWeight = errors.New("ai: invalid pool weight")

// Outcome is one weighted entry of a Pool. Stay marks the entry that keeps
// the caller where it is instead of yielding Value.
type Outcome[T any] struct {
	Value  T
	Weight float64
	Stay   bool
}

// To builds an outcome that yields v.
func To[T any](v T, weight float64) Outcome[T] {
	return Outcome[T]{Value: v, Weight: weight}
}

// Stay builds the no-transition outcome.
func Stay[T any](weight float64) Outcome[T] {
	return Outcome[T]{Weight: weight, Stay: true}
}

// Pool is a weighted discrete sampler. Draws are independent of each other;
// ties are broken by list order.
type Pool[T any] struct {
	outcomes []Outcome[T]
	total    float64
	source   func() float64
}

// NewPool builds a pool from outcomes in order. Empty or zero-total pools are
// valid and always stay.
func NewPool[T any](outcomes ...Outcome[T]) (*Pool[T], error) {
	total := 0.0
	for i, o := range outcomes {
		if o.Weight < 0 || math.IsNaN(o.Weight) || math.IsInf(o.Weight, 0) {
			return nil, fmt.Errorf("ai: outcome %d weight %v: %w", i, o.Weight, ErrInvalidWeight)
		}
		total += o.Weight
	}
	return &Pool[T]{
		outcomes: append([]Outcome[T](nil), outcomes...),
		total:    total,
		source:   rand.Float64,
	}, nil
}

// MustPool is NewPool for static tables.
func MustPool[T any](outcomes ...Outcome[T]) *Pool[T] {
	p, err := NewPool(outcomes...)
	if err != nil {
		panic(err)
	}
	return p
}

// WithSource returns a copy of the pool that draws from src, which must
// return values in [0, 1).
func (p *Pool[T]) WithSource(src func() float64) *Pool[T] {
	clone := *p
	if src == nil {
		src = rand.Float64
	}
	clone.source = src
	return &clone
}

func (p *Pool[T]) Total() float64 { return p.total }

func (p *Pool[T]) Len() int { return len(p.outcomes) }

func (p *Pool[T]) Outcomes() []Outcome[T] {
	return append([]Outcome[T](nil), p.outcomes...)
}

// Pull draws one outcome. ok is false when the drawn outcome is Stay, and
// always when the pool has no positive weight.
func (p *Pool[T]) Pull() (v T, ok bool) {
	if p == nil || p.total <= 0 {
		return v, false
	}

	draw := p.source() * p.total
	cumulative := 0.0
	last := -1
	for i, o := range p.outcomes {
		if o.Weight <= 0 {
			continue
		}
		last = i
		cumulative += o.Weight
		if cumulative > draw {
			return p.pick(i)
		}
	}

	// round-off past the end of the table
	return p.pick(last)
}

func (p *Pool[T]) pick(i int) (v T, ok bool) {
	if i < 0 {
		return v, false
	}
	o := p.outcomes[i]
	if o.Stay {
		return v, false
	}
	return o.Value, true
}

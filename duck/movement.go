package duck

import (
	"math"

	"github.com/jakecoffman/cp"
)

// MoveToward steps from toward dest by at most max. The step is scaled by the
// larger axis delta rather than the euclidean length, so diagonal moves cover
// more ground than straight ones. A destination within max on both axes is
// reached exactly.
func MoveToward(from, dest cp.Vector, max float64) cp.Vector {
	delta := dest.Sub(from)
	d := math.Max(math.Abs(delta.X), math.Abs(delta.Y))
	if d <= max {
		return dest
	}
	return from.Add(delta.Mult(max / d))
}

// Bounds returns the box the centre of a footprint with half extents half may
// occupy inside a w x h container.
func Bounds(w, h float64, half cp.Vector) cp.BB {
	return cp.BB{L: half.X, B: half.Y, R: w - half.X, T: h - half.Y}
}

// Clamp keeps p inside bb.
func Clamp(p cp.Vector, bb cp.BB) cp.Vector {
	return bb.ClampVect(&p)
}

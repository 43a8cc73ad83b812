package component

// Clip is an ordered list of sprite-sheet frame indices, each held on screen
// for the matching number of seconds.
type Clip struct {
	Frames []int
	Holds  []float64
}

// NewClip builds a clip that holds every frame for the same time.
func NewClip(hold float64, frames ...int) Clip {
	holds := make([]float64, len(frames))
	for i := range holds {
		holds[i] = hold
	}
	return Clip{Frames: frames, Holds: holds}
}

// Len returns the number of frames in the clip.
func (c Clip) Len() int { return len(c.Frames) }

// Hold returns how long frame i stays on screen. Missing holds count as zero,
// so such a frame advances on the next update.
func (c Clip) Hold(i int) float64 {
	if i < 0 || i >= len(c.Holds) {
		return 0
	}
	return c.Holds[i]
}

// Animator cycles a Clip through a sprite sheet laid out left-to-right,
// top-to-bottom with Cols frames per row. It has no clock of its own; the
// owner feeds it elapsed seconds.
type Animator struct {
	Cols int

	clip    Clip
	cursor  int
	elapsed float64
}

// NewAnimator creates an Animator for a sheet with cols frames per row.
// Values below 1 are treated as a single column.
func NewAnimator(cols int) *Animator {
	if cols < 1 {
		cols = 1
	}
	return &Animator{Cols: cols}
}

// Play replaces the active clip and rewinds to its first frame.
func (a *Animator) Play(clip Clip) {
	if a == nil {
		return
	}
	a.clip = clip
	a.cursor = 0
	a.elapsed = 0
}

// Update adds dt seconds to the current frame and reports whether the cursor
// moved. Time past the hold is dropped, not carried into the next frame.
func (a *Animator) Update(dt float64) bool {
	if a == nil || a.clip.Len() == 0 {
		return false
	}
	a.elapsed += dt
	if a.elapsed <= a.clip.Hold(a.cursor) {
		return false
	}
	a.elapsed = 0
	a.cursor = (a.cursor + 1) % a.clip.Len()
	return true
}

// Cursor returns the position inside the active clip.
func (a *Animator) Cursor() int { return a.cursor }

// Frame returns the sheet frame index currently shown, or 0 without a clip.
func (a *Animator) Frame() int {
	if a == nil || a.clip.Len() == 0 {
		return 0
	}
	return a.clip.Frames[a.cursor]
}

// Clip returns the active clip.
func (a *Animator) Clip() Clip { return a.clip }

// Cell returns the sheet column and row of the current frame.
func (a *Animator) Cell() (col, row int) {
	return SheetCell(a.Frame(), a.Cols)
}

// Offset returns the background-style offset that brings the current frame
// into a frameW x frameH viewport.
func (a *Animator) Offset(frameW, frameH float64) (dx, dy float64) {
	col, row := a.Cell()
	return -float64(col) * frameW, -float64(row) * frameH
}

// SheetCell maps a frame index to its column and row in a sheet with cols
// frames per row.
func SheetCell(frame, cols int) (col, row int) {
	if cols < 1 {
		cols = 1
	}
	return frame % cols, frame / cols
}

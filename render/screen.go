package render

// Screen is the container ducks roam when they live on the desktop overlay.
// Its size follows the window layout.
type Screen struct {
	name string
	w, h float64
}

func NewScreen(name string, w, h float64) *Screen {
	return &Screen{name: name, w: w, h: h}
}

func (s *Screen) Name() string { return s.name }

func (s *Screen) Size() (float64, float64) { return s.w, s.h }

// Resize is called from the game's layout.
func (s *Screen) Resize(w, h float64) {
	s.w, s.h = w, h
}

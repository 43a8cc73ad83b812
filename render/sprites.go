// Package render draws ducks with ebiten.
package render

import (
	"cmp"
	"image"
	"image/color"
	"log/slog"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/quackpet/duck"
	"golang.org/x/image/font/basicfont"
)

var Logger = slog.Default()

var labelFace = ebtext.NewGoXFace(basicfont.Face7x13)

var placeholderColor = color.NRGBA{R: 0xfa, G: 0xd6, B: 0x3c, A: 0xff}

type visual struct {
	handle duck.Handle
	spec   duck.VisualSpec

	x, y   float64
	dx, dy float64
	z      int
	label  string

	container string
	attached  bool

	sheet       *ebiten.Image
	loaded      bool
	placeholder bool
}

// Sprites is a duck.Renderer that keeps every visual in memory and draws the
// attached ones each frame.
type Sprites struct {
	next    duck.Handle
	visuals map[duck.Handle]*visual
}

func NewSprites() *Sprites {
	return &Sprites{visuals: map[duck.Handle]*visual{}}
}

func (s *Sprites) CreateVisual(spec duck.VisualSpec) duck.Handle {
	s.next++
	s.visuals[s.next] = &visual{handle: s.next, spec: spec}
	return s.next
}

func (s *Sprites) SetPosition(h duck.Handle, x, y float64) {
	if v := s.visuals[h]; v != nil {
		v.x, v.y = x, y
	}
}

func (s *Sprites) SetSpriteOffset(h duck.Handle, dx, dy float64) {
	if v := s.visuals[h]; v != nil {
		v.dx, v.dy = dx, dy
	}
}

func (s *Sprites) SetStackOrder(h duck.Handle, z int) {
	if v := s.visuals[h]; v != nil {
		v.z = z
	}
}

func (s *Sprites) SetLabel(h duck.Handle, text string) {
	if v := s.visuals[h]; v != nil {
		v.label = text
	}
}

func (s *Sprites) Attach(h duck.Handle, c duck.Container) {
	if v := s.visuals[h]; v != nil {
		v.attached = true
		v.container = c.Name()
	}
}

// Detach removes the visual for good.
func (s *Sprites) Detach(h duck.Handle) {
	delete(s.visuals, h)
}

// Len returns how many visuals exist, attached or not.
func (s *Sprites) Len() int { return len(s.visuals) }

// Reload drops cached sheets so they are read again on the next Draw.
func (s *Sprites) Reload() {
	for _, v := range s.visuals {
		if v.loaded {
			ForgetImage(v.spec.Sprite)
		}
		v.sheet, v.loaded, v.placeholder = nil, false, false
	}
}

// drawOrder returns the attached visuals bottom first.
func (s *Sprites) drawOrder() []*visual {
	out := make([]*visual, 0, len(s.visuals))
	for _, v := range s.visuals {
		if v.attached {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, func(a, b *visual) int {
		if c := cmp.Compare(a.z, b.z); c != 0 {
			return c
		}
		return cmp.Compare(a.handle, b.handle)
	})
	return out
}

func (s *Sprites) Draw(screen *ebiten.Image) {
	for _, v := range s.drawOrder() {
		s.drawVisual(screen, v)
	}
}

func (s *Sprites) drawVisual(screen *ebiten.Image, v *visual) {
	frame := s.frame(v)
	if frame == nil {
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(v.spec.Scale, v.spec.Scale)
	op.GeoM.Translate(v.x, v.y)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(frame, op)

	if v.spec.Debug && v.label != "" {
		top := &ebtext.DrawOptions{}
		top.GeoM.Translate(v.x, v.y-labelFace.Metrics().HAscent-2)
		top.ColorScale.ScaleWithColor(color.White)
		ebtext.Draw(screen, v.label, labelFace, top)
	}
}

// frame cuts the current cell out of the visual's sheet. The offset is stored
// scaled and negated, so it is turned back into sheet pixels here.
func (s *Sprites) frame(v *visual) *ebiten.Image {
	if !v.loaded {
		v.loaded = true
		img, err := LoadImage(v.spec.Sprite)
		if err != nil {
			Logger.Warn("sprite sheet unavailable, drawing placeholder", "sprite", v.spec.Sprite, "err", err)
			img = ebiten.NewImage(int(v.spec.Width), int(v.spec.Height))
			img.Fill(placeholderColor)
			v.placeholder = true
		}
		v.sheet = img
	}
	if v.sheet == nil {
		return nil
	}
	r := frameRect(v.sheet.Bounds(), v.placeholder, v.dx, v.dy, v.spec)
	if r.Empty() {
		return nil
	}
	return v.sheet.SubImage(r).(*ebiten.Image)
}

// frameRect is the part of a sheet with the given bounds shown for an offset.
// A placeholder is a single frame and is always shown whole.
func frameRect(sheet image.Rectangle, placeholder bool, dx, dy float64, spec duck.VisualSpec) image.Rectangle {
	if placeholder {
		return sheet
	}
	return SourceRect(dx, dy, spec).Intersect(sheet)
}

// SourceRect returns the sheet rectangle shown for a scaled sprite offset.
func SourceRect(dx, dy float64, spec duck.VisualSpec) image.Rectangle {
	if spec.Scale <= 0 {
		return image.Rectangle{}
	}
	x := int(math.Round(-dx / spec.Scale))
	y := int(math.Round(-dy / spec.Scale))
	return image.Rect(x, y, x+int(spec.Width), y+int(spec.Height))
}

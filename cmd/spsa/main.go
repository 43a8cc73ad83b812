// spsa previews the duck's animation clips from a sprite sheet.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/quackpet/ai"
	"github.com/milk9111/quackpet/component"
	"github.com/milk9111/quackpet/duck"
	"github.com/milk9111/quackpet/prefabs"
	"github.com/milk9111/quackpet/render"
)

const (
	windowSize = 512
	tps        = 60
)

type previewGame struct {
	spec   prefabs.DuckSpec
	sheet  *ebiten.Image
	states []ai.StateID
	state  int
	anim   *component.Animator
}

func newPreview(spec prefabs.DuckSpec, sheet *ebiten.Image, start ai.StateID) *previewGame {
	g := &previewGame{
		spec:   spec,
		sheet:  sheet,
		states: duck.States(),
		anim:   component.NewAnimator(spec.SpriteCols),
	}
	if i := slices.Index(g.states, start); i >= 0 {
		g.state = i
	}
	g.play()
	return g
}

func (g *previewGame) play() {
	clip, _ := duck.ClipFor(g.states[g.state])
	g.anim.Play(clip)
}

func (g *previewGame) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyRight):
		g.state = (g.state + 1) % len(g.states)
		g.play()
	case inpututil.IsKeyJustPressed(ebiten.KeyLeft):
		g.state = (g.state + len(g.states) - 1) % len(g.states)
		g.play()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	}
	g.anim.Update(1.0 / tps)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})

	fw, fh := int(g.spec.Width), int(g.spec.Height)
	col, row := g.anim.Cell()
	sub := g.sheet.SubImage(image.Rect(col*fw, row*fh, col*fw+fw, row*fh+fh)).(*ebiten.Image)

	scale := g.spec.SpriteScale * 4
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((windowSize-float64(fw)*scale)/2, (windowSize-float64(fh)*scale)/2)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(sub, op)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  frame %d  (left/right to switch)", g.states[g.state], g.anim.Frame()))
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return windowSize, windowSize
}

func main() {
	configPath := flag.String("config", prefabs.DuckFile, "duck config file (yaml)")
	state := flag.String("state", string(duck.Idle), "state whose clip plays first")
	flag.Parse()

	spec, err := prefabs.LoadDuckSpec(*configPath)
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}
	sheet, err := render.LoadImage(spec.Sprite)
	if err != nil {
		slog.Error("load sprite sheet", "sprite", spec.Sprite, "err", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(windowSize, windowSize)
	ebiten.SetWindowTitle("Duck Clip Preview")
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(newPreview(spec, sheet, ai.StateID(*state))); err != nil {
		slog.Error("preview exited", "err", err)
		os.Exit(1)
	}
}

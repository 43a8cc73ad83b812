package main

import (
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/quackpet/ai"
	"github.com/milk9111/quackpet/common"
	"github.com/milk9111/quackpet/duck"
	"github.com/milk9111/quackpet/pointer"
	"github.com/milk9111/quackpet/prefabs"
	"github.com/milk9111/quackpet/render"
)

const (
	pauseFadeIn = 200 * time.Millisecond
	pauseDim    = 0.5
)

// Options are the command-line overrides applied on top of the duck config.
type Options struct {
	ConfigPath string
	Debug      bool
	Click      bool
	Count      int // <0 means one duck unless the config turns spawning off
	Watch      bool
}

type Game struct {
	opts   Options
	logger *slog.Logger

	spec    prefabs.DuckSpec
	clock   *Clock
	sched   *ai.ManualScheduler
	sprites *render.Sprites
	screen  *render.Screen
	pointer *pointer.Tracker
	flock   *Flock
	watcher *prefabs.Watcher

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	dim     *ebiten.Image
}

// NewGame loads the duck config and spawns the starting ducks on a screen
// of w x h pixels.
func NewGame(opts Options, w, h float64, logger *slog.Logger) (*Game, error) {
	if logger == nil {
		logger = slog.Default()
	}
	spec, cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:    opts,
		logger:  logger,
		spec:    spec,
		clock:   NewClock(),
		sched:   ai.NewManualScheduler(),
		sprites: render.NewSprites(),
		screen:  render.NewScreen(spec.Container, w, h),
		pointer: pointer.Listen(),
	}
	g.flock = NewFlock(cfg, duck.Deps{
		Renderer:  g.sprites,
		Container: g.screen,
		Pointer:   g.pointer,
		Scheduler: g.sched,
		Logger:    logger,
	})

	for range startCount(opts, spec) {
		if _, err := g.flock.Spawn(0); err != nil {
			return nil, err
		}
	}

	if opts.Watch {
		dir := prefabs.Dir(opts.ConfigPath)
		if watcher, err := prefabs.NewWatcher(dir); err != nil {
			logger.Warn("config watch disabled", "dir", dir, "err", err)
		} else {
			g.watcher = watcher
		}
	}

	logger.Info("quackpet started",
		"ducks", g.flock.Len(),
		"click_spawn", spec.ClickSpawn,
		"container", spec.Container,
		"width", w, "height", h,
	)
	return g, nil
}

func loadConfig(opts Options) (prefabs.DuckSpec, duck.Config, error) {
	spec, err := prefabs.LoadDuckSpec(opts.ConfigPath)
	if err != nil {
		return prefabs.DuckSpec{}, duck.Config{}, err
	}
	spec.Debug = spec.Debug || opts.Debug
	spec.ClickSpawn = spec.ClickSpawn || opts.Click

	cfg, err := duck.ConfigFromSpec(spec)
	if err != nil {
		return prefabs.DuckSpec{}, duck.Config{}, err
	}
	return spec, cfg, nil
}

func startCount(opts Options, spec prefabs.DuckSpec) int {
	if opts.Count >= 0 {
		return opts.Count
	}
	if spec.Spawn {
		return 1
	}
	return 0
}

// ClickSpawn reports whether left clicks spawn ducks. The window only takes
// mouse input when it does.
func (g *Game) ClickSpawn() bool { return g.spec.ClickSpawn }

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}
	if g.paused {
		if g.pauseUI == nil {
			g.pauseUI = NewPauseUI(g)
		}
		g.pauseUI.Update()
		return nil
	}

	g.pollWatcher()

	cx, cy := ebiten.CursorPosition()
	g.pointer.Move(float64(cx), float64(cy))

	now := g.clock.Elapsed()
	g.sched.AdvanceTo(now)

	if g.spec.ClickSpawn && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.spawnAt(cp.Vector{X: float64(cx), Y: float64(cy)}, now)
	}

	g.flock.Step(now)
	return nil
}

func (g *Game) spawnAt(pos cp.Vector, now time.Duration) {
	ttl := time.Duration(g.spec.ClickDespawnMS) * time.Millisecond
	if _, err := g.flock.SpawnAt(pos, now, ttl); err != nil {
		g.logger.Error("click spawn failed", "err", err)
	}
}

func (g *Game) setPaused(paused bool) {
	if g.paused == paused {
		return
	}
	g.paused = paused
	if paused {
		g.clock.Pause()
	} else {
		g.clock.Resume()
	}
	ebiten.SetWindowMousePassthrough(!paused && !g.spec.ClickSpawn)
	g.logger.Debug("pause toggled", "paused", paused)
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(name)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("config watch error", "err", err)
			}
		default:
			return
		}
	}
}

// reload re-reads the config after name changed on disk. A broken file keeps
// the running config.
func (g *Game) reload(name string) {
	if !isConfigFile(name, g.opts.ConfigPath) {
		return
	}
	spec, cfg, err := loadConfig(g.opts)
	if err != nil {
		g.logger.Error("config reload failed", "file", name, "err", err)
		return
	}
	g.spec = spec
	g.sprites.Reload()
	if err := g.flock.Reconfigure(cfg, g.clock.Elapsed()); err != nil {
		g.logger.Error("config reload failed", "file", name, "err", err)
		return
	}
	ebiten.SetWindowMousePassthrough(!g.paused && !spec.ClickSpawn)
	g.logger.Info("config reloaded", "file", name)
}

func isConfigFile(name, configPath string) bool {
	if configPath == "" {
		configPath = prefabs.DuckFile
	}
	return filepath.Base(name) == filepath.Base(configPath)
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.sprites.Draw(screen)

	if g.spec.Debug {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("Ducks: %d    FPS: %.2f", g.flock.Len(), ebiten.ActualFPS()))
	}

	if g.paused {
		g.drawDim(screen)
		if g.pauseUI != nil {
			g.pauseUI.Draw(screen)
		}
	}
}

func (g *Game) drawDim(screen *ebiten.Image) {
	if g.dim == nil {
		g.dim = ebiten.NewImage(1, 1)
		g.dim.Fill(color.White)
	}
	t := common.Clamp01(float64(g.clock.PauseDuration()) / float64(pauseFadeIn))
	a := float32(common.Lerp(0, pauseDim, t))

	b := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy()))
	op.ColorScale.Scale(0, 0, 0, a)
	screen.DrawImage(g.dim, op)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.screen.Resize(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}

// Close stops the config watcher and sends every duck away.
func (g *Game) Close() error {
	g.flock.DepartAll()
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/quackpet/ai"
	"github.com/milk9111/quackpet/duck"
	"github.com/milk9111/quackpet/prefabs"
	"github.com/milk9111/quackpet/render"
)

func main() {
	configPath := flag.String("config", prefabs.DuckFile, "duck config file (yaml); falls back to the embedded default")
	debug := flag.Bool("debug", false, "enable debug mode")
	count := flag.Int("n", -1, "number of ducks to spawn at start (default: 1 unless the config sets spawn: false)")
	click := flag.Bool("click", false, "spawn a duck on every left click")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	watch := flag.Bool("watch", false, "reload the duck config when it changes on disk")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	ai.Logger = logger
	duck.Logger = logger
	render.Logger = logger

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	w, h := ebiten.Monitor().Size()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowPosition(0, 0)
	ebiten.SetWindowTitle("quackpet")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(true)

	game, err := NewGame(Options{
		ConfigPath: *configPath,
		Debug:      *debug,
		Click:      *click,
		Count:      *count,
		Watch:      *watch,
	}, float64(w), float64(h), logger)
	if err != nil {
		logger.Error("startup failed", "err", err)
		os.Exit(1)
	}

	ebiten.SetWindowMousePassthrough(!game.ClickSpawn())

	err = ebiten.RunGameWithOptions(game, &ebiten.RunGameOptions{
		ScreenTransparent: true,
		SkipTaskbar:       true,
	})
	if cerr := game.Close(); cerr != nil {
		logger.Warn("shutdown", "err", cerr)
	}
	if err != nil {
		logger.Error("game exited", "err", err)
		os.Exit(1)
	}
}

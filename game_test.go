package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/quackpet/prefabs"
)

func TestStartCount(t *testing.T) {
	on := prefabs.DefaultDuckSpec()
	off := prefabs.DefaultDuckSpec()
	off.Spawn = false

	tests := []struct {
		name  string
		count int
		spec  prefabs.DuckSpec
		want  int
	}{
		{"default spawns one", -1, on, 1},
		{"spawn off", -1, off, 0},
		{"flag wins", 3, off, 3},
		{"flag zero", 0, on, 0},
	}
	for _, tt := range tests {
		if got := startCount(Options{Count: tt.count}, tt.spec); got != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestLoadConfigAppliesFlags(t *testing.T) {
	spec, cfg, err := loadConfig(Options{ConfigPath: prefabs.DuckFile, Debug: true, Click: true})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !spec.Debug || !cfg.Debug || !spec.ClickSpawn {
		t.Fatalf("flags not applied: debug=%v/%v click=%v", spec.Debug, cfg.Debug, spec.ClickSpawn)
	}
}

func TestIsConfigFile(t *testing.T) {
	tests := []struct {
		name, path string
		want       bool
	}{
		{"prefabs/duck.yaml", "", true},
		{"/home/me/ducks/duck.yaml", "duck.yaml", true},
		{"prefabs/other.yaml", "", false},
		{"/tmp/pond.yaml", "/tmp/pond.yaml", true},
	}
	for _, tt := range tests {
		if got := isConfigFile(tt.name, tt.path); got != tt.want {
			t.Fatalf("isConfigFile(%q, %q) = %v, want %v", tt.name, tt.path, got, tt.want)
		}
	}
}

func TestGameCloseStopsWatcherAndDucks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pond.yaml")
	if err := os.WriteFile(path, []byte("speed: 100\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	g, err := NewGame(Options{ConfigPath: path, Count: 2, Watch: true}, 800, 600,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	if g.watcher == nil || g.flock.Len() != 2 {
		t.Fatalf("expected a watcher and 2 ducks, have watcher=%v ducks=%d", g.watcher != nil, g.flock.Len())
	}
	events := g.watcher.Events

	if err := g.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := <-events; ok {
		t.Fatalf("watcher still open after Close")
	}
	if g.flock.Len() != 0 || g.sprites.Len() != 0 {
		t.Fatalf("ducks left after Close: %d ducks %d visuals", g.flock.Len(), g.sprites.Len())
	}
}

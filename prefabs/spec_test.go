package prefabs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmbeddedDuckSpec(t *testing.T) {
	spec, err := LoadDuckSpec(DuckFile)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	def := DefaultDuckSpec()
	if spec.Width != def.Width || spec.Speed != def.Speed || spec.SpriteCols != def.SpriteCols {
		t.Fatalf("embedded spec disagrees with defaults: %+v", spec)
	}
	idle := spec.Pools["idle"]
	if len(idle) != 4 || idle[0].To != "sleeping" || idle[0].Weight != 25 || !idle[3].Stay {
		t.Fatalf("unexpected idle pool %+v", idle)
	}
}

func TestLoadDuckSpecMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.yaml")
	data := []byte("width: 16\nspeed: 100\ndebug: true\npools:\n  sleeping:\n    - {to: idle, weight: 1}\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	spec, err := LoadDuckSpec(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	cases := []struct {
		name string
		ok   bool
	}{
		{"width", spec.Width == 16},
		{"height_default", spec.Height == 32},
		{"speed", spec.Speed == 100},
		{"debug", spec.Debug},
		{"ups_default", spec.UpdatesPerSecond == 60},
		{"sprite_default", spec.Sprite == "duck.png"},
		{"spawn_default", spec.Spawn},
		{"pool_override", len(spec.Pools["sleeping"]) == 1},
	}
	for _, c := range cases {
		if !c.ok {
			t.Fatalf("%s: unexpected spec %+v", c.name, spec)
		}
	}
}

func TestDuckSpecValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*DuckSpec)
	}{
		{"zero_width", func(s *DuckSpec) { s.Width = 0 }},
		{"negative_speed", func(s *DuckSpec) { s.Speed = -1 }},
		{"negative_jitter", func(s *DuckSpec) { s.Jitter = -3 }},
		{"zero_ups", func(s *DuckSpec) { s.UpdatesPerSecond = 0 }},
		{"zero_cols", func(s *DuckSpec) { s.SpriteCols = 0 }},
		{"zero_scale", func(s *DuckSpec) { s.SpriteScale = 0 }},
		{"entry_both", func(s *DuckSpec) {
			s.Pools = map[string][]PoolEntrySpec{"idle": {{To: "quack", Stay: true, Weight: 1}}}
		}},
		{"entry_neither", func(s *DuckSpec) {
			s.Pools = map[string][]PoolEntrySpec{"idle": {{Weight: 1}}}
		}},
		{"entry_negative", func(s *DuckSpec) {
			s.Pools = map[string][]PoolEntrySpec{"idle": {{To: "quack", Weight: -1}}}
		}},
	}

	if err := DefaultDuckSpec().Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := DefaultDuckSpec()
			c.mutate(&s)
			if err := s.Validate(); !errors.Is(err, ErrInvalidSpec) {
				t.Fatalf("expected ErrInvalidSpec, got %v", err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := LoadDuckSpec("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected an error for a missing prefab")
	}
}

func TestWatcherReportsYAMLWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	if err != nil {
		t.Fatalf("watcher failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	target := filepath.Join(dir, "duck.yaml")
	if err := os.WriteFile(target, []byte("width: 20\n"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "duck.yaml" {
			t.Fatalf("expected duck.yaml, got %s", name)
		}
	case err := <-w.Errors:
		t.Fatalf("watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatalf("no event for the yaml write")
	}
}

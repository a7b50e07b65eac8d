package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Motion.TileDuration != 0.4 {
		t.Errorf("expected tile_duration 0.4, got %v", cfg.Motion.TileDuration)
	}
	if cfg.Actor.Heading != "up" {
		t.Errorf("expected spawn heading up, got %q", cfg.Actor.Heading)
	}
	if cfg.Screen.TargetFPS != 120 {
		t.Errorf("expected target_fps 120, got %d", cfg.Screen.TargetFPS)
	}
	if cfg.Derived.TileDuration32 != float32(0.4) {
		t.Errorf("expected derived tile duration 0.4, got %f", cfg.Derived.TileDuration32)
	}
	if cfg.Derived.TurnRate32 != float32(4.712389) {
		t.Errorf("expected derived turn rate 4.712389, got %f", cfg.Derived.TurnRate32)
	}
}

func TestLoadOverridesOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("motion:\n  tile_duration: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}
	if cfg.Motion.TileDuration != 0.5 {
		t.Errorf("expected overridden tile_duration 0.5, got %v", cfg.Motion.TileDuration)
	}
	if cfg.Motion.TurnRate != 4.712389 {
		t.Errorf("expected default turn_rate to survive, got %v", cfg.Motion.TurnRate)
	}
	if cfg.Grid.Width != 8 {
		t.Errorf("expected default grid width 8, got %d", cfg.Grid.Width)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{name: "zero tile duration", yaml: "motion:\n  tile_duration: 0\n", want: "tile_duration"},
		{name: "negative turn rate", yaml: "motion:\n  turn_rate: -1\n", want: "turn_rate"},
		{name: "unknown heading", yaml: "actor:\n  heading: north\n", want: "actor.heading"},
		{name: "empty grid", yaml: "grid:\n  width: 0\n", want: "grid dimensions"},
		{name: "tile duration below float32 range", yaml: "motion:\n  tile_duration: 1e-50\n", want: "tile_duration"},
		{name: "turn rate below float32 range", yaml: "motion:\n  turn_rate: 1e-50\n", want: "turn_rate"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped not-exist error, got %v", err)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Motion.TileDuration = 0.6

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing yaml: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if loaded.Motion.TileDuration != 0.6 {
		t.Errorf("expected tile_duration 0.6 after reload, got %v", loaded.Motion.TileDuration)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected Cfg() to panic before Init()")
		}
	}()
	Cfg()
}

func TestLoadAcceptsHeadingAliases(t *testing.T) {
	for _, heading := range []string{"Up", "u", "LEFT"} {
		t.Run(heading, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte("actor:\n  heading: "+heading+"\n"), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err != nil {
				t.Errorf("expected heading %q to load, got %v", heading, err)
			}
		})
	}
}

func TestDerivedHoldWindow(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Derived.HoldWindow32 != float32(cfg.Input.HoldWindow) {
		t.Errorf("expected derived hold window %f, got %f", cfg.Input.HoldWindow, cfg.Derived.HoldWindow32)
	}
}

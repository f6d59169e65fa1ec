package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigsValid(t *testing.T) {
	if err := DefaultPongConfig().Validate(); err != nil {
		t.Errorf("default pong config invalid: %v", err)
	}
	if err := DefaultChaseConfig().Validate(); err != nil {
		t.Errorf("default chase config invalid: %v", err)
	}
}

func TestLoadPongEmbeddedDefault(t *testing.T) {
	cfg, err := LoadPong("")
	if err != nil {
		t.Fatalf("LoadPong() failed: %v", err)
	}
	if cfg.Field.Width == 0 || cfg.WinScore == 0 {
		t.Errorf("embedded default left zero values: %+v", cfg)
	}
}

func TestLoadChaseCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chase.yaml")
	content := []byte(`
grid:
  width: 40
  height: 16
hunters: 3
jitter: 0.5
escape_bonus: 50
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("cannot write config: %v", err)
	}

	cfg, err := LoadChase(path)
	if err != nil {
		t.Fatalf("LoadChase() failed: %v", err)
	}
	if cfg.Grid.Width != 40 || cfg.Hunters != 3 {
		t.Errorf("custom config not applied: %+v", cfg)
	}
}

func TestLoadChaseMissingCustomPath(t *testing.T) {
	if _, err := LoadChase(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadChase() with a missing explicit path succeeded, expected an error")
	}
}

func TestLoadPongRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pong.yaml")
	content := []byte(`
field:
  width: 5
  height: 5
paddles:
  height: 4
ball:
  speed: 0.5
win_score: 3
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("cannot write config: %v", err)
	}

	if _, err := LoadPong(path); err == nil {
		t.Error("LoadPong() accepted a field too small to play on")
	}
}

func TestLoadSessionSpec(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.yaml")
	content := []byte(`
game: chase
seed: 42
budget: 200
script: [e, e, n, stay]
repeat: true
`)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("cannot write spec: %v", err)
	}

	spec, err := LoadSessionSpec(path)
	if err != nil {
		t.Fatalf("LoadSessionSpec() failed: %v", err)
	}
	if spec.Game != "chase" || spec.Seed != 42 || spec.Budget != 200 {
		t.Errorf("spec parsed incorrectly: %+v", spec)
	}
	if len(spec.Script) != 4 || !spec.Repeat {
		t.Errorf("script parsed incorrectly: %+v", spec)
	}
}

func TestSessionSpecValidation(t *testing.T) {
	tests := []struct {
		name string
		spec SessionSpec
	}{
		{"missing game", SessionSpec{Budget: 10, Script: []string{"x"}}},
		{"zero budget", SessionSpec{Game: "pong", Script: []string{"x"}}},
		{"empty script", SessionSpec{Game: "pong", Budget: 10}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.spec.Validate(); err == nil {
				t.Error("Validate() succeeded, expected an error")
			}
		})
	}
}

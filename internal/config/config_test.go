package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "driftwood.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[game]
tick_rate = "50ms"
start_scene = "cave"

[physics]
gravity = 2

[render]
backend = "headless"
frames = 10

[debug]
enabled = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Game.TickRate != 50*time.Millisecond || cfg.Game.StartScene != "cave" {
		t.Fatalf("game = %+v", cfg.Game)
	}
	if cfg.Game.ViewWidth != 320 {
		t.Fatal("unset keys lost their defaults")
	}
	tuning := cfg.Physics.Tuning()
	if tuning.Gravity != 2 || tuning.MaxFall != 8 {
		t.Fatalf("tuning = %+v", tuning)
	}
	if cfg.Render.Backend != "headless" || cfg.Render.Frames != 10 {
		t.Fatalf("render = %+v", cfg.Render)
	}
	if !cfg.Debug.Enabled || cfg.Debug.Listen == "" {
		t.Fatalf("debug = %+v", cfg.Debug)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[game\n", "parse config"},
		{"backend", "[render]\nbackend = \"vulkan\"\n", "render.backend"},
		{"tick", "[game]\ntick_rate = \"0s\"\n", "tick_rate"},
		{"scene", "[game]\nstart_scene = \"\"\n", "start_scene"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, c.body))
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("err = %v, want %q", err, c.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("missing file accepted")
	}
}

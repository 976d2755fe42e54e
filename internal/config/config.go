package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/driftwood2d/driftwood/internal/world"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Physics PhysicsConfig `toml:"physics"`
	Render  RenderConfig  `toml:"render"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

type GameConfig struct {
	Name       string        `toml:"name"`
	TickRate   time.Duration `toml:"tick_rate"`
	StartScene string        `toml:"start_scene"`
	ScenesFile string        `toml:"scenes_file"`
	AssetsDir  string        `toml:"assets_dir"`
	ScriptsDir string        `toml:"scripts_dir"`
	ViewWidth  int32         `toml:"view_width"`  // world pixels
	ViewHeight int32         `toml:"view_height"` // world pixels
}

type PhysicsConfig struct {
	Gravity         int32 `toml:"gravity"`
	MaxFall         int32 `toml:"max_fall"`
	JumpImpulse     int32 `toml:"jump_impulse"`
	WalkSpeed       int32 `toml:"walk_speed"`
	Friction        int32 `toml:"friction"`
	KnockbackX      int32 `toml:"knockback_x"`
	KnockbackY      int32 `toml:"knockback_y"`
	InvulnTicks     int   `toml:"invuln_ticks"`
	ProjectileSpeed int32 `toml:"projectile_speed"`
	ProjectileTicks int   `toml:"projectile_ticks"`
}

type RenderConfig struct {
	Backend string `toml:"backend"` // "terminal" or "headless"
	CellW   int32  `toml:"cell_w"`  // world pixels per terminal column
	CellH   int32  `toml:"cell_h"`  // world pixels per terminal row
	Frames  int    `toml:"frames"`  // headless: frames to simulate, 0 = until quit
	Output  string `toml:"output"`  // headless: PNG written after the last frame
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	File   string `toml:"file"`   // terminal backend logs here instead of stderr
}

type DebugConfig struct {
	Enabled bool   `toml:"enabled"`
	Listen  string `toml:"listen"`
	Pprof   bool   `toml:"pprof"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Game.TickRate <= 0:
		return fmt.Errorf("game.tick_rate must be positive")
	case c.Game.StartScene == "":
		return fmt.Errorf("game.start_scene is required")
	case c.Game.ViewWidth <= 0 || c.Game.ViewHeight <= 0:
		return fmt.Errorf("game view size must be positive")
	case c.Render.Backend != "terminal" && c.Render.Backend != "headless":
		return fmt.Errorf("render.backend %q: want terminal or headless", c.Render.Backend)
	case c.Render.CellW <= 0 || c.Render.CellH <= 0:
		return fmt.Errorf("render cell size must be positive")
	}
	return nil
}

// Tuning converts the physics section for the world.
func (p PhysicsConfig) Tuning() world.Tuning {
	return world.Tuning{
		Gravity:         p.Gravity,
		MaxFall:         p.MaxFall,
		JumpImpulse:     p.JumpImpulse,
		WalkSpeed:       p.WalkSpeed,
		Friction:        p.Friction,
		KnockbackX:      p.KnockbackX,
		KnockbackY:      p.KnockbackY,
		InvulnTicks:     p.InvulnTicks,
		ProjectileSpeed: p.ProjectileSpeed,
		ProjectileTicks: p.ProjectileTicks,
	}
}

func defaults() *Config {
	t := world.DefaultTuning()
	return &Config{
		Game: GameConfig{
			Name:       "driftwood",
			TickRate:   33 * time.Millisecond,
			StartScene: "beach",
			ScenesFile: "data/yaml/scene_list.yaml",
			AssetsDir:  "assets",
			ScriptsDir: "scripts",
			ViewWidth:  320,
			ViewHeight: 192,
		},
		Physics: PhysicsConfig{
			Gravity:         t.Gravity,
			MaxFall:         t.MaxFall,
			JumpImpulse:     t.JumpImpulse,
			WalkSpeed:       t.WalkSpeed,
			Friction:        t.Friction,
			KnockbackX:      t.KnockbackX,
			KnockbackY:      t.KnockbackY,
			InvulnTicks:     t.InvulnTicks,
			ProjectileSpeed: t.ProjectileSpeed,
			ProjectileTicks: t.ProjectileTicks,
		},
		Render: RenderConfig{
			Backend: "terminal",
			CellW:   4,
			CellH:   8,
			Frames:  300,
			Output:  "driftwood.png",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			File:   "driftwood.log",
		},
		Debug: DebugConfig{
			Enabled: false,
			Listen:  "127.0.0.1:6070",
			Pprof:   true,
		},
	}
}

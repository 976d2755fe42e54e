package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/driftwood2d/driftwood/internal/actor"
	"github.com/driftwood2d/driftwood/internal/config"
	"github.com/driftwood2d/driftwood/internal/core/event"
	coresys "github.com/driftwood2d/driftwood/internal/core/system"
	"github.com/driftwood2d/driftwood/internal/data"
	"github.com/driftwood2d/driftwood/internal/debug"
	"github.com/driftwood2d/driftwood/internal/handler"
	"github.com/driftwood2d/driftwood/internal/render"
	"github.com/driftwood2d/driftwood/internal/scripting"
	"github.com/driftwood2d/driftwood/internal/system"
	"github.com/driftwood2d/driftwood/internal/term"
	"github.com/driftwood2d/driftwood/internal/world"
	"github.com/gdamore/tcell/v2"
	"github.com/pkg/profile"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printSection(title string) {
	n := 46 - len(title) - 1
	if n < 3 {
		n = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", n))
}

func printStat(label string, count int) {
	num := fmt.Sprintf("%d", count)
	dots := 42 - len(label) - len(num)
	if dots < 3 {
		dots = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dots), num)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// frontend is the backend-specific half of the loop: where input comes from,
// where frames are drawn and how the player can interrupt.
type frontend struct {
	source      system.SnapshotSource
	surface     render.Surface
	begin       func()
	present     func()
	interrupted func() bool
	close       func()
}

func run() error {
	profileMode := flag.String("profile", "", "write a profile to the working directory: cpu, mem or trace")
	flag.Parse()
	if p := startProfile(*profileMode); p != nil {
		defer p.Stop()
	}

	cfgPath := "config/driftwood.toml"
	if p := os.Getenv("DRIFTWOOD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	terminal := cfg.Render.Backend == "terminal"
	log, err := newLogger(cfg.Logging, terminal)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printSection(cfg.Game.Name)

	scenes, err := data.LoadSceneTable(cfg.Game.ScenesFile)
	if err != nil {
		return fmt.Errorf("load scene table: %w", err)
	}
	printStat("scenes", scenes.Count())
	printOK("backend " + cfg.Render.Backend)
	fmt.Println()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	bus := event.NewBus()
	subscribeLog(bus, log)

	// the terminal backend takes over stdout from here on
	files := render.NewFileResources(cfg.Game.AssetsDir)
	fe, res, err := newFrontend(cfg, files)
	if err != nil {
		return err
	}
	defer fe.close()

	deps := &handler.Deps{Log: log}
	w, kit, err := actor.NewWorld(world.Options{
		Log:       log,
		Metrics:   world.NewMetrics(reg),
		Bus:       bus,
		Scenes:    scenes,
		Resources: res,
		Tuning:    cfg.Physics.Tuning(),
		ViewW:     cfg.Game.ViewWidth,
		ViewH:     cfg.Game.ViewHeight,
	}, deps)
	if err != nil {
		return fmt.Errorf("register kinds: %w", err)
	}
	log.Info("kinds registered", zap.Strings("kinds", w.Types.Names()))

	engine, err := scripting.NewEngine(w, cfg.Game.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("lua engine: %w", err)
	}
	defer engine.Close()
	kit.Root.AttachConsole(handler.NewConsole(engine, deps))
	event.Subscribe(bus, func(e event.SceneEntered) {
		if err := engine.Call("on_scene_enter", lua.LString(e.Scene), lua.LString(e.From)); err != nil {
			log.Warn("on_scene_enter failed", zap.Error(err))
		}
	})
	log.Info("lua scripts loaded", zap.String("dir", cfg.Game.ScriptsDir))

	if err := w.LoadScene(cfg.Game.StartScene); err != nil {
		return fmt.Errorf("start scene: %w", err)
	}

	sums := &debug.Summaries{}
	if cfg.Debug.Enabled {
		srv, err := debug.Start(cfg.Debug.Listen, debug.RouterConfig{
			Registry:  reg,
			Summaries: sums,
			Pprof:     cfg.Debug.Pprof,
			Log:       log,
		})
		if err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	runner := coresys.NewRunner()
	system.RegisterAll(runner, w, fe.source, sums)

	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Game.TickRate)
	defer ticker.Stop()

	log.Info("loop started",
		zap.String("backend", cfg.Render.Backend),
		zap.Duration("tick", cfg.Game.TickRate))

	for {
		select {
		case <-ticker.C:
			if err := runner.Tick(cfg.Game.TickRate); err != nil {
				return fmt.Errorf("frame %d: %w", w.Frame, err)
			}
			fe.begin()
			w.Render(fe.surface)
			fe.present()
			if w.QuitRequested() || fe.interrupted() {
				log.Info("quit requested", zap.Uint64("frame", w.Frame))
				return finish(cfg, w, fe, log)
			}
			if !terminal && cfg.Render.Frames > 0 && w.Frame >= uint64(cfg.Render.Frames) {
				return finish(cfg, w, fe, log)
			}
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			return finish(cfg, w, fe, log)
		}
	}
}

// finish writes the headless screenshot, if any, and releases the scene.
func finish(cfg *config.Config, w *world.World, fe *frontend, log *zap.Logger) error {
	w.Scenes.Clear(w)
	canvas, ok := fe.surface.(*render.Canvas)
	if !ok || cfg.Render.Output == "" {
		return nil
	}
	if err := canvas.SavePNG(cfg.Render.Output); err != nil {
		return fmt.Errorf("save screenshot: %w", err)
	}
	log.Info("screenshot written", zap.String("path", cfg.Render.Output), zap.Uint64("frame", w.Frame))
	return nil
}

func newFrontend(cfg *config.Config, files *render.FileResources) (*frontend, render.Resources, error) {
	if cfg.Render.Backend == "headless" {
		canvas := render.NewCanvas(int(cfg.Game.ViewWidth), int(cfg.Game.ViewHeight))
		return &frontend{
			surface:     canvas,
			begin:       func() { canvas.Clear(render.Black) },
			present:     func() {},
			interrupted: func() bool { return false },
			close:       func() {},
		}, files, nil
	}

	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, nil, fmt.Errorf("terminal: %w", err)
	}
	if err := scr.Init(); err != nil {
		return nil, nil, fmt.Errorf("terminal init: %w", err)
	}
	screen := term.NewScreen(scr, cfg.Render.CellW, cfg.Render.CellH)
	kb := term.NewKeyboard()
	go kb.Listen(scr)
	return &frontend{
		source:      kb,
		surface:     screen,
		begin:       screen.Begin,
		present:     screen.Present,
		interrupted: kb.Interrupted,
		close:       scr.Fini,
	}, &term.Resources{Images: files, Font: screen.Font()}, nil
}

func startProfile(mode string) interface{ Stop() } {
	opts := []func(*profile.Profile){profile.ProfilePath("."), profile.NoShutdownHook}
	switch mode {
	case "":
		return nil
	case "cpu":
		opts = append(opts, profile.CPUProfile)
	case "mem":
		opts = append(opts, profile.MemProfileAllocs)
	case "trace":
		opts = append(opts, profile.TraceProfile)
	default:
		fmt.Fprintf(os.Stderr, "unknown profile mode %q, profiling disabled\n", mode)
		return nil
	}
	return profile.Start(opts...)
}

func subscribeLog(bus *event.Bus, log *zap.Logger) {
	event.Subscribe(bus, func(e event.SceneEntered) {
		log.Info("scene entered", zap.String("scene", e.Scene), zap.String("from", e.From))
	})
	event.Subscribe(bus, func(e event.PlayerHurt) {
		log.Info("player hurt", zap.Uint64("id", uint64(e.ID)), zap.Int32("life", e.Life))
	})
	event.Subscribe(bus, func(e event.DialogOpened) {
		log.Debug("dialog opened", zap.Uint64("speaker", uint64(e.Speaker)), zap.Int("lines", e.Lines))
	})
	event.Subscribe(bus, func(e event.EntityDestroyed) {
		log.Debug("entity destroyed", zap.Uint64("id", uint64(e.ID)), zap.Uint8("kind", e.Kind))
	})
}

// newLogger builds the process logger. The terminal backend owns the tty, so
// its logs go to cfg.File instead of stderr.
func newLogger(cfg config.LoggingConfig, terminal bool) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	if terminal {
		if cfg.File == "" {
			return nil, errors.New("logging.file is required with the terminal backend")
		}
		if dir := filepath.Dir(cfg.File); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("log dir: %w", err)
			}
		}
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
	}

	return zapCfg.Build()
}

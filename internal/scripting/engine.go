package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/driftwood2d/driftwood/internal/core/ecs"
	"github.com/driftwood2d/driftwood/internal/data"
	"github.com/driftwood2d/driftwood/internal/world"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM bound to one world. It backs the
// developer console and the autoexec scripts. Single-goroutine access only
// (game loop).
type Engine struct {
	vm  *lua.LState
	w   *world.World
	log *zap.Logger
	out strings.Builder
}

// NewEngine creates a Lua engine for w and runs every script in
// scriptsDir/autoexec. A missing directory is not an error.
func NewEngine(w *world.World, scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, w: w, log: log}
	e.bind()

	if scriptsDir != "" {
		if err := e.loadDir(filepath.Join(scriptsDir, "autoexec")); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load autoexec scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir runs all .lua files in a directory in name order.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	if out := e.takeOutput(); out != "" {
		e.log.Info("autoexec output", zap.String("text", out))
	}
	return nil
}

// Exec runs one console line and returns what it printed. A line that
// parses as an expression has its values printed too.
func (e *Engine) Exec(line string) (string, error) {
	e.out.Reset()
	fn, err := e.vm.LoadString("return " + line)
	if err != nil {
		fn, err = e.vm.LoadString(line)
		if err != nil {
			return "", fmt.Errorf("parse: %w", err)
		}
	}
	top := e.vm.GetTop()
	if err := e.safeCall(fn); err != nil {
		e.vm.SetTop(top)
		return e.takeOutput(), err
	}
	n := e.vm.GetTop() - top
	if n > 0 {
		vals := make([]string, n)
		for i := 0; i < n; i++ {
			vals[i] = e.vm.ToStringMeta(e.vm.Get(top + 1 + i)).String()
		}
		e.vm.Pop(n)
		e.println(strings.Join(vals, "\t"))
	}
	return e.takeOutput(), nil
}

// Call invokes a global Lua function by name, if defined. Anything the hook
// prints goes to the log since no console line is waiting for it.
func (e *Engine) Call(name string, args ...lua.LValue) error {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		return nil
	}
	e.out.Reset()
	err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, args...)
	if out := e.takeOutput(); out != "" {
		e.log.Info("script output", zap.String("hook", name), zap.String("text", out))
	}
	if err != nil {
		return fmt.Errorf("lua %s: %w", name, err)
	}
	return nil
}

// safeCall runs fn protected. Lua errors come back as errors; Go panics
// raised inside bindings are recovered so a bad console line cannot take
// the game loop down.
func (e *Engine) safeCall(fn *lua.LFunction) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Error("console panic recovered", zap.Any("panic", rec))
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    lua.MultRet,
		Protect: true,
	})
}

func (e *Engine) println(s string) {
	e.out.WriteString(s)
	e.out.WriteByte('\n')
}

func (e *Engine) takeOutput() string {
	s := strings.TrimRight(e.out.String(), "\n")
	e.out.Reset()
	return s
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) bind() {
	for name, fn := range map[string]lua.LGFunction{
		"print":    e.luaPrint,
		"spawn":    e.luaSpawn,
		"kill":     e.luaKill,
		"warp":     e.luaWarp,
		"tp":       e.luaTeleport,
		"life":     e.luaLife,
		"list":     e.luaList,
		"kinds":    e.luaKinds,
		"scene":    e.luaScene,
		"player":   e.luaPlayer,
		"hitboxes": e.luaHitboxes,
		"after":    e.luaAfter,
		"quit":     e.luaQuit,
	} {
		e.vm.SetGlobal(name, e.vm.NewFunction(fn))
	}
}

// print(...) writes to the console output.
func (e *Engine) luaPrint(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	e.println(strings.Join(parts, "\t"))
	return 0
}

// spawn(kind, x, y) -> id
func (e *Engine) luaSpawn(L *lua.LState) int {
	name := L.CheckString(1)
	x := int32(L.CheckInt(2))
	y := int32(L.CheckInt(3))
	kind, ok := e.w.Types.ByName(name)
	if !ok {
		L.ArgError(1, "unknown kind "+name)
		return 0
	}
	ent, err := e.w.Spawn(kind, x, y)
	if err != nil {
		L.RaiseError("%s", err.Error())
		return 0
	}
	L.Push(lua.LNumber(ent.ID))
	return 1
}

// kill(id) -> bool
func (e *Engine) luaKill(L *lua.LState) int {
	ent := e.w.Store.Get(ecs.EntityID(L.CheckNumber(1)))
	if !ent.Alive() {
		L.Push(lua.LFalse)
		return 1
	}
	e.w.Kill(ent)
	L.Push(lua.LTrue)
	return 1
}

// warp(scene [, x, y]) queues a scene transition.
func (e *Engine) luaWarp(L *lua.LState) int {
	id := L.CheckString(1)
	var spawn *data.Point
	if L.GetTop() >= 3 {
		spawn = &data.Point{X: int32(L.CheckInt(2)), Y: int32(L.CheckInt(3))}
	}
	if err := e.w.RequestTransition(id, spawn); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

// tp(x, y) moves the player.
func (e *Engine) luaTeleport(L *lua.LState) int {
	x, y := int32(L.CheckInt(1)), int32(L.CheckInt(2))
	p := e.w.Store.Get(e.w.Player)
	if p == nil {
		L.RaiseError("no player")
		return 0
	}
	p.X, p.Y = x, y
	p.VX, p.VY = 0, 0
	return 0
}

// life([n]) -> current player life, setting it first when n is given.
func (e *Engine) luaLife(L *lua.LState) int {
	p := e.w.Store.Get(e.w.Player)
	if p == nil {
		L.RaiseError("no player")
		return 0
	}
	if L.GetTop() >= 1 {
		p.Life = int32(L.CheckInt(1))
	}
	L.Push(lua.LNumber(p.Life))
	return 1
}

// list([kind]) prints alive entities and returns how many matched.
func (e *Engine) luaList(L *lua.LState) int {
	filter := L.OptString(1, "")
	n := 0
	e.w.Store.Each(func(ent *world.Entity) {
		name := e.w.Types.Name(ent.Kind)
		if filter != "" && name != filter {
			return
		}
		n++
		e.println(fmt.Sprintf("%d %s (%d,%d) life=%d", ent.ID, name, ent.X, ent.Y, ent.Life))
	})
	L.Push(lua.LNumber(n))
	return 1
}

// kinds() -> table of registered kind names
func (e *Engine) luaKinds(L *lua.LState) int {
	names := e.w.Types.Names()
	t := L.CreateTable(len(names), 0)
	for _, n := range names {
		t.Append(lua.LString(n))
	}
	L.Push(t)
	return 1
}

// scene() -> current scene id
func (e *Engine) luaScene(L *lua.LState) int {
	L.Push(lua.LString(e.w.Scenes.Current()))
	return 1
}

// player() -> id, x, y of the player, or nil.
func (e *Engine) luaPlayer(L *lua.LState) int {
	p := e.w.Store.Get(e.w.Player)
	if p == nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(p.ID))
	L.Push(lua.LNumber(p.X))
	L.Push(lua.LNumber(p.Y))
	return 3
}

// hitboxes([on]) -> current state, toggling when no argument is given.
func (e *Engine) luaHitboxes(L *lua.LState) int {
	if L.GetTop() >= 1 {
		e.w.ShowHitboxes = L.ToBool(1)
	} else {
		e.w.ShowHitboxes = !e.w.ShowHitboxes
	}
	L.Push(lua.LBool(e.w.ShowHitboxes))
	return 1
}

// after(ticks, fn) runs fn on scheduler tick ticks+1, counting the next tick
// as the first: after(0, fn) runs on the next tick.
func (e *Engine) luaAfter(L *lua.LState) int {
	ticks := L.CheckInt(1)
	fn := L.CheckFunction(2)
	id := e.w.Schedule("lua.after", ticks, e.w.Player, func(w *world.World, t *world.Task, _ *world.Entity) {
		if t.Counter < t.Limit {
			return
		}
		if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
			w.Log.Warn("lua timer", zap.Uint64("task", uint64(t.ID)), zap.Error(err))
		}
		if out := e.takeOutput(); out != "" {
			w.Log.Info("lua timer output", zap.String("text", out))
		}
	})
	L.Push(lua.LNumber(id))
	return 1
}

// quit() asks the driver to stop.
func (e *Engine) luaQuit(L *lua.LState) int {
	e.w.RequestQuit()
	return 0
}

package luart

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
	"github.com/pkg/errors"

	"github.com/sharpbridge/sharpbridge/engine/callctx"
	"github.com/sharpbridge/sharpbridge/engine/sblog"
)

// luart hosts game modes written in Lua. The game mode is a table named
// after the configured class inside a global table named after the
// namespace; public calls are dispatched to its functions by event name:
//
//	MyGameMode = {}
//	MyGameMode.GameMode = {}
//	function MyGameMode.GameMode.OnGameModeInit() ... end
//	function MyGameMode.GameMode.OnPlayerConnect(playerid) ... end

// Runtime satisfies hosting.ManagedRuntime with an embedded Lua state. The
// state outlives game mode sessions; it is created at Load and destroyed at
// Unload (plugin detach).
type Runtime struct {
	state  *lua.State
	loaded bool
}

// NewRuntime creates an unloaded Lua runtime
func NewRuntime() *Runtime {
	return &Runtime{}
}

// IsLoaded reports whether the Lua state is up
func (rt *Runtime) IsLoaded() bool {
	return rt.loaded
}

// Load creates the Lua state and runs the entry script. The entry script
// path is the entry assembly path with its extension replaced by .lua.
func (rt *Runtime) Load(assemblyDir, configDir string, traceLevel int, entryAssembly string) error {
	if rt.loaded {
		return nil
	}

	script := strings.TrimSuffix(entryAssembly, filepath.Ext(entryAssembly)) + ".lua"
	if _, err := os.Stat(script); err != nil {
		return errors.Wrapf(err, "luart: entry script %s not found", script)
	}

	state := lua.NewState()
	lua.OpenLibraries(state)

	if err := lua.DoFile(state, script); err != nil {
		return errors.Wrapf(err, "luart: run entry script %s failed", script)
	}

	rt.state = state
	rt.loaded = true
	sblog.Infof("luart: runtime up, entry script %s, trace level %d", script, traceLevel)
	return nil
}

// Unload destroys the Lua state; no-op when not loaded
func (rt *Runtime) Unload() {
	if !rt.loaded {
		return
	}
	rt.state = nil
	rt.loaded = false
	sblog.Infof("luart: runtime down")
}

// ConvertSymbols verifies the symbol file is readable; Lua scripts need no
// symbol conversion.
func (rt *Runtime) ConvertSymbols(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "luart: open symbol file failed")
	}
	f.Close()
	return nil
}

// GameMode satisfies hosting.GameMode, dispatching public calls to the
// functions of the namespace/class table in the runtime's Lua state.
type GameMode struct {
	rt        *Runtime
	namespace string
	class     string
	loaded    bool
}

// NewGameMode creates an unloaded game mode handle bound to rt
func NewGameMode(rt *Runtime) *GameMode {
	return &GameMode{rt: rt}
}

// IsLoaded reports whether a session is active
func (gm *GameMode) IsLoaded() bool {
	return gm.loaded
}

// Load binds the game mode to the namespace/class table; returns false when
// the runtime is down or the table does not exist.
func (gm *GameMode) Load(namespace, class string) bool {
	if gm.loaded {
		return false
	}
	if !gm.rt.IsLoaded() {
		sblog.Errorf("luart: game mode load before runtime load")
		return false
	}

	s := gm.rt.state
	s.Global(namespace)
	if s.TypeOf(-1) != lua.TypeTable {
		s.Pop(1)
		sblog.Errorf("luart: global table %s not found", namespace)
		return false
	}
	s.Field(-1, class)
	ok := s.TypeOf(-1) == lua.TypeTable
	s.Pop(2)
	if !ok {
		sblog.Errorf("luart: class table %s.%s not found", namespace, class)
		return false
	}

	gm.namespace = namespace
	gm.class = class
	gm.loaded = true
	return true
}

// Unload ends the session; the Lua state stays up for the next session
func (gm *GameMode) Unload() {
	if !gm.loaded {
		return
	}
	gm.loaded = false
}

// ProcessTick calls the game mode's OnTick function if it has one
func (gm *GameMode) ProcessTick() {
	if !gm.loaded {
		return
	}
	s := gm.rt.state
	base := s.Top()
	if !gm.pushHandler("OnTick") {
		return
	}
	if err := s.ProtectedCall(0, 0, 0); err != nil {
		sblog.Errorf("luart: OnTick failed: %s", err)
	}
	s.SetTop(base)
}

// ProcessPublicCall dispatches one public call to the function named after
// the event; returns false when the game mode has no such function.
func (gm *GameMode) ProcessPublicCall(ctx *callctx.CallContext) bool {
	if !gm.loaded {
		return false
	}
	s := gm.rt.state
	base := s.Top()
	if !gm.pushHandler(ctx.Name) {
		return false
	}

	for i := 0; i < ctx.NumParams(); i++ {
		if ctx.HasRawString(i) {
			s.PushString(ctx.String(i))
		} else {
			s.PushInteger(int(ctx.Int(i)))
		}
	}

	if err := s.ProtectedCall(ctx.NumParams(), 1, 0); err != nil {
		sblog.Errorf("luart: %s failed: %s", ctx.Name, err)
		s.SetTop(base)
		return false
	}

	storeRetval(s, ctx)
	s.SetTop(base)
	return true
}

// pushHandler pushes the handler function of the named event onto the
// stack; pushes nothing and returns false when there is none.
func (gm *GameMode) pushHandler(name string) bool {
	s := gm.rt.state
	s.Global(gm.namespace)
	if s.TypeOf(-1) != lua.TypeTable {
		s.Pop(1)
		return false
	}
	s.Field(-1, gm.class)
	s.Remove(-2)
	if s.TypeOf(-1) != lua.TypeTable {
		s.Pop(1)
		return false
	}
	s.Field(-1, name)
	s.Remove(-2)
	if s.TypeOf(-1) != lua.TypeFunction {
		s.Pop(1)
		return false
	}
	return true
}

func storeRetval(s *lua.State, ctx *callctx.CallContext) {
	switch s.TypeOf(-1) {
	case lua.TypeNumber:
		if v, ok := s.ToInteger(-1); ok {
			ctx.SetRetval(callctx.Cell(v))
		}
	case lua.TypeBoolean:
		if s.ToBoolean(-1) {
			ctx.SetRetval(1)
		} else {
			ctx.SetRetval(0)
		}
	}
}

package bridge

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sharpbridge/sharpbridge/engine/callctx"
	"github.com/sharpbridge/sharpbridge/engine/calltrace"
	"github.com/sharpbridge/sharpbridge/engine/codepage"
	"github.com/sharpbridge/sharpbridge/engine/config"
	"github.com/sharpbridge/sharpbridge/engine/consts"
	"github.com/sharpbridge/sharpbridge/engine/hosting"
	"github.com/sharpbridge/sharpbridge/engine/opmon"
	"github.com/sharpbridge/sharpbridge/engine/sblog"
	"github.com/sharpbridge/sharpbridge/engine/sbutils"
	"github.com/sharpbridge/sharpbridge/engine/symbols"
)

// Bridge is the single authority deciding game mode load/unload timing and
// routing every native public call. The host server drives all entry points
// from one thread, so Bridge keeps no locks.
type Bridge struct {
	exports  hosting.ServerExports
	runtime  hosting.ManagedRuntime
	gameMode hosting.GameMode
	cfg      *config.BridgeConfig

	// the bootstrap filterscript is requested at most once per process
	// lifetime; this flag is never cleared
	filterscriptLoaded bool
	tracer             *calltrace.Tracer
	attached           bool
}

// New creates a bridge mediating between the host server and the given
// managed runtime and game mode handles. The configuration snapshot is read
// once at Attach.
func New(runtime hosting.ManagedRuntime, gameMode hosting.GameMode) *Bridge {
	return &Bridge{
		runtime:  runtime,
		gameMode: gameMode,
	}
}

// Attach wires the bridge into the host's function table and reads the
// configuration snapshot. A config read failure fails the whole attach.
func (b *Bridge) Attach(exports hosting.ServerExports) error {
	if exports == nil {
		return errors.Errorf("bridge: attach without server exports")
	}
	b.exports = exports

	if b.cfg == nil {
		err := sbutils.CatchPanic(func() error {
			b.cfg = config.Get()
			return nil
		})
		if err != nil {
			return errors.Wrap(err, "bridge: read config failed")
		}
	}

	sblog.SetLevel(sblog.StringToLevel(b.cfg.LogLevel))

	if b.cfg.CallTraceFile != "" && b.cfg.Runtime.TraceLevel >= consts.CALLTRACE_MIN_TRACE_LEVEL {
		tracer, err := calltrace.OpenFile(b.cfg.CallTraceFile)
		if err != nil {
			sblog.Errorf("bridge: open call trace file failed: %s", err)
		} else {
			b.tracer = tracer
		}
	}

	b.attached = true
	return nil
}

// Detach unloads the game mode and then the managed runtime, in that order,
// regardless of current state. Both unloads are no-op safe.
func (b *Bridge) Detach() {
	b.gameMode.Unload()
	b.runtime.Unload()

	if consts.OPMON_DUMP_ON_DETACH {
		opmon.Dump()
	}
	if b.tracer != nil {
		if err := b.tracer.Close(); err != nil {
			sblog.Errorf("bridge: close call trace file failed: %s", err)
		}
		b.tracer = nil
	}
	b.attached = false
}

// Attached reports whether Attach has succeeded
func (b *Bridge) Attached() bool {
	return b.attached
}

// eventTag classifies native event names for dispatch. Everything but the
// two distinguished lifecycle events takes the forward-only path.
type eventTag int

const (
	tagOther eventTag = iota
	tagInit
	tagExit
)

func tagOf(name string) eventTag {
	switch name {
	case "OnGameModeInit":
		return tagInit
	case "OnGameModeExit":
		return tagExit
	}
	return tagOther
}

// OnPublicCall routes one native public call, performing any required
// lifecycle transition as a side effect. It always reports the call as
// handled: the bridge never blocks the native script's own handling.
func (b *Bridge) OnPublicCall(ctx *callctx.CallContext) bool {
	op := opmon.StartOperation("dispatch." + ctx.Name)
	defer op.Finish(0)

	if consts.DEBUG_PUBLIC_CALLS {
		sblog.Debugf("bridge: public call %s with %d params", ctx.Name, ctx.NumParams())
	}

	switch tagOf(ctx.Name) {
	case tagInit:
		b.loadGameMode()
	case tagExit:
		if b.gameMode.IsLoaded() {
			// deliver the exit event before tearing the game mode down;
			// the trailing forward below will not re-deliver it
			b.processPublicCall(ctx)
			b.unloadGameMode()
		}
	}

	// the game mode may have just become loaded (init) or just been torn
	// down (exit); forward iff it is loaded right now. After a successful
	// synchronous load this re-delivers the init event itself.
	handled := false
	if b.gameMode.IsLoaded() {
		handled = b.processPublicCall(ctx)
	}

	b.tracer.Trace(ctx, handled)
	return true
}

// ProcessTick forwards the host's tick to the game mode and then to the
// host's own per-tick housekeeping. No state decisions are made here.
func (b *Bridge) ProcessTick() {
	b.gameMode.ProcessTick()
	b.exports.ProcessTick()
}

// processPublicCall delivers one call to the game mode; a panicking game
// mode never lets the panic cross the plugin boundary.
func (b *Bridge) processPublicCall(ctx *callctx.CallContext) (handled bool) {
	sbutils.RunPanicless(func() {
		handled = b.gameMode.ProcessPublicCall(ctx)
	})
	return
}

// loadGameMode runs the load sequence: bootstrap filterscript, managed
// runtime, codepage, symbol conversion, game mode. A game mode load failure
// is non-fatal; a later init event retries.
func (b *Bridge) loadGameMode() {
	if b.gameMode.IsLoaded() {
		return
	}

	if !b.filterscriptLoaded {
		b.exports.SendRconCommand(consts.BOOTSTRAP_FILTERSCRIPT_COMMAND)
		b.filterscriptLoaded = true
	}

	if !b.runtime.IsLoaded() {
		entryAssembly := filepath.Join(b.exports.PluginBinDir(), consts.GAMEMODE_BIN_SUBDIR,
			b.cfg.GameMode.Namespace+consts.GAMEMODE_ASSEMBLY_EXT)
		err := b.runtime.Load(b.cfg.Runtime.AssemblyDir, b.cfg.Runtime.ConfigDir,
			b.cfg.Runtime.TraceLevel, entryAssembly)
		if err != nil {
			sblog.Errorf("bridge: load managed runtime failed: %s", err)
			b.exports.Logf("Failed to load the managed runtime: %s", err)
			return
		}
	}

	// set the codepage for all subsequent native string conversions
	if err := codepage.Set(b.cfg.Runtime.Codepage); err != nil {
		sblog.Errorf("bridge: %s", err)
	}

	symbols.Convert(b.runtime, b.exports.Logf, b.cfg.GameMode.Dir, b.cfg.GameMode.SymbolFiles)

	namespace := b.cfg.GameMode.Namespace
	class := b.cfg.GameMode.Class

	b.exports.Logf("Gamemode")
	b.exports.Logf("---------------")
	b.exports.Logf("Loading gamemode: %s:%s", namespace, class)

	if b.gameMode.Load(namespace, class) {
		b.exports.Logf("  Loaded.")
	} else {
		b.exports.Logf("  Failed.")
	}

	b.exports.Logf("")
}

// unloadGameMode tears down the game mode session only. The managed runtime
// stays up until plugin detach.
func (b *Bridge) unloadGameMode() {
	if !b.gameMode.IsLoaded() {
		return
	}

	namespace := b.cfg.GameMode.Namespace
	class := b.cfg.GameMode.Class

	b.exports.Logf("")
	b.exports.Logf("---------------")
	b.exports.Logf("Unloading gamemode: %s:%s", namespace, class)

	b.gameMode.Unload()

	b.exports.Logf("  Unloaded.")
	b.exports.Logf("")
}

package hosting

import "github.com/sharpbridge/sharpbridge/engine/callctx"

// ManagedRuntime is the embedded execution environment hosting game mode
// logic. It outlives individual game mode sessions: the bridge loads it at
// most once and unloads it only at plugin detach.
type ManagedRuntime interface {
	// IsLoaded reports whether the runtime is up
	IsLoaded() bool
	// Load brings the runtime up with the given entry assembly. Loading an
	// already loaded runtime is an error of the caller; the bridge never does it.
	Load(assemblyDir, configDir string, traceLevel int, entryAssembly string) error
	// Unload tears the runtime down; no-op when not loaded
	Unload()
	// ConvertSymbols converts one debug symbol file for the runtime's diagnostics
	ConvertSymbols(path string) error
}

// GameMode is the runtime-resident object implementing gameplay logic,
// identified by a namespace/class pair and loaded once per session.
type GameMode interface {
	// IsLoaded reports whether a game mode session is active
	IsLoaded() bool
	// Load starts a game mode session; returns false on failure
	Load(namespace, class string) bool
	// Unload ends the session; no-op when not loaded
	Unload()
	// ProcessTick runs per-tick game mode housekeeping
	ProcessTick()
	// ProcessPublicCall delivers one native public call to the game mode
	ProcessPublicCall(ctx *callctx.CallContext) bool
}

// ServerExports is the host server's function table handed to the plugin at
// attach time.
type ServerExports interface {
	// Logf writes one line to the server log
	Logf(format string, args ...interface{})
	// SendRconCommand issues an rcon command on the host server
	SendRconCommand(cmd string)
	// ProcessTick runs the host integration layer's own per-tick housekeeping
	ProcessTick()
	// PluginBinDir returns the directory containing the plugin binary
	PluginBinDir() string
}

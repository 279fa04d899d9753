/*
SharpBridge is a bridge plugin for multiplayer game servers that host their
game mode logic in an embedded execution environment. The host server raises
named public calls (OnGameModeInit, OnPlayerConnect, ...) through its native
scripting virtual machine; the bridge intercepts these calls, drives the
lifecycle of the embedded runtime and the game mode, and forwards every call
to the running game mode.

Lifecycle

The ordering is fixed: the bootstrap filterscript is requested first (once
per process), then the managed runtime is loaded, then the game mode.
Teardown runs strictly in reverse. The game mode is unloaded and recreated
on every OnGameModeExit/OnGameModeInit cycle (e.g. a server map change); the
runtime itself stays up until the plugin detaches.

Package sharpbridge

The sharpbridge package is the developer facade. A host embedding looks like:

	import "github.com/sharpbridge/sharpbridge"

	func main() {
		sharpbridge.RegisterGameMode("MyGameMode", "GameMode", func() interface{} {
			return &MyGameMode{}
		})
		p := sharpbridge.NewGoPlugin()
		if !p.Load(serverExports) {
			// attach failed
		}
		// the host drives p.OnPublicCall and p.ProcessTick
	}

Game modes

Two game mode runtimes ship with the bridge: gort hosts game modes written
in Go, dispatching public calls to the instance's On* methods by reflection;
luart hosts game modes written in Lua, dispatching to the functions of the
configured namespace/class table.

Configuration

SharpBridge uses `sharpbridge.ini` as the default config file.
*/
package sharpbridge

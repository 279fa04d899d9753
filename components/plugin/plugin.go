package plugin

import (
	"github.com/sharpbridge/sharpbridge/engine/bridge"
	"github.com/sharpbridge/sharpbridge/engine/callctx"
	"github.com/sharpbridge/sharpbridge/engine/hosting"
	"github.com/sharpbridge/sharpbridge/engine/sblog"
)

const _VERSION = "0.4.0"

// Native plugin ABI capability flags
const (
	SUPPORTS_VERSION      = 0x0200
	SUPPORTS_PROCESS_TICK = 0x20000
)

// Plugin glues the native plugin ABI entry points to one Bridge instance.
// The host server calls Supports, Load, Unload, ProcessTick and
// OnPublicCall; everything else is the bridge's business.
type Plugin struct {
	bridge *bridge.Bridge
	loaded bool
}

// New creates a plugin hosting the given managed runtime and game mode
func New(runtime hosting.ManagedRuntime, gameMode hosting.GameMode) *Plugin {
	return &Plugin{
		bridge: bridge.New(runtime, gameMode),
	}
}

// Supports advertises the base integration capabilities plus tick polling
func (p *Plugin) Supports() uint32 {
	return SUPPORTS_VERSION | SUPPORTS_PROCESS_TICK
}

// Load attaches the plugin to the host; returns false when the bridge can
// not attach, aborting plugin activation entirely.
func (p *Plugin) Load(exports hosting.ServerExports) bool {
	if err := p.bridge.Attach(exports); err != nil {
		sblog.Errorf("plugin: attach failed: %s", err)
		return false
	}

	exports.Logf("")
	exports.Logf("SharpBridge Plugin")
	exports.Logf("----------------")
	exports.Logf("v%s", _VERSION)
	exports.Logf("")

	p.loaded = true
	return true
}

// Unload detaches the plugin from the host
func (p *Plugin) Unload() {
	if !p.loaded {
		return
	}
	p.bridge.Detach()
	p.loaded = false
}

// ProcessTick is the host's per-tick poll
func (p *Plugin) ProcessTick() {
	if !p.loaded {
		return
	}
	p.bridge.ProcessTick()
}

// OnPublicCall is the native event dispatch entry point. ctx may be nil for
// events without arguments.
func (p *Plugin) OnPublicCall(name string, ctx *callctx.CallContext) bool {
	if !p.loaded {
		return true
	}
	if ctx == nil {
		ctx = callctx.New(name)
	} else {
		ctx.Name = name
	}
	return p.bridge.OnPublicCall(ctx)
}

package sharpbridge

import (
	"github.com/sharpbridge/sharpbridge/components/plugin"
	"github.com/sharpbridge/sharpbridge/engine/config"
	"github.com/sharpbridge/sharpbridge/engine/gamemode/gort"
	"github.com/sharpbridge/sharpbridge/engine/gamemode/luart"
)

// NewLuaPlugin creates a bridge plugin hosting a Lua game mode
func NewLuaPlugin() *plugin.Plugin {
	rt := luart.NewRuntime()
	return plugin.New(rt, luart.NewGameMode(rt))
}

// NewGoPlugin creates a bridge plugin hosting a registered Go game mode
func NewGoPlugin() *plugin.Plugin {
	rt := gort.NewRuntime()
	return plugin.New(rt, gort.NewGameMode(rt))
}

// RegisterGameMode registers a Go game mode factory under the
// namespace/class pair named in the config file
func RegisterGameMode(namespace, class string, factory func() interface{}) {
	gort.Register(namespace, class, factory)
}

// SetConfigFile sets the config file path (sharpbridge.ini by default)
func SetConfigFile(path string) {
	config.SetConfigFile(path)
}

package plugin

import (
	"fmt"
	"testing"

	"github.com/bmizerany/assert"

	"github.com/sharpbridge/sharpbridge/engine/callctx"
	"github.com/sharpbridge/sharpbridge/engine/config"
	"github.com/sharpbridge/sharpbridge/engine/gamemode/gort"
)

var (
	inits    int
	connects int
)

type testMode struct{}

func (m *testMode) OnGameModeInit() { inits++ }

func (m *testMode) OnPlayerConnect(playerid int) { connects++ }

func init() {
	config.SetConfigFile("../../sharpbridge.ini.sample")
	gort.Register("MyGameMode", "GameMode", func() interface{} {
		return &testMode{}
	})
}

type testExports struct {
	lines []string
	rcons []string
	ticks int
}

func (ex *testExports) Logf(format string, args ...interface{}) {
	ex.lines = append(ex.lines, fmt.Sprintf(format, args...))
}
func (ex *testExports) SendRconCommand(cmd string) { ex.rcons = append(ex.rcons, cmd) }
func (ex *testExports) ProcessTick()               { ex.ticks++ }
func (ex *testExports) PluginBinDir() string       { return "plugins" }

func TestSupports(t *testing.T) {
	p := New(gort.NewRuntime(), gort.NewGameMode(gort.NewRuntime()))
	if p.Supports()&SUPPORTS_PROCESS_TICK == 0 {
		t.Errorf("tick polling not advertised")
	}
}

func TestLoadWithoutExportsFails(t *testing.T) {
	rt := gort.NewRuntime()
	p := New(rt, gort.NewGameMode(rt))
	assert.Equal(t, false, p.Load(nil))

	// before a successful load, public calls are handled but not dispatched
	assert.Equal(t, true, p.OnPublicCall("OnGameModeInit", nil))
}

func TestFullLifecycle(t *testing.T) {
	inits, connects = 0, 0

	rt := gort.NewRuntime()
	p := New(rt, gort.NewGameMode(rt))
	ex := &testExports{}

	assert.Equal(t, true, p.Load(ex))
	assert.Equal(t, "SharpBridge Plugin", ex.lines[1])

	assert.Equal(t, true, p.OnPublicCall("OnGameModeInit", nil))
	assert.Equal(t, 1, inits)
	assert.Equal(t, []string{"loadfs empty"}, ex.rcons)

	assert.Equal(t, true, p.OnPublicCall("OnPlayerConnect", callctx.New("", 7)))
	assert.Equal(t, 1, connects)

	p.ProcessTick()
	assert.Equal(t, 1, ex.ticks)

	assert.Equal(t, true, p.OnPublicCall("OnGameModeExit", nil))
	assert.Equal(t, true, rt.IsLoaded())

	p.Unload()
	assert.Equal(t, false, rt.IsLoaded())
}

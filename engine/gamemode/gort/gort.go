package gort

import (
	"os"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/xiaonanln/typeconv"

	"github.com/sharpbridge/sharpbridge/engine/callctx"
	"github.com/sharpbridge/sharpbridge/engine/sblog"
)

// gort hosts game modes written in Go. Game mode types are registered under
// a namespace/class pair at program start; public calls are dispatched to
// the instance's On* methods by name.

var registeredGameModes = map[string]func() interface{}{}

// Register registers a game mode factory under the namespace/class pair.
// Every session gets a fresh instance from the factory.
func Register(namespace, class string, factory func() interface{}) {
	key := namespace + ":" + class
	if _, ok := registeredGameModes[key]; ok {
		sblog.Panicf("gort: game mode %s already registered", key)
	}
	registeredGameModes[key] = factory
	sblog.Infof("gort: registered game mode %s", key)
}

// handlerDesc describes one public call handler method
type handlerDesc struct {
	Func       reflect.Value
	MethodType reflect.Type
	NumArgs    int
}

type handlerDescMap map[string]*handlerDesc

func (hdm handlerDescMap) visit(method reflect.Method) {
	methodName := method.Name
	if !strings.HasPrefix(methodName, "On") {
		return
	}

	methodType := method.Type
	hdm[methodName] = &handlerDesc{
		Func:       method.Func,
		MethodType: methodType,
		NumArgs:    methodType.NumIn() - 1, // do not count the receiver
	}
}

// Runtime satisfies hosting.ManagedRuntime for Go game modes. There is no
// real execution environment to bring up; Load only validates the entry
// assembly location and marks the runtime up.
type Runtime struct {
	loaded        bool
	entryAssembly string
}

// NewRuntime creates an unloaded Go game mode runtime
func NewRuntime() *Runtime {
	return &Runtime{}
}

// IsLoaded reports whether the runtime is up
func (rt *Runtime) IsLoaded() bool {
	return rt.loaded
}

// Load marks the runtime up
func (rt *Runtime) Load(assemblyDir, configDir string, traceLevel int, entryAssembly string) error {
	rt.entryAssembly = entryAssembly
	rt.loaded = true
	sblog.Infof("gort: runtime up, entry assembly %s, trace level %d", entryAssembly, traceLevel)
	return nil
}

// Unload marks the runtime down; no-op when not loaded
func (rt *Runtime) Unload() {
	if !rt.loaded {
		return
	}
	rt.loaded = false
	sblog.Infof("gort: runtime down")
}

// ConvertSymbols verifies the symbol file is readable. Go game modes carry
// native symbols already, so there is nothing to convert.
func (rt *Runtime) ConvertSymbols(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "gort: open symbol file failed")
	}
	f.Close()
	return nil
}

// GameMode satisfies hosting.GameMode, dispatching public calls to a
// registered Go instance's On* methods by reflection.
type GameMode struct {
	rt       *Runtime
	instance reflect.Value
	handlers handlerDescMap
	loaded   bool
}

// NewGameMode creates an unloaded game mode handle bound to rt
func NewGameMode(rt *Runtime) *GameMode {
	return &GameMode{rt: rt}
}

// IsLoaded reports whether a session is active
func (gm *GameMode) IsLoaded() bool {
	return gm.loaded
}

// Load starts a session with a fresh instance of the registered game mode
func (gm *GameMode) Load(namespace, class string) bool {
	if gm.loaded {
		return false
	}
	if !gm.rt.IsLoaded() {
		sblog.Errorf("gort: game mode load before runtime load")
		return false
	}

	factory, ok := registeredGameModes[namespace+":"+class]
	if !ok {
		sblog.Errorf("gort: game mode %s:%s is not registered", namespace, class)
		return false
	}

	instance := factory()
	instanceVal := reflect.ValueOf(instance)
	if instanceVal.Kind() != reflect.Ptr {
		sblog.Errorf("gort: game mode factory for %s:%s must return a pointer", namespace, class)
		return false
	}

	handlers := handlerDescMap{}
	instanceType := instanceVal.Type()
	numMethods := instanceType.NumMethod()
	for i := 0; i < numMethods; i++ {
		handlers.visit(instanceType.Method(i))
	}

	gm.instance = instanceVal
	gm.handlers = handlers
	gm.loaded = true
	return true
}

// Unload ends the session; no-op when not loaded
func (gm *GameMode) Unload() {
	if !gm.loaded {
		return
	}
	gm.loaded = false
	gm.instance = reflect.Value{}
	gm.handlers = nil
}

// ProcessTick calls the instance's OnTick handler if it has one
func (gm *GameMode) ProcessTick() {
	if !gm.loaded {
		return
	}
	if desc, ok := gm.handlers["OnTick"]; ok && desc.NumArgs == 0 {
		desc.Func.Call([]reflect.Value{gm.instance})
	}
}

// ProcessPublicCall dispatches one public call to the handler named after
// the event; returns false when the instance has no such handler.
func (gm *GameMode) ProcessPublicCall(ctx *callctx.CallContext) bool {
	if !gm.loaded {
		return false
	}

	desc, ok := gm.handlers[ctx.Name]
	if !ok {
		return false
	}

	in := make([]reflect.Value, desc.NumArgs+1)
	in[0] = gm.instance
	for i := 0; i < desc.NumArgs; i++ {
		argType := desc.MethodType.In(i + 1)
		if i < ctx.NumParams() {
			in[i+1] = convertArg(ctx, i, argType)
		} else {
			// use zero value for missing arguments
			in[i+1] = reflect.Zero(argType)
		}
	}

	out := desc.Func.Call(in)
	storeRetval(ctx, out)
	return true
}

func convertArg(ctx *callctx.CallContext, i int, argType reflect.Type) reflect.Value {
	switch argType.Kind() {
	case reflect.String:
		return reflect.ValueOf(ctx.String(i))
	case reflect.Bool:
		return reflect.ValueOf(ctx.Bool(i))
	case reflect.Float32, reflect.Float64:
		return typeconv.Convert(float64(ctx.Float(i)), argType)
	default:
		return typeconv.Convert(ctx.Int(i), argType)
	}
}

func storeRetval(ctx *callctx.CallContext, out []reflect.Value) {
	if len(out) == 0 {
		return
	}
	switch v := out[0]; v.Kind() {
	case reflect.Bool:
		if v.Bool() {
			ctx.SetRetval(1)
		} else {
			ctx.SetRetval(0)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ctx.SetRetval(callctx.Cell(v.Int()))
	}
}

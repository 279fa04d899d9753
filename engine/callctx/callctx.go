package callctx

import (
	"math"

	"github.com/sharpbridge/sharpbridge/engine/codepage"
)

// Cell is the native VM's machine word
type Cell = int32

// CallContext carries one native public call across the bridge: the event
// name, the raw parameter cells and an optional return value slot. String
// parameters are attached as raw native bytes and decoded lazily with the
// active codepage.
type CallContext struct {
	Name   string
	Params []Cell

	rawStrings map[int][]byte
	retval     Cell
	hasRetval  bool
}

// New creates a call context for the named event
func New(name string, params ...Cell) *CallContext {
	return &CallContext{
		Name:   name,
		Params: params,
	}
}

// NumParams returns the number of parameter cells
func (ctx *CallContext) NumParams() int {
	return len(ctx.Params)
}

// Int returns parameter i as an integer cell
func (ctx *CallContext) Int(i int) Cell {
	return ctx.Params[i]
}

// Float returns parameter i reinterpreted as the VM's 32-bit float
func (ctx *CallContext) Float(i int) float32 {
	return math.Float32frombits(uint32(ctx.Params[i]))
}

// Bool returns parameter i as a boolean cell
func (ctx *CallContext) Bool(i int) bool {
	return ctx.Params[i] != 0
}

// AttachRawString attaches the native string payload referenced by parameter i
func (ctx *CallContext) AttachRawString(i int, b []byte) {
	if ctx.rawStrings == nil {
		ctx.rawStrings = map[int][]byte{}
	}
	ctx.rawStrings[i] = b
}

// HasRawString reports whether parameter i carries a native string payload
func (ctx *CallContext) HasRawString(i int) bool {
	_, ok := ctx.rawStrings[i]
	return ok
}

// String decodes the native string payload of parameter i using the active codepage
func (ctx *CallContext) String(i int) string {
	b, ok := ctx.rawStrings[i]
	if !ok {
		return ""
	}
	return codepage.Decode(b)
}

// SetRetval stores the value returned to the native VM
func (ctx *CallContext) SetRetval(v Cell) {
	ctx.retval = v
	ctx.hasRetval = true
}

// Retval returns the stored return value and whether one was set
func (ctx *CallContext) Retval() (Cell, bool) {
	return ctx.retval, ctx.hasRetval
}

package callctx

import (
	"math"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/sharpbridge/sharpbridge/engine/codepage"
)

func TestParams(t *testing.T) {
	ctx := New("OnPlayerConnect", 7, int32(math.Float32bits(1.5)), 1)
	assert.Equal(t, 3, ctx.NumParams())
	assert.Equal(t, Cell(7), ctx.Int(0))
	assert.Equal(t, float32(1.5), ctx.Float(1))
	assert.Equal(t, true, ctx.Bool(2))
}

func TestStringDecodedWithCodepage(t *testing.T) {
	assert.Equal(t, nil, codepage.Set(1252))
	ctx := New("OnPlayerText", 0, 0)
	ctx.AttachRawString(1, codepage.Encode("olé"))
	assert.Equal(t, "olé", ctx.String(1))
	assert.Equal(t, "", ctx.String(0)) // no payload attached
}

func TestRetval(t *testing.T) {
	ctx := New("OnPlayerCommandText")
	_, ok := ctx.Retval()
	assert.Equal(t, false, ok)
	ctx.SetRetval(1)
	v, ok := ctx.Retval()
	assert.Equal(t, true, ok)
	assert.Equal(t, Cell(1), v)
}

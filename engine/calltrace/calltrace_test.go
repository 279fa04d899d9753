package calltrace

import (
	"bytes"
	"testing"

	"github.com/bmizerany/assert"
	"github.com/sharpbridge/sharpbridge/engine/callctx"
)

type nopCloser struct {
	*bytes.Buffer
}

func (nopCloser) Close() error { return nil }

func TestTraceRoundtrip(t *testing.T) {
	var buf bytes.Buffer
	tracer := New(nopCloser{&buf})

	tracer.Trace(callctx.New("OnGameModeInit"), true)
	tracer.Trace(callctx.New("OnPlayerConnect", 42), true)

	recs, err := ReadAll(&buf)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(recs))
	assert.Equal(t, uint64(1), recs[0].Seq)
	assert.Equal(t, "OnGameModeInit", recs[0].Name)
	assert.Equal(t, "OnPlayerConnect", recs[1].Name)
	assert.Equal(t, callctx.Cell(42), recs[1].Params[0])
}

func TestNilTracerIsSafe(t *testing.T) {
	var tracer *Tracer
	tracer.Trace(callctx.New("OnPlayerConnect"), true) // must not panic
	assert.Equal(t, nil, tracer.Close())
}

package calltrace

import (
	"io"
	"os"
	"time"

	"github.com/vmihailenco/msgpack"

	"github.com/sharpbridge/sharpbridge/engine/callctx"
	"github.com/sharpbridge/sharpbridge/engine/sblog"
)

// Record is one journaled public call
type Record struct {
	Seq     uint64
	Name    string
	Params  []callctx.Cell
	Handled bool
	Time    int64 // unix nanoseconds
}

// Tracer journals dispatched public calls as MessagePack records. It is a
// diagnostics sink only: write failures are logged and never propagated to
// the dispatch path.
type Tracer struct {
	w       io.WriteCloser
	encoder *msgpack.Encoder
	seq     uint64
	broken  bool
}

// New creates a tracer writing to w
func New(w io.WriteCloser) *Tracer {
	return &Tracer{
		w:       w,
		encoder: msgpack.NewEncoder(w),
	}
}

// OpenFile creates a tracer appending to the named file
func OpenFile(path string) (*Tracer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return nil, err
	}
	return New(f), nil
}

// Trace journals one dispatched call
func (t *Tracer) Trace(ctx *callctx.CallContext, handled bool) {
	if t == nil || t.broken {
		return
	}

	t.seq++
	rec := Record{
		Seq:     t.seq,
		Name:    ctx.Name,
		Params:  ctx.Params,
		Handled: handled,
		Time:    time.Now().UnixNano(),
	}
	if err := t.encoder.Encode(&rec); err != nil {
		sblog.Errorf("calltrace: encode record failed: %s", err)
		t.broken = true
	}
}

// Close closes the underlying writer
func (t *Tracer) Close() error {
	if t == nil {
		return nil
	}
	return t.w.Close()
}

// ReadAll decodes every record from r, for offline inspection of a trace file
func ReadAll(r io.Reader) ([]Record, error) {
	decoder := msgpack.NewDecoder(r)
	var recs []Record
	for {
		var rec Record
		err := decoder.Decode(&rec)
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}

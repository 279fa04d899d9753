package opmon

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestRecordAndDump(t *testing.T) {
	op := StartOperation("dispatch.OnPlayerConnect")
	time.Sleep(time.Millisecond)
	op.Finish(time.Second)

	if Count("dispatch.OnPlayerConnect") != 1 {
		t.Errorf("operation not recorded")
	}

	var buf bytes.Buffer
	DumpTo(&buf)
	if !strings.Contains(buf.String(), "dispatch.OnPlayerConnect") {
		t.Errorf("dump missing operation: %s", buf.String())
	}

	// dump clears the stats
	if Count("dispatch.OnPlayerConnect") != 0 {
		t.Errorf("dump did not clear stats")
	}
}

package symbols

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bmizerany/assert"
)

type fakeRuntime struct {
	converted []string
	fail      bool
}

func (rt *fakeRuntime) IsLoaded() bool { return true }
func (rt *fakeRuntime) Load(assemblyDir, configDir string, traceLevel int, entryAssembly string) error {
	return nil
}
func (rt *fakeRuntime) Unload() {}
func (rt *fakeRuntime) ConvertSymbols(path string) error {
	if rt.fail {
		return fmt.Errorf("convert failed")
	}
	rt.converted = append(rt.converted, path)
	return nil
}

type logRecorder struct {
	lines []string
}

func (lr *logRecorder) logf(format string, args ...interface{}) {
	lr.lines = append(lr.lines, fmt.Sprintf(format, args...))
}

func TestEmptyListIsSilent(t *testing.T) {
	rt := &fakeRuntime{}
	lr := &logRecorder{}

	n := Convert(rt, lr.logf, t.TempDir(), "")
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, len(lr.lines))
	assert.Equal(t, 0, len(rt.converted))

	n = Convert(rt, lr.logf, t.TempDir(), "   ")
	assert.Equal(t, 0, n)
	assert.Equal(t, 0, len(lr.lines))
}

func TestMissingFileSkippedNotFatal(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.dbg"), []byte("symbols"), 0644); err != nil {
		t.Fatal(err)
	}

	rt := &fakeRuntime{}
	lr := &logRecorder{}

	n := Convert(rt, lr.logf, dir, "a.dbg  b.dbg")
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, len(rt.converted))
	assert.Equal(t, filepath.Join(dir, "a.dbg"), rt.converted[0])

	failures := 0
	for _, line := range lr.lines {
		if line == "  Failed." {
			failures++
		}
	}
	assert.Equal(t, 1, failures)
}

func TestConversionErrorCountsAsFailure(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.dbg"), []byte("symbols"), 0644); err != nil {
		t.Fatal(err)
	}

	rt := &fakeRuntime{fail: true}
	lr := &logRecorder{}

	n := Convert(rt, lr.logf, dir, "a.dbg")
	assert.Equal(t, 0, n)
	assert.Equal(t, " Converted 0 files.", lr.lines[len(lr.lines)-2])
}

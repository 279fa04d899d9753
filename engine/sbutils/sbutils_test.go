package sbutils

import (
	"fmt"
	"testing"
)

func TestRunPanicless(t *testing.T) {
	if !RunPanicless(func() {
		panic(1)
	}) {
		t.Errorf("panic not detected")
	}
	if !RunPanicless(func() {
		panic(fmt.Errorf("bad"))
	}) {
		t.Errorf("panic not detected")
	}
	if RunPanicless(func() {}) {
		t.Errorf("no panic occured")
	}
}

func TestCatchPanic(t *testing.T) {
	if err := CatchPanic(func() error { return nil }); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := CatchPanic(func() error { panic("boom") }); err == nil {
		t.Errorf("panic not converted to error")
	}
	if err := CatchPanic(func() error { panic(fmt.Errorf("boom")) }); err == nil || err.Error() != "boom" {
		t.Errorf("error panic not passed through: %v", err)
	}
}

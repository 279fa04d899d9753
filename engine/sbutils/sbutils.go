package sbutils

import (
	"github.com/pkg/errors"
	"github.com/sharpbridge/sharpbridge/engine/sblog"
)

// RunPanicless calls a function panic-freely
func RunPanicless(f func()) (paniced bool) {
	defer func() {
		err := recover()
		if err != nil {
			sblog.TraceError("%v panic: %s", f, err)
			paniced = true
		}
	}()

	f()
	return
}

// CatchPanic runs the function and converts a panic to an ordinary error
func CatchPanic(f func() error) (err error) {
	defer func() {
		if v := recover(); v != nil {
			var ok bool
			if err, ok = v.(error); !ok {
				err = errors.Errorf("panic: %v", v)
			}
		}
	}()

	return f()
}

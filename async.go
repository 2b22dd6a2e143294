package zautils

import (
	"github.com/sourcegraph/conc/panics"
)

// SafeGo runs f on a new goroutine as a fire-and-forget operation.
// If f returns an error or panics, the failure is passed to onError;
// with a nil onError it is discarded. The caller never observes an
// unhandled failure. Panics are reported as *panics.ErrRecovered.
func SafeGo(f func() error, onError func(error)) {
	go func() {
		if err := safeCall(f); err != nil && onError != nil {
			onError(err)
		}
	}()
}

// safeCall invokes f, converting a panic into an error.
func safeCall(f func() error) error {
	var err error
	if r := panics.Try(func() { err = f() }); r != nil {
		return r.AsError()
	}
	return err
}

package form

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidName is returned by New for blank names.
	ErrInvalidName = errors.New("form: name is required")
	// ErrValidation is returned by Submit when validation fails. The
	// operation is not started in that case.
	ErrValidation = errors.New("form: validation failed")
	// ErrNoSubmit is returned by Submit when no operation was passed and none
	// was registered with SetSubmit.
	ErrNoSubmit = errors.New("form: no submit operation")
	// ErrFutureClosed is returned by an Await operation whose channel closed
	// without delivering a result.
	ErrFutureClosed = errors.New("form: future closed without a result")
)

// CallbackError reports a success or failure callback that panicked while
// the form used CallbackRecover.
type CallbackError struct {
	// Callback is "success" or "failure".
	Callback string
	// Panic is the recovered value.
	Panic any
	// Cause is the operation error handed to a failure callback; nil for
	// success callbacks.
	Cause error
}

func (e *CallbackError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("form: %s callback panicked: %v (operation error: %v)", e.Callback, e.Panic, e.Cause)
	}
	return fmt.Sprintf("form: %s callback panicked: %v", e.Callback, e.Panic)
}

// Unwrap exposes both the panic value (when it is an error) and the
// operation error.
func (e *CallbackError) Unwrap() []error {
	var out []error
	if err, ok := e.Panic.(error); ok {
		out = append(out, err)
	}
	if e.Cause != nil {
		out = append(out, e.Cause)
	}
	return out
}

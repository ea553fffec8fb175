package form

import (
	"go.uber.org/zap"

	"github.com/goliatone/go-formstate/pkg/registry"
	"github.com/goliatone/go-formstate/pkg/store"
)

// CallbackPolicy decides what happens when a submit callback panics.
type CallbackPolicy int

const (
	// CallbackPropagate lets the panic escape Submit untouched.
	CallbackPropagate CallbackPolicy = iota
	// CallbackRecover recovers the panic and returns it from Submit as a
	// *CallbackError.
	CallbackRecover
)

// SuccessFunc runs after a successful submit operation.
type SuccessFunc func(result any, f *Form)

// FailureFunc runs after a failed submit operation. It does not run when
// validation rejects the submit.
type FailureFunc func(err error, f *Form)

// Option configures a Form.
type Option func(*Form)

// WithRegistry registers the form under its name on construction. Close
// removes it again.
func WithRegistry(reg *registry.Registry[*Form]) Option {
	return func(f *Form) {
		f.registry = reg
	}
}

// WithStore places the form's state in a slot of a shared store instead of a
// private one. The slot is named after the form.
func WithStore(s *store.Store) Option {
	return func(f *Form) {
		if s != nil {
			f.store = s
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithSubmit registers the default submit operation.
func WithSubmit(op Operation) Option {
	return func(f *Form) {
		f.submit = op
	}
}

// OnSuccess sets the success callback.
func OnSuccess(fn SuccessFunc) Option {
	return func(f *Form) {
		f.onSuccess = fn
	}
}

// OnFailure sets the failure callback.
func OnFailure(fn FailureFunc) Option {
	return func(f *Form) {
		f.onFailure = fn
	}
}

// WithCallbackPolicy selects how callback panics are handled.
func WithCallbackPolicy(policy CallbackPolicy) Option {
	return func(f *Form) {
		f.policy = policy
	}
}

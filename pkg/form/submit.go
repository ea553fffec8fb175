package form

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Operation is the asynchronous work a submit waits on. It receives the
// context passed to Submit; honouring cancellation is up to the operation.
type Operation func(ctx context.Context) (any, error)

// SetSubmit registers the operation Submit runs when called without one. It
// returns f for chaining.
func (f *Form) SetSubmit(op Operation) *Form {
	f.submit = op
	return f
}

// Submit clears stale errors, validates, and when the form is valid runs op
// (or the operation registered with SetSubmit). Invalid forms return
// ErrValidation without starting the operation. Operation errors are returned
// unchanged after the failure callback runs; results are returned after the
// success callback runs.
func (f *Form) Submit(ctx context.Context, op Operation) (any, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if op == nil {
		op = f.submit
	}
	if op == nil {
		return nil, ErrNoSubmit
	}

	log := f.logger.With(zap.String("attempt", uuid.NewString()))

	f.ClearErrors()
	if !f.Validate() {
		log.Debug("submit rejected by validation",
			zap.Strings("form_errors", f.current().Errors),
			zap.Int("fields_with_errors", countFieldsWithErrors(f.FieldErrors())),
		)
		return nil, ErrValidation
	}

	log.Debug("submit running")
	result, err := op(ctx)
	if err != nil {
		log.Debug("submit failed", zap.Error(err))
		if f.onFailure != nil {
			if cbErr := f.runCallback("failure", err, func() { f.onFailure(err, f) }); cbErr != nil {
				return nil, cbErr
			}
		}
		return nil, err
	}

	log.Debug("submit succeeded")
	if f.onSuccess != nil {
		if cbErr := f.runCallback("success", nil, func() { f.onSuccess(result, f) }); cbErr != nil {
			return nil, cbErr
		}
	}
	return result, nil
}

func (f *Form) runCallback(name string, cause error, fn func()) (cbErr error) {
	if f.policy != CallbackRecover {
		fn()
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			f.logger.Warn("submit callback panicked", zap.String("callback", name), zap.Any("panic", r))
			cbErr = &CallbackError{Callback: name, Panic: r, Cause: cause}
		}
	}()
	fn()
	return nil
}

func countFieldsWithErrors(errs map[string][]string) int {
	n := 0
	for _, msgs := range errs {
		if len(msgs) > 0 {
			n++
		}
	}
	return n
}

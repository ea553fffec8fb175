package form

import "context"

// Result is the outcome of an already-started computation.
type Result struct {
	Value any
	Err   error
}

// Await adapts a computation that reports on ch into an Operation. The
// operation returns the first Result received, ErrFutureClosed when ch closes
// first, or the context error when ctx ends first.
func Await(ch <-chan Result) Operation {
	return func(ctx context.Context) (any, error) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res, ok := <-ch:
			if !ok {
				return nil, ErrFutureClosed
			}
			return res.Value, res.Err
		}
	}
}

// Start runs op in its own goroutine right away and returns an Operation that
// waits for it. The goroutine always finishes and never blocks on delivery,
// even if nobody waits.
func Start(ctx context.Context, op Operation) Operation {
	ch := make(chan Result, 1)
	go func() {
		value, err := op(ctx)
		ch <- Result{Value: value, Err: err}
	}()
	return Await(ch)
}

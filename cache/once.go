package cache

import (
	"context"
	"sync"
)

// Once runs a function until it succeeds once. Later calls do nothing until Reset.
//
// Unlike sync.Once a failed run does not count, the next call tries again.
type Once[T any] struct {
	fn func(context.Context) (T, error)

	mu  sync.Mutex
	ran bool
}

// NewOnce wraps fn.
func NewOnce[T any](fn func(context.Context) (T, error)) *Once[T] {
	//nolint:exhaustruct // zero state is armed
	return &Once[T]{fn: fn}
}

// Do runs the function if it has not succeeded yet. ran reports whether it was called;
// result and err are those of the call.
func (o *Once[T]) Do(ctx context.Context) (result T, ran bool, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.ran {
		return result, false, nil
	}

	result, err = o.fn(ctx)
	if err != nil {
		return result, true, err
	}

	o.ran = true

	return result, true, nil
}

// Done reports whether the function has succeeded since creation or the last Reset.
func (o *Once[T]) Done() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.ran
}

// Reset re-arms the guard.
func (o *Once[T]) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.ran = false
}

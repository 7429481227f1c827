package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Memo caches the result of a function for a fixed time-to-live.
//
// Failed calls are not cached. Concurrent callers that find the value stale
// share a single call to the function. The zero value is not usable, see NewMemo.
type Memo[T any] struct {
	fn  func(context.Context) (T, error)
	ttl time.Duration
	now func() time.Time

	group singleflight.Group

	mu      sync.RWMutex
	value   T
	updated time.Time
	valid   bool
}

// MemoOption configures a Memo.
type MemoOption func(*memoOptions)

type memoOptions struct {
	now func() time.Time
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) MemoOption {
	return func(opts *memoOptions) {
		opts.now = now
	}
}

// NewMemo returns a Memo calling fn at most once per ttl. A non-positive ttl caches nothing.
func NewMemo[T any](ttl time.Duration, fn func(context.Context) (T, error), opts ...MemoOption) *Memo[T] {
	options := memoOptions{now: time.Now}

	for _, apply := range opts {
		apply(&options)
	}

	//nolint:exhaustruct // zero state is empty
	return &Memo[T]{
		fn:  fn,
		ttl: ttl,
		now: options.now,
	}
}

// Get returns the cached value, refreshing it first when it is missing or older than the ttl.
//
// The refresh runs with ctx stripped of its cancellation, since other callers
// may be waiting for the same result. A caller whose ctx ends while waiting
// gets ctx.Err(); the refresh goes on and still fills the cache.
func (m *Memo[T]) Get(ctx context.Context) (T, error) {
	if value, ok := m.fresh(); ok {
		return value, nil
	}

	refresh := context.WithoutCancel(ctx)

	results := m.group.DoChan("", func() (any, error) {
		if value, ok := m.fresh(); ok {
			return value, nil
		}

		value, err := m.fn(refresh)
		if err != nil {
			return value, err
		}

		m.mu.Lock()
		m.value = value
		m.updated = m.now()
		m.valid = true
		m.mu.Unlock()

		return value, nil
	})

	select {
	case <-ctx.Done():
		var zero T

		return zero, ctx.Err() //nolint:wrapcheck // caller's own context
	case result := <-results:
		value, _ := result.Val.(T)

		return value, result.Err //nolint:wrapcheck // caller's own error
	}
}

// Invalidate drops the cached value.
func (m *Memo[T]) Invalidate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero T

	m.value = zero
	m.valid = false
}

func (m *Memo[T]) fresh() (T, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.valid || m.now().Sub(m.updated) >= m.ttl {
		var zero T

		return zero, false
	}

	return m.value, true
}

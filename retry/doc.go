// Package retry runs an operation until it succeeds or a bounded number of
// attempts is exhausted.
//
// Every failed attempt but the last is logged at WARN level and followed by an
// exponential backoff that respects context cancellation. When all attempts
// fail the returned error wraps both ErrTooManyTries and the last failure:
//
//	body, err := retry.Do(ctx, retry.DefaultConfig, func(ctx context.Context) ([]byte, error) {
//		return fetch(ctx, url)
//	})
//	if errors.Is(err, retry.ErrTooManyTries) {
//		...
//	}
//
// Each call to Do is recorded as an OpenTelemetry span named "retry.do".
package retry

package retry_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/0xalexb/hjarta-helpers/retry"
)

var errFlaky = errors.New("flaky")

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fastConfig(attempts int) retry.Config {
	return retry.Config{
		Attempts:   attempts,
		Backoff:    time.Millisecond,
		MaxBackoff: 2 * time.Millisecond,
		Factor:     2,
		Name:       "test",
		Logger:     quiet(),
		Tracer:     nil,
	}
}

// failing returns a function that fails the first n calls.
func failing(n int, calls *int) func(context.Context) (string, error) {
	return func(context.Context) (string, error) {
		*calls++
		if *calls <= n {
			return "", errFlaky
		}

		return "ok", nil
	}
}

func TestDo(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		attempts  int
		failures  int
		wantCalls int
		wantErr   bool
	}{
		{name: "first attempt succeeds", attempts: 3, failures: 0, wantCalls: 1, wantErr: false},
		{name: "succeeds on last attempt", attempts: 3, failures: 2, wantCalls: 3, wantErr: false},
		{name: "all attempts fail", attempts: 3, failures: 5, wantCalls: 3, wantErr: true},
		{name: "single attempt fails", attempts: 1, failures: 1, wantCalls: 1, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			calls := 0

			result, err := retry.Do(context.Background(), fastConfig(testCase.attempts), failing(testCase.failures, &calls))

			assert.Equal(t, testCase.wantCalls, calls)

			if testCase.wantErr {
				require.ErrorIs(t, err, retry.ErrTooManyTries)
				require.ErrorIs(t, err, errFlaky)
				assert.Empty(t, result)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "ok", result)
		})
	}
}

func TestDo_InvalidAttempts(t *testing.T) {
	t.Parallel()

	called := false

	_, err := retry.Do(context.Background(), fastConfig(0), func(context.Context) (int, error) {
		called = true

		return 0, nil
	})

	require.ErrorIs(t, err, retry.ErrInvalidAttempts)
	assert.False(t, called)
}

func TestDo_LogsEachRetry(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := fastConfig(3)
	cfg.Logger = slog.New(slog.NewTextHandler(&buf, nil))

	calls := 0
	_, err := retry.Do(context.Background(), cfg, failing(5, &calls))
	require.Error(t, err)

	// No warning after the final attempt.
	assert.Equal(t, 2, strings.Count(buf.String(), "msg=retrying"))
	assert.Contains(t, buf.String(), "attempt=1")
	assert.Contains(t, buf.String(), "attempt=2")
	assert.Contains(t, buf.String(), "name=test")
}

func TestDo_ContextCancelledDuringBackoff(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	cfg := fastConfig(5)
	cfg.Backoff = time.Hour
	cfg.MaxBackoff = 0

	calls := 0

	_, err := retry.Do(ctx, cfg, func(context.Context) (int, error) {
		calls++

		cancel()

		return 0, errFlaky
	})

	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, err, errFlaky)
	require.NotErrorIs(t, err, retry.ErrTooManyTries)
	assert.Equal(t, 1, calls)
}

func TestDo_RecordsSpan(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	t.Cleanup(func() {
		_ = provider.Shutdown(context.Background())
	})

	cfg := fastConfig(2)
	cfg.Tracer = provider.Tracer("retry-test")

	calls := 0
	_, err := retry.Do(context.Background(), cfg, failing(1, &calls))
	require.NoError(t, err)

	calls = 0
	_, err = retry.Do(context.Background(), cfg, failing(2, &calls))
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, "retry.do", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "retry", spans[0].Events[0].Name)

	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Contains(t, spans[1].Status.Description, "too many tries")
}

func TestTimes(t *testing.T) {
	t.Parallel()

	calls := 0

	err := retry.Times(context.Background(), 4, func(context.Context) error {
		calls++

		return errFlaky
	})

	require.ErrorIs(t, err, retry.ErrTooManyTries)
	assert.Equal(t, 4, calls)

	calls = 0

	err = retry.Times(context.Background(), 4, func(context.Context) error {
		calls++

		if calls < 2 {
			return errFlaky
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_DefaultConfigSucceedsWithoutPause(t *testing.T) {
	t.Parallel()

	started := time.Now()

	value, err := retry.Do(context.Background(), retry.DefaultConfig, func(context.Context) (int, error) {
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, value)
	assert.Less(t, time.Since(started), retry.DefaultConfig.Backoff)
}

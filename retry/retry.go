package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	// ErrTooManyTries is returned when every attempt failed.
	ErrTooManyTries = errors.New("too many tries")
	// ErrInvalidAttempts is returned when Config.Attempts is below one.
	ErrInvalidAttempts = errors.New("attempts must be positive")
)

const tracerName = "github.com/0xalexb/hjarta-helpers/retry"

// Config configures retry behavior.
type Config struct {
	// Attempts is the maximum number of calls, the first one included.
	Attempts int

	// Backoff is the pause after the first failure. Zero retries immediately.
	Backoff time.Duration

	// MaxBackoff caps the pause. Zero means no cap.
	MaxBackoff time.Duration

	// Factor multiplies the pause after each failure. Values below 1 keep it constant.
	Factor float64

	// Name identifies the operation in logs and spans.
	Name string

	// Logger receives the retry warnings. Nil means slog.Default().
	Logger *slog.Logger

	// Tracer records the span. Nil means the global OpenTelemetry tracer.
	Tracer trace.Tracer
}

// DefaultConfig makes three attempts, pausing 1s and then 2s.
//
//nolint:gochecknoglobals // read-only preset
var DefaultConfig = Config{
	Attempts:   3,
	Backoff:    time.Second,
	MaxBackoff: 30 * time.Second,
	Factor:     2,
	Name:       "",
	Logger:     nil,
	Tracer:     nil,
}

// Do calls fn until it succeeds, at most cfg.Attempts times.
//
// The context passed to fn is the one carrying the retry span. When ctx is
// cancelled during a pause the context error is returned, joined with the
// last failure.
func Do[T any](ctx context.Context, cfg Config, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if cfg.Attempts < 1 {
		return zero, fmt.Errorf("%w: %d", ErrInvalidAttempts, cfg.Attempts)
	}

	ctx, span := cfg.tracer().Start(ctx, "retry.do",
		trace.WithAttributes(
			attribute.String("retry.name", cfg.Name),
			attribute.Int("retry.max_attempts", cfg.Attempts),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	logger := cfg.logger()
	backoff := cfg.Backoff

	var lastErr error

	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			span.SetAttributes(attribute.Int("retry.attempts", attempt))
			span.SetStatus(codes.Ok, "")

			return result, nil
		}

		lastErr = err

		if attempt == cfg.Attempts {
			break
		}

		logger.Warn("retrying",
			slog.String("name", cfg.Name),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff),
			slog.Any("error", err),
		)
		span.AddEvent("retry", trace.WithAttributes(attribute.Int("retry.attempt", attempt)))

		err = sleep(ctx, backoff)
		if err != nil {
			err = errors.Join(err, lastErr)
			endWithError(span, err)

			return zero, err
		}

		backoff = cfg.next(backoff)
	}

	err := fmt.Errorf("%w: %d attempts: %w", ErrTooManyTries, cfg.Attempts, lastErr)
	endWithError(span, err)

	return zero, err
}

// Times calls fn at most n times without pausing between attempts.
func Times(ctx context.Context, n int, fn func(context.Context) error) error {
	cfg := Config{
		Attempts:   n,
		Backoff:    0,
		MaxBackoff: 0,
		Factor:     0,
		Name:       "",
		Logger:     nil,
		Tracer:     nil,
	}

	_, err := Do(ctx, cfg, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})

	return err
}

func (c Config) next(backoff time.Duration) time.Duration {
	if c.Factor > 1 {
		backoff = time.Duration(float64(backoff) * c.Factor)
	}

	if c.MaxBackoff > 0 && backoff > c.MaxBackoff {
		return c.MaxBackoff
	}

	return backoff
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}

	return slog.Default()
}

//nolint:ireturn // otel API
func (c Config) tracer() trace.Tracer {
	if c.Tracer != nil {
		return c.Tracer
	}

	return otel.Tracer(tracerName)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func endWithError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

package blobstore

import (
	"context"
	"errors"
	"log/slog"

	"github.com/0xalexb/hjarta-helpers/logging"
)

// ErrStoreClosed is returned when a closed store is used.
var ErrStoreClosed = errors.New("store is closed")

// Store persists values under keys.
//
// An empty key means "no persistence": Save does nothing and Load reports a miss.
type Store interface {
	// Load decodes the value saved under key into target. found is false when
	// nothing is stored under key.
	Load(key string, target any) (found bool, err error)
	// Save encodes value and stores it under key, replacing any previous value.
	Save(key string, value any) error
}

// Option configures a store.
type Option func(*options)

type options struct {
	codec  Codec
	logger *slog.Logger
}

// WithCodec sets the value encoding. The default is JSONCodec.
func WithCodec(codec Codec) Option {
	return func(opts *options) {
		opts.codec = codec
	}
}

// WithLogger sets the logger. The default is the slog default logger tagged with the store type.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}

func newOptions(opts []Option) options {
	result := options{
		codec:  JSONCodec{},
		logger: nil,
	}

	for _, apply := range opts {
		apply(&result)
	}

	return result
}

func (o options) loggerFor(store any) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}

	return logging.For(store)
}

// Cached returns the value stored under key, or computes it with fn and stores it.
//
// A value that cannot be loaded is recomputed. A failure to save is logged and
// the computed value is still returned.
func Cached[T any](ctx context.Context, store Store, key string, fn func(context.Context) (T, error)) (T, error) {
	var cached T

	found, err := store.Load(key, &cached)
	if err != nil {
		slog.Warn("cached value not loaded", slog.String("key", key), slog.Any("error", err))
	}

	if found && err == nil {
		return cached, nil
	}

	result, err := fn(ctx)
	if err != nil {
		return result, err
	}

	err = store.Save(key, result)
	if err != nil {
		slog.Error("cached value not saved", slog.String("key", key), slog.Any("error", err))
	}

	return result, nil
}

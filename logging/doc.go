// Package logging provides structured logging using Go's standard library log/slog.
// It outputs JSON (or text) logs, installs the process-wide default logger and
// hands out per-type loggers. The root package supplies the logger to Fx.
package logging

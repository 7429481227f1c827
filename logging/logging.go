package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LoggerConfig holds configuration for the logger.
type LoggerConfig struct {
	Level string `yaml:"level"`
	// Format is "json" (default) or "text".
	Format string `yaml:"format"`
}

// NewLogger creates a new slog.Logger writing to w in the configured format.
// The level is parsed from the config; defaults to INFO if invalid or empty.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	options := &slog.HandlerOptions{
		AddSource:   false,
		Level:       ParseLevel(config.Level),
		ReplaceAttr: nil,
	}

	if strings.EqualFold(config.Format, "text") {
		return slog.New(slog.NewTextHandler(w, options))
	}

	return slog.New(slog.NewJSONHandler(w, options))
}

// Setup creates the process logger, installs it as the slog default and
// writes a separator banner with the effective level, so that restarts are
// easy to spot in a shared log file.
func Setup(config LoggerConfig, w io.Writer) *slog.Logger {
	logger := NewLogger(config, w)
	slog.SetDefault(logger)

	logger.Info(strings.Repeat("-", 100))
	logger.Info("Log level: " + ParseLevel(config.Level).String())

	return logger
}

// For returns the default logger tagged with the type name of owner,
// e.g. `logger=*store.FileStore`.
func For(owner any) *slog.Logger {
	return slog.Default().With(slog.String("logger", fmt.Sprintf("%T", owner)))
}

// ParseLevel maps a case-insensitive level name to a slog.Level, INFO when unknown.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

package helpers

import (
	"github.com/0xalexb/hjarta-helpers/config"

	"go.uber.org/fx"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithConfig loads the configuration document at startup and supplies the root
// *config.View to the container. A document that cannot be loaded fails startup.
//
// Typed sections are usually provided next to it:
//
//	helpers.NewApp(
//		helpers.WithConfig(config.WithName("config.yaml")),
//		helpers.WithModules(fx.Provide(config.Provider(new(ServerConfig), "server"))),
//	)
func WithConfig(opts ...config.LoadOption) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, config.Module(opts...))
	}
}

// WithLogLevel sets the log level for the application.
// Valid levels are: "debug", "info", "warn", "error".
// If not set or invalid, defaults to "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat selects "json" (default) or "text" log output.
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

package config

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module returns an Fx module that loads the configuration document once and
// supplies the root *View. Load errors abort application startup.
// The module expects a *slog.Logger in the container, as supplied by helpers.NewApp.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func Module(opts ...LoadOption) fx.Option {
	return fx.Module("config",
		fx.Provide(func(logger *slog.Logger) (*View, error) {
			return Load(append([]LoadOption{WithLogger(logger)}, opts...)...)
		}),
	)
}

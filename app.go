package helpers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/0xalexb/hjarta-helpers/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var errAppNotInitialized = errors.New("app not initialized")

// App is the service shell: an Fx container that always holds the process
// logger (*slog.Logger and its logging.LoggerConfig) and, with WithConfig,
// the root *config.View. Services add their own constructors with WithModules.
type App struct {
	fx *fx.App
}

// NewApp builds the container. The logger is created first and installed as the
// slog default so that constructors logging through slog and Fx's own event log
// share one output. Errors from constructors run during the build, such as a
// configuration document that cannot be loaded, are reported by Err and Start.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	loggerConfig := logging.LoggerConfig{Level: options.LogLevel, Format: options.LogFormat}

	logger := logging.NewLogger(loggerConfig, os.Stderr)
	slog.SetDefault(logger)

	return &App{
		fx: fx.New(
			fx.WithLogger(func() fxevent.Logger {
				return &fxevent.SlogLogger{Logger: logger}
			}),
			fx.Supply(loggerConfig, logger),
			fx.Options(options.Modules...),
		),
	}
}

func (app *App) ready() bool {
	return app != nil && app.fx != nil
}

// Err returns the error recorded while building the container, nil when it is usable.
func (app *App) Err() error {
	if !app.ready() {
		return errAppNotInitialized
	}

	return app.fx.Err() //nolint:wrapcheck // fx error carries its own context
}

// Start runs the OnStart hooks of every module.
func (app *App) Start() error {
	if !app.ready() {
		return errAppNotInitialized
	}

	err := app.fx.Start(context.Background())
	if err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}

	return nil
}

// Run starts the app, waits for SIGINT or SIGTERM (or an fx.Shutdowner call)
// and stops it.
func (app *App) Run() {
	if !app.ready() {
		slog.Error("attempted to run an uninitialized app")

		return
	}

	app.fx.Run()
}

// Stop runs the OnStop hooks in reverse order.
func (app *App) Stop() error {
	if !app.ready() {
		return errAppNotInitialized
	}

	err := app.fx.Stop(context.Background())
	if err != nil {
		return fmt.Errorf("failed to stop app: %w", err)
	}

	return nil
}

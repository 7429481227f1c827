// Command cfgget loads a configuration document and prints the value under a dotted path.
//
// Usage:
//
//	cfgget [flags] <document> [path]
//
// Scalars are printed as is, mappings and sequences as YAML. With --seconds the
// value is read as a time span ("1h 30m") and printed in whole seconds.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"

	"github.com/0xalexb/hjarta-helpers/config"
	"github.com/0xalexb/hjarta-helpers/logging"
)

var errUsage = errors.New("usage: cfgget [flags] <document> [path]")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	flags := pflag.NewFlagSet("cfgget", pflag.ContinueOnError)
	flags.SetOutput(stderr)

	def := flags.StringP("default", "d", "", "value printed when the path does not exist")
	seconds := flags.BoolP("seconds", "s", false, "read the value as a time span and print seconds")
	envFile := flags.String("env-file", "", "environment file loaded before the document")
	logLevel := flags.String("log-level", "warn", "log level: debug, info, warn, error")

	err := flags.Parse(args)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}

	if err != nil {
		return 2
	}

	logger := logging.Setup(logging.LoggerConfig{Level: *logLevel, Format: "text"}, stderr)

	positional := flags.Args()
	if len(positional) < 1 || len(positional) > 2 {
		fmt.Fprintln(stderr, errUsage)

		return 2
	}

	path := ""
	if len(positional) == 2 {
		path = positional[1]
	}

	view, err := config.Load(
		config.WithName(positional[0]),
		config.WithEnvFile(*envFile),
		config.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 1
	}

	node := view.Sub(path)
	if node.Err() != nil && flags.Changed("default") {
		node = config.New(*def)
	}

	err = printNode(stdout, node, *seconds)
	if err != nil {
		fmt.Fprintln(stderr, err)

		return 1
	}

	return 0
}

func printNode(w io.Writer, node *config.View, seconds bool) error {
	if seconds {
		value, err := node.Seconds()
		if err != nil {
			return err //nolint:wrapcheck // already names the path
		}

		_, err = fmt.Fprintln(w, value)

		return err //nolint:wrapcheck // writer error
	}

	if node.Err() != nil {
		return node.Err() //nolint:wrapcheck // already names the path
	}

	if node.Kind() == config.KindScalar {
		_, err := fmt.Fprintln(w, node.String())

		return err //nolint:wrapcheck // writer error
	}

	data, err := yaml.Marshal(node.Value())
	if err != nil {
		return fmt.Errorf("encode %q: %w", node.Path(), err)
	}

	_, err = w.Write(data)

	return err //nolint:wrapcheck // writer error
}

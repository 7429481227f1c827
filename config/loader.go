package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/imdario/mergo"
	"github.com/joho/godotenv"

	filefetcher "github.com/0xalexb/hjarta-helpers/config/fetcher/file"
	jsonparser "github.com/0xalexb/hjarta-helpers/config/parser/json"
	yamlparser "github.com/0xalexb/hjarta-helpers/config/parser/yaml"
)

const (
	// DefaultName is the document loaded when neither a name nor a process argument is given.
	DefaultName = "../config.yaml"
	// DefaultEnvFile is the environment side-file loaded before the document.
	DefaultEnvFile = ".env"
)

// ErrDefaultsNeedMapping is returned when WithDefaults is combined with a non-mapping document.
var ErrDefaultsNeedMapping = errors.New("defaults require a mapping document")

// LoadOption configures Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	data     any
	hasData  bool
	name     string
	section  string
	args     []string
	envFile  string
	fsys     fs.FS
	parser   Parser
	defaults map[string]any
	logger   *slog.Logger
}

// WithData uses an already parsed document. It takes precedence over every other source.
func WithData(document any) LoadOption {
	return func(opts *loadOptions) {
		opts.data = document
		opts.hasData = true
	}
}

// WithName names the document file to load.
func WithName(name string) LoadOption {
	return func(opts *loadOptions) {
		opts.name = name
	}
}

// WithSection loads only the subtree under a dotted path ("services.api",
// "servers.-1"), which becomes the root of the returned View. The path is
// handed to the parser, so only that part of the document is decoded.
// A missing section fails Load.
func WithSection(path string) LoadOption {
	return func(opts *loadOptions) {
		opts.section = path
	}
}

// WithArgs sets the positional process arguments; the first one names the document
// when WithName is not used. The default is os.Args[1:].
func WithArgs(args []string) LoadOption {
	return func(opts *loadOptions) {
		opts.args = args
	}
}

// WithEnvFile sets the environment side-file. An empty path disables it.
func WithEnvFile(path string) LoadOption {
	return func(opts *loadOptions) {
		opts.envFile = path
	}
}

// WithFS reads the document from fsys instead of the operating system.
func WithFS(fsys fs.FS) LoadOption {
	return func(opts *loadOptions) {
		opts.fsys = fsys
	}
}

// WithParser forces the parser. By default ".json" files use the JSON parser
// and everything else the YAML parser.
func WithParser(parser Parser) LoadOption {
	return func(opts *loadOptions) {
		opts.parser = parser
	}
}

// WithDefaults provides compiled-in values merged beneath the loaded document;
// the document wins wherever both define a key.
func WithDefaults(defaults map[string]any) LoadOption {
	return func(opts *loadOptions) {
		opts.defaults = defaults
	}
}

// WithLogger sets the logger used while loading. The default is slog.Default().
func WithLogger(logger *slog.Logger) LoadOption {
	return func(opts *loadOptions) {
		opts.logger = logger
	}
}

// Load builds the root View.
//
// It first loads the environment side-file (best effort), then resolves the
// document from, in order: WithData, WithName, the first process argument,
// DefaultName. Reading or parsing failures are returned, never masked.
func Load(opts ...LoadOption) (*View, error) {
	options := loadOptions{
		args:    os.Args[1:],
		envFile: DefaultEnvFile,
		logger:  slog.Default(),
	}

	for _, apply := range opts {
		apply(&options)
	}

	loadEnvFile(options.envFile, options.logger)

	document, err := options.document()
	if err != nil {
		return nil, err
	}

	if options.defaults != nil {
		document, err = mergeDefaults(options.defaults, document)
		if err != nil {
			return nil, err
		}
	}

	return New(document), nil
}

func (o *loadOptions) document() (any, error) {
	if o.hasData {
		if o.section == "" {
			return o.data, nil
		}

		section := New(o.data).Sub(o.section)

		return section.Value(), section.Err()
	}

	name := o.sourceName()

	var fetcher *filefetcher.Fetcher

	var err error
	if o.fsys != nil {
		fetcher, err = filefetcher.NewFSFetcher(o.fsys, name)()
	} else {
		fetcher, err = filefetcher.NewFetcher(name)()
	}

	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading data error: %w", err)
	}

	parser := o.parser
	if parser == nil {
		parser = parserFor(name)
	}

	var document any

	err = parser.Parse(data, &document, o.section)
	if err != nil {
		return nil, fmt.Errorf("parsing %q error: %w", fetcher.Path(), err)
	}

	o.logger.Info("configuration loaded", slog.String("path", fetcher.Path()), slog.String("section", o.section))

	return document, nil
}

func (o *loadOptions) sourceName() string {
	if o.name != "" {
		return o.name
	}

	if len(o.args) > 0 && o.args[0] != "" {
		return o.args[0]
	}

	return DefaultName
}

//nolint:ireturn // parser is picked at runtime
func parserFor(name string) Parser {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return jsonparser.NewParser()
	}

	return yamlparser.NewParser()
}

func loadEnvFile(path string, logger *slog.Logger) {
	if path == "" {
		return
	}

	err := godotenv.Load(path)
	if err == nil {
		logger.Debug("environment file loaded", slog.String("path", path))

		return
	}

	if !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("environment file not loaded", slog.String("path", path), slog.Any("error", err))
	}
}

func mergeDefaults(defaults map[string]any, document any) (any, error) {
	merged, _ := Normalize(defaults).(map[string]any)

	if document == nil {
		return merged, nil
	}

	normalized := Normalize(document)

	mapping, ok := normalized.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrDefaultsNeedMapping, KindOf(normalized))
	}

	err := mergo.Merge(&merged, mapping, mergo.WithOverride)
	if err != nil {
		return nil, fmt.Errorf("merging defaults: %w", err)
	}

	return merged, nil
}

package config_test

import (
	"bytes"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/0xalexb/hjarta-helpers/config"
	filefetcher "github.com/0xalexb/hjarta-helpers/config/fetcher/file"
	jsonparser "github.com/0xalexb/hjarta-helpers/config/parser/json"
	yamlparser "github.com/0xalexb/hjarta-helpers/config/parser/yaml"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)

	err := os.WriteFile(path, []byte(content), 0o600)
	require.NoError(t, err)

	return path
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func TestLoad_SourcePriority(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	named := writeFile(t, dir, "named.yaml", "source: name\n")
	argument := writeFile(t, dir, "argument.yaml", "source: argument\n")

	testCases := []struct {
		name     string
		opts     []config.LoadOption
		expected any
	}{
		{
			name:     "data wins over everything",
			opts:     []config.LoadOption{config.WithData(map[string]any{"source": "data"}), config.WithName(named), config.WithArgs([]string{argument})},
			expected: "data",
		},
		{
			name:     "name wins over arguments",
			opts:     []config.LoadOption{config.WithName(named), config.WithArgs([]string{argument})},
			expected: "name",
		},
		{
			name:     "first argument",
			opts:     []config.LoadOption{config.WithArgs([]string{argument, named})},
			expected: "argument",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			opts := append([]config.LoadOption{config.WithEnvFile(""), config.WithLogger(quietLogger())}, testCase.opts...)

			view, err := config.Load(opts...)
			require.NoError(t, err)

			value, err := view.Get("source")
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, value)
		})
	}
}

func TestLoad_DefaultName(t *testing.T) {
	t.Parallel()

	_, err := config.Load(
		config.WithArgs(nil),
		config.WithEnvFile(""),
		config.WithFS(fstest.MapFS{}),
		config.WithLogger(quietLogger()),
	)

	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), config.DefaultName)
}

func TestLoad_FromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"conf/app.json": &fstest.MapFile{Data: []byte(`{"server": {"port": 8080, "ratio": 0.5}}`)},
	}

	view, err := config.Load(
		config.WithName("conf/app.json"),
		config.WithEnvFile(""),
		config.WithFS(fsys),
		config.WithLogger(quietLogger()),
	)
	require.NoError(t, err)

	port, err := view.Get("server.port")
	require.NoError(t, err)
	assert.Equal(t, 8080, port, "json numbers are normalized")

	ratio, err := view.Get("server.ratio")
	require.NoError(t, err)
	assert.Equal(t, 0.5, ratio)
}

func TestLoad_WithSection(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "app.yaml", `
services:
  api:
    port: 8080
    hosts: [a, b]
  workers:
    - name: fetcher
    - name: cleaner
`)
	jsonPath := writeFile(t, dir, "app.json", `{"services": {"api": {"port": 8080, "hosts": ["a", "b"]},
		"workers": [{"name": "fetcher"}, {"name": "cleaner"}]}}`)
	data := map[string]any{
		"services": map[string]any{
			"api":     map[string]any{"port": 8080, "hosts": []any{"a", "b"}},
			"workers": []any{map[string]any{"name": "fetcher"}, map[string]any{"name": "cleaner"}},
		},
	}

	sources := []struct {
		name   string
		source config.LoadOption
	}{
		{name: "yaml", source: config.WithName(yamlPath)},
		{name: "json", source: config.WithName(jsonPath)},
		{name: "data", source: config.WithData(data)},
	}

	for _, source := range sources {
		t.Run(source.name, func(t *testing.T) {
			t.Parallel()

			load := func(section string) (*config.View, error) {
				return config.Load(
					source.source,
					config.WithSection(section),
					config.WithEnvFile(""),
					config.WithLogger(quietLogger()),
				)
			}

			api, err := load("services.api")
			require.NoError(t, err)

			port, err := api.GetInt("port")
			require.NoError(t, err)
			assert.Equal(t, 8080, port)
			assert.Equal(t, "b", api.GetStringOr("hosts.-1", ""))

			worker, err := load("services.workers.-1")
			require.NoError(t, err)
			assert.Equal(t, "cleaner", worker.GetStringOr("name", ""))

			_, err = load("services.db")
			require.Error(t, err)
		})
	}
}

func TestLoad_WithSectionMissingWrapsParserError(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	testCases := []struct {
		name    string
		file    string
		content string
		wantErr error
	}{
		{name: "yaml", file: "app.yaml", content: "server:\n  port: 1\n", wantErr: yamlparser.ErrPathNotFound},
		{name: "json", file: "app.json", content: `{"server": {"port": 1}}`, wantErr: jsonparser.ErrPathNotFound},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(
				config.WithName(writeFile(t, dir, testCase.file, testCase.content)),
				config.WithSection("server.tls"),
				config.WithEnvFile(""),
				config.WithLogger(quietLogger()),
			)

			require.ErrorIs(t, err, testCase.wantErr)
			assert.Contains(t, err.Error(), testCase.file)
		})
	}
}

func TestLoad_Failures(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	broken := writeFile(t, dir, "broken.yaml", "invalid: yaml: content: [\n")
	empty := writeFile(t, dir, "empty.yaml", "")
	badJSON := writeFile(t, dir, "bad.json", `{"a": `)

	testCases := []struct {
		name    string
		file    string
		wantErr error
	}{
		{name: "missing file", file: filepath.Join(dir, "missing.yaml"), wantErr: fs.ErrNotExist},
		{name: "directory", file: dir, wantErr: filefetcher.ErrPathIsDirectory},
		{name: "empty file", file: empty, wantErr: yamlparser.ErrEmptyData},
		{name: "broken yaml", file: broken, wantErr: nil},
		{name: "broken json", file: badJSON, wantErr: nil},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			view, err := config.Load(
				config.WithName(testCase.file),
				config.WithEnvFile(""),
				config.WithLogger(quietLogger()),
			)

			require.Error(t, err)
			assert.Nil(t, view)

			if testCase.wantErr != nil {
				require.ErrorIs(t, err, testCase.wantErr)
			}
		})
	}
}

type upperParser struct{}

func (upperParser) Parse(data []byte, target any, _ string) error {
	ptr, ok := target.(*any)
	if !ok {
		return errors.New("unexpected target")
	}

	*ptr = map[string]any{"raw": strings.ToUpper(strings.TrimSpace(string(data)))}

	return nil
}

func TestLoad_WithParser(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "plain.txt", "hello\n")

	view, err := config.Load(
		config.WithName(path),
		config.WithParser(upperParser{}),
		config.WithEnvFile(""),
		config.WithLogger(quietLogger()),
	)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", view.GetStringOr("raw", ""))
}

func TestLoad_WithDefaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "app.yaml", "server:\n  port: 9090\nname: app\n")

	defaults := map[string]any{
		"server": map[string]any{"host": "localhost", "port": 80},
		"debug":  false,
	}

	view, err := config.Load(
		config.WithName(path),
		config.WithDefaults(defaults),
		config.WithEnvFile(""),
		config.WithLogger(quietLogger()),
	)
	require.NoError(t, err)

	assert.Equal(t, 9090, view.GetOr("server.port", nil))
	assert.Equal(t, "localhost", view.GetOr("server.host", nil))
	assert.Equal(t, false, view.GetOr("debug", nil))
	assert.Equal(t, "app", view.GetOr("name", nil))

	assert.Equal(t, 80, defaults["server"].(map[string]any)["port"], "defaults are not mutated") //nolint:forcetypeassert // test fixture
}

func TestLoad_WithDefaultsNeedsMapping(t *testing.T) {
	t.Parallel()

	_, err := config.Load(
		config.WithData([]any{1, 2}),
		config.WithDefaults(map[string]any{"a": 1}),
		config.WithEnvFile(""),
	)

	require.ErrorIs(t, err, config.ErrDefaultsNeedMapping)

	view, err := config.Load(
		config.WithData(nil),
		config.WithDefaults(map[string]any{"a": 1}),
		config.WithEnvFile(""),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, view.GetOr("a", nil))
}

// Not parallel: the environment side-file mutates the process environment.
func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	key := "HJARTA_HELPERS_TEST_" + strings.ToUpper(filepath.Base(dir))
	key = strings.Map(func(r rune) rune {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			return r
		}

		return '_'
	}, key)

	envFile := writeFile(t, dir, ".env", key+"=from-file\n")

	t.Cleanup(func() { _ = os.Unsetenv(key) })

	_, err := config.Load(
		config.WithData(map[string]any{}),
		config.WithEnvFile(envFile),
		config.WithLogger(quietLogger()),
	)
	require.NoError(t, err)
	assert.Equal(t, "from-file", os.Getenv(key))
}

func TestLoad_MissingEnvFileIsNotAnError(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	view, err := config.Load(
		config.WithData(map[string]any{"a": 1}),
		config.WithEnvFile(filepath.Join(t.TempDir(), "absent.env")),
		config.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	require.NoError(t, err)
	assert.Equal(t, 1, view.GetOr("a", nil))
	assert.NotContains(t, logs.String(), "environment file not loaded")
}

func TestLoad_MalformedEnvFileIsLogged(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer

	envFile := writeFile(t, t.TempDir(), ".env", "BAD-KEY=value\n")

	_, err := config.Load(
		config.WithData(map[string]any{}),
		config.WithEnvFile(envFile),
		config.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
	)

	require.NoError(t, err)
	assert.Contains(t, logs.String(), "environment file not loaded")
}

package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// ErrEmptyPath is returned when the Fetcher is given no path at all.
var ErrEmptyPath = errors.New("empty file path")

// Fetcher implements config.DataFetcher interface for file-based configuration.
// It reads configuration data from a file at construction time and caches the contents.
type Fetcher struct {
	filepath string
	data     []byte
}

// NewFetcher returns a constructor function that creates a new file-based Fetcher
// with the specified filepath on the operating system file system.
// The file is read at construction time and cached.
// This pattern is Fx-friendly, allowing the DI container to control when instantiation happens.
// Returns an error if the file cannot be read or if the path points to a directory.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		if fpath == "" {
			return nil, ErrEmptyPath
		}

		cleanPath := filepath.Clean(fpath)

		return read(cleanPath, os.Stat, os.ReadFile)
	}
}

// NewFSFetcher is NewFetcher reading from the given fs.FS, e.g. an embed.FS or fstest.MapFS.
// The path uses forward slashes as required by io/fs.
func NewFSFetcher(fsys fs.FS, fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		if fpath == "" {
			return nil, ErrEmptyPath
		}

		cleanPath := path.Clean(fpath)

		return read(
			cleanPath,
			func(name string) (fs.FileInfo, error) { return fs.Stat(fsys, name) },
			func(name string) ([]byte, error) { return fs.ReadFile(fsys, name) },
		)
	}
}

func read(
	cleanPath string,
	stat func(string) (fs.FileInfo, error),
	readFile func(string) ([]byte, error),
) (*Fetcher, error) {
	info, err := stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", cleanPath, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path %q: %w", cleanPath, ErrPathIsDirectory)
	}

	data, err := readFile(cleanPath) // #nosec G304 -- path is cleaned and validated
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", cleanPath, err)
	}

	return &Fetcher{
		filepath: cleanPath,
		data:     data,
	}, nil
}

// Path returns the cleaned path the data was read from.
func (f *Fetcher) Path() string {
	return f.filepath
}

// Fetch returns a copy of the cached configuration data that was read at construction time.
// A copy is returned to prevent callers from mutating the cached data.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

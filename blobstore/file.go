package blobstore

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FileStore keeps each value in its own file, named after the key plus the codec extension.
type FileStore struct {
	dir    string
	codec  Codec
	logger *slog.Logger
}

// NewFileStore returns a store rooted at dir. The directory is created on the first Save.
func NewFileStore(dir string, opts ...Option) *FileStore {
	options := newOptions(opts)
	store := &FileStore{
		dir:    dir,
		codec:  options.codec,
		logger: nil,
	}
	store.logger = options.loggerFor(store)

	return store
}

// Path returns the file used for key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+s.codec.Ext())
}

// Load implements Store. A file that cannot be decoded is logged and reported as a miss.
func (s *FileStore) Load(key string, target any) (bool, error) {
	if key == "" {
		return false, nil
	}

	path := s.Path(key)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("read %q: %w", path, err)
	}

	err = s.codec.Unmarshal(data, target)
	if err != nil {
		s.logger.Error("stored value not decoded", slog.String("path", path), slog.Any("error", err))

		return false, nil
	}

	s.logger.Info("stored value loaded", slog.String("path", path), slog.String("type", fmt.Sprintf("%T", target)))

	return true, nil
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(key string, value any) error {
	if key == "" {
		return nil
	}

	data, err := s.codec.Marshal(value)
	if err != nil {
		return err //nolint:wrapcheck // codec errors are already wrapped
	}

	path := s.Path(key)

	err = os.MkdirAll(filepath.Dir(path), 0o750)
	if err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}

	_, err = tmp.Write(data)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}

	if err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("write %q: %w", path, err)
	}

	err = os.Rename(tmp.Name(), path)
	if err != nil {
		_ = os.Remove(tmp.Name())

		return fmt.Errorf("replace %q: %w", path, err)
	}

	s.logger.Info("stored value saved", slog.String("path", path))

	return nil
}

// Delete removes the value under key. Missing keys are not an error.
func (s *FileStore) Delete(key string) error {
	if key == "" {
		return nil
	}

	err := os.Remove(s.Path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %q: %w", key, err)
	}

	return nil
}

package blobstore

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteStore keeps values in a single SQLite table.
type SQLiteStore struct {
	db     *sql.DB
	codec  Codec
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens (and creates if needed) the database at path.
// Use ":memory:" for a throwaway store.
func NewSQLiteStore(path string, opts ...Option) (*SQLiteStore, error) {
	options := newOptions(opts)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every pooled connection to ":memory:" would see its own empty database.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS blobs (
			key TEXT NOT NULL PRIMARY KEY,
			updated TEXT NOT NULL,
			data BLOB NOT NULL
		)
	`)
	if err != nil {
		_ = db.Close()

		return nil, fmt.Errorf("create table: %w", err)
	}

	//nolint:exhaustruct // zero state is open
	store := &SQLiteStore{
		db:    db,
		codec: options.codec,
	}
	store.logger = options.loggerFor(store)

	return store, nil
}

// Load implements Store. Rows that cannot be decoded are returned as errors.
func (s *SQLiteStore) Load(key string, target any) (bool, error) {
	if key == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, ErrStoreClosed
	}

	var data []byte

	err := s.db.QueryRow(`SELECT data FROM blobs WHERE key = ?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("load %q: %w", key, err)
	}

	err = s.codec.Unmarshal(data, target)
	if err != nil {
		return false, fmt.Errorf("load %q: %w", key, err)
	}

	return true, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(key string, value any) error {
	if key == "" {
		return nil
	}

	data, err := s.codec.Marshal(value)
	if err != nil {
		return err //nolint:wrapcheck // codec errors are already wrapped
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err = s.db.Exec(`
		INSERT INTO blobs (key, updated, data) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			updated = excluded.updated,
			data = excluded.data
	`, key, time.Now().UTC().Format(time.RFC3339Nano), data)
	if err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}

	s.logger.Debug("stored value saved", slog.String("key", key), slog.Int("size", len(data)))

	return nil
}

// Keys lists the stored keys in order.
func (s *SQLiteStore) Keys() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(`SELECT key FROM blobs ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	defer rows.Close()

	var keys []string

	for rows.Next() {
		var key string

		err = rows.Scan(&key)
		if err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}

		keys = append(keys, key)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("iterate keys: %w", err)
	}

	return keys, nil
}

// Delete removes the value under key. Missing keys are not an error.
func (s *SQLiteStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	_, err := s.db.Exec(`DELETE FROM blobs WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}

	return nil
}

// Close closes the database. Closing twice is a no-op.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	err := s.db.Close()
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	return nil
}

// Package blobstore persists opaque values under string keys.
//
// Two backends are provided: FileStore keeps one file per key in a directory
// and SQLiteStore keeps rows in a SQLite database. Values are encoded with a
// Codec, JSON by default. Cached memoizes a computed result in any Store.
package blobstore

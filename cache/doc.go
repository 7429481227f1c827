// Package cache holds small in-process result caches: Memo keeps a computed
// value for a time-to-live and Once runs an operation until its first success.
package cache

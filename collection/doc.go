// Package collection contains small generic helpers for slices, maps and
// nested map[string]any documents.
package collection

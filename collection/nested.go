package collection

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoKeys is returned by NestedSet when no keys are given.
	ErrNoKeys = errors.New("no keys")
	// ErrNotMapping is returned by NestedSet when an intermediate value is not a mapping.
	ErrNotMapping = errors.New("not a mapping")
)

// NestedSet stores value at the end of keys, creating intermediate mappings as needed.
func NestedSet(m map[string]any, keys []string, value any) error {
	if len(keys) == 0 {
		return ErrNoKeys
	}

	node := m

	for i, key := range keys[:len(keys)-1] {
		child, ok := node[key]
		if !ok {
			created := make(map[string]any)
			node[key] = created
			node = created

			continue
		}

		mapping, ok := child.(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s is %T", ErrNotMapping, strings.Join(keys[:i+1], "."), child)
		}

		node = mapping
	}

	node[keys[len(keys)-1]] = value

	return nil
}

// NestedGet returns the value at the end of keys, or def when any step is missing.
func NestedGet(m map[string]any, keys []string, def any) any {
	if len(keys) == 0 {
		return def
	}

	node := m

	for _, key := range keys[:len(keys)-1] {
		child, ok := node[key].(map[string]any)
		if !ok {
			return def
		}

		node = child
	}

	value, ok := node[keys[len(keys)-1]]
	if !ok {
		return def
	}

	return value
}

// SafeGet follows keys through maps and slices and returns nil when a step fails.
// Slices are indexed with int keys; maps are looked up with keys of their key type.
func SafeGet(node any, keys ...any) any {
	for _, key := range keys {
		next, ok := safeStep(node, key)
		if !ok {
			return nil
		}

		node = next
	}

	return node
}

func safeStep(node any, key any) (any, bool) {
	switch typed := node.(type) {
	case map[string]any:
		name, ok := key.(string)
		if !ok {
			return nil, false
		}

		value, ok := typed[name]

		return value, ok
	case map[any]any:
		value, ok := typed[key]

		return value, ok
	case []any:
		index, ok := key.(int)
		if !ok {
			return nil, false
		}

		if index < 0 {
			index += len(typed)
		}

		if index < 0 || index >= len(typed) {
			return nil, false
		}

		return typed[index], true
	default:
		return nil, false
	}
}

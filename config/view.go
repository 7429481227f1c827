package config

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"

	"github.com/0xalexb/hjarta-helpers/timespan"
)

// ErrNotFound is returned when a path does not resolve to a node.
var ErrNotFound = errors.New("path not found")

// ErrTypeCoercion is returned when a node cannot be converted to the requested type.
var ErrTypeCoercion = errors.New("cannot coerce value")

// View is a read-only window over a subtree of a configuration document.
//
// Paths are dotted strings ("server.port", "hosts.0"). Each component is
// trimmed of surrounding whitespace; on a sequence it must be an integer
// index, negative indices counting from the end.
//
// Get returns a *View for mappings and sequences and the bare value for
// scalars. The fluent methods Key, Index and Sub always return a *View and
// defer any lookup error until a terminal accessor (Value, Int, Err, ...).
type View struct {
	root any
	path string
	err  error
}

// New wraps a document in a root View. The document is normalized first, see Normalize.
func New(document any) *View {
	return &View{root: Normalize(document), path: "", err: nil}
}

// Get returns the node under path: a *View for mappings and sequences, the value itself for scalars.
// An empty path returns the raw root of the view.
func (v *View) Get(path string) (any, error) {
	if path == "" {
		return v.Value(), v.err
	}

	node, err := v.lookup(path)
	if err != nil {
		return nil, err
	}

	return v.present(path, node), nil
}

// GetIndex is Get for a single sequence index.
func (v *View) GetIndex(index int) (any, error) {
	component := strconv.Itoa(index)

	node, err := v.lookup(component)
	if err != nil {
		return nil, err
	}

	return v.present(component, node), nil
}

// GetOr returns the node under path, or def when the path cannot be resolved.
// def is returned verbatim, nil included. Mappings and sequences are returned
// unwrapped by GetOr.
func (v *View) GetOr(path string, def any) any {
	node, err := v.GetPure(path)
	if err != nil {
		return def
	}

	return node
}

// GetIndexOr is GetOr for a single sequence index.
func (v *View) GetIndexOr(index int, def any) any {
	return v.GetOr(strconv.Itoa(index), def)
}

// GetPure is Get without wrapping: mappings and sequences are returned as
// map[string]any and []any shared with the document.
func (v *View) GetPure(path string) (any, error) {
	if path == "" {
		return v.Value(), v.err
	}

	return v.lookup(path)
}

// GetPureOr is GetPure with a default for unresolvable paths.
func (v *View) GetPureOr(path string, def any) any {
	return v.GetOr(path, def)
}

// GetInt resolves path and converts the node to int.
func (v *View) GetInt(path string) (int, error) {
	node, err := v.GetPure(path)
	if err != nil {
		return 0, err
	}

	return toInt(v.join(path), node)
}

// GetIntOr is GetInt with a default for unresolvable paths. Conversion errors are still reported.
func (v *View) GetIntOr(path string, def int) (int, error) {
	return toInt(v.join(path), v.GetOr(path, def))
}

// GetFloat resolves path and converts the node to float64.
func (v *View) GetFloat(path string) (float64, error) {
	node, err := v.GetPure(path)
	if err != nil {
		return 0, err
	}

	return toFloat(v.join(path), node)
}

// GetFloatOr is GetFloat with a default for unresolvable paths.
func (v *View) GetFloatOr(path string, def float64) (float64, error) {
	return toFloat(v.join(path), v.GetOr(path, def))
}

// GetString resolves path and formats the node as a string.
func (v *View) GetString(path string) (string, error) {
	node, err := v.GetPure(path)
	if err != nil {
		return "", err
	}

	return toString(node), nil
}

// GetStringOr is GetString with a default for unresolvable paths.
func (v *View) GetStringOr(path string, def string) string {
	return toString(v.GetOr(path, def))
}

// GetList resolves path to a sequence and returns a copy of its items.
func (v *View) GetList(path string) ([]any, error) {
	node, err := v.GetPure(path)
	if err != nil {
		return nil, err
	}

	return toList(v.join(path), node)
}

// GetListOr is GetList with a default for unresolvable paths.
func (v *View) GetListOr(path string, def []any) ([]any, error) {
	node, err := v.GetPure(path)
	if err != nil {
		return def, nil //nolint:nilerr // default replaces a missing path
	}

	return toList(v.join(path), node)
}

// GetDuration reads the span under path ("1h30m", 90, "0.5s") as a time.Duration.
func (v *View) GetDuration(path string) (time.Duration, error) {
	return v.Sub(path).Duration()
}

// Key navigates to a single mapping key (or sequence index) taken literally, dots included.
func (v *View) Key(name string) *View {
	if v.err != nil {
		return v
	}

	node, ok := step(v.root, name)
	if !ok {
		return &View{root: nil, path: v.join(name), err: fmt.Errorf("%w: %s", ErrNotFound, v.join(name))}
	}

	return &View{root: node, path: v.join(name), err: nil}
}

// Index navigates to a single sequence index.
func (v *View) Index(index int) *View {
	return v.Key(strconv.Itoa(index))
}

// Sub navigates a dotted path. An empty path returns v itself.
func (v *View) Sub(path string) *View {
	if path == "" {
		return v
	}

	node, err := v.lookup(path)
	if err != nil {
		return &View{root: nil, path: v.join(path), err: err}
	}

	return &View{root: node, path: v.join(path), err: nil}
}

// Err returns the error recorded while navigating to this view, if any.
func (v *View) Err() error {
	return v.err
}

// Path returns the dotted path of this view from the document root.
func (v *View) Path() string {
	return v.path
}

// Value returns the raw root of the view (nil when navigation failed).
func (v *View) Value() any {
	if v.err != nil {
		return nil
	}

	return v.root
}

// Kind reports the kind of the view root.
func (v *View) Kind() Kind {
	return KindOf(v.root)
}

// Int converts the view root to int.
func (v *View) Int() (int, error) {
	if v.err != nil {
		return 0, v.err
	}

	return toInt(v.path, v.root)
}

// Float converts the view root to float64.
func (v *View) Float() (float64, error) {
	if v.err != nil {
		return 0, v.err
	}

	return toFloat(v.path, v.root)
}

// String formats the view root. A view whose navigation failed formats as "".
func (v *View) String() string {
	if v.err != nil {
		return ""
	}

	return toString(v.root)
}

// List returns a copy of the view root, which must be a sequence.
func (v *View) List() ([]any, error) {
	if v.err != nil {
		return nil, v.err
	}

	return toList(v.path, v.root)
}

// Seconds parses the view root as a time span in whole seconds, see timespan.Parse.
// Integers are returned as is and floats are truncated.
func (v *View) Seconds() (int64, error) {
	if v.err != nil {
		return 0, v.err
	}

	switch typed := v.root.(type) {
	case int:
		return int64(typed), nil
	case float64:
		return int64(typed), nil
	case string:
		seconds, err := timespan.Parse(typed)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", v.path, err)
		}

		return seconds, nil
	default:
		return 0, coercionError(v.path, v.root, "seconds")
	}
}

// Duration is like Seconds but keeps fractions and returns a time.Duration.
func (v *View) Duration() (time.Duration, error) {
	if v.err != nil {
		return 0, v.err
	}

	switch typed := v.root.(type) {
	case int:
		return time.Duration(typed) * time.Second, nil
	case float64:
		return time.Duration(typed * float64(time.Second)), nil
	case string:
		duration, err := timespan.ParseDuration(typed)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", v.path, err)
		}

		return duration, nil
	default:
		return 0, coercionError(v.path, v.root, "duration")
	}
}

// Decode decodes the node under path into target using mapstructure with weak typing.
// Struct fields are matched by their `yaml` tag, durations accept time spans.
func (v *View) Decode(path string, target any) error {
	node, err := v.GetPure(path)
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{ //nolint:exhaustruct // defaults are fine
		Result:           target,
		WeaklyTypedInput: true,
		TagName:          "yaml",
		DecodeHook:       decodeHook,
	})
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}

	err = decoder.Decode(node)
	if err != nil {
		return fmt.Errorf("decode %q: %w", v.join(path), err)
	}

	return nil
}

func (v *View) lookup(path string) (any, error) {
	if v.err != nil {
		return nil, v.err
	}

	node := v.root

	for _, component := range strings.Split(path, ".") {
		next, ok := step(node, strings.TrimSpace(component))
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, v.join(path))
		}

		node = next
	}

	return node, nil
}

func (v *View) present(path string, node any) any {
	if KindOf(node) == KindScalar {
		return node
	}

	return &View{root: node, path: v.join(path), err: nil}
}

func (v *View) join(path string) string {
	switch {
	case v.path == "":
		return path
	case path == "":
		return v.path
	default:
		return v.path + "." + path
	}
}

func step(node any, component string) (any, bool) {
	switch typed := node.(type) {
	case map[string]any:
		child, ok := typed[component]

		return child, ok
	case []any:
		index, err := strconv.Atoi(component)
		if err != nil {
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

func toInt(path string, node any) (int, error) {
	switch typed := node.(type) {
	case int:
		return typed, nil
	case float64:
		if math.IsNaN(typed) || math.IsInf(typed, 0) {
			return 0, coercionError(path, node, "int")
		}

		return int(typed), nil
	case bool:
		if typed {
			return 1, nil
		}

		return 0, nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, coercionError(path, node, "int")
		}

		return i, nil
	default:
		return 0, coercionError(path, node, "int")
	}
}

func toFloat(path string, node any) (float64, error) {
	switch typed := node.(type) {
	case float64:
		return typed, nil
	case int:
		return float64(typed), nil
	case uint64:
		return float64(typed), nil
	case bool:
		if typed {
			return 1, nil
		}

		return 0, nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, coercionError(path, node, "float")
		}

		return f, nil
	default:
		return 0, coercionError(path, node, "float")
	}
}

func toString(node any) string {
	switch typed := node.(type) {
	case nil:
		return ""
	case string:
		return typed
	case *View:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

func toList(path string, node any) ([]any, error) {
	sequence, ok := node.([]any)
	if !ok {
		return nil, coercionError(path, node, "list")
	}

	return slices.Clone(sequence), nil
}

func coercionError(path string, node any, target string) error {
	return fmt.Errorf("%w: %s: %s %v to %s", ErrTypeCoercion, path, KindOf(node), node, target)
}

//nolint:gochecknoglobals // shared decode hook.
var decodeHook = mapstructure.ComposeDecodeHookFunc(
	spanToDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
	mapstructure.TextUnmarshallerHookFunc(),
)

// spanToDurationHookFunc decodes time spans ("1h30m") and plain seconds into time.Duration fields.
func spanToDurationHookFunc() mapstructure.DecodeHookFuncType {
	durationType := reflect.TypeOf(time.Duration(0))

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != durationType || from == durationType || data == nil {
			return data, nil
		}

		return New(data).Duration()
	}
}

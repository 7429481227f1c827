package config

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
)

// Kind tags the three node shapes a configuration document is made of.
type Kind uint8

const (
	// KindScalar is a string, number, bool, timestamp or null leaf.
	KindScalar Kind = iota
	// KindMapping is a map[string]any node.
	KindMapping
	// KindSequence is a []any node.
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// KindOf reports the kind of a normalized node.
func KindOf(node any) Kind {
	switch node.(type) {
	case map[string]any:
		return KindMapping
	case []any:
		return KindSequence
	default:
		return KindScalar
	}
}

// Normalize converts parser output into the canonical document form:
// mappings become map[string]any with stringified keys, sequences become []any,
// integers become int (uint64 when they do not fit) and json.Number becomes int or float64.
//
// The result never shares mappings or sequences with the input.
func Normalize(value any) any {
	switch typed := value.(type) {
	case nil, string, bool, int, float64:
		return value
	case map[string]any:
		mapping := make(map[string]any, len(typed))
		for key, item := range typed {
			mapping[key] = Normalize(item)
		}

		return mapping
	case map[any]any:
		mapping := make(map[string]any, len(typed))
		for key, item := range typed {
			mapping[fmt.Sprint(key)] = Normalize(item)
		}

		return mapping
	case []any:
		sequence := make([]any, len(typed))
		for i, item := range typed {
			sequence[i] = Normalize(item)
		}

		return sequence
	case json.Number:
		if i, err := typed.Int64(); err == nil {
			return int(i)
		}

		if f, err := typed.Float64(); err == nil {
			return f
		}

		return typed.String()
	case float32:
		return float64(typed)
	case int8:
		return int(typed)
	case int16:
		return int(typed)
	case int32:
		return int(typed)
	case int64:
		return int(typed)
	case uint8:
		return int(typed)
	case uint16:
		return int(typed)
	case uint32:
		return int(typed)
	case uint:
		return normalizeUnsigned(uint64(typed))
	case uint64:
		return normalizeUnsigned(typed)
	default:
		return normalizeReflect(value)
	}
}

func normalizeUnsigned(u uint64) any {
	if u <= math.MaxInt {
		return int(u)
	}

	return u
}

// normalizeReflect handles typed collections such as map[string]string or []int
// passed in with WithData.
func normalizeReflect(value any) any {
	rv := reflect.ValueOf(value)

	switch rv.Kind() { //nolint:exhaustive // everything else is a scalar
	case reflect.Map:
		mapping := make(map[string]any, rv.Len())

		iter := rv.MapRange()
		for iter.Next() {
			mapping[fmt.Sprint(iter.Key().Interface())] = Normalize(iter.Value().Interface())
		}

		return mapping
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return string(rv.Bytes())
		}

		sequence := make([]any, rv.Len())
		for i := range sequence {
			sequence[i] = Normalize(rv.Index(i).Interface())
		}

		return sequence
	default:
		return value
	}
}

package config

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	moment := time.Date(2024, time.January, 2, 3, 4, 5, 0, time.UTC)

	testCases := []struct {
		name     string
		input    any
		expected any
	}{
		{name: "nil", input: nil, expected: nil},
		{name: "int64", input: int64(-3), expected: -3},
		{name: "uint64", input: uint64(7), expected: 7},
		{name: "huge uint64", input: uint64(math.MaxUint64), expected: uint64(math.MaxUint64)},
		{name: "float32", input: float32(0.5), expected: 0.5},
		{name: "json integer", input: json.Number("42"), expected: 42},
		{name: "json float", input: json.Number("4.2"), expected: 4.2},
		{name: "timestamp stays scalar", input: moment, expected: moment},
		{
			name:     "any keys are stringified",
			input:    map[any]any{1: "one", "two": uint64(2)},
			expected: map[string]any{"1": "one", "two": 2},
		},
		{
			name:     "typed collections",
			input:    map[string][]int{"ports": {80, 443}},
			expected: map[string]any{"ports": []any{80, 443}},
		},
		{
			name:     "nested",
			input:    []any{map[string]any{"a": []any{int32(1)}}},
			expected: []any{map[string]any{"a": []any{1}}},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testCase.expected, Normalize(testCase.input))
		})
	}
}

func TestNormalize_CopiesCollections(t *testing.T) {
	t.Parallel()

	input := map[string]any{"list": []any{"a"}}

	output, ok := Normalize(input).(map[string]any)
	require.True(t, ok)

	output["list"].([]any)[0] = "changed" //nolint:forcetypeassert // test fixture
	output["new"] = true

	assert.Equal(t, map[string]any{"list": []any{"a"}}, input)
}

func TestKind(t *testing.T) {
	t.Parallel()

	assert.Equal(t, KindMapping, KindOf(map[string]any{}))
	assert.Equal(t, KindSequence, KindOf([]any{}))
	assert.Equal(t, KindScalar, KindOf("x"))
	assert.Equal(t, KindScalar, KindOf(nil))

	assert.Equal(t, "mapping", KindMapping.String())
	assert.Equal(t, "sequence", KindSequence.String())
	assert.Equal(t, "scalar", KindScalar.String())
	assert.Equal(t, "kind(9)", Kind(9).String())
}

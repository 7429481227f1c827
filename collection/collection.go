package collection

import (
	"iter"
	"math/rand/v2"
	"slices"
	"strings"
)

// Pairwise yields overlapping pairs of consecutive items: (s0, s1), (s1, s2), ...
// Fewer than two items yield nothing.
func Pairwise[T any](items []T) iter.Seq2[T, T] {
	return func(yield func(T, T) bool) {
		for i := 1; i < len(items); i++ {
			if !yield(items[i-1], items[i]) {
				return
			}
		}
	}
}

// Invert swaps keys and values. When several keys share a value one of them wins.
func Invert[K, V comparable](m map[K]V) map[V]K {
	result := make(map[V]K, len(m))

	for key, value := range m {
		result[value] = key
	}

	return result
}

// InvertSets maps every item of every value back to the set of keys containing it.
func InvertSets[K, V comparable](m map[K][]V) map[V]map[K]struct{} {
	result := make(map[V]map[K]struct{})

	for key, items := range m {
		for _, item := range items {
			set, ok := result[item]
			if !ok {
				set = make(map[K]struct{})
				result[item] = set
			}

			set[key] = struct{}{}
		}
	}

	return result
}

// CircularShuffled yields the items forever in random order. Every item is
// yielded once per round and the order is reshuffled between rounds.
// No items yield nothing. The input slice is not modified.
func CircularShuffled[T any](items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		if len(items) == 0 {
			return
		}

		round := slices.Clone(items)

		for {
			rand.Shuffle(len(round), func(i, j int) {
				round[i], round[j] = round[j], round[i]
			})

			for _, item := range round {
				if !yield(item) {
					return
				}
			}
		}
	}
}

// VerticalText puts every character of text on its own line.
func VerticalText(text string) string {
	var builder strings.Builder

	for i, char := range []rune(text) {
		if i > 0 {
			builder.WriteByte('\n')
		}

		builder.WriteRune(char)
	}

	return builder.String()
}

// Package stats holds the pure aggregate functions behind the summary
// screens: frequency tables, shares, ratios, streaks and day markers. All of
// them recompute from their inputs on every call.
package stats

import "slices"

// Count is one row of a frequency table.
type Count[K comparable] struct {
	Key K
	N   int
}

// Frequency counts occurrences of each key, most frequent first. Keys with
// equal counts keep the order in which they were first seen.
func Frequency[K comparable](keys []K) []Count[K] {
	index := make(map[K]int)
	var out []Count[K]
	for _, k := range keys {
		if i, ok := index[k]; ok {
			out[i].N++
			continue
		}
		index[k] = len(out)
		out = append(out, Count[K]{Key: k, N: 1})
	}
	slices.SortStableFunc(out, func(a, b Count[K]) int { return b.N - a.N })
	if out == nil {
		out = []Count[K]{}
	}
	return out
}

// FrequencyBy counts the keys each item contributes. An item may contribute
// several keys (tags) or none.
func FrequencyBy[T any, K comparable](items []T, keys func(T) []K) []Count[K] {
	var all []K
	for _, it := range items {
		all = append(all, keys(it)...)
	}
	return Frequency(all)
}

// Top returns at most n leading rows. n <= 0 returns all rows.
func Top[K comparable](counts []Count[K], n int) []Count[K] {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}

// Total sums the counts.
func Total[K comparable](counts []Count[K]) int {
	total := 0
	for _, c := range counts {
		total += c.N
	}
	return total
}

// Share is a frequency row with its proportion of the total.
type Share[K comparable] struct {
	Key      K
	N        int
	Fraction float64
}

// Percent returns the share as a percentage.
func (s Share[K]) Percent() float64 { return s.Fraction * 100 }

// Shares converts counts into proportions of their total. Every fraction is
// 0 when the total is 0.
func Shares[K comparable](counts []Count[K]) []Share[K] {
	total := Total(counts)
	out := make([]Share[K], len(counts))
	for i, c := range counts {
		out[i] = Share[K]{Key: c.Key, N: c.N, Fraction: Ratio(c.N, total)}
	}
	return out
}

// Ratio returns n/d, or 0 when d is 0.
func Ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

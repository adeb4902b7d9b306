// Package query builds filtered, sorted views over a record slice. Every
// call recomputes from its input; nothing is cached or maintained
// incrementally.
package query

import (
	"slices"
	"strings"
)

// Predicate reports whether a record belongs in a view.
type Predicate[T any] func(T) bool

// Compare orders two records like strings.Compare.
type Compare[T any] func(a, b T) int

// And is satisfied when every non-nil predicate is. With no predicates it
// matches everything.
func And[T any](preds ...Predicate[T]) Predicate[T] {
	active := make([]Predicate[T], 0, len(preds))
	for _, p := range preds {
		if p != nil {
			active = append(active, p)
		}
	}
	return func(v T) bool {
		for _, p := range active {
			if !p(v) {
				return false
			}
		}
		return true
	}
}

// Equal matches records whose key equals want.
func Equal[T any, K comparable](want K, key func(T) K) Predicate[T] {
	return func(v T) bool { return key(v) == want }
}

// EqualFold matches records whose string key equals want ignoring case.
// An empty want matches everything.
func EqualFold[T any](want string, key func(T) string) Predicate[T] {
	want = strings.TrimSpace(want)
	if want == "" {
		return nil
	}
	return func(v T) bool { return strings.EqualFold(strings.TrimSpace(key(v)), want) }
}

// Search matches records where any field contains q, ignoring case. A blank
// query matches everything.
func Search[T any](q string, fields func(T) []string) Predicate[T] {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return nil
	}
	return func(v T) bool {
		for _, f := range fields(v) {
			if strings.Contains(strings.ToLower(f), q) {
				return true
			}
		}
		return false
	}
}

// Apply returns a new slice holding the items that satisfy pred, stably
// sorted by cmp. A nil pred keeps everything; a nil cmp keeps input order.
func Apply[T any](items []T, pred Predicate[T], cmp Compare[T]) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if pred == nil || pred(it) {
			out = append(out, it)
		}
	}
	if cmp != nil {
		slices.SortStableFunc(out, cmp)
	}
	return out
}

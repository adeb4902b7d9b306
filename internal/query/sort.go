package query

import (
	"cmp"
	"strings"
	"time"
)

// Order selects ascending or descending comparison.
type Order int

const (
	Ascending Order = iota
	Descending
)

// NewestFirst orders by date, latest first.
func NewestFirst[T any](date func(T) time.Time) Compare[T] {
	return func(a, b T) int { return date(b).Compare(date(a)) }
}

// OldestFirst orders by date, earliest first.
func OldestFirst[T any](date func(T) time.Time) Compare[T] {
	return func(a, b T) int { return date(a).Compare(date(b)) }
}

// Alphabetical orders by name. Unless caseSensitive is set, names compare
// case-insensitively.
func Alphabetical[T any](name func(T) string, order Order, caseSensitive bool) Compare[T] {
	return func(a, b T) int {
		x, y := name(a), name(b)
		if !caseSensitive {
			x, y = strings.ToLower(x), strings.ToLower(y)
		}
		c := strings.Compare(x, y)
		if order == Descending {
			return -c
		}
		return c
	}
}

// MagnitudeDesc orders by a numeric magnitude, largest first.
func MagnitudeDesc[T any, N cmp.Ordered](mag func(T) N) Compare[T] {
	return func(a, b T) int { return cmp.Compare(mag(b), mag(a)) }
}

// CountDesc orders by the size of some substructure, largest first.
func CountDesc[T any](count func(T) int) Compare[T] {
	return MagnitudeDesc(count)
}

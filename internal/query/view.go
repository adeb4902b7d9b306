package query

import (
	"sync"
	"time"
)

// Filter builds the structural predicate for a view at evaluation time, so
// time windows are always computed against the current clock.
type Filter[T any] func(now time.Time) Predicate[T]

// View is the presentation-facing handle on a collection: it remembers the
// active filter, sort and search text, and recomputes its results from the
// live source on every call.
type View[T any] struct {
	source func() []T
	fields func(T) []string
	now    func() time.Time

	mu     sync.RWMutex
	filter Filter[T]
	scope  Predicate[T]
	sort   Compare[T]
	search string
}

// NewView returns a view over source. fields lists the text searched by
// SetSearch.
func NewView[T any](source func() []T, fields func(T) []string) *View[T] {
	return &View[T]{source: source, fields: fields, now: time.Now}
}

// WithClock replaces time.Now. It returns v for chaining.
func (v *View[T]) WithClock(now func() time.Time) *View[T] {
	v.mu.Lock()
	v.now = now
	v.mu.Unlock()
	return v
}

// SetFilter sets the structural filter; nil clears it.
func (v *View[T]) SetFilter(f Filter[T]) {
	v.mu.Lock()
	v.filter = f
	v.mu.Unlock()
}

// SetScope adds a second structural predicate such as a category, applied
// together with the filter.
func (v *View[T]) SetScope(p Predicate[T]) {
	v.mu.Lock()
	v.scope = p
	v.mu.Unlock()
}

// SetSort sets the ordering; nil keeps insertion order.
func (v *View[T]) SetSort(c Compare[T]) {
	v.mu.Lock()
	v.sort = c
	v.mu.Unlock()
}

// SetSearch sets the free-text query.
func (v *View[T]) SetSearch(q string) {
	v.mu.Lock()
	v.search = q
	v.mu.Unlock()
}

// Search returns the current free-text query.
func (v *View[T]) Search() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.search
}

// Results filters and sorts the current source contents.
func (v *View[T]) Results() []T {
	v.mu.RLock()
	now := v.now()
	var structural Predicate[T]
	if v.filter != nil {
		structural = v.filter(now)
	}
	pred := And(structural, v.scope, Search(v.search, v.fields))
	sortBy := v.sort
	v.mu.RUnlock()

	return Apply(v.source(), pred, sortBy)
}

// Package collection provides a generic, concurrent-safe record store whose
// whole state is mirrored into a single storage snapshot.
//
// # Persistence
//
// Every mutating call rewrites the full snapshot for the store's key before
// returning. There is no batching or write coalescing. A failed write leaves
// the in-memory mutation in place; the error is logged and returned wrapped
// in [ErrPersist] so callers may surface it.
//
// Loading is best effort: a missing or undecodable snapshot yields an empty
// collection and never an error.
//
// # Notifications
//
// [Store.Subscribe] registers a listener that receives a [Change] after each
// mutation. Listeners run after the store lock is released so they may read
// the store.
//
// # Validation
//
// The store accepts whatever records it is given. Required fields and other
// input rules are the caller's job.
package collection

// Package journal defines the diary entry record shared by the scent diary,
// hobby-idea and story apps, and the filter, sort and summary modes their
// list screens offer.
package journal

import (
	"context"
	"slices"
	"time"

	"github.com/runnerr0/diary/internal/collection"
	"github.com/runnerr0/diary/internal/storage"
)

// Key is the default snapshot key for entries.
const Key = "entries"

// Entry is one diary record.
type Entry struct {
	ID           string     `json:"id"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	LastViewedAt *time.Time `json:"last_viewed_at,omitempty"`
	ViewCount    int        `json:"view_count,omitempty"`

	Title    string   `json:"title"`
	Notes    string   `json:"notes,omitempty"`
	Category string   `json:"category,omitempty"`
	Mood     string   `json:"mood,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Favorite bool     `json:"favorite,omitempty"`
	Rating   int      `json:"rating,omitempty"` // 0 = unrated, 1-5
}

// RecordID, Stamp and Clone make Entry a collection.Record.
func (e Entry) RecordID() string { return e.ID }

// Stamp fills ID and CreatedAt when they are unset.
func (e Entry) Stamp(id string, at time.Time) Entry {
	if e.ID == "" {
		e.ID = id
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = at
	}
	return e
}

// Clone copies the tag slice and time pointers.
func (e Entry) Clone() Entry {
	e.Tags = slices.Clone(e.Tags)
	if e.UpdatedAt != nil {
		t := *e.UpdatedAt
		e.UpdatedAt = &t
	}
	if e.LastViewedAt != nil {
		t := *e.LastViewedAt
		e.LastViewedAt = &t
	}
	return e
}

// SearchFields is the text free-text search looks at.
func (e Entry) SearchFields() []string {
	return append([]string{e.Title, e.Notes, e.Category, e.Mood}, e.Tags...)
}

// Store is the entry collection.
type Store = collection.Store[Entry]

// NewStore returns an entry store under Key.
func NewStore(blobs storage.Blobs, opts ...collection.Option) *Store {
	return collection.New[Entry](blobs, Key, opts...)
}

// Edit replaces an entry's content and stamps UpdatedAt, keeping the
// store-owned bookkeeping fields. It reports false when the id is unknown.
func Edit(ctx context.Context, s *Store, e Entry, now time.Time) (Entry, bool, error) {
	return s.Modify(ctx, e.ID, func(prev Entry) Entry {
		e.CreatedAt = prev.CreatedAt
		e.ViewCount = prev.ViewCount
		e.LastViewedAt = prev.LastViewedAt
		e.UpdatedAt = &now
		return e
	})
}

// MarkViewed bumps the view counter and last-viewed time of an entry.
func MarkViewed(ctx context.Context, s *Store, id string, now time.Time) (Entry, bool, error) {
	return s.Modify(ctx, id, func(e Entry) Entry {
		e.ViewCount++
		e.LastViewedAt = &now
		return e
	})
}

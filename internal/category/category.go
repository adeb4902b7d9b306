// Package category manages the small open-ended label sets (categories,
// tags, zones) that records reference by name.
//
// Names are unique ignoring case. Renaming or deleting a category never
// touches the records that mention it; such dangling references are shown
// as Uncategorized.
package category

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/runnerr0/diary/internal/collection"
	"github.com/runnerr0/diary/internal/storage"
)

// Uncategorized is the display label for empty or dangling references.
const Uncategorized = "Uncategorized"

var (
	// ErrEmptyName is returned for names that are blank after trimming.
	ErrEmptyName = errors.New("category name is empty")
	// ErrDuplicate is returned when a name clashes, ignoring case, with an
	// existing category.
	ErrDuplicate = errors.New("category already exists")
)

// Category is a named label, either shipped as a default or added by the user.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsCustom  bool      `json:"is_custom"`
	CreatedAt time.Time `json:"created_at"`
}

// RecordID, Stamp and Clone make Category a collection.Record.
func (c Category) RecordID() string { return c.ID }

// Stamp fills ID and CreatedAt when they are unset.
func (c Category) Stamp(id string, at time.Time) Category {
	if c.ID == "" {
		c.ID = id
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = at
	}
	return c
}

// Clone returns c unchanged.
func (c Category) Clone() Category { return c }

// Set is a persisted category list.
type Set struct {
	blobs    storage.Blobs
	store    *collection.Store[Category]
	defaults []string

	// mu makes check-then-write sequences atomic.
	mu sync.Mutex
}

// NewSet returns a Set persisted under key. defaults are seeded the first
// time the key is loaded with nothing stored under it.
func NewSet(blobs storage.Blobs, key string, defaults []string, opts ...collection.Option) *Set {
	return &Set{
		blobs:    blobs,
		store:    collection.New[Category](blobs, key, opts...),
		defaults: defaults,
	}
}

// Load reads the persisted set, seeding defaults on first use.
func (s *Set) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.blobs.Get(ctx, s.store.Key())
	firstRun := errors.Is(err, storage.ErrNotFound)

	s.store.Load(ctx)
	if !firstRun {
		return nil
	}

	var errs []error
	for _, name := range s.defaults {
		name = strings.TrimSpace(name)
		if name == "" || s.Has(name) {
			continue
		}
		if _, err := s.store.Add(ctx, Category{Name: name}); err != nil {
			errs = append(errs, err)
		}
	}
	if len(s.defaults) == 0 {
		// Record that the set has been initialized.
		errs = append(errs, s.store.Persist(ctx))
	}
	return errors.Join(errs...)
}

// List returns all categories in insertion order.
func (s *Set) List() []Category { return s.store.All() }

// Names returns the category names in insertion order.
func (s *Set) Names() []string {
	all := s.store.All()
	out := make([]string, len(all))
	for i, c := range all {
		out[i] = c.Name
	}
	return out
}

// Has reports whether name exists, ignoring case and surrounding space.
func (s *Set) Has(name string) bool {
	_, ok := s.lookup(name)
	return ok
}

// Display returns the canonical stored name for a record's reference, or
// Uncategorized when the reference is empty or no longer exists.
func (s *Set) Display(name string) string {
	if c, ok := s.lookup(name); ok {
		return c.Name
	}
	return Uncategorized
}

// Add appends a custom category.
func (s *Set) Add(ctx context.Context, name string) (Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Has(name) {
		return Category{}, fmt.Errorf("%w: %q", ErrDuplicate, name)
	}
	return s.store.Add(ctx, Category{Name: name, IsCustom: true})
}

// Rename changes a category's stored name. It reports false when oldName
// does not exist. Records referencing oldName are not updated.
func (s *Set) Rename(ctx context.Context, oldName, newName string) (bool, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return false, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.lookup(oldName)
	if !ok {
		return false, nil
	}
	if other, clash := s.lookup(newName); clash && other.ID != c.ID {
		return false, fmt.Errorf("%w: %q", ErrDuplicate, newName)
	}
	c.Name = newName
	return s.store.Update(ctx, c)
}

// Delete removes the named category. It reports false when it did not exist.
func (s *Set) Delete(ctx context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.lookup(name)
	if !ok {
		return false, nil
	}
	n, err := s.store.Delete(ctx, c.ID)
	return n > 0, err
}

// LastPersistError returns the error of the set's most recent write, or nil.
func (s *Set) LastPersistError() error { return s.store.LastPersistError() }

// Subscribe forwards to the underlying store.
func (s *Set) Subscribe(fn func(collection.Change[Category])) func() {
	return s.store.Subscribe(fn)
}

func (s *Set) lookup(name string) (Category, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Category{}, false
	}
	return s.store.Find(func(c Category) bool { return strings.EqualFold(c.Name, name) })
}

package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/runnerr0/diary/internal/storage"
)

// ErrPersist wraps every snapshot write failure returned by a Store.
var ErrPersist = errors.New("persist snapshot")

// Record is implemented by every type a Store can hold.
type Record[T any] interface {
	// RecordID returns the immutable identifier, or "" before first save.
	RecordID() string
	// Stamp returns a copy with the id and creation time filled in where
	// they are still zero.
	Stamp(id string, at time.Time) T
	// Clone returns a deep copy.
	Clone() T
}

// Option configures a Store.
type Option func(*options)

type options struct {
	now    func() time.Time
	newID  func() string
	logger *slog.Logger
}

// WithClock overrides time.Now for stamping and snapshot timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithIDGenerator overrides the default UUID generator.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) { o.newID = fn }
}

// WithLogger sets the logger used for load and persist diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Store holds the authoritative ordered collection for one record type.
type Store[T Record[T]] struct {
	blobs  storage.Blobs
	key    string
	now    func() time.Time
	newID  func() string
	logger *slog.Logger

	mu      sync.RWMutex
	items   []T
	lastErr error

	// seq numbers mutations under mu; delivered counts changes already
	// handed to listeners. A change waits on turn until its number is due.
	seq       uint64
	delivered uint64
	turnMu    sync.Mutex
	turn      *sync.Cond

	subMu   sync.Mutex
	subs    map[int]func(Change[T])
	nextSub int
}

// New returns an empty Store persisting under key. Call Load to read the
// existing snapshot.
func New[T Record[T]](blobs storage.Blobs, key string, opts ...Option) *Store[T] {
	o := options{
		now:    time.Now,
		newID:  uuid.NewString,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Store[T]{
		blobs:  blobs,
		key:    key,
		now:    o.now,
		newID:  o.newID,
		logger: o.logger.With("collection", key),
		items:  []T{},
		subs:   make(map[int]func(Change[T])),
	}
	s.turn = sync.NewCond(&s.turnMu)
	return s
}

// Key returns the storage key of the snapshot.
func (s *Store[T]) Key() string { return s.key }

// Load replaces the in-memory collection with the persisted snapshot. A
// missing, unreadable or undecodable snapshot leaves the collection empty.
func (s *Store[T]) Load(ctx context.Context) {
	s.mu.Lock()
	s.items = s.readSnapshot(ctx)
	loaded := cloneAll(s.items)
	s.unlockAndNotify(Change[T]{Op: OpLoad, Records: loaded})
}

func (s *Store[T]) readSnapshot(ctx context.Context) []T {
	data, err := s.blobs.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug("no snapshot yet")
		} else {
			s.logger.Warn("snapshot unreadable, starting empty", "error", err)
		}
		return []T{}
	}

	items, version, err := decodeSnapshot[T](data)
	if err != nil {
		s.logger.Warn("snapshot undecodable, starting empty", "error", err, "bytes", len(data))
		return []T{}
	}

	// Collapse duplicate ids written by older releases; the first wins.
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		id := it.RecordID()
		if _, dup := seen[id]; dup && id != "" {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, it)
	}
	s.logger.Debug("snapshot loaded", "records", len(out), "version", version)
	return out
}

// Add appends r and persists. A record without an id gets a fresh one;
// a record whose id is already present replaces that record in place.
func (s *Store[T]) Add(ctx context.Context, r T) (T, error) {
	id := r.RecordID()
	if id == "" {
		id = s.newID()
	}
	r = r.Stamp(id, s.now())

	s.mu.Lock()
	op := OpAdd
	var prev []T
	if i := s.indexOf(r.RecordID()); i >= 0 {
		op = OpUpdate
		prev = []T{s.items[i]}
		s.items[i] = r.Clone()
	} else {
		s.items = append(s.items, r.Clone())
	}
	err := s.persistLocked(ctx)
	s.unlockAndNotify(Change[T]{Op: op, Records: []T{r.Clone()}, Previous: prev})
	return r, err
}

// Update replaces the record with r's id, keeping its position. It reports
// whether a record was replaced; nothing is persisted when none was.
func (s *Store[T]) Update(ctx context.Context, r T) (bool, error) {
	s.mu.Lock()
	if r.RecordID() == "" {
		s.mu.Unlock()
		return false, nil
	}
	i := s.indexOf(r.RecordID())
	if i < 0 {
		s.mu.Unlock()
		return false, nil
	}
	prev := s.items[i]
	s.items[i] = r.Clone()
	err := s.persistLocked(ctx)
	s.unlockAndNotify(Change[T]{Op: OpUpdate, Records: []T{r.Clone()}, Previous: []T{prev}})
	return true, err
}

// Modify applies fn to the record with id and stores the result in place,
// holding the write lock for the whole read-modify-write. It reports false
// when id is unknown. fn must keep the id unchanged.
func (s *Store[T]) Modify(ctx context.Context, id string, fn func(T) T) (T, bool, error) {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 || id == "" {
		s.mu.Unlock()
		var zero T
		return zero, false, nil
	}
	prev := s.items[i]
	next := fn(prev.Clone())
	if next.RecordID() != id {
		s.mu.Unlock()
		return prev.Clone(), false, fmt.Errorf("modify %q: id changed to %q", id, next.RecordID())
	}
	s.items[i] = next.Clone()
	err := s.persistLocked(ctx)
	s.unlockAndNotify(Change[T]{Op: OpUpdate, Records: []T{next.Clone()}, Previous: []T{prev}})
	return next, true, err
}

// Delete removes every record with the given id and returns how many were
// removed. Unknown ids are a no-op.
func (s *Store[T]) Delete(ctx context.Context, id string) (int, error) {
	s.mu.Lock()
	kept := s.items[:0:0]
	var removed []T
	for _, it := range s.items {
		if it.RecordID() == id {
			removed = append(removed, it)
			continue
		}
		kept = append(kept, it)
	}
	if len(removed) == 0 {
		s.mu.Unlock()
		return 0, nil
	}
	s.items = kept
	err := s.persistLocked(ctx)
	s.unlockAndNotify(Change[T]{Op: OpDelete, Records: removed})
	return len(removed), err
}

// DeleteRecord is Delete(ctx, r.RecordID()).
func (s *Store[T]) DeleteRecord(ctx context.Context, r T) (int, error) {
	return s.Delete(ctx, r.RecordID())
}

// DeleteAll clears the collection and persists the empty snapshot.
func (s *Store[T]) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	removed := s.items
	s.items = []T{}
	err := s.persistLocked(ctx)
	s.unlockAndNotify(Change[T]{Op: OpClear, Records: removed})
	return err
}

// Persist writes the current collection to storage.
func (s *Store[T]) Persist(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persistLocked(ctx)
}

func (s *Store[T]) persistLocked(ctx context.Context) error {
	data, err := encodeSnapshot(s.items, s.now())
	if err == nil {
		err = s.blobs.Put(ctx, s.key, data)
	}
	if err != nil {
		s.lastErr = err
		s.logger.Error("persist failed, change kept in memory only", "error", err, "records", len(s.items))
		return fmt.Errorf("%w %q: %w", ErrPersist, s.key, err)
	}
	s.lastErr = nil
	return nil
}

// LastPersistError returns the error of the most recent write, or nil if it
// succeeded.
func (s *Store[T]) LastPersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// All returns copies of every record in insertion order.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneAll(s.items)
}

// Len returns the number of records.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Get returns a copy of the record with id.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i].Clone(), true
	}
	var zero T
	return zero, false
}

// Find returns a copy of the first record matching fn.
func (s *Store[T]) Find(fn func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if fn(it) {
			return it.Clone(), true
		}
	}
	var zero T
	return zero, false
}

func (s *Store[T]) indexOf(id string) int {
	for i, it := range s.items {
		if it.RecordID() == id {
			return i
		}
	}
	return -1
}

func cloneAll[T Record[T]](items []T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

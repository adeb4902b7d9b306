package matchlog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/runnerr0/diary/internal/collection"
	"github.com/runnerr0/diary/internal/storage"
)

// ErrDuplicatePlayer is returned by AddPlayer for a name already on the
// roster, ignoring case.
var ErrDuplicatePlayer = errors.New("player already exists")

// Log owns the match and player collections. Every match mutation and the
// MVP counter adjustment it causes run under one lock.
type Log struct {
	mu      sync.Mutex
	matches *collection.Store[Match]
	players *collection.Store[Player]
	now     func() time.Time
}

// New returns a Log over blobs. now stamps LastMVPAt; nil means time.Now.
// opts are passed to both collections.
func New(blobs storage.Blobs, now func() time.Time, opts ...collection.Option) *Log {
	if now == nil {
		now = time.Now
	}
	opts = append([]collection.Option{collection.WithClock(now)}, opts...)
	return &Log{
		matches: collection.New[Match](blobs, MatchesKey, opts...),
		players: collection.New[Player](blobs, PlayersKey, opts...),
		now:     now,
	}
}

// Load reads both snapshots.
func (l *Log) Load(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.matches.Load(ctx)
	l.players.Load(ctx)
}

// Matches returns every match in insertion order.
func (l *Log) Matches() []Match { return l.matches.All() }

// Players returns the roster in insertion order.
func (l *Log) Players() []Player { return l.players.All() }

// Match returns the match with id.
func (l *Log) Match(id string) (Match, bool) { return l.matches.Get(id) }

// Player looks a player up by name, ignoring case and surrounding space.
func (l *Log) Player(name string) (Player, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Player{}, false
	}
	return l.players.Find(func(p Player) bool { return strings.EqualFold(p.Name, name) })
}

// MatchStore exposes the match collection for subscriptions.
func (l *Log) MatchStore() *collection.Store[Match] { return l.matches }

// PlayerStore exposes the player collection for subscriptions.
func (l *Log) PlayerStore() *collection.Store[Player] { return l.players }

// AddMatch stores m and credits its MVP, creating the player on first
// reference. When m carries the id of a stored match, that match is
// replaced and its MVP debited first.
func (l *Log) AddMatch(ctx context.Context, m Match) (Match, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var debit error
	if prev, ok := l.matches.Get(m.ID); ok && m.ID != "" {
		debit = l.adjust(ctx, prev.MVP, -1)
	}
	stored, err := l.matches.Add(ctx, m)
	return stored, errors.Join(err, debit, l.adjust(ctx, stored.MVP, +1))
}

// UpdateMatch replaces the match with m's id. The previous MVP is debited
// before the new one is credited, even when the name is unchanged. It
// reports false, changing nothing, when the match is unknown.
func (l *Log) UpdateMatch(ctx context.Context, m Match) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.matches.Get(m.ID)
	if !ok {
		return false, nil
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = prev.CreatedAt
	}
	if m.PlayedAt.IsZero() {
		m.PlayedAt = prev.PlayedAt
	}
	_, err := l.matches.Update(ctx, m)
	return true, errors.Join(err, l.adjust(ctx, prev.MVP, -1), l.adjust(ctx, m.MVP, +1))
}

// DeleteMatch removes the match and debits its MVP. Unknown ids are a no-op.
func (l *Log) DeleteMatch(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	prev, ok := l.matches.Get(id)
	if !ok {
		return false, nil
	}
	_, err := l.matches.Delete(ctx, id)
	return true, errors.Join(err, l.adjust(ctx, prev.MVP, -1))
}

// DeleteAllMatches clears the history and resets every MVP tally.
func (l *Log) DeleteAllMatches(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	errs := []error{l.matches.DeleteAll(ctx)}
	for _, p := range l.players.All() {
		if p.MVPCount == 0 {
			continue
		}
		_, _, err := l.players.Modify(ctx, p.ID, func(p Player) Player {
			p.MVPCount = 0
			return p
		})
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// DeleteAll clears both the match history and the roster.
func (l *Log) DeleteAll(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return errors.Join(l.matches.DeleteAll(ctx), l.players.DeleteAll(ctx))
}

// AddPlayer puts a player on the roster with a zero tally.
func (l *Log) AddPlayer(ctx context.Context, name string) (Player, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	name = strings.TrimSpace(name)
	if _, exists := l.findPlayer(name); exists {
		return Player{}, ErrDuplicatePlayer
	}
	return l.players.Add(ctx, Player{Name: name})
}

// DeletePlayer removes a player by name. Matches naming them are left as
// they are; a later reference recreates the player.
func (l *Log) DeletePlayer(ctx context.Context, name string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	p, ok := l.findPlayer(strings.TrimSpace(name))
	if !ok {
		return false, nil
	}
	_, err := l.players.Delete(ctx, p.ID)
	return true, err
}

func (l *Log) findPlayer(name string) (Player, bool) {
	return l.players.Find(func(p Player) bool { return strings.EqualFold(p.Name, name) })
}

// adjust moves a player's MVP counter by delta. Empty names reference no
// one; counters stop at zero; a debit for an unknown name does nothing.
func (l *Log) adjust(ctx context.Context, name string, delta int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	now := l.now()

	p, ok := l.findPlayer(name)
	if !ok {
		if delta <= 0 {
			return nil
		}
		_, err := l.players.Add(ctx, Player{Name: name, MVPCount: delta, LastMVPAt: &now})
		return err
	}
	_, _, err := l.players.Modify(ctx, p.ID, func(p Player) Player {
		p.MVPCount = max(0, p.MVPCount+delta)
		p.LastMVPAt = &now
		return p
	})
	return err
}

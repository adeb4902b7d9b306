package collection

import "slices"

// Op names the kind of mutation that produced a Change.
type Op int

const (
	OpLoad Op = iota + 1
	OpAdd
	OpUpdate
	OpDelete
	OpClear
)

func (o Op) String() string {
	switch o {
	case OpLoad:
		return "load"
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Change describes one mutation. Records holds the records after the change
// (add, update, load) or the removed ones (delete, clear). Previous holds the
// replaced records for updates.
type Change[T any] struct {
	Op       Op
	Records  []T
	Previous []T
}

// Subscribe registers fn to be called after every mutation. Changes arrive
// one at a time in mutation order, after the store lock is released, so fn
// may read the store but must not mutate it. The returned function removes
// the subscription.
func (s *Store[T]) Subscribe(fn func(Change[T])) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// unlockAndNotify releases mu, which the caller holds for a mutation, and
// delivers c once every earlier mutation's change has been delivered.
func (s *Store[T]) unlockAndNotify(c Change[T]) {
	n := s.seq
	s.seq++
	s.mu.Unlock()

	s.turnMu.Lock()
	for s.delivered != n {
		s.turn.Wait()
	}
	s.turnMu.Unlock()

	s.notify(c)

	s.turnMu.Lock()
	s.delivered++
	s.turn.Broadcast()
	s.turnMu.Unlock()
}

func (s *Store[T]) notify(c Change[T]) {
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	s.subMu.Unlock()

	// Deliver in subscription order.
	slices.Sort(ids)
	for _, id := range ids {
		s.subMu.Lock()
		fn, ok := s.subs[id]
		s.subMu.Unlock()
		if ok {
			fn(c)
		}
	}
}

package state

import (
	"log/slog"
	"sync"

	"github.com/roach88/usertable/internal/record"
)

// Listener is called with the post-mutation state after every applied action.
// The state passed in is a private copy; listeners may keep it.
type Listener func(State)

type subscriber struct {
	id int
	fn Listener
}

// Store owns the record collection.
//
// Thread-safety: all methods are safe for concurrent use. Listeners run on
// the dispatching goroutine, in registration order. Dispatches are
// serialized through delivery, so listeners see states in the order they
// were applied. Listeners may read the store but must not dispatch.
type Store struct {
	// dispatchMu is held from reduce until the last listener returns.
	dispatchMu sync.Mutex

	mu      sync.Mutex
	state   State
	subs    []subscriber
	nextSub int
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for rejected actions.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates a Store seeded with initial.
//
// An initial state that already breaks ID uniqueness is discarded and the
// store starts empty.
func New(initial State, opts ...Option) *Store {
	s := &Store{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	if !record.UniqueIDs(initial.Users) {
		s.logger.Warn("initial state has duplicate ids, starting empty",
			"users", len(initial.Users))
		initial = State{}
	}
	s.state = initial.Clone()
	return s
}

// Dispatch applies a and notifies subscribers if the collection changed.
// Returns whether the action was applied.
func (s *Store) Dispatch(a Action) bool {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	next, changed := Reduce(s.state, a)
	if !changed {
		s.mu.Unlock()
		if a.Type != ActionDeleteUser {
			s.logger.Warn("action rejected", "action", a.Type.String())
		} else {
			s.logger.Debug("delete of unknown id ignored", "id", a.ID)
		}
		return false
	}
	s.state = next
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	s.logger.Debug("action applied",
		"action", a.Type.String(),
		"users", len(next.Users),
	)

	for _, sub := range subs {
		sub.fn(next.Clone())
	}
	return true
}

// AddOne appends r to the end of the collection.
// Returns false if r.ID is already present.
func (s *Store) AddOne(r record.Record) bool {
	return s.Dispatch(AddUser(r))
}

// AddMany appends rs to the end of the collection, preserving their order.
// The batch is applied entirely or not at all.
func (s *Store) AddMany(rs []record.Record) bool {
	return s.Dispatch(AddUsers(record.Clone(rs)))
}

// DeleteByID removes the record with the given id.
// Deleting an absent id is a no-op and returns false.
func (s *Store) DeleteByID(id string) bool {
	return s.Dispatch(DeleteUser(id))
}

// All returns a copy of the collection in insertion order.
func (s *Store) All() []record.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return record.Clone(s.state.Users)
}

// Len returns the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Users)
}

// Subscribe registers fn and returns a function that removes it.
// Calling the returned function more than once is harmless.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

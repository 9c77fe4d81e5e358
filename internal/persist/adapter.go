package persist

import (
	"context"
	"log/slog"

	"github.com/roach88/usertable/internal/state"
)

// DefaultKey is the storage key the collection is written under.
const DefaultKey = "usertable.state"

// KV is a string key-value store.
type KV interface {
	// Get returns the value for key. found is false when the key is absent.
	Get(ctx context.Context, key string) (value string, found bool, err error)

	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, key, value string) error
}

// Adapter loads and saves the table state.
type Adapter interface {
	// Load returns the stored state, or false when there is none usable.
	Load(ctx context.Context) (state.State, bool)

	// Save writes st. Failures are handled inside the adapter.
	Save(ctx context.Context, st state.State)
}

// KVAdapter stores the state as JSON under a single key of a KV.
type KVAdapter struct {
	kv     KV
	key    string
	logger *slog.Logger
}

// Option configures a KVAdapter.
type Option func(*KVAdapter)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(a *KVAdapter) {
		if key != "" {
			a.key = key
		}
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(l *slog.Logger) Option {
	return func(a *KVAdapter) {
		a.logger = l
	}
}

// NewAdapter returns an Adapter backed by kv.
func NewAdapter(kv KV, opts ...Option) *KVAdapter {
	a := &KVAdapter{
		kv:     kv,
		key:    DefaultKey,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Key returns the storage key in use.
func (a *KVAdapter) Key() string {
	return a.key
}

// Load implements Adapter.
func (a *KVAdapter) Load(ctx context.Context) (state.State, bool) {
	value, found, err := a.kv.Get(ctx, a.key)
	if err != nil {
		a.logger.Error("could not load state",
			"error", &PersistenceError{Op: "load", Key: a.key, Err: err})
		return state.State{}, false
	}
	if !found {
		a.logger.Debug("no prior state", "key", a.key)
		return state.State{}, false
	}

	st, err := decodeState(value)
	if err != nil {
		a.logger.Warn("ignoring unreadable state",
			"key", a.key,
			"error", err,
		)
		return state.State{}, false
	}

	a.logger.Debug("state loaded", "key", a.key, "users", len(st.Users))
	return st, true
}

// Save implements Adapter. Errors are logged, never returned.
func (a *KVAdapter) Save(ctx context.Context, st state.State) {
	if err := a.save(ctx, st); err != nil {
		a.logger.Error("could not save state", "error", err)
	}
}

func (a *KVAdapter) save(ctx context.Context, st state.State) error {
	value, err := encodeState(st)
	if err != nil {
		return &PersistenceError{Op: "save", Key: a.key, Err: err}
	}
	if err := a.kv.Put(ctx, a.key, value); err != nil {
		return &PersistenceError{Op: "save", Key: a.key, Err: err}
	}
	return nil
}

// Nop is the adapter for environments without durable storage.
// Load reports no prior state and Save does nothing.
type Nop struct{}

// Load implements Adapter.
func (Nop) Load(context.Context) (state.State, bool) {
	return state.State{}, false
}

// Save implements Adapter.
func (Nop) Save(context.Context, state.State) {}

// Attach subscribes a to store so every mutation is saved.
// The returned function detaches it.
func Attach(ctx context.Context, store *state.Store, a Adapter) (detach func()) {
	return store.Subscribe(func(st state.State) {
		a.Save(ctx, st)
	})
}

// Restore loads prior state from a and builds a store around it, with a
// already attached. It is the usual startup sequence.
func Restore(ctx context.Context, a Adapter, opts ...state.Option) *state.Store {
	initial, _ := a.Load(ctx)
	st := state.New(initial, opts...)
	Attach(ctx, st, a)
	return st
}

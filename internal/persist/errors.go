package persist

import (
	"errors"
	"fmt"
)

// ErrCodePersistence identifies storage read/write failures.
const ErrCodePersistence = "PERSISTENCE"

// PersistenceError wraps a failure to read or write durable state.
// It is logged, never surfaced to the user.
type PersistenceError struct {
	// Op is "load" or "save".
	Op string

	// Key is the storage key involved.
	Key string

	Err error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s %q: %v", ErrCodePersistence, e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsPersistenceError returns true if err is or wraps a PersistenceError.
func IsPersistenceError(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}

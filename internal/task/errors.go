package task

import "errors"

var (
	// ErrValidation is returned when input cannot become a task, such as
	// empty text or an unknown priority. State is never changed.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when an operation names an id that is not in
	// the collection. State is never changed.
	ErrNotFound = errors.New("task not found")

	// ErrPersistence matches any *PersistenceError.
	ErrPersistence = errors.New("persistence failed")
)

// PersistenceError reports that a mutation was applied in memory but could
// not be written to the store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return "persist " + e.Op + ": " + e.Err.Error()
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func (e *PersistenceError) Is(target error) bool {
	return target == ErrPersistence
}

package errs

import (
	"errors"
	"fmt"
)

// ErrStoreFailure is the sentinel wrapped by StoreFailureError.
var ErrStoreFailure = errors.New("store failure")

// StoreFailureError wraps an error returned by the record store. The engine
// never retries; Cause is kept so callers can decide.
type StoreFailureError struct {
	Operation string
	Cause     error
}

// NewStoreFailureError wraps cause as a StoreFailureError. A nil cause yields nil.
func NewStoreFailureError(operation string, cause error) error {
	if cause == nil {
		return nil
	}
	return &StoreFailureError{
		Operation: operation,
		Cause:     cause,
	}
}

func (e *StoreFailureError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrStoreFailure, e.Operation, e.Cause)
}

func (e *StoreFailureError) Unwrap() []error {
	return []error{ErrStoreFailure, e.Cause}
}

package errs

import (
	"errors"
	"fmt"
	"strings"
)

// ErrPreconditionNotMet is the sentinel wrapped by PreconditionNotMetError.
var ErrPreconditionNotMet = errors.New("precondition not met")

// PreconditionNotMetError reports that an operation was attempted before the
// events or obligations it depends on were recorded. Missing lists what the
// operator still has to do, in the order it should be done.
type PreconditionNotMetError struct {
	Entity  string
	ID      any
	Missing []string
	Cause   error
}

// NewPreconditionNotMetError creates a PreconditionNotMetError for the given entity.
func NewPreconditionNotMetError(entity string, id any, missing ...string) *PreconditionNotMetError {
	return &PreconditionNotMetError{
		Entity:  entity,
		ID:      id,
		Missing: missing,
	}
}

// NewPreconditionNotMetErrorWithCause creates a PreconditionNotMetError carrying a cause.
func NewPreconditionNotMetErrorWithCause(entity string, id any, cause error, missing ...string) *PreconditionNotMetError {
	return &PreconditionNotMetError{
		Entity:  entity,
		ID:      id,
		Missing: missing,
		Cause:   cause,
	}
}

func (e *PreconditionNotMetError) Error() string {
	msg := fmt.Sprintf("%s: %s %s", ErrPreconditionNotMet, e.Entity, sanitize(e.ID))
	if len(e.Missing) > 0 {
		msg = fmt.Sprintf("%s, missing: %s", msg, strings.Join(e.Missing, ", "))
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

func (e *PreconditionNotMetError) Unwrap() error {
	return ErrPreconditionNotMet
}

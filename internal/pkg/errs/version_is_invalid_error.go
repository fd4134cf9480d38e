package errs

import (
	"errors"
	"fmt"
)

// ErrVersionIsInvalid is the sentinel wrapped by VersionIsInvalidError. Repositories
// return it when an optimistic update finds a revision other than the one loaded.
var ErrVersionIsInvalid = errors.New("version is invalid")

// VersionIsInvalidError reports a stale aggregate revision.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

// NewVersionIsInvalidError creates a VersionIsInvalidError carrying a cause.
func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{
		ParamName: paramName,
		Cause:     cause,
	}
}

// NewVersionIsInvalidErrorWithoutCause creates a VersionIsInvalidError with only the parameter name.
func NewVersionIsInvalidErrorWithoutCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

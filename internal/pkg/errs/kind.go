package errs

import "errors"

// Kind is the caller-facing classification of an engine error.
type Kind string

const (
	KindNone               Kind = ""
	KindValidationFailed   Kind = "validation_failed"
	KindPreconditionNotMet Kind = "precondition_not_met"
	KindInsufficientVolume Kind = "insufficient_volume"
	KindNotFound           Kind = "not_found"
	KindConflict           Kind = "conflict"
	KindStoreFailure       Kind = "store_failure"
	KindUnknown            Kind = "unknown"
)

// KindOf classifies err. Joined errors are classified by the first member
// that has a known kind, so a constructor that fails several setters still
// reports ValidationFailed.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrPreconditionNotMet):
		return KindPreconditionNotMet
	case errors.Is(err, ErrInsufficientVolume):
		return KindInsufficientVolume
	case errors.Is(err, ErrVersionIsInvalid):
		return KindConflict
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidationFailed
	case errors.Is(err, ErrStoreFailure):
		return KindStoreFailure
	default:
		return KindUnknown
	}
}

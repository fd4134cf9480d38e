package errs

import (
	"errors"
	"fmt"
)

// ErrInsufficientVolume is the sentinel wrapped by InsufficientVolumeError.
var ErrInsufficientVolume = errors.New("insufficient volume")

// InsufficientVolumeError reports that a reservation or draw asks for more than
// the lot can currently supply.
type InsufficientVolumeError struct {
	LotID     any
	Requested any
	Available any
}

// NewInsufficientVolumeError creates an InsufficientVolumeError.
func NewInsufficientVolumeError(lotID, requested, available any) *InsufficientVolumeError {
	return &InsufficientVolumeError{
		LotID:     lotID,
		Requested: requested,
		Available: available,
	}
}

func (e *InsufficientVolumeError) Error() string {
	return fmt.Sprintf("%s: lot %s, requested %s, available %s",
		ErrInsufficientVolume, sanitize(e.LotID), sanitize(e.Requested), sanitize(e.Available))
}

func (e *InsufficientVolumeError) Unwrap() error {
	return ErrInsufficientVolume
}

// Package guard provides ConstructorGuard, a marker embedded in value objects,
// entities and commands so that zero values created outside their constructor
// fail validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard records whether the owning struct was built by its constructor.
//
// Example usage:
//
//	var ErrSampleNotConstructed = errors.New("Sample must be created via NewSample")
//
//	type Sample struct {
//	    code  string
//	    guard guard.ConstructorGuard
//	}
//
//	func NewSample(code string) (Sample, error) {
//	    if code == "" {
//	        return Sample{}, errors.New("code is required")
//	    }
//	    return Sample{code: code, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (s Sample) Validate() error {
//	    return s.guard.Validate(ErrSampleNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value, and nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

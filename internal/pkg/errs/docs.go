// Package errs provides standardized error types for the lot workflow engine.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - PreconditionNotMetError: For when a workflow step is attempted before its prerequisites exist
//   - InsufficientVolumeError: For when a reservation or draw exceeds what a lot can supply
//   - VersionIsInvalidError: For when an aggregate was modified concurrently
//   - StoreFailureError: For when the record store rejects a read or write
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// KindOf classifies any error produced by the engine into one of the
// caller-facing kinds (ValidationFailed, PreconditionNotMet, ...), so adapters
// can map failures to transport codes without inspecting concrete types.
package errs

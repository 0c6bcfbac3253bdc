// Package errs provides standardized error types for the work order service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes error types for the failure classes callers must tell apart:
//   - ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError: malformed input,
//     all of which also match ErrValidation
//   - ObjectNotFoundError: an entity lookup found nothing
//   - ConflictError: a conditional state transition matched no row
//   - AuthorizationError: the caller does not own the order or holds the wrong role
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Adapters classify failures with errors.Is against the sentinels and map them to
// transport-level responses (HTTP status codes, bot replies).
package errs

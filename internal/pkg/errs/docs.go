// Package errs provides standardized error types for the storefront service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside its allowed interval
//   - ObjectNotFoundError: For when an object cannot be found
//   - ValidationError: For field-scoped input errors shown next to a form control
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Validation errors are returned, never panicked, and never fatal to the
// process: each one is scoped to the cart, checkout or order it concerns.
package errs

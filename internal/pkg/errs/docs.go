// Package errs provides standardized error types for the field-service sync service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used by the domain, the use cases and the adapters.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: a required value is missing
//   - ValueIsInvalidError: a value cannot be parsed or violates a rule (ValidationFailure)
//   - ValueIsOutOfRangeError: a numeric value lies outside its bounds
//   - ObjectNotFoundError: a job or calendar event cannot be found
//   - ExternalCallError: the job store or the calendar service failed (ExternalCallFailure)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Two further sentinels, ErrConfigurationGap and ErrScheduleMissing, describe
// non-fatal sync outcomes. They are reported as the reason of a skipped sync and
// are never returned as failures.
package errs

// Package kernel provides the shared value objects of the field-service domain.
//
// The package includes:
//   - JobID: the immutable "JOB-######" identifier of a job record, and the
//     id-generation rule used by job intake (NextJobID)
//   - TimeOfDay: a canonical "HH:MM" wall-clock time, produced by
//     NormalizeTimeOfDay from the loosely formatted time cells of the job store
//
// Value objects are immutable, validated at construction and have an invalid
// zero value, so a value that skipped its constructor is caught by Validate.
package kernel

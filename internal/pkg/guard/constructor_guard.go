// Package guard provides ConstructorGuard, used by commands and queries to prove
// they were built by their constructor and therefore passed its validation.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in a value that may only be created through its
// constructor. Its zero value fails validation.
//
// Example:
//
//	type SyncJobCommand struct {
//	    jobID kernel.JobID
//	    guard guard.ConstructorGuard
//	}
//
//	func (c SyncJobCommand) Validate() error {
//	    return c.guard.Validate(ErrSyncJobCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard marked as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil for a constructed guard. Otherwise it returns validationError,
// or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}

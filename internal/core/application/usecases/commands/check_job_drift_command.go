package commands

import (
	"errors"

	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/pkg/guard"
)

var ErrCheckJobDriftCommandIsNotConstructed = errors.New(
	"CheckJobDriftCommand must be created via NewCheckJobDriftCommand constructor",
)

// CheckJobDriftCommand runs drift detection for a single job, synchronously.
type CheckJobDriftCommand struct {
	jobID kernel.JobID

	guard guard.ConstructorGuard
}

// NewCheckJobDriftCommand creates a single-job drift check.
func NewCheckJobDriftCommand(jobID kernel.JobID) (CheckJobDriftCommand, error) {
	if err := jobID.Validate(); err != nil {
		return CheckJobDriftCommand{}, err
	}
	return CheckJobDriftCommand{
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckJobDriftCommand) Validate() error {
	return c.guard.Validate(ErrCheckJobDriftCommandIsNotConstructed)
}

// JobID returns the job to check.
func (c CheckJobDriftCommand) JobID() kernel.JobID {
	return c.jobID
}

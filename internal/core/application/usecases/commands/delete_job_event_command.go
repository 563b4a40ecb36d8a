package commands

import (
	"errors"

	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/pkg/guard"
)

var ErrDeleteJobEventCommandIsNotConstructed = errors.New(
	"DeleteJobEventCommand must be created via NewDeleteJobEventCommand constructor",
)

// DeleteJobEventCommand removes the calendar events of a job and clears its
// event link.
type DeleteJobEventCommand struct {
	jobID kernel.JobID

	guard guard.ConstructorGuard
}

func NewDeleteJobEventCommand(jobID kernel.JobID) (DeleteJobEventCommand, error) {
	if err := jobID.Validate(); err != nil {
		return DeleteJobEventCommand{}, err
	}
	return DeleteJobEventCommand{
		jobID: jobID,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteJobEventCommand) Validate() error {
	return c.guard.Validate(ErrDeleteJobEventCommandIsNotConstructed)
}

// JobID returns the job whose events are deleted.
func (c DeleteJobEventCommand) JobID() kernel.JobID {
	return c.jobID
}

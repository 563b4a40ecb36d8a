package commands

import (
	"errors"

	"fieldsync/internal/pkg/guard"
)

var ErrResyncJobsCommandIsNotConstructed = errors.New(
	"ResyncJobsCommand must be created via NewResyncJobsCommand constructor",
)

// ResyncJobsCommand re-syncs every calendar-bound job (Scheduled or Rescheduled).
type ResyncJobsCommand struct {
	guard guard.ConstructorGuard
}

func NewResyncJobsCommand() ResyncJobsCommand {
	return ResyncJobsCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c ResyncJobsCommand) Validate() error {
	return c.guard.Validate(ErrResyncJobsCommandIsNotConstructed)
}

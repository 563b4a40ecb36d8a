package commands

import (
	"errors"

	"fieldsync/internal/pkg/guard"
)

var ErrRunDriftScanCommandIsNotConstructed = errors.New(
	"RunDriftScanCommand must be created via NewRunDriftScanCommand constructor",
)

// RunDriftScanCommand triggers one drift scan over every monitored job.
//
// Example:
//
//	summary, err := handler.Handle(ctx, NewRunDriftScanCommand("manual"))
//	if err != nil {
//	    return err // the job store snapshot could not be read
//	}
//	log.Printf("checked=%d updated=%d errors=%d", summary.Checked, summary.StatusUpdated, summary.Errors)
type RunDriftScanCommand struct {
	trigger string

	guard guard.ConstructorGuard
}

// NewRunDriftScanCommand creates a scan command. trigger names what started the
// run ("scheduled", "manual") and is only recorded in the summary.
func NewRunDriftScanCommand(trigger string) RunDriftScanCommand {
	if trigger == "" {
		trigger = "manual"
	}
	return RunDriftScanCommand{
		trigger: trigger,
		guard:   guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c RunDriftScanCommand) Validate() error {
	return c.guard.Validate(ErrRunDriftScanCommandIsNotConstructed)
}

// Trigger returns what started the run.
func (c RunDriftScanCommand) Trigger() string {
	return c.trigger
}

package commands

import (
	"errors"

	"fieldsync/internal/pkg/guard"
)

var ErrRepairJobColumnsCommandIsNotConstructed = errors.New(
	"RepairJobColumnsCommand must be created via NewRepairJobColumnsCommand constructor",
)

// RepairJobColumnsCommand runs the zone/status swap repair over the job store.
// A dry run only reports what would be repaired.
type RepairJobColumnsCommand struct {
	dryRun bool

	guard guard.ConstructorGuard
}

func NewRepairJobColumnsCommand(dryRun bool) RepairJobColumnsCommand {
	return RepairJobColumnsCommand{
		dryRun: dryRun,
		guard:  guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c RepairJobColumnsCommand) Validate() error {
	return c.guard.Validate(ErrRepairJobColumnsCommandIsNotConstructed)
}

// DryRun reports whether the pass must leave the store untouched.
func (c RepairJobColumnsCommand) DryRun() bool {
	return c.dryRun
}

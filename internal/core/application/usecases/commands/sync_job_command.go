package commands

import (
	"errors"

	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/pkg/guard"
)

var ErrSyncJobCommandIsNotConstructed = errors.New(
	"SyncJobCommand must be created via NewSyncJobCommand or NewSyncStoredJobCommand constructor",
)

// SyncJobCommand asks for the calendar events of one job to be created or
// refreshed. It carries either the job record itself or only its id, in which
// case the handler loads the record from the job store.
//
// Example:
//
//	cmd, err := NewSyncJobCommand(record)
//	if err != nil {
//	    return err
//	}
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("sync %s: %w", record.ID, err)
//	}
//	if result.Skipped() {
//	    log.Printf("not synced: %v", result.Reason)
//	}
type SyncJobCommand struct {
	jobID  kernel.JobID
	record *job.Job

	guard guard.ConstructorGuard
}

// NewSyncJobCommand creates a command that syncs record as given.
func NewSyncJobCommand(record *job.Job) (SyncJobCommand, error) {
	if err := record.Validate(); err != nil {
		return SyncJobCommand{}, err
	}

	return SyncJobCommand{
		jobID:  record.ID,
		record: record,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// NewSyncStoredJobCommand creates a command that syncs the stored record of id.
func NewSyncStoredJobCommand(id kernel.JobID) (SyncJobCommand, error) {
	if err := id.Validate(); err != nil {
		return SyncJobCommand{}, err
	}

	return SyncJobCommand{
		jobID: id,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c SyncJobCommand) Validate() error {
	return c.guard.Validate(ErrSyncJobCommandIsNotConstructed)
}

// JobID returns the id of the job to sync.
func (c SyncJobCommand) JobID() kernel.JobID {
	return c.jobID
}

// Record returns the job record carried by the command, or nil when the
// handler must load it.
func (c SyncJobCommand) Record() *job.Job {
	return c.record
}

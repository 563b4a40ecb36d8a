package ports

import (
	"context"

	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/model/kernel"
)

// JobRepository is the job store contract consumed by the reconciliation engine.
// The store owns the records; the engine reads them and patches single fields.
// Missing records are reported as *errs.ObjectNotFoundError.
type JobRepository interface {
	// GetAll returns every job, newest created first.
	GetAll(ctx context.Context) ([]*job.Job, error)

	// Get retrieves a single job by id.
	Get(ctx context.Context, id kernel.JobID) (*job.Job, error)

	// Add persists a new job. The id must not be in use.
	Add(ctx context.Context, aggregate *job.Job) error

	// NextJobID computes the id for the next job: the largest well-formed
	// sequence plus one. Malformed ids in the store are ignored.
	NextJobID(ctx context.Context) (kernel.JobID, error)

	// UpdateStatus rewrites the status and status note and returns the
	// updated record.
	UpdateStatus(ctx context.Context, id kernel.JobID, status job.Status, note string) (*job.Job, error)

	// UpdateEventID links the job to a calendar event. An empty eventID
	// clears the link.
	UpdateEventID(ctx context.Context, id kernel.JobID, eventID string) error

	// UpdateFields applies a partial patch.
	UpdateFields(ctx context.Context, id kernel.JobID, fields job.Fields) error
}

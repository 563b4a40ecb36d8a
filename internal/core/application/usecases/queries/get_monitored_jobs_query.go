package queries

import (
	"errors"
	"time"

	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/pkg/guard"
)

var (
	ErrGetMonitoredJobsQueryIsNotConstructed = errors.New(
		"GetMonitoredJobsQuery must be created via NewGetMonitoredJobsQuery constructor",
	)
)

// GetMonitoredJobsQuery lists the jobs a drift scan would inspect: a linked
// calendar event, a team, and a status that is not terminal.
//
// Example:
//
//	query := NewGetMonitoredJobsQuery()
//	handler := NewGetMonitoredJobsQueryHandler(db)
//
//	monitored, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list monitored jobs: %w", err)
//	}
//
//	for _, j := range monitored {
//	    fmt.Printf("%s (%s) -> %s\n", j.ID, j.Team, j.EventID)
//	}
type GetMonitoredJobsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetMonitoredJobsQuery creates a parameterless monitored-jobs query.
func NewGetMonitoredJobsQuery() GetMonitoredJobsQuery {
	return GetMonitoredJobsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetMonitoredJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetMonitoredJobsQueryIsNotConstructed)
}

// GetMonitoredJobsQueryResponse is one row of the monitored-jobs read model.
type GetMonitoredJobsQueryResponse struct {
	ID        kernel.JobID `json:"job_id"`
	Team      string       `json:"team"`
	Status    job.Status   `json:"status"`
	EventID   string       `json:"event_id"`
	Date      string       `json:"date,omitempty"`
	UpdatedAt time.Time    `json:"updated_at"`
}

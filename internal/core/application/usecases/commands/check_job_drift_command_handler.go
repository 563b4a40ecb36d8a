package commands

import (
	"context"
	"log/slog"

	"fieldsync/internal/core/ports"
)

// CheckJobDriftCommandHandler runs the drift state machine for one job and
// applies the same status transition as a scan. Failures propagate.
//
// Example:
//
//	cmd, _ := NewCheckJobDriftCommand(id)
//	detail, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(detail.Outcome) // linked, moved, disappeared, skipped or ineligible
type CheckJobDriftCommandHandler struct {
	jobs      ports.JobRepository
	inspector driftInspector
	logger    *slog.Logger
}

func NewCheckJobDriftCommandHandler(
	jobs ports.JobRepository,
	calendars ports.CalendarService,
	settings DriftSettings,
	logger *slog.Logger,
) CheckJobDriftCommandHandler {
	return CheckJobDriftCommandHandler{
		jobs:      jobs,
		inspector: settings.inspector(jobs, calendars),
		logger:    logger.With("component", "drift_detector"),
	}
}

// Handle checks one job. A job that is not monitored yields DriftIneligible.
func (h CheckJobDriftCommandHandler) Handle(ctx context.Context, cmd CheckJobDriftCommand) (DriftDetail, error) {
	if err := cmd.Validate(); err != nil {
		return DriftDetail{}, err
	}

	j, err := h.jobs.Get(ctx, cmd.JobID())
	if err != nil {
		return DriftDetail{}, err
	}

	if !j.IsDriftEligible() {
		return DriftDetail{
			JobID:          j.ID.String(),
			EventID:        j.EventID,
			Outcome:        DriftIneligible,
			PreviousStatus: j.Status,
		}, nil
	}

	detail, err := h.inspector.inspect(ctx, j)
	if err != nil {
		return DriftDetail{}, err
	}

	h.logger.InfoContext(ctx, "Drift check finished", "job_id", detail.JobID, "outcome", detail.Outcome)
	return detail, nil
}

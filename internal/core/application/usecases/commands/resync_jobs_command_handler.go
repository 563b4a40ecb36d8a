package commands

import (
	"context"
	"log/slog"
	"time"

	"fieldsync/internal/core/ports"

	"github.com/google/uuid"
)

// JobSyncer syncs a single job. SyncJobCommandHandler implements it.
type JobSyncer interface {
	Handle(ctx context.Context, cmd SyncJobCommand) (SyncResult, error)
}

// ResyncDetail is the outcome of one job of a bulk resync.
type ResyncDetail struct {
	JobID   string
	Outcome SyncOutcome
	EventID string
	Events  int
	Reason  string
	Error   string
}

// ResyncSummary is the result of a bulk resync.
type ResyncSummary struct {
	RunID   string
	Checked int
	Synced  int
	Skipped int
	Errors  int
	Details []ResyncDetail
}

// ResyncJobsCommandHandler syncs every calendar-bound job, one at a time with
// the batch delay between jobs. A failing job never aborts the batch.
type ResyncJobsCommandHandler struct {
	jobs   ports.JobRepository
	syncer JobSyncer
	delay  time.Duration
	logger *slog.Logger
}

func NewResyncJobsCommandHandler(
	jobs ports.JobRepository,
	syncer JobSyncer,
	delay time.Duration,
	logger *slog.Logger,
) ResyncJobsCommandHandler {
	return ResyncJobsCommandHandler{
		jobs:   jobs,
		syncer: syncer,
		delay:  delay,
		logger: logger.With("component", "bulk_resync"),
	}
}

// Handle runs the resync. Like the drift scan, only a failed snapshot read or
// an ended ctx returns an error.
func (h ResyncJobsCommandHandler) Handle(ctx context.Context, cmd ResyncJobsCommand) (ResyncSummary, error) {
	if err := cmd.Validate(); err != nil {
		return ResyncSummary{}, err
	}

	records, err := h.jobs.GetAll(ctx)
	if err != nil {
		return ResyncSummary{}, err
	}

	summary := ResyncSummary{RunID: uuid.NewString(), Details: make([]ResyncDetail, 0)}
	limiter := newPacer(h.delay)
	for _, j := range records {
		if !j.Status.IsCalendarBound() {
			continue
		}
		if err = limiter.Wait(ctx); err != nil {
			return summary, err
		}

		summary.Checked++
		detail := ResyncDetail{JobID: j.ID.String()}

		syncCmd, cmdErr := NewSyncJobCommand(j)
		if cmdErr != nil {
			detail.Error = cmdErr.Error()
			summary.Errors++
			summary.Details = append(summary.Details, detail)
			continue
		}

		result, syncErr := h.syncer.Handle(ctx, syncCmd)
		switch {
		case syncErr != nil:
			detail.Error = syncErr.Error()
			summary.Errors++
			h.logger.WarnContext(ctx, "Resync failed", "job_id", detail.JobID, "error", syncErr)
		case result.Skipped():
			detail.Outcome = result.Outcome
			detail.Reason = result.Reason.Error()
			summary.Skipped++
		default:
			detail.Outcome = result.Outcome
			detail.EventID = result.EventID
			detail.Events = len(result.Events)
			summary.Synced++
		}
		summary.Details = append(summary.Details, detail)
	}

	h.logger.InfoContext(ctx, "Bulk resync finished",
		"run_id", summary.RunID,
		"checked", summary.Checked,
		"synced", summary.Synced,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
	)
	return summary, nil
}

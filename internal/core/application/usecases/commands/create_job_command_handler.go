package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/pkg/errs"
)

// CreateJobResult reports the stored job and, for calendar-bound jobs, the
// sync that followed. SyncErr is set when the job was stored but its sync
// failed; the job can be synced again later by id.
type CreateJobResult struct {
	JobID   kernel.JobID
	Status  job.Status
	Sync    *SyncResult
	SyncErr error
}

// CreateJobCommandHandler stores a new job and syncs it when it is
// calendar-bound. Drawing the id and storing the record share one transaction
// so two concurrent intakes never get the same id.
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
	syncer     JobSyncer
	rules      SyncRules
	now        func() time.Time
	logger     *slog.Logger
}

// NewCreateJobCommandHandler creates a job intake handler.
//
// Parameters:
//   - uowFactory: opens the transaction that draws the id and stores the job
//   - syncer: the sync engine run after a calendar-bound job is stored
//   - rules: the schedule policy and range cap checked before anything is stored
//   - logger: scoped with component "job_intake"
func NewCreateJobCommandHandler(
	uowFactory JobUoWFactory,
	syncer JobSyncer,
	rules SyncRules,
	logger *slog.Logger,
) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		syncer:     syncer,
		rules:      rules,
		now:        time.Now,
		logger:     logger.With("component", "job_intake"),
	}
}

// Handle stores the job. Without an explicit status it becomes Scheduled when
// it carries a usable schedule and New otherwise.
//
// A calendar-bound job whose dates or times the sync engine would reject is
// refused before it is stored. Once stored, a failed sync does not fail the
// intake: it is reported in CreateJobResult.SyncErr next to the new id.
func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) (CreateJobResult, error) {
	if err := cmd.Validate(); err != nil {
		return CreateJobResult{}, err
	}

	draft := h.draft(cmd)
	if draft.Status.IsCalendarBound() {
		if err := h.checkSchedule(draft); err != nil {
			return CreateJobResult{}, err
		}
	}

	record, err := h.store(ctx, draft)
	if err != nil {
		return CreateJobResult{}, err
	}

	result := CreateJobResult{JobID: record.ID, Status: record.Status}
	h.logger.InfoContext(ctx, "Job created", "job_id", record.ID.String(), "status", record.Status)

	if !record.Status.IsCalendarBound() {
		return result, nil
	}

	syncCmd, err := NewSyncJobCommand(record)
	if err != nil {
		result.SyncErr = err
		return result, nil
	}
	synced, err := h.syncer.Handle(ctx, syncCmd)
	if err != nil {
		h.logger.WarnContext(ctx, "Sync after intake failed", "job_id", record.ID.String(), "error", err)
		result.SyncErr = err
		return result, nil
	}
	result.Sync = &synced
	return result, nil
}

func (h CreateJobCommandHandler) draft(cmd CreateJobCommand) *job.Job {
	record := &job.Job{}
	cmd.Fields().Apply(record)

	record.Status = cmd.Status()
	if record.Status == "" {
		record.Status = job.New
		if _, err := record.Schedule(); err == nil {
			record.Status = job.Scheduled
		}
	}
	return record
}

// checkSchedule applies the sync engine's own routing, date and time rules in
// the same order. Jobs the sync would skip pass.
func (h CreateJobCommandHandler) checkSchedule(record *job.Job) error {
	if _, _, ok := h.rules.Router.Route(record.Team); !ok {
		return nil
	}

	schedule, err := record.Schedule()
	if errors.Is(err, errs.ErrScheduleMissing) {
		return nil
	}
	if err != nil {
		return err
	}

	if maxDays := h.rules.MaxRangeDays; maxDays > 0 && schedule.Len() > maxDays {
		return errs.NewValueIsOutOfRangeError("date range days", schedule.Len(), 1, maxDays)
	}

	_, err = h.rules.Policy.Resolve(record.TimeWindow, record.StartTime, record.EndTime)
	return err
}

func (h CreateJobCommandHandler) store(ctx context.Context, record *job.Job) (*job.Job, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.JobRepository()
	id, err := repo.NextJobID(ctx)
	if err != nil {
		return nil, err
	}

	now := h.now().UTC()
	record.ID = id
	record.CreatedAt = now
	record.UpdatedAt = now

	if err = repo.Add(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

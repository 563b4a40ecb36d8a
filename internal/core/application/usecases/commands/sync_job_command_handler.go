package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/services"
	"fieldsync/internal/core/ports"
	"fieldsync/internal/pkg/errs"
)

// SyncOutcome tells what a sync did.
type SyncOutcome string

const (
	// SyncSynced means every scheduled day has exactly one event in the queue calendar.
	SyncSynced SyncOutcome = "synced"
	// SyncSkippedNoCalendar means no queue calendar is configured for the team.
	SyncSkippedNoCalendar SyncOutcome = "skipped_no_calendar"
	// SyncSkippedNoSchedule means the job has no usable date.
	SyncSkippedNoSchedule SyncOutcome = "skipped_no_schedule"
)

// SyncResult describes a finished sync. Skipped syncs are not failures; Reason
// wraps errs.ErrConfigurationGap or errs.ErrScheduleMissing.
type SyncResult struct {
	JobID      string
	Outcome    SyncOutcome
	Reason     error
	CalendarID string
	// Events holds one event per scheduled day, in day order.
	Events []*calendar.Event
	// EventID is the id linked on the job record: the first day's event.
	EventID string
}

// Skipped reports whether the sync was a no-op.
func (r SyncResult) Skipped() bool {
	return r.Outcome != SyncSynced
}

// SyncRules bundles the rule sets the sync engine applies to a job.
type SyncRules struct {
	Router   services.QueueRouter
	Policy   services.SchedulePolicy
	Composer services.EventComposer
	// MaxRangeDays caps the length of a date range job; zero disables the cap.
	MaxRangeDays int
}

// SyncJobCommandHandler is the sync engine. It turns a job record into one
// calendar event per scheduled day and writes the resulting event id back to
// the job store.
//
// Steps:
//  1. route the team to its queue calendar (no mapping: skipped, not an error)
//  2. resolve the schedule (no usable date: skipped, not an error)
//  3. resolve times and compose every day's event before any calendar write,
//     so a validation failure never leaves a partial range behind
//  4. upsert each event, keyed by the job id (or the per-day key) in the title
//  5. link the first event on the job record; a failed write-back is logged
//
// Example:
//
//	handler := NewSyncJobCommandHandler(jobRepo, calendarService, rules, logger)
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrValueIsInvalid):
//	    // unparseable times or dates
//	case errors.Is(err, errs.ErrExternalCall):
//	    // calendar service failure
//	case result.Skipped():
//	    log.Printf("skipped: %v", result.Reason)
//	}
type SyncJobCommandHandler struct {
	jobs      ports.JobRepository
	calendars ports.CalendarService
	rules     SyncRules
	logger    *slog.Logger
}

// NewSyncJobCommandHandler creates the sync engine. Both adapters are held by
// the engine; they never reference each other.
//
// Parameters:
//   - jobs: the job store, read for stored-job syncs and written for the event link
//   - calendars: the calendar service events are written to
//   - rules: team routing, schedule policy, event composition and the range cap
//   - logger: scoped with component "sync_engine"
//
// Example:
//
//	handler := commands.NewSyncJobCommandHandler(repo, calendarClient, rules, logger)
//	cmd, _ := commands.NewSyncStoredJobCommand(id)
//	result, err := handler.Handle(ctx, cmd)
func NewSyncJobCommandHandler(
	jobs ports.JobRepository,
	calendars ports.CalendarService,
	rules SyncRules,
	logger *slog.Logger,
) SyncJobCommandHandler {
	return SyncJobCommandHandler{
		jobs:      jobs,
		calendars: calendars,
		rules:     rules,
		logger:    logger.With("component", "sync_engine"),
	}
}

// Handle syncs one job. Validation and calendar failures are returned; the
// configuration and schedule no-ops are reported through SyncResult.
func (h SyncJobCommandHandler) Handle(ctx context.Context, cmd SyncJobCommand) (SyncResult, error) {
	if err := cmd.Validate(); err != nil {
		return SyncResult{}, err
	}

	record := cmd.Record()
	if record == nil {
		var err error
		if record, err = h.jobs.Get(ctx, cmd.JobID()); err != nil {
			return SyncResult{}, err
		}
	}

	result := SyncResult{JobID: record.ID.String()}

	team, calendarID, ok := h.rules.Router.Route(record.Team)
	if !ok {
		result.Outcome = SyncSkippedNoCalendar
		result.Reason = fmt.Errorf("%w: %q", errs.ErrConfigurationGap, team)
		h.logger.InfoContext(ctx, "Sync skipped", "job_id", result.JobID, "reason", result.Reason)
		return result, nil
	}
	result.CalendarID = calendarID

	schedule, err := record.Schedule()
	if errors.Is(err, errs.ErrScheduleMissing) {
		result.Outcome = SyncSkippedNoSchedule
		result.Reason = err
		h.logger.InfoContext(ctx, "Sync skipped", "job_id", result.JobID, "reason", err)
		return result, nil
	}
	if err != nil {
		return SyncResult{}, err
	}

	if maxDays := h.rules.MaxRangeDays; maxDays > 0 && schedule.Len() > maxDays {
		return SyncResult{}, errs.NewValueIsOutOfRangeError("date range days", schedule.Len(), 1, maxDays)
	}

	slot, err := h.rules.Policy.Resolve(record.TimeWindow, record.StartTime, record.EndTime)
	if err != nil {
		return SyncResult{}, err
	}

	views := record.DayViews(schedule)
	payloads := make([]calendar.Event, 0, len(views))
	for _, view := range views {
		payloads = append(payloads, h.rules.Composer.Compose(view, slot, calendarID))
	}

	for i, payload := range payloads {
		event, upsertErr := h.upsert(ctx, record, views[i].Key, schedule.IsRange, payload)
		if upsertErr != nil {
			return SyncResult{}, fmt.Errorf("sync %s: %w", views[i].Key, upsertErr)
		}
		result.Events = append(result.Events, event)
	}

	result.Outcome = SyncSynced
	result.EventID = result.Events[0].ID

	if result.EventID != record.EventID {
		if err = h.jobs.UpdateEventID(ctx, record.ID, result.EventID); err != nil {
			h.logger.WarnContext(ctx, "Event id write-back failed",
				"job_id", result.JobID, "event_id", result.EventID, "error", err)
		}
	}

	h.logger.InfoContext(ctx, "Job synced",
		"job_id", result.JobID, "team", team, "calendar_id", calendarID, "count", len(result.Events))
	return result, nil
}

// upsert updates the event already carrying key in its title or inserts a new
// one. A single-day job first tries its linked event id directly.
func (h SyncJobCommandHandler) upsert(
	ctx context.Context,
	record *job.Job,
	key string,
	isRange bool,
	payload calendar.Event,
) (*calendar.Event, error) {
	existing, err := h.findExisting(ctx, record, key, isRange, payload.CalendarID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return h.calendars.UpdateEvent(ctx, existing.ID, payload)
	}
	return h.calendars.InsertEvent(ctx, payload)
}

func (h SyncJobCommandHandler) findExisting(
	ctx context.Context,
	record *job.Job,
	key string,
	isRange bool,
	calendarID string,
) (*calendar.Event, error) {
	if !isRange && record.HasEvent() {
		linked, err := h.calendars.GetEvent(ctx, calendarID, record.EventID)
		switch {
		case err == nil && !linked.Cancelled && linked.HasKey(key):
			return linked, nil
		case err != nil && !errors.Is(err, errs.ErrObjectNotFound):
			return nil, err
		}
	}

	found, err := h.calendars.SearchEvents(ctx, calendarID, key)
	if err != nil {
		return nil, err
	}
	existing, _ := calendar.FindByKey(found, key)
	return existing, nil
}

package commands

import (
	"context"
	"errors"
	"log/slog"

	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/services"
	"fieldsync/internal/core/ports"
	"fieldsync/internal/pkg/errs"
)

// DeleteJobEventResult reports what a delete removed.
type DeleteJobEventResult struct {
	JobID   string
	Deleted []string
}

// DeleteJobEventCommandHandler deletes the job's events from its queue
// calendar and clears the event link. Events that are already gone are not an
// error. For a date range job every per-day event is removed.
type DeleteJobEventCommandHandler struct {
	jobs      ports.JobRepository
	calendars ports.CalendarService
	router    services.QueueRouter
	logger    *slog.Logger
}

func NewDeleteJobEventCommandHandler(
	jobs ports.JobRepository,
	calendars ports.CalendarService,
	router services.QueueRouter,
	logger *slog.Logger,
) DeleteJobEventCommandHandler {
	return DeleteJobEventCommandHandler{
		jobs:      jobs,
		calendars: calendars,
		router:    router,
		logger:    logger.With("component", "event_delete"),
	}
}

// Handle deletes the events. Without a configured queue calendar only the link
// is cleared.
func (h DeleteJobEventCommandHandler) Handle(
	ctx context.Context,
	cmd DeleteJobEventCommand,
) (DeleteJobEventResult, error) {
	if err := cmd.Validate(); err != nil {
		return DeleteJobEventResult{}, err
	}

	record, err := h.jobs.Get(ctx, cmd.JobID())
	if err != nil {
		return DeleteJobEventResult{}, err
	}

	result := DeleteJobEventResult{JobID: record.ID.String(), Deleted: make([]string, 0)}

	if _, calendarID, ok := h.router.Route(record.Team); ok {
		ids, collectErr := h.eventIDs(ctx, record, calendarID)
		if collectErr != nil {
			return DeleteJobEventResult{}, collectErr
		}
		for _, id := range ids {
			err = h.calendars.DeleteEvent(ctx, calendarID, id)
			if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
				return result, err
			}
			if err == nil {
				result.Deleted = append(result.Deleted, id)
			}
		}
	}

	if record.HasEvent() {
		if err = h.jobs.UpdateEventID(ctx, record.ID, ""); err != nil {
			return result, err
		}
	}

	h.logger.InfoContext(ctx, "Job events deleted", "job_id", result.JobID, "count", len(result.Deleted))
	return result, nil
}

// eventIDs lists the events owned by the job: the linked one and, for range
// jobs, every per-day event found by its key.
func (h DeleteJobEventCommandHandler) eventIDs(
	ctx context.Context,
	record *job.Job,
	calendarID string,
) ([]string, error) {
	seen := make(map[string]struct{})
	ids := make([]string, 0, 1)
	add := func(id string) {
		if _, ok := seen[id]; id != "" && !ok {
			seen[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	if record.HasEvent() {
		add(record.EventID)
	}

	schedule, err := record.Schedule()
	if err != nil || !schedule.IsRange {
		return ids, nil
	}

	for _, view := range record.DayViews(schedule) {
		found, searchErr := h.calendars.SearchEvents(ctx, calendarID, view.Key)
		if searchErr != nil {
			return nil, searchErr
		}
		if event, ok := calendar.FindByKey(found, view.Key); ok {
			add(event.ID)
		}
	}
	return ids, nil
}

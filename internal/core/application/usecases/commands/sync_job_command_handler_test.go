package commands_test

import (
	"errors"
	"testing"
	"time"

	"fieldsync/internal/core/application/usecases/commands"
	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/services"
	"fieldsync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const queueA = "queue-a@group.calendar.google.com"

func newSyncRules(maxRangeDays int) commands.SyncRules {
	return commands.SyncRules{
		Router: services.NewQueueRouter(
			services.NewTeamNormalizer([]services.TeamRule{{Canonical: "Team A", Tokens: []string{"tma"}}}),
			calendar.NewRegistry(map[string]string{"Team A": queueA}),
		),
		Policy:       services.NewSchedulePolicy(),
		Composer:     services.NewEventComposer(time.FixedZone("ICT", 7*60*60)),
		MaxRangeDays: maxRangeDays,
	}
}

func newSyncJob(t *testing.T) *job.Job {
	t.Helper()
	return &job.Job{
		ID:         mustJobID(t, "JOB-000042"),
		Team:       "Team A",
		Date:       "2025-08-01",
		TimeWindow: job.AM,
		EndTime:    "0:00",
		Status:     job.Scheduled,
		Customer:   "Acme",
	}
}

func TestSyncJobCommandHandler_Handle_Idempotent(t *testing.T) {
	ctx := t.Context()
	repo := new(MockJobRepository)
	cal := newFakeCalendarService()
	handler := commands.NewSyncJobCommandHandler(repo, cal, newSyncRules(0), discardLogger)
	record := newSyncJob(t)

	repo.On("UpdateEventID", mock.Anything, record.ID, "evt-1").Return(nil).Once()

	// Given a first sync
	cmd, err := commands.NewSyncJobCommand(record)
	require.NoError(t, err)
	first, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	// When the unchanged record is synced again with its stored link
	record.EventID = first.EventID
	cmd, err = commands.NewSyncJobCommand(record)
	require.NoError(t, err)
	second, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	// Then one event exists and the id is stable
	assert.Equal(t, commands.SyncSynced, first.Outcome)
	assert.Equal(t, first.EventID, second.EventID)
	assert.Len(t, cal.eventsIn(queueA), 1)
	assert.Equal(t, 1, cal.inserts)
	assert.Equal(t, 1, cal.updates)

	ev := cal.eventsIn(queueA)[0]
	assert.Equal(t, "JOB-000042: Acme", ev.Title)
	assert.Equal(t, 9, ev.Start.Hour())
	assert.Equal(t, 12, ev.End.Hour())
	repo.AssertExpectations(t)
}

func TestSyncJobCommandHandler_Handle_FindsUnlinkedEventByTitle(t *testing.T) {
	ctx := t.Context()
	repo := new(MockJobRepository)
	cal := newFakeCalendarService()
	existing := cal.put(queueA, calendar.Event{Title: "JOB-000042: Old name"})
	cal.put(queueA, calendar.Event{Title: "JOB-000042-2025-08-01: Other range day"})
	handler := commands.NewSyncJobCommandHandler(repo, cal, newSyncRules(0), discardLogger)

	repo.On("UpdateEventID", mock.Anything, mock.Anything, existing.ID).Return(nil).Once()

	cmd, err := commands.NewSyncJobCommand(newSyncJob(t))
	require.NoError(t, err)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, existing.ID, result.EventID)
	assert.Equal(t, 0, cal.inserts)
	assert.Len(t, cal.eventsIn(queueA), 2)
	repo.AssertExpectations(t)
}

func TestSyncJobCommandHandler_Handle_RangeExpansion(t *testing.T) {
	ctx := t.Context()
	repo := new(MockJobRepository)
	cal := newFakeCalendarService()
	handler := commands.NewSyncJobCommandHandler(repo, cal, newSyncRules(31), discardLogger)

	record := newSyncJob(t)
	record.ID = mustJobID(t, "JOB-000007")
	record.Date = ""
	record.DateType = job.DateTypeRange
	record.StartDate = "2025-08-01"
	record.EndDate = "2025-08-03"

	repo.On("UpdateEventID", mock.Anything, record.ID, "evt-1").Return(nil).Once()

	cmd, err := commands.NewSyncJobCommand(record)
	require.NoError(t, err)
	result, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)

	require.Len(t, result.Events, 3)
	events := cal.eventsIn(queueA)
	require.Len(t, events, 3)
	for i, day := range []string{"2025-08-01", "2025-08-02", "2025-08-03"} {
		assert.Equal(t, "JOB-000007-"+day+": Acme", events[i].Title)
		assert.Equal(t, day, events[i].Start.Format("2006-01-02"))
	}

	// a second run updates the three events in place
	record.EventID = result.EventID
	cmd, err = commands.NewSyncJobCommand(record)
	require.NoError(t, err)
	_, err = handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Len(t, cal.eventsIn(queueA), 3)
	assert.Equal(t, 3, cal.updates)
	repo.AssertExpectations(t)
}

func TestSyncJobCommandHandler_Handle_RangeTooLong(t *testing.T) {
	cal := newFakeCalendarService()
	handler := commands.NewSyncJobCommandHandler(new(MockJobRepository), cal, newSyncRules(2), discardLogger)

	record := newSyncJob(t)
	record.DateType = job.DateTypeRange
	record.StartDate = "2025-08-01"
	record.EndDate = "2025-08-03"

	cmd, err := commands.NewSyncJobCommand(record)
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	assert.Equal(t, 0, cal.inserts)
}

func TestSyncJobCommandHandler_Handle_NoOps(t *testing.T) {
	t.Run("no calendar for team", func(t *testing.T) {
		repo := new(MockJobRepository)
		cal := newFakeCalendarService()
		handler := commands.NewSyncJobCommandHandler(repo, cal, newSyncRules(0), discardLogger)
		record := newSyncJob(t)
		record.Team = "Team Z"

		cmd, err := commands.NewSyncJobCommand(record)
		require.NoError(t, err)
		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, result.Skipped())
		assert.Equal(t, commands.SyncSkippedNoCalendar, result.Outcome)
		assert.ErrorIs(t, result.Reason, errs.ErrConfigurationGap)
		assert.Equal(t, 0, cal.searchHits)
		repo.AssertNotCalled(t, "UpdateEventID", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no usable schedule", func(t *testing.T) {
		repo := new(MockJobRepository)
		cal := newFakeCalendarService()
		handler := commands.NewSyncJobCommandHandler(repo, cal, newSyncRules(0), discardLogger)
		record := newSyncJob(t)
		record.Date = ""
		record.DateType = job.DateTypeRange
		record.StartDate = "2025-08-03"
		record.EndDate = "2025-08-01"

		cmd, err := commands.NewSyncJobCommand(record)
		require.NoError(t, err)
		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, commands.SyncSkippedNoSchedule, result.Outcome)
		assert.ErrorIs(t, result.Reason, errs.ErrScheduleMissing)
		assert.Equal(t, 0, cal.inserts)
	})
}

func TestSyncJobCommandHandler_Handle_ValidationFailure(t *testing.T) {
	cal := newFakeCalendarService()
	handler := commands.NewSyncJobCommandHandler(new(MockJobRepository), cal, newSyncRules(0), discardLogger)
	record := newSyncJob(t)
	record.StartTime = "half past nine"

	cmd, err := commands.NewSyncJobCommand(record)
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, 0, cal.inserts)
}

func TestSyncJobCommandHandler_Handle_WriteBackFailureIsNotFatal(t *testing.T) {
	repo := new(MockJobRepository)
	cal := newFakeCalendarService()
	handler := commands.NewSyncJobCommandHandler(repo, cal, newSyncRules(0), discardLogger)

	repo.On("UpdateEventID", mock.Anything, mock.Anything, "evt-1").
		Return(errs.NewExternalCallError("jobstore", "UpdateEventID", errors.New("timeout"))).Once()

	cmd, err := commands.NewSyncJobCommand(newSyncJob(t))
	require.NoError(t, err)
	result, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "evt-1", result.EventID)
	assert.Len(t, cal.eventsIn(queueA), 1)
	repo.AssertExpectations(t)
}

func TestSyncJobCommandHandler_Handle_CalendarFailurePropagates(t *testing.T) {
	cal := newFakeCalendarService()
	cal.insertErr = errs.NewExternalCallError("calendar", "InsertEvent", errors.New("rate limited"))
	handler := commands.NewSyncJobCommandHandler(new(MockJobRepository), cal, newSyncRules(0), discardLogger)

	cmd, err := commands.NewSyncJobCommand(newSyncJob(t))
	require.NoError(t, err)
	_, err = handler.Handle(t.Context(), cmd)

	assert.ErrorIs(t, err, errs.ErrExternalCall)
}

func TestSyncJobCommandHandler_Handle_StoredJob(t *testing.T) {
	repo := new(MockJobRepository)
	cal := newFakeCalendarService()
	handler := commands.NewSyncJobCommandHandler(repo, cal, newSyncRules(0), discardLogger)
	record := newSyncJob(t)
	record.Team = "tma backup"

	repo.On("Get", mock.Anything, record.ID).Return(record, nil).Once()
	repo.On("UpdateEventID", mock.Anything, record.ID, "evt-1").Return(nil).Once()

	cmd, err := commands.NewSyncStoredJobCommand(record.ID)
	require.NoError(t, err)
	result, err := handler.Handle(t.Context(), cmd)

	require.NoError(t, err)
	assert.Equal(t, queueA, result.CalendarID)
	repo.AssertExpectations(t)
}

func TestSyncJobCommand_NotConstructed(t *testing.T) {
	handler := commands.NewSyncJobCommandHandler(new(MockJobRepository), newFakeCalendarService(), newSyncRules(0), discardLogger)

	_, err := handler.Handle(t.Context(), commands.SyncJobCommand{})

	assert.ErrorIs(t, err, commands.ErrSyncJobCommandIsNotConstructed)

	_, err = commands.NewSyncJobCommand(nil)
	assert.ErrorIs(t, err, job.ErrJobIsNil)
}

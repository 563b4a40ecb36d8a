package commands_test

import (
	"errors"
	"strings"
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

const queueB = "queue-b@group.calendar.google.com"

var detectedAt = time.Date(2025, 8, 2, 3, 0, 0, 0, time.UTC)

func newDriftSettings(t *testing.T) commands.DriftSettings {
	t.Helper()
	personal, err := calendar.NewPersonalMatcher([]string{`^tech\b`, "personal"})
	require.NoError(t, err)
	return commands.DriftSettings{
		Router: services.NewQueueRouter(
			services.NewTeamNormalizer(nil),
			calendar.NewRegistry(map[string]string{"Team A": queueA, "Team B": queueB}),
		),
		Personal: personal,
		Now:      func() time.Time { return detectedAt },
	}
}

func newDriftCalendars() *fakeCalendarService {
	return newFakeCalendarService(
		calendar.Calendar{ID: queueA, Name: "Team A queue"},
		calendar.Calendar{ID: queueB, Name: "Team B queue"},
		calendar.Calendar{ID: "tech-somchai@example.com", Name: "Tech Somchai"},
		calendar.Calendar{ID: "archive@example.com", Name: "Archive"},
	)
}

func monitoredJob(t *testing.T, id, team, eventID string) *job.Job {
	t.Helper()
	return &job.Job{ID: mustJobID(t, id), Team: team, EventID: eventID, Status: job.Scheduled}
}

func TestRunDriftScanCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cal := newDriftCalendars()
	cal.put(queueA, calendar.Event{ID: "linked", Title: "JOB-000001: Acme"})
	cal.put("tech-somchai@example.com", calendar.Event{ID: "moved", Title: "JOB-000002: Beta"})
	cal.put(queueB, calendar.Event{ID: "other-queue", Title: "JOB-000009: Not ours"})

	jobs := []*job.Job{
		monitoredJob(t, "JOB-000001", "Team A", "linked"),
		monitoredJob(t, "JOB-000002", "Team A", "moved"),
		monitoredJob(t, "JOB-000003", "Team A", "gone"),
		monitoredJob(t, "JOB-000004", "Team Z", "whatever"),
		monitoredJob(t, "JOB-000005", "Team A", "other-queue"),
		{ID: mustJobID(t, "JOB-000006"), Team: "Team A", Status: job.Scheduled},
		{ID: mustJobID(t, "JOB-000007"), Team: "Team A", EventID: "x", Status: job.Done},
	}

	repo := new(MockJobRepository)
	repo.On("GetAll", mock.Anything).Return(jobs, nil).Once()
	repo.On("UpdateStatus", mock.Anything, jobs[1].ID, job.Completed, mock.MatchedBy(func(note string) bool {
		return strings.Contains(note, "drift: moved") &&
			strings.Contains(note, `destination="Tech Somchai"`) &&
			strings.Contains(note, "personal") &&
			strings.Contains(note, "source="+queueA) &&
			strings.Contains(note, "detected_at=2025-08-02T03:00:00Z")
	})).Return(jobs[1], nil).Once()
	repo.On("UpdateStatus", mock.Anything, jobs[2].ID, job.Completed, mock.MatchedBy(func(note string) bool {
		return strings.Contains(note, "drift: disappeared") && !strings.Contains(note, "destination")
	})).Return(jobs[2], nil).Once()
	repo.On("UpdateStatus", mock.Anything, jobs[4].ID, job.Completed, mock.Anything).Return(jobs[4], nil).Once()

	handler := commands.NewRunDriftScanCommandHandler(repo, cal, newDriftSettings(t), discardLogger)

	summary, err := handler.Handle(ctx, commands.NewRunDriftScanCommand("scheduled"))

	require.NoError(t, err)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, "scheduled", summary.Trigger)
	assert.Equal(t, 5, summary.Checked)
	assert.Equal(t, 3, summary.StatusUpdated)
	assert.Equal(t, 1, summary.Moved)
	assert.Equal(t, 2, summary.Disappeared, "an event only present in another queue calendar counts as gone")
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 0, summary.Errors)
	require.Len(t, summary.Details, 5)

	assert.Equal(t, commands.DriftLinked, summary.Details[0].Outcome)
	assert.False(t, summary.Details[0].StatusChanged())

	moved := summary.Details[1]
	assert.Equal(t, commands.DriftMoved, moved.Outcome)
	assert.Equal(t, "tech-somchai@example.com", moved.FoundCalendarID)
	assert.Equal(t, "Tech Somchai", moved.FoundCalendarName)
	assert.True(t, moved.Personal)
	assert.Equal(t, job.Completed, moved.NewStatus)
	assert.Equal(t, detectedAt, moved.DetectedAt)

	assert.Equal(t, commands.DriftDisappeared, summary.Details[2].Outcome)
	assert.Equal(t, commands.DriftSkipped, summary.Details[3].Outcome)

	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, jobs[0].ID, mock.Anything, mock.Anything)
}

func TestRunDriftScanCommandHandler_Handle_FailingJobDoesNotAbortScan(t *testing.T) {
	// Given three eligible jobs where the second one fails
	cal := newDriftCalendars()
	cal.put(queueA, calendar.Event{ID: "e1", Title: "JOB-000001: A"})
	cal.put(queueA, calendar.Event{ID: "e3", Title: "JOB-000003: C"})
	cal.failGet(queueA, "e2", errs.NewExternalCallError("calendar", "GetEvent", errors.New("quota exceeded")))

	jobs := []*job.Job{
		monitoredJob(t, "JOB-000001", "Team A", "e1"),
		monitoredJob(t, "JOB-000002", "Team A", "e2"),
		monitoredJob(t, "JOB-000003", "Team A", "e3"),
	}
	repo := new(MockJobRepository)
	repo.On("GetAll", mock.Anything).Return(jobs, nil).Once()

	settings := newDriftSettings(t)
	settings.Delay = time.Millisecond
	handler := commands.NewRunDriftScanCommandHandler(repo, cal, settings, discardLogger)

	// When
	summary, err := handler.Handle(t.Context(), commands.NewRunDriftScanCommand(""))

	// Then
	require.NoError(t, err)
	assert.Equal(t, "manual", summary.Trigger)
	assert.Equal(t, 3, summary.Checked)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 0, summary.StatusUpdated)
	require.Len(t, summary.Details, 3)
	assert.Equal(t, commands.DriftLinked, summary.Details[0].Outcome)
	assert.Equal(t, commands.DriftFailed, summary.Details[1].Outcome)
	assert.Equal(t, "JOB-000002", summary.Details[1].JobID)
	assert.Contains(t, summary.Details[1].Error, "quota exceeded")
	assert.Equal(t, commands.DriftLinked, summary.Details[2].Outcome)
}

func TestRunDriftScanCommandHandler_Handle_StatusUpdateFailureIsCounted(t *testing.T) {
	cal := newDriftCalendars()
	jobs := []*job.Job{
		monitoredJob(t, "JOB-000001", "Team A", "gone-1"),
		monitoredJob(t, "JOB-000002", "Team A", "gone-2"),
	}
	repo := new(MockJobRepository)
	repo.On("GetAll", mock.Anything).Return(jobs, nil).Once()
	repo.On("UpdateStatus", mock.Anything, jobs[0].ID, job.Completed, mock.Anything).
		Return(nil, errors.New("connection reset")).Once()
	repo.On("UpdateStatus", mock.Anything, jobs[1].ID, job.Completed, mock.Anything).Return(jobs[1], nil).Once()

	handler := commands.NewRunDriftScanCommandHandler(repo, cal, newDriftSettings(t), discardLogger)

	summary, err := handler.Handle(t.Context(), commands.NewRunDriftScanCommand("manual"))

	require.NoError(t, err)
	assert.Equal(t, 2, summary.Checked)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 1, summary.StatusUpdated)
	assert.Equal(t, 1, summary.Disappeared)
	repo.AssertExpectations(t)
}

func TestRunDriftScanCommandHandler_Handle_OtherCalendarFailureIsJobError(t *testing.T) {
	cal := newDriftCalendars()
	cal.failGet("archive@example.com", "e1", errors.New("forbidden"))
	repo := new(MockJobRepository)
	repo.On("GetAll", mock.Anything).Return([]*job.Job{monitoredJob(t, "JOB-000001", "Team A", "e1")}, nil).Once()

	handler := commands.NewRunDriftScanCommandHandler(repo, cal, newDriftSettings(t), discardLogger)

	summary, err := handler.Handle(t.Context(), commands.NewRunDriftScanCommand("manual"))

	require.NoError(t, err)
	assert.Equal(t, 1, summary.Errors)
	assert.Contains(t, summary.Details[0].Error, "archive@example.com")
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRunDriftScanCommandHandler_Handle_SnapshotFailureAborts(t *testing.T) {
	repo := new(MockJobRepository)
	repo.On("GetAll", mock.Anything).Return(nil, errors.New("store offline")).Once()
	handler := commands.NewRunDriftScanCommandHandler(repo, newDriftCalendars(), newDriftSettings(t), discardLogger)

	_, err := handler.Handle(t.Context(), commands.NewRunDriftScanCommand("manual"))

	assert.EqualError(t, err, "store offline")
}

func TestRunDriftScanCommandHandler_Handle_NotConstructed(t *testing.T) {
	handler := commands.NewRunDriftScanCommandHandler(new(MockJobRepository), newDriftCalendars(), newDriftSettings(t), discardLogger)

	_, err := handler.Handle(t.Context(), commands.RunDriftScanCommand{})

	assert.ErrorIs(t, err, commands.ErrRunDriftScanCommandIsNotConstructed)
}

package commands_test

import (
	"testing"

	"fieldsync/internal/core/application/usecases/commands"
	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/core/domain/model/job"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeleteJobEventCommandHandler_Handle(t *testing.T) {
	t.Run("single day job", func(t *testing.T) {
		cal := newFakeCalendarService()
		cal.put(queueA, calendar.Event{ID: "e1", Title: "JOB-000001: Acme"})
		record := &job.Job{ID: mustJobID(t, "JOB-000001"), Team: "Team A", Date: "2025-08-01", EventID: "e1"}

		repo := new(MockJobRepository)
		repo.On("Get", mock.Anything, record.ID).Return(record, nil).Once()
		repo.On("UpdateEventID", mock.Anything, record.ID, "").Return(nil).Once()

		handler := commands.NewDeleteJobEventCommandHandler(repo, cal, newSyncRules(0).Router, discardLogger)
		cmd, err := commands.NewDeleteJobEventCommand(record.ID)
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Equal(t, []string{"e1"}, result.Deleted)
		assert.Empty(t, cal.eventsIn(queueA))
		repo.AssertExpectations(t)
	})

	t.Run("range job removes every day", func(t *testing.T) {
		cal := newFakeCalendarService()
		cal.put(queueA, calendar.Event{ID: "d1", Title: "JOB-000007-2025-08-01: Acme"})
		cal.put(queueA, calendar.Event{ID: "d2", Title: "JOB-000007-2025-08-02: Acme"})
		cal.put(queueA, calendar.Event{ID: "keep", Title: "JOB-000008: Other"})
		record := &job.Job{
			ID:        mustJobID(t, "JOB-000007"),
			Team:      "Team A",
			DateType:  job.DateTypeRange,
			StartDate: "2025-08-01",
			EndDate:   "2025-08-02",
			EventID:   "d1",
		}

		repo := new(MockJobRepository)
		repo.On("Get", mock.Anything, record.ID).Return(record, nil).Once()
		repo.On("UpdateEventID", mock.Anything, record.ID, "").Return(nil).Once()

		handler := commands.NewDeleteJobEventCommandHandler(repo, cal, newSyncRules(0).Router, discardLogger)
		cmd, err := commands.NewDeleteJobEventCommand(record.ID)
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"d1", "d2"}, result.Deleted)
		require.Len(t, cal.eventsIn(queueA), 1)
		assert.Equal(t, "keep", cal.eventsIn(queueA)[0].ID)
	})

	t.Run("event already gone", func(t *testing.T) {
		cal := newFakeCalendarService()
		record := &job.Job{ID: mustJobID(t, "JOB-000001"), Team: "Team A", EventID: "gone"}

		repo := new(MockJobRepository)
		repo.On("Get", mock.Anything, record.ID).Return(record, nil).Once()
		repo.On("UpdateEventID", mock.Anything, record.ID, "").Return(nil).Once()

		handler := commands.NewDeleteJobEventCommandHandler(repo, cal, newSyncRules(0).Router, discardLogger)
		cmd, err := commands.NewDeleteJobEventCommand(record.ID)
		require.NoError(t, err)

		result, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Empty(t, result.Deleted)
		repo.AssertExpectations(t)
	})
}

package jobs_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"fieldsync/internal/core/application/usecases/commands"
	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockColumnRepairer struct {
	mock.Mock
}

func (m *MockColumnRepairer) Handle(
	ctx context.Context,
	cmd commands.RepairJobColumnsCommand,
) (commands.ColumnRepairSummary, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ColumnRepairSummary), args.Error(1)
}

func TestJobManager_ReconciliationLifecycle(t *testing.T) {
	reconciliation := newReconciliationJob(t, &MockDriftScanner{})
	manager := jobs.NewJobManager(reconciliation, nil)

	require.NoError(t, manager.StartAll())
	assert.True(t, manager.ReconciliationStatus().Registered)

	// Starting again keeps a single registration
	require.NoError(t, manager.StartReconciliation())
	require.NoError(t, manager.StopReconciliation())
	assert.False(t, manager.ReconciliationStatus().Registered)

	// Stopping twice is harmless
	require.NoError(t, manager.StopReconciliation())

	require.NoError(t, manager.StartReconciliation())
	manager.StopAll()
	assert.False(t, manager.ReconciliationStatus().Registered)
}

func TestJobManager_RunReconciliation(t *testing.T) {
	scanner := &MockDriftScanner{}
	scanner.On("Handle", mock.Anything, mock.Anything).
		Return(commands.DriftScanSummary{RunID: "run-9", Checked: 3}, nil).Once()
	manager := jobs.NewJobManager(newReconciliationJob(t, scanner), nil)

	summary, err := manager.RunReconciliation(t.Context())

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Checked)
	assert.Equal(t, "run-9", manager.ReconciliationStatus().LastRun.RunID)
}

func TestJobManager_WithColumnRepair(t *testing.T) {
	repairer := &MockColumnRepairer{}
	columnRepair, err := jobs.NewColumnRepairJob(
		repairer,
		kernel.MustTimeOfDay(3, 0),
		time.UTC,
		slog.New(slog.DiscardHandler),
	)
	require.NoError(t, err)

	manager := jobs.NewJobManager(newReconciliationJob(t, &MockDriftScanner{}), columnRepair)
	require.NoError(t, manager.StartAll())
	manager.StopAll()

	repairer.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestColumnRepairJob_Run(t *testing.T) {
	repairer := &MockColumnRepairer{}
	repairer.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RepairJobColumnsCommand) bool {
		return !cmd.DryRun()
	})).Return(commands.ColumnRepairSummary{Checked: 5, Repaired: 1}, nil).Once()

	job, err := jobs.NewColumnRepairJob(
		repairer,
		kernel.MustTimeOfDay(3, 0),
		time.UTC,
		slog.New(slog.DiscardHandler),
	)
	require.NoError(t, err)

	job.Run(t.Context())

	repairer.AssertExpectations(t)
}

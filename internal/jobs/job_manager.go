package jobs

import (
	"context"
	"fmt"
	"sync"

	"fieldsync/internal/core/application/usecases/commands"
)

// JobManager coordinates the scheduled jobs of the service and keeps the
// reconciliation handle between start and stop requests.
type JobManager struct {
	reconciliation *ReconciliationJob
	columnRepair   *ColumnRepairJob

	mu     sync.Mutex
	handle *Handle
}

// NewJobManager creates a manager. columnRepair may be nil when the nightly
// repair is disabled.
func NewJobManager(reconciliation *ReconciliationJob, columnRepair *ColumnRepairJob) *JobManager {
	return &JobManager{
		reconciliation: reconciliation,
		columnRepair:   columnRepair,
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.StartReconciliation(); err != nil {
		return fmt.Errorf("failed to start reconciliation job: %w", err)
	}

	if jm.columnRepair != nil {
		if err := jm.columnRepair.Start(); err != nil {
			// Stop already started jobs if this one fails
			jm.reconciliation.Shutdown()
			return fmt.Errorf("failed to start column repair job: %w", err)
		}
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	if jm.columnRepair != nil {
		jm.columnRepair.Stop()
	}
	jm.reconciliation.Shutdown()

	jm.mu.Lock()
	jm.handle = nil
	jm.mu.Unlock()
}

// StartReconciliation registers the daily reconciliation run. It is idempotent.
func (jm *JobManager) StartReconciliation() error {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	h, err := jm.reconciliation.Start()
	if err != nil {
		return err
	}
	jm.handle = &h
	return nil
}

// StopReconciliation removes the daily reconciliation run. Stopping when not
// registered is a no-op.
func (jm *JobManager) StopReconciliation() error {
	jm.mu.Lock()
	defer jm.mu.Unlock()

	if jm.handle == nil {
		return nil
	}
	if err := jm.reconciliation.Stop(*jm.handle); err != nil {
		return err
	}
	jm.handle = nil
	return nil
}

// RunReconciliation runs a pass on demand.
func (jm *JobManager) RunReconciliation(ctx context.Context) (commands.DriftScanSummary, error) {
	return jm.reconciliation.RunNow(ctx)
}

// ReconciliationStatus reports the reconciliation scheduler state.
func (jm *JobManager) ReconciliationStatus() ReconciliationStatus {
	return jm.reconciliation.Status()
}

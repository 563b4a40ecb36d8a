package jobs

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"fieldsync/internal/core/application/usecases/commands"
	"fieldsync/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

const (
	TriggerScheduled = "scheduled"
	TriggerManual    = "manual"
)

var (
	// ErrRunInProgress is returned by RunNow while another pass is active.
	ErrRunInProgress = errors.New("reconciliation run already in progress")
	// ErrUnknownHandle is returned by Stop for a handle that is not the live registration.
	ErrUnknownHandle = errors.New("reconciliation handle is not registered")
)

// DriftScanner runs one drift scan pass.
type DriftScanner interface {
	Handle(ctx context.Context, cmd commands.RunDriftScanCommand) (commands.DriftScanSummary, error)
}

// Handle identifies the live schedule registration returned by Start.
type Handle struct {
	entry cron.EntryID
}

// RunReport condenses a finished pass for status reporting.
type RunReport struct {
	RunID         string    `json:"run_id"`
	Trigger       string    `json:"trigger"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Checked       int       `json:"checked"`
	StatusUpdated int       `json:"status_updated"`
	Errors        int       `json:"errors"`
	Error         string    `json:"error,omitempty"`
}

// ReconciliationStatus describes the scheduler for operators.
type ReconciliationStatus struct {
	Registered bool       `json:"registered"`
	Timezone   string     `json:"timezone"`
	FireAt     string     `json:"fire_at"`
	NextRun    string     `json:"next_run,omitempty"`
	Running    bool       `json:"running"`
	LastRun    *RunReport `json:"last_run,omitempty"`
}

// ReconciliationJob fires the drift scan once a day at a fixed time in its
// location, and on demand. Every pass, scheduled or manual, holds the same
// run lock, so passes never overlap.
type ReconciliationJob struct {
	scanner  DriftScanner
	cron     *cron.Cron
	schedule cron.Schedule
	at       kernel.TimeOfDay
	loc      *time.Location
	logger   *slog.Logger
	now      func() time.Time

	mu         sync.Mutex
	entry      cron.EntryID
	registered bool
	lastRun    *RunReport

	runLock sync.Mutex
	running atomic.Bool
}

// NewReconciliationJob creates a job firing daily at at in loc.
func NewReconciliationJob(
	scanner DriftScanner,
	at kernel.TimeOfDay,
	loc *time.Location,
	logger *slog.Logger,
) (*ReconciliationJob, error) {
	if loc == nil {
		loc = time.UTC
	}

	schedule, err := dailyAt(at)
	if err != nil {
		return nil, err
	}

	return &ReconciliationJob{
		scanner:  scanner,
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		at:       at,
		loc:      loc,
		logger:   logger.With("component", "reconciliation_job"),
		now:      time.Now,
	}, nil
}

// Start registers the daily run. Calling Start while registered returns the
// live handle instead of adding a second registration.
func (j *ReconciliationJob) Start() (Handle, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.registered {
		return Handle{entry: j.entry}, nil
	}

	j.entry = j.cron.Schedule(j.schedule, cron.FuncJob(j.fire))
	j.registered = true
	j.cron.Start()

	j.logger.InfoContext(context.Background(), "Reconciliation job started",
		"fire_at", j.at.String(),
		"timezone", j.loc.String(),
	)
	return Handle{entry: j.entry}, nil
}

// Stop removes the registration identified by h. A pass already running is
// not interrupted.
func (j *ReconciliationJob) Stop(h Handle) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.registered || h.entry != j.entry {
		return ErrUnknownHandle
	}

	j.cron.Remove(j.entry)
	j.registered = false
	j.entry = 0

	j.logger.InfoContext(context.Background(), "Reconciliation job stopped")
	return nil
}

// Shutdown stops the scheduler and waits for a scheduled pass in flight.
func (j *ReconciliationJob) Shutdown() {
	j.mu.Lock()
	if j.registered {
		j.cron.Remove(j.entry)
		j.registered = false
		j.entry = 0
	}
	j.mu.Unlock()

	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Reconciliation job shut down")
}

// RunNow runs a pass immediately. It returns ErrRunInProgress when a pass is
// already running.
func (j *ReconciliationJob) RunNow(ctx context.Context) (commands.DriftScanSummary, error) {
	return j.run(ctx, TriggerManual)
}

// Status reports the registration and the latest pass.
func (j *ReconciliationJob) Status() ReconciliationStatus {
	j.mu.Lock()
	defer j.mu.Unlock()

	status := ReconciliationStatus{
		Registered: j.registered,
		Timezone:   j.loc.String(),
		FireAt:     j.at.String(),
		Running:    j.running.Load(),
	}
	if j.registered {
		status.NextRun = describeNext(j.schedule, j.now(), j.loc)
	}
	if j.lastRun != nil {
		report := *j.lastRun
		status.LastRun = &report
	}
	return status
}

func (j *ReconciliationJob) fire() {
	ctx := context.Background()
	_, err := j.run(ctx, TriggerScheduled)
	if errors.Is(err, ErrRunInProgress) {
		j.logger.WarnContext(ctx, "Scheduled reconciliation skipped, previous run still active")
	}
}

func (j *ReconciliationJob) run(ctx context.Context, trigger string) (commands.DriftScanSummary, error) {
	if !j.runLock.TryLock() {
		return commands.DriftScanSummary{}, ErrRunInProgress
	}
	defer j.runLock.Unlock()

	j.running.Store(true)
	defer j.running.Store(false)

	summary, err := j.scanner.Handle(ctx, commands.NewRunDriftScanCommand(trigger))

	report := &RunReport{
		RunID:         summary.RunID,
		Trigger:       trigger,
		StartedAt:     summary.StartedAt,
		FinishedAt:    summary.FinishedAt,
		Checked:       summary.Checked,
		StatusUpdated: summary.StatusUpdated,
		Errors:        summary.Errors,
	}
	if err != nil {
		report.Error = err.Error()
		j.logger.ErrorContext(ctx, "Reconciliation run failed", "trigger", trigger, "error", err)
	}

	j.mu.Lock()
	j.lastRun = report
	j.mu.Unlock()

	return summary, err
}

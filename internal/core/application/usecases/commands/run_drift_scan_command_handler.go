package commands

import (
	"context"
	"log/slog"
	"time"

	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/core/domain/services"
	"fieldsync/internal/core/ports"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// DriftScanSummary is the machine-readable result of a drift scan. It is
// returned whatever happened to individual jobs.
type DriftScanSummary struct {
	RunID      string
	Trigger    string
	StartedAt  time.Time
	FinishedAt time.Time
	// Checked counts the monitored jobs the scan inspected, including
	// skipped and failed ones.
	Checked       int
	StatusUpdated int
	Moved         int
	Disappeared   int
	Skipped       int
	Errors        int
	Details       []DriftDetail
}

// DriftSettings configures drift detection.
type DriftSettings struct {
	Router   services.QueueRouter
	Personal *calendar.PersonalMatcher
	// Delay is the pause between two jobs of a batch; zero disables it.
	Delay time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

func (s DriftSettings) inspector(jobs ports.JobRepository, calendars ports.CalendarService) driftInspector {
	now := s.Now
	if now == nil {
		now = time.Now
	}
	return driftInspector{
		jobs:      jobs,
		calendars: calendars,
		router:    s.Router,
		personal:  s.Personal,
		now:       now,
	}
}

// RunDriftScanCommandHandler scans every monitored job for drift.
//
// The job store snapshot is read once at run start and processed strictly in
// order, one job at a time, with a fixed delay between jobs to stay within the
// calendar service quota. A failing job is counted and recorded in the details;
// only a failure to read the snapshot aborts the run.
type RunDriftScanCommandHandler struct {
	jobs      ports.JobRepository
	inspector driftInspector
	delay     time.Duration
	logger    *slog.Logger
}

// NewRunDriftScanCommandHandler creates the drift detector.
//
// Parameters:
//   - jobs: the job store; its snapshot is taken once per scan
//   - calendars: searched when a linked event is missing from its queue calendar
//   - settings: queue router, personal calendar matcher and the delay between jobs
//   - logger: scoped with component "drift_detector"
func NewRunDriftScanCommandHandler(
	jobs ports.JobRepository,
	calendars ports.CalendarService,
	settings DriftSettings,
	logger *slog.Logger,
) RunDriftScanCommandHandler {
	return RunDriftScanCommandHandler{
		jobs:      jobs,
		inspector: settings.inspector(jobs, calendars),
		delay:     settings.Delay,
		logger:    logger.With("component", "drift_detector"),
	}
}

// Handle runs one scan. The error is non-nil only when the snapshot cannot be
// read or ctx ends mid-run; in the latter case the partial summary is returned
// with it.
func (h RunDriftScanCommandHandler) Handle(ctx context.Context, cmd RunDriftScanCommand) (DriftScanSummary, error) {
	if err := cmd.Validate(); err != nil {
		return DriftScanSummary{}, err
	}

	summary := DriftScanSummary{
		RunID:     uuid.NewString(),
		Trigger:   cmd.Trigger(),
		StartedAt: h.inspector.now().UTC(),
		Details:   make([]DriftDetail, 0),
	}
	logger := h.logger.With("run_id", summary.RunID)

	snapshot, err := h.jobs.GetAll(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Drift scan aborted: job store read failed", "error", err)
		return DriftScanSummary{}, err
	}

	limiter := newPacer(h.delay)
	for _, j := range snapshot {
		if !j.IsDriftEligible() {
			continue
		}
		if err = limiter.Wait(ctx); err != nil {
			summary.FinishedAt = h.inspector.now().UTC()
			return summary, err
		}

		summary.Checked++
		detail, inspectErr := h.inspector.inspect(ctx, j)
		if inspectErr != nil {
			detail.Outcome = DriftFailed
			detail.Error = inspectErr.Error()
			summary.Errors++
			logger.WarnContext(ctx, "Drift check failed", "job_id", detail.JobID, "error", inspectErr)
		}

		switch detail.Outcome {
		case DriftMoved:
			summary.Moved++
		case DriftDisappeared:
			summary.Disappeared++
		case DriftSkipped:
			summary.Skipped++
		}
		if detail.Outcome != DriftFailed && detail.StatusChanged() {
			summary.StatusUpdated++
		}
		summary.Details = append(summary.Details, detail)
	}

	summary.FinishedAt = h.inspector.now().UTC()
	logger.InfoContext(ctx, "Drift scan finished",
		"trigger", summary.Trigger,
		"checked", summary.Checked,
		"status_updated", summary.StatusUpdated,
		"moved", summary.Moved,
		"disappeared", summary.Disappeared,
		"skipped", summary.Skipped,
		"errors", summary.Errors,
	)
	return summary, nil
}

// newPacer returns a limiter letting one job through immediately and then one
// per delay.
func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

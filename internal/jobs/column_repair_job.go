package jobs

import (
	"context"
	"log/slog"
	"time"

	"fieldsync/internal/core/application/usecases/commands"
	"fieldsync/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// ColumnRepairer runs one column repair pass.
type ColumnRepairer interface {
	Handle(ctx context.Context, cmd commands.RepairJobColumnsCommand) (commands.ColumnRepairSummary, error)
}

// ColumnRepairJob runs the zone/status swap repair once a day.
type ColumnRepairJob struct {
	repairer ColumnRepairer
	cron     *cron.Cron
	schedule cron.Schedule
	logger   *slog.Logger
}

// NewColumnRepairJob creates a job firing daily at at in loc.
func NewColumnRepairJob(
	repairer ColumnRepairer,
	at kernel.TimeOfDay,
	loc *time.Location,
	logger *slog.Logger,
) (*ColumnRepairJob, error) {
	if loc == nil {
		loc = time.UTC
	}

	schedule, err := dailyAt(at)
	if err != nil {
		return nil, err
	}

	return &ColumnRepairJob{
		repairer: repairer,
		cron:     cron.New(cron.WithLocation(loc)),
		schedule: schedule,
		logger:   logger.With("component", "column_repair_job"),
	}, nil
}

// Start registers the daily repair pass.
func (j *ColumnRepairJob) Start() error {
	j.cron.Schedule(j.schedule, cron.FuncJob(func() {
		j.Run(context.Background())
	}))
	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Column repair job started")
	return nil
}

// Run executes one repair pass and logs its outcome.
func (j *ColumnRepairJob) Run(ctx context.Context) {
	summary, err := j.repairer.Handle(ctx, commands.NewRepairJobColumnsCommand(false))
	if err != nil {
		j.logger.ErrorContext(ctx, "Column repair failed", "error", err)
		return
	}
	j.logger.InfoContext(ctx, "Column repair finished",
		"count", summary.Checked,
		"repaired", summary.Repaired,
		"errors", summary.Errors,
	)
}

// Stop stops the column repair job and waits for a pass in flight.
func (j *ColumnRepairJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Column repair job stopped")
}

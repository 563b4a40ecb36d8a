package commands

import (
	"context"
	"log/slog"

	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/services"
	"fieldsync/internal/core/ports"
)

// ColumnRepairDetail records one swapped (or, on a dry run, swappable) record.
type ColumnRepairDetail struct {
	JobID     string
	OldZone   string
	OldStatus string
	NewZone   string
	NewStatus string
	Error     string
}

// ColumnRepairSummary is the result of a column repair pass.
type ColumnRepairSummary struct {
	DryRun   bool
	Checked  int
	Repaired int
	Errors   int
	Details  []ColumnRepairDetail
}

// RepairJobColumnsCommandHandler swaps zone and status values stored in each
// other's column, record by record, through the same store write path as every
// other patch. A failing record is counted and the pass continues.
type RepairJobColumnsCommandHandler struct {
	jobs     ports.JobRepository
	detector services.ColumnSwapDetector
	logger   *slog.Logger
}

func NewRepairJobColumnsCommandHandler(
	jobs ports.JobRepository,
	detector services.ColumnSwapDetector,
	logger *slog.Logger,
) RepairJobColumnsCommandHandler {
	return RepairJobColumnsCommandHandler{
		jobs:     jobs,
		detector: detector,
		logger:   logger.With("component", "column_repair"),
	}
}

// Handle runs one repair pass. Only the initial read can fail the whole pass.
func (h RepairJobColumnsCommandHandler) Handle(
	ctx context.Context,
	cmd RepairJobColumnsCommand,
) (ColumnRepairSummary, error) {
	if err := cmd.Validate(); err != nil {
		return ColumnRepairSummary{}, err
	}

	records, err := h.jobs.GetAll(ctx)
	if err != nil {
		return ColumnRepairSummary{}, err
	}

	summary := ColumnRepairSummary{
		DryRun:  cmd.DryRun(),
		Details: make([]ColumnRepairDetail, 0),
	}
	for _, j := range records {
		summary.Checked++

		fields, ok := h.detector.Detect(j)
		if !ok {
			continue
		}

		detail := ColumnRepairDetail{
			JobID:     j.ID.String(),
			OldZone:   j.Zone,
			OldStatus: j.Status.String(),
			NewZone:   fields[job.FieldZone],
			NewStatus: fields[job.FieldStatus],
		}

		if !cmd.DryRun() {
			if err = h.jobs.UpdateFields(ctx, j.ID, fields); err != nil {
				detail.Error = err.Error()
				summary.Errors++
				h.logger.WarnContext(ctx, "Column repair failed", "job_id", detail.JobID, "error", err)
				summary.Details = append(summary.Details, detail)
				continue
			}
		}

		summary.Repaired++
		summary.Details = append(summary.Details, detail)
	}

	h.logger.InfoContext(ctx, "Column repair finished",
		"dry_run", summary.DryRun, "checked", summary.Checked, "repaired", summary.Repaired, "errors", summary.Errors)
	return summary, nil
}

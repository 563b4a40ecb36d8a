package queries

import (
	"context"
	"time"

	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GetMonitoredJobsQueryHandler reads drift-eligible jobs directly from the
// jobs table, bypassing the domain repository.
type GetMonitoredJobsQueryHandler struct {
	db *gorm.DB
}

// NewGetMonitoredJobsQueryHandler creates a handler over a GORM connection.
func NewGetMonitoredJobsQueryHandler(db *gorm.DB) GetMonitoredJobsQueryHandler {
	return GetMonitoredJobsQueryHandler{db: db}
}

// Handle returns monitored jobs newest first. Rows with a malformed job id are
// skipped, matching what a drift scan would see.
func (h GetMonitoredJobsQueryHandler) Handle(
	ctx context.Context,
	query GetMonitoredJobsQuery,
) ([]GetMonitoredJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	monitored := make([]GetMonitoredJobsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			job_id,
			team,
			status,
			event_id,
			date,
			updated_at
		FROM jobs
		WHERE status NOT IN ?
			AND TRIM(event_id) <> ''
			AND TRIM(team) <> ''
		ORDER BY created_at DESC, job_id DESC
	`, terminalStatuses()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rawID, team, status, eventID, date string
			updatedAt                          time.Time
		)

		err = rows.Scan(&rawID, &team, &status, &eventID, &date, &updatedAt)
		if err != nil {
			return nil, err
		}

		id, idErr := kernel.ParseJobID(rawID)
		if idErr != nil {
			continue
		}

		monitored = append(monitored, GetMonitoredJobsQueryResponse{
			ID:        id,
			Team:      team,
			Status:    job.Status(status),
			EventID:   eventID,
			Date:      date,
			UpdatedAt: updatedAt,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return monitored, nil
}

func terminalStatuses() []string {
	terminal := make([]string, 0, 4)
	for _, s := range job.AllStatuses() {
		if s.IsTerminal() {
			terminal = append(terminal, s.String())
		}
	}
	return terminal
}

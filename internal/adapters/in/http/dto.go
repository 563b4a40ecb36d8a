package http

import (
	"errors"
	"net/http"
	"time"

	"fieldsync/internal/core/application/usecases/commands"
	"fieldsync/internal/pkg/errs"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type SyncResponse struct {
	JobID      string   `json:"job_id"`
	Outcome    string   `json:"outcome"`
	Reason     string   `json:"reason,omitempty"`
	CalendarID string   `json:"calendar_id,omitempty"`
	EventID    string   `json:"event_id,omitempty"`
	EventIDs   []string `json:"event_ids"`
}

// CreateJobResponse is returned whenever the job was stored. SyncError carries
// a sync that failed after storing; the job can be synced again by id.
type CreateJobResponse struct {
	JobID     string        `json:"job_id"`
	Status    string        `json:"status"`
	Sync      *SyncResponse `json:"sync,omitempty"`
	SyncError *Error        `json:"sync_error,omitempty"`
}

type DeleteJobEventResponse struct {
	JobID   string   `json:"job_id"`
	Deleted []string `json:"deleted"`
}

type DriftDetailResponse struct {
	JobID             string     `json:"job_id"`
	EventID           string     `json:"event_id,omitempty"`
	Outcome           string     `json:"outcome"`
	QueueCalendarID   string     `json:"queue_calendar_id,omitempty"`
	FoundCalendarID   string     `json:"found_calendar_id,omitempty"`
	FoundCalendarName string     `json:"found_calendar_name,omitempty"`
	Personal          bool       `json:"personal"`
	PreviousStatus    string     `json:"previous_status,omitempty"`
	NewStatus         string     `json:"new_status,omitempty"`
	DetectedAt        *time.Time `json:"detected_at,omitempty"`
	Error             string     `json:"error,omitempty"`
}

type DriftScanResponse struct {
	RunID         string                `json:"run_id"`
	Trigger       string                `json:"trigger"`
	StartedAt     time.Time             `json:"started_at"`
	FinishedAt    time.Time             `json:"finished_at"`
	Checked       int                   `json:"checked"`
	StatusUpdated int                   `json:"status_updated"`
	Moved         int                   `json:"moved"`
	Disappeared   int                   `json:"disappeared"`
	Skipped       int                   `json:"skipped"`
	Errors        int                   `json:"errors"`
	Details       []DriftDetailResponse `json:"details"`
}

type ResyncDetailResponse struct {
	JobID   string `json:"job_id"`
	Outcome string `json:"outcome,omitempty"`
	EventID string `json:"event_id,omitempty"`
	Events  int    `json:"events"`
	Reason  string `json:"reason,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ResyncResponse struct {
	RunID   string                 `json:"run_id"`
	Checked int                    `json:"checked"`
	Synced  int                    `json:"synced"`
	Skipped int                    `json:"skipped"`
	Errors  int                    `json:"errors"`
	Details []ResyncDetailResponse `json:"details"`
}

type ColumnRepairDetailResponse struct {
	JobID     string `json:"job_id"`
	OldZone   string `json:"old_zone"`
	OldStatus string `json:"old_status"`
	NewZone   string `json:"new_zone"`
	NewStatus string `json:"new_status"`
	Error     string `json:"error,omitempty"`
}

type ColumnRepairResponse struct {
	DryRun   bool                         `json:"dry_run"`
	Checked  int                          `json:"checked"`
	Repaired int                          `json:"repaired"`
	Errors   int                          `json:"errors"`
	Details  []ColumnRepairDetailResponse `json:"details"`
}

func toSyncResponse(r commands.SyncResult) SyncResponse {
	response := SyncResponse{
		JobID:      r.JobID,
		Outcome:    string(r.Outcome),
		CalendarID: r.CalendarID,
		EventID:    r.EventID,
		EventIDs:   make([]string, 0, len(r.Events)),
	}
	if r.Reason != nil {
		response.Reason = r.Reason.Error()
	}
	for _, e := range r.Events {
		response.EventIDs = append(response.EventIDs, e.ID)
	}
	return response
}

func toDriftDetailResponse(d commands.DriftDetail) DriftDetailResponse {
	response := DriftDetailResponse{
		JobID:             d.JobID,
		EventID:           d.EventID,
		Outcome:           string(d.Outcome),
		QueueCalendarID:   d.QueueCalendarID,
		FoundCalendarID:   d.FoundCalendarID,
		FoundCalendarName: d.FoundCalendarName,
		Personal:          d.Personal,
		PreviousStatus:    string(d.PreviousStatus),
		NewStatus:         string(d.NewStatus),
		Error:             d.Error,
	}
	if !d.DetectedAt.IsZero() {
		detected := d.DetectedAt
		response.DetectedAt = &detected
	}
	return response
}

func toDriftScanResponse(s commands.DriftScanSummary) DriftScanResponse {
	response := DriftScanResponse{
		RunID:         s.RunID,
		Trigger:       s.Trigger,
		StartedAt:     s.StartedAt,
		FinishedAt:    s.FinishedAt,
		Checked:       s.Checked,
		StatusUpdated: s.StatusUpdated,
		Moved:         s.Moved,
		Disappeared:   s.Disappeared,
		Skipped:       s.Skipped,
		Errors:        s.Errors,
		Details:       make([]DriftDetailResponse, 0, len(s.Details)),
	}
	for _, d := range s.Details {
		response.Details = append(response.Details, toDriftDetailResponse(d))
	}
	return response
}

func toResyncResponse(s commands.ResyncSummary) ResyncResponse {
	response := ResyncResponse{
		RunID:   s.RunID,
		Checked: s.Checked,
		Synced:  s.Synced,
		Skipped: s.Skipped,
		Errors:  s.Errors,
		Details: make([]ResyncDetailResponse, 0, len(s.Details)),
	}
	for _, d := range s.Details {
		response.Details = append(response.Details, ResyncDetailResponse{
			JobID:   d.JobID,
			Outcome: string(d.Outcome),
			EventID: d.EventID,
			Events:  d.Events,
			Reason:  d.Reason,
			Error:   d.Error,
		})
	}
	return response
}

func toColumnRepairResponse(s commands.ColumnRepairSummary) ColumnRepairResponse {
	response := ColumnRepairResponse{
		DryRun:   s.DryRun,
		Checked:  s.Checked,
		Repaired: s.Repaired,
		Errors:   s.Errors,
		Details:  make([]ColumnRepairDetailResponse, 0, len(s.Details)),
	}
	for _, d := range s.Details {
		response.Details = append(response.Details, ColumnRepairDetailResponse(d))
	}
	return response
}

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrExternalCall):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

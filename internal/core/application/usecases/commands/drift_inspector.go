package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/services"
	"fieldsync/internal/core/ports"
	"fieldsync/internal/pkg/errs"
)

// DriftOutcome is the state a monitored job was found in.
type DriftOutcome string

const (
	// DriftLinked means the event still lives in the queue calendar.
	DriftLinked DriftOutcome = "linked"
	// DriftMoved means the event was found in another calendar.
	DriftMoved DriftOutcome = "moved"
	// DriftDisappeared means the event was found nowhere.
	DriftDisappeared DriftOutcome = "disappeared"
	// DriftSkipped means no queue calendar is configured for the job's team.
	DriftSkipped DriftOutcome = "skipped"
	// DriftIneligible means the job is not monitored: terminal, unlinked or teamless.
	DriftIneligible DriftOutcome = "ineligible"
	// DriftFailed means a collaborator failed while the job was inspected.
	DriftFailed DriftOutcome = "error"
)

// DriftDetail is the audit record of one inspected job.
type DriftDetail struct {
	JobID             string
	EventID           string
	Outcome           DriftOutcome
	QueueCalendarID   string
	FoundCalendarID   string
	FoundCalendarName string
	Personal          bool
	PreviousStatus    job.Status
	NewStatus         job.Status
	DetectedAt        time.Time
	Error             string
}

// StatusChanged reports whether the inspection rewrote the job status.
func (d DriftDetail) StatusChanged() bool {
	return d.NewStatus != "" && d.NewStatus != d.PreviousStatus
}

// driftInspector runs the per-job drift state machine shared by the batch scan
// and the single-job check.
type driftInspector struct {
	jobs      ports.JobRepository
	calendars ports.CalendarService
	router    services.QueueRouter
	personal  *calendar.PersonalMatcher
	now       func() time.Time
}

// inspect classifies an eligible job and, when its event left the queue
// calendar, rewrites the status to the completion sentinel. Moved and
// disappeared events converge on the same transition because a technician
// handling a job and someone deleting its event cannot be told apart.
func (d driftInspector) inspect(ctx context.Context, j *job.Job) (DriftDetail, error) {
	detail := DriftDetail{
		JobID:          j.ID.String(),
		EventID:        j.EventID,
		PreviousStatus: j.Status,
	}

	_, queueID, ok := d.router.Route(j.Team)
	if !ok {
		detail.Outcome = DriftSkipped
		return detail, nil
	}
	detail.QueueCalendarID = queueID

	found, err := d.lookup(ctx, queueID, j.EventID)
	if err != nil {
		return detail, err
	}
	if found {
		detail.Outcome = DriftLinked
		return detail, nil
	}

	moved, err := d.searchElsewhere(ctx, j.EventID)
	if err != nil {
		return detail, err
	}

	detail.DetectedAt = d.now().UTC()
	detail.Outcome = DriftDisappeared
	if moved != nil {
		detail.Outcome = DriftMoved
		detail.FoundCalendarID = moved.ID
		detail.FoundCalendarName = moved.Name
		detail.Personal = d.personal.IsPersonal(moved.Name)
	}

	status, err := j.Status.Complete()
	if err != nil {
		return detail, err
	}
	if _, err = d.jobs.UpdateStatus(ctx, j.ID, status, provenance(detail)); err != nil {
		return detail, err
	}
	detail.NewStatus = status
	return detail, nil
}

// lookup reports whether the event is live in calendarID.
func (d driftInspector) lookup(ctx context.Context, calendarID, eventID string) (bool, error) {
	event, err := d.calendars.GetEvent(ctx, calendarID, eventID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !event.Cancelled, nil
}

// searchElsewhere looks the event up in every reachable calendar that is not a
// queue calendar. The first hit wins; enumeration order is the service's.
func (d driftInspector) searchElsewhere(ctx context.Context, eventID string) (*calendar.Calendar, error) {
	calendars, err := d.calendars.ListCalendars(ctx)
	if err != nil {
		return nil, err
	}

	for i := range calendars {
		c := calendars[i]
		if d.router.IsQueue(c.ID) {
			continue
		}
		found, lookupErr := d.lookup(ctx, c.ID, eventID)
		if lookupErr != nil {
			return nil, fmt.Errorf("calendar %s: %w", c.ID, lookupErr)
		}
		if found {
			return &c, nil
		}
	}
	return nil, nil
}

// provenance renders the status note recorded with a drift transition.
func provenance(d DriftDetail) string {
	var b strings.Builder
	b.WriteString("drift: ")
	b.WriteString(string(d.Outcome))
	b.WriteString("; source=")
	b.WriteString(d.QueueCalendarID)
	if d.Outcome == DriftMoved {
		fmt.Fprintf(&b, "; destination=%q (%s)", d.FoundCalendarName, d.FoundCalendarID)
		if d.Personal {
			b.WriteString("; personal")
		}
	}
	b.WriteString("; detected_at=")
	b.WriteString(d.DetectedAt.Format(time.RFC3339))
	return b.String()
}

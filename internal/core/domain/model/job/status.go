package job

import (
	"fmt"
	"strings"

	"fieldsync/internal/pkg/errs"
)

// Status is the lifecycle state of a job as stored in the job store.
//
// State overview:
//
//	New ──> Need Info ──> Ready to schedule ──> Scheduled ──┬──> In progress ──> Done ──> Closed
//	                                              ▲         │
//	                                              └─ Rescheduled
//	any non-terminal ──> Cancelled
//	any non-terminal ──> Completed   (drift detection: event moved or removed)
//
// The store holds free text, so Status is a string type; Validate tells known
// values from foreign ones.
type Status string

const (
	New             Status = "New"
	NeedInfo        Status = "Need Info"
	ReadyToSchedule Status = "Ready to schedule"
	Scheduled       Status = "Scheduled"
	Rescheduled     Status = "Rescheduled"
	Cancelled       Status = "Cancelled"
	InProgress      Status = "In progress"
	Done            Status = "Done"
	Closed          Status = "Closed"

	// Completed is the completion sentinel: the job is no longer tracked as
	// pending because its calendar event left the queue calendar.
	Completed Status = "Completed"
)

// AllStatuses returns every known status in lifecycle order.
func AllStatuses() []Status {
	return []Status{
		New, NeedInfo, ReadyToSchedule, Scheduled, Rescheduled,
		Cancelled, InProgress, Done, Closed, Completed,
	}
}

// ParseStatus matches raw against the known statuses, ignoring case and
// surrounding whitespace.
func ParseStatus(raw string) (Status, error) {
	s := strings.TrimSpace(raw)
	for _, known := range AllStatuses() {
		if strings.EqualFold(s, string(known)) {
			return known, nil
		}
	}
	return "", errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", raw))
}

// Validate checks that s is one of the known statuses.
func (s Status) Validate() error {
	_, err := ParseStatus(string(s))
	return err
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the job is finished and no longer monitored.
func (s Status) IsTerminal() bool {
	switch s {
	case Cancelled, Done, Closed, Completed:
		return true
	default:
		return false
	}
}

// IsCalendarBound reports whether the job is expected to have live events.
func (s Status) IsCalendarBound() bool {
	return s == Scheduled || s == Rescheduled
}

// Complete transitions to the completion sentinel.
//
// Valid from any non-terminal status, including statuses the store holds that are
// not in the known set. Terminal statuses are rejected so a finished job is never
// reopened and re-closed.
func (s Status) Complete() (Status, error) {
	if s.IsTerminal() {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is terminal and cannot be completed", s),
		)
	}
	return Completed, nil
}

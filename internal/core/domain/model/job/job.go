package job

import (
	"strings"
	"time"

	"fieldsync/internal/core/domain/model/kernel"
)

// DateTypeRange marks a job that spans StartDate..EndDate.
const DateTypeRange = "range"

// Job is a job record as held by the job store. The reconciliation engine reads it
// and patches individual fields; it never rewrites the whole record.
//
// Scheduling fields are kept as the raw text of the store cells. Schedule and
// the schedule policy interpret them, so a malformed cell surfaces as a
// validation failure at sync time instead of being lost at load time.
type Job struct {
	ID   kernel.JobID
	Team string
	Zone string

	// Date is the day of a single-day job.
	Date string
	// DateType is DateTypeRange for multi-day jobs, empty otherwise.
	DateType  string
	StartDate string
	EndDate   string

	TimeWindow TimeWindow
	StartTime  string
	EndTime    string

	Status     Status
	StatusNote string

	// EventID links the job to its calendar event. Empty means "no linked event".
	EventID string

	Customer    string
	ContactName string
	Phone       string
	Address     string
	Type        string
	Details     string
	Notes       string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate checks the invariants the store guarantees for every record.
func (j *Job) Validate() error {
	if j == nil {
		return ErrJobIsNil
	}
	return j.ID.Validate()
}

// HasEvent reports whether the job links to a calendar event.
func (j *Job) HasEvent() bool {
	return strings.TrimSpace(j.EventID) != ""
}

// IsDriftEligible reports whether drift detection monitors the job: it must be
// non-terminal, linked to an event and assigned to a team.
func (j *Job) IsDriftEligible() bool {
	return !j.Status.IsTerminal() && j.HasEvent() && strings.TrimSpace(j.Team) != ""
}

// IsRange reports whether the record is flagged as a date-range job.
func (j *Job) IsRange() bool {
	return strings.EqualFold(strings.TrimSpace(j.DateType), DateTypeRange)
}

// DisplayName is the name shown in event titles: the customer, falling back to
// the contact name.
func (j *Job) DisplayName() string {
	if c := strings.TrimSpace(j.Customer); c != "" {
		return c
	}
	return strings.TrimSpace(j.ContactName)
}

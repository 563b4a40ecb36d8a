package job

import (
	"fmt"
	"strings"
	"time"

	"fieldsync/internal/pkg/errs"
)

var dateLayouts = []string{"2006-01-02", "2006/01/02", "02/01/2006"}

// Schedule is the inclusive span of calendar days a job occupies. Days are
// represented as midnight UTC; the calendar location is applied when events are
// composed.
type Schedule struct {
	First   time.Time
	Last    time.Time
	IsRange bool
}

// DayView is one scheduled day of a job. Key is the job id for single-day jobs
// and "{job_id}-{YYYY-MM-DD}" for each day of a range job; it only makes event
// titles unique and never names a separate job record.
type DayView struct {
	Key string
	Day time.Time
	Job *Job
}

// ParseDate reads a store date cell. ISO dates, ISO timestamps (the date part is
// used), "YYYY/MM/DD" and "DD/MM/YYYY" are accepted.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, errs.NewValueIsRequiredError("date")
	}
	if len(s) > 10 && (s[10] == 'T' || s[10] == ' ') {
		s = s[:10]
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, errs.NewValueIsInvalidErrorWithCause("date", fmt.Errorf("%q is not a date", raw))
}

// Schedule resolves the days the job occupies.
//
// A valid range pair (DateType "range", both dates parseable, end not before
// start) wins. Otherwise the single Date is used. With neither, the result wraps
// errs.ErrScheduleMissing. A present but unparseable single Date is a validation
// failure.
func (j *Job) Schedule() (Schedule, error) {
	if j.IsRange() {
		first, errFirst := ParseDate(j.StartDate)
		last, errLast := ParseDate(j.EndDate)
		if errFirst == nil && errLast == nil && !last.Before(first) {
			return Schedule{First: first, Last: last, IsRange: true}, nil
		}
	}

	if strings.TrimSpace(j.Date) == "" {
		return Schedule{}, fmt.Errorf("%w: %s", errs.ErrScheduleMissing, j.ID)
	}

	day, err := ParseDate(j.Date)
	if err != nil {
		return Schedule{}, err
	}
	return Schedule{First: day, Last: day}, nil
}

// Len returns the number of days in the schedule.
func (s Schedule) Len() int {
	return int(s.Last.Sub(s.First).Hours()/24) + 1
}

// Days lists every day from First to Last inclusive.
func (s Schedule) Days() []time.Time {
	days := make([]time.Time, 0, s.Len())
	for d := s.First; !d.After(s.Last); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// DayViews expands the job over schedule, one view per day.
//
// Example:
//
//	s, _ := j.Schedule() // range 2025-08-01..2025-08-03
//	for _, v := range j.DayViews(s) {
//	    fmt.Println(v.Key) // JOB-000007-2025-08-01, -02, -03
//	}
func (j *Job) DayViews(s Schedule) []DayView {
	days := s.Days()
	views := make([]DayView, 0, len(days))
	for _, day := range days {
		key := j.ID.String()
		if s.IsRange {
			key = fmt.Sprintf("%s-%s", j.ID, day.Format("2006-01-02"))
		}
		views = append(views, DayView{Key: key, Day: day, Job: j})
	}
	return views
}

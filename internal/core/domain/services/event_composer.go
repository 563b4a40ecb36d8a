package services

import (
	"strings"
	"time"

	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/core/domain/model/job"
)

// EventReminders are the fixed reminder offsets of every job event.
var EventReminders = []time.Duration{60 * time.Minute, 15 * time.Minute}

// EventComposer builds the calendar event payload of a job day.
//
// The title is "{key}: {customer-or-contact-name}". The description is a plain
// text block of the job's descriptive fields, copied verbatim. Timed events are
// anchored in the composer's location; all-day events span the day with an
// exclusive end on the following day.
type EventComposer struct {
	loc *time.Location
}

// NewEventComposer creates a composer for the calendar service's time zone.
// A nil location means UTC.
func NewEventComposer(loc *time.Location) EventComposer {
	if loc == nil {
		loc = time.UTC
	}
	return EventComposer{loc: loc}
}

// Location returns the composer's time zone.
func (c EventComposer) Location() *time.Location {
	return c.loc
}

// Compose builds the event for view in calendarID using slot.
//
// Parameters:
//   - view: one scheduled day of the job, with its per-day title key
//   - slot: the resolved times from SchedulePolicy.Resolve
//   - calendarID: the queue calendar the event is written to
//
// Returns:
//   - calendar.Event: an unsaved payload; ID is empty
//
// Example:
//
//	composer := services.NewEventComposer(bangkok)
//	event := composer.Compose(view, slot, "team-a@group.calendar.google.com")
//	fmt.Println(event.Title) // JOB-000042: Acme
func (c EventComposer) Compose(view job.DayView, slot TimeSlot, calendarID string) calendar.Event {
	j := view.Job
	ev := calendar.Event{
		CalendarID:  calendarID,
		Title:       calendar.TitleFor(view.Key, j.DisplayName()),
		Description: c.body(j),
		Reminders:   append([]time.Duration(nil), EventReminders...),
	}

	if slot.AllDay {
		y, m, d := view.Day.Date()
		ev.AllDay = true
		ev.Start = time.Date(y, m, d, 0, 0, 0, 0, c.loc)
		ev.End = ev.Start.AddDate(0, 0, 1)
		return ev
	}

	ev.Start = slot.Start.On(view.Day, c.loc)
	ev.End = slot.End.On(view.Day, c.loc)
	return ev
}

func (c EventComposer) body(j *job.Job) string {
	lines := []struct{ label, value string }{
		{"Type", j.Type},
		{"Customer", j.DisplayName()},
		{"Phone", j.Phone},
		{"Address", j.Address},
		{"Status", j.Status.String()},
		{"Time window", j.TimeWindow.String()},
		{"Details", j.Details},
		{"Notes", j.Notes},
	}

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.label)
		b.WriteString(": ")
		b.WriteString(l.value)
	}
	return b.String()
}

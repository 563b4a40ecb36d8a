package calendar

import (
	"strings"
	"time"
)

// Event is a calendar event. For all-day events Start is the first day at
// midnight and End is the exclusive day after the last day.
type Event struct {
	ID          string
	CalendarID  string
	Title       string
	Description string
	AllDay      bool
	Start       time.Time
	End         time.Time
	Reminders   []time.Duration

	// Cancelled is set for events the service still returns after deletion.
	Cancelled bool
}

// TitleFor builds the title of the event for key.
func TitleFor(key, name string) string {
	return key + ": " + name
}

// HasKey reports whether the event title starts with key followed by the title
// separator, so "JOB-000001" does not match "JOB-000001-2025-08-01: ...".
func (e *Event) HasKey(key string) bool {
	return strings.HasPrefix(e.Title, key+":")
}

// FindByKey returns the first event carrying key in its title.
func FindByKey(events []*Event, key string) (*Event, bool) {
	for _, e := range events {
		if e != nil && !e.Cancelled && e.HasKey(key) {
			return e, true
		}
	}
	return nil, false
}

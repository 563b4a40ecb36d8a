package googlecalendar

import (
	"time"

	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/pkg/errs"

	gcal "google.golang.org/api/calendar/v3"
)

const (
	dateLayout      = "2006-01-02"
	statusCancelled = "cancelled"
	reminderPopup   = "popup"
)

func (c *Client) toRemote(event calendar.Event) *gcal.Event {
	remote := &gcal.Event{
		Summary:     event.Title,
		Description: event.Description,
		Reminders: &gcal.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	for _, before := range event.Reminders {
		remote.Reminders.Overrides = append(remote.Reminders.Overrides, &gcal.EventReminder{
			Method:  reminderPopup,
			Minutes: int64(before / time.Minute),
		})
	}

	if event.AllDay {
		remote.Start = &gcal.EventDateTime{Date: event.Start.In(c.loc).Format(dateLayout)}
		remote.End = &gcal.EventDateTime{Date: event.End.In(c.loc).Format(dateLayout)}
		return remote
	}

	zone := c.loc.String()
	remote.Start = &gcal.EventDateTime{DateTime: event.Start.In(c.loc).Format(time.RFC3339), TimeZone: zone}
	remote.End = &gcal.EventDateTime{DateTime: event.End.In(c.loc).Format(time.RFC3339), TimeZone: zone}
	return remote
}

func (c *Client) fromRemote(calendarID string, remote *gcal.Event) (*calendar.Event, error) {
	event := &calendar.Event{
		ID:          remote.Id,
		CalendarID:  calendarID,
		Title:       remote.Summary,
		Description: remote.Description,
		Cancelled:   remote.Status == statusCancelled,
	}

	if remote.Reminders != nil {
		for _, r := range remote.Reminders.Overrides {
			event.Reminders = append(event.Reminders, time.Duration(r.Minutes)*time.Minute)
		}
	}

	var err error
	if remote.Start != nil && remote.Start.Date != "" {
		event.AllDay = true
	}
	if event.Start, err = c.parseBoundary(remote.Start); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("event.start", err)
	}
	if event.End, err = c.parseBoundary(remote.End); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("event.end", err)
	}
	return event, nil
}

// parseBoundary reads either form of an event boundary. Cancelled instances
// may come back without one.
func (c *Client) parseBoundary(edt *gcal.EventDateTime) (time.Time, error) {
	switch {
	case edt == nil:
		return time.Time{}, nil
	case edt.Date != "":
		return time.ParseInLocation(dateLayout, edt.Date, c.loc)
	case edt.DateTime != "":
		t, err := time.Parse(time.RFC3339, edt.DateTime)
		if err != nil {
			return time.Time{}, err
		}
		return t.In(c.loc), nil
	default:
		return time.Time{}, nil
	}
}

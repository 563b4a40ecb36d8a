// Package googlecalendar implements ports.CalendarService on the Google
// Calendar API v3.
package googlecalendar

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"fieldsync/internal/core/domain/model/calendar"
	"fieldsync/internal/pkg/errs"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const serviceName = "google_calendar"

// Client talks to Google Calendar. The API session is created on first use
// and reused for the lifetime of the client.
type Client struct {
	opts []option.ClientOption
	loc  *time.Location

	mu  sync.Mutex
	svc *gcal.Service
}

// NewClient creates a client that renders and parses times in loc. opts are
// passed to the API session, e.g. option.WithCredentialsFile.
func NewClient(loc *time.Location, opts ...option.ClientOption) *Client {
	if loc == nil {
		loc = time.UTC
	}
	return &Client{opts: opts, loc: loc}
}

func (c *Client) service(ctx context.Context) (*gcal.Service, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.svc != nil {
		return c.svc, nil
	}

	svc, err := gcal.NewService(context.WithoutCancel(ctx), c.opts...)
	if err != nil {
		return nil, errs.NewExternalCallError(serviceName, "connect", err)
	}
	c.svc = svc
	return svc, nil
}

// ListCalendars pages through the calendar list of the service identity.
func (c *Client) ListCalendars(ctx context.Context) ([]calendar.Calendar, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	var calendars []calendar.Calendar
	err = svc.CalendarList.List().Pages(ctx, func(page *gcal.CalendarList) error {
		for _, entry := range page.Items {
			calendars = append(calendars, calendar.Calendar{ID: entry.Id, Name: entry.Summary})
		}
		return nil
	})
	if err != nil {
		return nil, mapError("list_calendars", "", err)
	}
	return calendars, nil
}

// GetEvent fetches an event. Cancelled events are reported as not found.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	remote, err := svc.Events.Get(calendarID, eventID).Context(ctx).Do()
	if err != nil {
		return nil, mapError("get_event", eventID, err)
	}

	event, err := c.fromRemote(calendarID, remote)
	if err != nil {
		return nil, err
	}
	if event.Cancelled {
		return nil, errs.NewObjectNotFoundError("event", eventID)
	}
	return event, nil
}

// InsertEvent creates event in event.CalendarID.
func (c *Client) InsertEvent(ctx context.Context, event calendar.Event) (*calendar.Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	remote, err := svc.Events.Insert(event.CalendarID, c.toRemote(event)).Context(ctx).Do()
	if err != nil {
		return nil, mapError("insert_event", "", err)
	}
	return c.fromRemote(event.CalendarID, remote)
}

// UpdateEvent replaces eventID in event.CalendarID.
func (c *Client) UpdateEvent(ctx context.Context, eventID string, event calendar.Event) (*calendar.Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	remote, err := svc.Events.Update(event.CalendarID, eventID, c.toRemote(event)).Context(ctx).Do()
	if err != nil {
		return nil, mapError("update_event", eventID, err)
	}
	return c.fromRemote(event.CalendarID, remote)
}

// DeleteEvent removes an event. Deleting an already deleted event reports not found.
func (c *Client) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	svc, err := c.service(ctx)
	if err != nil {
		return err
	}

	if err = svc.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return mapError("delete_event", eventID, err)
	}
	return nil
}

// SearchEvents runs a free-text query over single event instances. Cancelled
// events are left out.
func (c *Client) SearchEvents(ctx context.Context, calendarID, query string) ([]*calendar.Event, error) {
	svc, err := c.service(ctx)
	if err != nil {
		return nil, err
	}

	var events []*calendar.Event
	call := svc.Events.List(calendarID).Q(query).SingleEvents(true).ShowDeleted(false)
	err = call.Pages(ctx, func(page *gcal.Events) error {
		for _, remote := range page.Items {
			event, convErr := c.fromRemote(calendarID, remote)
			if convErr != nil {
				return convErr
			}
			if !event.Cancelled {
				events = append(events, event)
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrValueIsInvalid) {
			return nil, err
		}
		return nil, mapError("search_events", "", err)
	}
	return events, nil
}

// mapError turns API failures into the domain error taxonomy: 404 and 410
// mean the event is gone, everything else is an external call failure.
func mapError(operation, eventID string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && eventID != "" &&
		(apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
		return errs.NewObjectNotFoundErrorWithCause("event", eventID, err)
	}
	return errs.NewExternalCallError(serviceName, operation, err)
}

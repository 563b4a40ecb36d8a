package ports

import (
	"context"

	"fieldsync/internal/core/domain/model/calendar"
)

// CalendarService is the calendar contract consumed by the reconciliation engine.
//
// Lookups of events that do not exist, or that the service only returns as
// cancelled, fail with *errs.ObjectNotFoundError. Transport, auth and quota
// failures are *errs.ExternalCallError.
type CalendarService interface {
	// ListCalendars enumerates every calendar reachable by the service identity.
	// The order is the service's and is not guaranteed to be stable.
	ListCalendars(ctx context.Context) ([]calendar.Calendar, error)

	// GetEvent fetches an event by id within a calendar.
	GetEvent(ctx context.Context, calendarID, eventID string) (*calendar.Event, error)

	// InsertEvent creates event in event.CalendarID and returns it with its
	// service-assigned id.
	InsertEvent(ctx context.Context, event calendar.Event) (*calendar.Event, error)

	// UpdateEvent replaces the event identified by eventID.
	UpdateEvent(ctx context.Context, eventID string, event calendar.Event) (*calendar.Event, error)

	// DeleteEvent removes an event.
	DeleteEvent(ctx context.Context, calendarID, eventID string) error

	// SearchEvents runs a free-text query inside a calendar.
	SearchEvents(ctx context.Context, calendarID, query string) ([]*calendar.Event, error)
}

// Package calendar provides the calendar-side model of the reconciliation engine.
//
// The package includes:
//   - Event: a calendar event payload or a stored event, identified by an opaque id
//   - Calendar: a calendar reachable by the service identity
//   - Registry: the static team -> queue calendar mapping
//   - PersonalMatcher: the configurable name patterns that flag personal calendars
//
// Event titles start with "{key}: " where key is a job id or a per-day derived id.
// That prefix is the only link between an event and its job.
package calendar

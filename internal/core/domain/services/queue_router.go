package services

import "fieldsync/internal/core/domain/model/calendar"

// QueueRouter resolves the queue calendar of a team cell: the cell is first
// repaired to a canonical team name, then looked up in the registry.
type QueueRouter struct {
	teams    TeamNormalizer
	registry *calendar.Registry
}

// NewQueueRouter combines a normalizer with the team to calendar registry.
//
// Example:
//
//	router := services.NewQueueRouter(normalizer, calendar.NewRegistry(map[string]string{
//	    "Team A": "team-a@group.calendar.google.com",
//	}))
//	team, calendarID, ok := router.Route("teama")
//	// team == "Team A", ok == true
func NewQueueRouter(teams TeamNormalizer, registry *calendar.Registry) QueueRouter {
	if registry == nil {
		registry = calendar.NewRegistry(nil)
	}
	return QueueRouter{teams: teams, registry: registry}
}

// Route returns the canonical team and its queue calendar id. ok is false when
// no calendar is configured for the team.
func (r QueueRouter) Route(team string) (canonical string, calendarID string, ok bool) {
	canonical = r.teams.Normalize(team)
	if canonical == "" {
		return "", "", false
	}
	calendarID, ok = r.registry.QueueCalendar(canonical)
	return canonical, calendarID, ok
}

// IsQueue reports whether calendarID is the queue calendar of any team.
func (r QueueRouter) IsQueue(calendarID string) bool {
	return r.registry.IsQueue(calendarID)
}

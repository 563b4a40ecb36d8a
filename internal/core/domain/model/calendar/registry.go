package calendar

import (
	"fmt"
	"regexp"
	"strings"
)

// Calendar is a calendar reachable by the service identity.
type Calendar struct {
	ID   string
	Name string
}

// Registry maps canonical team names to their queue calendars.
type Registry struct {
	byTeam map[string]string
	queues map[string]struct{}
}

// NewRegistry builds a registry from a team -> calendar id mapping. Team names
// are matched case-insensitively; empty ids are ignored.
func NewRegistry(teamCalendars map[string]string) *Registry {
	r := &Registry{
		byTeam: make(map[string]string, len(teamCalendars)),
		queues: make(map[string]struct{}, len(teamCalendars)),
	}
	for team, id := range teamCalendars {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		r.byTeam[teamKey(team)] = id
		r.queues[id] = struct{}{}
	}
	return r
}

// QueueCalendar returns the queue calendar of a canonical team name.
func (r *Registry) QueueCalendar(team string) (string, bool) {
	id, ok := r.byTeam[teamKey(team)]
	return id, ok
}

// IsQueue reports whether id is any team's queue calendar.
func (r *Registry) IsQueue(id string) bool {
	_, ok := r.queues[id]
	return ok
}

func teamKey(team string) string {
	return strings.ToLower(strings.TrimSpace(team))
}

// PersonalMatcher flags personal calendars by display name.
type PersonalMatcher struct {
	patterns []*regexp.Regexp
}

// NewPersonalMatcher compiles patterns as case-insensitive regular expressions.
// A plain word such as "personal" therefore matches as a substring.
func NewPersonalMatcher(patterns []string) (*PersonalMatcher, error) {
	m := &PersonalMatcher{}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("personal calendar pattern %q: %w", p, err)
		}
		m.patterns = append(m.patterns, re)
	}
	return m, nil
}

// IsPersonal reports whether the calendar name matches any pattern.
func (m *PersonalMatcher) IsPersonal(name string) bool {
	if m == nil {
		return false
	}
	for _, re := range m.patterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

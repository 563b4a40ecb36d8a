package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"fieldsync/internal/core/domain/services"

	"gopkg.in/yaml.v3"
)

// Rules holds the heuristic rule sets that adapt the service to one
// deployment's data: team calendars and their historical spellings, personal
// calendar name patterns, and the place names used by column repair.
//
//	teams:
//	  - name: Team A
//	    calendar_id: team-a@group.calendar.google.com
//	    aliases: ["teama", "ทีม a"]
//	personal_calendar_patterns: ["personal", "^tech "]
//	place_names: ["Bangkok", "Nonthaburi"]
type Rules struct {
	Teams                    []TeamConfig `yaml:"teams"`
	PersonalCalendarPatterns []string     `yaml:"personal_calendar_patterns"`
	PlaceNames               []string     `yaml:"place_names"`
	// StatusLiterals overrides the status values recognized in the zone
	// column. Empty means every known status.
	StatusLiterals []string `yaml:"status_literals"`
}

type TeamConfig struct {
	Name       string   `yaml:"name"`
	CalendarID string   `yaml:"calendar_id"`
	Aliases    []string `yaml:"aliases"`
}

// LoadRules reads and validates a rules file.
func LoadRules(path string) (Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("read rules file: %w", err)
	}
	return ParseRules(raw)
}

// ParseRules decodes and validates YAML rules.
func ParseRules(raw []byte) (Rules, error) {
	var rules Rules
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return Rules{}, fmt.Errorf("parse rules: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return Rules{}, err
	}
	return rules, nil
}

// Validate requires a name and a calendar id per team, with unique names.
func (r Rules) Validate() error {
	var problems []error
	seen := make(map[string]struct{}, len(r.Teams))
	for i, t := range r.Teams {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			problems = append(problems, fmt.Errorf("teams[%d]: name is required", i))
			continue
		}
		if strings.TrimSpace(t.CalendarID) == "" {
			problems = append(problems, fmt.Errorf("team %q: calendar_id is required", name))
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			problems = append(problems, fmt.Errorf("team %q is defined twice", name))
		}
		seen[key] = struct{}{}
	}
	return errors.Join(problems...)
}

// TeamRules converts the team list into normalizer rules.
func (r Rules) TeamRules() []services.TeamRule {
	out := make([]services.TeamRule, 0, len(r.Teams))
	for _, t := range r.Teams {
		out = append(out, services.TeamRule{Canonical: t.Name, Tokens: t.Aliases})
	}
	return out
}

// TeamCalendars returns the canonical team -> queue calendar mapping.
func (r Rules) TeamCalendars() map[string]string {
	out := make(map[string]string, len(r.Teams))
	for _, t := range r.Teams {
		out[t.Name] = t.CalendarID
	}
	return out
}

package services

import "strings"

// TeamRule maps every team cell containing one of Tokens to Canonical. The
// canonical name itself is always an implicit token.
type TeamRule struct {
	Canonical string
	Tokens    []string
}

// TeamNormalizer repairs historical or corrupted team names by substring match.
type TeamNormalizer struct {
	entries []teamToken
}

type teamToken struct {
	token     string
	canonical string
}

// NewTeamNormalizer builds a normalizer from rules. Matching is case-insensitive
// and collapses inner whitespace; the longest matching token wins so that
// overlapping names such as "team a" and "team ab" resolve deterministically.
//
// Example:
//
//	n := services.NewTeamNormalizer([]services.TeamRule{
//	    {Canonical: "Team A", Tokens: []string{"teama", "ทีม a"}},
//	})
//	fmt.Println(n.Normalize("  TEAMA (old) ")) // Team A
func NewTeamNormalizer(rules []TeamRule) TeamNormalizer {
	var entries []teamToken
	for _, r := range rules {
		canonical := strings.TrimSpace(r.Canonical)
		if canonical == "" {
			continue
		}
		for _, tok := range append([]string{canonical}, r.Tokens...) {
			if key := foldTeam(tok); key != "" {
				entries = append(entries, teamToken{token: key, canonical: canonical})
			}
		}
	}
	return TeamNormalizer{entries: entries}
}

// Normalize returns the canonical name for raw, or raw trimmed when no rule
// applies.
func (n TeamNormalizer) Normalize(raw string) string {
	folded := foldTeam(raw)
	if folded == "" {
		return ""
	}

	best := teamToken{}
	for _, e := range n.entries {
		if e.token == folded {
			return e.canonical
		}
		if strings.Contains(folded, e.token) && len(e.token) > len(best.token) {
			best = e
		}
	}
	if best.canonical != "" {
		return best.canonical
	}
	return strings.TrimSpace(raw)
}

func foldTeam(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

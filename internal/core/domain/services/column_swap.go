package services

import (
	"strings"

	"fieldsync/internal/core/domain/model/job"
)

// ColumnSwapDetector detects a zone and a status stored in each other's column:
// a status literal in the zone field, or a place name in the status field.
//
// A swap is proposed only when it cannot make things worse:
//   - the status field must not already hold a status literal
//   - the zone field must not already hold a place name
//   - the status written by the swap must be a known status literal
//   - the zone written by the swap must not be empty
//
// A place name in the status field is therefore repaired only when the zone
// field holds the status it lost.
type ColumnSwapDetector struct {
	statuses map[string]string
	places   map[string]struct{}
}

// NewColumnSwapDetector builds a detector from status literals and place names.
// An empty status list means job.AllStatuses.
func NewColumnSwapDetector(statusLiterals, placeNames []string) ColumnSwapDetector {
	if len(statusLiterals) == 0 {
		for _, s := range job.AllStatuses() {
			statusLiterals = append(statusLiterals, s.String())
		}
	}

	d := ColumnSwapDetector{
		statuses: make(map[string]string, len(statusLiterals)),
		places:   make(map[string]struct{}, len(placeNames)),
	}
	for _, s := range statusLiterals {
		if key := foldCell(s); key != "" {
			d.statuses[key] = strings.TrimSpace(s)
		}
	}
	for _, p := range placeNames {
		if key := foldCell(p); key != "" {
			d.places[key] = struct{}{}
		}
	}
	return d
}

// Detect returns the patch that swaps zone and status back, if j needs one.
//
// Example:
//
//	j := &job.Job{Zone: "Scheduled", Status: "กรุงเทพ"}
//	fields, ok := detector.Detect(j)
//	// ok == true, fields == {zone: "กรุงเทพ", status: "Scheduled"}
func (d ColumnSwapDetector) Detect(j *job.Job) (job.Fields, bool) {
	zone := foldCell(j.Zone)
	status := foldCell(string(j.Status))

	statusLiteral, zoneIsStatus := d.statuses[zone]
	_, statusIsStatus := d.statuses[status]
	_, statusIsPlace := d.places[status]
	_, zoneIsPlace := d.places[zone]

	if !(zoneIsStatus || statusIsPlace) || statusIsStatus || zoneIsPlace {
		return nil, false
	}
	if !zoneIsStatus || status == "" {
		return nil, false
	}

	return job.Fields{
		job.FieldZone:   strings.TrimSpace(string(j.Status)),
		job.FieldStatus: statusLiteral,
	}, true
}

func foldCell(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

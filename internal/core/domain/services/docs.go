// Package services provides the domain services of the reconciliation engine:
// pure logic that turns job records into calendar events and repairs the data
// quality problems of the job store. None of them perform I/O.
//
// The package includes:
//   - SchedulePolicy: resolves the start/end times of a job day, including the
//     end-time repair policy for corrupted "00:00" end times
//   - EventComposer: builds the calendar event payload of a job day
//   - TeamNormalizer: maps historical or corrupted team names to canonical ones
//   - ColumnSwapDetector: detects zone/status values stored in each other's column
//
// The heuristic rule sets (team aliases, place names) are injected at
// construction and come from configuration.
package services

// Package job provides the job record of the field-service domain: the row the job
// store owns and the reconciliation engine reads and patches.
//
// The package includes:
//   - Job: a job record with its scheduling and descriptive fields
//   - Status: the job lifecycle with its terminal and calendar-bound subsets and
//     the completion sentinel written by drift detection
//   - Schedule and DayView: the calendar days a job occupies, one view per day
//     for date-range jobs
//   - TimeWindow: the AM / PM / All Day booking window
//   - Fields: a whitelisted partial patch of a job record
//
// Key business rules:
//   - A job id is assigned once and never changes
//   - A Scheduled or Rescheduled job has one live event per scheduled day
//   - A non-empty EventID refers to an event whose title starts with the job id
//   - A range job expands to every calendar day from start to end inclusive
package job

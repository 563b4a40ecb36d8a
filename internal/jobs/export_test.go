package jobs

import "time"

// SetClock replaces the clock used for next-run descriptions.
func (j *ReconciliationJob) SetClock(now func() time.Time) {
	j.now = now
}

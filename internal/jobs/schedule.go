package jobs

import (
	"fmt"
	"time"

	"fieldsync/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

const nextRunLayout = "Mon, 02 Jan 2006 15:04 MST"

// dailyAt parses the five-field cron expression firing once a day at the given time.
func dailyAt(at kernel.TimeOfDay) (cron.Schedule, error) {
	expr := fmt.Sprintf("%d %d * * *", at.Minute(), at.Hour())
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", expr, err)
	}
	return schedule, nil
}

func describeNext(schedule cron.Schedule, now time.Time, loc *time.Location) string {
	return schedule.Next(now.In(loc)).Format(nextRunLayout)
}

package services

import (
	"errors"
	"fmt"

	"fieldsync/internal/core/domain/model/job"
	"fieldsync/internal/core/domain/model/kernel"
	"fieldsync/internal/pkg/errs"
)

// TimeSlot is the resolved time span of one job day.
type TimeSlot struct {
	Start  kernel.TimeOfDay
	End    kernel.TimeOfDay
	AllDay bool
}

// SchedulePolicy resolves the times of a job day from its window and its loosely
// formatted start/end cells.
//
// Rules, in order:
//   - "All Day" jobs become date-only events and ignore the time cells
//   - an end time of 00:00 is treated as corrupted: the window's slot replaces
//     both times; without a window, a known start keeps its value and the end is
//     derived by the afternoon heuristic, otherwise the default slot is used
//   - missing times are filled from the window, else from the default slot and
//     the afternoon heuristic (start >= 13:00 ends 17:00, else 12:00)
//   - a slot whose end is not after its start is a validation failure
type SchedulePolicy struct {
	windows        map[job.TimeWindow]TimeSlot
	defaultSlot    TimeSlot
	afternoonStart kernel.TimeOfDay
	morningEnd     kernel.TimeOfDay
	afternoonEnd   kernel.TimeOfDay
}

// NewSchedulePolicy returns the policy with the standard window table:
// AM 09:00-12:00, PM 13:00-17:00, All Day 08:00-18:00, default 09:00-17:00.
//
// Example:
//
//	policy := services.NewSchedulePolicy()
//	slot, err := policy.Resolve(job.PM, "14:00", "")
//	// slot.Start == 14:00, slot.End == 17:00
func NewSchedulePolicy() SchedulePolicy {
	return SchedulePolicy{
		windows: map[job.TimeWindow]TimeSlot{
			job.AM:     {Start: kernel.MustTimeOfDay(9, 0), End: kernel.MustTimeOfDay(12, 0)},
			job.PM:     {Start: kernel.MustTimeOfDay(13, 0), End: kernel.MustTimeOfDay(17, 0)},
			job.AllDay: {Start: kernel.MustTimeOfDay(8, 0), End: kernel.MustTimeOfDay(18, 0), AllDay: true},
		},
		defaultSlot:    TimeSlot{Start: kernel.MustTimeOfDay(9, 0), End: kernel.MustTimeOfDay(17, 0)},
		afternoonStart: kernel.MustTimeOfDay(13, 0),
		morningEnd:     kernel.MustTimeOfDay(12, 0),
		afternoonEnd:   kernel.MustTimeOfDay(17, 0),
	}
}

// Resolve computes the slot of a job day. Unparseable time cells and slots that
// stay inverted after repair return *errs.ValueIsInvalidError.
//
// Parameters:
//   - window: the job's time window; "" when none was recorded
//   - rawStart: the start_time cell, in any shape NormalizeTimeOfDay accepts
//   - rawEnd: the end_time cell, same shapes
//
// Returns:
//   - TimeSlot: the start and end of the event, or an all-day slot
//   - error: ValueIsInvalid naming start_time, end_time or time slot
//
// Example:
//
//	slot, _ := policy.Resolve(job.AM, "", "0:00")
//	fmt.Println(slot.Start, slot.End) // 09:00 12:00
func (p SchedulePolicy) Resolve(window job.TimeWindow, rawStart, rawEnd string) (TimeSlot, error) {
	if window == job.AllDay {
		return p.windows[job.AllDay], nil
	}

	start, hasStart, err := optionalTime("start_time", rawStart)
	if err != nil {
		return TimeSlot{}, err
	}
	end, hasEnd, err := optionalTime("end_time", rawEnd)
	if err != nil {
		return TimeSlot{}, err
	}

	windowSlot, hasWindow := p.windows[window]

	var slot TimeSlot
	switch {
	case hasEnd && end.IsMidnight():
		slot = p.repairMidnightEnd(windowSlot, hasWindow, start, hasStart)
	case hasStart && hasEnd:
		slot = TimeSlot{Start: start, End: end}
	case hasStart:
		slot = TimeSlot{Start: start, End: p.endFor(start, windowSlot, hasWindow)}
	case hasEnd:
		slot = TimeSlot{Start: p.startFor(windowSlot, hasWindow), End: end}
	case hasWindow:
		slot = windowSlot
	default:
		slot = p.defaultSlot
	}

	if !slot.Start.Before(slot.End) {
		return TimeSlot{}, errs.NewValueIsInvalidErrorWithCause(
			"time slot",
			fmt.Errorf("end %s is not after start %s", slot.End, slot.Start),
		)
	}
	return slot, nil
}

func (p SchedulePolicy) repairMidnightEnd(
	windowSlot TimeSlot,
	hasWindow bool,
	start kernel.TimeOfDay,
	hasStart bool,
) TimeSlot {
	if hasWindow {
		return windowSlot
	}
	if hasStart {
		return TimeSlot{Start: start, End: p.afternoonHeuristic(start)}
	}
	return p.defaultSlot
}

func (p SchedulePolicy) endFor(start kernel.TimeOfDay, windowSlot TimeSlot, hasWindow bool) kernel.TimeOfDay {
	if hasWindow && start.Before(windowSlot.End) {
		return windowSlot.End
	}
	return p.afternoonHeuristic(start)
}

func (p SchedulePolicy) startFor(windowSlot TimeSlot, hasWindow bool) kernel.TimeOfDay {
	if hasWindow {
		return windowSlot.Start
	}
	return p.defaultSlot.Start
}

func (p SchedulePolicy) afternoonHeuristic(start kernel.TimeOfDay) kernel.TimeOfDay {
	if start.Before(p.afternoonStart) {
		return p.morningEnd
	}
	return p.afternoonEnd
}

func optionalTime(param, raw string) (kernel.TimeOfDay, bool, error) {
	t, err := kernel.NormalizeTimeOfDay(raw)
	if err == nil {
		return t, true, nil
	}
	if errors.Is(err, errs.ErrValueIsRequired) {
		return kernel.TimeOfDay{}, false, nil
	}
	return kernel.TimeOfDay{}, false, errs.NewValueIsInvalidErrorWithCause(param, err)
}

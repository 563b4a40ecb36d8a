package kernel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fieldsync/internal/pkg/errs"
)

// ErrTimeOfDayIsNotConstructed indicates a zero-value TimeOfDay.
var ErrTimeOfDayIsNotConstructed = errs.NewValueIsRequiredError("TimeOfDay must be created via NewTimeOfDay or NormalizeTimeOfDay")

// TimeOfDay is a wall-clock time with minute precision, rendered as "HH:MM".
// It carries no date and no location; On anchors it to a calendar day.
type TimeOfDay struct {
	minutes       int
	isConstructed bool
}

// Midnight is 00:00. An end time equal to Midnight is treated as a corrupted cell
// by the schedule policy.
var Midnight = TimeOfDay{minutes: 0, isConstructed: true}

// NewTimeOfDay creates a TimeOfDay from an hour and a minute.
//
// Parameters:
//   - hour: 0 through 23
//   - minute: 0 through 59
//
// Returns:
//   - TimeOfDay: a valid wall-clock time
//   - error: *errs.ValueIsOutOfRangeError naming the offending part
//
// Example:
//
//	t, err := kernel.NewTimeOfDay(13, 30)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(t) // 13:30
func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("hour", hour, 0, 23)
	}
	if minute < 0 || minute > 59 {
		return TimeOfDay{}, errs.NewValueIsOutOfRangeError("minute", minute, 0, 59)
	}

	return TimeOfDay{minutes: hour*60 + minute, isConstructed: true}, nil
}

// MustTimeOfDay is NewTimeOfDay for constant tables; it panics on invalid input.
func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// NormalizeTimeOfDay turns a loosely formatted time cell into a TimeOfDay.
//
// Accepted shapes:
//   - "H:MM", "HH:MM", "H:M" and "HH:MM:SS" (seconds are dropped)
//   - bare hour digits: "7", "17"
//   - compact three or four digit forms: "900", "0930", "1700"
//
// Anything else, including out-of-range hours or minutes, yields a
// *errs.ValueIsInvalidError. An empty cell yields *errs.ValueIsRequiredError so
// callers can tell "missing" from "unparseable".
//
// Parameters:
//   - raw: the cell as typed, surrounding whitespace ignored
//
// Returns:
//   - TimeOfDay: the normalized time
//   - error: ValueIsRequired for an empty cell, ValueIsInvalid otherwise
//
// Example:
//
//	t, _ := kernel.NormalizeTimeOfDay("9:0")
//	fmt.Println(t) // 09:00
func NormalizeTimeOfDay(raw string) (TimeOfDay, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return TimeOfDay{}, errs.NewValueIsRequiredError("time")
	}

	hour, minute, ok := splitTimeCell(s)
	if !ok {
		return TimeOfDay{}, invalidTime(raw, nil)
	}

	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		return TimeOfDay{}, invalidTime(raw, err)
	}
	return t, nil
}

func splitTimeCell(s string) (int, int, bool) {
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) != 2 && len(parts) != 3 {
			return 0, 0, false
		}
		for _, p := range parts {
			if len(p) < 1 || len(p) > 2 || !isDigits(p) {
				return 0, 0, false
			}
		}
		if len(parts) == 3 {
			if sec, _ := strconv.Atoi(parts[2]); sec > 59 {
				return 0, 0, false
			}
		}
		h, _ := strconv.Atoi(parts[0])
		m, _ := strconv.Atoi(parts[1])
		return h, m, true
	}

	if !isDigits(s) {
		return 0, 0, false
	}

	switch len(s) {
	case 1, 2:
		h, _ := strconv.Atoi(s)
		return h, 0, true
	case 3:
		h, _ := strconv.Atoi(s[:1])
		m, _ := strconv.Atoi(s[1:])
		return h, m, true
	case 4:
		h, _ := strconv.Atoi(s[:2])
		m, _ := strconv.Atoi(s[2:])
		return h, m, true
	default:
		return 0, 0, false
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func invalidTime(raw string, cause error) error {
	if cause != nil {
		return errs.NewValueIsInvalidErrorWithCause("time", fmt.Errorf("%q is not a time of day: %w", raw, cause))
	}
	return errs.NewValueIsInvalidErrorWithCause("time", fmt.Errorf("%q is not a time of day", raw))
}

// Validate reports whether the value was properly constructed.
func (t TimeOfDay) Validate() error {
	if !t.isConstructed {
		return ErrTimeOfDayIsNotConstructed
	}
	return nil
}

func (t TimeOfDay) Hour() int {
	return t.minutes / 60
}

func (t TimeOfDay) Minute() int {
	return t.minutes % 60
}

// IsMidnight reports whether the value is 00:00.
func (t TimeOfDay) IsMidnight() bool {
	return t.isConstructed && t.minutes == 0
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.minutes < other.minutes
}

// String returns the canonical "HH:MM" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On returns the instant at which t occurs on the calendar day of date, in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, loc)
}

package job

import "strings"

// TimeWindow is the booking window of a job.
type TimeWindow string

const (
	NoWindow TimeWindow = ""
	AM       TimeWindow = "AM"
	PM       TimeWindow = "PM"
	AllDay   TimeWindow = "All Day"
)

// ParseTimeWindow maps a store cell to a window. Unknown text maps to NoWindow.
func ParseTimeWindow(raw string) TimeWindow {
	switch strings.ToLower(strings.Join(strings.Fields(raw), " ")) {
	case "am", "morning":
		return AM
	case "pm", "afternoon":
		return PM
	case "all day", "allday", "all-day", "full day":
		return AllDay
	default:
		return NoWindow
	}
}

func (w TimeWindow) String() string {
	return string(w)
}

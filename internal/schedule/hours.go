// Package schedule holds the pure calendar arithmetic: business-hours
// containment and slot-grid generation. No I/O happens here; everything is
// deterministic given its inputs.
package schedule

import (
	"strconv"
	"strings"
	"time"

	"github.com/agendo-app/agendo/internal/model"
)

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Touching boundaries do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// WithinBusinessHours reports whether the nominal window [start,end) fits
// inside the owning instance's working hours for that day. Both instants are
// converted to loc first; the weekday and the wall-clock comparison are taken
// from the converted values, never from the offset the request arrived with.
func WithinBusinessHours(start, end time.Time, hours model.BusinessHours, loc *time.Location) bool {
	localStart := start.In(loc)
	localEnd := end.In(loc)

	day := hours.Day(localStart.Weekday())
	if day == nil || !day.Enabled {
		return false
	}

	// A window that crosses local midnight cannot fit a single day schedule.
	y1, m1, d1 := localStart.Date()
	y2, m2, d2 := localEnd.Date()
	if y1 != y2 || m1 != m2 || d1 != d2 {
		return false
	}

	startHM := localStart.Format("15:04")
	endHM := localEnd.Format("15:04")
	if !validHM(day.StartTime) || !validHM(day.EndTime) {
		return false
	}
	if startHM < day.StartTime || endHM > day.EndTime {
		return false
	}

	if day.BreakStart != "" && day.BreakEnd != "" {
		if !(endHM <= day.BreakStart || startHM >= day.BreakEnd) {
			return false
		}
	}
	return true
}

func validHM(hm string) bool {
	_, _, ok := parseHM(hm)
	return ok
}

// parseHM parses an "HH:mm" wall-clock string.
func parseHM(hm string) (hour, minute int, ok bool) {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// at pins an "HH:mm" wall-clock string onto day's calendar date in day's location.
func at(day time.Time, hm string) (time.Time, bool) {
	h, m, ok := parseHM(hm)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, day.Location()), true
}

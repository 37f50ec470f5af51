package schedule

import (
	"time"

	"github.com/agendo-app/agendo/internal/model"
)

// Grid sweeps every enabled working day between rangeStart and rangeEnd and
// emits one candidate slot per (window, calendar) pair. Windows are
// durationMins long and advance by intervalMins; a window is emitted only when
// it ends on or before the period end. Days are walked in the instance
// location loc, but emitted slot times are converted back into rangeStart's
// zone so the caller's offset notation survives the round trip.
func Grid(rangeStart, rangeEnd time.Time, durationMins, intervalMins int, hours model.BusinessHours, loc *time.Location, cals []model.Calendar) []model.AvailabilitySlot {
	if durationMins <= 0 || intervalMins <= 0 || len(cals) == 0 {
		return nil
	}

	echoZone := rangeStart.Location()
	duration := time.Duration(durationMins) * time.Minute
	interval := time.Duration(intervalMins) * time.Minute

	localStart := rangeStart.In(loc)
	localEnd := rangeEnd.In(loc)
	day := time.Date(localStart.Year(), localStart.Month(), localStart.Day(), 0, 0, 0, 0, loc)

	var slots []model.AvailabilitySlot
	for ; !day.After(localEnd); day = day.AddDate(0, 0, 1) {
		sched := hours.Day(day.Weekday())
		if sched == nil || !sched.Enabled {
			continue
		}
		for _, period := range dayPeriods(day, sched) {
			for wStart := period.start; !wStart.Add(duration).After(period.end); wStart = wStart.Add(interval) {
				wEnd := wStart.Add(duration)
				for _, cal := range cals {
					slots = append(slots, model.AvailabilitySlot{
						Start:        wStart.In(echoZone),
						End:          wEnd.In(echoZone),
						CalendarID:   cal.ID,
						CalendarName: cal.Name,
						Priority:     cal.Priority,
					})
				}
			}
		}
	}
	return slots
}

type period struct {
	start time.Time
	end   time.Time
}

// dayPeriods resolves a day schedule into one sweep period, or two when a
// break splits the day (morning up to the break, afternoon after it).
// Malformed schedules resolve to no periods.
func dayPeriods(day time.Time, sched *model.DaySchedule) []period {
	dayStart, ok := at(day, sched.StartTime)
	if !ok {
		return nil
	}
	dayEnd, ok := at(day, sched.EndTime)
	if !ok || !dayEnd.After(dayStart) {
		return nil
	}

	if sched.BreakStart != "" && sched.BreakEnd != "" {
		breakStart, okS := at(day, sched.BreakStart)
		breakEnd, okE := at(day, sched.BreakEnd)
		if okS && okE && breakEnd.After(breakStart) {
			var periods []period
			if breakStart.After(dayStart) {
				periods = append(periods, period{start: dayStart, end: breakStart})
			}
			if dayEnd.After(breakEnd) {
				periods = append(periods, period{start: breakEnd, end: dayEnd})
			}
			return periods
		}
	}
	return []period{{start: dayStart, end: dayEnd}}
}

package schedule

import (
	"testing"
	"time"

	"github.com/agendo-app/agendo/internal/model"
)

func gridCalendars() []model.Calendar {
	return []model.Calendar{
		{ID: "c1", Name: "Room A", Priority: 1},
	}
}

func TestGrid_SingleDayWithBreak(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	hours := hoursMonToFri(&model.DaySchedule{
		Enabled:    true,
		StartTime:  "09:00",
		EndTime:    "14:00",
		BreakStart: "12:00",
		BreakEnd:   "13:00",
	})

	day := time.Date(2025, 8, 26, 0, 0, 0, 0, loc)
	slots := Grid(day, day.Add(23*time.Hour), 60, 60, hours, loc, gridCalendars())

	// Morning 09-12 fits 09:00 10:00 11:00; afternoon 13-14 fits 13:00.
	if len(slots) != 4 {
		t.Fatalf("expected 4 slots, got %d", len(slots))
	}
	last := slots[3]
	if last.Start.In(loc).Hour() != 13 {
		t.Fatalf("expected last slot at 13:00 local, got %s", last.Start.In(loc))
	}
}

func TestGrid_WindowMustEndInsidePeriod(t *testing.T) {
	loc := time.UTC
	hours := model.BusinessHours{
		Monday: &model.DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "10:30"},
	}

	day := time.Date(2025, 8, 25, 0, 0, 0, 0, loc) // Monday
	slots := Grid(day, day.Add(23*time.Hour), 60, 30, hours, loc, gridCalendars())

	// 09:00-10:00 and 09:30-10:30 fit; 10:00-11:00 does not.
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
}

func TestGrid_SkipsDisabledDays(t *testing.T) {
	loc := time.UTC
	hours := model.BusinessHours{
		Monday:  &model.DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "10:00"},
		Tuesday: &model.DaySchedule{Enabled: false, StartTime: "09:00", EndTime: "10:00"},
	}

	start := time.Date(2025, 8, 25, 0, 0, 0, 0, loc) // Monday
	slots := Grid(start, start.AddDate(0, 0, 2), 30, 30, hours, loc, gridCalendars())

	// Monday yields two 30-minute slots; Tuesday disabled, Wednesday missing.
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
}

func TestGrid_EmitsPerCalendar(t *testing.T) {
	loc := time.UTC
	hours := model.BusinessHours{
		Monday: &model.DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "10:00"},
	}
	cals := []model.Calendar{
		{ID: "c1", Name: "Room A", Priority: 1},
		{ID: "c2", Name: "Room B", Priority: 2},
	}

	start := time.Date(2025, 8, 25, 0, 0, 0, 0, loc)
	slots := Grid(start, start.Add(23*time.Hour), 60, 60, hours, loc, cals)
	if len(slots) != 2 {
		t.Fatalf("expected one window x two calendars = 2 slots, got %d", len(slots))
	}
	if slots[0].CalendarID == slots[1].CalendarID {
		t.Fatalf("expected distinct calendars per window")
	}
}

func TestGrid_PreservesCallerOffset(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	hours := hoursMonToFri(&model.DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "10:00"})

	// Caller asked in -03:00 offset notation.
	rangeStart, _ := time.Parse(time.RFC3339, "2025-08-26T00:00:00-03:00")
	rangeEnd, _ := time.Parse(time.RFC3339, "2025-08-26T23:00:00-03:00")

	slots := Grid(rangeStart, rangeEnd, 60, 60, hours, loc, gridCalendars())
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	_, offset := slots[0].Start.Zone()
	if offset != -3*60*60 {
		t.Fatalf("expected slot echoed in -03:00 offset, got offset %d", offset)
	}
	if !slots[0].Start.UTC().Equal(time.Date(2025, 8, 26, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 09:00 local == 12:00Z, got %s", slots[0].Start.UTC())
	}
}

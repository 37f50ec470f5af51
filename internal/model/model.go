package model

import "time"

// Service is a bookable offering. Buffers widen the conflict-check window on
// either side of the nominal appointment; they never affect business-hours
// validation.
type Service struct {
	ID           string
	Name         string
	DurationMins int
	BufferBefore int
	BufferAfter  int
	Active       bool
}

// Calendar maps an internal calendar record to its external provider calendar.
// Priority 1 is the highest; it orders calendars when ranking suggestions.
type Calendar struct {
	ID         string
	ExternalID string
	InstanceID string
	Name       string
	Priority   int
	Active     bool
}

// DaySchedule is one weekday's working window. Times are "HH:mm" wall-clock
// strings in the owning instance's timezone. Break fields are optional; when
// both are set they carve an excluded sub-interval out of the day.
type DaySchedule struct {
	Enabled    bool   `json:"enabled"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	BreakStart string `json:"break_start,omitempty"`
	BreakEnd   string `json:"break_end,omitempty"`
}

// BusinessHours is the closed set of weekday schedules. A nil entry means the
// day is fully unavailable. Keeping this a struct rather than a map makes a
// missing day an explicit nil, not a runtime lookup surprise.
type BusinessHours struct {
	Monday    *DaySchedule `json:"monday,omitempty"`
	Tuesday   *DaySchedule `json:"tuesday,omitempty"`
	Wednesday *DaySchedule `json:"wednesday,omitempty"`
	Thursday  *DaySchedule `json:"thursday,omitempty"`
	Friday    *DaySchedule `json:"friday,omitempty"`
	Saturday  *DaySchedule `json:"saturday,omitempty"`
	Sunday    *DaySchedule `json:"sunday,omitempty"`
}

// Day returns the schedule for a weekday, or nil when the day is not configured.
func (h BusinessHours) Day(d time.Weekday) *DaySchedule {
	switch d {
	case time.Monday:
		return h.Monday
	case time.Tuesday:
		return h.Tuesday
	case time.Wednesday:
		return h.Wednesday
	case time.Thursday:
		return h.Thursday
	case time.Friday:
		return h.Friday
	case time.Saturday:
		return h.Saturday
	case time.Sunday:
		return h.Sunday
	}
	return nil
}

// Instance is the owning entity for a set of calendars. Its timezone is
// authoritative for interpreting business hours, regardless of the offset a
// request arrives with.
type Instance struct {
	ID       string
	Timezone string
	Hours    BusinessHours
}

// AvailabilitySlot is a candidate bookable window on one calendar. Start/End
// keep the caller's original UTC offset so echoed values round-trip.
type AvailabilitySlot struct {
	Start        time.Time
	End          time.Time
	CalendarID   string
	CalendarName string
	Priority     int
}

const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

type Appointment struct {
	ID           string
	CalendarID   string
	ServiceID    string
	CustomerName string
	StartTime    time.Time
	EndTime      time.Time
	Status       string
	CancelledAt  *time.Time
	CancelReason string
	CreatedAt    time.Time
}

// Package availability turns a requested time window into a booking verdict:
// business-hours containment in the instance's timezone, buffer expansion,
// and a provider conflict check in UTC.
package availability

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/agendo-app/agendo/internal/model"
	"github.com/agendo-app/agendo/internal/schedule"
	"github.com/agendo-app/agendo/internal/storage"
)

const (
	ReasonServiceNotFound  = "service_not_found"
	ReasonCalendarNotFound = "calendar_not_found"
	ReasonInstanceNotFound = "instance_not_found"
	ReasonOutsideHours     = "outside_business_hours"
	ReasonSlotBooked       = "time_slot_already_booked"
)

var (
	ErrServiceNotFound   = errors.New("service not found or inactive")
	ErrNoActiveCalendars = errors.New("no active calendars found")
)

// Catalog is the metadata lookup surface the engine depends on.
type Catalog interface {
	GetService(ctx context.Context, id string) (model.Service, error)
	GetCalendar(ctx context.Context, id string) (model.Calendar, error)
	ListCalendars(ctx context.Context, ids []string, activeOnly bool) ([]model.Calendar, error)
	GetInstance(ctx context.Context, id string) (model.Instance, error)
}

// ConflictChecker is the provider boundary. utcStart/utcEnd are the buffered
// window, already normalized to UTC by the engine.
type ConflictChecker interface {
	HasConflict(ctx context.Context, externalCalendarID string, utcStart, utcEnd time.Time) (bool, error)
}

// Verdict is the answer for a single (slot, calendar) question. Start/End are
// the nominal window echoed in the caller's original offset.
type Verdict struct {
	Available       bool
	CalendarName    string
	Start           time.Time
	End             time.Time
	ServiceName     string
	ServiceDuration int
	Reason          string
}

// CalendarStatus is one calendar's outcome inside a multi-calendar check.
type CalendarStatus struct {
	CalendarID   string
	CalendarName string
	Priority     int
	Reason       string
}

type MultiVerdict struct {
	Available        bool
	ServiceName      string
	ServiceDuration  int
	Start            time.Time
	End              time.Time
	AvailableList    []CalendarStatus
	UnavailableList  []CalendarStatus
	TotalChecked     int
	TotalAvailable   int
	TotalUnavailable int
}

type Engine struct {
	catalog Catalog
	checker ConflictChecker
	logger  *slog.Logger
}

func NewEngine(catalog Catalog, checker ConflictChecker, logger *slog.Logger) *Engine {
	return &Engine{catalog: catalog, checker: checker, logger: logger}
}

// Check answers whether one service fits one calendar at the requested start.
// It never returns an error: internal failures become an unavailable verdict,
// and a provider failure counts as unavailable (fail closed).
func (e *Engine) Check(ctx context.Context, requestedStart time.Time, serviceID, calendarID string) Verdict {
	svc, err := e.catalog.GetService(ctx, serviceID)
	if err != nil || !svc.Active {
		if err != nil && !storage.IsNotFound(err) {
			return e.errorVerdict(requestedStart, err)
		}
		return Verdict{Reason: ReasonServiceNotFound, Start: requestedStart}
	}

	nominalEnd := requestedStart.Add(time.Duration(svc.DurationMins) * time.Minute)
	base := Verdict{
		Start:           requestedStart,
		End:             nominalEnd,
		ServiceName:     svc.Name,
		ServiceDuration: svc.DurationMins,
	}

	cal, err := e.catalog.GetCalendar(ctx, calendarID)
	if err != nil || !cal.Active {
		if err != nil && !storage.IsNotFound(err) {
			return e.errorVerdict(requestedStart, err)
		}
		base.Reason = ReasonCalendarNotFound
		return base
	}
	base.CalendarName = cal.Name

	verdict, err := e.checkCalendar(ctx, base, requestedStart, nominalEnd, svc, cal)
	if err != nil {
		return e.errorVerdict(requestedStart, err)
	}
	return verdict
}

// checkCalendar runs steps shared between the single and multi-calendar
// paths: timezone resolution, business hours, buffers, provider conflict.
func (e *Engine) checkCalendar(ctx context.Context, base Verdict, nominalStart, nominalEnd time.Time, svc model.Service, cal model.Calendar) (Verdict, error) {
	inst, err := e.catalog.GetInstance(ctx, cal.InstanceID)
	if err != nil {
		if storage.IsNotFound(err) {
			base.Reason = ReasonInstanceNotFound
			return base, nil
		}
		return Verdict{}, err
	}

	loc, err := time.LoadLocation(inst.Timezone)
	if err != nil {
		return Verdict{}, err
	}

	// Business hours judge the nominal window only; buffers are prep and
	// cleanup time and may spill outside working hours.
	if !schedule.WithinBusinessHours(nominalStart, nominalEnd, inst.Hours, loc) {
		base.Reason = ReasonOutsideHours
		return base, nil
	}

	bufferedStart := nominalStart.Add(-time.Duration(svc.BufferBefore) * time.Minute).UTC()
	bufferedEnd := nominalEnd.Add(time.Duration(svc.BufferAfter) * time.Minute).UTC()

	conflict, err := e.checker.HasConflict(ctx, cal.ExternalID, bufferedStart, bufferedEnd)
	if err != nil {
		return Verdict{}, err
	}
	if conflict {
		base.Reason = ReasonSlotBooked
		return base, nil
	}

	base.Available = true
	return base, nil
}

func (e *Engine) errorVerdict(start time.Time, err error) Verdict {
	e.logger.Error("availability check failed", "err", err)
	return Verdict{Start: start, Reason: "error: " + err.Error()}
}

// CheckCalendars runs the single-calendar check against a batch of calendars.
// Setup failures (unknown service, no active calendars) are hard errors;
// per-calendar failures are recorded and never abort the batch.
func (e *Engine) CheckCalendars(ctx context.Context, requestedStart time.Time, serviceID string, calendarIDs []string) (MultiVerdict, error) {
	svc, err := e.catalog.GetService(ctx, serviceID)
	if err != nil {
		if storage.IsNotFound(err) {
			return MultiVerdict{}, ErrServiceNotFound
		}
		return MultiVerdict{}, err
	}
	if !svc.Active {
		return MultiVerdict{}, ErrServiceNotFound
	}

	cals, err := e.catalog.ListCalendars(ctx, calendarIDs, true)
	if err != nil {
		return MultiVerdict{}, err
	}
	if len(cals) == 0 {
		return MultiVerdict{}, ErrNoActiveCalendars
	}

	nominalEnd := requestedStart.Add(time.Duration(svc.DurationMins) * time.Minute)
	out := MultiVerdict{
		ServiceName:     svc.Name,
		ServiceDuration: svc.DurationMins,
		Start:           requestedStart,
		End:             nominalEnd,
		TotalChecked:    len(cals),
	}

	for _, cal := range cals {
		status := CalendarStatus{CalendarID: cal.ID, CalendarName: cal.Name, Priority: cal.Priority}
		base := Verdict{CalendarName: cal.Name}
		verdict, err := e.checkCalendar(ctx, base, requestedStart, nominalEnd, svc, cal)
		if err != nil {
			e.logger.Error("calendar check failed", "calendar_id", cal.ID, "err", err)
			status.Reason = "error: " + err.Error()
			out.UnavailableList = append(out.UnavailableList, status)
			continue
		}
		if verdict.Available {
			out.AvailableList = append(out.AvailableList, status)
		} else {
			status.Reason = verdict.Reason
			out.UnavailableList = append(out.UnavailableList, status)
		}
	}

	sort.SliceStable(out.AvailableList, func(i, j int) bool {
		if out.AvailableList[i].Priority != out.AvailableList[j].Priority {
			return out.AvailableList[i].Priority < out.AvailableList[j].Priority
		}
		return out.AvailableList[i].CalendarID < out.AvailableList[j].CalendarID
	})

	out.TotalAvailable = len(out.AvailableList)
	out.TotalUnavailable = len(out.UnavailableList)
	out.Available = out.TotalAvailable > 0
	return out, nil
}

package suggest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/agendo-app/agendo/internal/availability"
	"github.com/agendo-app/agendo/internal/model"
	"github.com/agendo-app/agendo/internal/storage"
)

type fakeCatalog struct {
	services  map[string]model.Service
	calendars map[string]model.Calendar
	instances map[string]model.Instance
}

func (f *fakeCatalog) GetService(_ context.Context, id string) (model.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return model.Service{}, fmt.Errorf("service %s: %w", id, storage.ErrNotFound)
	}
	return svc, nil
}

func (f *fakeCatalog) GetCalendar(_ context.Context, id string) (model.Calendar, error) {
	cal, ok := f.calendars[id]
	if !ok {
		return model.Calendar{}, fmt.Errorf("calendar %s: %w", id, storage.ErrNotFound)
	}
	return cal, nil
}

func (f *fakeCatalog) ListCalendars(_ context.Context, ids []string, activeOnly bool) ([]model.Calendar, error) {
	var cals []model.Calendar
	for _, id := range ids {
		cal, ok := f.calendars[id]
		if !ok || (activeOnly && !cal.Active) {
			continue
		}
		cals = append(cals, cal)
	}
	return cals, nil
}

func (f *fakeCatalog) GetInstance(_ context.Context, id string) (model.Instance, error) {
	inst, ok := f.instances[id]
	if !ok {
		return model.Instance{}, fmt.Errorf("instance %s: %w", id, storage.ErrNotFound)
	}
	return inst, nil
}

type fakeChecker struct {
	alwaysBusy bool
	errAll     bool
	calls      int
}

func (f *fakeChecker) HasConflict(_ context.Context, _ string, _, _ time.Time) (bool, error) {
	f.calls++
	if f.errAll {
		return false, errors.New("provider unavailable")
	}
	return f.alwaysBusy, nil
}

func suggestFixture() *fakeCatalog {
	weekday := &model.DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "12:00"}
	return &fakeCatalog{
		services: map[string]model.Service{
			"svc": {ID: "svc", Name: "Consultation", DurationMins: 60, Active: true},
		},
		calendars: map[string]model.Calendar{
			"c1": {ID: "c1", ExternalID: "ext-1", InstanceID: "inst", Name: "Room A", Priority: 1, Active: true},
		},
		instances: map[string]model.Instance{
			"inst": {ID: "inst", Timezone: "UTC", Hours: model.BusinessHours{
				Monday:    weekday,
				Tuesday:   weekday,
				Wednesday: weekday,
				Thursday:  weekday,
				Friday:    weekday,
			}},
		},
	}
}

func newTestEngine(catalog availability.Catalog, checker availability.ConflictChecker) *Engine {
	e := NewEngine(catalog, checker, slog.New(slog.DiscardHandler))
	e.now = func() time.Time { return time.Date(2025, 8, 25, 8, 0, 0, 0, time.UTC) }
	return e
}

func TestSuggest_ReturnsGridSlots(t *testing.T) {
	engine := newTestEngine(suggestFixture(), &fakeChecker{})

	// Monday 09:00-12:00, hour slots at 60m interval: 09:00, 10:00, 11:00.
	start := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	slots, err := engine.Suggest(context.Background(), Params{
		RangeStart:      start,
		RangeEnd:        start.Add(23 * time.Hour),
		ServiceID:       "svc",
		CalendarIDs:     []string{"c1"},
		MaxResults:      10,
		IntervalMinutes: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if slots[0].Start.Hour() != 9 {
		t.Fatalf("expected first slot at 09:00, got %s", slots[0].Start)
	}
}

func TestSuggest_FullyBookedExpansionTerminates(t *testing.T) {
	checker := &fakeChecker{alwaysBusy: true}
	engine := newTestEngine(suggestFixture(), checker)

	start := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	slots, err := engine.Suggest(context.Background(), Params{
		RangeStart:      start,
		RangeEnd:        start.Add(23 * time.Hour),
		ServiceID:       "svc",
		CalendarIDs:     []string{"c1"},
		MaxResults:      5,
		ExpandTimeframe: true,
		IntervalMinutes: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected no slots on a fully booked calendar, got %d", len(slots))
	}
	if checker.calls == 0 {
		t.Fatalf("expected provider checks to have run")
	}
}

func TestSuggest_ExpansionFindsLaterDays(t *testing.T) {
	catalog := suggestFixture()
	// Only Wednesday works; the initial Monday-only range is empty.
	catalog.instances["inst"] = model.Instance{ID: "inst", Timezone: "UTC", Hours: model.BusinessHours{
		Wednesday: &model.DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "11:00"},
	}}
	engine := newTestEngine(catalog, &fakeChecker{})

	start := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC) // Monday
	slots, err := engine.Suggest(context.Background(), Params{
		RangeStart:      start,
		RangeEnd:        start.Add(23 * time.Hour),
		ServiceID:       "svc",
		CalendarIDs:     []string{"c1"},
		MaxResults:      2,
		ExpandTimeframe: true,
		IntervalMinutes: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("expected expansion to reach Wednesday, got %d slots", len(slots))
	}
	if slots[0].Start.Weekday() != time.Wednesday {
		t.Fatalf("expected Wednesday slots, got %s", slots[0].Start.Weekday())
	}
}

func TestSuggest_ProviderErrorsSkipSlots(t *testing.T) {
	engine := newTestEngine(suggestFixture(), &fakeChecker{errAll: true})

	start := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	slots, err := engine.Suggest(context.Background(), Params{
		RangeStart:      start,
		RangeEnd:        start.Add(23 * time.Hour),
		ServiceID:       "svc",
		CalendarIDs:     []string{"c1"},
		MaxResults:      5,
		IntervalMinutes: 60,
	})
	if err != nil {
		t.Fatalf("per-slot failures must not fail the call: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("unverifiable slots must be skipped, got %d", len(slots))
	}
}

func TestSuggest_SetupFailuresReturnError(t *testing.T) {
	engine := newTestEngine(suggestFixture(), &fakeChecker{})
	start := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)

	if _, err := engine.Suggest(context.Background(), Params{
		RangeStart: start, RangeEnd: start.Add(time.Hour),
		ServiceID: "missing", CalendarIDs: []string{"c1"},
	}); err == nil {
		t.Fatalf("expected error for unknown service")
	}

	if _, err := engine.Suggest(context.Background(), Params{
		RangeStart: start, RangeEnd: start.Add(time.Hour),
		ServiceID: "svc", CalendarIDs: []string{"missing"},
	}); !errors.Is(err, availability.ErrNoActiveCalendars) {
		t.Fatalf("expected ErrNoActiveCalendars, got %v", err)
	}
}

func TestSuggest_EarlyStopAtMaxResults(t *testing.T) {
	checker := &fakeChecker{}
	engine := newTestEngine(suggestFixture(), checker)

	start := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	slots, err := engine.Suggest(context.Background(), Params{
		RangeStart:      start,
		RangeEnd:        start.Add(23 * time.Hour),
		ServiceID:       "svc",
		CalendarIDs:     []string{"c1"},
		MaxResults:      1,
		IntervalMinutes: 60,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if checker.calls != 1 {
		t.Fatalf("scan should stop after reaching max results, got %d provider calls", checker.calls)
	}
}

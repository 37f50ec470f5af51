package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agendo-app/agendo/internal/availability"
	"github.com/agendo-app/agendo/internal/model"
	"github.com/agendo-app/agendo/internal/storage"
	"github.com/agendo-app/agendo/internal/suggest"
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
	var out []model.Calendar
	for _, id := range ids {
		cal, ok := f.calendars[id]
		if !ok {
			continue
		}
		if activeOnly && !cal.Active {
			continue
		}
		out = append(out, cal)
	}
	return out, nil
}

func (f *fakeCatalog) GetInstance(_ context.Context, id string) (model.Instance, error) {
	inst, ok := f.instances[id]
	if !ok {
		return model.Instance{}, fmt.Errorf("instance %s: %w", id, storage.ErrNotFound)
	}
	return inst, nil
}

type fakeChecker struct {
	busy bool
}

func (f *fakeChecker) HasConflict(_ context.Context, _ string, _, _ time.Time) (bool, error) {
	return f.busy, nil
}

func testCatalog() *fakeCatalog {
	day := &model.DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "17:00"}
	return &fakeCatalog{
		services: map[string]model.Service{
			"svc-1": {ID: "svc-1", Name: "Consultation", DurationMins: 30, Active: true},
		},
		calendars: map[string]model.Calendar{
			"cal-1": {ID: "cal-1", ExternalID: "ext-1", InstanceID: "inst-1", Name: "Room A", Priority: 1, Active: true},
		},
		instances: map[string]model.Instance{
			"inst-1": {ID: "inst-1", Timezone: "UTC", Hours: model.BusinessHours{
				Monday: day, Tuesday: day, Wednesday: day, Thursday: day, Friday: day,
			}},
		},
	}
}

func testHandler(busy bool) *AvailabilityHandler {
	catalog := testCatalog()
	checker := &fakeChecker{busy: busy}
	logger := slog.New(slog.DiscardHandler)
	return NewAvailabilityHandler(
		availability.NewEngine(catalog, checker, logger),
		suggest.NewEngine(catalog, checker, logger),
		logger,
	)
}

func TestCheckEndpoint(t *testing.T) {
	h := testHandler(false)

	// 2025-08-25 is a Monday.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/check?start=2025-08-25T10:00:00%2B00:00&service_id=svc-1&calendar_id=cal-1", nil)
	rw := httptest.NewRecorder()
	h.Check(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rw.Code, rw.Body.String())
	}

	var resp struct {
		Available     bool   `json:"available"`
		StartDatetime string `json:"start_datetime"`
		EndDatetime   string `json:"end_datetime"`
		ServiceName   string `json:"service_name"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Available {
		t.Fatal("expected available verdict")
	}
	if resp.ServiceName != "Consultation" {
		t.Fatalf("expected service name echoed, got %q", resp.ServiceName)
	}
	if resp.EndDatetime != "2025-08-25T10:30:00Z" {
		t.Fatalf("expected nominal end 10:30Z, got %q", resp.EndDatetime)
	}
}

func TestCheckEndpointBooked(t *testing.T) {
	h := testHandler(true)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/check?start=2025-08-25T10:00:00%2B00:00&service_id=svc-1&calendar_id=cal-1", nil)
	rw := httptest.NewRecorder()
	h.Check(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rw.Code)
	}

	var resp struct {
		Available      bool   `json:"available"`
		ConflictReason string `json:"conflict_reason"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Available {
		t.Fatal("expected unavailable verdict")
	}
	if resp.ConflictReason != "time_slot_already_booked" {
		t.Fatalf("unexpected reason %q", resp.ConflictReason)
	}
}

func TestCheckEndpointValidation(t *testing.T) {
	h := testHandler(false)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/availability/check?start=not-a-time&service_id=svc-1&calendar_id=cal-1", nil)
	rw := httptest.NewRecorder()
	h.Check(rw, req)
	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad timestamp, got %d", rw.Code)
	}

	reqMissing := httptest.NewRequest(http.MethodGet, "/api/v1/availability/check?service_id=svc-1", nil)
	rwMissing := httptest.NewRecorder()
	h.Check(rwMissing, reqMissing)
	if rwMissing.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing params, got %d", rwMissing.Code)
	}

	reqPost := httptest.NewRequest(http.MethodPost, "/api/v1/availability/check", nil)
	rwPost := httptest.NewRecorder()
	h.Check(rwPost, reqPost)
	if rwPost.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rwPost.Code)
	}
}

func TestCheckCalendarsEndpoint(t *testing.T) {
	h := testHandler(false)

	body := `{"start_datetime":"2025-08-25T10:00:00+00:00","service_id":"svc-1","calendar_ids":["cal-1"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/check-calendars", strings.NewReader(body))
	rw := httptest.NewRecorder()
	h.CheckCalendars(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rw.Code, rw.Body.String())
	}

	var resp struct {
		Available             bool `json:"available"`
		TotalCalendarsChecked int  `json:"total_calendars_checked"`
		TotalAvailable        int  `json:"total_available"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Available || resp.TotalCalendarsChecked != 1 || resp.TotalAvailable != 1 {
		t.Fatalf("unexpected counts: %+v", resp)
	}
}

func TestCheckCalendarsUnknownService(t *testing.T) {
	h := testHandler(false)

	body := `{"start_datetime":"2025-08-25T10:00:00+00:00","service_id":"nope","calendar_ids":["cal-1"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/check-calendars", strings.NewReader(body))
	rw := httptest.NewRecorder()
	h.CheckCalendars(rw, req)
	if rw.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown service, got %d", rw.Code)
	}
}

func TestSuggestEndpoint(t *testing.T) {
	h := testHandler(false)

	body := `{
		"start_datetime": "2025-08-25T09:00:00+00:00",
		"end_datetime": "2025-08-25T12:00:00+00:00",
		"service_id": "svc-1",
		"calendar_ids": ["cal-1"],
		"max_results": 3,
		"interval_minutes": 60
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/suggest", strings.NewReader(body))
	rw := httptest.NewRecorder()
	h.Suggest(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rw.Code, rw.Body.String())
	}

	var slots []struct {
		StartDatetime string `json:"start_datetime"`
		CalendarID    string `json:"calendar_id"`
	}
	if err := json.Unmarshal(rw.Body.Bytes(), &slots); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	if slots[0].StartDatetime != "2025-08-25T09:00:00Z" || slots[0].CalendarID != "cal-1" {
		t.Fatalf("unexpected first slot: %+v", slots[0])
	}
}

func TestSuggestDegradesOnLookupFailure(t *testing.T) {
	h := testHandler(false)

	body := `{"start_datetime":"2025-08-25T09:00:00+00:00","end_datetime":"2025-08-25T12:00:00+00:00","service_id":"nope","calendar_ids":["cal-1"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/suggest", strings.NewReader(body))
	rw := httptest.NewRecorder()
	h.Suggest(rw, req)
	if rw.Code != http.StatusOK {
		t.Fatalf("expected 200 with empty list, got %d", rw.Code)
	}
	if got := strings.TrimSpace(rw.Body.String()); got != "[]" {
		t.Fatalf("expected empty array, got %s", got)
	}
}

func TestSuggestValidation(t *testing.T) {
	h := testHandler(false)

	body := `{"start_datetime":"2025-08-25T09:00:00+00:00","end_datetime":"2025-08-25T12:00:00+00:00","service_id":"svc-1","calendar_ids":["cal-1"],"interval_minutes":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/availability/suggest", strings.NewReader(body))
	rw := httptest.NewRecorder()
	h.Suggest(rw, req)
	if rw.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad interval, got %d", rw.Code)
	}

	bodyMax := `{"start_datetime":"2025-08-25T09:00:00+00:00","end_datetime":"2025-08-25T12:00:00+00:00","service_id":"svc-1","calendar_ids":["cal-1"],"max_results":500}`
	reqMax := httptest.NewRequest(http.MethodPost, "/api/v1/availability/suggest", strings.NewReader(bodyMax))
	rwMax := httptest.NewRecorder()
	h.Suggest(rwMax, reqMax)
	if rwMax.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for oversized max_results, got %d", rwMax.Code)
	}
}

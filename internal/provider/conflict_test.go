package provider

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type fakeClient struct {
	events []Event
	err    error
	calls  int
}

func (f *fakeClient) ListEvents(_ context.Context, _ string, _, _ time.Time) ([]Event, error) {
	f.calls++
	return f.events, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestHasConflict_BlockingOverlap(t *testing.T) {
	day := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{events: []Event{
		{ID: "e1", Start: day.Add(13 * time.Hour), End: day.Add(13*time.Hour + 30*time.Minute), Status: "confirmed"},
	}}
	checker := NewConflictChecker(client, discardLogger())

	got, err := checker.HasConflict(context.Background(), "cal-ext", day.Add(13*time.Hour), day.Add(14*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("expected conflict")
	}
}

func TestHasConflict_TouchingBoundaryIsFree(t *testing.T) {
	day := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{events: []Event{
		{ID: "e1", Start: day.Add(13 * time.Hour), End: day.Add(13*time.Hour + 30*time.Minute), Status: "confirmed"},
	}}
	checker := NewConflictChecker(client, discardLogger())

	got, err := checker.HasConflict(context.Background(), "cal-ext", day.Add(13*time.Hour+30*time.Minute), day.Add(14*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("event ending exactly at window start must not conflict")
	}
}

func TestHasConflict_TransparentAndCancelledNeverBlock(t *testing.T) {
	day := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{events: []Event{
		{ID: "soft", Start: day.Add(13 * time.Hour), End: day.Add(14 * time.Hour), Transparency: "transparent"},
		{ID: "gone", Start: day.Add(13 * time.Hour), End: day.Add(14 * time.Hour), Status: "cancelled"},
	}}
	checker := NewConflictChecker(client, discardLogger())

	got, err := checker.HasConflict(context.Background(), "cal-ext", day.Add(13*time.Hour), day.Add(14*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Fatalf("transparent and cancelled events must not block")
	}
}

func TestHasConflict_AllDayEventBlocksWholeDay(t *testing.T) {
	day := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	client := &fakeClient{events: []Event{
		{ID: "holiday", Start: day, End: day, AllDay: true, Status: "confirmed"},
	}}
	checker := NewConflictChecker(client, discardLogger())

	got, err := checker.HasConflict(context.Background(), "cal-ext", day.Add(9*time.Hour), day.Add(10*time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("all-day event should block a mid-day window")
	}
}

func TestHasConflict_ProviderErrorPropagates(t *testing.T) {
	client := &fakeClient{err: errors.New("rate limited")}
	checker := NewConflictChecker(client, discardLogger())

	day := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	_, err := checker.HasConflict(context.Background(), "cal-ext", day, day.Add(time.Hour))
	if err == nil {
		t.Fatalf("expected provider error to propagate (callers fail closed)")
	}
}

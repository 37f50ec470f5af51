package provider

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type recordingClient struct {
	events    []Event
	calls     int
	lastStart time.Time
	lastEnd   time.Time
}

func (r *recordingClient) ListEvents(_ context.Context, _ string, utcStart, utcEnd time.Time) ([]Event, error) {
	r.calls++
	r.lastStart = utcStart
	r.lastEnd = utcEnd
	return r.events, nil
}

// unreachableRedis returns a client whose every command fails fast, so the
// cache path degrades to the inner client.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestFilterWindow(t *testing.T) {
	day := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "ends-at-start", Start: day.Add(8 * time.Hour), End: day.Add(10 * time.Hour)},
		{ID: "inside", Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)},
		{ID: "starts-at-end", Start: day.Add(12 * time.Hour), End: day.Add(13 * time.Hour)},
		{ID: "all-day", Start: day, End: day, AllDay: true},
	}

	got := filterWindow(events, day.Add(10*time.Hour), day.Add(12*time.Hour))

	ids := make(map[string]bool, len(got))
	for _, e := range got {
		ids[e.ID] = true
	}
	if ids["ends-at-start"] {
		t.Fatalf("event ending exactly at the window start must be excluded")
	}
	if ids["starts-at-end"] {
		t.Fatalf("event starting exactly at the window end must be excluded")
	}
	if !ids["inside"] {
		t.Fatalf("overlapping event missing from %v", got)
	}
	if !ids["all-day"] {
		t.Fatalf("all-day event should cover the whole day via its expanded window")
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 events, got %d", len(got))
	}
}

func TestCachedClientMultiDayBypass(t *testing.T) {
	inner := &recordingClient{events: []Event{{ID: "e1"}}}
	c := NewCachedClient(inner, unreachableRedis(), time.Minute, discardLogger())

	start := time.Date(2025, 8, 25, 23, 0, 0, 0, time.UTC)
	end := time.Date(2025, 8, 26, 1, 0, 0, 0, time.UTC)
	got, err := c.ListEvents(context.Background(), "ext-1", start, end)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}

	if inner.calls != 1 {
		t.Fatalf("expected one inner call, got %d", inner.calls)
	}
	if !inner.lastStart.Equal(start) || !inner.lastEnd.Equal(end) {
		t.Fatalf("bypass must pass the original window, got [%v, %v)", inner.lastStart, inner.lastEnd)
	}
	if len(got) != 1 || got[0].ID != "e1" {
		t.Fatalf("bypass must return the inner result unfiltered, got %v", got)
	}
}

func TestCachedClientMissQueriesWholeDay(t *testing.T) {
	day := time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)
	inner := &recordingClient{events: []Event{
		{ID: "early", Start: day.Add(8 * time.Hour), End: day.Add(9 * time.Hour)},
		{ID: "wanted", Start: day.Add(10 * time.Hour), End: day.Add(11 * time.Hour)},
	}}
	c := NewCachedClient(inner, unreachableRedis(), time.Minute, discardLogger())

	got, err := c.ListEvents(context.Background(), "ext-1", day.Add(10*time.Hour), day.Add(12*time.Hour))
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}

	if !inner.lastStart.Equal(day) || !inner.lastEnd.Equal(day.Add(24*time.Hour)) {
		t.Fatalf("cache miss must fetch the whole UTC day, got [%v, %v)", inner.lastStart, inner.lastEnd)
	}
	if len(got) != 1 || got[0].ID != "wanted" {
		t.Fatalf("day result must be filtered to the requested window, got %v", got)
	}
}

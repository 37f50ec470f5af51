package provider

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedClient memoizes per-calendar event listings in Redis, one key per UTC
// day. Conflict checks over a day then cost one provider call instead of one
// per candidate slot. The cache is an optimization only: any Redis failure
// falls through to the inner client, and a changed-calendar event from the
// provider invalidates the affected keys.
type CachedClient struct {
	inner  Client
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedClient(inner Client, rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedClient {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &CachedClient{inner: inner, rdb: rdb, ttl: ttl, logger: logger}
}

type cachedEvent struct {
	ID           string    `json:"id"`
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	AllDay       bool      `json:"all_day"`
	Status       string    `json:"status"`
	Transparency string    `json:"transparency"`
}

func dayKey(externalCalendarID string, day time.Time) string {
	return "events:" + externalCalendarID + ":" + day.UTC().Format("2006-01-02")
}

func (c *CachedClient) ListEvents(ctx context.Context, externalCalendarID string, utcStart, utcEnd time.Time) ([]Event, error) {
	utcStart = utcStart.UTC()
	utcEnd = utcEnd.UTC()

	dayStart := utcStart.Truncate(24 * time.Hour)
	// Window spanning multiple UTC days bypasses the day cache.
	if utcEnd.After(dayStart.Add(24 * time.Hour)) {
		return c.inner.ListEvents(ctx, externalCalendarID, utcStart, utcEnd)
	}

	key := dayKey(externalCalendarID, dayStart)
	if cached, ok := c.get(ctx, key); ok {
		return filterWindow(cached, utcStart, utcEnd), nil
	}

	dayEvents, err := c.inner.ListEvents(ctx, externalCalendarID, dayStart, dayStart.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}
	c.put(ctx, key, dayEvents)
	return filterWindow(dayEvents, utcStart, utcEnd), nil
}

// Invalidate drops every cached day for one external calendar. Called when
// the provider notifies us that the calendar changed.
func (c *CachedClient) Invalidate(ctx context.Context, externalCalendarID string) error {
	iter := c.rdb.Scan(ctx, 0, "events:"+externalCalendarID+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func (c *CachedClient) get(ctx context.Context, key string) ([]Event, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("event cache read failed", "key", key, "err", err)
		}
		return nil, false
	}
	var stored []cachedEvent
	if err := json.Unmarshal(raw, &stored); err != nil {
		c.logger.Warn("event cache entry corrupt, dropping", "key", key, "err", err)
		_ = c.rdb.Del(ctx, key).Err()
		return nil, false
	}
	events := make([]Event, 0, len(stored))
	for _, s := range stored {
		events = append(events, Event{
			ID:           s.ID,
			Start:        s.Start,
			End:          s.End,
			AllDay:       s.AllDay,
			Status:       s.Status,
			Transparency: s.Transparency,
		})
	}
	return events, true
}

func (c *CachedClient) put(ctx context.Context, key string, events []Event) {
	stored := make([]cachedEvent, 0, len(events))
	for _, e := range events {
		stored = append(stored, cachedEvent{
			ID:           e.ID,
			Start:        e.Start,
			End:          e.End,
			AllDay:       e.AllDay,
			Status:       e.Status,
			Transparency: e.Transparency,
		})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("event cache write failed", "key", key, "err", err)
	}
}

func filterWindow(events []Event, utcStart, utcEnd time.Time) []Event {
	var out []Event
	for _, e := range events {
		start, end := e.Window()
		if start.Before(utcEnd) && end.After(utcStart) {
			out = append(out, e)
		}
	}
	return out
}

// RedisReadyCheck probes the cache backend for /readyz.
func RedisReadyCheck(rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}

package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/agendo-app/agendo/internal/schedule"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ConflictChecker decides whether an external calendar already holds a
// blocking event inside a UTC window. Errors from the provider propagate;
// callers must fail closed, never assume the slot is free.
type ConflictChecker struct {
	client Client
	logger *slog.Logger
}

func NewConflictChecker(client Client, logger *slog.Logger) *ConflictChecker {
	return &ConflictChecker{client: client, logger: logger}
}

// HasConflict returns true when at least one blocking event overlaps
// [utcStart, utcEnd). Overlap is half-open; an event ending exactly at
// utcStart does not conflict.
func (c *ConflictChecker) HasConflict(ctx context.Context, externalCalendarID string, utcStart, utcEnd time.Time) (bool, error) {
	ctx, span := otel.Tracer("provider").Start(ctx, "provider.conflict_check",
		trace.WithAttributes(
			attribute.String("calendar.external_id", externalCalendarID),
		),
	)
	defer span.End()

	utcStart = utcStart.UTC()
	utcEnd = utcEnd.UTC()

	events, err := c.client.ListEvents(ctx, externalCalendarID, utcStart, utcEnd)
	if err != nil {
		span.RecordError(err)
		c.logger.Error("provider event listing failed",
			"calendar", externalCalendarID,
			"window_start", utcStart,
			"window_end", utcEnd,
			"err", err,
		)
		return false, err
	}

	for _, e := range events {
		if !e.Blocking() {
			continue
		}
		start, end := e.Window()
		if schedule.Overlaps(start, end, utcStart, utcEnd) {
			return true, nil
		}
	}
	return false, nil
}

// Package provider is the sole I/O boundary to the external calendar
// provider. Everything that crosses it is expressed in UTC.
package provider

import (
	"context"
	"time"
)

const (
	StatusCancelled         = "cancelled"
	TransparencyTransparent = "transparent"
)

// Event is one provider calendar entry. AllDay events carry midnight
// boundaries in the zone the provider reported them in.
type Event struct {
	ID           string
	Start        time.Time
	End          time.Time
	AllDay       bool
	Status       string
	Transparency string
}

// Blocking reports whether the event can cause a booking conflict. Cancelled
// events and soft ("transparent"/free) events never block.
func (e Event) Blocking() bool {
	return e.Status != StatusCancelled && e.Transparency != TransparencyTransparent
}

// Window returns the event's effective [start,end) interval. All-day events
// expand to local midnight through end of day.
func (e Event) Window() (time.Time, time.Time) {
	if !e.AllDay {
		return e.Start, e.End
	}
	loc := e.Start.Location()
	day := time.Date(e.Start.Year(), e.Start.Month(), e.Start.Day(), 0, 0, 0, 0, loc)
	end := e.End
	if !end.After(day) {
		end = day.AddDate(0, 0, 1)
	}
	return day, end
}

// Client lists provider events overlapping a UTC window.
type Client interface {
	ListEvents(ctx context.Context, externalCalendarID string, utcStart, utcEnd time.Time) ([]Event, error)
}

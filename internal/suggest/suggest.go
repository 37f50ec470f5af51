// Package suggest generates ranked candidate slots over a search range. It is
// best-effort: the HTTP surface turns engine errors into an empty result set,
// and individual provider failures only skip the affected slot.
package suggest

import (
	"context"
	"log/slog"
	"time"

	"github.com/agendo-app/agendo/internal/availability"
	"github.com/agendo-app/agendo/internal/model"
	"github.com/agendo-app/agendo/internal/schedule"
)

// maxAttempts bounds search-window expansion; with ExpandTimeframe set and a
// fully booked calendar the loop stops here instead of walking forever.
const maxAttempts = 30

const (
	StrategyEarliest = "earliest"
	StrategyNearest  = "nearest"
	StrategyEquality = "equality"
	StrategyBlocks   = "time_blocks"
	StrategyBalanced = "balanced_distribution"
)

type PriorityConfig struct {
	Enabled bool
	Order   string // "asc" (default) or "desc"
}

// TimeBlocksConfig tunes the time_blocks strategy. Zero counts derive from
// MaxResults (a third per block, remainder to evening).
type TimeBlocksConfig struct {
	MorningStart   string
	AfternoonStart string
	EveningStart   string
	MorningCount   int
	AfternoonCount int
	EveningCount   int
}

type Params struct {
	RangeStart      time.Time
	RangeEnd        time.Time
	ServiceID       string
	CalendarIDs     []string
	MaxResults      int
	ExpandTimeframe bool
	IntervalMinutes int
	Strategy        string
	Priority        PriorityConfig
	TimeBlocks      *TimeBlocksConfig
}

func (p *Params) applyDefaults() {
	if p.MaxResults <= 0 {
		p.MaxResults = 10
	}
	if p.IntervalMinutes <= 0 {
		p.IntervalMinutes = 30
	}
	if p.Strategy == "" {
		p.Strategy = StrategyEarliest
	}
	if p.Priority.Order == "" {
		p.Priority.Order = "asc"
	}
}

type Engine struct {
	catalog availability.Catalog
	checker availability.ConflictChecker
	logger  *slog.Logger
	now     func() time.Time
}

func NewEngine(catalog availability.Catalog, checker availability.ConflictChecker, logger *slog.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		checker: checker,
		logger:  logger,
		now:     time.Now,
	}
}

// Suggest returns up to MaxResults available slots for the service across the
// calendar set, ranked by the chosen strategy. Lookup failures during setup
// return an error; the caller decides whether that surfaces or degrades to an
// empty list.
func (e *Engine) Suggest(ctx context.Context, p Params) ([]model.AvailabilitySlot, error) {
	p.applyDefaults()

	svc, err := e.catalog.GetService(ctx, p.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, availability.ErrServiceNotFound
	}

	cals, err := e.catalog.ListCalendars(ctx, p.CalendarIDs, true)
	if err != nil {
		return nil, err
	}
	if len(cals) == 0 {
		return nil, availability.ErrNoActiveCalendars
	}

	inst, err := e.catalog.GetInstance(ctx, cals[0].InstanceID)
	if err != nil {
		return nil, err
	}
	loc, err := time.LoadLocation(inst.Timezone)
	if err != nil {
		return nil, err
	}

	externalByID := make(map[string]string, len(cals))
	for _, cal := range cals {
		externalByID[cal.ID] = cal.ExternalID
	}

	rangeEnd := p.RangeEnd
	var available []model.AvailabilitySlot
	for attempt := 0; attempt < maxAttempts; attempt++ {
		grid := schedule.Grid(p.RangeStart, rangeEnd, svc.DurationMins, p.IntervalMinutes, inst.Hours, loc, cals)
		available = e.filterAvailable(ctx, grid, svc, externalByID, p.MaxResults)
		if len(available) >= p.MaxResults || !p.ExpandTimeframe {
			break
		}
		rangeEnd = rangeEnd.AddDate(0, 0, 1)
	}

	selected := applyStrategy(available, p, loc, e.now())
	if p.Priority.Enabled {
		sortByPriority(selected, p.Priority.Order)
	}
	return selected, nil
}

// filterAvailable walks the grid in order and keeps slots whose buffered UTC
// window is free at the provider, stopping early once max are found. Provider
// errors skip the slot; a suggestion must never claim a window it could not
// verify.
func (e *Engine) filterAvailable(ctx context.Context, grid []model.AvailabilitySlot, svc model.Service, externalByID map[string]string, max int) []model.AvailabilitySlot {
	var out []model.AvailabilitySlot
	for _, slot := range grid {
		if len(out) >= max {
			break
		}
		bufferedStart := slot.Start.Add(-time.Duration(svc.BufferBefore) * time.Minute).UTC()
		bufferedEnd := slot.End.Add(time.Duration(svc.BufferAfter) * time.Minute).UTC()

		conflict, err := e.checker.HasConflict(ctx, externalByID[slot.CalendarID], bufferedStart, bufferedEnd)
		if err != nil {
			e.logger.Warn("slot check failed, skipping",
				"calendar_id", slot.CalendarID,
				"slot_start", slot.Start,
				"err", err,
			)
			continue
		}
		if !conflict {
			out = append(out, slot)
		}
	}
	return out
}

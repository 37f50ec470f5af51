package suggest

import (
	"sort"
	"time"

	"github.com/agendo-app/agendo/internal/model"
)

func applyStrategy(slots []model.AvailabilitySlot, p Params, loc *time.Location, now time.Time) []model.AvailabilitySlot {
	if len(slots) == 0 {
		return nil
	}
	switch p.Strategy {
	case StrategyEarliest:
		return earliest(slots, p.MaxResults)
	case StrategyNearest:
		return nearest(slots, p.MaxResults, now)
	case StrategyEquality:
		return equality(slots, p.MaxResults)
	case StrategyBlocks:
		return timeBlocks(slots, p.MaxResults, p.TimeBlocks, loc)
	case StrategyBalanced:
		return balanced(slots, p.MaxResults, loc)
	default:
		// Unknown strategy: keep grid order, just cap the count.
		if len(slots) > p.MaxResults {
			return slots[:p.MaxResults]
		}
		return slots
	}
}

func sortByStart(slots []model.AvailabilitySlot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].Start.Equal(slots[j].Start) {
			return slots[i].Start.Before(slots[j].Start)
		}
		return slots[i].CalendarID < slots[j].CalendarID
	})
}

func sortByPriority(slots []model.AvailabilitySlot, order string) {
	desc := order == "desc"
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Priority != slots[j].Priority {
			if desc {
				return slots[i].Priority > slots[j].Priority
			}
			return slots[i].Priority < slots[j].Priority
		}
		return slots[i].Start.Before(slots[j].Start)
	})
}

func earliest(slots []model.AvailabilitySlot, max int) []model.AvailabilitySlot {
	out := append([]model.AvailabilitySlot(nil), slots...)
	sortByStart(out)
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func nearest(slots []model.AvailabilitySlot, max int, now time.Time) []model.AvailabilitySlot {
	out := append([]model.AvailabilitySlot(nil), slots...)
	sort.SliceStable(out, func(i, j int) bool {
		di := absDuration(out[i].Start.Sub(now))
		dj := absDuration(out[j].Start.Sub(now))
		if di != dj {
			return di < dj
		}
		return out[i].Start.Before(out[j].Start)
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// equality splits MaxResults evenly across calendars, remainder going to the
// higher-priority groups, earliest slots first within each calendar.
func equality(slots []model.AvailabilitySlot, max int) []model.AvailabilitySlot {
	groups := map[string][]model.AvailabilitySlot{}
	var order []string
	for _, s := range slots {
		if _, seen := groups[s.CalendarID]; !seen {
			order = append(order, s.CalendarID)
		}
		groups[s.CalendarID] = append(groups[s.CalendarID], s)
	}
	sort.SliceStable(order, func(i, j int) bool {
		pi := groups[order[i]][0].Priority
		pj := groups[order[j]][0].Priority
		if pi != pj {
			return pi < pj
		}
		return order[i] < order[j]
	})

	per := max / len(order)
	rem := max % len(order)

	var out []model.AvailabilitySlot
	for idx, calID := range order {
		take := per
		if idx < rem {
			take++
		}
		group := append([]model.AvailabilitySlot(nil), groups[calID]...)
		sortByStart(group)
		if len(group) > take {
			group = group[:take]
		}
		out = append(out, group...)
	}
	sortByStart(out)
	return out
}

// timeBlocks buckets slots into morning/afternoon/evening by local wall clock
// and takes a configured count from each, merged back in time order. Slots
// starting before the morning boundary belong to no block and are never
// offered by this strategy.
func timeBlocks(slots []model.AvailabilitySlot, max int, cfg *TimeBlocksConfig, loc *time.Location) []model.AvailabilitySlot {
	morningStart, afternoonStart, eveningStart := "06:00", "12:00", "18:00"
	var morningCount, afternoonCount, eveningCount int
	if cfg != nil {
		if cfg.MorningStart != "" {
			morningStart = cfg.MorningStart
		}
		if cfg.AfternoonStart != "" {
			afternoonStart = cfg.AfternoonStart
		}
		if cfg.EveningStart != "" {
			eveningStart = cfg.EveningStart
		}
		morningCount = cfg.MorningCount
		afternoonCount = cfg.AfternoonCount
		eveningCount = cfg.EveningCount
	}
	if morningCount <= 0 && afternoonCount <= 0 && eveningCount <= 0 {
		per := max / 3
		morningCount, afternoonCount = per, per
		eveningCount = max - 2*per
	}

	var morning, afternoon, evening []model.AvailabilitySlot
	for _, s := range slots {
		hm := s.Start.In(loc).Format("15:04")
		switch {
		case hm < morningStart:
			// Before the earliest configured block; not offered.
		case hm < afternoonStart:
			morning = append(morning, s)
		case hm < eveningStart:
			afternoon = append(afternoon, s)
		default:
			evening = append(evening, s)
		}
	}

	var out []model.AvailabilitySlot
	out = append(out, takeEarliest(morning, morningCount)...)
	out = append(out, takeEarliest(afternoon, afternoonCount)...)
	out = append(out, takeEarliest(evening, eveningCount)...)
	sortByStart(out)
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func takeEarliest(slots []model.AvailabilitySlot, n int) []model.AvailabilitySlot {
	if n <= 0 || len(slots) == 0 {
		return nil
	}
	out := append([]model.AvailabilitySlot(nil), slots...)
	sortByStart(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// balanced spreads MaxResults across calendar days, remainder to the earliest
// days. Inside an over-supplied day, slots are sampled at a stride so the
// picks cover the whole day instead of clustering at its start.
func balanced(slots []model.AvailabilitySlot, max int, loc *time.Location) []model.AvailabilitySlot {
	byDay := map[string][]model.AvailabilitySlot{}
	var days []string
	for _, s := range slots {
		day := s.Start.In(loc).Format("2006-01-02")
		if _, seen := byDay[day]; !seen {
			days = append(days, day)
		}
		byDay[day] = append(byDay[day], s)
	}
	sort.Strings(days)

	per := max / len(days)
	rem := max % len(days)

	var out []model.AvailabilitySlot
	for idx, day := range days {
		take := per
		if idx < rem {
			take++
		}
		if take <= 0 {
			continue
		}
		daySlots := append([]model.AvailabilitySlot(nil), byDay[day]...)
		sortByStart(daySlots)
		if len(daySlots) <= take {
			out = append(out, daySlots...)
			continue
		}
		stride := len(daySlots) / take
		for i := 0; i < take; i++ {
			out = append(out, daySlots[i*stride])
		}
	}
	sortByStart(out)
	return out
}

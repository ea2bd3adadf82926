package export

import (
	"sort"
	"time"

	"studyplan/internal/availability"
)

// WeekTotal is the available hours of one week, identified by the week's
// first day.
type WeekTotal struct {
	WeekOf string  `json:"week_of"` // YYYY-MM-DD
	Hours  float64 `json:"hours"`
}

// Statistics summarizes a computed slot list for display.
type Statistics struct {
	SlotCount    int         `json:"slot_count"`
	TotalHours   float64     `json:"total_hours"`
	DaysWithTime int         `json:"days_with_time"`
	Weeks        []WeekTotal `json:"weeks"`
}

// Stats aggregates free slots into totals per scan and per week. The
// weekStart weekday must match the one the slots were computed with, so
// the per-week buckets line up with the enforced weekly cap.
func Stats(slots []availability.FreeSlot, weekStart time.Weekday) Statistics {
	stats := Statistics{SlotCount: len(slots)}

	days := make(map[time.Time]struct{})
	weeks := make(map[time.Time]float64)

	for _, slot := range slots {
		stats.TotalHours += slot.DurationHours
		days[slot.Date] = struct{}{}

		back := (int(slot.Date.Weekday()) - int(weekStart) + 7) % 7
		anchor := slot.Date.AddDate(0, 0, -back)
		weeks[anchor] += slot.DurationHours
	}
	stats.DaysWithTime = len(days)

	anchors := make([]time.Time, 0, len(weeks))
	for anchor := range weeks {
		anchors = append(anchors, anchor)
	}
	sort.Slice(anchors, func(i, j int) bool { return anchors[i].Before(anchors[j]) })

	for _, anchor := range anchors {
		stats.Weeks = append(stats.Weeks, WeekTotal{
			WeekOf: anchor.Format("2006-01-02"),
			Hours:  weeks[anchor],
		})
	}
	return stats
}

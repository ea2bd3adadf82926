package availability

import "time"

// weekTracker is the running weekly-hours accumulator. It is owned by one
// scan and reset whenever the iterated date crosses into a new week.
type weekTracker struct {
	weekStart time.Weekday
	anchor    time.Time
	hours     float64
}

// rollover resets the accumulator when date begins a new week and reports
// whether a reset happened.
func (w *weekTracker) rollover(date time.Time) bool {
	anchor := weekAnchor(date, w.weekStart)
	if anchor.Equal(w.anchor) {
		return false
	}
	w.anchor = anchor
	w.hours = 0
	return true
}

// weekAnchor returns the first day of the week containing date, for the
// configured week-start weekday, at midnight UTC.
func weekAnchor(date time.Time, weekStart time.Weekday) time.Time {
	d := dateOnly(date)
	back := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDate(0, 0, -back)
}

// applyDailyCap walks the day's intervals in time order and truncates or
// drops whichever interval would push the day's total past maxHours. The
// cap cuts at an interval boundary; intervals are never reordered to fit
// more time. A cap of zero or less means no limit.
func applyDailyCap(intervals []Interval, maxHours float64) []Interval {
	if maxHours <= 0 {
		return intervals
	}

	var result []Interval
	var used float64

	for _, iv := range intervals {
		if used >= maxHours {
			break
		}
		if used+iv.Hours() <= maxHours {
			result = append(result, iv)
			used += iv.Hours()
			continue
		}
		// Partial fit: truncate to the remaining budget.
		if trimmed, ok := truncateToHours(iv, maxHours-used); ok {
			result = append(result, trimmed)
		}
		break
	}

	return result
}

// applyWeeklyCap does the same truncate-at-boundary walk against the
// cross-day weekly accumulator. Every accepted or truncated interval is
// charged to the tracker immediately, so subsequent days in the same week
// see the reduced budget.
func applyWeeklyCap(intervals []Interval, maxHours float64, tracker *weekTracker) []Interval {
	if maxHours <= 0 {
		return intervals
	}

	var result []Interval

	for _, iv := range intervals {
		if tracker.hours >= maxHours {
			break
		}
		if tracker.hours+iv.Hours() <= maxHours {
			result = append(result, iv)
			tracker.hours += iv.Hours()
			continue
		}
		if trimmed, ok := truncateToHours(iv, maxHours-tracker.hours); ok {
			result = append(result, trimmed)
			tracker.hours += trimmed.Hours()
		}
		break
	}

	return result
}

// filterMinDuration drops intervals shorter than the minimum session
// duration. Dropped fragment time is not credited back to the daily or
// weekly budget: the filter runs after both caps and the accumulator
// keeps whatever was already charged.
func filterMinDuration(intervals []Interval, minMinutes int) []Interval {
	if minMinutes <= 0 {
		return intervals
	}

	var result []Interval
	for _, iv := range intervals {
		if iv.Minutes() >= minMinutes {
			result = append(result, iv)
		}
	}
	return result
}

// truncateToHours shortens the interval to at most the given number of
// hours, flooring to whole minutes. Returns false when the budget rounds
// down to nothing.
func truncateToHours(iv Interval, hours float64) (Interval, bool) {
	minutes := int(hours*60 + 1e-9)
	if minutes <= 0 {
		return Interval{}, false
	}
	if minutes >= iv.Minutes() {
		return iv, true
	}
	return Interval{Start: iv.Start, End: iv.Start + TimeOfDay(minutes)}, true
}

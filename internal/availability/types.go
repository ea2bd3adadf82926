package availability

import "time"

// Commitment is a weekly-repeating busy period, optionally limited to a
// validity window of dates (inclusive bounds, nil = unbounded).
type Commitment struct {
	Label      string
	Weekday    time.Weekday
	Window     Interval
	ValidFrom  *time.Time
	ValidUntil *time.Time
}

// AppliesOn reports whether the commitment blocks time on the given date.
func (c Commitment) AppliesOn(date time.Time) bool {
	if c.Weekday != date.Weekday() {
		return false
	}
	if c.ValidFrom != nil && date.Before(dateOnly(*c.ValidFrom)) {
		return false
	}
	if c.ValidUntil != nil && date.After(dateOnly(*c.ValidUntil)) {
		return false
	}
	return true
}

// Absence is an inclusive date range during which whole days are excluded
// from availability regardless of commitments.
type Absence struct {
	Label string
	Start time.Time
	End   time.Time
}

// Contains reports whether the date falls inside the absence range.
func (a Absence) Contains(date time.Time) bool {
	d := dateOnly(date)
	return !d.Before(dateOnly(a.Start)) && !d.After(dateOnly(a.End))
}

// Preferences holds the study-time constraints applied to every scanned day.
// A cap of zero or less means "no limit".
type Preferences struct {
	RestDays          []time.Weekday
	EarliestStart     TimeOfDay
	LatestEnd         TimeOfDay
	MaxHoursPerDay    float64
	MaxHoursPerWeek   float64
	MinSessionMinutes int
}

// FreeSlot is an open window on a specific date in which a study session
// may be scheduled. DurationHours is derived from the window and is kept
// as display data for downstream consumers.
type FreeSlot struct {
	Date          time.Time
	Window        Interval
	DurationHours float64
}

// SkippedRecord describes an input record the scanner excluded because it
// violated its own invariant. A skipped record never aborts a scan.
type SkippedRecord struct {
	Kind   string
	Label  string
	Reason string
}

// Result carries the computed slots in chronological order together with
// the diagnostics for any records that were skipped along the way.
type Result struct {
	Slots   []FreeSlot
	Skipped []SkippedRecord
}

// TotalHours sums the duration of all slots in the result.
func (r *Result) TotalHours() float64 {
	var total float64
	for _, s := range r.Slots {
		total += s.DurationHours
	}
	return total
}

// dateOnly truncates a timestamp to midnight UTC so dates compare and
// hash consistently regardless of the caller's clock or location.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

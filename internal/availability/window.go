package availability

import "time"

// ExclusionReason says why a date yields no working window at all. This is
// deliberately distinct from a day whose window shrinks to nothing after
// subtraction: an excluded day never enters the interval algebra.
type ExclusionReason int

const (
	// NotExcluded means the day gets the full baseline window.
	NotExcluded ExclusionReason = iota
	// RestDay means the weekday is globally excluded by preferences.
	RestDay
	// Absent means the date falls inside an absence range.
	Absent
)

func (r ExclusionReason) String() string {
	switch r {
	case RestDay:
		return "rest day"
	case Absent:
		return "absence"
	default:
		return "not excluded"
	}
}

// dayWindow returns the baseline study window for a date, or the reason
// the date is excluded entirely. absenceDays is the pre-expanded set of
// excluded dates, keyed by midnight-UTC date.
func dayWindow(date time.Time, absenceDays map[time.Time]struct{}, restDays map[time.Weekday]bool, earliest, latest TimeOfDay) (Interval, ExclusionReason) {
	if restDays[date.Weekday()] {
		return Interval{}, RestDay
	}
	if _, ok := absenceDays[dateOnly(date)]; ok {
		return Interval{}, Absent
	}
	return Interval{Start: earliest, End: latest}, NotExcluded
}

// expandAbsences flattens valid absence ranges into a date set for O(1)
// membership checks during the scan. Invalid ranges (end before start) are
// reported back, never swapped or silently fixed.
func expandAbsences(absences []Absence) (map[time.Time]struct{}, []SkippedRecord) {
	days := make(map[time.Time]struct{})
	var skipped []SkippedRecord

	for _, a := range absences {
		start, end := dateOnly(a.Start), dateOnly(a.End)
		if start.After(end) {
			skipped = append(skipped, SkippedRecord{
				Kind:   "absence",
				Label:  a.Label,
				Reason: "end date before start date",
			})
			continue
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			days[d] = struct{}{}
		}
	}

	return days, skipped
}

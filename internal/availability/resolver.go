package availability

import "time"

// commitmentIndex groups valid commitments by weekday so the scanner can
// resolve a day's busy intervals without rescanning the full input.
type commitmentIndex map[time.Weekday][]Commitment

// indexCommitments builds the weekday index, excluding commitments whose
// interval violates start < end. Excluded records come back as diagnostics.
func indexCommitments(commitments []Commitment) (commitmentIndex, []SkippedRecord) {
	index := make(commitmentIndex)
	var skipped []SkippedRecord

	for _, c := range commitments {
		if !c.Window.Valid() {
			skipped = append(skipped, SkippedRecord{
				Kind:   "commitment",
				Label:  c.Label,
				Reason: "interval end not after start",
			})
			continue
		}
		index[c.Weekday] = append(index[c.Weekday], c)
	}

	return index, skipped
}

// busyFor returns the busy intervals applying on the given date, honoring
// each commitment's validity window. Order carries no meaning; the
// subtractor's result is the same for any permutation.
func (idx commitmentIndex) busyFor(date time.Time) []Interval {
	var busy []Interval
	for _, c := range idx[date.Weekday()] {
		if c.AppliesOn(date) {
			busy = append(busy, c.Window)
		}
	}
	return busy
}

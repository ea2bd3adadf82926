package availability

// subtractAll removes every busy interval from the baseline window and
// returns the remaining free sub-intervals in time order. Each busy
// interval is applied against the accumulated working set, so overlapping
// or back-to-back busy periods resolve correctly regardless of input
// order. Every returned interval satisfies Start < End and no two overlap.
func subtractAll(baseline Interval, busy []Interval) []Interval {
	working := []Interval{baseline}

	for _, b := range busy {
		if len(working) == 0 {
			break
		}
		next := make([]Interval, 0, len(working)+1)
		for _, w := range working {
			next = append(next, w.Subtract(b)...)
		}
		working = next
	}

	return working
}

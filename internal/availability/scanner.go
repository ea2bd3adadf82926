package availability

import (
	"context"
	"fmt"
	"time"
)

// DefaultMaxRangeDays caps the scanned span when the caller does not
// configure one. A year covers any realistic study period.
const DefaultMaxRangeDays = 365

// ScannerConfig holds the scan-wide settings that are not part of the
// per-call preferences.
type ScannerConfig struct {
	// MaxRangeDays is the maximum allowed span between range start and
	// end. Zero or less falls back to DefaultMaxRangeDays.
	MaxRangeDays int
	// WeekStart is the weekday on which the weekly-hours accumulator
	// resets. The zero value is time.Sunday, so NewScanner treats an
	// unset config as Monday via DefaultScannerConfig.
	WeekStart time.Weekday
}

// DefaultScannerConfig returns the default scan settings: one-year range
// cap and Monday-start weeks.
func DefaultScannerConfig() ScannerConfig {
	return ScannerConfig{
		MaxRangeDays: DefaultMaxRangeDays,
		WeekStart:    time.Monday,
	}
}

// Scanner computes free study slots over a date range. It holds only
// configuration; every call to Compute is independent, so a single
// Scanner is safe for concurrent use.
type Scanner struct {
	maxRangeDays int
	weekStart    time.Weekday
}

// NewScanner creates a scanner with the given configuration, filling
// unset fields from the defaults.
func NewScanner(cfg ScannerConfig) *Scanner {
	if cfg.MaxRangeDays <= 0 {
		cfg.MaxRangeDays = DefaultMaxRangeDays
	}
	return &Scanner{
		maxRangeDays: cfg.MaxRangeDays,
		weekStart:    cfg.WeekStart,
	}
}

// Compute scans every date from rangeStart to rangeEnd inclusive and
// returns the free slots in chronological order (date ascending, then
// start time ascending).
//
// Preconditions are checked before any day is processed: the range must
// span at least one day, must not exceed the configured maximum, and the
// earliest study time must precede the latest. A violated precondition
// returns a configuration error and no partial result.
//
// Malformed individual records (an absence ending before it starts, a
// commitment with a non-positive interval) are skipped and reported in
// Result.Skipped; they never abort the scan. A scan that finds no free
// time at all is a successful scan with an empty slot list.
//
// The context is checked once per iterated date so a caller can abandon
// a long scan.
func (s *Scanner) Compute(ctx context.Context, rangeStart, rangeEnd time.Time, commitments []Commitment, absences []Absence, prefs Preferences) (*Result, error) {
	start, end := dateOnly(rangeStart), dateOnly(rangeEnd)

	if !start.Before(end) {
		return nil, fmt.Errorf("%w: %s .. %s", ErrInvalidRange,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}
	if days := int(end.Sub(start).Hours() / 24); days > s.maxRangeDays {
		return nil, fmt.Errorf("%w: %d days (max %d)", ErrRangeTooLong, days, s.maxRangeDays)
	}
	if prefs.EarliestStart >= prefs.LatestEnd {
		return nil, fmt.Errorf("%w: %s >= %s", ErrInvalidStudyWindow,
			prefs.EarliestStart, prefs.LatestEnd)
	}

	absenceDays, skippedAbsences := expandAbsences(absences)
	index, skippedCommitments := indexCommitments(commitments)

	restDays := make(map[time.Weekday]bool, len(prefs.RestDays))
	for _, d := range prefs.RestDays {
		restDays[d] = true
	}

	result := &Result{
		Skipped: append(skippedAbsences, skippedCommitments...),
	}
	tracker := &weekTracker{weekStart: s.weekStart}

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tracker.rollover(date)

		window, excluded := dayWindow(date, absenceDays, restDays, prefs.EarliestStart, prefs.LatestEnd)
		if excluded != NotExcluded {
			continue
		}

		free := subtractAll(window, index.busyFor(date))
		free = applyDailyCap(free, prefs.MaxHoursPerDay)
		free = applyWeeklyCap(free, prefs.MaxHoursPerWeek, tracker)
		free = filterMinDuration(free, prefs.MinSessionMinutes)

		for _, iv := range free {
			result.Slots = append(result.Slots, FreeSlot{
				Date:          date,
				Window:        iv,
				DurationHours: iv.Hours(),
			})
		}
	}

	return result, nil
}

package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// It carries no date and orders with plain comparison operators.
type TimeOfDay int

// NewTimeOfDay builds a TimeOfDay from hour and minute.
func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay parses "HH:MM" or "H:MM" format.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time format: %s", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid time: %s", s)
	}
	return NewTimeOfDay(hour, minute), nil
}

// Hour returns the hour component (0-23).
func (t TimeOfDay) Hour() int { return int(t) / 60 }

// Minute returns the minute component (0-59).
func (t TimeOfDay) Minute() int { return int(t) % 60 }

// String formats the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Interval is a half-open time-of-day range [Start, End).
// A valid interval has Start < End; intervals are value types and
// subtraction never mutates its receiver.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// Valid reports whether the interval has positive length.
func (iv Interval) Valid() bool { return iv.Start < iv.End }

// Minutes returns the interval length in minutes.
func (iv Interval) Minutes() int { return int(iv.End - iv.Start) }

// Hours returns the interval length in hours.
func (iv Interval) Hours() float64 { return float64(iv.Minutes()) / 60 }

// Duration returns the interval length as a time.Duration.
func (iv Interval) Duration() time.Duration {
	return time.Duration(iv.Minutes()) * time.Minute
}

// Overlaps reports whether the two intervals share any time.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start < other.End && other.Start < iv.End
}

// String formats the interval as "HH:MM-HH:MM".
func (iv Interval) String() string {
	return iv.Start.String() + "-" + iv.End.String()
}

// Subtract removes the portion of iv covered by busy and returns the
// remaining pieces: zero intervals when busy covers iv entirely, one when
// busy trims the head or the tail, two when busy sits strictly inside.
// Zero-length remainders are dropped, never emitted.
func (iv Interval) Subtract(busy Interval) []Interval {
	// No overlap
	if busy.End <= iv.Start || busy.Start >= iv.End {
		return []Interval{iv}
	}

	// Busy covers the whole interval
	if busy.Start <= iv.Start && busy.End >= iv.End {
		return nil
	}

	// Busy sits strictly inside: split in two
	if busy.Start > iv.Start && busy.End < iv.End {
		return []Interval{
			{Start: iv.Start, End: busy.Start},
			{Start: busy.End, End: iv.End},
		}
	}

	// Busy trims the head
	if busy.Start <= iv.Start {
		return []Interval{{Start: busy.End, End: iv.End}}
	}

	// Busy trims the tail
	return []Interval{{Start: iv.Start, End: busy.Start}}
}

package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"studyplan/internal/availability"
)

// DateFormat is the wire format for calendar dates.
const DateFormat = "2006-01-02"

var (
	ErrEmptyLabel     = errors.New("label must not be empty")
	ErrNoWeekdays     = errors.New("at least one weekday is required")
	ErrInvalidWeekday = errors.New("invalid weekday name")
	ErrInvalidTime    = errors.New("invalid time of day")
	ErrInvalidDate    = errors.New("invalid date")
	ErrEndNotAfter    = errors.New("end must be after start")
	ErrEndBeforeStart = errors.New("end date must not be before start date")
)

var weekdayNames = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseWeekday parses a weekday name, case-insensitive.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, name)
	}
	return day, nil
}

// ParseDate parses a YYYY-MM-DD date into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q (expected YYYY-MM-DD)", ErrInvalidDate, s)
	}
	return d, nil
}

// Commitment is a stored recurring busy period. Days holds weekday names;
// a single record may repeat on several weekdays, matching how users
// enter a lecture or work schedule once for the whole week.
type Commitment struct {
	ID         int64    `json:"id"`
	Label      string   `json:"label"`
	Days       []string `json:"days"`
	Start      string   `json:"start"`                 // "HH:MM"
	End        string   `json:"end"`                   // "HH:MM"
	ValidFrom  string   `json:"valid_from,omitempty"`  // YYYY-MM-DD, empty = unbounded
	ValidUntil string   `json:"valid_until,omitempty"` // YYYY-MM-DD, empty = unbounded
}

// Validate checks the record's own invariants.
func (c *Commitment) Validate() error {
	if strings.TrimSpace(c.Label) == "" {
		return ErrEmptyLabel
	}
	if len(c.Days) == 0 {
		return ErrNoWeekdays
	}
	for _, day := range c.Days {
		if _, err := ParseWeekday(day); err != nil {
			return err
		}
	}
	start, err := availability.ParseTimeOfDay(c.Start)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	end, err := availability.ParseTimeOfDay(c.End)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	if end <= start {
		return fmt.Errorf("%w: %s .. %s", ErrEndNotAfter, c.Start, c.End)
	}
	if c.ValidFrom != "" {
		if _, err := ParseDate(c.ValidFrom); err != nil {
			return err
		}
	}
	if c.ValidUntil != "" {
		if _, err := ParseDate(c.ValidUntil); err != nil {
			return err
		}
	}
	if c.ValidFrom != "" && c.ValidUntil != "" && c.ValidUntil < c.ValidFrom {
		return fmt.Errorf("%w: %s .. %s", ErrEndBeforeStart, c.ValidFrom, c.ValidUntil)
	}
	return nil
}

// Engine fans the record out to one engine commitment per weekday.
// The record must have been validated first.
func (c *Commitment) Engine() ([]availability.Commitment, error) {
	start, err := availability.ParseTimeOfDay(c.Start)
	if err != nil {
		return nil, err
	}
	end, err := availability.ParseTimeOfDay(c.End)
	if err != nil {
		return nil, err
	}

	var validFrom, validUntil *time.Time
	if c.ValidFrom != "" {
		d, err := ParseDate(c.ValidFrom)
		if err != nil {
			return nil, err
		}
		validFrom = &d
	}
	if c.ValidUntil != "" {
		d, err := ParseDate(c.ValidUntil)
		if err != nil {
			return nil, err
		}
		validUntil = &d
	}

	out := make([]availability.Commitment, 0, len(c.Days))
	for _, name := range c.Days {
		day, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		out = append(out, availability.Commitment{
			Label:      c.Label,
			Weekday:    day,
			Window:     availability.Interval{Start: start, End: end},
			ValidFrom:  validFrom,
			ValidUntil: validUntil,
		})
	}
	return out, nil
}

// Absence is a stored date range during which no study happens at all.
type Absence struct {
	ID          int64  `json:"id"`
	Label       string `json:"label"`
	StartDate   string `json:"start_date"` // YYYY-MM-DD
	EndDate     string `json:"end_date"`   // YYYY-MM-DD, inclusive
	Description string `json:"description,omitempty"`
}

// Validate checks the record's own invariants. An inverted range is an
// error, never silently swapped.
func (a *Absence) Validate() error {
	if strings.TrimSpace(a.Label) == "" {
		return ErrEmptyLabel
	}
	start, err := ParseDate(a.StartDate)
	if err != nil {
		return err
	}
	end, err := ParseDate(a.EndDate)
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("%w: %s .. %s", ErrEndBeforeStart, a.StartDate, a.EndDate)
	}
	return nil
}

// Engine converts the record to the engine's absence type.
func (a *Absence) Engine() (availability.Absence, error) {
	start, err := ParseDate(a.StartDate)
	if err != nil {
		return availability.Absence{}, err
	}
	end, err := ParseDate(a.EndDate)
	if err != nil {
		return availability.Absence{}, err
	}
	return availability.Absence{Label: a.Label, Start: start, End: end}, nil
}

// DurationDays returns the inclusive length of the absence in days.
func (a *Absence) DurationDays() (int, error) {
	start, err := ParseDate(a.StartDate)
	if err != nil {
		return 0, err
	}
	end, err := ParseDate(a.EndDate)
	if err != nil {
		return 0, err
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// Preferences holds the user's study-time constraints.
type Preferences struct {
	RestDays          []string `json:"rest_days"`
	EarliestStudyTime string   `json:"earliest_study_time"` // "HH:MM"
	LatestStudyTime   string   `json:"latest_study_time"`   // "HH:MM"
	MaxHoursPerDay    *float64 `json:"max_hours_per_day,omitempty"`  // nil = no limit
	MaxHoursPerWeek   *float64 `json:"max_hours_per_week,omitempty"` // nil = no limit
	MinSessionMinutes int      `json:"min_session_minutes"`
}

// DefaultPreferences returns the preferences applied before a user has
// saved any: full 08:00-22:00 window, hour-long sessions, no caps.
func DefaultPreferences() Preferences {
	return Preferences{
		EarliestStudyTime: "08:00",
		LatestStudyTime:   "22:00",
		MinSessionMinutes: 60,
	}
}

// Validate checks the preferences' invariants.
func (p *Preferences) Validate() error {
	for _, day := range p.RestDays {
		if _, err := ParseWeekday(day); err != nil {
			return err
		}
	}
	earliest, err := availability.ParseTimeOfDay(p.EarliestStudyTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	latest, err := availability.ParseTimeOfDay(p.LatestStudyTime)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTime, err)
	}
	if latest <= earliest {
		return fmt.Errorf("%w: %s .. %s", ErrEndNotAfter, p.EarliestStudyTime, p.LatestStudyTime)
	}
	if p.MaxHoursPerDay != nil && *p.MaxHoursPerDay <= 0 {
		return fmt.Errorf("max_hours_per_day must be positive, got %v", *p.MaxHoursPerDay)
	}
	if p.MaxHoursPerWeek != nil && *p.MaxHoursPerWeek <= 0 {
		return fmt.Errorf("max_hours_per_week must be positive, got %v", *p.MaxHoursPerWeek)
	}
	if p.MinSessionMinutes < 0 {
		return fmt.Errorf("min_session_minutes must not be negative, got %d", p.MinSessionMinutes)
	}
	return nil
}

// Engine converts the preferences to the engine's type.
func (p *Preferences) Engine() (availability.Preferences, error) {
	earliest, err := availability.ParseTimeOfDay(p.EarliestStudyTime)
	if err != nil {
		return availability.Preferences{}, err
	}
	latest, err := availability.ParseTimeOfDay(p.LatestStudyTime)
	if err != nil {
		return availability.Preferences{}, err
	}

	prefs := availability.Preferences{
		EarliestStart:     earliest,
		LatestEnd:         latest,
		MinSessionMinutes: p.MinSessionMinutes,
	}
	for _, name := range p.RestDays {
		day, err := ParseWeekday(name)
		if err != nil {
			return availability.Preferences{}, err
		}
		prefs.RestDays = append(prefs.RestDays, day)
	}
	if p.MaxHoursPerDay != nil {
		prefs.MaxHoursPerDay = *p.MaxHoursPerDay
	}
	if p.MaxHoursPerWeek != nil {
		prefs.MaxHoursPerWeek = *p.MaxHoursPerWeek
	}
	return prefs, nil
}

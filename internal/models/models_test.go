package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	day, err := ParseWeekday("Monday")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	day, err = ParseWeekday("  sunday ")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, day)

	_, err = ParseWeekday("Funday")
	assert.ErrorIs(t, err, ErrInvalidWeekday)
}

func TestCommitmentValidate(t *testing.T) {
	valid := Commitment{
		Label: "Lecture",
		Days:  []string{"monday", "wednesday"},
		Start: "09:00",
		End:   "11:00",
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(*Commitment)
		wantErr error
	}{
		{"empty label", func(c *Commitment) { c.Label = " " }, ErrEmptyLabel},
		{"no days", func(c *Commitment) { c.Days = nil }, ErrNoWeekdays},
		{"bad day", func(c *Commitment) { c.Days = []string{"someday"} }, ErrInvalidWeekday},
		{"bad start", func(c *Commitment) { c.Start = "25:00" }, ErrInvalidTime},
		{"end before start", func(c *Commitment) { c.Start, c.End = "11:00", "09:00" }, ErrEndNotAfter},
		{"zero length", func(c *Commitment) { c.End = c.Start }, ErrEndNotAfter},
		{"bad valid_from", func(c *Commitment) { c.ValidFrom = "01.02.2026" }, ErrInvalidDate},
		{"inverted validity", func(c *Commitment) {
			c.ValidFrom, c.ValidUntil = "2026-03-01", "2026-02-01"
		}, ErrEndBeforeStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.ErrorIs(t, c.Validate(), tt.wantErr)
		})
	}
}

func TestCommitmentEngineFansOutPerWeekday(t *testing.T) {
	c := Commitment{
		Label:      "Work",
		Days:       []string{"monday", "tuesday", "friday"},
		Start:      "09:00",
		End:        "17:00",
		ValidUntil: "2026-06-30",
	}
	require.NoError(t, c.Validate())

	engine, err := c.Engine()
	require.NoError(t, err)
	require.Len(t, engine, 3)

	assert.Equal(t, time.Monday, engine[0].Weekday)
	assert.Equal(t, time.Tuesday, engine[1].Weekday)
	assert.Equal(t, time.Friday, engine[2].Weekday)
	for _, ec := range engine {
		assert.Equal(t, "Work", ec.Label)
		assert.Equal(t, "09:00-17:00", ec.Window.String())
		assert.Nil(t, ec.ValidFrom)
		require.NotNil(t, ec.ValidUntil)
		assert.Equal(t, "2026-06-30", ec.ValidUntil.Format(DateFormat))
	}
}

func TestAbsenceValidate(t *testing.T) {
	valid := Absence{Label: "Vacation", StartDate: "2026-02-01", EndDate: "2026-02-14"}
	assert.NoError(t, valid.Validate())

	inverted := Absence{Label: "Oops", StartDate: "2026-02-14", EndDate: "2026-02-01"}
	assert.ErrorIs(t, inverted.Validate(), ErrEndBeforeStart)

	sameDay := Absence{Label: "Exam day", StartDate: "2026-02-01", EndDate: "2026-02-01"}
	assert.NoError(t, sameDay.Validate())

	badDate := Absence{Label: "x", StartDate: "01/02/2026", EndDate: "2026-02-01"}
	assert.ErrorIs(t, badDate.Validate(), ErrInvalidDate)
}

func TestAbsenceDurationDays(t *testing.T) {
	a := Absence{Label: "Trip", StartDate: "2026-02-01", EndDate: "2026-02-03"}
	days, err := a.DurationDays()
	require.NoError(t, err)
	assert.Equal(t, 3, days)
}

func TestPreferencesValidate(t *testing.T) {
	p := DefaultPreferences()
	assert.NoError(t, p.Validate())

	p.RestDays = []string{"sunday"}
	assert.NoError(t, p.Validate())

	bad := DefaultPreferences()
	bad.EarliestStudyTime, bad.LatestStudyTime = "22:00", "08:00"
	assert.ErrorIs(t, bad.Validate(), ErrEndNotAfter)

	negCap := -2.0
	bad = DefaultPreferences()
	bad.MaxHoursPerDay = &negCap
	assert.Error(t, bad.Validate())

	bad = DefaultPreferences()
	bad.MinSessionMinutes = -1
	assert.Error(t, bad.Validate())
}

func TestPreferencesEngine(t *testing.T) {
	day, week := 6.0, 30.0
	p := Preferences{
		RestDays:          []string{"saturday", "sunday"},
		EarliestStudyTime: "08:00",
		LatestStudyTime:   "18:00",
		MaxHoursPerDay:    &day,
		MaxHoursPerWeek:   &week,
		MinSessionMinutes: 45,
	}
	require.NoError(t, p.Validate())

	engine, err := p.Engine()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Saturday, time.Sunday}, engine.RestDays)
	assert.Equal(t, "08:00", engine.EarliestStart.String())
	assert.Equal(t, "18:00", engine.LatestEnd.String())
	assert.Equal(t, 6.0, engine.MaxHoursPerDay)
	assert.Equal(t, 30.0, engine.MaxHoursPerWeek)
	assert.Equal(t, 45, engine.MinSessionMinutes)
}

package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyplan/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	logger := zerolog.New(os.Stderr).Level(zerolog.Disabled)
	s, err := New(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestCommitmentRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, err := s.CreateCommitment(ctx, &models.Commitment{
		Label:      "Lecture",
		Days:       []string{"monday", "wednesday"},
		Start:      "09:00",
		End:        "11:00",
		ValidUntil: "2026-06-30",
	})
	require.NoError(t, err)
	assert.Positive(t, id)

	list, err := s.ListCommitments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Lecture", list[0].Label)
	assert.Equal(t, []string{"monday", "wednesday"}, list[0].Days)
	assert.Equal(t, "2026-06-30", list[0].ValidUntil)
	assert.Empty(t, list[0].ValidFrom)

	require.NoError(t, s.DeleteCommitment(ctx, id))
	list, err = s.ListCommitments(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateCommitmentRejectsInvalid(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateCommitment(context.Background(), &models.Commitment{
		Label: "Backwards",
		Days:  []string{"monday"},
		Start: "14:00",
		End:   "12:00",
	})
	assert.ErrorIs(t, err, models.ErrEndNotAfter)
}

func TestAbsenceRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Inserted out of date order; listing sorts by start date.
	_, err := s.CreateAbsence(ctx, &models.Absence{
		Label: "Spring break", StartDate: "2026-04-06", EndDate: "2026-04-10",
	})
	require.NoError(t, err)
	id, err := s.CreateAbsence(ctx, &models.Absence{
		Label: "Winter trip", StartDate: "2026-01-02", EndDate: "2026-01-04",
	})
	require.NoError(t, err)

	list, err := s.ListAbsences(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Winter trip", list[0].Label)
	assert.Equal(t, "Spring break", list[1].Label)

	require.NoError(t, s.DeleteAbsence(ctx, id))
	assert.ErrorIs(t, s.DeleteAbsence(ctx, id), ErrNotFound)
}

func TestPreferencesDefaultAndRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	prefs, err := s.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPreferences(), prefs)

	week := 25.0
	saved := models.Preferences{
		RestDays:          []string{"sunday"},
		EarliestStudyTime: "07:30",
		LatestStudyTime:   "21:00",
		MaxHoursPerWeek:   &week,
		MinSessionMinutes: 45,
	}
	require.NoError(t, s.SetPreferences(ctx, &saved))

	got, err := s.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, saved, got)

	// Overwrite replaces, not appends.
	saved.MinSessionMinutes = 30
	require.NoError(t, s.SetPreferences(ctx, &saved))
	got, err = s.GetPreferences(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, got.MinSessionMinutes)
}

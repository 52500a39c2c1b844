package streak

import (
	"errors"
	"testing"
	"time"

	"github.com/thechaitanyaanand/Minsoto/internal/apperr"
	"github.com/thechaitanyaanand/Minsoto/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := time.Parse(DateLayout, s)
	require.NoError(t, err)
	return parsed
}

func completedEntries(t *testing.T, dates ...string) []models.HabitEntry {
	t.Helper()
	entries := make([]models.HabitEntry, 0, len(dates))
	for _, d := range dates {
		entries = append(entries, models.HabitEntry{HabitID: 1, Date: date(t, d), Completed: true})
	}
	return entries
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 1, parsed.Day())

	_, err = ParseDate("not-a-date")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInvalidDate))

	_, err = ParseDate("2024-13-40")
	assert.True(t, errors.Is(err, apperr.ErrInvalidDate))
}

func TestFirstCheckIn(t *testing.T) {
	habit := models.Habit{}
	target := date(t, "2024-03-01")

	entries, idx, created := Toggle(1, nil, target, "felt great")
	require.True(t, created)
	require.Len(t, entries, 1)
	assert.True(t, entries[idx].Completed)
	assert.Equal(t, "felt great", entries[idx].Notes)

	Recompute(&habit, entries, target)
	assert.Equal(t, 1, habit.CurrentStreak)
	assert.Equal(t, 1, habit.BestStreak)
	require.NotNil(t, habit.LastCompleted)
	assert.Equal(t, target, *habit.LastCompleted)
}

func TestToggleSameDateTwice(t *testing.T) {
	habit := models.Habit{}
	target := date(t, "2024-03-01")

	entries, _, _ := Toggle(1, nil, target, "")
	Recompute(&habit, entries, target)
	require.Equal(t, 1, habit.CurrentStreak)
	require.Equal(t, 1, habit.BestStreak)

	entries, idx, created := Toggle(1, entries, target, "changed my mind")
	assert.False(t, created)
	require.Len(t, entries, 1)
	assert.False(t, entries[idx].Completed)
	assert.Equal(t, "changed my mind", entries[idx].Notes)

	Recompute(&habit, entries, target)
	assert.Equal(t, 0, habit.CurrentStreak, "streak recomputes as if the date had no entry")
	assert.Equal(t, 1, habit.BestStreak, "best streak never drops")
	require.NotNil(t, habit.LastCompleted)
	assert.Equal(t, target, *habit.LastCompleted, "last completed is untouched when no completed entries remain")
}

func TestConsecutiveRun(t *testing.T) {
	habit := models.Habit{}
	entries := completedEntries(t, "2024-01-01", "2024-01-02", "2024-01-03")

	Recompute(&habit, entries, date(t, "2024-01-03"))
	assert.Equal(t, 3, habit.CurrentStreak)
	assert.Equal(t, 3, habit.BestStreak)
}

func TestGapStopsStreak(t *testing.T) {
	habit := models.Habit{}
	entries := completedEntries(t, "2024-01-01", "2024-01-02", "2024-01-03", "2024-01-05")
	// An explicit incomplete entry on the gap day changes nothing.
	entries = append(entries, models.HabitEntry{HabitID: 1, Date: date(t, "2024-01-04"), Completed: false})

	Recompute(&habit, entries, date(t, "2024-01-05"))
	assert.Equal(t, 1, habit.CurrentStreak, "the gap on 01-04 stops the walk")
	assert.Equal(t, 1, habit.BestStreak)
}

func TestBackdatedEntrySelfCorrects(t *testing.T) {
	habit := models.Habit{}
	entries, _, _ := Toggle(1, nil, date(t, "2024-03-02"), "")
	Recompute(&habit, entries, date(t, "2024-03-02"))
	require.Equal(t, 1, habit.CurrentStreak)

	// Backdate the previous day, then recompute as of the later date.
	entries, _, _ = Toggle(1, entries, date(t, "2024-03-01"), "")
	Recompute(&habit, entries, date(t, "2024-03-02"))
	assert.Equal(t, 2, habit.CurrentStreak)
	assert.Equal(t, 2, habit.BestStreak)
}

func TestFutureEntriesIgnored(t *testing.T) {
	habit := models.Habit{}
	entries := completedEntries(t, "2024-01-02", "2024-01-03", "2024-01-10")

	Recompute(&habit, entries, date(t, "2024-01-03"))
	assert.Equal(t, 2, habit.CurrentStreak, "entries after the target date are out of scope")
}

func TestNoCompletedEntriesLeavesBestAndLast(t *testing.T) {
	last := date(t, "2024-02-10")
	habit := models.Habit{CurrentStreak: 3, BestStreak: 7, LastCompleted: &last}
	entries := []models.HabitEntry{
		{HabitID: 1, Date: date(t, "2024-02-11"), Completed: false},
	}

	Recompute(&habit, entries, date(t, "2024-02-12"))
	assert.Equal(t, 0, habit.CurrentStreak)
	assert.Equal(t, 7, habit.BestStreak)
	require.NotNil(t, habit.LastCompleted)
	assert.Equal(t, last, *habit.LastCompleted)
}

func TestBestStreakInvariantUnderToggles(t *testing.T) {
	habit := models.Habit{}
	var entries []models.HabitEntry

	days := []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04",
		"2024-01-02", // toggle a middle day off
		"2024-01-04", // and the last day off
		"2024-01-04", // back on
		"2024-01-05",
	}
	for _, d := range days {
		target := date(t, d)
		entries, _, _ = Toggle(1, entries, target, "")
		Recompute(&habit, entries, target)
		assert.GreaterOrEqual(t, habit.BestStreak, habit.CurrentStreak,
			"best >= current must hold after every toggle (day %s)", d)
	}
}

func TestEndToEndExample(t *testing.T) {
	habit := models.Habit{}
	target := date(t, "2024-03-01")

	entries, idx, created := Toggle(7, nil, target, "")
	require.True(t, created)
	assert.True(t, entries[idx].Completed)
	Recompute(&habit, entries, target)
	assert.Equal(t, 1, habit.CurrentStreak)
	assert.Equal(t, 1, habit.BestStreak)
	require.NotNil(t, habit.LastCompleted)
	assert.Equal(t, target, *habit.LastCompleted)

	entries, idx, created = Toggle(7, entries, target, "")
	require.False(t, created)
	assert.False(t, entries[idx].Completed)
	Recompute(&habit, entries, target)
	assert.Equal(t, 0, habit.CurrentStreak)
	assert.Equal(t, 1, habit.BestStreak)
}

func TestDayTruncates(t *testing.T) {
	stamp := time.Date(2024, 6, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), Day(stamp))
}

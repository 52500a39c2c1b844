// Package streak computes consecutive-day completion streaks for habits.
//
// The functions here are pure: they operate on a habit's in-memory completion
// history and mutate only the struct fields passed in. Loading the history
// and persisting the result is the caller's job, so a call always sees one
// consistent snapshot.
package streak

import (
	"fmt"
	"sort"
	"time"

	"github.com/thechaitanyaanand/Minsoto/internal/apperr"
	"github.com/thechaitanyaanand/Minsoto/internal/models"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// ParseDate parses an ISO calendar date. The empty string is not accepted;
// callers resolve "today" themselves before calling in.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", apperr.ErrInvalidDate, s)
	}
	return t, nil
}

// Day truncates a timestamp to its calendar day in UTC. All comparisons in
// this package happen at day granularity; timezone normalization is the
// caller's responsibility.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Toggle records a check-in for date against the in-memory history. If no
// entry exists for that day, one is appended with Completed=true and the
// given notes; otherwise the existing entry's Completed flag is flipped and
// its notes replaced. It returns the updated history, the index of the
// affected entry, and whether the entry is new.
func Toggle(habitID uint, entries []models.HabitEntry, date time.Time, notes string) ([]models.HabitEntry, int, bool) {
	day := Day(date)
	for i := range entries {
		if Day(entries[i].Date).Equal(day) {
			entries[i].Completed = !entries[i].Completed
			entries[i].Notes = notes
			return entries, i, false
		}
	}
	entries = append(entries, models.HabitEntry{
		HabitID:   habitID,
		Date:      day,
		Completed: true,
		Notes:     notes,
	})
	return entries, len(entries) - 1, true
}

// Recompute derives the habit's streak fields from its full history as of
// the target date. It is deliberately not incremental: recomputing from
// history self-corrects after toggles and backdated entries.
//
// If no completed entry exists on or before target, only CurrentStreak is
// zeroed; BestStreak and LastCompleted keep their previous values. Otherwise
// the walk counts consecutive completed days ending at target, stopping at
// the first gap, and LastCompleted is set to target.
func Recompute(h *models.Habit, entries []models.HabitEntry, target time.Time) {
	day := Day(target)

	completed := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		d := Day(e.Date)
		if e.Completed && !d.After(day) {
			completed = append(completed, d)
		}
	}

	if len(completed) == 0 {
		h.CurrentStreak = 0
		return
	}

	sort.Slice(completed, func(i, j int) bool { return completed[i].After(completed[j]) })

	count := 0
	cursor := day
	for _, d := range completed {
		if !d.Equal(cursor) {
			break
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}

	h.CurrentStreak = count
	if count > h.BestStreak {
		h.BestStreak = count
	}

	last := day
	h.LastCompleted = &last
}

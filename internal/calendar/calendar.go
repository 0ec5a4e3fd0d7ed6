// Package calendar provides the Sunday-anchored week arithmetic the
// scheduler is built on. Day-of-week indices are 0=Sunday .. 6=Saturday.
package calendar

import (
	"fmt"
	"time"
)

// DayNames maps day-of-week index to its short display name.
var DayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// MostRecentSunday returns the latest Sunday on or before d.
func MostRecentSunday(d time.Time) time.Time {
	d = Midnight(d)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// WeekStart returns the Sunday that starts week index w of a window.
func WeekStart(startSunday time.Time, w int) time.Time {
	return startSunday.AddDate(0, 0, 7*w)
}

// WeekIndexFromAnchor returns the number of whole weeks between two Sundays.
// Both dates are expected to be Sunday-aligned by construction; the integer
// division is exact for any pair of dates 7n days apart. Only the civil
// dates matter: the anchor comes from the state file as UTC while an
// auto-detected start Sunday carries the local zone, and a wall-clock
// subtraction across those would come up short of a whole week.
func WeekIndexFromAnchor(anchorSunday, currentSunday time.Time) int {
	days := int(civilUTC(currentSunday).Sub(civilUTC(anchorSunday)).Hours() / 24)
	if days < 0 {
		return -((-days) / 7)
	}
	return days / 7
}

// civilUTC rebuilds a date at UTC midnight from its Date components,
// discarding the location.
func civilUTC(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// On combines weekStart+dayOffset with a time of day into one timestamp.
func On(weekStart time.Time, dayOffset int, dueTime TimeOfDay) time.Time {
	d := weekStart.AddDate(0, 0, dayOffset)
	return time.Date(d.Year(), d.Month(), d.Day(), dueTime.Hour, dueTime.Minute, 0, 0, d.Location())
}

// Midnight truncates a timestamp to its date.
func Midnight(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

// ParseStartSunday parses a start date or auto-detects the most recent
// Sunday from now when s is empty.
func ParseStartSunday(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return MostRecentSunday(now), nil
	}
	return ParseDate(s)
}

// TimeOfDay is a wall-clock due time.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an HH:MM string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if _, err := fmt.Sscanf(s, "%d:%d", &t.Hour, &t.Minute); err != nil {
		return TimeOfDay{}, fmt.Errorf("time must be HH:MM, got %q", s)
	}
	if t.Hour < 0 || t.Hour > 23 {
		return TimeOfDay{}, fmt.Errorf("hour must be 0-23, got %d", t.Hour)
	}
	if t.Minute < 0 || t.Minute > 59 {
		return TimeOfDay{}, fmt.Errorf("minute must be 0-59, got %d", t.Minute)
	}
	return t, nil
}

// UniqueSortedDays removes duplicates and sorts day indices ascending.
func UniqueSortedDays(days []int) []int {
	seen := [7]bool{}
	for _, d := range days {
		if d >= 0 && d < 7 {
			seen[d] = true
		}
	}
	out := make([]int, 0, 7)
	for d := 0; d < 7; d++ {
		if seen[d] {
			out = append(out, d)
		}
	}
	return out
}

// package calendar provides the date arithmetic the planning and
// reconciliation engines are built on. The business week runs
// Saturday through Friday; all day comparisons are by local calendar
// date, never by timestamp.
package calendar

import (
	"fmt"
	"time"
)

// dateKeyLayout is the canonical join key format between visits,
// holidays and absences.
const dateKeyLayout = "2006-01-02"

// DateKey returns the canonical YYYY-MM-DD key for the local calendar
// day of t. The key is derived from t's own location, so a visit logged
// late in the evening never shifts to the next UTC day.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// ParseDateKey parses a canonical YYYY-MM-DD key into a midnight time
// in the local timezone.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key '%s': %w", key, err)
	}

	return t, nil
}

// Midnight normalizes t to 00:00:00 of its own calendar day, preserving
// the location.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeekStart returns the most recent Saturday on or before ref,
// midnight-normalized. Saturday itself is its own week start.
func WeekStart(ref time.Time) time.Time {
	day := Midnight(ref)

	offset := int(day.Weekday()-time.Saturday+7) % 7

	return day.AddDate(0, 0, -offset)
}

// MonthBounds returns the first and last calendar days of the given
// month, midnight-normalized in loc.
func MonthBounds(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	return first, last
}

// DaysBetween returns the number of whole days from 'from' to 'to',
// rounded toward zero.
func DaysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}

// InPlanningWindow reports whether now falls inside the 2-day window in
// which next week's plan may be created: the two weekdays immediately
// preceding the next week start, i.e. Thursday and Friday.
func InPlanningWindow(now time.Time) bool {
	wd := now.Weekday()

	return wd == time.Thursday || wd == time.Friday
}

package timesheet

import "time"

// DateKey normalizes a date to its YYYY-MM-DD form, the canonical map key
// for daily totals and slot identity.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekWindow returns the Monday-to-Sunday window containing the given date.
// Total function: any date maps to exactly one window.
func WeekWindow(date time.Time) (weekStart, weekEnd time.Time) {
	d := truncateToDay(date)
	offset := int(d.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7 // Sunday
	}
	weekStart = d.AddDate(0, 0, -offset)
	weekEnd = weekStart.AddDate(0, 0, 6)
	return weekStart, weekEnd
}

// IsMonday reports whether a caller-supplied week start actually falls on a
// Monday. Non-Monday week starts are a client input error, rejected before
// any store access.
func IsMonday(date time.Time) bool {
	return date.Weekday() == time.Monday
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return DateKey(a) == DateKey(b)
}

func withinWindow(date, from, to time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(truncateToDay(from)) && !d.After(truncateToDay(to))
}

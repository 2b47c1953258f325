package dateutil

import "time"

// Every helper works on UTC calendar days.

func BeginningOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func NextDay(t time.Time) time.Time {
	return BeginningOfDay(t).AddDate(0, 0, 1)
}

// NextWeekday returns the beginning of the next given weekday strictly after
// the day of t.
func NextWeekday(t time.Time, weekday time.Weekday) time.Time {
	day := NextDay(t)
	for day.Weekday() != weekday {
		day = day.AddDate(0, 0, 1)
	}

	return day
}

// LastWeekday returns the beginning of the latest given weekday on or before
// the day of t.
func LastWeekday(t time.Time, weekday time.Weekday) time.Time {
	day := BeginningOfDay(t)
	for day.Weekday() != weekday {
		day = day.AddDate(0, 0, -1)
	}

	return day
}
